package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recruitconnect/internal/common"
	"recruitconnect/internal/domain/model"
	"recruitconnect/internal/domain/repository"

	"github.com/google/uuid"
)

type ApplicationService struct {
	appRepo repository.ApplicationRepository
	jobRepo repository.JobRepository
}

func NewApplicationService(appRepo repository.ApplicationRepository, jobRepo repository.JobRepository) *ApplicationService {
	return &ApplicationService{appRepo: appRepo, jobRepo: jobRepo}
}

type ApplyRequest struct {
	JobID          string `json:"job_id"`
	CoverLetter    string `json:"cover_letter"`
	ResumeURL      string `json:"resume_url"`
	AdditionalInfo string `json:"additional_info"`
}

// DuplicateApplicationError reports an apply against a job the seeker has
// already applied to, carrying the existing application so the response can
// point the caller at it.
type DuplicateApplicationError struct {
	ApplicationID string
	Status        model.ApplicationStatus
}

func (e *DuplicateApplicationError) Error() string {
	return "you have already applied to this job"
}

func (e *DuplicateApplicationError) Unwrap() error {
	return common.ErrConflict
}

// CheckStatusResponse reports whether a seeker has applied to a job.
type CheckStatusResponse struct {
	HasApplied  bool                 `json:"has_applied"`
	Application *model.ApplicantView `json:"application,omitempty"`
}

func (s *ApplicationService) Apply(ctx context.Context, seeker *model.User, req ApplyRequest) (*model.Application, error) {
	if req.JobID == "" {
		return nil, fmt.Errorf("job ID is required: %w", common.ErrValidation)
	}

	job, err := s.jobRepo.FindByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if !job.IsActive {
		return nil, fmt.Errorf("this job posting is no longer active: %w", common.ErrBadRequest)
	}

	// Best-effort pre-check so the response can name the existing
	// application. The unique constraint on (job_id, applicant_id) is the
	// authoritative guard against a concurrent duplicate.
	if existing, err := s.appRepo.FindByJobAndApplicant(ctx, req.JobID, seeker.ID); err == nil {
		return nil, &DuplicateApplicationError{ApplicationID: existing.ID, Status: existing.Status}
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing application: %w", err)
	}

	app := &model.Application{
		ID:             uuid.NewString(),
		JobID:          req.JobID,
		ApplicantID:    seeker.ID,
		Status:         model.StatusPending,
		CoverLetter:    strings.TrimSpace(req.CoverLetter),
		ResumeURL:      strings.TrimSpace(req.ResumeURL),
		AdditionalInfo: strings.TrimSpace(req.AdditionalInfo),
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		if errors.Is(err, common.ErrConflict) {
			// Lost the race to a concurrent apply. Surface the winner.
			if existing, findErr := s.appRepo.FindByJobAndApplicant(ctx, req.JobID, seeker.ID); findErr == nil {
				return nil, &DuplicateApplicationError{ApplicationID: existing.ID, Status: existing.Status}
			}
		}
		return nil, err
	}

	app.JobTitle = &job.Title
	app.JobEmployerID = job.EmployerID
	app.ApplicantName = seeker.FullName
	email := seeker.Email
	app.ApplicantEmail = &email
	app.EmployerName = job.EmployerName
	return app, nil
}

// ListMine scopes the listing by the caller's role: seekers see their own
// applications, employers see applications to any of their jobs.
func (s *ApplicationService) ListMine(ctx context.Context, user *model.User, filter model.ApplicationFilter, page, perPage int) ([]model.ApplicantView, common.Pagination, error) {
	if !model.ValidApplicationStatus(filter.Status) {
		filter.Status = ""
	}

	p := common.Pagination{Page: page, PerPage: perPage}

	var apps []model.Application
	var total int
	var err error
	switch {
	case user.IsJobSeeker():
		apps, total, err = s.appRepo.ListByApplicant(ctx, user.ID, filter, perPage, p.Offset())
	case user.IsEmployer():
		apps, total, err = s.appRepo.ListByEmployer(ctx, user.ID, filter, perPage, p.Offset())
	default:
		return nil, common.Pagination{}, fmt.Errorf("user has an invalid role: %w", common.ErrValidation)
	}
	if err != nil {
		return nil, common.Pagination{}, fmt.Errorf("failed to fetch applications: %w", err)
	}

	views := make([]model.ApplicantView, 0, len(apps))
	for i := range apps {
		views = append(views, apps[i].ToApplicantView())
	}
	return views, common.NewPagination(page, perPage, total), nil
}

func (s *ApplicationService) GetApplication(ctx context.Context, user *model.User, id string) (*model.Application, error) {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.ValidRole(user.Role) {
		return nil, fmt.Errorf("user has an invalid role: %w", common.ErrValidation)
	}
	if err := requireOwner(user, app.Ownership()); err != nil {
		return nil, err
	}
	return app, nil
}

// Withdraw moves a pending application to withdrawn. Withdrawn is terminal.
func (s *ApplicationService) Withdraw(ctx context.Context, seeker *model.User, id string) (*model.Application, error) {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != seeker.ID {
		return nil, fmt.Errorf("you can only withdraw your own applications: %w", common.ErrForbidden)
	}
	if app.Status != model.StatusPending {
		return nil, fmt.Errorf("application status is %s, only pending applications can be withdrawn: %w",
			app.Status, common.ErrBadRequest)
	}

	ok, err := s.appRepo.UpdateStatusFrom(ctx, id, model.StatusPending, model.StatusWithdrawn)
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw application: %w", err)
	}
	if !ok {
		// Decided between our read and the update.
		return nil, fmt.Errorf("application is no longer pending: %w", common.ErrBadRequest)
	}
	app.Status = model.StatusWithdrawn
	return app, nil
}

// Decide transitions a pending application to accepted or rejected. The
// caller must own the job the application refers to.
func (s *ApplicationService) Decide(ctx context.Context, employer *model.User, id string, newStatus model.ApplicationStatus) (*model.Application, error) {
	if newStatus != model.StatusAccepted && newStatus != model.StatusRejected {
		return nil, fmt.Errorf("status must be one of: %s, %s: %w",
			model.StatusAccepted, model.StatusRejected, common.ErrValidation)
	}

	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(employer, app.Ownership()); err != nil {
		return nil, err
	}
	if app.Status != model.StatusPending {
		return nil, fmt.Errorf("application status is already %s: %w", app.Status, common.ErrBadRequest)
	}

	ok, err := s.appRepo.UpdateStatusFrom(ctx, id, model.StatusPending, newStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("application is no longer pending: %w", common.ErrBadRequest)
	}
	app.Status = newStatus
	return app, nil
}

// DeleteApplication removes a withdrawn application. Pending applications
// must be withdrawn first.
func (s *ApplicationService) DeleteApplication(ctx context.Context, seeker *model.User, id string) error {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if app.ApplicantID != seeker.ID {
		return fmt.Errorf("you can only delete your own applications: %w", common.ErrForbidden)
	}
	if app.Status != model.StatusWithdrawn {
		return fmt.Errorf("application must be withdrawn before deletion: %w", common.ErrBadRequest)
	}
	if err := s.appRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}

func (s *ApplicationService) CheckStatus(ctx context.Context, seeker *model.User, jobID string) (*CheckStatusResponse, error) {
	if _, err := s.jobRepo.FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	app, err := s.appRepo.FindByJobAndApplicant(ctx, jobID, seeker.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &CheckStatusResponse{HasApplied: false}, nil
		}
		return nil, fmt.Errorf("failed to check application status: %w", err)
	}
	view := app.ToApplicantView()
	return &CheckStatusResponse{HasApplied: true, Application: &view}, nil
}
