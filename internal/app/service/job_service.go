package service

import (
	"context"
	"fmt"
	"strings"

	"recruitconnect/internal/common"
	"recruitconnect/internal/domain/model"
	"recruitconnect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type JobService struct {
	jobRepo repository.JobRepository
	appRepo repository.ApplicationRepository
}

func NewJobService(jobRepo repository.JobRepository, appRepo repository.ApplicationRepository) *JobService {
	return &JobService{jobRepo: jobRepo, appRepo: appRepo}
}

type CreateJobRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Requirements    string `json:"requirements"`
	SalaryRange     string `json:"salary_range"`
	Location        string `json:"location"`
	JobType         string `json:"job_type"`
	ExperienceLevel string `json:"experience_level"`
	IsRemote        bool   `json:"is_remote"`
}

// UpdateJobRequest uses pointers so only supplied fields are overwritten.
type UpdateJobRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Requirements    *string `json:"requirements"`
	SalaryRange     *string `json:"salary_range"`
	Location        *string `json:"location"`
	JobType         *string `json:"job_type"`
	ExperienceLevel *string `json:"experience_level"`
	IsRemote        *bool   `json:"is_remote"`
	IsActive        *bool   `json:"is_active"`
}

func (s *JobService) CreateJob(ctx context.Context, employer *model.User, req CreateJobRequest) (*model.Job, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	if len(title) < 5 {
		return nil, fmt.Errorf("job title must be at least 5 characters long: %w", common.ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("job description is required: %w", common.ErrValidation)
	}

	id := uuid.NewString()
	job := &model.Job{
		ID:              id,
		Title:           title,
		Slug:            slug.Make(title) + "-" + id[:8],
		Description:     description,
		Requirements:    strings.TrimSpace(req.Requirements),
		SalaryRange:     strings.TrimSpace(req.SalaryRange),
		Location:        strings.TrimSpace(req.Location),
		JobType:         strings.ToLower(strings.TrimSpace(req.JobType)),
		ExperienceLevel: strings.ToLower(strings.TrimSpace(req.ExperienceLevel)),
		IsRemote:        req.IsRemote,
		IsActive:        true,
		EmployerID:      employer.ID,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	job.EmployerName = employer.CompanyName
	return job, nil
}

// GetJob returns a job by id. A deactivated job is indistinguishable from a
// missing one on this path.
func (s *JobService) GetJob(ctx context.Context, id string) (*model.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.IsActive {
		return nil, fmt.Errorf("this job posting has been deactivated: %w", common.ErrNotFound)
	}
	return job, nil
}

func (s *JobService) ListJobs(ctx context.Context, filter model.JobFilter, page, perPage int) ([]model.JobSummary, common.Pagination, error) {
	p := common.Pagination{Page: page, PerPage: perPage}
	jobs, total, err := s.jobRepo.List(ctx, filter, perPage, p.Offset())
	if err != nil {
		return nil, common.Pagination{}, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	return jobs, common.NewPagination(page, perPage, total), nil
}

func (s *JobService) UpdateJob(ctx context.Context, caller *model.User, id string, req UpdateJobRequest) (*model.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(caller, job.Ownership()); err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("job title cannot be empty: %w", common.ErrValidation)
		}
		job.Title = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, fmt.Errorf("job description cannot be empty: %w", common.ErrValidation)
		}
		job.Description = description
	}
	if req.Requirements != nil {
		job.Requirements = strings.TrimSpace(*req.Requirements)
	}
	if req.SalaryRange != nil {
		job.SalaryRange = strings.TrimSpace(*req.SalaryRange)
	}
	if req.Location != nil {
		job.Location = strings.TrimSpace(*req.Location)
	}
	if req.JobType != nil {
		job.JobType = strings.ToLower(strings.TrimSpace(*req.JobType))
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = strings.ToLower(strings.TrimSpace(*req.ExperienceLevel))
	}
	if req.IsRemote != nil {
		job.IsRemote = *req.IsRemote
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// DeleteJob deactivates a job, or removes it permanently when hard is set.
// A hard delete cascades to the job's applications.
func (s *JobService) DeleteJob(ctx context.Context, caller *model.User, id string, hard bool) error {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(caller, job.Ownership()); err != nil {
		return err
	}

	if hard {
		if err := s.jobRepo.HardDelete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete job: %w", err)
		}
		return nil
	}
	if err := s.jobRepo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate job: %w", err)
	}
	return nil
}

func (s *JobService) MyJobs(ctx context.Context, employer *model.User, includeInactive bool, page, perPage int) ([]model.Job, common.Pagination, error) {
	p := common.Pagination{Page: page, PerPage: perPage}
	jobs, total, err := s.jobRepo.ListByEmployer(ctx, employer.ID, includeInactive, perPage, p.Offset())
	if err != nil {
		return nil, common.Pagination{}, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	return jobs, common.NewPagination(page, perPage, total), nil
}

// ListJobApplications returns the applications submitted to one of the
// employer's jobs. An unknown status filter is ignored rather than rejected.
func (s *JobService) ListJobApplications(ctx context.Context, employer *model.User, jobID string, status model.ApplicationStatus, page, perPage int) ([]model.Application, *model.Job, common.Pagination, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, nil, common.Pagination{}, err
	}
	if err := requireOwner(employer, job.Ownership()); err != nil {
		return nil, nil, common.Pagination{}, err
	}

	if !model.ValidApplicationStatus(status) {
		status = ""
	}

	p := common.Pagination{Page: page, PerPage: perPage}
	apps, total, err := s.appRepo.ListByJob(ctx, jobID, status, perPage, p.Offset())
	if err != nil {
		return nil, nil, common.Pagination{}, fmt.Errorf("failed to fetch applications: %w", err)
	}
	return apps, job, common.NewPagination(page, perPage, total), nil
}
