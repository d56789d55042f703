package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"recruitconnect/internal/common"
	"recruitconnect/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id string) (*model.Application, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*model.Application, error)
	ListByApplicant(ctx context.Context, applicantID string, filter model.ApplicationFilter, limit, offset int) ([]model.Application, int, error)
	ListByEmployer(ctx context.Context, employerID string, filter model.ApplicationFilter, limit, offset int) ([]model.Application, int, error)
	ListByJob(ctx context.Context, jobID string, status model.ApplicationStatus, limit, offset int) ([]model.Application, int, error)
	UpdateStatusFrom(ctx context.Context, id string, from, to model.ApplicationStatus) (bool, error)
	Delete(ctx context.Context, id string) error
}

type pgApplicationRepository struct {
	db *sql.DB
}

func NewPgApplicationRepository(db *sql.DB) ApplicationRepository {
	return &pgApplicationRepository{db: db}
}

func (r *pgApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	query := `INSERT INTO applications (id, job_id, applicant_id, status, cover_letter, resume_url, additional_info)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		app.ID, app.JobID, app.ApplicantID, app.Status, app.CoverLetter, app.ResumeURL, app.AdditionalInfo,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // (job_id, applicant_id) unique violation
			return fmt.Errorf("an application for this job already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgApplicationRepository.Create: %w", err)
	}
	return nil
}

const applicationSelect = `
        SELECT a.id, a.job_id, a.applicant_id, a.status, a.cover_letter, a.resume_url,
               a.additional_info, a.created_at, a.updated_at,
               j.title AS job_title, j.employer_id,
               applicant.full_name AS applicant_name, applicant.email AS applicant_email,
               employer.company_name AS employer_name
        FROM applications a
        JOIN jobs j ON a.job_id = j.id
        JOIN users applicant ON a.applicant_id = applicant.id
        JOIN users employer ON j.employer_id = employer.id`

func scanApplication(row interface{ Scan(...interface{}) error }) (*model.Application, error) {
	app := &model.Application{}
	err := row.Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &app.CoverLetter, &app.ResumeURL,
		&app.AdditionalInfo, &app.CreatedAt, &app.UpdatedAt,
		&app.JobTitle, &app.JobEmployerID,
		&app.ApplicantName, &app.ApplicantEmail,
		&app.EmployerName,
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *pgApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	app, err := scanApplication(r.db.QueryRowContext(ctx, applicationSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgApplicationRepository.FindByID: %w", err)
	}
	return app, nil
}

func (r *pgApplicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*model.Application, error) {
	app, err := scanApplication(r.db.QueryRowContext(ctx,
		applicationSelect+` WHERE a.job_id = $1 AND a.applicant_id = $2`, jobID, applicantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgApplicationRepository.FindByJobAndApplicant: %w", err)
	}
	return app, nil
}

func (r *pgApplicationRepository) ListByApplicant(ctx context.Context, applicantID string, filter model.ApplicationFilter, limit, offset int) ([]model.Application, int, error) {
	return r.list(ctx, "a.applicant_id = $1", applicantID, filter, limit, offset)
}

// ListByEmployer joins through jobs so an employer sees every application
// submitted to any of their postings.
func (r *pgApplicationRepository) ListByEmployer(ctx context.Context, employerID string, filter model.ApplicationFilter, limit, offset int) ([]model.Application, int, error) {
	return r.list(ctx, "j.employer_id = $1", employerID, filter, limit, offset)
}

func (r *pgApplicationRepository) ListByJob(ctx context.Context, jobID string, status model.ApplicationStatus, limit, offset int) ([]model.Application, int, error) {
	return r.list(ctx, "a.job_id = $1", jobID, model.ApplicationFilter{Status: status}, limit, offset)
}

func (r *pgApplicationRepository) list(ctx context.Context, scopeCond, scopeArg string, filter model.ApplicationFilter, limit, offset int) ([]model.Application, int, error) {
	conditions := []string{scopeCond}
	args := []interface{}{scopeArg}
	argID := 2

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}
	if filter.JobID != "" {
		conditions = append(conditions, fmt.Sprintf("a.job_id = $%d", argID))
		args = append(args, filter.JobID)
		argID++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM applications a JOIN jobs j ON a.job_id = j.id` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgApplicationRepository.list count: %w", err)
	}

	query := applicationSelect + whereClause +
		fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgApplicationRepository.list query: %w", err)
	}
	defer rows.Close()

	apps := []model.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("pgApplicationRepository.list scan: %w", err)
		}
		apps = append(apps, *app)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgApplicationRepository.list rows.Err: %w", err)
	}
	return apps, total, nil
}

// UpdateStatusFrom transitions id from one status to another in a single
// conditional UPDATE. The returned bool is false when the row exists but is
// no longer in the expected source status, which makes the statement itself
// the authoritative guard against concurrent decisions.
func (r *pgApplicationRepository) UpdateStatusFrom(ctx context.Context, id string, from, to model.ApplicationStatus) (bool, error) {
	query := `UPDATE applications SET status = $1, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("pgApplicationRepository.UpdateStatusFrom: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgApplicationRepository.UpdateStatusFrom rows: %w", err)
	}
	return n == 1, nil
}

func (r *pgApplicationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgApplicationRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
