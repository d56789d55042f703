package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"recruitconnect/internal/common"
	"recruitconnect/internal/domain/model"
)

type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	Update(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id string) (*model.Job, error)
	List(ctx context.Context, filter model.JobFilter, limit, offset int) ([]model.JobSummary, int, error)
	ListByEmployer(ctx context.Context, employerID string, includeInactive bool, limit, offset int) ([]model.Job, int, error)
	SoftDelete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

type pgJobRepository struct {
	db *sql.DB
}

func NewPgJobRepository(db *sql.DB) JobRepository {
	return &pgJobRepository{db: db}
}

func (r *pgJobRepository) Create(ctx context.Context, job *model.Job) error {
	query := `INSERT INTO jobs (id, title, slug, description, requirements, salary_range, location,
	                            job_type, experience_level, is_remote, is_active, employer_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		job.ID, job.Title, job.Slug, job.Description, job.Requirements, job.SalaryRange, job.Location,
		job.JobType, job.ExperienceLevel, job.IsRemote, job.IsActive, job.EmployerID,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgJobRepository.Create: %w", err)
	}
	return nil
}

func (r *pgJobRepository) Update(ctx context.Context, job *model.Job) error {
	query := `UPDATE jobs SET
	            title = $1, description = $2, requirements = $3, salary_range = $4, location = $5,
	            job_type = $6, experience_level = $7, is_remote = $8, is_active = $9,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $10
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		job.Title, job.Description, job.Requirements, job.SalaryRange, job.Location,
		job.JobType, job.ExperienceLevel, job.IsRemote, job.IsActive, job.ID,
	).Scan(&job.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgJobRepository.Update: %w", err)
	}
	return nil
}

func (r *pgJobRepository) FindByID(ctx context.Context, id string) (*model.Job, error) {
	query := `
        SELECT j.id, j.title, j.slug, j.description, j.requirements, j.salary_range, j.location,
               j.job_type, j.experience_level, j.is_remote, j.is_active, j.employer_id,
               j.created_at, j.updated_at,
               u.company_name AS employer_name,
               (SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS application_count
        FROM jobs j
        LEFT JOIN users u ON j.employer_id = u.id
        WHERE j.id = $1`

	job := &model.Job{}
	var count int
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Slug, &job.Description, &job.Requirements, &job.SalaryRange, &job.Location,
		&job.JobType, &job.ExperienceLevel, &job.IsRemote, &job.IsActive, &job.EmployerID,
		&job.CreatedAt, &job.UpdatedAt,
		&job.EmployerName, &count,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgJobRepository.FindByID: %w", err)
	}
	job.ApplicationCount = &count
	return job, nil
}

// List returns active jobs matching the filter, newest first. The is_active
// restriction is baked in: the public listing never shows deactivated jobs.
func (r *pgJobRepository) List(ctx context.Context, filter model.JobFilter, limit, offset int) ([]model.JobSummary, int, error) {
	conditions := []string{"j.is_active = TRUE"}
	var args []interface{}
	argID := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(j.title ILIKE $%d OR j.description ILIKE $%d)", argID, argID+1))
		likeTerm := "%" + filter.Search + "%"
		args = append(args, likeTerm, likeTerm)
		argID += 2
	}
	if filter.Location != "" {
		conditions = append(conditions, fmt.Sprintf("j.location ILIKE $%d", argID))
		args = append(args, "%"+filter.Location+"%")
		argID++
	}
	if filter.JobType != "" {
		conditions = append(conditions, fmt.Sprintf("j.job_type = $%d", argID))
		args = append(args, filter.JobType)
		argID++
	}
	if filter.IsRemote != nil {
		conditions = append(conditions, fmt.Sprintf("j.is_remote = $%d", argID))
		args = append(args, *filter.IsRemote)
		argID++
	}
	if filter.EmployerID != "" {
		conditions = append(conditions, fmt.Sprintf("j.employer_id = $%d", argID))
		args = append(args, filter.EmployerID)
		argID++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM jobs j` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgJobRepository.List count: %w", err)
	}

	query := `
        SELECT j.id, j.title, j.slug, u.company_name, j.location, j.job_type, j.salary_range,
               j.is_remote, j.created_at
        FROM jobs j
        LEFT JOIN users u ON j.employer_id = u.id` + whereClause +
		fmt.Sprintf(" ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgJobRepository.List query: %w", err)
	}
	defer rows.Close()

	jobs := []model.JobSummary{}
	for rows.Next() {
		var j model.JobSummary
		if err := rows.Scan(&j.ID, &j.Title, &j.Slug, &j.CompanyName, &j.Location, &j.JobType,
			&j.SalaryRange, &j.IsRemote, &j.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("pgJobRepository.List scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgJobRepository.List rows.Err: %w", err)
	}
	return jobs, total, nil
}

func (r *pgJobRepository) ListByEmployer(ctx context.Context, employerID string, includeInactive bool, limit, offset int) ([]model.Job, int, error) {
	whereClause := " WHERE j.employer_id = $1"
	if !includeInactive {
		whereClause += " AND j.is_active = TRUE"
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM jobs j` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, employerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgJobRepository.ListByEmployer count: %w", err)
	}

	query := `
        SELECT j.id, j.title, j.slug, j.description, j.requirements, j.salary_range, j.location,
               j.job_type, j.experience_level, j.is_remote, j.is_active, j.employer_id,
               j.created_at, j.updated_at,
               (SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS application_count
        FROM jobs j` + whereClause + ` ORDER BY j.created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, employerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgJobRepository.ListByEmployer query: %w", err)
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		var j model.Job
		var count int
		if err := rows.Scan(&j.ID, &j.Title, &j.Slug, &j.Description, &j.Requirements, &j.SalaryRange,
			&j.Location, &j.JobType, &j.ExperienceLevel, &j.IsRemote, &j.IsActive, &j.EmployerID,
			&j.CreatedAt, &j.UpdatedAt, &count); err != nil {
			return nil, 0, fmt.Errorf("pgJobRepository.ListByEmployer scan: %w", err)
		}
		j.ApplicationCount = &count
		jobs = append(jobs, j)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgJobRepository.ListByEmployer rows.Err: %w", err)
	}
	return jobs, total, nil
}

func (r *pgJobRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE jobs SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pgJobRepository.SoftDelete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// HardDelete removes the row permanently. Dependent applications go with it
// via the ON DELETE CASCADE foreign key.
func (r *pgJobRepository) HardDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgJobRepository.HardDelete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
