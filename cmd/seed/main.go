// Command seed creates the database schema and, with -sample, a set of demo
// users and jobs. Safe to run repeatedly.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"

	"recruitconnect/internal/common"
	"recruitconnect/internal/common/security"
	"recruitconnect/internal/domain/model"
	"recruitconnect/internal/domain/repository"
	"recruitconnect/internal/platform/config"
	"recruitconnect/internal/platform/database"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id              UUID PRIMARY KEY,
    email           TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    role            TEXT NOT NULL,
    full_name       TEXT,
    company_name    TEXT,
    phone           TEXT,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS jobs (
    id               UUID PRIMARY KEY,
    title            TEXT NOT NULL,
    slug             TEXT NOT NULL UNIQUE,
    description      TEXT NOT NULL,
    requirements     TEXT NOT NULL DEFAULT '',
    salary_range     TEXT NOT NULL DEFAULT '',
    location         TEXT NOT NULL DEFAULT '',
    job_type         TEXT NOT NULL DEFAULT '',
    experience_level TEXT NOT NULL DEFAULT '',
    is_remote        BOOLEAN NOT NULL DEFAULT FALSE,
    is_active        BOOLEAN NOT NULL DEFAULT TRUE,
    employer_id      UUID NOT NULL REFERENCES users(id),
    created_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_jobs_employer_id ON jobs (employer_id);

CREATE TABLE IF NOT EXISTS applications (
    id              UUID PRIMARY KEY,
    job_id          UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
    applicant_id    UUID NOT NULL REFERENCES users(id),
    status          TEXT NOT NULL DEFAULT 'pending',
    cover_letter    TEXT NOT NULL DEFAULT '',
    resume_url      TEXT NOT NULL DEFAULT '',
    additional_info TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (job_id, applicant_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_job_id ON applications (job_id);
CREATE INDEX IF NOT EXISTS idx_applications_applicant_id ON applications (applicant_id);
`

func main() {
	sample := flag.Bool("sample", false, "also insert sample users and jobs")
	flag.Parse()

	config.Load()
	database.Connect()
	defer database.Close()

	ctx := context.Background()

	if _, err := database.DB.ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	fmt.Println("Schema is up to date.")

	if !*sample {
		return
	}
	if err := createSampleData(ctx, database.DB); err != nil {
		log.Fatalf("Failed to create sample data: %v", err)
	}
}

func createSampleData(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		fmt.Printf("Database already contains %d users. Skipping sample data creation.\n", count)
		return nil
	}

	userRepo := repository.NewPgUserRepository(db)
	jobRepo := repository.NewPgJobRepository(db)

	employer, err := sampleUser(ctx, userRepo, "employer@company.com", "employer123",
		model.RoleEmployer, "John Smith", "Tech Solutions Inc.", "+1-555-0100")
	if err != nil {
		return err
	}
	if _, err := sampleUser(ctx, userRepo, "seeker@example.com", "seeker123",
		model.RoleJobSeeker, "Jane Doe", "", "+1-555-0200"); err != nil {
		return err
	}
	if _, err := sampleUser(ctx, userRepo, "recruiter@startup.io", "employer123",
		model.RoleEmployer, "Mike Johnson", "Startup IO", "+1-555-0300"); err != nil {
		return err
	}
	if _, err := sampleUser(ctx, userRepo, "developer@example.com", "seeker123",
		model.RoleJobSeeker, "Alex Wilson", "", "+1-555-0400"); err != nil {
		return err
	}

	jobs := []model.Job{
		{
			Title:           "Senior Software Engineer",
			Description:     "We are looking for a Senior Software Engineer to join our team. You will be responsible for designing and implementing scalable solutions.",
			Requirements:    "- 5+ years of experience\n- Go or Python expertise\n- PostgreSQL database experience",
			SalaryRange:     "$120,000 - $160,000",
			Location:        "New York, NY",
			JobType:         "full-time",
			ExperienceLevel: "senior",
		},
		{
			Title:           "Full Stack Developer",
			Description:     "Join our dynamic team as a Full Stack Developer. You will work on both frontend and backend systems.",
			Requirements:    "- 3+ years of experience\n- React.js and Node.js\n- RESTful API design",
			SalaryRange:     "$90,000 - $130,000",
			Location:        "Remote",
			JobType:         "full-time",
			ExperienceLevel: "mid",
			IsRemote:        true,
		},
	}
	for i := range jobs {
		job := jobs[i]
		job.ID = uuid.NewString()
		job.Slug = slug.Make(job.Title) + "-" + job.ID[:8]
		job.IsActive = true
		job.EmployerID = employer.ID
		if err := jobRepo.Create(ctx, &job); err != nil {
			return err
		}
	}

	fmt.Println("Sample data created successfully!")
	fmt.Println("Employer: employer@company.com / employer123")
	fmt.Println("Job Seeker: seeker@example.com / seeker123")
	return nil
}

func sampleUser(ctx context.Context, repo repository.UserRepository, email, password, role, fullName, companyName, phone string) (*model.User, error) {
	hashed, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hashed,
		Role:           role,
		FullName:       &fullName,
		Phone:          &phone,
	}
	if companyName != "" {
		user.CompanyName = &companyName
	}
	if err := repo.Create(ctx, user); err != nil && !errors.Is(err, common.ErrConflict) {
		return nil, err
	}
	return user, nil
}
