package service

import (
	"context"
	"strings"
	"testing"

	"recruitconnect/internal/common"
	"recruitconnect/internal/domain/model"
	"recruitconnect/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func employerUser() *model.User {
	company := "Acme"
	return &model.User{ID: "emp-1", Role: model.RoleEmployer, CompanyName: &company}
}

func TestCreateJob(t *testing.T) {
	jobRepo := new(mocks.JobRepository)
	jobRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Job")).Return(nil)
	svc := NewJobService(jobRepo, new(mocks.ApplicationRepository))

	job, err := svc.CreateJob(context.Background(), employerUser(), CreateJobRequest{
		Title:           "Backend Engineer",
		Description:     "Build things",
		JobType:         "Full-Time",
		ExperienceLevel: "Mid",
		IsRemote:        true,
	})
	require.NoError(t, err)

	assert.True(t, job.IsActive, "new jobs default to active")
	assert.Equal(t, "emp-1", job.EmployerID)
	assert.Equal(t, "full-time", job.JobType, "job_type lower-cased on write")
	assert.Equal(t, "mid", job.ExperienceLevel)
	assert.True(t, strings.HasPrefix(job.Slug, "backend-engineer-"), "slug derived from title, got %q", job.Slug)
}

func TestCreateJobValidation(t *testing.T) {
	svc := NewJobService(new(mocks.JobRepository), new(mocks.ApplicationRepository))

	_, err := svc.CreateJob(context.Background(), employerUser(), CreateJobRequest{
		Title: "1234", Description: "desc",
	})
	assert.ErrorIs(t, err, common.ErrValidation, "title under 5 chars")

	_, err = svc.CreateJob(context.Background(), employerUser(), CreateJobRequest{
		Title: "Backend Engineer", Description: "   ",
	})
	assert.ErrorIs(t, err, common.ErrValidation, "empty description")
}

func TestGetJob(t *testing.T) {
	jobRepo := new(mocks.JobRepository)
	jobRepo.On("FindByID", mock.Anything, "active").Return(&model.Job{ID: "active", IsActive: true}, nil)
	jobRepo.On("FindByID", mock.Anything, "inactive").Return(&model.Job{ID: "inactive", IsActive: false}, nil)
	jobRepo.On("FindByID", mock.Anything, "missing").Return(nil, common.ErrNotFound)
	svc := NewJobService(jobRepo, new(mocks.ApplicationRepository))

	_, err := svc.GetJob(context.Background(), "active")
	assert.NoError(t, err)

	_, err = svc.GetJob(context.Background(), "inactive")
	assert.ErrorIs(t, err, common.ErrNotFound, "deactivated jobs look like missing ones")

	_, err = svc.GetJob(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateJob(t *testing.T) {
	owner := employerUser()
	intruder := &model.User{ID: "emp-2", Role: model.RoleEmployer}

	newJob := func() *model.Job {
		return &model.Job{ID: "j1", Title: "Backend Engineer", Description: "Build things",
			EmployerID: owner.ID, IsActive: true}
	}

	t.Run("partial update keeps unsupplied fields", func(t *testing.T) {
		jobRepo := new(mocks.JobRepository)
		jobRepo.On("FindByID", mock.Anything, "j1").Return(newJob(), nil)
		jobRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Job")).Return(nil)
		svc := NewJobService(jobRepo, new(mocks.ApplicationRepository))

		location := "Berlin"
		job, err := svc.UpdateJob(context.Background(), owner, "j1", UpdateJobRequest{Location: &location})
		require.NoError(t, err)
		assert.Equal(t, "Berlin", job.Location)
		assert.Equal(t, "Backend Engineer", job.Title)
	})

	t.Run("supplied empty title rejected", func(t *testing.T) {
		jobRepo := new(mocks.JobRepository)
		jobRepo.On("FindByID", mock.Anything, "j1").Return(newJob(), nil)
		svc := NewJobService(jobRepo, new(mocks.ApplicationRepository))

		empty := "  "
		_, err := svc.UpdateJob(context.Background(), owner, "j1", UpdateJobRequest{Title: &empty})
		assert.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		jobRepo := new(mocks.JobRepository)
		jobRepo.On("FindByID", mock.Anything, "j1").Return(newJob(), nil)
		svc := NewJobService(jobRepo, new(mocks.ApplicationRepository))

		title := "New Title"
		_, err := svc.UpdateJob(context.Background(), intruder, "j1", UpdateJobRequest{Title: &title})
		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("missing job", func(t *testing.T) {
		jobRepo := new(mocks.JobRepository)
		jobRepo.On("FindByID", mock.Anything, "missing").Return(nil, common.ErrNotFound)
		svc := NewJobService(jobRepo, new(mocks.ApplicationRepository))

		_, err := svc.UpdateJob(context.Background(), owner, "missing", UpdateJobRequest{})
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDeleteJob(t *testing.T) {
	owner := employerUser()
	job := &model.Job{ID: "j1", EmployerID: owner.ID}

	t.Run("soft delete by default", func(t *testing.T) {
		jobRepo := new(mocks.JobRepository)
		jobRepo.On("FindByID", mock.Anything, "j1").Return(job, nil)
		jobRepo.On("SoftDelete", mock.Anything, "j1").Return(nil)
		svc := NewJobService(jobRepo, new(mocks.ApplicationRepository))

		require.NoError(t, svc.DeleteJob(context.Background(), owner, "j1", false))
		jobRepo.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
	})

	t.Run("hard delete on request", func(t *testing.T) {
		jobRepo := new(mocks.JobRepository)
		jobRepo.On("FindByID", mock.Anything, "j1").Return(job, nil)
		jobRepo.On("HardDelete", mock.Anything, "j1").Return(nil)
		svc := NewJobService(jobRepo, new(mocks.ApplicationRepository))

		require.NoError(t, svc.DeleteJob(context.Background(), owner, "j1", true))
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		jobRepo := new(mocks.JobRepository)
		jobRepo.On("FindByID", mock.Anything, "j1").Return(job, nil)
		svc := NewJobService(jobRepo, new(mocks.ApplicationRepository))

		err := svc.DeleteJob(context.Background(), &model.User{ID: "emp-2", Role: model.RoleEmployer}, "j1", false)
		assert.ErrorIs(t, err, common.ErrForbidden)
	})
}

func TestListJobs(t *testing.T) {
	jobRepo := new(mocks.JobRepository)
	jobRepo.On("List", mock.Anything, mock.AnythingOfType("model.JobFilter"), 10, 10).
		Return([]model.JobSummary{{ID: "j1"}}, 21, nil)
	svc := NewJobService(jobRepo, new(mocks.ApplicationRepository))

	jobs, pagination, err := svc.ListJobs(context.Background(), model.JobFilter{}, 2, 10)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
	assert.Equal(t, 21, pagination.TotalItems)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.True(t, pagination.HasNext)
	assert.True(t, pagination.HasPrev)
}

func TestListJobApplications(t *testing.T) {
	owner := employerUser()
	job := &model.Job{ID: "j1", EmployerID: owner.ID}

	t.Run("unknown status filter ignored", func(t *testing.T) {
		jobRepo := new(mocks.JobRepository)
		jobRepo.On("FindByID", mock.Anything, "j1").Return(job, nil)
		appRepo := new(mocks.ApplicationRepository)
		appRepo.On("ListByJob", mock.Anything, "j1", model.ApplicationStatus(""), 10, 0).
			Return([]model.Application{}, 0, nil)
		svc := NewJobService(jobRepo, appRepo)

		_, _, _, err := svc.ListJobApplications(context.Background(), owner, "j1", "bogus", 1, 10)
		require.NoError(t, err)
		appRepo.AssertExpectations(t)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		jobRepo := new(mocks.JobRepository)
		jobRepo.On("FindByID", mock.Anything, "j1").Return(job, nil)
		svc := NewJobService(jobRepo, new(mocks.ApplicationRepository))

		_, _, _, err := svc.ListJobApplications(context.Background(),
			&model.User{ID: "emp-2", Role: model.RoleEmployer}, "j1", "", 1, 10)
		assert.ErrorIs(t, err, common.ErrForbidden)
	})
}
