package mocks

import (
	"context"

	"recruitconnect/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

type JobRepository struct{ mock.Mock }

func (m *JobRepository) Create(ctx context.Context, job *model.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *JobRepository) Update(ctx context.Context, job *model.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *JobRepository) FindByID(ctx context.Context, id string) (*model.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}

func (m *JobRepository) List(ctx context.Context, filter model.JobFilter, limit, offset int) ([]model.JobSummary, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.JobSummary), args.Int(1), args.Error(2)
}

func (m *JobRepository) ListByEmployer(ctx context.Context, employerID string, includeInactive bool, limit, offset int) ([]model.Job, int, error) {
	args := m.Called(ctx, employerID, includeInactive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Job), args.Int(1), args.Error(2)
}

func (m *JobRepository) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *JobRepository) HardDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
