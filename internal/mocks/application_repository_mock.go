package mocks

import (
	"context"

	"recruitconnect/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

type ApplicationRepository struct{ mock.Mock }

func (m *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *ApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *ApplicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*model.Application, error) {
	args := m.Called(ctx, jobID, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string, filter model.ApplicationFilter, limit, offset int) ([]model.Application, int, error) {
	args := m.Called(ctx, applicantID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Application), args.Int(1), args.Error(2)
}

func (m *ApplicationRepository) ListByEmployer(ctx context.Context, employerID string, filter model.ApplicationFilter, limit, offset int) ([]model.Application, int, error) {
	args := m.Called(ctx, employerID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Application), args.Int(1), args.Error(2)
}

func (m *ApplicationRepository) ListByJob(ctx context.Context, jobID string, status model.ApplicationStatus, limit, offset int) ([]model.Application, int, error) {
	args := m.Called(ctx, jobID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Application), args.Int(1), args.Error(2)
}

func (m *ApplicationRepository) UpdateStatusFrom(ctx context.Context, id string, from, to model.ApplicationStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *ApplicationRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
