package mocks

import (
	"context"

	"recruitconnect/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	return m.Called(ctx, id, hashedPassword).Error(0)
}
