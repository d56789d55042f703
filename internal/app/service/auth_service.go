package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recruitconnect/internal/common"
	"recruitconnect/internal/common/security"
	"recruitconnect/internal/domain/model"
	"recruitconnect/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type AuthResponse struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := strings.ToLower(strings.TrimSpace(req.Role))
	fullName := strings.TrimSpace(req.FullName)
	companyName := strings.TrimSpace(req.CompanyName)
	phone := strings.TrimSpace(req.Phone)

	if email == "" {
		return nil, fmt.Errorf("email is required: %w", common.ErrValidation)
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return nil, fmt.Errorf("invalid email format: %w", common.ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters long: %w", common.ErrValidation)
	}
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("role must be either %q or %q: %w",
			model.RoleEmployer, model.RoleJobSeeker, common.ErrValidation)
	}
	if role == model.RoleEmployer && companyName == "" {
		return nil, fmt.Errorf("company name is required for employers: %w", common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           role,
		FullName:       optional(fullName),
		CompanyName:    optional(companyName),
		Phone:          optional(phone),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on a duplicate email
		return nil, err
	}

	return s.respondWithTokens(user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Same message whether the email or the password is wrong.
			return nil, fmt.Errorf("invalid email or password: %w", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, fmt.Errorf("invalid email or password: %w", common.ErrUnauthorized)
	}

	return s.respondWithTokens(user)
}

// Refresh mints a new access token for the holder of a valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", fmt.Errorf("the user associated with this token no longer exists: %w", common.ErrNotFound)
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	token, err := security.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, user *model.User, req ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fmt.Errorf("current password and new password are required: %w", common.ErrValidation)
	}
	if !security.CheckPasswordHash(req.CurrentPassword, user.HashedPassword) {
		return fmt.Errorf("current password is incorrect: %w", common.ErrUnauthorized)
	}
	if len(req.NewPassword) < 8 {
		return fmt.Errorf("new password must be at least 8 characters long: %w", common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *AuthService) respondWithTokens(user *model.User) (*AuthResponse, error) {
	pair, err := security.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	user.HashedPassword = "" // Clear password before returning
	return &AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
