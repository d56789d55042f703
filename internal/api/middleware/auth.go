package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"recruitconnect/internal/common"
	"recruitconnect/internal/common/security"
	"recruitconnect/internal/domain/model"
	"recruitconnect/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const UserCtxKey contextKey = "currentUser"

// AuthMiddleware resolves the caller from a verified token and loads the
// backing user row, so downstream handlers always see a live identity.
type AuthMiddleware struct {
	userRepo repository.UserRepository
}

func NewAuthMiddleware(userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{userRepo: userRepo}
}

// Authenticator requires a valid access token whose user still exists.
// jwtauth.Verifier must have run earlier in the chain.
func (m *AuthMiddleware) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}
		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		if security.GetTokenTypeFromClaims(claims) != security.TokenTypeAccess {
			common.RespondWithError(w, http.StatusUnauthorized, "An access token is required for this endpoint")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		user, err := m.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				common.RespondWithError(w, http.StatusUnauthorized, "The user associated with this token no longer exists")
			} else {
				common.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve user")
			}
			return
		}

		ctx := context.WithValue(r.Context(), UserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles rejects callers whose role is not in the allowed set. Must
// run after Authenticator.
func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
				return
			}
			for _, role := range allowedRoles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			common.RespondWithErrorDetails(w, http.StatusForbidden,
				"This action requires one of the following roles: "+strings.Join(allowedRoles, ", "),
				map[string]interface{}{
					"required_roles": allowedRoles,
					"your_role":      user.Role,
				})
		})
	}
}

// GetUserFromContext returns the authenticated user placed by Authenticator.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*model.User)
	return user, ok
}
