package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"recruitconnect/internal/api/middleware"
	"recruitconnect/internal/app/service"
	"recruitconnect/internal/common"
	"recruitconnect/internal/common/security"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	authMW      *middleware.AuthMiddleware
}

func NewAuthHandler(authService *service.AuthService, authMW *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{authService: authService, authMW: authMW}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/refresh", h.refresh)

	r.Group(func(protected chi.Router) {
		protected.Use(h.authMW.Authenticator)
		protected.Get("/me", h.me)
		protected.Post("/logout", h.logout)
		protected.Post("/change-password", h.changePassword)
		protected.Get("/verify-role/{role}", h.verifyRole)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":       "User registered successfully",
		"user":          resp.User,
		"access_token":  resp.AccessToken,
		"refresh_token": resp.RefreshToken,
		"token_type":    "Bearer",
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Login successful",
		"user":          resp.User,
		"access_token":  resp.AccessToken,
		"refresh_token": resp.RefreshToken,
		"token_type":    "Bearer",
	})
}

// refresh exchanges a valid refresh token for a new access token.
func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		common.RespondWithError(w, http.StatusUnauthorized, "Refresh token required")
		return
	}
	if security.GetTokenTypeFromClaims(claims) != security.TokenTypeRefresh {
		common.RespondWithError(w, http.StatusUnauthorized, "A refresh token is required for this endpoint")
		return
	}
	userID, err := security.GetUserIDFromClaims(claims)
	if err != nil {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
		return
	}

	accessToken, err := h.authService.Refresh(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Token refreshed successfully",
		"access_token": accessToken,
		"token_type":   "Bearer",
	})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// logout performs no server-side invalidation: tokens stay valid until they
// expire and the client is expected to discard them.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logged out successfully",
		"note":    "Please remove the token from client storage",
	})
}

func (h *AuthHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.authService.ChangePassword(r.Context(), user, req); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"message": "Password changed successfully"})
}

func (h *AuthHandler) verifyRole(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	role := strings.ToLower(chi.URLParam(r, "role"))
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"has_role":       user.Role == role,
		"user_role":      user.Role,
		"requested_role": role,
	})
}
