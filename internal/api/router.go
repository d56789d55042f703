package api

import (
	"net/http"
	"time"

	"recruitconnect/internal/api/handler"
	"recruitconnect/internal/api/middleware"
	"recruitconnect/internal/app/service"
	"recruitconnect/internal/common"
	"recruitconnect/internal/common/security"
	"recruitconnect/internal/domain/repository"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	jobService *service.JobService,
	applicationService *service.ApplicationService,
	userRepo repository.UserRepository,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a token when present and puts claims in the request context.
	// Routes that require authentication enforce it via the Authenticator.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	authMW := middleware.NewAuthMiddleware(userRepo)

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"message": "RecruitConnect API is running",
		})
	})

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(authService, authMW)
		api.Route("/auth", authHandler.RegisterRoutes)

		jobHandler := handler.NewJobHandler(jobService, authMW)
		api.Route("/jobs", jobHandler.RegisterRoutes)

		applicationHandler := handler.NewApplicationHandler(applicationService, authMW)
		api.Route("/applications", applicationHandler.RegisterRoutes)
	})

	return r
}
