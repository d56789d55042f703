package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"recruitconnect/internal/api/middleware"
	"recruitconnect/internal/app/service"
	"recruitconnect/internal/common"
	"recruitconnect/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type ApplicationHandler struct {
	appService *service.ApplicationService
	authMW     *middleware.AuthMiddleware
}

func NewApplicationHandler(appService *service.ApplicationService, authMW *middleware.AuthMiddleware) *ApplicationHandler {
	return &ApplicationHandler{appService: appService, authMW: authMW}
}

func (h *ApplicationHandler) RegisterRoutes(r chi.Router) {
	r.Use(h.authMW.Authenticator)

	r.Get("/", h.listMine)
	r.Get("/{applicationID}", h.getApplication)

	r.Group(func(seeker chi.Router) {
		seeker.Use(h.authMW.RequireRoles(model.RoleJobSeeker))
		seeker.Post("/", h.apply)
		seeker.Post("/{applicationID}/withdraw", h.withdraw)
		seeker.Delete("/{applicationID}", h.deleteApplication)
		seeker.Get("/job/{jobID}/check", h.checkStatus)
	})

	r.Group(func(employer chi.Router) {
		employer.Use(h.authMW.RequireRoles(model.RoleEmployer))
		employer.Put("/{applicationID}/status", h.updateStatus)
	})
}

func (h *ApplicationHandler) apply(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	app, err := h.appService.Apply(r.Context(), user, req)
	if err != nil {
		var dup *service.DuplicateApplicationError
		if errors.As(err, &dup) {
			common.RespondWithErrorDetails(w, http.StatusConflict, dup.Error(), map[string]interface{}{
				"application_id": dup.ApplicationID,
				"status":         dup.Status,
			})
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Application submitted successfully",
		"application": app,
	})
}

func (h *ApplicationHandler) listMine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	page, perPage := common.PageParams(r)
	q := r.URL.Query()
	filter := model.ApplicationFilter{
		Status: model.ApplicationStatus(strings.ToLower(strings.TrimSpace(q.Get("status")))),
		JobID:  strings.TrimSpace(q.Get("job_id")),
	}

	apps, pagination, err := h.appService.ListMine(r.Context(), user, filter, page, perPage)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"applications": apps,
		"pagination":   pagination,
	})
}

func (h *ApplicationHandler) getApplication(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	app, err := h.appService.GetApplication(r.Context(), user, chi.URLParam(r, "applicationID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"application": app})
}

func (h *ApplicationHandler) withdraw(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	app, err := h.appService.Withdraw(r.Context(), user, chi.URLParam(r, "applicationID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Application withdrawn successfully",
		"application": app,
	})
}

func (h *ApplicationHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	newStatus := model.ApplicationStatus(strings.ToLower(strings.TrimSpace(req.Status)))

	app, err := h.appService.Decide(r.Context(), user, chi.URLParam(r, "applicationID"), newStatus)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Application status updated successfully",
		"application": app,
	})
}

func (h *ApplicationHandler) deleteApplication(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := h.appService.DeleteApplication(r.Context(), user, chi.URLParam(r, "applicationID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"message": "Application deleted successfully"})
}

func (h *ApplicationHandler) checkStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	resp, err := h.appService.CheckStatus(r.Context(), user, chi.URLParam(r, "jobID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
