package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"recruitconnect/internal/api/middleware"
	"recruitconnect/internal/app/service"
	"recruitconnect/internal/common"
	"recruitconnect/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type JobHandler struct {
	jobService *service.JobService
	authMW     *middleware.AuthMiddleware
}

func NewJobHandler(jobService *service.JobService, authMW *middleware.AuthMiddleware) *JobHandler {
	return &JobHandler{jobService: jobService, authMW: authMW}
}

func (h *JobHandler) RegisterRoutes(r chi.Router) {
	r.Use(h.authMW.Authenticator)

	r.Get("/", h.listJobs)

	r.Group(func(employer chi.Router) {
		employer.Use(h.authMW.RequireRoles(model.RoleEmployer))
		employer.Get("/my-jobs", h.myJobs)
		employer.Post("/", h.createJob)
		employer.Put("/{jobID}", h.updateJob)
		employer.Delete("/{jobID}", h.deleteJob)
		employer.Get("/{jobID}/applications", h.listJobApplications)
	})

	r.Get("/{jobID}", h.getJob)
}

func (h *JobHandler) listJobs(w http.ResponseWriter, r *http.Request) {
	page, perPage := common.PageParams(r)
	q := r.URL.Query()

	filter := model.JobFilter{
		Search:     strings.TrimSpace(q.Get("search")),
		Location:   strings.TrimSpace(q.Get("location")),
		JobType:    strings.TrimSpace(q.Get("job_type")),
		EmployerID: strings.TrimSpace(q.Get("employer_id")),
	}
	if raw := q.Get("is_remote"); raw != "" {
		isRemote := raw == "true" || raw == "1" || raw == "yes"
		filter.IsRemote = &isRemote
	}

	jobs, pagination, err := h.jobService.ListJobs(r.Context(), filter, page, perPage)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":       jobs,
		"pagination": pagination,
	})
}

func (h *JobHandler) getJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobService.GetJob(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"job": job})
}

func (h *JobHandler) createJob(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	job, err := h.jobService.CreateJob(r.Context(), user, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Job posted successfully",
		"job":     job,
	})
}

func (h *JobHandler) updateJob(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	job, err := h.jobService.UpdateJob(r.Context(), user, chi.URLParam(r, "jobID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Job updated successfully",
		"job":     job,
	})
}

func (h *JobHandler) deleteJob(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	jobID := chi.URLParam(r, "jobID")
	hard := r.URL.Query().Get("hard") == "true"

	if err := h.jobService.DeleteJob(r.Context(), user, jobID, hard); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	message := "Job deactivated (not deleted)"
	if hard {
		message = "Job permanently deleted"
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"job_id":  jobID,
	})
}

func (h *JobHandler) myJobs(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	page, perPage := common.PageParams(r)
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	jobs, pagination, err := h.jobService.MyJobs(r.Context(), user, includeInactive, page, perPage)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":       jobs,
		"pagination": pagination,
	})
}

func (h *JobHandler) listJobApplications(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	page, perPage := common.PageParams(r)
	status := model.ApplicationStatus(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))))

	apps, job, pagination, err := h.jobService.ListJobApplications(r.Context(), user, chi.URLParam(r, "jobID"), status, page, perPage)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"applications": apps,
		"job": model.JobSummary{
			ID:          job.ID,
			Title:       job.Title,
			Slug:        job.Slug,
			CompanyName: job.EmployerName,
			Location:    job.Location,
			JobType:     job.JobType,
			SalaryRange: job.SalaryRange,
			IsRemote:    job.IsRemote,
			CreatedAt:   job.CreatedAt,
		},
		"pagination": pagination,
	})
}
