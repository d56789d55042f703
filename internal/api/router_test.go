package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recruitconnect/internal/api"
	"recruitconnect/internal/app/service"
	"recruitconnect/internal/common"
	"recruitconnect/internal/common/security"
	"recruitconnect/internal/domain/model"
	"recruitconnect/internal/mocks"
	"recruitconnect/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router   http.Handler
	userRepo *mocks.UserRepository
	jobRepo  *mocks.JobRepository
	appRepo  *mocks.ApplicationRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:        []byte("router-test-secret"),
		JWTExp:        time.Hour,
		JWTRefreshExp: 720 * time.Hour,
	}
	security.InitJWT()

	userRepo := new(mocks.UserRepository)
	jobRepo := new(mocks.JobRepository)
	appRepo := new(mocks.ApplicationRepository)

	router := api.NewRouter(
		service.NewAuthService(userRepo),
		service.NewJobService(jobRepo, appRepo),
		service.NewApplicationService(appRepo, jobRepo),
		userRepo,
	)
	return &testEnv{router: router, userRepo: userRepo, jobRepo: jobRepo, appRepo: appRepo}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])
}

// TestHiringLifecycle walks the whole flow end to end over HTTP: an employer
// registers and posts a job, a seeker registers and applies, the employer
// accepts the application, and a second decision is rejected because the
// application is no longer pending.
func TestHiringLifecycle(t *testing.T) {
	env := newTestEnv(t)

	// Users are created through the API, so capture them as the repo sees
	// them and serve them back on the lookups the auth middleware performs.
	var createdUsers []*model.User
	env.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			createdUsers = append(createdUsers, args.Get(1).(*model.User))
		}).Return(nil)

	// Employer registers.
	rec := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":        "hr@initech.com",
		"password":     "hunter2hunter2",
		"role":         model.RoleEmployer,
		"company_name": "Initech",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	employerToken, _ := body["access_token"].(string)
	require.NotEmpty(t, employerToken)
	require.NotEmpty(t, body["refresh_token"])

	require.Len(t, createdUsers, 1)
	employer := createdUsers[0]
	env.userRepo.On("FindByID", mock.Anything, employer.ID).Return(employer, nil)

	// Employer posts a job.
	var job *model.Job
	env.jobRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Job")).
		Run(func(args mock.Arguments) { job = args.Get(1).(*model.Job) }).Return(nil)

	rec = env.do(t, http.MethodPost, "/api/jobs/", employerToken, map[string]interface{}{
		"title":       "Senior Gopher",
		"description": "Ship backend services.",
		"location":    "Remote",
		"job_type":    "Full-Time",
		"is_remote":   true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	jobBody := decodeBody(t, rec)["job"].(map[string]interface{})
	assert.Equal(t, true, jobBody["is_active"])
	assert.Equal(t, "full-time", jobBody["job_type"])

	require.NotNil(t, job)
	env.jobRepo.On("FindByID", mock.Anything, job.ID).Return(job, nil)

	// Seeker registers.
	rec = env.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":     "dev@example.com",
		"password":  "hunter2hunter2",
		"role":      model.RoleJobSeeker,
		"full_name": "Sam Dev",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	seekerToken, _ := decodeBody(t, rec)["access_token"].(string)
	require.NotEmpty(t, seekerToken)

	require.Len(t, createdUsers, 2)
	seeker := createdUsers[1]
	env.userRepo.On("FindByID", mock.Anything, seeker.ID).Return(seeker, nil)

	// Employers cannot apply.
	rec = env.do(t, http.MethodPost, "/api/applications/", employerToken, map[string]interface{}{
		"job_id": job.ID,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Seeker applies.
	var app *model.Application
	env.appRepo.On("FindByJobAndApplicant", mock.Anything, job.ID, seeker.ID).
		Return(nil, common.ErrNotFound).Once()
	env.appRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Application")).
		Run(func(args mock.Arguments) { app = args.Get(1).(*model.Application) }).Return(nil)

	rec = env.do(t, http.MethodPost, "/api/applications/", seekerToken, map[string]interface{}{
		"job_id":       job.ID,
		"cover_letter": "I build Go services.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	appBody := decodeBody(t, rec)["application"].(map[string]interface{})
	assert.Equal(t, string(model.StatusPending), appBody["status"])

	require.NotNil(t, app)
	env.appRepo.On("FindByID", mock.Anything, app.ID).Return(app, nil)

	// A second apply to the same job conflicts and names the winner.
	env.appRepo.On("FindByJobAndApplicant", mock.Anything, job.ID, seeker.ID).
		Return(app, nil)
	rec = env.do(t, http.MethodPost, "/api/applications/", seekerToken, map[string]interface{}{
		"job_id": job.ID,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	details := decodeBody(t, rec)["details"].(map[string]interface{})
	assert.Equal(t, app.ID, details["application_id"])

	// The seeker cannot decide their own application.
	rec = env.do(t, http.MethodPut, "/api/applications/"+app.ID+"/status", seekerToken,
		map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Employer accepts.
	env.appRepo.On("UpdateStatusFrom", mock.Anything, app.ID, model.StatusPending, model.StatusAccepted).
		Return(true, nil).Once()
	rec = env.do(t, http.MethodPut, "/api/applications/"+app.ID+"/status", employerToken,
		map[string]string{"status": "Accepted"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	appBody = decodeBody(t, rec)["application"].(map[string]interface{})
	assert.Equal(t, string(model.StatusAccepted), appBody["status"])

	// A second decision bounces off the terminal status.
	rec = env.do(t, http.MethodPut, "/api/applications/"+app.ID+"/status", employerToken,
		map[string]string{"status": "rejected"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already accepted")

	// The accepted application can no longer be withdrawn.
	rec = env.do(t, http.MethodPost, "/api/applications/"+app.ID+"/withdraw", seekerToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.appRepo.AssertExpectations(t)
}

// TestUnauthenticatedAccess verifies the job and application surfaces sit
// behind the authenticator.
func TestUnauthenticatedAccess(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/jobs/", "/api/applications/"} {
		rec := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
