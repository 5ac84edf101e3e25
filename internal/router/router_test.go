package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"careerconnect/internal/auth"
	"careerconnect/internal/handlers"
	"careerconnect/internal/middleware"
	"careerconnect/internal/models"
	"careerconnect/internal/storage"
	"careerconnect/internal/store"
	"careerconnect/internal/store/memstore"
	"careerconnect/internal/workflow"
)

type testAPI struct {
	handler http.Handler
	stores  store.Stores
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := zap.NewNop()
	stores := memstore.New().Stores()

	blobs, err := storage.NewDisk(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	tokens := auth.NewTokenProvider("test-secret", time.Hour)
	authSvc := auth.NewService(stores.Users, tokens, auth.NopMailer{}, logger)
	wf := workflow.NewService(stores, nil, nil, logger)
	cache := middleware.NewRoleCache(nil, time.Minute)
	guard := middleware.NewAuthMiddleware(tokens, stores.Users, cache, logger)

	handler := New(Deps{
		Logger:          logger,
		Guard:           guard,
		Auth:            handlers.NewAuthHandler(authSvc, cache),
		Courses:         handlers.NewCourseHandler(stores.Courses, stores.Faculties),
		Jobs:            handlers.NewJobHandler(stores.Jobs, stores.Companies),
		Applications:    handlers.NewApplicationHandler(wf, stores.Applications, stores.Admissions, tokens, "http://localhost:8080"),
		JobApplications: handlers.NewJobApplicationHandler(wf, stores.JobApplications),
		Documents:       handlers.NewDocumentHandler(stores.Documents, blobs),
		Institutions:    handlers.NewInstitutionHandler(stores.Institutions, stores.Faculties, stores.Courses),
		Companies:       handlers.NewCompanyHandler(stores.Companies, stores.JobApplications, wf),
		Admin:           handlers.NewAdminHandler(stores),
		FilesDir:        blobs.Root(),
	})
	return &testAPI{handler: handler, stores: stores}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) register(t *testing.T, name, email, role string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func (a *testAPI) seedDocuments(t *testing.T, email string) {
	t.Helper()
	for _, dt := range models.RequiredDocuments {
		require.NoError(t, a.stores.Documents.Create(context.Background(), &models.Document{
			StudentEmail: email,
			Type:         dt,
			Name:         string(dt) + ".pdf",
			Uploaded:     true,
		}))
	}
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicCatalogNeedsNoToken(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/api/courses", "/api/jobs", "/api/institutions"} {
		rec := api.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/applications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleGates(t *testing.T) {
	api := newTestAPI(t)
	student := api.register(t, "Aarav", "a@x.com", "student")

	// a student must not reach institute, company or admin surfaces
	for _, attempt := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/institute/applications"},
		{http.MethodGet, "/api/company/applicants"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodPost, "/api/courses"},
	} {
		rec := api.do(t, attempt.method, attempt.path, student, map[string]string{})
		assert.Equal(t, http.StatusForbidden, rec.Code, attempt.path)
	}
}

func TestCourseApplicationFlow(t *testing.T) {
	api := newTestAPI(t)

	institute := api.register(t, "NUL", "admissions@nul.ls", "institute")
	student := api.register(t, "Aarav", "a@x.com", "student")

	rec := api.do(t, http.MethodPost, "/api/courses", institute, map[string]string{
		"title":       "Computer Science",
		"description": "Four year degree",
		"duration":    "4 years",
		"faculty":     "Science",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var course models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &course))
	assert.Equal(t, "NUL", course.Institution)

	// documents gate: the apply must fail with a redirect hint first
	rec = api.do(t, http.MethodPost, "/api/applications", student, map[string]uint{"courseId": course.ID})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	var denied map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &denied))
	assert.Equal(t, "documents", denied["redirect"])

	api.seedDocuments(t, "a@x.com")

	rec = api.do(t, http.MethodPost, "/api/applications", student, map[string]uint{"courseId": course.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var app models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
	assert.Equal(t, models.StatusPending, app.Status)

	// the institute reviews and admits
	rec = api.do(t, http.MethodGet, "/api/institute/applications", institute, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	statusPath := fmt.Sprintf("/api/applications/%d/status", app.ID)
	rec = api.do(t, http.MethodPatch, statusPath, institute, map[string]string{"status": "admitted"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// terminal status stays frozen
	rec = api.do(t, http.MethodPatch, statusPath, institute, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/institute/stats", institute, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats workflow.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Admitted)
}

func TestShareLinkFlow(t *testing.T) {
	api := newTestAPI(t)

	institute := api.register(t, "NUL", "admissions@nul.ls", "institute")
	student := api.register(t, "Aarav", "a@x.com", "student")
	api.seedDocuments(t, "a@x.com")

	rec := api.do(t, http.MethodPost, "/api/courses", institute, map[string]string{
		"title":       "Physics",
		"description": "Three year degree",
		"duration":    "3 years",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var course models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &course))

	rec = api.do(t, http.MethodPost, "/api/applications", student, map[string]uint{"courseId": course.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	var app models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))

	rec = api.do(t, http.MethodPost, fmt.Sprintf("/api/applications/%d/share", app.ID), student, map[string]int{"expires_in_hours": 24})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var share struct {
		ShareableURL string `json:"shareable_url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &share))
	require.NotEmpty(t, share.ShareableURL)

	// the shared view is public and hides the student email
	u, err := url.Parse(share.ShareableURL)
	require.NoError(t, err)
	rec = api.do(t, http.MethodGet, u.Path+"?"+u.RawQuery, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "a@x.com")
	assert.Contains(t, rec.Body.String(), app.ApplicationID)
}

func TestAdminSummary(t *testing.T) {
	api := newTestAPI(t)

	admin := api.register(t, "Root", "admin@x.com", "admin")
	institute := api.register(t, "NUL", "admissions@nul.ls", "institute")
	student := api.register(t, "Aarav", "a@x.com", "student")
	api.seedDocuments(t, "a@x.com")

	rec := api.do(t, http.MethodPost, "/api/courses", institute, map[string]string{
		"title":       "Physics",
		"description": "Three year degree",
		"duration":    "3 years",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var course models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &course))

	rec = api.do(t, http.MethodPost, "/api/applications", student, map[string]uint{"courseId": course.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/api/admin/summary", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary struct {
		Users        map[string]int `json:"users"`
		Applications int            `json:"applications"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Users["student"])
	assert.Equal(t, 1, summary.Users["admin"])
	// counted even though no Institution record exists for "NUL"
	assert.Equal(t, 1, summary.Applications)
}

func TestJobPostingRequiresApprovedCompany(t *testing.T) {
	api := newTestAPI(t)

	company := api.register(t, "Acme", "jobs@acme.io", "company")
	admin := api.register(t, "Root", "admin@x.com", "admin")

	jobBody := map[string]string{"title": "Backend Engineer", "description": "Go services"}

	// no company record yet
	rec := api.do(t, http.MethodPost, "/api/jobs", company, jobBody)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	// the profile save leaves the company pending
	rec = api.do(t, http.MethodPut, "/api/company/profile", company, map[string]string{"about": "We build things"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var profile models.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Equal(t, models.CompanyPending, profile.Status)

	rec = api.do(t, http.MethodPost, "/api/jobs", company, jobBody)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	statusPath := fmt.Sprintf("/api/companies/%d/status", profile.ID)
	rec = api.do(t, http.MethodPatch, statusPath, admin, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/api/jobs", company, jobBody)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodPatch, statusPath, admin, map[string]string{"status": "suspended"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/jobs", company, jobBody)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
}

func (a *testAPI) uploadDocument(t *testing.T, token, docType, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("type", docType))
	part, err := form.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestDocumentUpload(t *testing.T) {
	api := newTestAPI(t)
	student := api.register(t, "Aarav", "a@x.com", "student")

	rec := api.uploadDocument(t, student, "transcript", "transcript.pdf", "%PDF-1.4 grades")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var doc models.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, models.DocTranscript, doc.Type)
	assert.True(t, doc.Uploaded)
	assert.Contains(t, doc.URL, "/files/documents/")

	// the stored blob is served back publicly
	u, err := url.Parse(doc.URL)
	require.NoError(t, err)
	rec = api.do(t, http.MethodGet, u.Path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.4 grades", rec.Body.String())

	rec = api.do(t, http.MethodGet, "/api/documents", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var docs []models.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	assert.Len(t, docs, 1)

	rec = api.uploadDocument(t, student, "resume", "cv.pdf", "%PDF-1.4 cv")
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}
