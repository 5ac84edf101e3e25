package handlers

import (
	"net/http"
	"strconv"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"careerconnect/internal/apperr"
	"careerconnect/internal/auth"
	"careerconnect/internal/middleware"
	"careerconnect/internal/models"
	"careerconnect/internal/store"
	"careerconnect/internal/workflow"
)

type ApplicationHandler struct {
	workflow     *workflow.Service
	applications store.ApplicationStore
	admissions   store.AdmissionStore
	tokens       *auth.TokenProvider
	baseURL      string
}

func NewApplicationHandler(wf *workflow.Service, applications store.ApplicationStore, admissions store.AdmissionStore, tokens *auth.TokenProvider, baseURL string) *ApplicationHandler {
	return &ApplicationHandler{workflow: wf, applications: applications, admissions: admissions, tokens: tokens, baseURL: baseURL}
}

type applyRequest struct {
	CourseID uint `json:"courseId"`
}

// POST /api/applications (student)
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.CourseID == 0 {
		writeError(w, apperr.New(apperr.CodeValidation, "courseId is required", nil))
		return
	}

	app, err := h.workflow.ApplyToCourse(r.Context(), principal.Email, req.CourseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

// GET /api/applications (student)
func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	apps, err := h.applications.ListByStudent(r.Context(), principal.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// GET /api/institute/applications (institute)
func (h *ApplicationHandler) ListInstitute(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	apps, err := h.applications.ListByInstitution(r.Context(), principal.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

type statusRequest struct {
	Status string `json:"status"`
}

// PATCH /api/applications/{id}/status (institute, admin)
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	app, err := h.applications.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	principal, _ := middleware.PrincipalFromContext(r.Context())
	if principal.Role == models.RoleInstitute && app.Institution != principal.Name {
		writeError(w, apperr.New(apperr.CodeForbidden, "application belongs to another institution", nil))
		return
	}

	updated, err := h.workflow.UpdateStatus(r.Context(), id, models.ApplicationStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// GET /api/institute/stats (institute)
func (h *ApplicationHandler) InstituteStats(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	stats, err := h.workflow.InstitutionStats(r.Context(), principal.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type publishRequest struct {
	ApplicationID uint `json:"applicationId"`
}

// POST /api/admissions (institute)
func (h *ApplicationHandler) PublishAdmission(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.ApplicationID == 0 {
		writeError(w, apperr.New(apperr.CodeValidation, "applicationId is required", nil))
		return
	}

	app, err := h.applications.GetByID(r.Context(), req.ApplicationID)
	if err != nil {
		writeError(w, err)
		return
	}
	principal, _ := middleware.PrincipalFromContext(r.Context())
	if principal.Role == models.RoleInstitute && app.Institution != principal.Name {
		writeError(w, apperr.New(apperr.CodeForbidden, "application belongs to another institution", nil))
		return
	}

	admission, err := h.workflow.PublishAdmission(r.Context(), req.ApplicationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, admission)
}

// GET /api/admissions (student)
func (h *ApplicationHandler) ListAdmissions(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	admissions, err := h.admissions.ListByStudent(r.Context(), principal.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, admissions)
}

// ownedApplication loads the application and checks the caller owns it.
func (h *ApplicationHandler) ownedApplication(r *http.Request) (*models.Application, error) {
	id, err := idParam(r)
	if err != nil {
		return nil, err
	}
	app, err := h.applications.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	principal, _ := middleware.PrincipalFromContext(r.Context())
	if app.StudentEmail != principal.Email {
		return nil, apperr.New(apperr.CodeForbidden, "not the owner of this application", nil)
	}
	return app, nil
}

type shareRequest struct {
	ExpiresInHours int `json:"expires_in_hours"`
}

type shareResponse struct {
	ShareableURL string `json:"shareable_url"`
}

// POST /api/applications/{id}/share (student). Issues a short-lived link so
// the application status can be shown without signing in.
func (h *ApplicationHandler) Share(w http.ResponseWriter, r *http.Request) {
	app, err := h.ownedApplication(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req shareRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.ExpiresInHours < 1 || req.ExpiresInHours > 168 {
		writeError(w, apperr.New(apperr.CodeValidation, "expires_in_hours must be between 1 and 168", nil))
		return
	}

	token, err := h.tokens.IssueShare(strconv.FormatUint(uint64(app.ID), 10), time.Duration(req.ExpiresInHours)*time.Hour)
	if err != nil {
		writeError(w, apperr.New(apperr.CodeInternal, "failed to create share token", err))
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{ShareableURL: h.baseURL + "/api/share/application?token=" + token})
}

// GET /api/applications/{id}/qrcode (student)
func (h *ApplicationHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	app, err := h.ownedApplication(r)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.IssueShare(strconv.FormatUint(uint64(app.ID), 10), 24*time.Hour)
	if err != nil {
		writeError(w, apperr.New(apperr.CodeInternal, "failed to create share token", err))
		return
	}
	png, err := qrcode.Encode(h.baseURL+"/api/share/application?token="+token, qrcode.Medium, 256)
	if err != nil {
		writeError(w, apperr.New(apperr.CodeInternal, "failed to generate QR code", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// GET /api/share/application?token= (public)
func (h *ApplicationHandler) SharedView(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, apperr.New(apperr.CodeValidation, "token is required", nil))
		return
	}
	rawID, err := h.tokens.VerifyShare(token)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		writeError(w, apperr.New(apperr.CodeUnauthorized, "invalid share token", err))
		return
	}
	app, err := h.applications.GetByID(r.Context(), uint(id))
	if err != nil {
		writeError(w, err)
		return
	}
	// public projection: no student email
	writeJSON(w, http.StatusOK, map[string]any{
		"applicationId": app.ApplicationID,
		"student":       app.Student,
		"course":        app.Course,
		"institution":   app.Institution,
		"status":        app.Status,
		"appliedDate":   app.AppliedDate,
	})
}
