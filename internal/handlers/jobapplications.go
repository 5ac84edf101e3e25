package handlers

import (
	"net/http"

	"careerconnect/internal/apperr"
	"careerconnect/internal/middleware"
	"careerconnect/internal/store"
	"careerconnect/internal/workflow"
)

// JobApplicationHandler serves the student side of job applications.
type JobApplicationHandler struct {
	workflow        *workflow.Service
	jobApplications store.JobApplicationStore
}

func NewJobApplicationHandler(wf *workflow.Service, jobApplications store.JobApplicationStore) *JobApplicationHandler {
	return &JobApplicationHandler{workflow: wf, jobApplications: jobApplications}
}

// Apply handles POST /api/job-applications.
func (h *JobApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var req struct {
		JobID uint `json:"job_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.JobID == 0 {
		writeError(w, apperr.New(apperr.CodeValidation, "job_id is required", nil))
		return
	}

	app, err := h.workflow.ApplyToJob(r.Context(), principal.Email, req.JobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

// ListMine handles GET /api/job-applications.
func (h *JobApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	apps, err := h.jobApplications.ListByStudent(r.Context(), principal.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}
