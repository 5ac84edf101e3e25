package handlers

import (
	"net/http"

	"careerconnect/internal/apperr"
	"careerconnect/internal/middleware"
	"careerconnect/internal/models"
	"careerconnect/internal/store"
)

type JobHandler struct {
	jobs      store.JobStore
	companies store.CompanyStore
}

func NewJobHandler(jobs store.JobStore, companies store.CompanyStore) *JobHandler {
	return &JobHandler{jobs: jobs, companies: companies}
}

// GET /api/jobs (public)
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// GET /api/company/jobs (company)
func (h *JobHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	jobs, err := h.jobs.ListByCompany(r.Context(), principal.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

type jobRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Qualifications string `json:"qualifications"`
	Requirements   string `json:"requirements"`
}

// POST /api/jobs (company). Only an approved company may post.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	company, err := h.companies.GetByName(r.Context(), principal.Name)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			writeError(w, apperr.New(apperr.CodeForbidden, "company profile is not approved", nil))
			return
		}
		writeError(w, err)
		return
	}
	if company.Status != models.CompanyApproved {
		writeError(w, apperr.New(apperr.CodeForbidden, "company is not approved", nil))
		return
	}

	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Title == "" || req.Description == "" {
		writeError(w, apperr.New(apperr.CodeValidation, "title and description are required", nil))
		return
	}

	job := &models.Job{
		Title:          req.Title,
		Description:    req.Description,
		Qualifications: req.Qualifications,
		Requirements:   req.Requirements,
		Company:        principal.Name,
	}
	if err := h.jobs.Create(r.Context(), job); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// DELETE /api/jobs/{id} (company, admin)
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	job, err := h.jobs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	if principal.Role == models.RoleCompany && job.Company != principal.Name {
		writeError(w, apperr.New(apperr.CodeForbidden, "job belongs to another company", nil))
		return
	}

	if err := h.jobs.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
