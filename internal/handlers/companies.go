package handlers

import (
	"net/http"
	"strings"

	"careerconnect/internal/apperr"
	"careerconnect/internal/middleware"
	"careerconnect/internal/models"
	"careerconnect/internal/store"
	"careerconnect/internal/workflow"
)

type CompanyHandler struct {
	companies       store.CompanyStore
	jobApplications store.JobApplicationStore
	workflow        *workflow.Service
}

func NewCompanyHandler(companies store.CompanyStore, jobApplications store.JobApplicationStore, wf *workflow.Service) *CompanyHandler {
	return &CompanyHandler{companies: companies, jobApplications: jobApplications, workflow: wf}
}

// GET /api/companies (admin)
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companies.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

type companyProfileRequest struct {
	Name    string `json:"name"`
	About   string `json:"about"`
	Website string `json:"website"`
}

// PUT /api/company/profile (company). Creates the record on first save.
func (h *CompanyHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var req companyProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = principal.Name
	}

	existing, err := h.companies.GetByName(r.Context(), principal.Name)
	if err != nil {
		if !apperr.Is(err, apperr.CodeNotFound) {
			writeError(w, err)
			return
		}
		company := &models.Company{Name: name, About: req.About, Website: req.Website, Status: models.CompanyPending}
		if err := h.companies.Create(r.Context(), company); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, company)
		return
	}

	existing.Name = name
	if req.About != "" {
		existing.About = req.About
	}
	if req.Website != "" {
		existing.Website = req.Website
	}
	if err := h.companies.Update(r.Context(), existing); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

// GET /api/company/applicants (company)
func (h *CompanyHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	apps, err := h.jobApplications.ListByCompany(r.Context(), principal.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// GET /api/company/applicants/qualified (company)
func (h *CompanyHandler) ListQualifiedApplicants(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	apps, err := h.workflow.QualifiedApplicants(r.Context(), principal.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

type companyStatusRequest struct {
	Status string `json:"status"`
}

// PATCH /api/companies/{id}/status (admin)
func (h *CompanyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req companyStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	status := models.CompanyStatus(req.Status)
	switch status {
	case models.CompanyPending, models.CompanyApproved, models.CompanySuspended:
	default:
		writeError(w, apperr.New(apperr.CodeValidation, "status must be pending, approved or suspended", nil))
		return
	}

	company, err := h.companies.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	company.Status = status
	if err := h.companies.Update(r.Context(), company); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}
