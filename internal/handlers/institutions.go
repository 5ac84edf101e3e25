package handlers

import (
	"net/http"
	"strings"

	"careerconnect/internal/apperr"
	"careerconnect/internal/middleware"
	"careerconnect/internal/models"
	"careerconnect/internal/store"
)

type InstitutionHandler struct {
	institutions store.InstitutionStore
	faculties    store.FacultyStore
	courses      store.CourseStore
}

func NewInstitutionHandler(institutions store.InstitutionStore, faculties store.FacultyStore, courses store.CourseStore) *InstitutionHandler {
	return &InstitutionHandler{institutions: institutions, faculties: faculties, courses: courses}
}

// GET /api/institutions (public)
func (h *InstitutionHandler) List(w http.ResponseWriter, r *http.Request) {
	institutions, err := h.institutions.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, institutions)
}

type institutionRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	About    string `json:"about"`
}

// POST /api/institutions (institute, admin)
func (h *InstitutionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req institutionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, apperr.New(apperr.CodeValidation, "name is required", nil))
		return
	}
	institution := &models.Institution{Name: req.Name, Location: req.Location, About: req.About}
	if err := h.institutions.Create(r.Context(), institution); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, institution)
}

// PUT /api/institutions/{id} (institute, admin)
func (h *InstitutionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	institution, err := h.institutions.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	var req institutionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Name != "" {
		institution.Name = req.Name
	}
	if req.Location != "" {
		institution.Location = req.Location
	}
	if req.About != "" {
		institution.About = req.About
	}
	if err := h.institutions.Update(r.Context(), institution); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, institution)
}

// DELETE /api/institutions/{id} (admin). Deletion does not cascade; the
// response names how many faculties and courses are left dangling so the
// operator can confirm knowingly.
func (h *InstitutionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	institution, err := h.institutions.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	faculties, err := h.faculties.ListByInstitution(r.Context(), institution.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	courses, err := h.courses.ListByInstitution(r.Context(), institution.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.institutions.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "deleted",
		"orphanedFaculties": len(faculties),
		"orphanedCourses":   len(courses),
	})
}

type facultyRequest struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
}

// POST /api/faculties (institute, admin)
func (h *InstitutionHandler) CreateFaculty(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var req facultyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, apperr.New(apperr.CodeValidation, "name is required", nil))
		return
	}
	institution := req.Institution
	if principal.Role == models.RoleInstitute {
		institution = principal.Name
	}

	faculty := &models.Faculty{Name: req.Name, Institution: institution}
	if err := h.faculties.Create(r.Context(), faculty); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, faculty)
}

// GET /api/faculties?institution= (authenticated)
func (h *InstitutionHandler) ListFaculties(w http.ResponseWriter, r *http.Request) {
	institution := strings.TrimSpace(r.URL.Query().Get("institution"))
	if institution == "" {
		principal, _ := middleware.PrincipalFromContext(r.Context())
		institution = principal.Name
	}
	faculties, err := h.faculties.ListByInstitution(r.Context(), institution)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, faculties)
}

// DELETE /api/faculties/{id} (institute, admin). No cascade to courses.
func (h *InstitutionHandler) DeleteFaculty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	faculty, err := h.faculties.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	if principal.Role == models.RoleInstitute && faculty.Institution != principal.Name {
		writeError(w, apperr.New(apperr.CodeForbidden, "faculty belongs to another institution", nil))
		return
	}

	if err := h.faculties.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
