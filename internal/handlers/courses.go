package handlers

import (
	"net/http"
	"strings"

	"careerconnect/internal/apperr"
	"careerconnect/internal/middleware"
	"careerconnect/internal/models"
	"careerconnect/internal/store"
)

type CourseHandler struct {
	courses   store.CourseStore
	faculties store.FacultyStore
}

func NewCourseHandler(courses store.CourseStore, faculties store.FacultyStore) *CourseHandler {
	return &CourseHandler{courses: courses, faculties: faculties}
}

// GET /api/courses (public). Optional ?institution= filter.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	if institution := strings.TrimSpace(r.URL.Query().Get("institution")); institution != "" {
		courses, err := h.courses.ListByInstitution(r.Context(), institution)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, courses)
		return
	}
	courses, err := h.courses.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

type courseRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Duration     string `json:"duration"`
	Requirements string `json:"requirements"`
	Faculty      string `json:"faculty"`
	Institution  string `json:"institution"`
}

// POST /api/courses (institute, admin)
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var req courseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Title == "" || req.Duration == "" || req.Description == "" {
		writeError(w, apperr.New(apperr.CodeValidation, "title, duration and description are required", nil))
		return
	}

	institution := req.Institution
	if principal.Role == models.RoleInstitute {
		// institutes only create courses under their own name
		institution = principal.Name
	}
	if institution == "" {
		writeError(w, apperr.New(apperr.CodeValidation, "institution is required", nil))
		return
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		Duration:     req.Duration,
		Requirements: req.Requirements,
		Faculty:      req.Faculty,
		Institution:  institution,
	}
	if err := h.courses.Create(r.Context(), course); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

// PUT /api/courses/{id} (institute, admin). Last write wins.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	course, err := h.courses.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	if principal.Role == models.RoleInstitute && course.Institution != principal.Name {
		writeError(w, apperr.New(apperr.CodeForbidden, "course belongs to another institution", nil))
		return
	}

	var req courseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Title != "" {
		course.Title = req.Title
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if req.Duration != "" {
		course.Duration = req.Duration
	}
	if req.Requirements != "" {
		course.Requirements = req.Requirements
	}
	if req.Faculty != "" {
		course.Faculty = req.Faculty
	}
	if err := h.courses.Update(r.Context(), course); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// DELETE /api/courses/{id} (institute, admin)
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	course, err := h.courses.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	if principal.Role == models.RoleInstitute && course.Institution != principal.Name {
		writeError(w, apperr.New(apperr.CodeForbidden, "course belongs to another institution", nil))
		return
	}

	if err := h.courses.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
