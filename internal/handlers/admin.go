package handlers

import (
	"net/http"

	"careerconnect/internal/models"
	"careerconnect/internal/store"
)

// AdminHandler exposes the platform-wide views behind the admin dashboard.
type AdminHandler struct {
	stores store.Stores
}

func NewAdminHandler(stores store.Stores) *AdminHandler {
	return &AdminHandler{stores: stores}
}

type platformSummary struct {
	Users        map[string]int `json:"users"`
	Institutions int            `json:"institutions"`
	Courses      int            `json:"courses"`
	Jobs         int            `json:"jobs"`
	Companies    int            `json:"companies"`
	Applications int            `json:"applications"`
}

// Summary handles GET /api/admin/summary.
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.stores.Users.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	byRole := make(map[string]int)
	for _, u := range users {
		byRole[string(u.Role)]++
	}

	institutions, err := h.stores.Institutions.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	courses, err := h.stores.Courses.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	jobs, err := h.stores.Jobs.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	companies, err := h.stores.Companies.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	applications, err := h.stores.Applications.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, platformSummary{
		Users:        byRole,
		Institutions: len(institutions),
		Courses:      len(courses),
		Jobs:         len(jobs),
		Companies:    len(companies),
		Applications: len(applications),
	})
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.stores.Users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if role := r.URL.Query().Get("role"); role != "" {
		filtered := make([]models.User, 0, len(users))
		for _, u := range users {
			if string(u.Role) == role {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}
	writeJSON(w, http.StatusOK, users)
}
