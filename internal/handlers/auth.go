package handlers

import (
	"net/http"

	"careerconnect/internal/apperr"
	"careerconnect/internal/auth"
	"careerconnect/internal/middleware"
)

type AuthHandler struct {
	svc   *auth.Service
	cache *middleware.RoleCache
}

func NewAuthHandler(svc *auth.Service, cache *middleware.RoleCache) *AuthHandler {
	return &AuthHandler{svc: svc, cache: cache}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := h.svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// POST /api/auth/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.CodeUnauthorized, "not signed in", nil))
		return
	}
	h.cache.Invalidate(r.Context(), principal.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// GET /api/auth/me (protected)
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.CodeUnauthorized, "not signed in", nil))
		return
	}
	user, err := h.svc.Me(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
