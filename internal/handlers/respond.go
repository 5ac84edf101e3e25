package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"careerconnect/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps classified errors to a status and a machine-readable body.
// Persistence failures get a generic message; details stay in the logs.
func writeError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	body := map[string]string{"error": "internal server error"}

	var appErr *apperr.Error
	if errors.As(err, &appErr) && status < http.StatusInternalServerError {
		body["error"] = appErr.Message
		body["code"] = string(appErr.Code)
		if appErr.Redirect != "" {
			body["redirect"] = appErr.Redirect
		}
	}
	writeJSON(w, status, body)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.New(apperr.CodeValidation, "invalid JSON body", err)
	}
	return nil
}

func idParam(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.New(apperr.CodeValidation, "invalid id", err)
	}
	return uint(id), nil
}
