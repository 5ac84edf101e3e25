package handlers

import (
	"fmt"
	"net/http"
	"time"

	"careerconnect/internal/apperr"
	"careerconnect/internal/middleware"
	"careerconnect/internal/models"
	"careerconnect/internal/storage"
	"careerconnect/internal/store"
)

const maxUploadBytes = 10 << 20

type DocumentHandler struct {
	documents store.DocumentStore
	blobs     storage.Storage
}

func NewDocumentHandler(documents store.DocumentStore, blobs storage.Storage) *DocumentHandler {
	return &DocumentHandler{documents: documents, blobs: blobs}
}

// POST /api/documents (student): multipart/form-data with "file" and "type".
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, apperr.New(apperr.CodeValidation, "failed to parse form or file too large", err))
		return
	}

	docType, ok := models.ParseDocumentType(r.FormValue("type"))
	if !ok {
		writeError(w, apperr.New(apperr.CodeValidation, "unknown document type", nil))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperr.New(apperr.CodeValidation, "missing file field 'file'", err))
		return
	}
	defer file.Close()

	path := fmt.Sprintf("documents/%s/%d_%s", principal.UserID, time.Now().UnixMilli(), header.Filename)
	locator, err := h.blobs.Save(path, file)
	if err != nil {
		writeError(w, apperr.New(apperr.CodeInternal, "failed to store file", err))
		return
	}

	doc := &models.Document{
		StudentEmail: principal.Email,
		Type:         docType,
		Name:         header.Filename,
		Size:         header.Size,
		ContentType:  header.Header.Get("Content-Type"),
		URL:          h.blobs.URL(locator),
		Uploaded:     true,
		UploadedAt:   time.Now().UTC(),
	}
	if err := h.documents.Create(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// GET /api/documents (student)
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	docs, err := h.documents.ListByStudent(r.Context(), principal.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}
