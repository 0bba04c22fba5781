package http

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/service"
)

type DocumentHandler struct {
	documentSvc service.DocumentService
	maxBytes    int64
}

func NewDocumentHandler(documentSvc service.DocumentService, maxBytes int64) *DocumentHandler {
	return &DocumentHandler{documentSvc: documentSvc, maxBytes: maxBytes}
}

func ownerFromQuery(r *http.Request, form bool) (domain.DocumentOwnerType, int32, error) {
	get := r.URL.Query().Get
	if form {
		get = r.FormValue
	}
	ownerType := domain.DocumentOwnerType(get("owner_type"))
	if !ownerType.Valid() {
		return "", 0, fmt.Errorf("%w: owner_type must be customer, reservation or supplier", domain.ErrInvalidInput)
	}
	ownerID, err := strconv.ParseInt(get("owner_id"), 10, 32)
	if err != nil || ownerID <= 0 {
		return "", 0, fmt.Errorf("%w: invalid owner_id", domain.ErrInvalidInput)
	}
	return ownerType, int32(ownerID), nil
}

// Upload expects a multipart form with owner_type, owner_id and file fields
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// multipart overhead on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, r, fmt.Errorf("%w: malformed upload: %v", domain.ErrInvalidInput, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	ownerType, ownerID, err := ownerFromQuery(r, true)
	if err != nil {
		writeError(w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: file is required", domain.ErrInvalidInput))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	doc, err := h.documentSvc.Upload(r.Context(), ownerType, ownerID, header.Filename, contentType, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerType, ownerID, err := ownerFromQuery(r, false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	docs, err := h.documentSvc.List(r.Context(), ownerType, ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}

func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, body, err := h.documentSvc.Open(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(doc.SizeBytes, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		logger.Warn("Document download interrupted", "documentID", id, "error", err)
	}
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.documentSvc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
