package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/service"
)

// maxRestoreBody bounds uploaded backup documents
const maxRestoreBody = 256 << 20

type BackupHandler struct {
	backupSvc service.BackupService
	syncSvc   service.SyncService
}

func NewBackupHandler(backupSvc service.BackupService, syncSvc service.SyncService) *BackupHandler {
	return &BackupHandler{backupSvc: backupSvc, syncSvc: syncSvc}
}

func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	backups, err := h.backupSvc.ListBackups(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if backups == nil {
		backups = []domain.BackupInfo{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"backups": backups})
}

func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	info, err := h.backupSvc.CreateBackup(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

type restoreRequest struct {
	Key string `json:"key"`
}

// Restore accepts either {"key": "..."} naming a stored backup or a full
// backup document as the request body
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRestoreBody))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: unreadable body: %v", domain.ErrInvalidInput, err))
		return
	}

	var req restoreRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	var result *domain.RestoreResult
	if err := dec.Decode(&req); err == nil && req.Key != "" {
		result, err = h.backupSvc.Restore(r.Context(), req.Key)
		if err != nil {
			writeError(w, r, err)
			return
		}
	} else {
		result, err = h.backupSvc.RestoreData(r.Context(), body)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BackupHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if h.syncSvc == nil {
		writeError(w, r, fmt.Errorf("%w: cloud sync is not configured", domain.ErrInvalidInput))
		return
	}
	report, err := h.syncSvc.SyncAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
