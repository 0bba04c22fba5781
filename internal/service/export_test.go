package service

import (
	"time"

	"rentacar-backend/internal/storage"
)

func NewBackupServiceWithClock(repos Repositories, store storage.Storage, now func() time.Time) BackupService {
	return &backupService{repos: repos, store: store, now: now}
}
