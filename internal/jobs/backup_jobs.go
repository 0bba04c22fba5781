package jobs

import (
	"context"
	"fmt"

	"rentacar-backend/internal/logger"
)

// CreateBackup writes a full JSON backup to storage
func (jr *JobRunner) CreateBackup() error {
	return jr.runWithRecovery("CreateBackup", func(ctx context.Context) error {
		info, err := jr.services.Backup.CreateBackup(ctx)
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
		logger.Info("Backup created", "key", info.Key, "size_bytes", info.SizeBytes)
		return nil
	})
}

// PruneBackups removes backups beyond the configured retention count
func (jr *JobRunner) PruneBackups() error {
	return jr.runWithRecovery("PruneBackups", func(ctx context.Context) error {
		removed, err := jr.services.Backup.PruneBackups(ctx, jr.config.Backup.Retain)
		if err != nil {
			return fmt.Errorf("failed to prune backups: %w", err)
		}
		logger.Info("Old backups pruned", "removed", removed, "retain", jr.config.Backup.Retain)
		return nil
	})
}
