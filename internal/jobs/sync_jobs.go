package jobs

import (
	"context"
	"fmt"

	"rentacar-backend/internal/logger"
)

// SyncCloud reconciles local tables with the cloud store. A run with
// per-record failures still completes but counts as failed.
func (jr *JobRunner) SyncCloud() error {
	if jr.services.Sync == nil {
		logger.Debug("Cloud sync skipped, no cloud store configured")
		return nil
	}
	return jr.runWithRecovery("SyncCloud", func(ctx context.Context) error {
		report, err := jr.services.Sync.SyncAll(ctx)
		if err != nil {
			return fmt.Errorf("cloud sync failed: %w", err)
		}

		for _, t := range report.Tables {
			logger.Debug("Table synced",
				"table", t.Table,
				"pushed", t.Pushed,
				"pulled", t.Pulled,
				"failed", t.Failed)
		}
		if failed := report.Failed(); failed > 0 {
			return fmt.Errorf("cloud sync finished with %d failed records", failed)
		}
		logger.Info("Cloud sync finished", "tables", len(report.Tables))
		return nil
	})
}
