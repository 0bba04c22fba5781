package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
	"rentacar-backend/internal/storage"
)

const (
	backupPrefix     = "backups/"
	backupTimeLayout = "20060102T150405Z"
)

// Repositories groups the table repositories shared by backup and sync
type Repositories struct {
	Customers    repository.CustomerRepository
	Suppliers    repository.SupplierRepository
	Reservations repository.ReservationRepository
	Payments     repository.PaymentRepository
	Sequences    repository.SequenceResetter
}

type backupService struct {
	repos Repositories
	store storage.Storage
	now   func() time.Time
}

func NewBackupService(repos Repositories, store storage.Storage) BackupService {
	return &backupService{repos: repos, store: store, now: time.Now}
}

func (s *backupService) export(ctx context.Context) (*domain.Backup, error) {
	b := &domain.Backup{Version: domain.BackupFormatVersion, CreatedAt: s.now().UTC()}

	var err error
	if b.Tables.Customers, err = s.repos.Customers.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to export customers: %w", err)
	}
	if b.Tables.Suppliers, err = s.repos.Suppliers.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to export suppliers: %w", err)
	}
	if b.Tables.Branches, err = s.repos.Suppliers.ListAllBranches(ctx); err != nil {
		return nil, fmt.Errorf("failed to export branches: %w", err)
	}
	if b.Tables.Reservations, err = s.repos.Reservations.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to export reservations: %w", err)
	}
	if b.Tables.Payments, err = s.repos.Payments.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to export payments: %w", err)
	}
	return b, nil
}

func (s *backupService) CreateBackup(ctx context.Context) (*domain.BackupInfo, error) {
	logger.EnterMethod("backupService.CreateBackup")

	b, err := s.export(ctx)
	if err != nil {
		logger.ExitMethodWithError("backupService.CreateBackup", err)
		return nil, err
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		logger.ExitMethodWithError("backupService.CreateBackup", err)
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	key := backupKey(b.CreatedAt)
	size, err := s.store.Save(ctx, key, bytes.NewReader(data))
	if err != nil {
		logger.ExitMethodWithError("backupService.CreateBackup", err)
		return nil, fmt.Errorf("failed to store backup: %w", err)
	}

	logger.Info("Backup created",
		"key", key,
		"size", size,
		"customers", len(b.Tables.Customers),
		"suppliers", len(b.Tables.Suppliers),
		"reservations", len(b.Tables.Reservations),
		"payments", len(b.Tables.Payments))
	logger.ExitMethod("backupService.CreateBackup", "key", key)
	return &domain.BackupInfo{Key: key, SizeBytes: size, CreatedAt: b.CreatedAt}, nil
}

// backupKey names a backup after its creation time. The random suffix keeps
// backups taken within the same second apart.
func backupKey(createdAt time.Time) string {
	return backupPrefix + "backup-" + createdAt.Format(backupTimeLayout) + "-" + uuid.New().String()[:8] + ".json"
}

// ListBackups returns stored backups, newest first
func (s *backupService) ListBackups(ctx context.Context) ([]domain.BackupInfo, error) {
	objects, err := s.store.List(ctx, backupPrefix)
	if err != nil {
		return nil, err
	}

	backups := []domain.BackupInfo{}
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		info := domain.BackupInfo{Key: obj.Key, SizeBytes: obj.SizeBytes, CreatedAt: obj.ModTime.UTC()}
		stamp := strings.TrimPrefix(obj.Key, backupPrefix+"backup-")
		if len(stamp) >= len(backupTimeLayout) {
			if t, err := time.Parse(backupTimeLayout, stamp[:len(backupTimeLayout)]); err == nil {
				info.CreatedAt = t
			}
		}
		backups = append(backups, info)
	}
	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

func (s *backupService) Restore(ctx context.Context, key string) (*domain.RestoreResult, error) {
	if !strings.HasPrefix(key, backupPrefix) {
		return nil, fmt.Errorf("%w: %q is not a backup key", domain.ErrInvalidInput, key)
	}
	rc, err := s.store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	logger.Info("Restoring backup", "key", key)
	return s.RestoreData(ctx, data)
}

// RestoreData writes every record of the backup whose ID is missing locally.
// Existing rows are never overwritten. Tables are restored parents first.
func (s *backupService) RestoreData(ctx context.Context, data []byte) (*domain.RestoreResult, error) {
	logger.EnterMethod("backupService.RestoreData", "bytes", len(data))

	var b domain.Backup
	if err := json.Unmarshal(data, &b); err != nil {
		err = fmt.Errorf("%w: malformed backup: %v", domain.ErrInvalidInput, err)
		logger.ExitMethodWithError("backupService.RestoreData", err)
		return nil, err
	}
	if b.Version > domain.BackupFormatVersion {
		err := fmt.Errorf("%w: backup version %d is newer than supported version %d", domain.ErrInvalidInput, b.Version, domain.BackupFormatVersion)
		logger.ExitMethodWithError("backupService.RestoreData", err)
		return nil, err
	}

	res := domain.NewRestoreResult()
	importErr := s.importTables(ctx, &b, res)

	// rows written before a failure keep their backup IDs
	if importErr == nil || len(res.Inserted) > 0 {
		if err := s.repos.Sequences.ResetSequences(ctx); err != nil {
			importErr = errors.Join(importErr, err)
		}
	}
	if importErr != nil {
		logger.ExitMethodWithError("backupService.RestoreData", importErr, "inserted", res.Inserted)
		return nil, importErr
	}

	logger.Info("Backup restored", "inserted", res.Inserted, "skipped", res.Skipped)
	logger.ExitMethod("backupService.RestoreData")
	return res, nil
}

// importTables inserts the backup tables parents first and stops at the first failure.
// res holds the counts of everything written up to that point.
func (s *backupService) importTables(ctx context.Context, b *domain.Backup, res *domain.RestoreResult) error {
	count := func(table string, inserted bool) {
		if inserted {
			res.Inserted[table]++
		} else {
			res.Skipped[table]++
		}
	}

	for i := range b.Tables.Customers {
		ok, err := s.repos.Customers.Import(ctx, &b.Tables.Customers[i])
		if err != nil {
			return restoreError(domain.TableCustomers, b.Tables.Customers[i].ID, err)
		}
		count(domain.TableCustomers, ok)
	}
	for i := range b.Tables.Suppliers {
		ok, err := s.repos.Suppliers.Import(ctx, &b.Tables.Suppliers[i])
		if err != nil {
			return restoreError(domain.TableSuppliers, b.Tables.Suppliers[i].ID, err)
		}
		count(domain.TableSuppliers, ok)
	}
	for i := range b.Tables.Branches {
		ok, err := s.repos.Suppliers.ImportBranch(ctx, &b.Tables.Branches[i])
		if err != nil {
			return restoreError(domain.TableBranches, b.Tables.Branches[i].ID, err)
		}
		count(domain.TableBranches, ok)
	}
	for i := range b.Tables.Reservations {
		ok, err := s.repos.Reservations.Import(ctx, &b.Tables.Reservations[i])
		if err != nil {
			return restoreError(domain.TableReservations, b.Tables.Reservations[i].ID, err)
		}
		count(domain.TableReservations, ok)
	}
	for i := range b.Tables.Payments {
		ok, err := s.repos.Payments.Import(ctx, &b.Tables.Payments[i])
		if err != nil {
			return restoreError(domain.TablePayments, b.Tables.Payments[i].ID, err)
		}
		count(domain.TablePayments, ok)
	}
	return nil
}

func restoreError(table string, id int32, err error) error {
	logger.Error("Restore failed", "table", table, "id", id, "error", err)
	return fmt.Errorf("failed to restore %s %d: %w", table, id, err)
}

func (s *backupService) PruneBackups(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("%w: keep must be at least 1", domain.ErrInvalidInput)
	}
	backups, err := s.ListBackups(ctx)
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}

	removed := 0
	for _, b := range backups[keep:] {
		if err := s.store.Delete(ctx, b.Key); err != nil {
			return removed, fmt.Errorf("failed to delete backup %s: %w", b.Key, err)
		}
		removed++
	}
	logger.Info("Old backups pruned", "removed", removed, "kept", keep)
	return removed, nil
}
