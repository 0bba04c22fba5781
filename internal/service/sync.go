package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"rentacar-backend/internal/cloud"
	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
)

type syncService struct {
	repos  Repositories
	remote cloud.Store
	now    func() time.Time
}

// NewSyncService mirrors the local tables with remote collections of the same name
func NewSyncService(repos Repositories, remote cloud.Store) SyncService {
	return &syncService{repos: repos, remote: remote, now: time.Now}
}

// syncTable describes one table for a generic two-way diff
type syncTable[T any] struct {
	name   string
	list   func(ctx context.Context) ([]T, error)
	id     func(*T) int32
	insert func(ctx context.Context, rec *T) (bool, error)
}

// SyncAll pushes local-only records and pulls remote-only records, table by
// table with parents first. Records present on both sides are left alone.
// Per-record failures are counted in the report; only list failures abort.
func (s *syncService) SyncAll(ctx context.Context) (*domain.SyncReport, error) {
	logger.EnterMethod("syncService.SyncAll")
	report := &domain.SyncReport{StartedAt: s.now().UTC()}

	steps := []func(context.Context) (domain.TableSyncResult, error){
		func(ctx context.Context) (domain.TableSyncResult, error) {
			return syncOne(ctx, s.remote, syncTable[domain.Customer]{
				name:   domain.TableCustomers,
				list:   s.repos.Customers.ListAll,
				id:     func(c *domain.Customer) int32 { return c.ID },
				insert: s.repos.Customers.Import,
			})
		},
		func(ctx context.Context) (domain.TableSyncResult, error) {
			return syncOne(ctx, s.remote, syncTable[domain.Supplier]{
				name:   domain.TableSuppliers,
				list:   s.repos.Suppliers.ListAll,
				id:     func(sup *domain.Supplier) int32 { return sup.ID },
				insert: s.repos.Suppliers.Import,
			})
		},
		func(ctx context.Context) (domain.TableSyncResult, error) {
			return syncOne(ctx, s.remote, syncTable[domain.Branch]{
				name:   domain.TableBranches,
				list:   s.repos.Suppliers.ListAllBranches,
				id:     func(b *domain.Branch) int32 { return b.ID },
				insert: s.repos.Suppliers.ImportBranch,
			})
		},
		func(ctx context.Context) (domain.TableSyncResult, error) {
			return syncOne(ctx, s.remote, syncTable[domain.Reservation]{
				name:   domain.TableReservations,
				list:   s.repos.Reservations.ListAll,
				id:     func(r *domain.Reservation) int32 { return r.ID },
				insert: s.repos.Reservations.Import,
			})
		},
		func(ctx context.Context) (domain.TableSyncResult, error) {
			return syncOne(ctx, s.remote, syncTable[domain.Payment]{
				name:   domain.TablePayments,
				list:   s.repos.Payments.ListAll,
				id:     func(p *domain.Payment) int32 { return p.ID },
				insert: s.repos.Payments.Import,
			})
		},
	}

	pulled := 0
	var stepErr error
	for _, step := range steps {
		if stepErr = ctx.Err(); stepErr != nil {
			break
		}
		res, err := step(ctx)
		if err != nil {
			stepErr = err
			break
		}
		pulled += res.Pulled
		report.Tables = append(report.Tables, res)
	}

	// pulled rows keep their remote IDs even when a later table fails
	if pulled > 0 {
		if err := s.repos.Sequences.ResetSequences(ctx); err != nil {
			stepErr = errors.Join(stepErr, err)
		}
	}
	if stepErr != nil {
		logger.ExitMethodWithError("syncService.SyncAll", stepErr, "pulled", pulled)
		return nil, stepErr
	}

	report.FinishedAt = s.now().UTC()
	logger.Info("Cloud sync finished", "tables", len(report.Tables), "pulled", pulled, "failed", report.Failed(),
		"duration", report.FinishedAt.Sub(report.StartedAt))
	logger.ExitMethod("syncService.SyncAll")
	return report, nil
}

func syncOne[T any](ctx context.Context, remote cloud.Store, t syncTable[T]) (domain.TableSyncResult, error) {
	res := domain.TableSyncResult{Table: t.name}
	log := logger.WithService("sync").With("table", t.name)

	local, err := t.list(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to list local %s: %w", t.name, err)
	}
	remoteDocs, err := remote.List(ctx, t.name)
	if err != nil {
		return res, fmt.Errorf("failed to list remote %s: %w", t.name, err)
	}
	res.LocalCount = len(local)
	res.RemoteCount = len(remoteDocs)

	localIDs := make(map[string]bool, len(local))
	for i := range local {
		id := strconv.Itoa(int(t.id(&local[i])))
		localIDs[id] = true
		if _, ok := remoteDocs[id]; ok {
			continue
		}
		payload, err := json.Marshal(&local[i])
		if err == nil {
			err = remote.Put(ctx, t.name, id, payload)
		}
		if err != nil {
			log.Warn("Failed to push record", "id", id, "error", err)
			res.Failed++
			continue
		}
		res.Pushed++
	}

	// pull in ID order so parents inserted in the same run come first
	var missing []string
	for id := range remoteDocs {
		if !localIDs[id] {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		a, _ := strconv.Atoi(missing[i])
		b, _ := strconv.Atoi(missing[j])
		return a < b
	})

	for _, id := range missing {
		var rec T
		if err := json.Unmarshal(remoteDocs[id], &rec); err != nil {
			log.Warn("Skipping undecodable remote record", "id", id, "error", err)
			res.Failed++
			continue
		}
		if strconv.Itoa(int(t.id(&rec))) != id {
			log.Warn("Remote record ID does not match its document ID", "id", id)
			res.Failed++
			continue
		}
		inserted, err := t.insert(ctx, &rec)
		if err != nil {
			log.Warn("Failed to pull record", "id", id, "error", err)
			res.Failed++
			continue
		}
		if inserted {
			res.Pulled++
		}
	}

	log.Info("Table synced", "local", res.LocalCount, "remote", res.RemoteCount,
		"pushed", res.Pushed, "pulled", res.Pulled, "failed", res.Failed)
	return res, nil
}
