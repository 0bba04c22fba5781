package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
)

//go:embed schema.sql
var schemaSQL string

// tables whose id sequences must follow rows imported with explicit IDs
var sequenceTables = []string{"customers", "suppliers", "branches", "reservations", "payments"}

type Store struct {
	db *sql.DB
	repository.CustomerRepository
	repository.SupplierRepository
	repository.ReservationRepository
	repository.PaymentRepository
	repository.SettingsRepository
	repository.DocumentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		CustomerRepository:    NewCustomerRepository(db),
		SupplierRepository:    NewSupplierRepository(db),
		ReservationRepository: NewReservationRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
		SettingsRepository:    NewSettingsRepository(db),
		DocumentRepository:    NewDocumentRepository(db),
	}
}

// Migrate creates the schema if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	logger.DatabaseCall("migrate", "*")
	_, err := s.db.ExecContext(ctx, schemaSQL)
	logger.DatabaseResult("migrate", 0, err)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// ResetSequences moves every serial sequence past the highest stored ID
func (s *Store) ResetSequences(ctx context.Context) error {
	for _, table := range sequenceTables {
		query := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)`, table, table)
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}

// mapError converts driver errors into domain errors
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Message)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pqErr.Message)
		}
	}
	return err
}

// affected reports whether an exec touched any row
func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// mustAffect turns a zero-row update or delete into ErrNotFound
func mustAffect(res sql.Result, err error) error {
	ok, err := affected(res, err)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func pageBounds(page, pageSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	return pageSize, (page - 1) * pageSize
}
