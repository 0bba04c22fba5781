package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentacar-backend/internal/domain"
)

// Import methods insert a record with its original ID and report whether a
// row was written. Existing IDs are left untouched.

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error)
	ListAll(ctx context.Context) ([]domain.Customer, error)
	Import(ctx context.Context, c *domain.Customer) (bool, error)
}

type SupplierRepository interface {
	Create(ctx context.Context, s *domain.Supplier) error
	GetByID(ctx context.Context, id int32) (*domain.Supplier, error)
	Update(ctx context.Context, s *domain.Supplier) error
	List(ctx context.Context, activeOnly bool) ([]domain.Supplier, error)
	ListAll(ctx context.Context) ([]domain.Supplier, error)
	Import(ctx context.Context, s *domain.Supplier) (bool, error)

	// Branches
	CreateBranch(ctx context.Context, b *domain.Branch) error
	GetBranch(ctx context.Context, id int32) (*domain.Branch, error)
	UpdateBranch(ctx context.Context, b *domain.Branch) error
	ListBranches(ctx context.Context, supplierID int32) ([]domain.Branch, error)
	ListAllBranches(ctx context.Context) ([]domain.Branch, error)
	ImportBranch(ctx context.Context, b *domain.Branch) (bool, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, int32, error)
	ListAll(ctx context.Context) ([]domain.Reservation, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]domain.Reservation, error)
	Import(ctx context.Context, r *domain.Reservation) (bool, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	Delete(ctx context.Context, id int32) error
	ListByReservation(ctx context.Context, reservationID int32) ([]domain.Payment, error)
	SumByReservation(ctx context.Context, reservationID int32) (decimal.Decimal, error)
	ListAll(ctx context.Context) ([]domain.Payment, error)
	Import(ctx context.Context, p *domain.Payment) (bool, error)
}

type SettingsRepository interface {
	// Get returns domain.ErrNotFound until settings are saved once
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, s *domain.Settings) error
}

type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id int32) (*domain.Document, error)
	ListByOwner(ctx context.Context, ownerType domain.DocumentOwnerType, ownerID int32) ([]domain.Document, error)
	Delete(ctx context.Context, id int32) error
}

// SequenceResetter realigns ID sequences after rows were imported with explicit IDs
type SequenceResetter interface {
	ResetSequences(ctx context.Context) error
}
