package service

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"rentacar-backend/internal/domain"
)

type AuthService interface {
	// Login returns an access token, its expiry and the operator
	Login(ctx context.Context, email, password string) (string, time.Time, *domain.Operator, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, s *domain.Settings) (*domain.Settings, error)
	QuoteCommission(ctx context.Context, start, end time.Time, price decimal.Decimal, includesVAT bool) (*domain.CommissionQuote, error)
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int32) error
	SearchCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error)
}

type SupplierService interface {
	CreateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, id int32) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, activeOnly bool) ([]domain.Supplier, error)
	CreateBranch(ctx context.Context, b *domain.Branch) (*domain.Branch, error)
	UpdateBranch(ctx context.Context, b *domain.Branch) (*domain.Branch, error)
	ListBranches(ctx context.Context, supplierID int32) ([]domain.Branch, error)
}

type ReservationService interface {
	CreateReservation(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	UpdateReservation(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, id int32) (*domain.Reservation, error)
	CloseReservation(ctx context.Context, id int32) (*domain.Reservation, error)
	GetReservation(ctx context.Context, id int32) (*domain.ReservationDetails, error)
	ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, int32, error)
	AddPayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id int32) error
}

type ReportService interface {
	CommissionReport(ctx context.Context, from, to time.Time) (*domain.CommissionReport, error)
	WriteCommissionCSV(w io.Writer, report *domain.CommissionReport) error
}

type DocumentService interface {
	Upload(ctx context.Context, ownerType domain.DocumentOwnerType, ownerID int32, fileName, contentType string, r io.Reader) (*domain.Document, error)
	Open(ctx context.Context, id int32) (*domain.Document, io.ReadCloser, error)
	List(ctx context.Context, ownerType domain.DocumentOwnerType, ownerID int32) ([]domain.Document, error)
	Delete(ctx context.Context, id int32) error
}

type BackupService interface {
	CreateBackup(ctx context.Context) (*domain.BackupInfo, error)
	ListBackups(ctx context.Context) ([]domain.BackupInfo, error)
	Restore(ctx context.Context, key string) (*domain.RestoreResult, error)
	RestoreData(ctx context.Context, data []byte) (*domain.RestoreResult, error)
	// PruneBackups keeps the newest keep backups and returns how many were removed
	PruneBackups(ctx context.Context, keep int) (int, error)
}

type SyncService interface {
	SyncAll(ctx context.Context) (*domain.SyncReport, error)
}

type EmailService interface {
	SendReservationConfirmation(ctx context.Context, customer *domain.Customer, supplierName string, r *domain.Reservation) error
	SendAdminNotification(ctx context.Context, subject, message string) error
}
