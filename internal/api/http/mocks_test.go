package http

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"rentacar-backend/internal/domain"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.Operator, error) {
	args := m.Called(ctx, email, password)
	if args.Get(2) == nil {
		return args.String(0), args.Get(1).(time.Time), nil, args.Error(3)
	}
	return args.String(0), args.Get(1).(time.Time), args.Get(2).(*domain.Operator), args.Error(3)
}

type MockCustomerService struct{ mock.Mock }

func (m *MockCustomerService) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) DeleteCustomer(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerService) SearchCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	args := m.Called(ctx, query, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Customer), args.Get(1).(int32), args.Error(2)
}

type MockSupplierService struct{ mock.Mock }

func (m *MockSupplierService) CreateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) GetSupplier(ctx context.Context, id int32) (*domain.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) UpdateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) ListSuppliers(ctx context.Context, activeOnly bool) ([]domain.Supplier, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierService) CreateBranch(ctx context.Context, b *domain.Branch) (*domain.Branch, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockSupplierService) UpdateBranch(ctx context.Context, b *domain.Branch) (*domain.Branch, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockSupplierService) ListBranches(ctx context.Context, supplierID int32) ([]domain.Branch, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

type MockReservationService struct{ mock.Mock }

func (m *MockReservationService) CreateReservation(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) UpdateReservation(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) CancelReservation(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) CloseReservation(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) GetReservation(ctx context.Context, id int32) (*domain.ReservationDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationDetails), args.Error(1)
}

func (m *MockReservationService) ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}

func (m *MockReservationService) AddPayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockReservationService) DeletePayment(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

type MockSettingsService struct{ mock.Mock }

func (m *MockSettingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsService) UpdateSettings(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsService) QuoteCommission(ctx context.Context, start, end time.Time, price decimal.Decimal, includesVAT bool) (*domain.CommissionQuote, error) {
	args := m.Called(ctx, start, end, price, includesVAT)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionQuote), args.Error(1)
}

type MockReportService struct{ mock.Mock }

func (m *MockReportService) CommissionReport(ctx context.Context, from, to time.Time) (*domain.CommissionReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionReport), args.Error(1)
}

func (m *MockReportService) WriteCommissionCSV(w io.Writer, report *domain.CommissionReport) error {
	args := m.Called(w, report)
	if s, ok := args.Get(1).(string); ok {
		_, _ = io.WriteString(w, s)
	}
	return args.Error(0)
}

type MockDocumentService struct{ mock.Mock }

func (m *MockDocumentService) Upload(ctx context.Context, ownerType domain.DocumentOwnerType, ownerID int32, fileName, contentType string, r io.Reader) (*domain.Document, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, ownerType, ownerID, fileName, contentType, string(body))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Open(ctx context.Context, id int32) (*domain.Document, io.ReadCloser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Document), args.Get(1).(io.ReadCloser), args.Error(2)
}

func (m *MockDocumentService) List(ctx context.Context, ownerType domain.DocumentOwnerType, ownerID int32) ([]domain.Document, error) {
	args := m.Called(ctx, ownerType, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

type MockBackupService struct{ mock.Mock }

func (m *MockBackupService) CreateBackup(ctx context.Context) (*domain.BackupInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BackupInfo), args.Error(1)
}

func (m *MockBackupService) ListBackups(ctx context.Context) ([]domain.BackupInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BackupInfo), args.Error(1)
}

func (m *MockBackupService) Restore(ctx context.Context, key string) (*domain.RestoreResult, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RestoreResult), args.Error(1)
}

func (m *MockBackupService) RestoreData(ctx context.Context, data []byte) (*domain.RestoreResult, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RestoreResult), args.Error(1)
}

func (m *MockBackupService) PruneBackups(ctx context.Context, keep int) (int, error) {
	args := m.Called(ctx, keep)
	return args.Int(0), args.Error(1)
}

type MockSyncService struct{ mock.Mock }

func (m *MockSyncService) SyncAll(ctx context.Context) (*domain.SyncReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncReport), args.Error(1)
}
