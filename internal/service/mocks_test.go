package service_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"rentacar-backend/internal/domain"
)

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Customer), args.Get(1).(int32), args.Error(2)
}
func (m *MockCustomerRepo) ListAll(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Import(ctx context.Context, c *domain.Customer) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

// MockSupplierRepo
type MockSupplierRepo struct {
	mock.Mock
}

func (m *MockSupplierRepo) Create(ctx context.Context, s *domain.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSupplierRepo) GetByID(ctx context.Context, id int32) (*domain.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}
func (m *MockSupplierRepo) Update(ctx context.Context, s *domain.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSupplierRepo) List(ctx context.Context, activeOnly bool) ([]domain.Supplier, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]domain.Supplier), args.Error(1)
}
func (m *MockSupplierRepo) ListAll(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Supplier), args.Error(1)
}
func (m *MockSupplierRepo) Import(ctx context.Context, s *domain.Supplier) (bool, error) {
	args := m.Called(ctx, s)
	return args.Bool(0), args.Error(1)
}
func (m *MockSupplierRepo) CreateBranch(ctx context.Context, b *domain.Branch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockSupplierRepo) GetBranch(ctx context.Context, id int32) (*domain.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}
func (m *MockSupplierRepo) UpdateBranch(ctx context.Context, b *domain.Branch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockSupplierRepo) ListBranches(ctx context.Context, supplierID int32) ([]domain.Branch, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]domain.Branch), args.Error(1)
}
func (m *MockSupplierRepo) ListAllBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Branch), args.Error(1)
}
func (m *MockSupplierRepo) ImportBranch(ctx context.Context, b *domain.Branch) (bool, error) {
	args := m.Called(ctx, b)
	return args.Bool(0), args.Error(1)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationRepo) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) Import(ctx context.Context, r *domain.Reservation) (bool, error) {
	args := m.Called(ctx, r)
	return args.Bool(0), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByReservation(ctx context.Context, reservationID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) SumByReservation(ctx context.Context, reservationID int32) (decimal.Decimal, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockPaymentRepo) ListAll(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Import(ctx context.Context, p *domain.Payment) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}
func (m *MockSettingsRepo) Save(ctx context.Context, s *domain.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockDocumentRepo
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDocumentRepo) GetByID(ctx context.Context, id int32) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentRepo) ListByOwner(ctx context.Context, ownerType domain.DocumentOwnerType, ownerID int32) ([]domain.Document, error) {
	args := m.Called(ctx, ownerType, ownerID)
	return args.Get(0).([]domain.Document), args.Error(1)
}
func (m *MockDocumentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSequenceResetter
type MockSequenceResetter struct {
	mock.Mock
}

func (m *MockSequenceResetter) ResetSequences(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReservationConfirmation(ctx context.Context, customer *domain.Customer, supplierName string, r *domain.Reservation) error {
	args := m.Called(ctx, customer, supplierName, r)
	return args.Error(0)
}
func (m *MockEmailService) SendAdminNotification(ctx context.Context, subject, message string) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}
