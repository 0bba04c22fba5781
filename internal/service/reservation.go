package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
)

type reservationService struct {
	reservationRepo repository.ReservationRepository
	paymentRepo     repository.PaymentRepository
	customerRepo    repository.CustomerRepository
	supplierRepo    repository.SupplierRepository
	settingsSvc     SettingsService
	emailSvc        EmailService
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	settingsSvc SettingsService,
	emailSvc EmailService,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		customerRepo:    customerRepo,
		supplierRepo:    supplierRepo,
		settingsSvc:     settingsSvc,
		emailSvc:        emailSvc,
	}
}

// validate checks dates, price and references. It returns the customer and
// supplier so callers can use them for notifications.
func (s *reservationService) validate(ctx context.Context, r *domain.Reservation) (*domain.Customer, *domain.Supplier, error) {
	if !r.EndAt.After(r.StartAt) {
		return nil, nil, fmt.Errorf("%w: end must be after start", domain.ErrInvalidInput)
	}
	if r.Price.IsNegative() {
		return nil, nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}

	customer, err := s.customerRepo.GetByID(ctx, r.CustomerID)
	if err != nil {
		return nil, nil, referenceError("customer", r.CustomerID, err)
	}
	supplier, err := s.supplierRepo.GetByID(ctx, r.SupplierID)
	if err != nil {
		return nil, nil, referenceError("supplier", r.SupplierID, err)
	}
	if r.BranchID != nil {
		branch, err := s.supplierRepo.GetBranch(ctx, *r.BranchID)
		if err != nil {
			return nil, nil, referenceError("branch", *r.BranchID, err)
		}
		if branch.SupplierID != r.SupplierID {
			return nil, nil, fmt.Errorf("%w: branch %d does not belong to supplier %d", domain.ErrInvalidInput, branch.ID, r.SupplierID)
		}
	}
	return customer, supplier, nil
}

// referenceError turns a missing referenced row into invalid input
func referenceError(what string, id int32, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s %d does not exist", domain.ErrInvalidInput, what, id)
	}
	return err
}

// snapshot stores the commission computed from current settings on r
func (s *reservationService) snapshot(ctx context.Context, r *domain.Reservation) error {
	settings, err := s.settingsSvc.GetSettings(ctx)
	if err != nil {
		return err
	}
	q := Quote(r.StartAt, r.EndAt, r.Price, r.PriceIncludesVAT, settings)
	r.Days = q.Days
	r.VATPercentUsed = q.VATPercent
	r.BasePrice = q.BasePrice
	r.CommissionPercentUsed = q.Percent
	r.CommissionAmount = q.Amount
	return nil
}

func (s *reservationService) CreateReservation(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	logger.EnterMethod("reservationService.CreateReservation", "customerID", r.CustomerID, "supplierID", r.SupplierID)

	customer, supplier, err := s.validate(ctx, r)
	if err != nil {
		logger.ExitMethodWithError("reservationService.CreateReservation", err)
		return nil, err
	}

	r.ID = 0
	r.SupplierConfirmation = strings.TrimSpace(r.SupplierConfirmation)
	r.Status = domain.ReservationStatusOpen
	if r.SupplierConfirmation != "" {
		r.Status = domain.ReservationStatusConfirmed
	}
	if err := s.snapshot(ctx, r); err != nil {
		logger.ExitMethodWithError("reservationService.CreateReservation", err)
		return nil, err
	}

	if err := s.reservationRepo.Create(ctx, r); err != nil {
		logger.ExitMethodWithError("reservationService.CreateReservation", err)
		return nil, err
	}

	logger.Info("Reservation created",
		"reservationID", r.ID,
		"days", r.Days,
		"basePrice", r.BasePrice.String(),
		"commissionPercent", r.CommissionPercentUsed.String(),
		"commissionAmount", r.CommissionAmount.String())

	if customer.Email != "" {
		if err := s.emailSvc.SendReservationConfirmation(ctx, customer, supplier.Name, r); err != nil {
			logger.Warn("Failed to send reservation confirmation", "reservationID", r.ID, "error", err)
		}
	}

	logger.ExitMethod("reservationService.CreateReservation", "reservationID", r.ID)
	return r, nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	logger.EnterMethod("reservationService.UpdateReservation", "reservationID", r.ID)

	existing, err := s.reservationRepo.GetByID(ctx, r.ID)
	if err != nil {
		logger.ExitMethodWithError("reservationService.UpdateReservation", err)
		return nil, err
	}
	if !existing.IsEditable() {
		err := fmt.Errorf("%w: reservation %d is %s", domain.ErrInvalidInput, r.ID, existing.Status)
		logger.ExitMethodWithError("reservationService.UpdateReservation", err)
		return nil, err
	}
	if _, _, err := s.validate(ctx, r); err != nil {
		logger.ExitMethodWithError("reservationService.UpdateReservation", err)
		return nil, err
	}

	r.Status = existing.Status
	r.SupplierConfirmation = strings.TrimSpace(r.SupplierConfirmation)
	if r.Status == domain.ReservationStatusOpen && r.SupplierConfirmation != "" {
		r.Status = domain.ReservationStatusConfirmed
	}
	r.CreatedOn = existing.CreatedOn

	pricingChanged := !r.StartAt.Equal(existing.StartAt) ||
		!r.EndAt.Equal(existing.EndAt) ||
		!r.Price.Equal(existing.Price) ||
		r.PriceIncludesVAT != existing.PriceIncludesVAT
	if pricingChanged {
		if err := s.snapshot(ctx, r); err != nil {
			logger.ExitMethodWithError("reservationService.UpdateReservation", err)
			return nil, err
		}
		logger.Info("Commission recalculated",
			"reservationID", r.ID,
			"oldAmount", existing.CommissionAmount.String(),
			"newAmount", r.CommissionAmount.String())
	} else {
		r.Days = existing.Days
		r.VATPercentUsed = existing.VATPercentUsed
		r.BasePrice = existing.BasePrice
		r.CommissionPercentUsed = existing.CommissionPercentUsed
		r.CommissionAmount = existing.CommissionAmount
	}

	if err := s.reservationRepo.Update(ctx, r); err != nil {
		logger.ExitMethodWithError("reservationService.UpdateReservation", err)
		return nil, err
	}

	logger.ExitMethod("reservationService.UpdateReservation", "reservationID", r.ID)
	return r, nil
}

func (s *reservationService) setStatus(ctx context.Context, id int32, status domain.ReservationStatus) (*domain.Reservation, error) {
	r, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsEditable() {
		return nil, fmt.Errorf("%w: reservation %d is already %s", domain.ErrInvalidInput, id, r.Status)
	}

	r.Status = status
	if err := s.reservationRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	logger.Info("Reservation status changed", "reservationID", id, "status", status)
	return r, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, id int32) (*domain.Reservation, error) {
	return s.setStatus(ctx, id, domain.ReservationStatusCancelled)
}

func (s *reservationService) CloseReservation(ctx context.Context, id int32) (*domain.Reservation, error) {
	return s.setStatus(ctx, id, domain.ReservationStatusClosed)
}

func (s *reservationService) GetReservation(ctx context.Context, id int32) (*domain.ReservationDetails, error) {
	r, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}

	return &domain.ReservationDetails{
		Reservation: r,
		Payments:    payments,
		TotalPaid:   paid,
		BalanceDue:  r.Price.Sub(paid),
	}, nil
}

func (s *reservationService) ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, int32, error) {
	return s.reservationRepo.List(ctx, filter)
}

func (s *reservationService) AddPayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalidInput)
	}
	if !p.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrInvalidInput, p.Method)
	}

	r, err := s.reservationRepo.GetByID(ctx, p.ReservationID)
	if err != nil {
		return nil, err
	}
	if r.Status == domain.ReservationStatusCancelled {
		return nil, fmt.Errorf("%w: reservation %d is cancelled", domain.ErrInvalidInput, r.ID)
	}

	if p.PaidOn.IsZero() {
		p.PaidOn = time.Now().UTC()
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.Info("Payment recorded", "reservationID", p.ReservationID, "paymentID", p.ID, "amount", p.Amount.String(), "method", p.Method)
	return p, nil
}

func (s *reservationService) DeletePayment(ctx context.Context, id int32) error {
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Payment deleted", "paymentID", id)
	return nil
}
