package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationStatusOpen      ReservationStatus = "OPEN"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusClosed    ReservationStatus = "CLOSED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

type Reservation struct {
	ID                   int32             `json:"id"`
	CustomerID           int32             `json:"customer_id"`
	SupplierID           int32             `json:"supplier_id"`
	BranchID             *int32            `json:"branch_id,omitempty"`
	CarGroup             string            `json:"car_group"`
	StartAt              time.Time         `json:"start_at"`
	EndAt                time.Time         `json:"end_at"`
	Price                decimal.Decimal   `json:"price"`
	PriceIncludesVAT     bool              `json:"price_includes_vat"`
	SupplierConfirmation string            `json:"supplier_confirmation"`
	Status               ReservationStatus `json:"status"`
	Notes                string            `json:"notes"`
	// Commission snapshot fields, captured when the reservation is created or
	// its dates/price change. Reports read these, never the live settings.
	Days                  int             `json:"days"`
	VATPercentUsed        decimal.Decimal `json:"vat_percent_used"`
	BasePrice             decimal.Decimal `json:"base_price"`
	CommissionPercentUsed decimal.Decimal `json:"commission_percent_used"`
	CommissionAmount      decimal.Decimal `json:"commission_amount"`
	CreatedOn             time.Time       `json:"created_on"`
	UpdatedOn             time.Time       `json:"updated_on"`
}

func (r *Reservation) IsEditable() bool {
	return r.Status == ReservationStatusOpen || r.Status == ReservationStatusConfirmed
}

type ReservationFilter struct {
	CustomerID int32
	SupplierID int32
	Status     ReservationStatus
	From       *time.Time
	To         *time.Time
	Page       int32
	PageSize   int32
}

// ReservationDetails bundles a reservation with its payments
type ReservationDetails struct {
	Reservation *Reservation    `json:"reservation"`
	Payments    []Payment       `json:"payments"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	BalanceDue  decimal.Decimal `json:"balance_due"`
}
