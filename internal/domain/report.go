package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SupplierCommission struct {
	SupplierID      int32           `json:"supplier_id"`
	SupplierName    string          `json:"supplier_name"`
	Reservations    int             `json:"reservations"`
	RentalDays      int             `json:"rental_days"`
	BaseTotal       decimal.Decimal `json:"base_total"`
	CommissionTotal decimal.Decimal `json:"commission_total"`
}

type CommissionReport struct {
	From            time.Time            `json:"from"`
	To              time.Time            `json:"to"`
	Suppliers       []SupplierCommission `json:"suppliers"`
	BaseTotal       decimal.Decimal      `json:"base_total"`
	CommissionTotal decimal.Decimal      `json:"commission_total"`
}
