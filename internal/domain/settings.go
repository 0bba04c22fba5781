package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"rentacar-backend/internal/commission"
)

// Settings is the single row of administrator settings
type Settings struct {
	Commission commission.Rule `json:"commission"`
	VATPercent decimal.Decimal `json:"vat_percent"`
	UpdatedOn  time.Time       `json:"updated_on"`
}

// CommissionQuote is the commission computed for a rental period and price
type CommissionQuote struct {
	Days       int             `json:"days"`
	VATPercent decimal.Decimal `json:"vat_percent"`
	BasePrice  decimal.Decimal `json:"base_price"`
	Percent    decimal.Decimal `json:"percent"`
	Amount     decimal.Decimal `json:"amount"`
}
