package commission

import (
	"github.com/shopspring/decimal"
)

// Tier boundaries in rental days
const (
	ShortTierMaxDays  = 6
	MediumTierMaxDays = 23
	LongTierMinDays   = 24
	ExtraBlockDays    = 30
)

var hundred = decimal.NewFromInt(100)

// Rule holds the administrator-configured commission percentages
type Rule struct {
	Days1to6Percent       decimal.Decimal `json:"days_1_to_6_percent"`
	Days7to23Percent      decimal.Decimal `json:"days_7_to_23_percent"`
	Days24PlusPercent     decimal.Decimal `json:"days_24_plus_percent"`
	ExtraPercentPer30Days decimal.Decimal `json:"extra_percent_per_30_days"`
}

// Result is the commission resolved for one rental
type Result struct {
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// Calculate resolves the commission for a rental of the given length.
// basePrice must already exclude VAT. Amounts are rounded to whole currency units.
func Calculate(days int, basePrice decimal.Decimal, rule Rule) Result {
	percent := PercentFor(days, rule)
	amount := percent.Div(hundred).Mul(basePrice).Round(0)
	return Result{Percent: percent, Amount: amount}
}

// PercentFor returns the tier percentage for a rental length.
// Non-positive day counts fall into the first tier.
func PercentFor(days int, rule Rule) decimal.Decimal {
	switch {
	case days <= ShortTierMaxDays:
		return rule.Days1to6Percent
	case days <= MediumTierMaxDays:
		return rule.Days7to23Percent
	default:
		blocks := (days - LongTierMinDays) / ExtraBlockDays
		return rule.Days24PlusPercent.Add(rule.ExtraPercentPer30Days.Mul(decimal.NewFromInt(int64(blocks))))
	}
}

// NetOfVAT strips VAT from a gross price, rounded to cents
func NetOfVAT(gross, vatPercent decimal.Decimal) decimal.Decimal {
	if vatPercent.IsZero() {
		return gross
	}
	divisor := decimal.NewFromInt(1).Add(vatPercent.Div(hundred))
	return gross.DivRound(divisor, 2)
}
