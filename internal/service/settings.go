package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentacar-backend/internal/commission"
	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
	"rentacar-backend/internal/utils"
)

var hundred = decimal.NewFromInt(100)

type settingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     domain.Settings
}

// NewSettingsService serves stored settings, falling back to defaults until
// an administrator saves them
func NewSettingsService(settingsRepo repository.SettingsRepository, defaultRule commission.Rule, defaultVAT decimal.Decimal) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		defaults:     domain.Settings{Commission: defaultRule, VATPercent: defaultVAT},
	}
}

func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		defaults := s.defaults
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	logger.EnterMethod("settingsService.UpdateSettings")

	rule := settings.Commission
	for _, p := range []decimal.Decimal{rule.Days1to6Percent, rule.Days7to23Percent, rule.Days24PlusPercent, rule.ExtraPercentPer30Days} {
		if p.IsNegative() {
			err := fmt.Errorf("%w: commission percentages must not be negative", domain.ErrInvalidInput)
			logger.ExitMethodWithError("settingsService.UpdateSettings", err)
			return nil, err
		}
	}
	if settings.VATPercent.IsNegative() || settings.VATPercent.GreaterThanOrEqual(hundred) {
		err := fmt.Errorf("%w: VAT percent must be between 0 and 100", domain.ErrInvalidInput)
		logger.ExitMethodWithError("settingsService.UpdateSettings", err)
		return nil, err
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		logger.ExitMethodWithError("settingsService.UpdateSettings", err)
		return nil, err
	}

	logger.Info("Settings updated",
		"days1to6", rule.Days1to6Percent.String(),
		"days7to23", rule.Days7to23Percent.String(),
		"days24plus", rule.Days24PlusPercent.String(),
		"extraPer30", rule.ExtraPercentPer30Days.String(),
		"vat", settings.VATPercent.String())
	logger.ExitMethod("settingsService.UpdateSettings")
	return settings, nil
}

func (s *settingsService) QuoteCommission(ctx context.Context, start, end time.Time, price decimal.Decimal, includesVAT bool) (*domain.CommissionQuote, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end must be after start", domain.ErrInvalidInput)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	q := Quote(start, end, price, includesVAT, settings)
	return &q, nil
}

// Quote chains rental days, VAT removal and the commission rule
func Quote(start, end time.Time, price decimal.Decimal, includesVAT bool, settings *domain.Settings) domain.CommissionQuote {
	days := utils.RentalDays(start, end)

	vat := decimal.Zero
	base := price
	if includesVAT {
		vat = settings.VATPercent
		base = commission.NetOfVAT(price, vat)
	}

	res := commission.Calculate(days, base, settings.Commission)
	return domain.CommissionQuote{
		Days:       days,
		VATPercent: vat,
		BasePrice:  base,
		Percent:    res.Percent,
		Amount:     res.Amount,
	}
}
