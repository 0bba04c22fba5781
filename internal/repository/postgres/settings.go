package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	s := &domain.Settings{}
	query := `SELECT days_1_to_6_percent, days_7_to_23_percent, days_24_plus_percent, extra_percent_per_30_days, vat_percent, updated_on
	          FROM settings WHERE id = 1`
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.Commission.Days1to6Percent,
		&s.Commission.Days7to23Percent,
		&s.Commission.Days24PlusPercent,
		&s.Commission.ExtraPercentPer30Days,
		&s.VATPercent,
		&s.UpdatedOn,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *settingsRepository) Save(ctx context.Context, s *domain.Settings) error {
	s.UpdatedOn = time.Now().UTC()
	query := `INSERT INTO settings (id, days_1_to_6_percent, days_7_to_23_percent, days_24_plus_percent, extra_percent_per_30_days, vat_percent, updated_on)
	          VALUES (1, $1, $2, $3, $4, $5, $6)
	          ON CONFLICT (id) DO UPDATE SET
	              days_1_to_6_percent = EXCLUDED.days_1_to_6_percent,
	              days_7_to_23_percent = EXCLUDED.days_7_to_23_percent,
	              days_24_plus_percent = EXCLUDED.days_24_plus_percent,
	              extra_percent_per_30_days = EXCLUDED.extra_percent_per_30_days,
	              vat_percent = EXCLUDED.vat_percent,
	              updated_on = EXCLUDED.updated_on`
	_, err := r.db.ExecContext(ctx, query,
		s.Commission.Days1to6Percent,
		s.Commission.Days7to23Percent,
		s.Commission.Days24PlusPercent,
		s.Commission.ExtraPercentPer30Days,
		s.VATPercent,
		s.UpdatedOn,
	)
	return mapError(err)
}
