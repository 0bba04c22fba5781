package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentacar-backend/internal/commission"
	"rentacar-backend/internal/domain"
)

func TestSettingsRepository_Get(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	t.Run("Stored row", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"d1", "d7", "d24", "extra", "vat", "updated_on"}).
			AddRow("3.00", "5.00", "7.00", "7.00", "17.00", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM settings WHERE id = 1").WillReturnRows(rows)

		s, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(5).Equal(s.Commission.Days7to23Percent))
		assert.True(t, decimal.NewFromInt(17).Equal(s.VATPercent))
	})

	t.Run("Never saved", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM settings WHERE id = 1").WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_Save(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSettingsRepository(db)

	s := &domain.Settings{
		Commission: commission.Rule{
			Days1to6Percent:       decimal.NewFromInt(3),
			Days7to23Percent:      decimal.NewFromInt(5),
			Days24PlusPercent:     decimal.NewFromInt(7),
			ExtraPercentPer30Days: decimal.RequireFromString("2.5"),
		},
		VATPercent: decimal.NewFromInt(17),
	}

	mock.ExpectExec("INSERT INTO settings (.+) ON CONFLICT \\(id\\) DO UPDATE").
		WithArgs("3", "5", "7", "2.5", "17", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), s))
	assert.False(t, s.UpdatedOn.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
