package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentacar-backend/internal/domain"
)

// prepareDB connects to the database named by RENTACAR_TEST_DATABASE_URL and
// empties every table. Tests are skipped when the variable is unset.
func prepareDB(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("RENTACAR_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("RENTACAR_TEST_DATABASE_URL not set")
	}

	var db *sql.DB
	var err error
	// Retry connection as DB might still be starting up
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			if err = db.Ping(); err == nil {
				break
			}
		}
		time.Sleep(2 * time.Second)
	}
	require.NoError(t, err, "failed to connect to database")
	t.Cleanup(func() { db.Close() })

	store := NewStore(db)
	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	_, err = db.ExecContext(ctx, `TRUNCATE documents, payments, reservations, branches, suppliers, customers, settings RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return store
}

func TestIntegration_ReservationLifecycle(t *testing.T) {
	store := prepareDB(t)
	ctx := context.Background()

	customer := &domain.Customer{FirstName: "Dana", LastName: "Levi", Email: "dana@example.com", IDNumber: "123456782"}
	require.NoError(t, store.CustomerRepository.Create(ctx, customer))

	supplier := &domain.Supplier{Name: "Budget", Active: true}
	require.NoError(t, store.SupplierRepository.Create(ctx, supplier))
	branch := &domain.Branch{SupplierID: supplier.ID, Name: "Airport", City: "Lod"}
	require.NoError(t, store.SupplierRepository.CreateBranch(ctx, branch))

	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	res := &domain.Reservation{
		CustomerID:            customer.ID,
		SupplierID:            supplier.ID,
		BranchID:              &branch.ID,
		StartAt:               start,
		EndAt:                 start.AddDate(0, 0, 3),
		Price:                 decimal.RequireFromString("1170"),
		PriceIncludesVAT:      true,
		Status:                domain.ReservationStatusOpen,
		Days:                  3,
		VATPercentUsed:        decimal.RequireFromString("17"),
		BasePrice:             decimal.RequireFromString("1000"),
		CommissionPercentUsed: decimal.RequireFromString("3"),
		CommissionAmount:      decimal.RequireFromString("30"),
	}
	require.NoError(t, store.ReservationRepository.Create(ctx, res))

	got, err := store.ReservationRepository.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.True(t, got.CommissionAmount.Equal(decimal.NewFromInt(30)))
	require.NotNil(t, got.BranchID)
	assert.Equal(t, branch.ID, *got.BranchID)

	for _, amount := range []string{"500", "250.50"} {
		p := &domain.Payment{ReservationID: res.ID, Amount: decimal.RequireFromString(amount), Method: domain.PaymentMethodCash, PaidOn: start}
		require.NoError(t, store.PaymentRepository.Create(ctx, p))
	}
	total, err := store.PaymentRepository.SumByReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("750.50")))

	inPeriod, err := store.ReservationRepository.ListByPeriod(ctx, start.AddDate(0, 0, -1), start.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Len(t, inPeriod, 1)

	// customers with reservations cannot be deleted
	err = store.CustomerRepository.Delete(ctx, customer.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIntegration_ImportAndResetSequences(t *testing.T) {
	store := prepareDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	imported := &domain.Customer{ID: 40, FirstName: "Imported", CreatedOn: now, UpdatedOn: now}
	written, err := store.CustomerRepository.Import(ctx, imported)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = store.CustomerRepository.Import(ctx, &domain.Customer{ID: 40, FirstName: "Other", CreatedOn: now, UpdatedOn: now})
	require.NoError(t, err)
	assert.False(t, written)

	require.NoError(t, store.ResetSequences(ctx))

	fresh := &domain.Customer{FirstName: "Fresh"}
	require.NoError(t, store.CustomerRepository.Create(ctx, fresh))
	assert.Equal(t, int32(41), fresh.ID)

	stored, err := store.CustomerRepository.GetByID(ctx, 40)
	require.NoError(t, err)
	assert.Equal(t, "Imported", stored.FirstName)
}

func TestIntegration_Settings(t *testing.T) {
	store := prepareDB(t)
	ctx := context.Background()

	_, err := store.SettingsRepository.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s := &domain.Settings{VATPercent: decimal.RequireFromString("18")}
	s.Commission.Days1to6Percent = decimal.RequireFromString("3.5")
	require.NoError(t, store.SettingsRepository.Save(ctx, s))
	require.NoError(t, store.SettingsRepository.Save(ctx, s))

	got, err := store.SettingsRepository.Get(ctx)
	require.NoError(t, err)
	assert.True(t, got.VATPercent.Equal(decimal.NewFromInt(18)))
	assert.True(t, got.Commission.Days1to6Percent.Equal(decimal.RequireFromString("3.5")))
}
