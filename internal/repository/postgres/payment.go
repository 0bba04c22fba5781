package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

const paymentColumns = `id, reservation_id, amount, method, paid_on, notes, created_on`

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func scanPayment(row interface{ Scan(...any) error }) (*domain.Payment, error) {
	p := &domain.Payment{}
	if err := row.Scan(&p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.PaidOn, &p.Notes, &p.CreatedOn); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	now := time.Now().UTC()
	query := `INSERT INTO payments (reservation_id, amount, method, paid_on, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, p.ReservationID, p.Amount, p.Method, p.PaidOn, p.Notes, now).Scan(&p.ID); err != nil {
		return mapError(err)
	}
	p.CreatedOn = now
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return mustAffect(res, err)
}

func (r *paymentRepository) ListByReservation(ctx context.Context, reservationID int32) ([]domain.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE reservation_id = $1 ORDER BY paid_on, id`, reservationID)
}

func (r *paymentRepository) SumByReservation(ctx context.Context, reservationID int32) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE reservation_id = $1`, reservationID).Scan(&total)
	return total, err
}

func (r *paymentRepository) ListAll(ctx context.Context) ([]domain.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY id`)
}

func (r *paymentRepository) Import(ctx context.Context, p *domain.Payment) (bool, error) {
	query := `INSERT INTO payments (` + paymentColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (id) DO NOTHING`
	return affected(r.db.ExecContext(ctx, query, p.ID, p.ReservationID, p.Amount, p.Method, p.PaidOn, p.Notes, p.CreatedOn))
}

func (r *paymentRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
