package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

const reservationColumns = `id, customer_id, supplier_id, branch_id, car_group, start_at, end_at, price, price_includes_vat,
	supplier_confirmation, status, notes, days, vat_percent_used, base_price, commission_percent_used, commission_amount,
	created_on, updated_on`

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func scanReservation(row interface{ Scan(...any) error }) (*domain.Reservation, error) {
	r := &domain.Reservation{}
	err := row.Scan(&r.ID, &r.CustomerID, &r.SupplierID, &r.BranchID, &r.CarGroup, &r.StartAt, &r.EndAt, &r.Price, &r.PriceIncludesVAT,
		&r.SupplierConfirmation, &r.Status, &r.Notes, &r.Days, &r.VATPercentUsed, &r.BasePrice, &r.CommissionPercentUsed, &r.CommissionAmount,
		&r.CreatedOn, &r.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *reservationRepository) Create(ctx context.Context, rt *domain.Reservation) error {
	now := time.Now().UTC()
	query := `INSERT INTO reservations (customer_id, supplier_id, branch_id, car_group, start_at, end_at, price, price_includes_vat,
	              supplier_confirmation, status, notes, days, vat_percent_used, base_price, commission_percent_used, commission_amount,
	              created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		rt.CustomerID, rt.SupplierID, rt.BranchID, rt.CarGroup, rt.StartAt, rt.EndAt, rt.Price, rt.PriceIncludesVAT,
		rt.SupplierConfirmation, rt.Status, rt.Notes, rt.Days, rt.VATPercentUsed, rt.BasePrice, rt.CommissionPercentUsed, rt.CommissionAmount,
		now, now).Scan(&rt.ID)
	if err != nil {
		return mapError(err)
	}
	rt.CreatedOn, rt.UpdatedOn = now, now
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	rt, err := scanReservation(r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return rt, nil
}

func (r *reservationRepository) Update(ctx context.Context, rt *domain.Reservation) error {
	rt.UpdatedOn = time.Now().UTC()
	query := `UPDATE reservations SET customer_id=$1, supplier_id=$2, branch_id=$3, car_group=$4, start_at=$5, end_at=$6, price=$7,
	              price_includes_vat=$8, supplier_confirmation=$9, status=$10, notes=$11, days=$12, vat_percent_used=$13, base_price=$14,
	              commission_percent_used=$15, commission_amount=$16, updated_on=$17
	          WHERE id=$18`
	res, err := r.db.ExecContext(ctx, query,
		rt.CustomerID, rt.SupplierID, rt.BranchID, rt.CarGroup, rt.StartAt, rt.EndAt, rt.Price,
		rt.PriceIncludesVAT, rt.SupplierConfirmation, rt.Status, rt.Notes, rt.Days, rt.VATPercentUsed, rt.BasePrice,
		rt.CommissionPercentUsed, rt.CommissionAmount, rt.UpdatedOn, rt.ID)
	return mustAffect(res, err)
}

func (r *reservationRepository) List(ctx context.Context, f domain.ReservationFilter) ([]domain.Reservation, int32, error) {
	limit, offset := pageBounds(f.Page, f.PageSize)

	var conds []string
	var args []interface{}
	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CustomerID != 0 {
		add("customer_id = $%d", f.CustomerID)
	}
	if f.SupplierID != 0 {
		add("supplier_id = $%d", f.SupplierID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.From != nil {
		add("start_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("start_at < $%d", *f.To)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM reservations`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations` + where +
		fmt.Sprintf(` ORDER BY start_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	reservations, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return reservations, count, nil
}

func (r *reservationRepository) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	return r.query(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY id`)
}

func (r *reservationRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE start_at >= $1 AND start_at < $2 ORDER BY start_at, id`
	return r.query(ctx, query, from, to)
}

func (r *reservationRepository) Import(ctx context.Context, rt *domain.Reservation) (bool, error) {
	query := `INSERT INTO reservations (` + reservationColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	          ON CONFLICT (id) DO NOTHING`
	return affected(r.db.ExecContext(ctx, query,
		rt.ID, rt.CustomerID, rt.SupplierID, rt.BranchID, rt.CarGroup, rt.StartAt, rt.EndAt, rt.Price, rt.PriceIncludesVAT,
		rt.SupplierConfirmation, rt.Status, rt.Notes, rt.Days, rt.VATPercentUsed, rt.BasePrice, rt.CommissionPercentUsed, rt.CommissionAmount,
		rt.CreatedOn, rt.UpdatedOn))
}

func (r *reservationRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		rt, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *rt)
	}
	return reservations, rows.Err()
}
