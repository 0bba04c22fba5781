package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

const customerColumns = `id, first_name, last_name, phone, email, id_number, license_number, address, notes, created_on, updated_on`

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func scanCustomer(row interface{ Scan(...any) error }) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.IDNumber, &c.LicenseNumber, &c.Address, &c.Notes, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	now := time.Now().UTC()
	query := `INSERT INTO customers (first_name, last_name, phone, email, id_number, license_number, address, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, c.FirstName, c.LastName, c.Phone, c.Email, c.IDNumber, c.LicenseNumber, c.Address, c.Notes, now, now).Scan(&c.ID)
	if err != nil {
		return mapError(err)
	}
	c.CreatedOn, c.UpdatedOn = now, now
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedOn = time.Now().UTC()
	query := `UPDATE customers SET first_name=$1, last_name=$2, phone=$3, email=$4, id_number=$5, license_number=$6, address=$7, notes=$8, updated_on=$9 WHERE id=$10`
	res, err := r.db.ExecContext(ctx, query, c.FirstName, c.LastName, c.Phone, c.Email, c.IDNumber, c.LicenseNumber, c.Address, c.Notes, c.UpdatedOn, c.ID)
	return mustAffect(res, err)
}

func (r *customerRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return mustAffect(res, err)
}

func (r *customerRepository) List(ctx context.Context, search string, page, pageSize int32) ([]domain.Customer, int32, error) {
	limit, offset := pageBounds(page, pageSize)

	where := ""
	args := []interface{}{}
	if search != "" {
		where = ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR phone ILIKE $1 OR id_number ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM customers`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers` + where + ` ORDER BY last_name, first_name, id`
	if search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	customers, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return customers, count, nil
}

func (r *customerRepository) ListAll(ctx context.Context) ([]domain.Customer, error) {
	return r.query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
}

func (r *customerRepository) Import(ctx context.Context, c *domain.Customer) (bool, error) {
	query := `INSERT INTO customers (` + customerColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) ON CONFLICT (id) DO NOTHING`
	return affected(r.db.ExecContext(ctx, query, c.ID, c.FirstName, c.LastName, c.Phone, c.Email, c.IDNumber, c.LicenseNumber, c.Address, c.Notes, c.CreatedOn, c.UpdatedOn))
}

func (r *customerRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}
