package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

const (
	supplierColumns = `id, name, contact_name, phone, email, notes, active, created_on, updated_on`
	branchColumns   = `id, supplier_id, name, city, address, phone, created_on, updated_on`
)

type supplierRepository struct {
	db *sql.DB
}

func NewSupplierRepository(db *sql.DB) repository.SupplierRepository {
	return &supplierRepository{db: db}
}

func scanSupplier(row interface{ Scan(...any) error }) (*domain.Supplier, error) {
	s := &domain.Supplier{}
	if err := row.Scan(&s.ID, &s.Name, &s.ContactName, &s.Phone, &s.Email, &s.Notes, &s.Active, &s.CreatedOn, &s.UpdatedOn); err != nil {
		return nil, err
	}
	return s, nil
}

func scanBranch(row interface{ Scan(...any) error }) (*domain.Branch, error) {
	b := &domain.Branch{}
	if err := row.Scan(&b.ID, &b.SupplierID, &b.Name, &b.City, &b.Address, &b.Phone, &b.CreatedOn, &b.UpdatedOn); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *supplierRepository) Create(ctx context.Context, s *domain.Supplier) error {
	now := time.Now().UTC()
	query := `INSERT INTO suppliers (name, contact_name, phone, email, notes, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, s.Name, s.ContactName, s.Phone, s.Email, s.Notes, s.Active, now, now).Scan(&s.ID); err != nil {
		return mapError(err)
	}
	s.CreatedOn, s.UpdatedOn = now, now
	return nil
}

func (r *supplierRepository) GetByID(ctx context.Context, id int32) (*domain.Supplier, error) {
	s, err := scanSupplier(r.db.QueryRowContext(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *supplierRepository) Update(ctx context.Context, s *domain.Supplier) error {
	s.UpdatedOn = time.Now().UTC()
	query := `UPDATE suppliers SET name=$1, contact_name=$2, phone=$3, email=$4, notes=$5, active=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, s.Name, s.ContactName, s.Phone, s.Email, s.Notes, s.Active, s.UpdatedOn, s.ID)
	return mustAffect(res, err)
}

func (r *supplierRepository) List(ctx context.Context, activeOnly bool) ([]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	return r.querySuppliers(ctx, query+` ORDER BY name`)
}

func (r *supplierRepository) ListAll(ctx context.Context) ([]domain.Supplier, error) {
	return r.querySuppliers(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY id`)
}

func (r *supplierRepository) Import(ctx context.Context, s *domain.Supplier) (bool, error) {
	query := `INSERT INTO suppliers (` + supplierColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO NOTHING`
	return affected(r.db.ExecContext(ctx, query, s.ID, s.Name, s.ContactName, s.Phone, s.Email, s.Notes, s.Active, s.CreatedOn, s.UpdatedOn))
}

func (r *supplierRepository) CreateBranch(ctx context.Context, b *domain.Branch) error {
	now := time.Now().UTC()
	query := `INSERT INTO branches (supplier_id, name, city, address, phone, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, b.SupplierID, b.Name, b.City, b.Address, b.Phone, now, now).Scan(&b.ID); err != nil {
		return mapError(err)
	}
	b.CreatedOn, b.UpdatedOn = now, now
	return nil
}

func (r *supplierRepository) GetBranch(ctx context.Context, id int32) (*domain.Branch, error) {
	b, err := scanBranch(r.db.QueryRowContext(ctx, `SELECT `+branchColumns+` FROM branches WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *supplierRepository) UpdateBranch(ctx context.Context, b *domain.Branch) error {
	b.UpdatedOn = time.Now().UTC()
	query := `UPDATE branches SET name=$1, city=$2, address=$3, phone=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, b.Name, b.City, b.Address, b.Phone, b.UpdatedOn, b.ID)
	return mustAffect(res, err)
}

func (r *supplierRepository) ListBranches(ctx context.Context, supplierID int32) ([]domain.Branch, error) {
	return r.queryBranches(ctx, `SELECT `+branchColumns+` FROM branches WHERE supplier_id = $1 ORDER BY name`, supplierID)
}

func (r *supplierRepository) ListAllBranches(ctx context.Context) ([]domain.Branch, error) {
	return r.queryBranches(ctx, `SELECT `+branchColumns+` FROM branches ORDER BY id`)
}

func (r *supplierRepository) ImportBranch(ctx context.Context, b *domain.Branch) (bool, error) {
	query := `INSERT INTO branches (` + branchColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (id) DO NOTHING`
	return affected(r.db.ExecContext(ctx, query, b.ID, b.SupplierID, b.Name, b.City, b.Address, b.Phone, b.CreatedOn, b.UpdatedOn))
}

func (r *supplierRepository) querySuppliers(ctx context.Context, query string, args ...interface{}) ([]domain.Supplier, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, *s)
	}
	return suppliers, rows.Err()
}

func (r *supplierRepository) queryBranches(ctx context.Context, query string, args ...interface{}) ([]domain.Branch, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []domain.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, *b)
	}
	return branches, rows.Err()
}
