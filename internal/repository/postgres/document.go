package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/repository"
)

const documentColumns = `id, owner_type, owner_id, file_name, content_type, storage_key, size_bytes, created_on`

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func scanDocument(row interface{ Scan(...any) error }) (*domain.Document, error) {
	d := &domain.Document{}
	if err := row.Scan(&d.ID, &d.OwnerType, &d.OwnerID, &d.FileName, &d.ContentType, &d.StorageKey, &d.SizeBytes, &d.CreatedOn); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *documentRepository) Create(ctx context.Context, d *domain.Document) error {
	now := time.Now().UTC()
	query := `INSERT INTO documents (owner_type, owner_id, file_name, content_type, storage_key, size_bytes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, d.OwnerType, d.OwnerID, d.FileName, d.ContentType, d.StorageKey, d.SizeBytes, now).Scan(&d.ID); err != nil {
		return mapError(err)
	}
	d.CreatedOn = now
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id int32) (*domain.Document, error) {
	d, err := scanDocument(r.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

func (r *documentRepository) ListByOwner(ctx context.Context, ownerType domain.DocumentOwnerType, ownerID int32) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE owner_type = $1 AND owner_id = $2 ORDER BY created_on DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

func (r *documentRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return mustAffect(res, err)
}
