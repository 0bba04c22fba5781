package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentacar-backend/internal/domain"
)

var documentRowColumns = []string{"id", "owner_type", "owner_id", "file_name", "content_type", "storage_key", "size_bytes", "created_on"}

func TestDocumentRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentRepository(db)

	d := &domain.Document{
		OwnerType:   domain.DocumentOwnerReservation,
		OwnerID:     12,
		FileName:    "voucher.pdf",
		ContentType: "application/pdf",
		StorageKey:  "documents/reservation/12/abc.pdf",
		SizeBytes:   2048,
	}
	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(domain.DocumentOwnerReservation, int32(12), "voucher.pdf", "application/pdf", "documents/reservation/12/abc.pdf", int64(2048), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	require.NoError(t, repo.Create(context.Background(), d))
	assert.Equal(t, int32(5), d.ID)
	assert.False(t, d.CreatedOn.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_ListByOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(documentRowColumns).
		AddRow(2, "customer", 4, "license.jpg", "image/jpeg", "documents/customer/4/b.jpg", 100, now).
		AddRow(1, "customer", 4, "passport.pdf", "application/pdf", "documents/customer/4/a.pdf", 200, now)
	mock.ExpectQuery("SELECT (.+) FROM documents WHERE owner_type = \\$1 AND owner_id = \\$2").
		WithArgs(domain.DocumentOwnerCustomer, int32(4)).
		WillReturnRows(rows)

	docs, err := repo.ListByOwner(context.Background(), domain.DocumentOwnerCustomer, 4)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, domain.DocumentOwnerCustomer, docs[0].OwnerType)
	assert.Equal(t, "documents/customer/4/b.jpg", docs[0].StorageKey)
	assert.Equal(t, int64(200), docs[1].SizeBytes)
}

func TestDocumentRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentRepository(db)

	mock.ExpectExec("DELETE FROM documents").WithArgs(int32(9)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ResetSequences(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db)

	for _, table := range sequenceTables {
		mock.ExpectExec("SELECT setval\\(pg_get_serial_sequence\\('" + table + "', 'id'\\)").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	require.NoError(t, store.ResetSequences(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Migrate(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS customers").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
