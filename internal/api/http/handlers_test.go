package http

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentacar-backend/internal/domain"
)

func TestCustomerHandler(t *testing.T) {
	t.Run("search with paging", func(t *testing.T) {
		ts := newTestServer(t)
		ts.customers.On("SearchCustomers", mock.Anything, "levi", int32(2), int32(20)).
			Return([]domain.Customer{{ID: 4, FirstName: "Dana", LastName: "Levi"}}, int32(21), nil)

		rec := ts.do(t, http.MethodGet, "/api/v1/customers?q=levi&page=2&page_size=20", nil, domain.OperatorRoleAgent)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp customerListResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, int32(21), resp.Total)
		require.Len(t, resp.Customers, 1)
		assert.Equal(t, "Levi", resp.Customers[0].LastName)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		ts := newTestServer(t)
		ts.customers.On("SearchCustomers", mock.Anything, "", int32(0), int32(0)).Return([]domain.Customer(nil), int32(0), nil)
		rec := ts.do(t, http.MethodGet, "/api/v1/customers", nil, domain.OperatorRoleAgent)
		assert.Contains(t, rec.Body.String(), `"customers":[]`)
	})

	t.Run("bad page", func(t *testing.T) {
		ts := newTestServer(t)
		rec := ts.do(t, http.MethodGet, "/api/v1/customers?page=x", nil, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create", func(t *testing.T) {
		ts := newTestServer(t)
		ts.customers.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
			return c.FirstName == "Dana" && c.Email == "dana@example.com"
		})).Return(&domain.Customer{ID: 7, FirstName: "Dana", Email: "dana@example.com"}, nil)

		rec := ts.do(t, http.MethodPost, "/api/v1/customers", `{"first_name":"Dana","email":"dana@example.com"}`, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":7`)
	})

	t.Run("update takes id from path", func(t *testing.T) {
		ts := newTestServer(t)
		ts.customers.On("UpdateCustomer", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
			return c.ID == 5
		})).Return(&domain.Customer{ID: 5, FirstName: "Dana"}, nil)

		rec := ts.do(t, http.MethodPut, "/api/v1/customers/5", `{"id":99,"first_name":"Dana"}`, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusOK, rec.Code)
		ts.customers.AssertExpectations(t)
	})

	t.Run("admin delete", func(t *testing.T) {
		ts := newTestServer(t)
		ts.customers.On("DeleteCustomer", mock.Anything, int32(5)).Return(nil)
		rec := ts.do(t, http.MethodDelete, "/api/v1/customers/5", nil, domain.OperatorRoleAdmin)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestSupplierHandler(t *testing.T) {
	t.Run("active filter", func(t *testing.T) {
		ts := newTestServer(t)
		ts.suppliers.On("ListSuppliers", mock.Anything, true).Return([]domain.Supplier{{ID: 1, Name: "Budget", Active: true}}, nil)
		rec := ts.do(t, http.MethodGet, "/api/v1/suppliers?active=true", nil, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Budget")
	})

	t.Run("create branch under supplier", func(t *testing.T) {
		ts := newTestServer(t)
		ts.suppliers.On("CreateBranch", mock.Anything, mock.MatchedBy(func(b *domain.Branch) bool {
			return b.SupplierID == 3 && b.Name == "Airport"
		})).Return(&domain.Branch{ID: 10, SupplierID: 3, Name: "Airport"}, nil)

		rec := ts.do(t, http.MethodPost, "/api/v1/suppliers/3/branches", `{"name":"Airport"}`, domain.OperatorRoleAdmin)
		assert.Equal(t, http.StatusCreated, rec.Code)
		ts.suppliers.AssertExpectations(t)
	})

	t.Run("agent cannot create supplier", func(t *testing.T) {
		ts := newTestServer(t)
		rec := ts.do(t, http.MethodPost, "/api/v1/suppliers", `{"name":"Budget"}`, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestReservationHandler(t *testing.T) {
	t.Run("create parses dates", func(t *testing.T) {
		ts := newTestServer(t)
		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
		ts.reservations.On("CreateReservation", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
			return r.StartAt.Equal(start) && r.EndAt.Equal(end) &&
				r.Price.Equal(decimal.NewFromInt(1170)) && r.PriceIncludesVAT &&
				r.BranchID != nil && *r.BranchID == 2
		})).Return(&domain.Reservation{ID: 1, Days: 3, CommissionAmount: decimal.NewFromInt(30)}, nil)

		body := `{"customer_id":1,"supplier_id":1,"branch_id":2,"start_at":"2024-03-01","end_at":"2024-03-04T10:00:00Z","price":"1170","price_includes_vat":true}`
		rec := ts.do(t, http.MethodPost, "/api/v1/reservations", body, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"commission_amount":"30"`)
		ts.reservations.AssertExpectations(t)
	})

	t.Run("bad date", func(t *testing.T) {
		ts := newTestServer(t)
		body := `{"customer_id":1,"supplier_id":1,"start_at":"01/03/2024","end_at":"2024-03-04","price":"100"}`
		rec := ts.do(t, http.MethodPost, "/api/v1/reservations", body, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "start_at")
	})

	t.Run("list filters", func(t *testing.T) {
		ts := newTestServer(t)
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		ts.reservations.On("ListReservations", mock.Anything, mock.MatchedBy(func(f domain.ReservationFilter) bool {
			return f.CustomerID == 4 && f.Status == domain.ReservationStatusOpen &&
				f.From != nil && f.From.Equal(from) && f.To == nil && f.PageSize == 10
		})).Return([]domain.Reservation{{ID: 1}}, int32(1), nil)

		rec := ts.do(t, http.MethodGet, "/api/v1/reservations?customer_id=4&status=OPEN&from=2024-01-01&page_size=10", nil, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":1`)
	})

	t.Run("cancel", func(t *testing.T) {
		ts := newTestServer(t)
		ts.reservations.On("CancelReservation", mock.Anything, int32(8)).
			Return(&domain.Reservation{ID: 8, Status: domain.ReservationStatusCancelled}, nil)
		rec := ts.do(t, http.MethodPost, "/api/v1/reservations/8/cancel", nil, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "CANCELLED")
	})

	t.Run("close not editable", func(t *testing.T) {
		ts := newTestServer(t)
		ts.reservations.On("CloseReservation", mock.Anything, int32(8)).
			Return(nil, errors.Join(domain.ErrInvalidInput, errors.New("reservation 8 is CANCELLED")))
		rec := ts.do(t, http.MethodPost, "/api/v1/reservations/8/close", nil, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("add payment", func(t *testing.T) {
		ts := newTestServer(t)
		paidOn := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
		ts.reservations.On("AddPayment", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.ReservationID == 8 && p.Amount.Equal(decimal.RequireFromString("250.5")) &&
				p.Method == domain.PaymentMethodCard && p.PaidOn.Equal(paidOn)
		})).Return(&domain.Payment{ID: 1, ReservationID: 8}, nil)

		rec := ts.do(t, http.MethodPost, "/api/v1/reservations/8/payments", `{"amount":"250.50","method":"CARD","paid_on":"2024-03-02"}`, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusCreated, rec.Code)
		ts.reservations.AssertExpectations(t)
	})
}

func TestSettingsHandler(t *testing.T) {
	t.Run("quote", func(t *testing.T) {
		ts := newTestServer(t)
		ts.settings.On("QuoteCommission", mock.Anything,
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
			mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(2000)) }),
			false,
		).Return(&domain.CommissionQuote{Days: 15, Percent: decimal.NewFromInt(5), Amount: decimal.NewFromInt(100)}, nil)

		rec := ts.do(t, http.MethodPost, "/api/v1/commission/quote", `{"start_at":"2024-03-01","end_at":"2024-03-16","price":2000}`, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"amount":"100"`)
	})

	t.Run("report by month as json", func(t *testing.T) {
		ts := newTestServer(t)
		from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		ts.reports.On("CommissionReport", mock.Anything, from, to).
			Return(&domain.CommissionReport{From: from, To: to, CommissionTotal: decimal.NewFromInt(450)}, nil)

		rec := ts.do(t, http.MethodGet, "/api/v1/reports/commission?year=2024&month=2", nil, domain.OperatorRoleAdmin)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"commission_total":"450"`)
	})

	t.Run("report as csv", func(t *testing.T) {
		ts := newTestServer(t)
		from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
		report := &domain.CommissionReport{From: from, To: to}
		ts.reports.On("CommissionReport", mock.Anything, from, to).Return(report, nil)
		ts.reports.On("WriteCommissionCSV", mock.Anything, report).Return(nil, "supplier,reservations\n")

		rec := ts.do(t, http.MethodGet, "/api/v1/reports/commission?from=2024-02-01&to=2024-02-15&format=csv", nil, domain.OperatorRoleAdmin)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "commission-2024-02-01-2024-02-15.csv")
		assert.Equal(t, "supplier,reservations\n", rec.Body.String())
	})

	t.Run("report needs a period", func(t *testing.T) {
		ts := newTestServer(t)
		rec := ts.do(t, http.MethodGet, "/api/v1/reports/commission?from=2024-02-01", nil, domain.OperatorRoleAdmin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rec = ts.do(t, http.MethodGet, "/api/v1/reports/commission?year=2024&month=13", nil, domain.OperatorRoleAdmin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDocumentHandler(t *testing.T) {
	t.Run("upload multipart", func(t *testing.T) {
		ts := newTestServer(t)
		ts.documents.On("Upload", mock.Anything, domain.DocumentOwnerCustomer, int32(4), "license.pdf", "application/pdf", "%PDF-1.4").
			Return(&domain.Document{ID: 1, FileName: "license.pdf"}, nil)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("owner_type", "customer"))
		require.NoError(t, mw.WriteField("owner_id", "4"))
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="file"; filename="license.pdf"`}
		header["Content-Type"] = []string{"application/pdf"}
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+ts.token(t, domain.OperatorRoleAgent))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		ts.documents.AssertExpectations(t)
	})

	t.Run("list requires owner", func(t *testing.T) {
		ts := newTestServer(t)
		rec := ts.do(t, http.MethodGet, "/api/v1/documents?owner_type=car&owner_id=1", nil, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("download streams file", func(t *testing.T) {
		ts := newTestServer(t)
		doc := &domain.Document{ID: 3, FileName: "scan.png", ContentType: "image/png", SizeBytes: 4}
		ts.documents.On("Open", mock.Anything, int32(3)).Return(doc, io.NopCloser(strings.NewReader("\x89PNG")), nil)

		rec := ts.do(t, http.MethodGet, "/api/v1/documents/3", nil, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "4", rec.Header().Get("Content-Length"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "scan.png")
		assert.Equal(t, "\x89PNG", rec.Body.String())
	})

	t.Run("download missing", func(t *testing.T) {
		ts := newTestServer(t)
		ts.documents.On("Open", mock.Anything, int32(3)).Return(nil, nil, domain.ErrNotFound)
		rec := ts.do(t, http.MethodGet, "/api/v1/documents/3", nil, domain.OperatorRoleAgent)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBackupHandler(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		ts := newTestServer(t)
		ts.backups.On("CreateBackup", mock.Anything).Return(&domain.BackupInfo{Key: "backups/backup-20240101T000000Z.json"}, nil)
		rec := ts.do(t, http.MethodPost, "/api/v1/backups", nil, domain.OperatorRoleAdmin)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "backup-20240101T000000Z.json")
	})

	t.Run("restore by key", func(t *testing.T) {
		ts := newTestServer(t)
		result := domain.NewRestoreResult()
		result.Inserted[domain.TableCustomers] = 2
		ts.backups.On("Restore", mock.Anything, "backups/backup-20240101T000000Z.json").Return(result, nil)

		rec := ts.do(t, http.MethodPost, "/api/v1/backups/restore", `{"key":"backups/backup-20240101T000000Z.json"}`, domain.OperatorRoleAdmin)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"customers":2`)
		ts.backups.AssertNotCalled(t, "RestoreData", mock.Anything, mock.Anything)
	})

	t.Run("restore uploaded document", func(t *testing.T) {
		ts := newTestServer(t)
		body := `{"version":1,"created_at":"2024-01-01T00:00:00Z","tables":{}}`
		ts.backups.On("RestoreData", mock.Anything, []byte(body)).Return(domain.NewRestoreResult(), nil)

		rec := ts.do(t, http.MethodPost, "/api/v1/backups/restore", body, domain.OperatorRoleAdmin)
		assert.Equal(t, http.StatusOK, rec.Code)
		ts.backups.AssertExpectations(t)
	})

	t.Run("sync", func(t *testing.T) {
		ts := newTestServer(t)
		ts.sync.On("SyncAll", mock.Anything).Return(&domain.SyncReport{
			Tables: []domain.TableSyncResult{{Table: domain.TableCustomers, Pushed: 3}},
		}, nil)
		rec := ts.do(t, http.MethodPost, "/api/v1/sync", nil, domain.OperatorRoleAdmin)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"pushed":3`)
	})

	t.Run("sync not configured", func(t *testing.T) {
		ts := newTestServer(t)
		router := NewRouter(Services{Backups: ts.backups}, ts.tokens, 1)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
		req.Header.Set("Authorization", "Bearer "+ts.token(t, domain.OperatorRoleAdmin))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
