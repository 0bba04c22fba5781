package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentacar-backend/internal/security"
	"rentacar-backend/internal/service"
)

// Services are the business services exposed over HTTP
type Services struct {
	Auth         service.AuthService
	Customers    service.CustomerService
	Suppliers    service.SupplierService
	Reservations service.ReservationService
	Settings     service.SettingsService
	Reports      service.ReportService
	Documents    service.DocumentService
	Backups      service.BackupService
	Sync         service.SyncService
}

// NewRouter registers every API route. Route names are the keys of
// config.EndpointSecurityConfig.
func NewRouter(svc Services, tokenManager security.TokenManager, maxUploadBytes int64) *mux.Router {
	auth := NewAuthHandler(svc.Auth)
	customers := NewCustomerHandler(svc.Customers)
	suppliers := NewSupplierHandler(svc.Suppliers)
	reservations := NewReservationHandler(svc.Reservations)
	settings := NewSettingsHandler(svc.Settings, svc.Reports)
	documents := NewDocumentHandler(svc.Documents, maxUploadBytes)
	backups := NewBackupHandler(svc.Backups, svc.Sync)

	router := mux.NewRouter()
	router.Use(LoggingMiddleware, NewAuthMiddleware(tokenManager).Handler)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet).Name("Health")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost).Name("Login")

	api.HandleFunc("/customers", customers.List).Methods(http.MethodGet).Name("ListCustomers")
	api.HandleFunc("/customers", customers.Create).Methods(http.MethodPost).Name("CreateCustomer")
	api.HandleFunc("/customers/{id}", customers.Get).Methods(http.MethodGet).Name("GetCustomer")
	api.HandleFunc("/customers/{id}", customers.Update).Methods(http.MethodPut).Name("UpdateCustomer")
	api.HandleFunc("/customers/{id}", customers.Delete).Methods(http.MethodDelete).Name("DeleteCustomer")

	api.HandleFunc("/suppliers", suppliers.List).Methods(http.MethodGet).Name("ListSuppliers")
	api.HandleFunc("/suppliers", suppliers.Create).Methods(http.MethodPost).Name("CreateSupplier")
	api.HandleFunc("/suppliers/{id}", suppliers.Get).Methods(http.MethodGet).Name("GetSupplier")
	api.HandleFunc("/suppliers/{id}", suppliers.Update).Methods(http.MethodPut).Name("UpdateSupplier")
	api.HandleFunc("/suppliers/{id}/branches", suppliers.ListBranches).Methods(http.MethodGet).Name("ListBranches")
	api.HandleFunc("/suppliers/{id}/branches", suppliers.CreateBranch).Methods(http.MethodPost).Name("CreateBranch")
	api.HandleFunc("/branches/{id}", suppliers.UpdateBranch).Methods(http.MethodPut).Name("UpdateBranch")

	api.HandleFunc("/reservations", reservations.List).Methods(http.MethodGet).Name("ListReservations")
	api.HandleFunc("/reservations", reservations.Create).Methods(http.MethodPost).Name("CreateReservation")
	api.HandleFunc("/reservations/{id}", reservations.Get).Methods(http.MethodGet).Name("GetReservation")
	api.HandleFunc("/reservations/{id}", reservations.Update).Methods(http.MethodPut).Name("UpdateReservation")
	api.HandleFunc("/reservations/{id}/cancel", reservations.Cancel).Methods(http.MethodPost).Name("CancelReservation")
	api.HandleFunc("/reservations/{id}/close", reservations.Close).Methods(http.MethodPost).Name("CloseReservation")
	api.HandleFunc("/reservations/{id}/payments", reservations.AddPayment).Methods(http.MethodPost).Name("AddPayment")
	api.HandleFunc("/payments/{id}", reservations.DeletePayment).Methods(http.MethodDelete).Name("DeletePayment")

	api.HandleFunc("/commission/quote", settings.Quote).Methods(http.MethodPost).Name("QuoteCommission")
	api.HandleFunc("/settings", settings.Get).Methods(http.MethodGet).Name("GetSettings")
	api.HandleFunc("/settings", settings.Update).Methods(http.MethodPut).Name("UpdateSettings")
	api.HandleFunc("/reports/commission", settings.CommissionReport).Methods(http.MethodGet).Name("CommissionReport")

	api.HandleFunc("/documents", documents.List).Methods(http.MethodGet).Name("ListDocuments")
	api.HandleFunc("/documents", documents.Upload).Methods(http.MethodPost).Name("UploadDocument")
	api.HandleFunc("/documents/{id}", documents.Download).Methods(http.MethodGet).Name("DownloadDocument")
	api.HandleFunc("/documents/{id}", documents.Delete).Methods(http.MethodDelete).Name("DeleteDocument")

	api.HandleFunc("/backups", backups.List).Methods(http.MethodGet).Name("ListBackups")
	api.HandleFunc("/backups", backups.Create).Methods(http.MethodPost).Name("CreateBackup")
	api.HandleFunc("/backups/restore", backups.Restore).Methods(http.MethodPost).Name("RestoreBackup")
	api.HandleFunc("/sync", backups.Sync).Methods(http.MethodPost).Name("SyncCloud")

	return router
}
