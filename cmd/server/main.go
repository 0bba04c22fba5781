package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "rentacar-backend/internal/api/http"
	"rentacar-backend/internal/cloud"
	"rentacar-backend/internal/config"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository/postgres"
	"rentacar-backend/internal/security"
	"rentacar-backend/internal/service"
	"rentacar-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrate := flag.Bool("migrate", false, "Create the database schema before serving")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rent-a-Car Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)
	if *migrate {
		if err := store.Migrate(context.Background()); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		logger.Info("Database schema applied")
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Storage
	logger.Info("Using local storage", "dir", cfg.Storage.Dir)
	fileStore, err := storage.NewLocalStorage(cfg.Storage.Dir)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize Cloud Store
	remote, err := cloud.Open(context.Background(), cfg.Cloud)
	if err != nil {
		logger.Error("Failed to initialize cloud store", "type", cfg.Cloud.Type, "error", err)
		log.Fatalf("Failed to initialize cloud store: %v", err)
	}
	if remote != nil {
		defer remote.Close()
	}
	logger.Info("Cloud configuration", "type", cfg.Cloud.Type, "project_id", cfg.Cloud.ProjectID)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName, cfg.Email.AdminEmail)
	settingsSvc := service.NewSettingsService(store.SettingsRepository, cfg.DefaultCommissionRule(), cfg.DefaultVATPercent())
	repos := service.Repositories{
		Customers:    store.CustomerRepository,
		Suppliers:    store.SupplierRepository,
		Reservations: store.ReservationRepository,
		Payments:     store.PaymentRepository,
		Sequences:    store,
	}
	maxUploadBytes := cfg.Storage.MaxFileSize * 1024 * 1024

	services := httpapi.Services{
		Auth:      service.NewAuthService(cfg.Auth.Operators, tokenManager),
		Customers: service.NewCustomerService(store.CustomerRepository),
		Suppliers: service.NewSupplierService(store.SupplierRepository),
		Reservations: service.NewReservationService(
			store.ReservationRepository,
			store.PaymentRepository,
			store.CustomerRepository,
			store.SupplierRepository,
			settingsSvc,
			emailSvc,
		),
		Settings: settingsSvc,
		Reports:  service.NewReportService(store.ReservationRepository, store.SupplierRepository),
		Documents: service.NewDocumentService(
			store.DocumentRepository,
			store.CustomerRepository,
			store.SupplierRepository,
			store.ReservationRepository,
			fileStore,
			maxUploadBytes,
			cfg.Storage.AllowedTypes,
		),
		Backups: service.NewBackupService(repos, fileStore),
	}
	if remote != nil {
		services.Sync = service.NewSyncService(repos, remote)
	}

	if len(cfg.Auth.Operators) == 0 {
		logger.Warn("No operators configured, every login will fail")
	}

	// Set up HTTP server
	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      httpapi.NewRouter(services, tokenManager, maxUploadBytes),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve HTTP", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped. Goodbye!")
}
