package domain

import "time"

const BackupFormatVersion = 1

// Table names shared by backups and cloud sync
const (
	TableCustomers    = "customers"
	TableSuppliers    = "suppliers"
	TableBranches     = "branches"
	TableReservations = "reservations"
	TablePayments     = "payments"
)

// Backup is the JSON document written by the backup job and read by restore
type Backup struct {
	Version   int          `json:"version"`
	CreatedAt time.Time    `json:"created_at"`
	Tables    BackupTables `json:"tables"`
}

type BackupTables struct {
	Customers    []Customer    `json:"customers"`
	Suppliers    []Supplier    `json:"suppliers"`
	Branches     []Branch      `json:"branches"`
	Reservations []Reservation `json:"reservations"`
	Payments     []Payment     `json:"payments"`
}

type BackupInfo struct {
	Key       string    `json:"key"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// RestoreResult counts rows written per table; existing rows are skipped
type RestoreResult struct {
	Inserted map[string]int `json:"inserted"`
	Skipped  map[string]int `json:"skipped"`
}

func NewRestoreResult() *RestoreResult {
	return &RestoreResult{Inserted: map[string]int{}, Skipped: map[string]int{}}
}
