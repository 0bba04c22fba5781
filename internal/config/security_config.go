package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Any operator access token
	SecurityAdmin                       // Access token with the ADMIN role
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Public
	"Health": SecurityPublic,
	"Login":  SecurityPublic,

	// Customers
	"ListCustomers":  SecurityAccess,
	"CreateCustomer": SecurityAccess,
	"GetCustomer":    SecurityAccess,
	"UpdateCustomer": SecurityAccess,
	"DeleteCustomer": SecurityAdmin,

	// Suppliers and branches
	"ListSuppliers":  SecurityAccess,
	"CreateSupplier": SecurityAdmin,
	"GetSupplier":    SecurityAccess,
	"UpdateSupplier": SecurityAdmin,
	"ListBranches":   SecurityAccess,
	"CreateBranch":   SecurityAdmin,
	"UpdateBranch":   SecurityAdmin,

	// Reservations
	"ListReservations":  SecurityAccess,
	"CreateReservation": SecurityAccess,
	"GetReservation":    SecurityAccess,
	"UpdateReservation": SecurityAccess,
	"CancelReservation": SecurityAccess,
	"CloseReservation":  SecurityAccess,
	"AddPayment":        SecurityAccess,
	"DeletePayment":     SecurityAdmin,

	// Commission and settings
	"QuoteCommission":  SecurityAccess,
	"GetSettings":      SecurityAccess,
	"UpdateSettings":   SecurityAdmin,
	"CommissionReport": SecurityAdmin,

	// Documents
	"UploadDocument":   SecurityAccess,
	"ListDocuments":    SecurityAccess,
	"DownloadDocument": SecurityAccess,
	"DeleteDocument":   SecurityAccess,

	// Backups and sync
	"ListBackups":   SecurityAdmin,
	"CreateBackup":  SecurityAdmin,
	"RestoreBackup": SecurityAdmin,
	"SyncCloud":     SecurityAdmin,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAdmin
}
