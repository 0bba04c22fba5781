package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"rentacar-backend/internal/commission"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	JWT        JWTConfig        `yaml:"jwt"`
	Auth       AuthConfig       `yaml:"auth"`
	Storage    StorageConfig    `yaml:"storage"`
	Cloud      CloudConfig      `yaml:"cloud"`
	Email      EmailConfig      `yaml:"email"`
	Backup     BackupConfig     `yaml:"backup"`
	Commission CommissionConfig `yaml:"commission"`
	Log        LogConfig        `yaml:"log"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// AuthConfig lists the back-office operators allowed to log in
type AuthConfig struct {
	Operators []OperatorConfig `yaml:"operators"`
}

type OperatorConfig struct {
	ID           int32  `yaml:"id"`
	Email        string `yaml:"email"`
	Name         string `yaml:"name"`
	PasswordHash string `yaml:"password_hash"` // bcrypt
	Role         string `yaml:"role"`          // "ADMIN" or "AGENT"
}

// StorageConfig contains file storage settings
type StorageConfig struct {
	Type         string   `yaml:"type"` // only "local" for now
	Dir          string   `yaml:"dir"`
	MaxFileSize  int64    `yaml:"max_file_size_mb"`
	AllowedTypes []string `yaml:"allowed_types"`
}

// CloudConfig selects the remote document store used by sync
type CloudConfig struct {
	Type             string `yaml:"type"` // "firestore", "memory" or "none"
	ProjectID        string `yaml:"project_id"`
	CredentialsFile  string `yaml:"credentials_file"`
	CollectionPrefix string `yaml:"collection_prefix"`
}

// EmailConfig contains SendGrid settings; an empty API key disables email
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
	AdminEmail     string `yaml:"admin_email"`
}

// BackupConfig contains backup retention settings
type BackupConfig struct {
	Retain int `yaml:"retain"`
}

// CommissionConfig is the rule used until an administrator saves settings
type CommissionConfig struct {
	Days1to6Percent       float64 `yaml:"days_1_to_6_percent"`
	Days7to23Percent      float64 `yaml:"days_7_to_23_percent"`
	Days24PlusPercent     float64 `yaml:"days_24_plus_percent"`
	ExtraPercentPer30Days float64 `yaml:"extra_percent_per_30_days"`
	VATPercent            float64 `yaml:"vat_percent"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SyncCloud    string `yaml:"sync_cloud"`
	CreateBackup string `yaml:"create_backup"`
	PruneBackups string `yaml:"prune_backups"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and validates
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			c.Database.Port = p
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			c.Server.Port = p
		}
	}

	// Storage
	if val := os.Getenv("STORAGE_DIR"); val != "" {
		c.Storage.Dir = val
	}

	// Cloud
	if val := os.Getenv("CLOUD_TYPE"); val != "" {
		c.Cloud.Type = val
	}
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Cloud.ProjectID = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Cloud.CredentialsFile = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}

	// Backup
	if val := os.Getenv("BACKUP_RETAIN"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Backup.Retain = n
		}
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 30
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 12 * 60
	}

	for i, op := range c.Auth.Operators {
		if op.Email == "" || op.PasswordHash == "" {
			return fmt.Errorf("operator %d needs email and password_hash", i)
		}
		if op.Role != "ADMIN" && op.Role != "AGENT" {
			return fmt.Errorf("operator %s has unknown role %q", op.Email, op.Role)
		}
	}

	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("storage directory is required")
	}
	if c.Storage.MaxFileSize == 0 {
		c.Storage.MaxFileSize = 20
	}

	switch c.Cloud.Type {
	case "":
		c.Cloud.Type = "none"
	case "none", "memory":
	case "firestore":
		if c.Cloud.ProjectID == "" {
			return fmt.Errorf("cloud project_id is required for firestore")
		}
	default:
		return fmt.Errorf("unsupported cloud type: %s", c.Cloud.Type)
	}

	if c.Email.SendGridAPIKey != "" && c.Email.FromEmail == "" {
		return fmt.Errorf("email from_email is required when SendGrid is enabled")
	}

	if c.Backup.Retain == 0 {
		c.Backup.Retain = 14
	}
	if c.Backup.Retain < 0 {
		return fmt.Errorf("backup retain must be positive")
	}

	cm := c.Commission
	if cm.Days1to6Percent < 0 || cm.Days7to23Percent < 0 || cm.Days24PlusPercent < 0 || cm.ExtraPercentPer30Days < 0 {
		return fmt.Errorf("commission percentages must not be negative")
	}
	if cm.VATPercent < 0 || cm.VATPercent >= 100 {
		return fmt.Errorf("invalid VAT percent: %v", cm.VATPercent)
	}

	if c.Scheduler.SyncCloud == "" {
		c.Scheduler.SyncCloud = "0 */15 * * * *" // every 15 minutes
	}
	if c.Scheduler.CreateBackup == "" {
		c.Scheduler.CreateBackup = "0 0 1 * * *" // 1 AM UTC
	}
	if c.Scheduler.PruneBackups == "" {
		c.Scheduler.PruneBackups = "0 30 1 * * *" // 1:30 AM UTC
	}

	return nil
}

// DefaultCommissionRule converts the configured defaults into a commission rule
func (c *Config) DefaultCommissionRule() commission.Rule {
	return commission.Rule{
		Days1to6Percent:       decimal.NewFromFloat(c.Commission.Days1to6Percent),
		Days7to23Percent:      decimal.NewFromFloat(c.Commission.Days7to23Percent),
		Days24PlusPercent:     decimal.NewFromFloat(c.Commission.Days24PlusPercent),
		ExtraPercentPer30Days: decimal.NewFromFloat(c.Commission.ExtraPercentPer30Days),
	}
}

// DefaultVATPercent returns the configured VAT percentage
func (c *Config) DefaultVATPercent() decimal.Decimal {
	return decimal.NewFromFloat(c.Commission.VATPercent)
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
