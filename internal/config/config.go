package config

import (
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration options for the work tracker
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Auth       AuthConfig
	Log        LogConfig
	Time       TimeConfig
	Validation ValidationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path         string        `env:"WT_DB_PATH"`
	QueryTimeout time.Duration `env:"WT_DB_QUERY_TIMEOUT"`
	BusyTimeout  time.Duration `env:"WT_DB_BUSY_TIMEOUT"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `env:"WT_SERVER_ADDR"`
	ReadTimeout     time.Duration `env:"WT_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"WT_SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"WT_SERVER_SHUTDOWN_TIMEOUT"`
}

// AuthConfig holds bearer token configuration
type AuthConfig struct {
	Secret   string        `env:"WT_AUTH_SECRET"`
	Issuer   string        `env:"WT_AUTH_ISSUER"`
	TokenTTL time.Duration `env:"WT_AUTH_TOKEN_TTL"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `env:"WT_LOG_LEVEL"`
	Format     string `env:"WT_LOG_FORMAT"`
	Output     string `env:"WT_LOG_OUTPUT"`
	FilePath   string `env:"WT_LOG_FILE"`
	MaxSizeMB  int    `env:"WT_LOG_MAX_SIZE_MB"`
	MaxBackups int    `env:"WT_LOG_MAX_BACKUPS"`
	MaxAgeDays int    `env:"WT_LOG_MAX_AGE_DAYS"`
	Compress   bool   `env:"WT_LOG_COMPRESS"`
	Debug      bool   `env:"WT_DEBUG"`
}

// TimeConfig holds calendar configuration
type TimeConfig struct {
	Zone string `env:"WT_TIME_ZONE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskNameMaxLength    int             `env:"WT_VALIDATION_TASK_NAME_MAX"`
	DescriptionMaxLength int             `env:"WT_VALIDATION_DESCRIPTION_MAX"`
	MaxHoursPerLog       decimal.Decimal `env:"WT_VALIDATION_MAX_HOURS"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:         "work-tracker.db",
			QueryTimeout: 10 * time.Second,
			BusyTimeout:  5 * time.Second,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			Issuer:   "work-tracker",
			TokenTTL: 24 * time.Hour,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			Output:     "stdout",
			FilePath:   "logs/work-tracker.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Time: TimeConfig{
			Zone: "Local",
		},
		Validation: ValidationConfig{
			TaskNameMaxLength:    255,
			DescriptionMaxLength: 5000,
			MaxHoursPerLog:       decimal.NewFromInt(24),
		},
	}
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// Location resolves the configured time zone used for calendar day boundaries
func (c *Config) Location() (*time.Location, error) {
	if c.Time.Zone == "" || c.Time.Zone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Time.Zone)
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values keep the current setting.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if path := os.Getenv("WT_DB_PATH"); path != "" {
		c.Database.Path = path
	}
	if v := os.Getenv("WT_DB_QUERY_TIMEOUT"); v != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(v, c.Database.QueryTimeout)
	}
	if v := os.Getenv("WT_DB_BUSY_TIMEOUT"); v != "" {
		c.Database.BusyTimeout = ParseDurationWithFallback(v, c.Database.BusyTimeout)
	}

	// Server configuration
	if addr := os.Getenv("WT_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if v := os.Getenv("WT_SERVER_READ_TIMEOUT"); v != "" {
		c.Server.ReadTimeout = ParseDurationWithFallback(v, c.Server.ReadTimeout)
	}
	if v := os.Getenv("WT_SERVER_WRITE_TIMEOUT"); v != "" {
		c.Server.WriteTimeout = ParseDurationWithFallback(v, c.Server.WriteTimeout)
	}
	if v := os.Getenv("WT_SERVER_SHUTDOWN_TIMEOUT"); v != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(v, c.Server.ShutdownTimeout)
	}

	// Auth configuration
	if secret := os.Getenv("WT_AUTH_SECRET"); secret != "" {
		c.Auth.Secret = secret
	}
	if issuer := os.Getenv("WT_AUTH_ISSUER"); issuer != "" {
		c.Auth.Issuer = issuer
	}
	if v := os.Getenv("WT_AUTH_TOKEN_TTL"); v != "" {
		c.Auth.TokenTTL = ParseDurationWithFallback(v, c.Auth.TokenTTL)
	}

	// Log configuration
	if level := os.Getenv("WT_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
	if format := os.Getenv("WT_LOG_FORMAT"); format != "" {
		c.Log.Format = strings.ToLower(format)
	}
	if output := os.Getenv("WT_LOG_OUTPUT"); output != "" {
		c.Log.Output = strings.ToLower(output)
	}
	if path := os.Getenv("WT_LOG_FILE"); path != "" {
		c.Log.FilePath = path
	}
	if v := os.Getenv("WT_LOG_MAX_SIZE_MB"); v != "" {
		c.Log.MaxSizeMB = ParseIntWithFallback(v, c.Log.MaxSizeMB)
	}
	if v := os.Getenv("WT_LOG_MAX_BACKUPS"); v != "" {
		c.Log.MaxBackups = ParseIntWithFallback(v, c.Log.MaxBackups)
	}
	if v := os.Getenv("WT_LOG_MAX_AGE_DAYS"); v != "" {
		c.Log.MaxAgeDays = ParseIntWithFallback(v, c.Log.MaxAgeDays)
	}
	if v := os.Getenv("WT_LOG_COMPRESS"); v != "" {
		c.Log.Compress = ParseBoolWithFallback(v, c.Log.Compress)
	}
	if v := os.Getenv("WT_DEBUG"); v != "" {
		c.Log.Debug = ParseBoolWithFallback(v, c.Log.Debug)
	}

	// Time configuration
	if zone := os.Getenv("WT_TIME_ZONE"); zone != "" {
		c.Time.Zone = zone
	}

	// Validation configuration
	if v := os.Getenv("WT_VALIDATION_TASK_NAME_MAX"); v != "" {
		c.Validation.TaskNameMaxLength = ParseIntWithFallback(v, c.Validation.TaskNameMaxLength)
	}
	if v := os.Getenv("WT_VALIDATION_DESCRIPTION_MAX"); v != "" {
		c.Validation.DescriptionMaxLength = ParseIntWithFallback(v, c.Validation.DescriptionMaxLength)
	}
	if v := os.Getenv("WT_VALIDATION_MAX_HOURS"); v != "" {
		c.Validation.MaxHoursPerLog = ParseDecimalWithFallback(v, c.Validation.MaxHoursPerLog)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Path == "" {
		return &ConfigError{Field: "database.path", Message: "database path cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.BusyTimeout < 0 {
		return &ConfigError{Field: "database.busy_timeout", Message: "busy timeout cannot be negative"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate auth configuration
	if c.Auth.Secret != "" && len(c.Auth.Secret) < 16 {
		return &ConfigError{Field: "auth.secret", Message: "secret must be at least 16 characters"}
	}
	if c.Auth.TokenTTL <= 0 {
		return &ConfigError{Field: "auth.token_ttl", Message: "token ttl must be positive"}
	}

	// Validate log configuration
	switch c.Log.Format {
	case "json", "text":
	default:
		return &ConfigError{Field: "log.format", Message: "format must be json or text"}
	}
	switch c.Log.Output {
	case "stdout", "file", "both":
	default:
		return &ConfigError{Field: "log.output", Message: "output must be stdout, file or both"}
	}
	if c.Log.Output != "stdout" && c.Log.FilePath == "" {
		return &ConfigError{Field: "log.file", Message: "log file path cannot be empty when writing to a file"}
	}

	// Validate time configuration
	if _, err := c.Location(); err != nil {
		return &ConfigError{Field: "time.zone", Message: "unknown time zone " + c.Time.Zone}
	}

	// Validate validation configuration
	if c.Validation.TaskNameMaxLength < 1 {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}
	if !c.Validation.MaxHoursPerLog.IsPositive() {
		return &ConfigError{Field: "validation.max_hours", Message: "max hours per log must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
