package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Booking   BookingConfig   `yaml:"booking"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
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

// BookingConfig contains booking workflow settings
type BookingConfig struct {
	Currency          string `yaml:"currency"`
	MaxAssignRetries  int    `yaml:"max_assign_retries"`
	EnquiryExpiryDays int    `yaml:"enquiry_expiry_days"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	MarkNoShows          string `yaml:"mark_no_shows"`
	ExpireStaleEnquiries string `yaml:"expire_stale_enquiries"`
	ReconcileBlocks      string `yaml:"reconcile_blocks"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads and parses the configuration file at the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and fills defaults
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Booking.Currency == "" {
		c.Booking.Currency = "INR"
	}
	if c.Booking.MaxAssignRetries == 0 {
		c.Booking.MaxAssignRetries = 3
	}
	if c.Booking.EnquiryExpiryDays == 0 {
		c.Booking.EnquiryExpiryDays = 14
	}
	if c.Scheduler.MarkNoShows == "" {
		c.Scheduler.MarkNoShows = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.ExpireStaleEnquiries == "" {
		c.Scheduler.ExpireStaleEnquiries = "0 0 3 * * *" // 3 AM UTC
	}
	if c.Scheduler.ReconcileBlocks == "" {
		c.Scheduler.ReconcileBlocks = "0 30 * * * *" // half past every hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	return nil
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

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
