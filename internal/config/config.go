package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	StorageGORM   = "gorm"
	StorageMemory = "memory"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds everything the service reads from the environment.
type Config struct {
	AppPort        string
	Storage        string
	Database       DatabaseConfig
	RabbitMQURL    string
	Auth           AuthConfig
	SeedSampleData bool
}

// DatabaseConfig selects and tunes the GORM dialector.
type DatabaseConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

// AuthConfig holds the operator credentials. Auth is on when JWTSecret is set.
type AuthConfig struct {
	JWTSecret    string
	Username     string
	PasswordHash string
}

// Enabled reports whether mutating routes require a token.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STORAGE", StorageGORM)
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "inventory.db")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("AUTH_USERNAME", "admin")
	v.SetDefault("AUTH_PASSWORD_HASH", "")
	v.SetDefault("SEED_SAMPLE_DATA", false)
}

// Load reads a Config from v, which is expected to have environment
// binding already set up, and validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		AppPort: v.GetString("APP_PORT"),
		Storage: v.GetString("STORAGE"),
		Database: DatabaseConfig{
			Driver:       v.GetString("DATABASE_DRIVER"),
			DSN:          v.GetString("DATABASE_DSN"),
			MaxOpenConns: v.GetInt("DATABASE_MAX_OPEN_CONNS"),
		},
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		Auth: AuthConfig{
			JWTSecret:    v.GetString("JWT_SECRET"),
			Username:     v.GetString("AUTH_USERNAME"),
			PasswordHash: v.GetString("AUTH_PASSWORD_HASH"),
		},
		SeedSampleData: v.GetBool("SEED_SAMPLE_DATA"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT is required")
	}
	switch c.Storage {
	case StorageMemory:
	case StorageGORM:
		switch c.Database.Driver {
		case DriverSQLite, DriverPostgres:
		default:
			return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
		}
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for %s storage", c.Storage)
		}
	default:
		return fmt.Errorf("unsupported STORAGE %q", c.Storage)
	}
	if c.Auth.Enabled() {
		if c.Auth.Username == "" {
			return fmt.Errorf("AUTH_USERNAME is required when JWT_SECRET is set")
		}
		if c.Auth.PasswordHash == "" {
			return fmt.Errorf("AUTH_PASSWORD_HASH is required when JWT_SECRET is set")
		}
	}
	return nil
}
