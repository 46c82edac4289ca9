package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverBadger   = "badger"
)

type Config struct {
	GinMode  string
	AppEnv   string
	LogLevel string
	Port     string
	TZ       string

	StoreDriver string

	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	SQLitePath string
	BadgerPath string

	DBMaxAttempts int
	DBRetryDelay  time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("TZ", "UTC")
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSLMODE", "")
	v.SetDefault("SQLITE_PATH", "authors.db")
	v.SetDefault("BADGER_PATH", "data/badger")
	v.SetDefault("DB_MAX_ATTEMPTS", 10)
	v.SetDefault("DB_RETRY_DELAY", 2*time.Second)
}

// Load reads the configuration from the global viper instance, which the CLI
// binds to its flags. In debug mode a local .env file is loaded first.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if v.GetString("GIN_MODE") == "debug" {
		// a missing .env is fine; real env vars still apply
		_ = godotenv.Load(".env")
	}

	cfg := &Config{
		GinMode:       v.GetString("GIN_MODE"),
		AppEnv:        v.GetString("APP_ENV"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		Port:          v.GetString("PORT"),
		TZ:            v.GetString("TZ"),
		StoreDriver:   v.GetString("STORE_DRIVER"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPass:        v.GetString("DB_PASS"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSLMODE"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		BadgerPath:    v.GetString("BADGER_PATH"),
		DBMaxAttempts: v.GetInt("DB_MAX_ATTEMPTS"),
		DBRetryDelay:  v.GetDuration("DB_RETRY_DELAY"),
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.GinMode, validation.Required, validation.In("debug", "release", "test")),
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.StoreDriver,
			validation.Required,
			validation.In(DriverPostgres, DriverSQLite, DriverBadger).
				Error("must be one of postgres, sqlite, badger"),
		),
		validation.Field(&c.DBHost, validation.When(c.StoreDriver == DriverPostgres, validation.Required)),
		validation.Field(&c.DBPort, validation.When(c.StoreDriver == DriverPostgres, validation.Required, is.Port)),
		validation.Field(&c.DBName, validation.When(c.StoreDriver == DriverPostgres, validation.Required)),
		validation.Field(&c.SQLitePath, validation.When(c.StoreDriver == DriverSQLite, validation.Required)),
		validation.Field(&c.BadgerPath, validation.When(c.StoreDriver == DriverBadger, validation.Required)),
		validation.Field(&c.DBMaxAttempts, validation.Min(1)),
	)
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
