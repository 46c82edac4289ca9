package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("driver %q is not relational", cfg.StoreDriver)
	}
}

func gormConfig(cfg *config.Config) *gorm.Config {
	level := logger.Warn
	if cfg.GinMode == "release" {
		level = logger.Error
	}

	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	}
}

// ConnectWithRetry opens the relational database and pings it, retrying
// until it answers or the configured attempts run out.
func ConnectWithRetry(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	attempts := cfg.DBMaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var db *gorm.DB

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err = gorm.Open(dial, gormConfig(cfg))
		if err == nil {
			sqlDB, err2 := db.DB()
			if err2 == nil {
				pingErr := sqlDB.PingContext(ctx)
				if pingErr == nil {
					return db, nil
				}
				err = pingErr
			} else {
				err = err2
			}
		}

		log.Warn().
			Err(err).
			Str("driver", cfg.StoreDriver).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Msg("db not ready")

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBRetryDelay):
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", attempts, err)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Author{}, &model.Book{})
}

// SQLPinger adapts a gorm connection to the readiness check.
type SQLPinger struct {
	DB *gorm.DB
}

func (p SQLPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
