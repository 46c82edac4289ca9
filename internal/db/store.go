package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/docstore"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/repository"
	"gorm.io/gorm"
)

// Store bundles the repositories of the configured driver.
type Store struct {
	Driver  string
	Authors repository.AuthorRepository
	Books   repository.BookRepository
	Pinger  Pinger
	close   func() error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the driver named in cfg. Relational drivers are migrated
// when migrate is set.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger, migrate bool) (*Store, error) {
	if cfg.StoreDriver == config.DriverBadger {
		docs, err := docstore.Open(docstore.Options{Path: cfg.BadgerPath, Logger: log})
		if err != nil {
			return nil, err
		}

		return &Store{
			Driver:  cfg.StoreDriver,
			Authors: repository.NewDocumentAuthorRepository(docs),
			Books:   repository.NewDocumentBookRepository(docs),
			Pinger:  docs,
			close:   docs.Close,
		}, nil
	}

	gdb, err := ConnectWithRetry(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return newGormStore(gdb, cfg.StoreDriver, migrate)
}

// newGormStore takes ownership of gdb and closes it when it fails.
func newGormStore(gdb *gorm.DB, driver string, migrate bool) (*Store, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := Migrate(gdb); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return &Store{
		Driver:  driver,
		Authors: repository.NewGormAuthorRepository(gdb),
		Books:   repository.NewGormBookRepository(gdb),
		Pinger:  SQLPinger{DB: gdb},
		close:   sqlDB.Close,
	}, nil
}
