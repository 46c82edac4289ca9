// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/docstore"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the schema
// migrated. It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&model.Author{}, &model.Book{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// NewDocumentStore opens an in-memory Badger store.
func NewDocumentStore(t *testing.T) *docstore.Store {
	t.Helper()

	s, err := docstore.Open(docstore.Options{InMemory: true})
	if err != nil {
		t.Fatalf("failed to open document store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func SeedAuthor(t *testing.T, db *gorm.DB, firstName, lastName string) model.Author {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)

	author := model.Author{
		FirstName: firstName,
		LastName:  lastName,
		Birthdate: model.MustParseDate("1965-07-31"),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author %q: %v", firstName+" "+lastName, err)
	}

	return author
}

func SeedBook(t *testing.T, db *gorm.DB, author model.Author, title, iban string) model.Book {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)

	book := model.Book{
		ID:          uuid.New(),
		Title:       title,
		AuthorID:    author.ID,
		IBAN:        iban,
		PublishedAt: model.MustParseDate("2007-07-21"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	return book
}
