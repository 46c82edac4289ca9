package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

type AuthorRepository interface {
	Create(ctx context.Context, author *model.Author) error
	List(ctx context.Context) ([]model.Author, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	Update(ctx context.Context, author *model.Author) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	List(ctx context.Context) ([]model.Book, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByAuthor removes every book of the author and reports how many
	// were removed.
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}
