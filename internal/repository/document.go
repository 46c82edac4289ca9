package repository

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/docstore"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
)

const (
	authorCollection = "author"
	bookCollection   = "book"

	bookIBANIndex   = "iban"
	bookAuthorIndex = "authorId"
)

func translateDocError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, docstore.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, docstore.ErrAlreadyExists):
		return errors.Join(ErrDuplicateKey, err)
	default:
		return err
	}
}

func values[T any](docs []*T) []T {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d)
	}
	return out
}

// inCreationOrder matches the created_at ordering of the SQL repositories;
// the store itself iterates in key order.
func inCreationOrder[T any](docs []*T, createdAt func(*T) time.Time) []T {
	slices.SortStableFunc(docs, func(a, b *T) int {
		return createdAt(a).Compare(createdAt(b))
	})
	return values(docs)
}

func authorCreatedAt(a *model.Author) time.Time { return a.CreatedAt }

func bookCreatedAt(b *model.Book) time.Time { return b.CreatedAt }

type DocumentAuthorRepository struct {
	authors *docstore.Collection[model.Author]
}

func NewDocumentAuthorRepository(s *docstore.Store) *DocumentAuthorRepository {
	return &DocumentAuthorRepository{
		authors: docstore.NewCollection[model.Author](s, authorCollection),
	}
}

func (r *DocumentAuthorRepository) Create(ctx context.Context, author *model.Author) error {
	author.EnsureID()
	return translateDocError(r.authors.Insert(ctx, author.ID.String(), author))
}

func (r *DocumentAuthorRepository) List(ctx context.Context) ([]model.Author, error) {
	docs, err := r.authors.All(ctx)
	if err != nil {
		return nil, translateDocError(err)
	}
	return inCreationOrder(docs, authorCreatedAt), nil
}

func (r *DocumentAuthorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	author, err := r.authors.Get(ctx, id.String())
	if err != nil {
		return nil, translateDocError(err)
	}
	return author, nil
}

func (r *DocumentAuthorRepository) Update(ctx context.Context, author *model.Author) error {
	return translateDocError(r.authors.Replace(ctx, author.ID.String(), author))
}

func (r *DocumentAuthorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateDocError(r.authors.Delete(ctx, id.String()))
}

type DocumentBookRepository struct {
	books *docstore.Collection[model.Book]
}

func NewDocumentBookRepository(s *docstore.Store) *DocumentBookRepository {
	books := docstore.NewCollection[model.Book](s, bookCollection).
		WithUniqueIndex(bookIBANIndex, func(b *model.Book) string { return b.IBAN }).
		WithIndex(bookAuthorIndex, func(b *model.Book) string { return b.AuthorID.String() })

	return &DocumentBookRepository{books: books}
}

func (r *DocumentBookRepository) Create(ctx context.Context, book *model.Book) error {
	book.EnsureID()
	return translateDocError(r.books.Insert(ctx, book.ID.String(), book))
}

func (r *DocumentBookRepository) List(ctx context.Context) ([]model.Book, error) {
	docs, err := r.books.All(ctx)
	if err != nil {
		return nil, translateDocError(err)
	}
	return inCreationOrder(docs, bookCreatedAt), nil
}

func (r *DocumentBookRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	docs, err := r.books.FindBy(ctx, bookAuthorIndex, authorID.String())
	if err != nil {
		return nil, translateDocError(err)
	}
	return inCreationOrder(docs, bookCreatedAt), nil
}

func (r *DocumentBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := r.books.Get(ctx, id.String())
	if err != nil {
		return nil, translateDocError(err)
	}
	return book, nil
}

func (r *DocumentBookRepository) Update(ctx context.Context, book *model.Book) error {
	return translateDocError(r.books.Replace(ctx, book.ID.String(), book))
}

func (r *DocumentBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateDocError(r.books.Delete(ctx, id.String()))
}

func (r *DocumentBookRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	n, err := r.books.DeleteBy(ctx, bookAuthorIndex, authorID.String())
	if err != nil {
		return 0, translateDocError(err)
	}
	return int64(n), nil
}
