package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both adapters must behave the same, so every case runs against each.
type repos struct {
	authors AuthorRepository
	books   BookRepository
}

func adapters(t *testing.T) map[string]repos {
	t.Helper()

	db := testutil.NewTestDB(t)
	store := testutil.NewDocumentStore(t)

	return map[string]repos{
		"gorm": {
			authors: NewGormAuthorRepository(db),
			books:   NewGormBookRepository(db),
		},
		"document": {
			authors: NewDocumentAuthorRepository(store),
			books:   NewDocumentBookRepository(store),
		},
	}
}

func newAuthor(first, last string) *model.Author {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &model.Author{
		FirstName: first,
		LastName:  last,
		Birthdate: model.MustParseDate("1965-07-31"),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newBook(authorID uuid.UUID, title, iban string) *model.Book {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &model.Book{
		Title:       title,
		AuthorID:    authorID,
		IBAN:        iban,
		PublishedAt: model.MustParseDate("2007-07-21"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestAuthorRepository_CRUD(t *testing.T) {
	for name, r := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			a := newAuthor("JK", "Rowling")
			require.NoError(t, r.authors.Create(ctx, a))
			require.NotEqual(t, uuid.Nil, a.ID)

			got, err := r.authors.FindByID(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, "JK", got.FirstName)
			assert.Equal(t, "1965-07-31", got.Birthdate.String())
			assert.True(t, got.CreatedAt.Equal(a.CreatedAt))

			got.LastName = "Murray"
			got.UpdatedAt = got.UpdatedAt.Add(time.Second)
			require.NoError(t, r.authors.Update(ctx, got))

			again, err := r.authors.FindByID(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, "Murray", again.LastName)
			assert.True(t, again.UpdatedAt.After(again.CreatedAt))

			all, err := r.authors.List(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)

			require.NoError(t, r.authors.Delete(ctx, a.ID))
			_, err = r.authors.FindByID(ctx, a.ID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestAuthorRepository_MissingRecords(t *testing.T) {
	for name, r := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			missing := uuid.New()

			_, err := r.authors.FindByID(ctx, missing)
			assert.ErrorIs(t, err, ErrNotFound)

			a := newAuthor("Ghost", "Writer")
			a.ID = missing
			assert.ErrorIs(t, r.authors.Update(ctx, a), ErrNotFound)
			assert.ErrorIs(t, r.authors.Delete(ctx, missing), ErrNotFound)

			all, err := r.authors.List(ctx)
			require.NoError(t, err)
			assert.NotNil(t, all)
			assert.Empty(t, all)
		})
	}
}

func TestBookRepository_DuplicateIBAN(t *testing.T) {
	for name, r := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			authorID := uuid.New()

			require.NoError(t, r.books.Create(ctx, newBook(authorID, "First", "hp713")))

			err := r.books.Create(ctx, newBook(authorID, "Second", "hp713"))
			require.ErrorIs(t, err, ErrDuplicateKey)

			all, err := r.books.List(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, "First", all[0].Title)
		})
	}
}

func TestBookRepository_UpdateMovesIBAN(t *testing.T) {
	for name, r := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			authorID := uuid.New()

			first := newBook(authorID, "First", "iban-1")
			second := newBook(authorID, "Second", "iban-2")
			require.NoError(t, r.books.Create(ctx, first))
			require.NoError(t, r.books.Create(ctx, second))

			second.IBAN = "iban-1"
			require.ErrorIs(t, r.books.Update(ctx, second), ErrDuplicateKey)

			first.IBAN = "iban-3"
			require.NoError(t, r.books.Update(ctx, first))

			second.IBAN = "iban-1"
			require.NoError(t, r.books.Update(ctx, second))

			got, err := r.books.FindByID(ctx, second.ID)
			require.NoError(t, err)
			assert.Equal(t, "iban-1", got.IBAN)
		})
	}
}

func TestBookRepository_ByAuthor(t *testing.T) {
	for name, r := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			rowling := uuid.New()
			tolkien := uuid.New()

			require.NoError(t, r.books.Create(ctx, newBook(rowling, "Philosopher's Stone", "hp1")))
			require.NoError(t, r.books.Create(ctx, newBook(rowling, "Deathly Hallows", "hp7")))
			require.NoError(t, r.books.Create(ctx, newBook(tolkien, "The Hobbit", "lotr0")))

			books, err := r.books.ListByAuthor(ctx, rowling)
			require.NoError(t, err)
			assert.Len(t, books, 2)
			for _, b := range books {
				assert.Equal(t, rowling, b.AuthorID)
			}

			none, err := r.books.ListByAuthor(ctx, uuid.New())
			require.NoError(t, err)
			assert.NotNil(t, none)
			assert.Empty(t, none)

			n, err := r.books.DeleteByAuthor(ctx, rowling)
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			rest, err := r.books.List(ctx)
			require.NoError(t, err)
			require.Len(t, rest, 1)
			assert.Equal(t, "The Hobbit", rest[0].Title)

			n, err = r.books.DeleteByAuthor(ctx, rowling)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestBookRepository_ReassignAuthor(t *testing.T) {
	for name, r := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			from := uuid.New()
			to := uuid.New()

			b := newBook(from, "Moved", "mv1")
			require.NoError(t, r.books.Create(ctx, b))

			b.AuthorID = to
			require.NoError(t, r.books.Update(ctx, b))

			old, err := r.books.ListByAuthor(ctx, from)
			require.NoError(t, err)
			assert.Empty(t, old)

			moved, err := r.books.ListByAuthor(ctx, to)
			require.NoError(t, err)
			assert.Len(t, moved, 1)
		})
	}
}

func TestBookRepository_DeleteMissing(t *testing.T) {
	for name, r := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, r.books.Delete(context.Background(), uuid.New()), ErrNotFound)
		})
	}
}
