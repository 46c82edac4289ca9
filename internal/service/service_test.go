package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type services struct {
	authors *AuthorService
	books   *BookService
}

// frozenClock always returns the same instant, which forces the
// strictly-increasing updatedAt path.
func frozenClock() Clock {
	t := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func backends(t *testing.T) map[string]services {
	t.Helper()

	db := testutil.NewTestDB(t)
	store := testutil.NewDocumentStore(t)

	build := func(a repository.AuthorRepository, b repository.BookRepository) services {
		return services{
			authors: NewAuthorService(a, b, zerolog.Nop()).WithClock(frozenClock()),
			books:   NewBookService(b, a, zerolog.Nop()).WithClock(frozenClock()),
		}
	}

	return map[string]services{
		"gorm": build(repository.NewGormAuthorRepository(db), repository.NewGormBookRepository(db)),
		"document": build(
			repository.NewDocumentAuthorRepository(store),
			repository.NewDocumentBookRepository(store),
		),
	}
}

func rowling() CreateAuthorInput {
	return CreateAuthorInput{
		FirstName: "JK",
		LastName:  "Rowling",
		Birthdate: model.MustParseDate("1965-07-31"),
	}
}

func hallows(authorID uuid.UUID) CreateBookInput {
	return CreateBookInput{
		Title:       "Harry Potter and the Deathly Hallows",
		AuthorID:    authorID.String(),
		IBAN:        "hp713",
		PublishedAt: model.MustParseDate("2007-07-21"),
	}
}

func ptr[T any](v T) *T { return &v }

func TestAuthorService_CreateSetsTimestamps(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a, err := s.authors.Create(context.Background(), rowling())
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, a.ID)
			assert.False(t, a.CreatedAt.IsZero())
			assert.True(t, a.CreatedAt.Equal(a.UpdatedAt))
		})
	}
}

func TestAuthorService_PartialUpdate(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			a, err := s.authors.Create(ctx, rowling())
			require.NoError(t, err)

			updated, err := s.authors.Update(ctx, a.ID.String(), UpdateAuthorInput{FirstName: ptr("Joanne")})
			require.NoError(t, err)
			assert.Equal(t, "Joanne", updated.FirstName)
			assert.Equal(t, "Rowling", updated.LastName)
			assert.Equal(t, "1965-07-31", updated.Birthdate.String())
			assert.True(t, updated.UpdatedAt.After(a.UpdatedAt))

			again, err := s.authors.Update(ctx, a.ID.String(), UpdateAuthorInput{})
			require.NoError(t, err)
			assert.True(t, again.UpdatedAt.After(updated.UpdatedAt))

			stored, err := s.authors.FindOne(ctx, a.ID.String())
			require.NoError(t, err)
			assert.Equal(t, "Joanne", stored.FirstName)
			assert.True(t, stored.UpdatedAt.Equal(again.UpdatedAt))
		})
	}
}

func TestAuthorService_NotFound(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for _, id := range []string{"713", uuid.NewString()} {
				_, err := s.authors.FindOne(ctx, id)
				assert.ErrorIs(t, err, ErrNotFound)

				_, err = s.authors.Update(ctx, id, UpdateAuthorInput{LastName: ptr("x")})
				assert.ErrorIs(t, err, ErrNotFound)

				_, err = s.authors.Remove(ctx, id)
				assert.ErrorIs(t, err, ErrNotFound)

				_, err = s.authors.GetAllAuthorBooks(ctx, id)
				assert.ErrorIs(t, err, ErrNotFound)
			}
		})
	}
}

func TestAuthorService_RemoveCascades(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			a, err := s.authors.Create(ctx, rowling())
			require.NoError(t, err)
			other, err := s.authors.Create(ctx, CreateAuthorInput{FirstName: "JRR", LastName: "Tolkien", Birthdate: model.MustParseDate("1892-01-03")})
			require.NoError(t, err)

			b1, err := s.books.Create(ctx, hallows(a.ID))
			require.NoError(t, err)
			in := hallows(a.ID)
			in.IBAN = "hp1"
			b2, err := s.books.Create(ctx, in)
			require.NoError(t, err)
			in = hallows(other.ID)
			in.Title, in.IBAN = "The Hobbit", "hobbit"
			kept, err := s.books.Create(ctx, in)
			require.NoError(t, err)

			deleted, err := s.authors.Remove(ctx, a.ID.String())
			require.NoError(t, err)
			assert.Equal(t, int64(2), deleted)

			_, err = s.authors.FindOne(ctx, a.ID.String())
			assert.ErrorIs(t, err, ErrNotFound)
			for _, b := range []*model.Book{b1, b2} {
				_, err = s.books.FindOne(ctx, b.ID.String())
				assert.ErrorIs(t, err, ErrNotFound)
			}

			_, err = s.books.FindOne(ctx, kept.ID.String())
			assert.NoError(t, err)
		})
	}
}

func TestAuthorService_GetAllAuthorBooks(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			a, err := s.authors.Create(ctx, rowling())
			require.NoError(t, err)

			books, err := s.authors.GetAllAuthorBooks(ctx, a.ID.String())
			require.NoError(t, err)
			assert.NotNil(t, books)
			assert.Empty(t, books)

			_, err = s.books.Create(ctx, hallows(a.ID))
			require.NoError(t, err)

			books, err = s.authors.GetAllAuthorBooks(ctx, a.ID.String())
			require.NoError(t, err)
			require.Len(t, books, 1)
			assert.Equal(t, "hp713", books[0].IBAN)
		})
	}
}

func TestBookService_CreateRequiresAuthor(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.books.Create(ctx, hallows(uuid.New()))
			require.ErrorIs(t, err, ErrNotFound)

			in := hallows(uuid.Nil)
			in.AuthorID = "713"
			_, err = s.books.Create(ctx, in)
			require.ErrorIs(t, err, ErrNotFound)

			all, err := s.books.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestBookService_DuplicateIBAN(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			a, err := s.authors.Create(ctx, rowling())
			require.NoError(t, err)

			_, err = s.books.Create(ctx, hallows(a.ID))
			require.NoError(t, err)

			_, err = s.books.Create(ctx, hallows(a.ID))
			require.ErrorIs(t, err, ErrConflict)

			var se *Error
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "BOOK_IBAN_CONFLICT", se.Code)
			assert.Equal(t, 400, se.HTTPStatus())

			all, err := s.books.FindAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestBookService_Update(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			a, err := s.authors.Create(ctx, rowling())
			require.NoError(t, err)
			b, err := s.books.Create(ctx, hallows(a.ID))
			require.NoError(t, err)
			in := hallows(a.ID)
			in.IBAN = "taken"
			_, err = s.books.Create(ctx, in)
			require.NoError(t, err)

			updated, err := s.books.Update(ctx, b.ID.String(), UpdateBookInput{Title: ptr("Deathly Hallows")})
			require.NoError(t, err)
			assert.Equal(t, "Deathly Hallows", updated.Title)
			assert.Equal(t, "hp713", updated.IBAN)
			assert.True(t, updated.UpdatedAt.After(b.UpdatedAt))

			_, err = s.books.Update(ctx, b.ID.String(), UpdateBookInput{AuthorID: ptr(uuid.NewString())})
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = s.books.Update(ctx, b.ID.String(), UpdateBookInput{IBAN: ptr("taken")})
			assert.ErrorIs(t, err, ErrConflict)

			_, err = s.books.Update(ctx, uuid.NewString(), UpdateBookInput{Title: ptr("x")})
			assert.ErrorIs(t, err, ErrNotFound)

			stored, err := s.books.FindOne(ctx, b.ID.String())
			require.NoError(t, err)
			assert.Equal(t, "Deathly Hallows", stored.Title)
			assert.Equal(t, a.ID, stored.AuthorID)
			assert.Equal(t, "hp713", stored.IBAN)
		})
	}
}

func TestBookService_Remove(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			a, err := s.authors.Create(ctx, rowling())
			require.NoError(t, err)
			b, err := s.books.Create(ctx, hallows(a.ID))
			require.NoError(t, err)

			require.NoError(t, s.books.Remove(ctx, b.ID.String()))
			assert.ErrorIs(t, s.books.Remove(ctx, b.ID.String()), ErrNotFound)
			assert.ErrorIs(t, s.books.Remove(ctx, "713"), ErrNotFound)
		})
	}
}
