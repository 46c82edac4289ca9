package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/metrics"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/repository"
)

type CreateBookInput struct {
	Title       string
	AuthorID    string
	IBAN        string
	PublishedAt model.Date
}

// UpdateBookInput carries a partial update. Nil fields are left unchanged.
type UpdateBookInput struct {
	Title       *string
	AuthorID    *string
	IBAN        *string
	PublishedAt *model.Date
}

type BookService struct {
	books   repository.BookRepository
	authors repository.AuthorRepository
	log     zerolog.Logger
	clock   Clock
}

func NewBookService(books repository.BookRepository, authors repository.AuthorRepository, log zerolog.Logger) *BookService {
	return &BookService{
		books:   books,
		authors: authors,
		log:     log.With().Str("service", "books").Logger(),
		clock:   systemClock,
	}
}

func (s *BookService) WithClock(c Clock) *BookService {
	s.clock = c
	return s
}

// Create stores a book for an existing author. Any failure to resolve the
// author is reported as not found.
func (s *BookService) Create(ctx context.Context, in CreateBookInput) (*model.Book, error) {
	author, err := s.resolveAuthor(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.now()

	book := &model.Book{
		Title:       in.Title,
		AuthorID:    author.ID,
		IBAN:        in.IBAN,
		PublishedAt: in.PublishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.books.Create(ctx, book); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ibanConflict(in.IBAN, err)
		}
		return nil, s.fail(internal("BOOK_CREATE_FAILED", "failed to create book", err))
	}

	metrics.IncBooksCreated()
	s.log.Debug().
		Str("book_id", book.ID.String()).
		Str("author_id", book.AuthorID.String()).
		Msg("book created")

	return book, nil
}

func (s *BookService) FindAll(ctx context.Context) ([]model.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, s.fail(internal("BOOK_LIST_FAILED", "failed to list books", err))
	}
	return books, nil
}

func (s *BookService) FindOne(ctx context.Context, id string) (*model.Book, error) {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return nil, bookNotFound(id)
	}

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, bookNotFound(id)
		}
		return nil, s.fail(internal("BOOK_FETCH_FAILED", "failed to fetch book", err))
	}
	return book, nil
}

// Update applies a partial update. A new authorId must reference an
// existing author, the same as on create.
func (s *BookService) Update(ctx context.Context, id string, in UpdateBookInput) (*model.Book, error) {
	book, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.AuthorID != nil && *in.AuthorID != book.AuthorID.String() {
		author, err := s.resolveAuthor(ctx, *in.AuthorID)
		if err != nil {
			return nil, err
		}
		book.AuthorID = author.ID
	}
	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.IBAN != nil {
		book.IBAN = *in.IBAN
	}
	if in.PublishedAt != nil {
		book.PublishedAt = *in.PublishedAt
	}
	book.UpdatedAt = s.clock.stamp(book.UpdatedAt)

	if err := s.books.Update(ctx, book); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, bookNotFound(id)
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ibanConflict(book.IBAN, err)
		}
		return nil, s.fail(internal("BOOK_UPDATE_FAILED", "failed to update book", err))
	}

	return book, nil
}

// Remove deletes a book. Every failure is reported as not found.
func (s *BookService) Remove(ctx context.Context, id string) error {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return bookNotFound(id)
	}

	if err := s.books.Delete(ctx, bookID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn().Err(err).Str("book_id", id).Msg("book delete failed")
		}
		return bookNotFound(id)
	}
	return nil
}

func (s *BookService) resolveAuthor(ctx context.Context, id string) (*model.Author, error) {
	authorID, err := uuid.Parse(id)
	if err != nil {
		return nil, authorNotFound(id)
	}

	author, err := s.authors.FindByID(ctx, authorID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn().Err(err).Str("author_id", id).Msg("author lookup failed")
		}
		return nil, authorNotFound(id)
	}
	return author, nil
}

func (s *BookService) fail(e *Error) *Error {
	return logFailure(s.log, e)
}

func bookNotFound(id string) *Error {
	return notFound("BOOK_NOT_FOUND", "book with id %q not found", id)
}

func ibanConflict(iban string, cause error) *Error {
	return conflict("BOOK_IBAN_CONFLICT", "a book with iban \""+iban+"\" already exists", cause)
}
