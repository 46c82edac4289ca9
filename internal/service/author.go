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

type CreateAuthorInput struct {
	FirstName string
	LastName  string
	Birthdate model.Date
}

// UpdateAuthorInput carries a partial update. Nil fields are left unchanged.
type UpdateAuthorInput struct {
	FirstName *string
	LastName  *string
	Birthdate *model.Date
}

type AuthorService struct {
	authors repository.AuthorRepository
	books   repository.BookRepository
	log     zerolog.Logger
	clock   Clock
}

func NewAuthorService(authors repository.AuthorRepository, books repository.BookRepository, log zerolog.Logger) *AuthorService {
	return &AuthorService{
		authors: authors,
		books:   books,
		log:     log.With().Str("service", "authors").Logger(),
		clock:   systemClock,
	}
}

// WithClock replaces the time source used for createdAt and updatedAt.
func (s *AuthorService) WithClock(c Clock) *AuthorService {
	s.clock = c
	return s
}

func (s *AuthorService) Create(ctx context.Context, in CreateAuthorInput) (*model.Author, error) {
	now := s.clock.now()

	author := &model.Author{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Birthdate: in.Birthdate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.authors.Create(ctx, author); err != nil {
		return nil, s.fail(internal("AUTHOR_CREATE_FAILED", "failed to create author", err))
	}

	metrics.IncAuthorsCreated()
	s.log.Debug().Str("author_id", author.ID.String()).Msg("author created")

	return author, nil
}

func (s *AuthorService) FindAll(ctx context.Context) ([]model.Author, error) {
	authors, err := s.authors.List(ctx)
	if err != nil {
		return nil, s.fail(internal("AUTHOR_LIST_FAILED", "failed to list authors", err))
	}
	return authors, nil
}

func (s *AuthorService) FindOne(ctx context.Context, id string) (*model.Author, error) {
	authorID, err := uuid.Parse(id)
	if err != nil {
		return nil, authorNotFound(id)
	}

	author, err := s.authors.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, authorNotFound(id)
		}
		return nil, s.fail(internal("AUTHOR_FETCH_FAILED", "failed to fetch author", err))
	}
	return author, nil
}

func (s *AuthorService) Update(ctx context.Context, id string, in UpdateAuthorInput) (*model.Author, error) {
	author, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		author.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		author.LastName = *in.LastName
	}
	if in.Birthdate != nil {
		author.Birthdate = *in.Birthdate
	}
	author.UpdatedAt = s.clock.stamp(author.UpdatedAt)

	if err := s.authors.Update(ctx, author); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, authorNotFound(id)
		}
		return nil, s.fail(internal("AUTHOR_UPDATE_FAILED", "failed to update author", err))
	}

	return author, nil
}

// Remove deletes the author and then every book that references it. The two
// steps are not atomic: a failure in between leaves the books behind.
func (s *AuthorService) Remove(ctx context.Context, id string) (int64, error) {
	authorID, err := uuid.Parse(id)
	if err != nil {
		return 0, authorNotFound(id)
	}

	if err := s.authors.Delete(ctx, authorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, authorNotFound(id)
		}
		return 0, s.fail(internal("AUTHOR_DELETE_FAILED", "failed to delete author", err))
	}

	deleted, err := s.books.DeleteByAuthor(ctx, authorID)
	if err != nil {
		s.log.Error().Err(err).
			Str("author_id", id).
			Msg("author deleted but its books were not")
		return 0, s.fail(internal("AUTHOR_BOOKS_DELETE_FAILED", "failed to delete books of author", err))
	}

	metrics.AddBooksCascadeDeleted(deleted)
	s.log.Debug().
		Str("author_id", id).
		Int64("deleted_books", deleted).
		Msg("author removed")

	return deleted, nil
}

func (s *AuthorService) GetAllAuthorBooks(ctx context.Context, id string) ([]model.Book, error) {
	author, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := s.books.ListByAuthor(ctx, author.ID)
	if err != nil {
		return nil, s.fail(internal("BOOK_LIST_FAILED", "failed to list books of author", err))
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, nil
}

// fail logs and counts an internal error before returning it.
func (s *AuthorService) fail(e *Error) *Error {
	return logFailure(s.log, e)
}

func authorNotFound(id string) *Error {
	return notFound("AUTHOR_NOT_FOUND", "author with id %q not found", id)
}
