package handler

import (
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/service"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/validation"
)

var createBookSchema = validation.Schema{
	{Name: "title", Rules: []validation.Rule{validation.Defined, validation.NotEmpty, validation.String}},
	{Name: "authorId", Rules: []validation.Rule{validation.Defined, validation.NotEmpty, validation.String}},
	{Name: "iban", Rules: []validation.Rule{validation.Defined, validation.NotEmpty, validation.String}},
	{Name: "publishedAt", Rules: []validation.Rule{validation.Defined, validation.NotEmpty, validation.ISO8601}},
}

var updateBookSchema = createBookSchema

type CreateBookRequest struct {
	Title       string     `json:"title" example:"Harry Potter and the Deathly Hallows"`
	AuthorID    string     `json:"authorId" example:"6f1c7e4e-3f4a-4a8e-9a57-2d1d3c6f9b10"`
	IBAN        string     `json:"iban" example:"hp713"`
	PublishedAt model.Date `json:"publishedAt" swaggertype:"string" example:"2007-07-21"`
}

func (r CreateBookRequest) toInput() service.CreateBookInput {
	return service.CreateBookInput{
		Title:       r.Title,
		AuthorID:    r.AuthorID,
		IBAN:        r.IBAN,
		PublishedAt: r.PublishedAt,
	}
}

type UpdateBookRequest struct {
	Title       *string     `json:"title,omitempty"`
	AuthorID    *string     `json:"authorId,omitempty"`
	IBAN        *string     `json:"iban,omitempty"`
	PublishedAt *model.Date `json:"publishedAt,omitempty" swaggertype:"string" example:"2007-07-21"`
}

func (r UpdateBookRequest) toInput() service.UpdateBookInput {
	return service.UpdateBookInput{
		Title:       r.Title,
		AuthorID:    r.AuthorID,
		IBAN:        r.IBAN,
		PublishedAt: r.PublishedAt,
	}
}

type DeleteBookResponse struct {
	ID string `json:"id"`
}
