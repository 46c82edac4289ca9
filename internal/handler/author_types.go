package handler

import (
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/service"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/validation"
)

var createAuthorSchema = validation.Schema{
	{Name: "firstName", Rules: []validation.Rule{validation.Defined, validation.NotEmpty, validation.String}},
	{Name: "lastName", Rules: []validation.Rule{validation.Defined, validation.NotEmpty, validation.String}},
	{Name: "birthdate", Rules: []validation.Rule{validation.Defined, validation.ISO8601}},
}

var updateAuthorSchema = createAuthorSchema

type CreateAuthorRequest struct {
	FirstName string     `json:"firstName" example:"JK"`
	LastName  string     `json:"lastName" example:"Rowling"`
	Birthdate model.Date `json:"birthdate" swaggertype:"string" example:"1965-07-31"`
}

func (r CreateAuthorRequest) toInput() service.CreateAuthorInput {
	return service.CreateAuthorInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Birthdate: r.Birthdate,
	}
}

type UpdateAuthorRequest struct {
	FirstName *string     `json:"firstName,omitempty" example:"Joanne"`
	LastName  *string     `json:"lastName,omitempty" example:"Rowling"`
	Birthdate *model.Date `json:"birthdate,omitempty" swaggertype:"string" example:"1965-07-31"`
}

func (r UpdateAuthorRequest) toInput() service.UpdateAuthorInput {
	return service.UpdateAuthorInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Birthdate: r.Birthdate,
	}
}

type DeleteAuthorResponse struct {
	ID           string `json:"id"`
	DeletedBooks int64  `json:"deletedBooks"`
}
