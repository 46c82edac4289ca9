package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/service"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/validation"
)

type AuthorService interface {
	Create(ctx context.Context, in service.CreateAuthorInput) (*model.Author, error)
	FindAll(ctx context.Context) ([]model.Author, error)
	FindOne(ctx context.Context, id string) (*model.Author, error)
	Update(ctx context.Context, id string, in service.UpdateAuthorInput) (*model.Author, error)
	Remove(ctx context.Context, id string) (int64, error)
	GetAllAuthorBooks(ctx context.Context, id string) ([]model.Book, error)
}

type AuthorHandler struct {
	svc AuthorService
}

func NewAuthorHandler(svc AuthorService) *AuthorHandler {
	return &AuthorHandler{svc: svc}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	{
		authors.POST("", h.CreateAuthor)
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthorByID)
		authors.PUT("/:id", h.UpdateAuthor)
		authors.DELETE("/:id", h.DeleteAuthor)
		authors.GET("/:id/books", h.ListAuthorBooks)
	}
}

// CreateAuthor godoc
// @Summary      Create an author
// @Description  Create a new author with first name, last name and birthdate
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateAuthorRequest        true  "Author to create"
// @Success      201      {object}  model.Author
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req CreateAuthorRequest
	if !validation.BindAndValidateJSON(c, createAuthorSchema, false, &req) {
		return
	}

	author, err := h.svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, author)
}

// ListAuthors godoc
// @Summary      List authors
// @Description  Get a list of all authors
// @Tags         authors
// @Produce      json
// @Success      200  {array}   model.Author
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, authors)
}

// GetAuthorByID godoc
// @Summary      Get author by ID
// @Description  Get a single author by its ID
// @Tags         authors
// @Produce      json
// @Param        id   path      string                    true  "Author ID (UUID)"
// @Success      200  {object}  model.Author
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	author, err := h.svc.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, author)
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Description  Partially update an existing author. Absent or null fields are left unchanged.
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Author ID (UUID)"
// @Param        payload  body      UpdateAuthorRequest  true  "Author fields to update"
// @Success      200      {object}  model.Author
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      404      {object}  validation.ErrorResponse  "Author not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	var req UpdateAuthorRequest
	if !validation.BindAndValidateJSON(c, updateAuthorSchema, true, &req) {
		return
	}

	author, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, author)
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Delete an author and every book that references it
// @Tags         authors
// @Produce      json
// @Param        id   path      string                    true  "Author ID (UUID)"
// @Success      200  {object}  DeleteAuthorResponse
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.svc.Remove(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteAuthorResponse{ID: id, DeletedBooks: deleted})
}

// ListAuthorBooks godoc
// @Summary      List books of an author
// @Description  Get every book that references the author
// @Tags         authors
// @Produce      json
// @Param        id   path      string                    true  "Author ID (UUID)"
// @Success      200  {array}   model.Book
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/{id}/books [get]
func (h *AuthorHandler) ListAuthorBooks(c *gin.Context) {
	books, err := h.svc.GetAllAuthorBooks(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, books)
}
