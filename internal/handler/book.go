package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/service"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/validation"
)

type BookService interface {
	Create(ctx context.Context, in service.CreateBookInput) (*model.Book, error)
	FindAll(ctx context.Context) ([]model.Book, error)
	FindOne(ctx context.Context, id string) (*model.Book, error)
	Update(ctx context.Context, id string, in service.UpdateBookInput) (*model.Book, error)
	Remove(ctx context.Context, id string) error
}

type BookHandler struct {
	svc BookService
}

func NewBookHandler(svc BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBookByID)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
		books.POST("", h.CreateBook)
	}
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a new book for an existing author. The iban must be unique.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateBookRequest          true  "Book to create"
// @Success      201      {object}  model.Book
// @Failure      400      {object}  validation.ErrorResponse   "Validation error or duplicate iban"
// @Failure      404      {object}  validation.ErrorResponse   "Author not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, createBookSchema, false, &req) {
		return
	}

	book, err := h.svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

// ListBooks godoc
// @Summary      List books
// @Description  Get all books
// @Tags         books
// @Produce      json
// @Success      200  {array}   model.Book
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, books)
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Description  Get a single book by its UUID
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID (UUID)"
// @Success      200  {object}  model.Book
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	book, err := h.svc.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Partially update a book by its UUID. A new authorId must reference an existing author.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Book ID (UUID)"
// @Param        payload  body      UpdateBookRequest   true  "Fields to update"
// @Success      200      {object}  model.Book
// @Failure      400      {object}  validation.ErrorResponse   "Validation error or duplicate iban"
// @Failure      404      {object}  validation.ErrorResponse   "Book or author not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, updateBookSchema, true, &req) {
		return
	}

	book, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Delete a book by its UUID
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID (UUID)"
// @Success      200  {object}  DeleteBookResponse
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Remove(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteBookResponse{ID: id})
}
