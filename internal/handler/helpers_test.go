package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/service"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/validation"
	"gorm.io/gorm"
)

func setupTestRouterWithServices(authors AuthorService, books BookService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	if books != nil {
		NewBookHandler(books).RegisterRoutes(r.Group(""))
	}
	if authors != nil {
		NewAuthorHandler(authors).RegisterRoutes(r.Group(""))
	}

	return r
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	authorRepo := repository.NewGormAuthorRepository(db)
	bookRepo := repository.NewGormBookRepository(db)

	return setupTestRouterWithServices(
		service.NewAuthorService(authorRepo, bookRepo, zerolog.Nop()),
		service.NewBookService(bookRepo, authorRepo, zerolog.Nop()),
	)
}

func performRequest(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return out
}

func errorMessages(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()

	resp := decode[validation.ErrorResponse](t, w)
	out := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		out = append(out, e.Message)
	}
	return out
}
