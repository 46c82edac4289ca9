package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegister_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/authors/:id", "404"))

	ObserveHTTPRequest(http.MethodGet, "/authors/:id", http.StatusNotFound, 5*time.Millisecond)

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/authors/:id", "404"))
	assert.Equal(t, before+1, after)
}

func TestDomainCounters(t *testing.T) {
	authors := testutil.ToFloat64(authorsCreated)
	books := testutil.ToFloat64(booksCreated)
	cascaded := testutil.ToFloat64(booksCascadeDeleted)

	IncAuthorsCreated()
	IncBooksCreated()
	IncBooksCreated()
	AddBooksCascadeDeleted(3)

	assert.Equal(t, authors+1, testutil.ToFloat64(authorsCreated))
	assert.Equal(t, books+2, testutil.ToFloat64(booksCreated))
	assert.Equal(t, cascaded+3, testutil.ToFloat64(booksCascadeDeleted))
}

func TestIncServiceError(t *testing.T) {
	before := testutil.ToFloat64(serviceErrors.WithLabelValues("CONFLICT"))
	IncServiceError("CONFLICT")
	assert.Equal(t, before+1, testutil.ToFloat64(serviceErrors.WithLabelValues("CONFLICT")))
}
