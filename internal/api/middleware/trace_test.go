package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oculab/iolcalc-api/internal/api/shared"
	"github.com/oculab/iolcalc-api/internal/platform/logger"
)

func TestTraceMiddlewareAttachesTraceID(t *testing.T) {
	var gotTraceID string
	var loggerAttached bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTraceID = shared.GetTraceID(r.Context())
		_, loggerAttached = logger.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	TraceMiddleware(next).ServeHTTP(w, req)

	assert.Len(t, gotTraceID, 32, "trace ID should be 16 random bytes hex encoded")
	assert.True(t, loggerAttached, "request-scoped logger should be attached")
}

func TestTraceMiddlewareGeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[shared.GetTraceID(r.Context())] = true
	})

	handler := TraceMiddleware(next)
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Len(t, seen, 10, "each request should get its own trace ID")
}
