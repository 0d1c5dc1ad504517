package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oculab/iolcalc-api/internal/config"
	"github.com/oculab/iolcalc-api/internal/domain"
	"github.com/oculab/iolcalc-api/internal/domain/iol"
	"github.com/oculab/iolcalc-api/internal/service/auth"
)

// newTestApplication wires a full application without going through
// config.Load, so tests do not depend on the environment.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "error"},
		Auth: config.AuthConfig{
			JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
			TokenLifetimeMinutes: 60,
		},
	}

	calcService, err := iol.NewService()
	require.NoError(t, err)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	require.NoError(t, err)

	return &application{
		config:      cfg,
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		calcService: calcService,
		jwtService:  jwtService,
	}
}

func bearerToken(t *testing.T, app *application) string {
	t.Helper()
	token, err := app.jwtService.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHealthEndpointIsPublic(t *testing.T) {
	app := newTestApplication(t)
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestCalculationEndpointsRequireAuth(t *testing.T) {
	app := newTestApplication(t)
	router := app.setupRouter()

	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/calculations"},
		{http.MethodPost, "/api/v1/calculations/srkt"},
		{http.MethodPost, "/api/v1/toric"},
		{http.MethodGet, "/api/v1/formulas/recommended"},
		{http.MethodGet, "/api/v1/lenses"},
	}

	for _, ep := range endpoints {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			req := httptest.NewRequest(ep.method, ep.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthenticatedCalculationFlow(t *testing.T) {
	app := newTestApplication(t)
	router := app.setupRouter()
	token := bearerToken(t, app)

	body := `{"biometry": {"axial_length": 23.5, "k1": 43.5, "k2": 44.0}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations", strings.NewReader(body))
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var result domain.MultiFormulaResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Greater(t, result.Optimized.Power, 0.0)
	assert.NotZero(t, result.Optimized.AgreementScore)
}

func TestAuthenticatedLensCatalog(t *testing.T) {
	app := newTestApplication(t)
	router := app.setupRouter()
	token := bearerToken(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lenses", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SN60WF")
}
