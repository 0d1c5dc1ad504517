package api

import (
	"log/slog"
	"net/http"

	"github.com/oculab/iolcalc-api/internal/api/shared"
	"github.com/oculab/iolcalc-api/internal/domain/iol"
)

// LensListResponse wraps the lens catalog.
type LensListResponse struct {
	Lenses []iol.LensInfo `json:"lenses"`
}

// LensHandler serves the lens constants catalog.
type LensHandler struct {
	calcService iol.Service
	logger      *slog.Logger
}

// NewLensHandler creates a new LensHandler
func NewLensHandler(calcService iol.Service, log *slog.Logger) *LensHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LensHandler")
	}

	return &LensHandler{
		calcService: calcService,
		logger:      log.With(slog.String("component", "lens_handler")),
	}
}

// ListLenses handles GET /lenses requests.
func (h *LensHandler) ListLenses(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, LensListResponse{
		Lenses: h.calcService.Lenses(),
	})
}
