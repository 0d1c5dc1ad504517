package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/oculab/iolcalc-api/internal/api"
	apiMiddleware "github.com/oculab/iolcalc-api/internal/api/middleware"
	"github.com/oculab/iolcalc-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware, using the application's services to build the handlers.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	calculationHandler := api.NewCalculationHandler(app.calcService, app.logger)
	lensHandler := api.NewLensHandler(app.calcService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api/v1", func(r chi.Router) {
		// All calculation endpoints require an authenticated client
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Calculation endpoints
			r.Post("/calculations", calculationHandler.CalculateAll)
			r.Post("/calculations/{formula}", calculationHandler.CalculateFormula)
			r.Post("/toric", calculationHandler.Toric)

			// Formula recommendation endpoint
			r.Get("/formulas/recommended", calculationHandler.RecommendedFormulas)

			// Lens catalog endpoint
			r.Get("/lenses", lensHandler.ListLenses)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
