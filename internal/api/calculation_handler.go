// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/oculab/iolcalc-api/internal/api/shared"
	"github.com/oculab/iolcalc-api/internal/domain/iol"
	"github.com/oculab/iolcalc-api/internal/platform/logger"
)

// CalculationHandler handles IOL power calculation HTTP requests
type CalculationHandler struct {
	calcService iol.Service
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewCalculationHandler creates a new CalculationHandler
func NewCalculationHandler(calcService iol.Service, log *slog.Logger) *CalculationHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CalculationHandler")
	}

	return &CalculationHandler{
		calcService: calcService,
		validator:   validator.New(),
		logger:      log.With(slog.String("component", "calculation_handler")),
	}
}

// CalculateAll handles POST /calculations requests.
// It runs every formula on the submitted biometry and returns the
// per-formula results plus the cross-formula recommendation.
func (h *CalculationHandler) CalculateAll(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context())

	req, ok := h.decodeCalculationRequest(w, r)
	if !ok {
		return
	}

	result, err := h.calcService.Calculate(
		req.Biometry.toDomain(),
		req.Lens.toSpec(),
		req.Patient.toDomain(),
	)
	if err != nil {
		log.Debug("calculation rejected", "error", err)
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// CalculateFormula handles POST /calculations/{formula} requests.
// The formula path parameter is one of the registered formula identifiers.
func (h *CalculationHandler) CalculateFormula(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context())
	formula := chi.URLParam(r, "formula")

	req, ok := h.decodeCalculationRequest(w, r)
	if !ok {
		return
	}

	result, err := h.calcService.CalculateFormula(
		formula,
		req.Biometry.toDomain(),
		req.Lens.toSpec(),
		req.Patient.toDomain(),
	)
	if err != nil {
		log.Debug("single-formula calculation rejected", "formula", formula, "error", err)
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// RecommendedFormulas handles GET /formulas/recommended requests.
// Query parameters: axial_length (required, mm) and post_refractive (optional).
func (h *CalculationHandler) RecommendedFormulas(w http.ResponseWriter, r *http.Request) {
	axialLengthParam := r.URL.Query().Get("axial_length")
	if axialLengthParam == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "axial_length query parameter required")
		return
	}

	axialLength, err := strconv.ParseFloat(axialLengthParam, 64)
	if err != nil || axialLength <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "axial_length must be a positive number")
		return
	}

	postRefractive := false
	if v := r.URL.Query().Get("post_refractive"); v != "" {
		postRefractive, err = strconv.ParseBool(v)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "post_refractive must be a boolean")
			return
		}
	}

	response := RecommendedFormulasResponse{
		AxialLength:    axialLength,
		PostRefractive: postRefractive,
		Formulas:       iol.RecommendedFormulas(axialLength, postRefractive),
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Toric handles POST /toric requests, converting corneal astigmatism to the
// cylinder ordered at the IOL plane.
func (h *CalculationHandler) Toric(w http.ResponseWriter, r *http.Request) {
	var req ToricRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result := iol.ToricCylinder(req.CornealCylinder, req.SurgicalCorrection, req.Axis)
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// decodeCalculationRequest parses and validates the shared calculation
// payload, writing the error response itself on failure.
func (h *CalculationHandler) decodeCalculationRequest(
	w http.ResponseWriter,
	r *http.Request,
) (CalculationRequest, bool) {
	var req CalculationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, false
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return req, false
	}

	return req, true
}
