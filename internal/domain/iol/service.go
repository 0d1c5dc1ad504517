package iol

import (
	"errors"

	"github.com/oculab/iolcalc-api/internal/domain"
)

// Common service errors.
var (
	ErrUnknownFormula = errors.New("unknown formula")
)

// Service is the calculation facade consumed by the API and CLI layers.
type Service interface {
	// Calculate runs every formula and reconciles them into one
	// recommendation.
	Calculate(biometry domain.BiometryData, spec ConstantsSpec, patient *domain.PatientData) (domain.MultiFormulaResult, error)

	// CalculateFormula runs a single named formula.
	CalculateFormula(formula string, biometry domain.BiometryData, spec ConstantsSpec, patient *domain.PatientData) (domain.FormulaResult, error)

	// Lenses lists the constants registry catalog.
	Lenses() []LensInfo
}

// Formula identifiers accepted by CalculateFormula and the API routes.
const (
	FormulaIDSRKT      = "srkt"
	FormulaIDHolladay1 = "holladay1"
	FormulaIDHaigis    = "haigis"
	FormulaIDBarrett   = "barrett"
)

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	registry *Registry
}

// NewService creates a calculation service over the embedded lens table.
func NewService() (Service, error) {
	registry, err := DefaultRegistry()
	if err != nil {
		return nil, err
	}
	return &defaultService{registry: registry}, nil
}

func (s *defaultService) Calculate(biometry domain.BiometryData, spec ConstantsSpec, patient *domain.PatientData) (domain.MultiFormulaResult, error) {
	calc, err := NewWithRegistry(s.registry, biometry, spec, patient)
	if err != nil {
		return domain.MultiFormulaResult{}, err
	}
	return calc.CalculateAll(), nil
}

func (s *defaultService) CalculateFormula(formula string, biometry domain.BiometryData, spec ConstantsSpec, patient *domain.PatientData) (domain.FormulaResult, error) {
	calc, err := NewWithRegistry(s.registry, biometry, spec, patient)
	if err != nil {
		return domain.FormulaResult{}, err
	}

	switch formula {
	case FormulaIDSRKT:
		return calc.CalculateSRKT()
	case FormulaIDHolladay1:
		return calc.CalculateHolladay1()
	case FormulaIDHaigis:
		return calc.CalculateHaigis()
	case FormulaIDBarrett:
		return calc.CalculateBarrett()
	default:
		return domain.FormulaResult{}, ErrUnknownFormula
	}
}

func (s *defaultService) Lenses() []LensInfo {
	return s.registry.Lenses()
}
