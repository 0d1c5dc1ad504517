package iol

import (
	"errors"
	"testing"

	"github.com/oculab/iolcalc-api/internal/domain"
)

func TestServiceCalculateFormulaDispatch(t *testing.T) {
	t.Parallel()
	svc, err := NewService()
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	biometry := domain.BiometryData{AxialLength: 23.5, K1: 43.5, K2: 44.0}

	testCases := []struct {
		id   string
		want string
	}{
		{FormulaIDSRKT, FormulaSRKT},
		{FormulaIDHolladay1, FormulaHolladay1},
		{FormulaIDHaigis, FormulaHaigis},
		{FormulaIDBarrett, FormulaBarrett},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			result, err := svc.CalculateFormula(tc.id, biometry, ConstantsSpec{}, nil)
			if err != nil {
				t.Fatalf("CalculateFormula(%s): %v", tc.id, err)
			}
			if result.Formula != tc.want {
				t.Errorf("expected %q, got %q", tc.want, result.Formula)
			}
		})
	}
}

func TestServiceRejectsUnknownFormula(t *testing.T) {
	t.Parallel()
	svc, err := NewService()
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.CalculateFormula("hoffer-q", domain.BiometryData{AxialLength: 23.5, K1: 43, K2: 43.5}, ConstantsSpec{}, nil)
	if !errors.Is(err, ErrUnknownFormula) {
		t.Errorf("expected ErrUnknownFormula, got %v", err)
	}
}

func TestServiceCalculatePropagatesValidationErrors(t *testing.T) {
	t.Parallel()
	svc, err := NewService()
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Calculate(domain.BiometryData{K1: 43, K2: 43.5}, ConstantsSpec{}, nil)
	if !errors.Is(err, domain.ErrAxialLengthMissing) {
		t.Errorf("expected a fatal axial-length error, got %v", err)
	}
}

func TestServiceLenses(t *testing.T) {
	t.Parallel()
	svc, err := NewService()
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if len(svc.Lenses()) == 0 {
		t.Error("expected the lens catalog to be exposed")
	}
}
