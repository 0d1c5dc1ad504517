package iol

import (
	"math"

	"github.com/oculab/iolcalc-api/internal/domain"
)

// Holladay 1 (1988): anatomical anterior chamber depth from a corneal
// height model plus a surgeon factor derived from the A-constant. The
// corneal width defaults to a regression over axial length; a measured
// white-to-white diameter refines it when present.
const (
	holladayMaxCornealWidth = 13.5 // mm
	holladayALOffset        = 0.2  // modified axial length, mm
	holladayBandLow         = 21.0
	holladayBandHigh        = 25.0
)

// CalculateHolladay1 computes the Holladay 1 recommendation.
func (c *Calculator) CalculateHolladay1() (domain.FormulaResult, error) {
	warnings := DetectEdgeCases(c.biometry, c.patient)

	al := c.biometry.AxialLength
	k := c.effectiveK()
	r := cornealRadius(k)
	target := c.patient.Target()

	width := al * 12.5 / 23.45
	if c.biometry.WhiteToWhite != nil {
		width = *c.biometry.WhiteToWhite
	}
	if width > holladayMaxCornealWidth {
		width = holladayMaxCornealWidth
	}

	degenerate := false
	dome := r*r - width*width/4
	if dome < 0 {
		dome = 0
		degenerate = true
	}
	anatomicACD := 0.56 + r - math.Sqrt(dome)

	surgeonFactor := 0.5663*c.constants.AConstant - 65.60
	elp := anatomicACD + surgeonFactor
	if elp <= 0 {
		// The reported lens position is always positive.
		elp = minOpticalGap
		degenerate = true
	}

	state := newOpticalState(al+holladayALOffset, elp, k)
	if state.degenerate {
		degenerate = true
	}

	power, ok := state.power(target)
	if !ok {
		degenerate = true
		power = 0
	}
	if degenerate {
		warnings = append(warnings, degeneracyWarning())
	}
	power, warnings = clampPower(power, warnings)

	confidence := confidenceByAxialBand(al, holladayBandLow, holladayBandHigh, warnings)
	if degenerate {
		confidence = domain.ConfidenceLow
	}

	return domain.FormulaResult{
		Formula:          FormulaHolladay1,
		RecommendedPower: round2(power),
		ELP:              round2(state.elp),
		Confidence:       confidence,
		Warnings:         warnings,
		PowerOptions:     buildPowerOptions(state.expectedRefraction, power, target),
	}, nil
}
