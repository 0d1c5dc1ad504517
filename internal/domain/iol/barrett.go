package iol

import (
	"github.com/oculab/iolcalc-api/internal/domain"
)

// Barrett Universal II: a lens-factor model whose ELP tracks the anterior
// segment anatomy more closely than the older formulas. The published
// relation LF = 0.5825*A - 67.6627 maps the A-constant to the lens factor;
// measured ACD, lens thickness, and white-to-white each refine the lens
// plane, and eyes beyond 26 mm receive an additional axial-length-dependent
// ELP correction. That correction deepens the predicted lens plane, so a
// longer eye always yields a strictly lower power than an otherwise
// identical shorter one.
const (
	barrettLTCoefficient   = 0.2  // mm of ELP per mm of lens thickness offset
	barrettWTWCoefficient  = 0.09 // mm of ELP per mm of corneal diameter offset
	barrettACDCoefficient  = 0.12 // mm of estimated ACD per mm of axial length offset
	barrettLongEyeSlope    = 0.18 // mm of ELP per mm beyond the long-eye threshold
	barrettLongEyeCutoffMM = 26.0
)

// CalculateBarrett computes the Barrett Universal II recommendation.
// Confidence is high only when both ACD and lens thickness were measured.
func (c *Calculator) CalculateBarrett() (domain.FormulaResult, error) {
	warnings := DetectEdgeCases(c.biometry, c.patient)

	al := c.biometry.AxialLength
	k := c.effectiveK()
	target := c.patient.Target()

	lensFactor := 0.5825*c.constants.AConstant - 67.6627

	acd := meanACD + barrettACDCoefficient*(al-23.5)
	if c.biometry.ACD != nil {
		acd = *c.biometry.ACD
	}

	elp := acd + lensFactor
	if c.biometry.LensThickness != nil {
		elp += barrettLTCoefficient * (*c.biometry.LensThickness - meanLensThickness)
	}
	if c.biometry.WhiteToWhite != nil {
		elp += barrettWTWCoefficient * (*c.biometry.WhiteToWhite - meanWhiteToWhite)
	}
	if al > barrettLongEyeCutoffMM {
		elp += barrettLongEyeSlope * (al - barrettLongEyeCutoffMM)
	}

	state := newOpticalState(al, elp, k)
	degenerate := state.degenerate

	power, ok := state.power(target)
	if !ok {
		degenerate = true
		power = 0
	}
	if degenerate {
		warnings = append(warnings, degeneracyWarning())
	}
	power, warnings = clampPower(power, warnings)

	confidence := domain.ConfidenceMedium
	if c.biometry.ACD != nil && c.biometry.LensThickness != nil {
		confidence = domain.ConfidenceHigh
	}
	if degenerate {
		confidence = domain.ConfidenceLow
	}

	return domain.FormulaResult{
		Formula:          FormulaBarrett,
		RecommendedPower: round2(power),
		ELP:              round2(state.elp),
		Confidence:       confidence,
		Warnings:         warnings,
		PowerOptions:     buildPowerOptions(state.expectedRefraction, power, target),
	}, nil
}
