package iol

import (
	"math"

	"github.com/oculab/iolcalc-api/internal/domain"
)

// SRK/T optics (Retzlaff, Sanders, Kraff 1990): the ELP is a corneal-height
// regression over axial length and keratometry, parameterized by the
// A-constant, and the implant power follows from the published theoretic
// vergence formula over the retina-corrected optical axial length.
const (
	srktRefIndex  = 1.336
	srktIndexTerm = 0.333 // nc - 1 for the SRK/T corneal model
)

// SRK/T trusts mid-range eyes most; see confidenceByAxialBand.
const (
	srktBandLow  = 22.0
	srktBandHigh = 24.5
)

// CalculateSRKT computes the SRK/T recommendation. The anterior-segment
// measurements (ACD, lens thickness) are not used by this formula.
func (c *Calculator) CalculateSRKT() (domain.FormulaResult, error) {
	warnings := DetectEdgeCases(c.biometry, c.patient)

	al := c.biometry.AxialLength
	k := c.effectiveK()
	r := cornealRadius(k)
	target := c.patient.Target()

	// Long eyes use the axial-length-corrected regression.
	lcor := al
	if al > 24.2 {
		lcor = -3.446 + 1.715*al - 0.0237*al*al
	}
	cw := -5.41 + 0.58412*lcor + 0.098*k

	degenerate := false
	dome := r*r - cw*cw/4
	if dome < 0 {
		dome = 0
		degenerate = true
	}
	cornealHeight := r - math.Sqrt(dome)

	acdConst := 0.62467*c.constants.AConstant - 68.747
	elp := cornealHeight + acdConst - 3.336

	// Optical axial length includes retinal thickness.
	lopt := al + 0.65696 - 0.02029*al
	if lopt-elp < minOpticalGap {
		elp = lopt - minOpticalGap
		degenerate = true
	}

	power, ok := srktPower(lopt, elp, r, target)
	if !ok {
		degenerate = true
		power = 0
	}
	if degenerate {
		warnings = append(warnings, degeneracyWarning())
	}
	power, warnings = clampPower(power, warnings)

	confidence := confidenceByAxialBand(al, srktBandLow, srktBandHigh, warnings)
	if degenerate {
		confidence = domain.ConfidenceLow
	}

	predict := func(p float64) (float64, bool) {
		return srktExpectedRefraction(lopt, elp, r, p)
	}

	return domain.FormulaResult{
		Formula:          FormulaSRKT,
		RecommendedPower: round2(power),
		ELP:              round2(elp),
		Confidence:       confidence,
		Warnings:         warnings,
		PowerOptions:     buildPowerOptions(predict, power, target),
	}, nil
}

// srktPower evaluates the SRK/T theoretic vergence formula for the implant
// power leaving the desired spectacle-plane refraction.
func srktPower(lopt, elp, r, ref float64) (float64, bool) {
	na := srktRefIndex
	ncm1 := srktIndexTerm
	v := vertexDistanceMM

	num := 1000 * na * (na*r - ncm1*lopt - 0.001*ref*(v*(na*r-ncm1*lopt)+lopt*r))
	den := (lopt - elp) * (na*r - ncm1*elp - 0.001*ref*(v*(na*r-ncm1*elp)+elp*r))
	if math.Abs(den) < 1e-9 {
		return 0, false
	}
	p := num / den
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, false
	}
	return p, true
}

// srktExpectedRefraction inverts the vergence formula: the spectacle-plane
// refraction a given implant power would leave.
func srktExpectedRefraction(lopt, elp, r, power float64) (float64, bool) {
	na := srktRefIndex
	ncm1 := srktIndexTerm
	v := vertexDistanceMM

	num := 1000*na*(na*r-ncm1*lopt) - power*(lopt-elp)*(na*r-ncm1*elp)
	den := na*(v*(na*r-ncm1*lopt)+lopt*r) - 0.001*power*(lopt-elp)*(v*(na*r-ncm1*elp)+elp*r)
	if math.Abs(den) < 1e-9 {
		return 0, false
	}
	ref := num / den
	if math.IsNaN(ref) || math.IsInf(ref, 0) {
		return 0, false
	}
	return ref, true
}
