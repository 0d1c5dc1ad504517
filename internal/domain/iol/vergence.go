package iol

import "math"

// Optical constants shared by the thin-lens vergence calculations.
const (
	aqueousIndex      = 1.336  // refractive index of aqueous/vitreous
	keratometricIndex = 1.3375 // index assumed by keratometers (337.5/r)
	haigisCornealIdx  = 1.3315 // corneal index used by Haigis (331.5/r)
	vertexDistanceM   = 0.012  // spectacle plane to corneal plane, meters
	vertexDistanceMM  = 12.0

	// minOpticalGap is the smallest tolerated distance between the
	// predicted lens plane and the retina. Below it the vergence
	// equation degenerates and the ELP is clamped instead of letting
	// NaN or Inf escape.
	minOpticalGap = 0.5 // mm

	// minRecommendedPower is the positive floor for a recommended power.
	// Extreme long-eye/steep-cornea combinations can push the raw
	// vergence result to or below zero; the result is clamped and
	// flagged rather than reported as a negative implant.
	minRecommendedPower = 0.5 // D
)

// cornealRadius converts keratometric power to the corneal radius of
// curvature in millimeters.
func cornealRadius(k float64) float64 {
	return (keratometricIndex - 1) * 1000 / k
}

// refractionAtCornea vertex-corrects a spectacle-plane refraction to the
// corneal plane.
func refractionAtCornea(spectacle float64) float64 {
	return spectacle / (1 - vertexDistanceM*spectacle)
}

// refractionAtSpectacle converts a corneal-plane refraction back to the
// spectacle plane.
func refractionAtSpectacle(corneal float64) float64 {
	return corneal / (1 + vertexDistanceM*corneal)
}

// opticalState is the per-formula thin-lens configuration: axial length,
// predicted lens plane, and the corneal power feeding the vergence
// equations. Each formula builds one and shares it between the power
// calculation and the expected-refraction inversion so power options stay
// consistent with the recommendation.
type opticalState struct {
	axialLength  float64
	elp          float64
	cornealPower float64
	degenerate   bool
}

// newOpticalState clamps a degenerate lens position and records that the
// clamp happened so the caller can warn and downgrade confidence.
func newOpticalState(axialLength, elp, cornealPower float64) opticalState {
	s := opticalState{axialLength: axialLength, elp: elp, cornealPower: cornealPower}
	if axialLength-elp < minOpticalGap {
		s.elp = axialLength - minOpticalGap
		s.degenerate = true
	}
	if s.elp <= 0 {
		s.elp = minOpticalGap
		s.degenerate = true
	}
	return s
}

// power solves the thin-lens vergence equation for the implant power that
// produces the given spectacle-plane target refraction:
//
//	P = n/(AL-d) - n/(n/(K+Rc) - d)
//
// with n in mm-diopter units (1336) and Rc the vertex-corrected target.
// The second return value is false when the configuration is degenerate
// beyond clamping.
func (s opticalState) power(targetRefraction float64) (float64, bool) {
	n := aqueousIndex * 1000
	z := s.cornealPower + refractionAtCornea(targetRefraction)
	if z <= 0 {
		return 0, false
	}
	den := n/z - s.elp
	if math.Abs(den) < 1e-9 {
		return 0, false
	}
	p := n/(s.axialLength-s.elp) - n/den
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, false
	}
	return p, true
}

// expectedRefraction inverts the vergence equation: given an implant power,
// it predicts the postoperative spectacle-plane refraction.
func (s opticalState) expectedRefraction(power float64) (float64, bool) {
	n := aqueousIndex * 1000
	x := n/(s.axialLength-s.elp) - power
	if math.Abs(x) < 1e-9 {
		return 0, false
	}
	den := n/x + s.elp
	if math.Abs(den) < 1e-9 {
		return 0, false
	}
	z := n / den
	corneal := z - s.cornealPower
	ref := refractionAtSpectacle(corneal)
	if math.IsNaN(ref) || math.IsInf(ref, 0) {
		return 0, false
	}
	return ref, true
}

// round2 rounds to two decimals, the precision reported for powers and
// refractions.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundToHalf rounds to the nearest half diopter, the manufacturing step
// for IOL powers.
func roundToHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
