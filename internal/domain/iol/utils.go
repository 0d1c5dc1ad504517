package iol

// Refraction utilities shared with the surgical-workflow callers.

// iolPlaneRatio scales spectacle-plane refractive change to the IOL plane.
const iolPlaneRatio = 1.5

// cylinderPlaneRatio scales corneal-plane cylinder to the IOL plane.
const cylinderPlaneRatio = 1.46

// SphericalEquivalent returns sphere + cylinder/2, exactly, no rounding.
func SphericalEquivalent(sphere, cylinder float64) float64 {
	return sphere + cylinder/2
}

// EstimatePowerChange converts a refraction change at the spectacle/target
// plane into the corresponding IOL power change, using the fixed
// vertex-distance conversion ratio.
func EstimatePowerChange(refractionChange float64) float64 {
	return iolPlaneRatio * refractionChange
}

// ToricResult is an IOL-plane toric cylinder at its implantation meridian.
type ToricResult struct {
	Cylinder float64 `json:"cylinder"`
	Axis     int     `json:"axis"`
}

// ToricCylinder converts corneal astigmatism to the toric cylinder to order.
// The correction factor is a surgically-induced-astigmatism-style allowance
// in diopters, subtracted from the corneal cylinder before scaling to the
// IOL plane. The axis passes through unchanged: the implant sits on the
// same meridian.
func ToricCylinder(cornealCylinder, correctionFactor float64, axis int) ToricResult {
	corrected := cornealCylinder - correctionFactor
	if corrected < 0 {
		corrected = 0
	}
	return ToricResult{
		Cylinder: round2(corrected * cylinderPlaneRatio),
		Axis:     axis,
	}
}
