package domain

import "math"

// BiometryData is an immutable per-eye measurement snapshot taken during the
// pre-operative assessment. Axial length and both keratometry readings are
// required; the anterior-segment measurements are optional and modeled as
// pointers so "not measured" is distinguishable from zero.
type BiometryData struct {
	// AxialLength is the length of the eye in millimeters.
	AxialLength float64 `json:"axial_length"`

	// K1 is the flat corneal meridian power in diopters.
	K1 float64 `json:"k1"`

	// K2 is the steep corneal meridian power in diopters.
	K2 float64 `json:"k2"`

	// ACD is the anterior chamber depth in millimeters, when measured.
	ACD *float64 `json:"acd,omitempty"`

	// LensThickness is the crystalline lens thickness in millimeters, when measured.
	LensThickness *float64 `json:"lens_thickness,omitempty"`

	// WhiteToWhite is the horizontal corneal diameter in millimeters, when measured.
	WhiteToWhite *float64 `json:"white_to_white,omitempty"`
}

// Validate checks the fatal validation rules for a biometry snapshot.
// It returns a ValidationError naming the violated field, or nil.
// Clinically implausible but present values are deliberately not rejected
// here; they surface as warnings during edge-case detection instead.
func (b BiometryData) Validate() error {
	if b.AxialLength <= 0 {
		return NewValidationError("axialLength", ErrAxialLengthMissing)
	}
	if b.K1 <= 0 {
		return NewValidationError("k1", ErrKeratometryMissing)
	}
	if b.K2 <= 0 {
		return NewValidationError("k2", ErrKeratometryMissing)
	}
	if b.ACD != nil && *b.ACD >= b.AxialLength {
		return NewValidationError("acd", ErrACDExceedsAxialLength)
	}
	return nil
}

// AverageK returns the mean keratometry in diopters.
func (b BiometryData) AverageK() float64 {
	return (b.K1 + b.K2) / 2
}

// SteepK returns the steeper of the two keratometry readings.
func (b BiometryData) SteepK() float64 {
	return math.Max(b.K1, b.K2)
}

// DeltaK returns the corneal astigmatism magnitude |K1-K2| in diopters.
func (b BiometryData) DeltaK() float64 {
	return math.Abs(b.K1 - b.K2)
}

// PatientData carries the optional per-patient calculation context: the
// desired postoperative refraction and the refractive-surgery history needed
// for post-LASIK keratometry correction.
type PatientData struct {
	// TargetRefraction is the desired postoperative spherical equivalent
	// in diopters. Zero means emmetropia.
	TargetRefraction float64 `json:"target_refraction"`

	// PostLasik indicates prior corneal refractive surgery (LASIK/PRK).
	PostLasik bool `json:"post_lasik"`

	// PreLasikK1 and PreLasikK2 are the keratometry readings measured
	// before refractive surgery, when the history is available.
	PreLasikK1 *float64 `json:"pre_lasik_k1,omitempty"`
	PreLasikK2 *float64 `json:"pre_lasik_k2,omitempty"`

	// PreLasikRefraction is the spherical equivalent before refractive
	// surgery, at the spectacle plane.
	PreLasikRefraction *float64 `json:"pre_lasik_refraction,omitempty"`

	// CurrentRefraction is the present spherical equivalent, at the
	// spectacle plane.
	CurrentRefraction *float64 `json:"current_refraction,omitempty"`
}

// Target returns the target refraction, defaulting to emmetropia when no
// patient context was supplied.
func (p *PatientData) Target() float64 {
	if p == nil {
		return 0
	}
	return p.TargetRefraction
}

// HasCompleteLasikHistory reports whether every field required for the
// clinical-history keratometry correction is present.
func (p *PatientData) HasCompleteLasikHistory() bool {
	if p == nil {
		return false
	}
	return p.PreLasikK1 != nil && p.PreLasikK2 != nil && p.PreLasikRefraction != nil
}
