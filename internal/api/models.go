package api

import (
	"github.com/oculab/iolcalc-api/internal/domain"
	"github.com/oculab/iolcalc-api/internal/domain/iol"
)

// Common request/response structures

// CalculationRequest defines the payload for the calculation endpoints.
type CalculationRequest struct {
	Biometry BiometryPayload `json:"biometry" validate:"required"`
	Lens     *LensPayload    `json:"lens,omitempty"`
	Patient  *PatientPayload `json:"patient,omitempty"`
}

// BiometryPayload carries the per-eye measurements for one calculation.
// Plausibility is not enforced here: implausible values produce warnings
// in the result, only structurally unusable input is rejected.
type BiometryPayload struct {
	// AxialLength is the eye length in millimeters.
	AxialLength float64 `json:"axial_length" validate:"required,gt=0"`

	// K1 and K2 are the corneal meridian powers in diopters.
	K1 float64 `json:"k1" validate:"required,gt=0"`
	K2 float64 `json:"k2" validate:"required,gt=0"`

	// Optional anterior-segment measurements in millimeters.
	ACD           *float64 `json:"acd,omitempty"            validate:"omitempty,gt=0"`
	LensThickness *float64 `json:"lens_thickness,omitempty" validate:"omitempty,gt=0"`
	WhiteToWhite  *float64 `json:"white_to_white,omitempty" validate:"omitempty,gt=0"`
}

// LensPayload selects the lens constants for a calculation. A model
// identifier resolves against the registry; explicit constants override it.
type LensPayload struct {
	Model     string   `json:"model,omitempty"`
	AConstant *float64 `json:"a_constant,omitempty" validate:"omitempty,gt=100,lt=130"`
	HaigisA0  *float64 `json:"haigis_a0,omitempty"`
	HaigisA1  *float64 `json:"haigis_a1,omitempty"`
	HaigisA2  *float64 `json:"haigis_a2,omitempty"`
}

// PatientPayload carries the optional calculation context.
type PatientPayload struct {
	TargetRefraction   float64  `json:"target_refraction"`
	PostLasik          bool     `json:"post_lasik"`
	PreLasikK1         *float64 `json:"pre_lasik_k1,omitempty"         validate:"omitempty,gt=0"`
	PreLasikK2         *float64 `json:"pre_lasik_k2,omitempty"         validate:"omitempty,gt=0"`
	PreLasikRefraction *float64 `json:"pre_lasik_refraction,omitempty"`
	CurrentRefraction  *float64 `json:"current_refraction,omitempty"`
}

// ToricRequest defines the payload for the toric cylinder endpoint.
type ToricRequest struct {
	// CornealCylinder is the corneal astigmatism magnitude in diopters.
	CornealCylinder float64 `json:"corneal_cylinder" validate:"gte=0"`

	// SurgicalCorrection is the incision-induced allowance in diopters,
	// subtracted before converting to the IOL plane.
	SurgicalCorrection float64 `json:"surgical_correction" validate:"gte=0"`

	// Axis is the steep meridian in degrees.
	Axis int `json:"axis" validate:"gte=0,lte=180"`
}

// RecommendedFormulasResponse lists formulas in preference order for the
// given biometric profile.
type RecommendedFormulasResponse struct {
	AxialLength    float64  `json:"axial_length"`
	PostRefractive bool     `json:"post_refractive"`
	Formulas       []string `json:"formulas"`
}

// toDomain converts the wire payload to the immutable domain snapshot.
func (p BiometryPayload) toDomain() domain.BiometryData {
	return domain.BiometryData{
		AxialLength:   p.AxialLength,
		K1:            p.K1,
		K2:            p.K2,
		ACD:           p.ACD,
		LensThickness: p.LensThickness,
		WhiteToWhite:  p.WhiteToWhite,
	}
}

// toSpec converts the lens payload to a registry selector. Explicit
// constants win over the model identifier.
func (p *LensPayload) toSpec() iol.ConstantsSpec {
	if p == nil {
		return iol.ConstantsSpec{}
	}
	spec := iol.ConstantsSpec{Lens: p.Model}
	if p.AConstant != nil {
		custom := iol.Constants{AConstant: *p.AConstant}
		if p.HaigisA0 != nil {
			custom.HaigisA0 = *p.HaigisA0
		}
		if p.HaigisA1 != nil {
			custom.HaigisA1 = *p.HaigisA1
		}
		if p.HaigisA2 != nil {
			custom.HaigisA2 = *p.HaigisA2
		}
		spec.Custom = &custom
	}
	return spec
}

func (p *PatientPayload) toDomain() *domain.PatientData {
	if p == nil {
		return nil
	}
	return &domain.PatientData{
		TargetRefraction:   p.TargetRefraction,
		PostLasik:          p.PostLasik,
		PreLasikK1:         p.PreLasikK1,
		PreLasikK2:         p.PreLasikK2,
		PreLasikRefraction: p.PreLasikRefraction,
		CurrentRefraction:  p.CurrentRefraction,
	}
}
