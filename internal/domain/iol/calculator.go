package iol

import (
	"math"
	"sort"

	"github.com/oculab/iolcalc-api/internal/domain"
)

// Formula names as reported in results and accepted by the API.
const (
	FormulaSRKT      = "SRK/T"
	FormulaHolladay1 = "Holladay 1"
	FormulaHaigis    = "Haigis"
	FormulaBarrett   = "Barrett Universal II"
)

// Population averages substituted for missing anterior-segment measurements.
const (
	meanACD           = 3.24 // mm
	meanLensThickness = 4.5  // mm
	meanWhiteToWhite  = 11.7 // mm
)

// Calculator computes IOL powers for one eye. It is immutable after
// construction: the biometry, resolved constants, and patient context are
// captured once, and every Calculate method is a pure function of them.
type Calculator struct {
	biometry  domain.BiometryData
	constants Constants
	patient   *domain.PatientData
}

// New validates the biometry and resolves the lens constants through the
// default registry. Missing axial length or keratometry is a fatal
// validation error naming the violated field.
func New(biometry domain.BiometryData, spec ConstantsSpec, patient *domain.PatientData) (*Calculator, error) {
	registry, err := DefaultRegistry()
	if err != nil {
		return nil, err
	}
	return NewWithRegistry(registry, biometry, spec, patient)
}

// NewWithRegistry is New with an explicit registry, mainly for tests.
func NewWithRegistry(registry *Registry, biometry domain.BiometryData, spec ConstantsSpec, patient *domain.PatientData) (*Calculator, error) {
	if err := biometry.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{
		biometry:  biometry,
		constants: registry.Resolve(spec),
		patient:   patient,
	}, nil
}

// Constants returns the resolved lens constants.
func (c *Calculator) Constants() Constants {
	return c.constants
}

// effectiveK returns the mean keratometry to feed the vergence optics.
// For post-LASIK eyes with a complete history it substitutes the
// clinical-history corrected power: the pre-operative keratometry adjusted
// by the vertex-corrected refractive change, since measured keratometry
// overestimates corneal power after myopic ablation.
func (c *Calculator) effectiveK() float64 {
	measured := c.biometry.AverageK()
	if c.patient == nil || !c.patient.PostLasik || !c.patient.HasCompleteLasikHistory() {
		return measured
	}

	preK := (*c.patient.PreLasikK1 + *c.patient.PreLasikK2) / 2
	current := 0.0
	if c.patient.CurrentRefraction != nil {
		current = *c.patient.CurrentRefraction
	}
	corrected := preK + refractionAtCornea(*c.patient.PreLasikRefraction) - refractionAtCornea(current)
	if corrected <= 0 {
		return measured
	}
	return corrected
}

// clampPower enforces the positive floor on a recommended power, appending
// a warning when the clamp fires.
func clampPower(power float64, warnings []domain.Warning) (float64, []domain.Warning) {
	if power >= minRecommendedPower {
		return power, warnings
	}
	warnings = append(warnings, domain.Warning{
		Code:    domain.WarnPowerFloor,
		Message: "Puissance calculée au plancher : biométrie extrême, résultat à confirmer manuellement",
	})
	return minRecommendedPower, warnings
}

// degeneracyWarning is appended whenever a vergence state had to be clamped.
func degeneracyWarning() domain.Warning {
	return domain.Warning{
		Code:    domain.WarnDegenerateOptics,
		Message: "Configuration optique dégénérée : position effective de l'implant bornée, résultat peu fiable",
	}
}

// buildPowerOptions generates candidate powers at half-diopter steps over
// ±2 D around the recommendation and predicts the refraction each would
// leave, sorted by ascending absolute deviation from the target. The
// predict function is each formula's expected-refraction inversion, so the
// options stay consistent with that formula's optics.
func buildPowerOptions(predict func(power float64) (float64, bool), recommended, target float64) []domain.PowerOption {
	base := roundToHalf(recommended)
	options := make([]domain.PowerOption, 0, 9)
	for step := -4; step <= 4; step++ {
		power := base + float64(step)*0.5
		expected, ok := predict(power)
		if !ok {
			continue
		}
		options = append(options, domain.PowerOption{
			Power:              power,
			ExpectedRefraction: round2(expected),
			Deviation:          round2(expected - target),
		})
	}
	sort.SliceStable(options, func(i, j int) bool {
		return math.Abs(options[i].Deviation) < math.Abs(options[j].Deviation)
	})
	return options
}

// confidenceByAxialBand grades confidence from the distance between the
// axial length and a formula's well-validated band. Inside the band with a
// clean cornea and chamber the grade is high; within two millimeters of the
// band it is medium; farther out it is low. Anatomy warnings cap the grade
// at medium even inside the band.
func confidenceByAxialBand(axialLength, bandLow, bandHigh float64, warnings []domain.Warning) domain.Confidence {
	distance := 0.0
	switch {
	case axialLength < bandLow:
		distance = bandLow - axialLength
	case axialLength > bandHigh:
		distance = axialLength - bandHigh
	}

	anatomyFlags := domain.HasWarning(warnings, domain.WarnSteepCornea) ||
		domain.HasWarning(warnings, domain.WarnHighAstigmatism) ||
		domain.HasWarning(warnings, domain.WarnShallowChamber) ||
		domain.HasWarning(warnings, domain.WarnShortEye) ||
		domain.HasWarning(warnings, domain.WarnKeratometryRange)

	switch {
	case distance == 0 && !anatomyFlags:
		return domain.ConfidenceHigh
	case distance <= 2.0:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// downgrade lowers a confidence grade by one step.
func downgrade(c domain.Confidence) domain.Confidence {
	switch c {
	case domain.ConfidenceHigh:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
