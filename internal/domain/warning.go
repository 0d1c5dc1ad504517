package domain

// WarningCode categorizes non-fatal findings by subsystem.
// B1xxx = biometry anatomy, B2xxx = refractive history, B3xxx = computation.
type WarningCode string

const (
	// WarnShortEye flags an axial length below the nanophthalmic threshold.
	WarnShortEye WarningCode = "B1001"

	// WarnLongEye flags a long, usually highly myopic eye.
	WarnLongEye WarningCode = "B1002"

	// WarnSteepCornea flags a steep cornea raising keratoconus suspicion.
	WarnSteepCornea WarningCode = "B1003"

	// WarnHighAstigmatism flags corneal astigmatism worth a toric lens.
	WarnHighAstigmatism WarningCode = "B1004"

	// WarnShallowChamber flags a narrow anterior chamber.
	WarnShallowChamber WarningCode = "B1005"

	// WarnKeratometryRange flags keratometry outside the plausible 30-60 D band.
	WarnKeratometryRange WarningCode = "B1006"

	// WarnEstimatedACD flags that a population-average anterior chamber
	// depth was substituted for a missing measurement.
	WarnEstimatedACD WarningCode = "B1007"

	// WarnMissingLasikHistory flags incomplete pre-refractive-surgery data.
	WarnMissingLasikHistory WarningCode = "B2001"

	// WarnDegenerateOptics flags a numerically degenerate vergence state
	// that had to be clamped instead of propagating NaN or Inf.
	WarnDegenerateOptics WarningCode = "B3001"

	// WarnFormulaFault flags a formula whose computation faulted and was
	// isolated from the rest of the batch.
	WarnFormulaFault WarningCode = "B3002"

	// WarnPowerFloor flags a recommended power clamped at the positive floor.
	WarnPowerFloor WarningCode = "B3003"
)

// Warning represents a non-fatal finding attached to a calculation result.
// The code is stable and machine-checkable; the message keeps the clinical
// French wording the surgical-workflow frontends display and match on.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// String returns the rendered clinical message.
func (w Warning) String() string { return w.Message }

// HasWarning reports whether the slice contains a warning with the given code.
func HasWarning(warnings []Warning, code WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
