package iol

import (
	"github.com/oculab/iolcalc-api/internal/domain"
)

// Haigis: the ELP is a linear model over the measured anterior chamber
// depth and the axial length, d = a0 + a1*ACD + a2*AL, with the triplet
// taken from the resolved lens constants. The corneal power uses the
// Haigis corneal index rather than the keratometric one.
const (
	haigisBandLow  = 20.0
	haigisBandHigh = 26.0
)

// CalculateHaigis computes the Haigis recommendation. A measured ACD is
// the formula's defining input: absent one, a population-average depth is
// substituted and confidence is downgraded.
func (c *Calculator) CalculateHaigis() (domain.FormulaResult, error) {
	warnings := DetectEdgeCases(c.biometry, c.patient)

	al := c.biometry.AxialLength
	k := c.effectiveK()
	r := cornealRadius(k)
	target := c.patient.Target()

	acd := meanACD
	acdMeasured := c.biometry.ACD != nil
	if acdMeasured {
		acd = *c.biometry.ACD
	} else {
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarnEstimatedACD,
			Message: "Profondeur de chambre antérieure non mesurée : valeur moyenne utilisée, fiabilité réduite",
		})
	}

	elp := c.constants.HaigisA0 + c.constants.HaigisA1*acd + c.constants.HaigisA2*al
	cornealPower := (haigisCornealIdx - 1) * 1000 / r

	state := newOpticalState(al, elp, cornealPower)
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

	confidence := confidenceByAxialBand(al, haigisBandLow, haigisBandHigh, warnings)
	if !acdMeasured {
		confidence = downgrade(confidence)
	}
	if degenerate {
		confidence = domain.ConfidenceLow
	}

	return domain.FormulaResult{
		Formula:          FormulaHaigis,
		RecommendedPower: round2(power),
		ELP:              round2(state.elp),
		Confidence:       confidence,
		Warnings:         warnings,
		PowerOptions:     buildPowerOptions(state.expectedRefraction, power, target),
	}, nil
}
