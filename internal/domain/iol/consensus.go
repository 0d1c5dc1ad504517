package iol

import (
	"fmt"
	"math"
	"strings"

	"github.com/oculab/iolcalc-api/internal/domain"
)

// Consensus weighting. Higher-confidence formulas weigh more; outside the
// mid-range axial band a small bonus breaks ties in favor of the formulas
// better validated for unusual eyes (Barrett, then Haigis, then Holladay 1).
const (
	consensusBandLow  = 22.0
	consensusBandHigh = 24.5

	agreementSpreadPenalty = 20.0 // score points per diopter of spread
)

var confidenceWeight = map[domain.Confidence]float64{
	domain.ConfidenceLow:    1,
	domain.ConfidenceMedium: 2,
	domain.ConfidenceHigh:   3,
}

var offBandBonus = map[string]float64{
	FormulaBarrett:   0.3,
	FormulaHaigis:    0.2,
	FormulaHolladay1: 0.1,
	FormulaSRKT:      0.0,
}

// CalculateAll runs the four formulas independently and reconciles them
// into one recommendation. One formula's failure never blocks the others:
// a fault is converted into a low-confidence result carrying an explanatory
// warning, and excluded from the weighted consensus.
func (c *Calculator) CalculateAll() domain.MultiFormulaResult {
	srkt := c.safeCalculate(FormulaSRKT, c.CalculateSRKT)
	holladay := c.safeCalculate(FormulaHolladay1, c.CalculateHolladay1)
	haigis := c.safeCalculate(FormulaHaigis, c.CalculateHaigis)
	barrett := c.safeCalculate(FormulaBarrett, c.CalculateBarrett)

	result := domain.MultiFormulaResult{
		SRKT:      srkt,
		Holladay1: holladay,
		Haigis:    haigis,
		Barrett:   barrett,
	}
	result.Optimized = c.optimize(result.Results())
	result.Recommendations = c.guidance()
	return result
}

// safeCalculate isolates one formula: a returned error or a panic becomes
// a low-confidence placeholder result instead of aborting the batch.
func (c *Calculator) safeCalculate(name string, calc func() (domain.FormulaResult, error)) (result domain.FormulaResult) {
	defer func() {
		if r := recover(); r != nil {
			result = faultedResult(name, fmt.Errorf("computation fault: %v", r))
		}
	}()

	res, err := calc()
	if err != nil {
		return faultedResult(name, err)
	}
	return res
}

func faultedResult(name string, err error) domain.FormulaResult {
	return domain.FormulaResult{
		Formula:    name,
		Confidence: domain.ConfidenceLow,
		Warnings: []domain.Warning{{
			Code:    domain.WarnFormulaFault,
			Message: fmt.Sprintf("Calcul %s indisponible : %v", name, err),
		}},
	}
}

// optimize combines the individual recommendations into a
// confidence-weighted power and an agreement score.
func (c *Calculator) optimize(results []domain.FormulaResult) domain.OptimizedRecommendation {
	offBand := c.biometry.AxialLength < consensusBandLow || c.biometry.AxialLength > consensusBandHigh

	var (
		weightedSum, totalWeight float64
		minPower                 = math.Inf(1)
		maxPower                 = math.Inf(-1)
		contributors             []string
	)
	for _, r := range results {
		if r.RecommendedPower <= 0 || domain.HasWarning(r.Warnings, domain.WarnFormulaFault) {
			continue
		}
		weight := confidenceWeight[r.Confidence]
		if offBand {
			weight += offBandBonus[r.Formula]
		}
		weightedSum += weight * r.RecommendedPower
		totalWeight += weight
		minPower = math.Min(minPower, r.RecommendedPower)
		maxPower = math.Max(maxPower, r.RecommendedPower)
		contributors = append(contributors, r.Formula)
	}

	if totalWeight == 0 {
		return domain.OptimizedRecommendation{Formulas: []string{}}
	}

	spread := maxPower - minPower
	score := 100 - agreementSpreadPenalty*spread
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return domain.OptimizedRecommendation{
		Power:          round2(weightedSum / totalWeight),
		AgreementScore: round2(score),
		Formulas:       contributors,
	}
}

// guidance builds the free-text clinical recommendations: formula choice
// for the axial length band, plus post-refractive guidance when relevant.
func (c *Calculator) guidance() []string {
	al := c.biometry.AxialLength
	postRefractive := c.patient != nil && c.patient.PostLasik
	formulas := RecommendedFormulas(al, postRefractive)

	recommendations := []string{
		fmt.Sprintf("Formules recommandées pour cette biométrie : %s", strings.Join(formulas, ", ")),
	}

	switch {
	case al < shortEyeFormulaCutoff:
		recommendations = append(recommendations,
			"Œil court : la formule Haigis avec ACD mesurée est la plus fiable")
	case al >= longEyeFormulaCutoff:
		recommendations = append(recommendations,
			"Œil long : privilégier Barrett Universal II, risque de surprise hypermétropique avec les formules classiques")
	}

	if c.biometry.DeltaK() >= astigmatismThreshold {
		recommendations = append(recommendations,
			"Astigmatisme cornéen significatif : évaluer un implant torique")
	}

	if postRefractive {
		recommendations = append(recommendations,
			"Antécédent de chirurgie réfractive cornéenne : utiliser une correction de type Barrett True K ou Haigis-L")
		if !c.patient.HasCompleteLasikHistory() {
			recommendations = append(recommendations,
				"Historique pré-lasik incomplet : récupérer la kératométrie et la réfraction pré-opératoires si possible")
		}
	}

	return recommendations
}
