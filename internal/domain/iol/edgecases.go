package iol

import (
	"fmt"

	"github.com/oculab/iolcalc-api/internal/domain"
)

// Anatomical thresholds for the edge-case detector. Warnings fired here are
// non-fatal: they accumulate on results and lower confidence, but never
// block a calculation.
const (
	shortEyeThreshold    = 20.0 // mm, nanophthalmic below this
	longEyeThreshold     = 26.0 // mm, long/myopic eye at or above
	steepKThreshold      = 47.0 // D, keratoconus suspicion at or above
	astigmatismThreshold = 2.5  // D of K1/K2 delta worth a toric lens
	shallowACDThreshold  = 2.5  // mm, narrow anterior chamber below
	plausibleKMin        = 30.0 // D, clinical plausibility band
	plausibleKMax        = 60.0
)

// DetectEdgeCases inspects a biometry snapshot (and optional patient
// context) for anatomically unusual conditions. Every formula consults it;
// the returned order is deterministic. Messages keep the French clinical
// wording displayed by the surgical-workflow frontends.
func DetectEdgeCases(biometry domain.BiometryData, patient *domain.PatientData) []domain.Warning {
	var warnings []domain.Warning

	if biometry.AxialLength < shortEyeThreshold {
		warnings = append(warnings, domain.Warning{
			Code: domain.WarnShortEye,
			Message: fmt.Sprintf(
				"Œil très court (nanophtalme) : longueur axiale %.2f mm < %.1f mm, précision des formules réduite",
				biometry.AxialLength, shortEyeThreshold),
		})
	}

	if biometry.AxialLength >= longEyeThreshold {
		warnings = append(warnings, domain.Warning{
			Code: domain.WarnLongEye,
			Message: fmt.Sprintf(
				"Œil long (myopie axiale) : longueur axiale %.2f mm ≥ %.1f mm, privilégier Barrett Universal II",
				biometry.AxialLength, longEyeThreshold),
		})
	}

	if biometry.K1 < plausibleKMin || biometry.K1 > plausibleKMax ||
		biometry.K2 < plausibleKMin || biometry.K2 > plausibleKMax {
		warnings = append(warnings, domain.Warning{
			Code: domain.WarnKeratometryRange,
			Message: fmt.Sprintf(
				"Kératométrie hors plage physiologique (%.1f-%.1f D) : vérifier la mesure",
				plausibleKMin, plausibleKMax),
		})
	}

	steep := biometry.SteepK() >= steepKThreshold
	highDelta := biometry.DeltaK() >= astigmatismThreshold
	if steep || highDelta {
		warnings = append(warnings, domain.Warning{
			Code: domain.WarnSteepCornea,
			Message: fmt.Sprintf(
				"Cornée très cambrée (K max %.2f D, ΔK %.2f D) : suspicion de kératocône, envisager une topographie",
				biometry.SteepK(), biometry.DeltaK()),
		})
	}
	if highDelta {
		warnings = append(warnings, domain.Warning{
			Code: domain.WarnHighAstigmatism,
			Message: fmt.Sprintf(
				"Astigmatisme cornéen important (%.2f D) : envisager un implant torique",
				biometry.DeltaK()),
		})
	}

	if biometry.ACD != nil && *biometry.ACD < shallowACDThreshold {
		warnings = append(warnings, domain.Warning{
			Code: domain.WarnShallowChamber,
			Message: fmt.Sprintf(
				"Chambre antérieure étroite (ACD %.2f mm < %.1f mm) : risque de position effective atypique",
				*biometry.ACD, shallowACDThreshold),
		})
	}

	if patient != nil && patient.PostLasik && !patient.HasCompleteLasikHistory() {
		warnings = append(warnings, domain.Warning{
			Code: domain.WarnMissingLasikHistory,
			Message: "Données pré-lasik manquantes : kératométrie ou réfraction pré-opératoire absente, calcul post-réfractif moins fiable",
		})
	}

	return warnings
}
