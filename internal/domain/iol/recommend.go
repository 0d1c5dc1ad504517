package iol

// Axial-length bands for formula selection.
const (
	shortEyeFormulaCutoff = 22.0
	longEyeFormulaCutoff  = 26.0
)

// Post-refractive formula variants recommended alongside the standard four.
const (
	FormulaBarrettTrueK = "Barrett True K"
	FormulaHaigisL      = "Haigis-L"
)

// RecommendedFormulas returns the formulas best suited to an axial length,
// most appropriate first. Short eyes favor Haigis, long eyes Barrett
// Universal II; eyes with prior corneal refractive surgery always get the
// post-refractive variants first, regardless of axial length.
func RecommendedFormulas(axialLength float64, postRefractive bool) []string {
	var formulas []string
	switch {
	case axialLength < shortEyeFormulaCutoff:
		formulas = []string{FormulaHaigis, FormulaBarrett, FormulaHolladay1, FormulaSRKT}
	case axialLength < longEyeFormulaCutoff:
		formulas = []string{FormulaBarrett, FormulaSRKT, FormulaHolladay1, FormulaHaigis}
	default:
		formulas = []string{FormulaBarrett, FormulaSRKT, FormulaHaigis, FormulaHolladay1}
	}

	if postRefractive {
		formulas = append([]string{FormulaBarrettTrueK, FormulaHaigisL}, formulas...)
	}
	return formulas
}
