package domain

// Confidence grades how much trust a formula places in its own result for
// the given biometry.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// PowerOption is one candidate lens power with the postoperative refraction
// it is expected to produce. Deviation is signed (expected minus target);
// option lists are ordered by ascending absolute deviation.
type PowerOption struct {
	Power              float64 `json:"power"`
	ExpectedRefraction float64 `json:"expected_refraction"`
	Deviation          float64 `json:"deviation"`
}

// FormulaResult is the outcome of a single formula calculation. It is an
// immutable value constructed per request; nothing here is persisted.
type FormulaResult struct {
	Formula          string        `json:"formula"`
	RecommendedPower float64       `json:"recommended_power"`
	ELP              float64       `json:"elp"`
	Confidence       Confidence    `json:"confidence"`
	Warnings         []Warning     `json:"warnings"`
	PowerOptions     []PowerOption `json:"power_options"`
}

// OptimizedRecommendation is the reconciled multi-formula recommendation:
// a confidence-weighted power, an agreement score in [0,100] derived from
// the spread of the individual recommendations, and the formulas that
// contributed.
type OptimizedRecommendation struct {
	Power          float64  `json:"power"`
	AgreementScore float64  `json:"agreement_score"`
	Formulas       []string `json:"formulas"`
}

// MultiFormulaResult aggregates the four independent formula results with
// the consensus recommendation and free-text clinical guidance.
type MultiFormulaResult struct {
	SRKT            FormulaResult           `json:"srkt"`
	Holladay1       FormulaResult           `json:"holladay1"`
	Haigis          FormulaResult           `json:"haigis"`
	Barrett         FormulaResult           `json:"barrett_universal2"`
	Optimized       OptimizedRecommendation `json:"optimized_recommendation"`
	Recommendations []string                `json:"recommendations"`
}

// Results returns the individual formula results in canonical order.
func (m MultiFormulaResult) Results() []FormulaResult {
	return []FormulaResult{m.SRKT, m.Holladay1, m.Haigis, m.Barrett}
}
