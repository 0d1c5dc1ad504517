package iol

import (
	"testing"
)

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func TestRecommendedFormulas(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		axialLength    float64
		postRefractive bool
		wantFirst      string
		wantContains   []string
	}{
		{
			name:         "short eye leads with Haigis",
			axialLength:  21.0,
			wantFirst:    FormulaHaigis,
			wantContains: []string{FormulaHaigis},
		},
		{
			name:         "normal eye leads with Barrett",
			axialLength:  23.5,
			wantFirst:    FormulaBarrett,
			wantContains: []string{FormulaBarrett, FormulaSRKT, FormulaHolladay1, FormulaHaigis},
		},
		{
			name:         "long eye leads with Barrett then SRK/T",
			axialLength:  27.0,
			wantFirst:    FormulaBarrett,
			wantContains: []string{FormulaBarrett, FormulaSRKT},
		},
		{
			name:           "post-refractive always includes the corrected variants",
			axialLength:    24.0,
			postRefractive: true,
			wantFirst:      FormulaBarrettTrueK,
			wantContains:   []string{FormulaBarrettTrueK, FormulaHaigisL, FormulaBarrett},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := RecommendedFormulas(tc.axialLength, tc.postRefractive)
			if len(got) == 0 {
				t.Fatal("expected a non-empty formula list")
			}
			if got[0] != tc.wantFirst {
				t.Errorf("expected %q first, got %q", tc.wantFirst, got[0])
			}
			for _, want := range tc.wantContains {
				if !contains(got, want) {
					t.Errorf("expected %q in %v", want, got)
				}
			}
		})
	}
}
