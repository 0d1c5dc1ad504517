package iol

import (
	"strings"
	"testing"

	"github.com/oculab/iolcalc-api/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestDetectEdgeCases(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		biometry    domain.BiometryData
		patient     *domain.PatientData
		wantCodes   []domain.WarningCode
		wantKeyword string
	}{
		{
			name:        "very short eye triggers nanophthalmic warning",
			biometry:    domain.BiometryData{AxialLength: 19.5, K1: 44, K2: 44.5},
			wantCodes:   []domain.WarningCode{domain.WarnShortEye},
			wantKeyword: "nanophtalme",
		},
		{
			name:      "long eye gets a note",
			biometry:  domain.BiometryData{AxialLength: 26.5, K1: 43, K2: 43.5},
			wantCodes: []domain.WarningCode{domain.WarnLongEye},
		},
		{
			name:        "steep cornea raises keratoconus suspicion",
			biometry:    domain.BiometryData{AxialLength: 23.5, K1: 47.5, K2: 48},
			wantCodes:   []domain.WarningCode{domain.WarnSteepCornea},
			wantKeyword: "kératocône",
		},
		{
			name:     "high K delta flags both keratoconus suspicion and toric option",
			biometry: domain.BiometryData{AxialLength: 23.5, K1: 42, K2: 45},
			wantCodes: []domain.WarningCode{
				domain.WarnSteepCornea,
				domain.WarnHighAstigmatism,
			},
			wantKeyword: "torique",
		},
		{
			name:        "shallow chamber warning",
			biometry:    domain.BiometryData{AxialLength: 23.5, K1: 43, K2: 43.5, ACD: ptr(2.2)},
			wantCodes:   []domain.WarningCode{domain.WarnShallowChamber},
			wantKeyword: "étroite",
		},
		{
			name:        "post-LASIK without history flags missing data",
			biometry:    domain.BiometryData{AxialLength: 23.5, K1: 43, K2: 43.5},
			patient:     &domain.PatientData{PostLasik: true},
			wantCodes:   []domain.WarningCode{domain.WarnMissingLasikHistory},
			wantKeyword: "manquant",
		},
		{
			name:      "implausible keratometry flagged, not rejected",
			biometry:  domain.BiometryData{AxialLength: 23.5, K1: 28, K2: 29},
			wantCodes: []domain.WarningCode{domain.WarnKeratometryRange},
		},
		{
			name:     "unremarkable biometry yields no warnings",
			biometry: domain.BiometryData{AxialLength: 23.5, K1: 43, K2: 43.5, ACD: ptr(3.2)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			warnings := DetectEdgeCases(tc.biometry, tc.patient)

			if len(tc.wantCodes) == 0 && len(warnings) != 0 {
				t.Fatalf("expected no warnings, got %v", warnings)
			}
			for _, code := range tc.wantCodes {
				if !domain.HasWarning(warnings, code) {
					t.Errorf("expected warning %s, got %v", code, warnings)
				}
			}
			if tc.wantKeyword != "" {
				found := false
				for _, w := range warnings {
					if strings.Contains(strings.ToLower(w.Message), tc.wantKeyword) {
						found = true
					}
				}
				if !found {
					t.Errorf("expected a message containing %q, got %v", tc.wantKeyword, warnings)
				}
			}
		})
	}
}

func TestDetectEdgeCasesPostLasikCompleteHistory(t *testing.T) {
	t.Parallel()

	patient := &domain.PatientData{
		PostLasik:          true,
		PreLasikK1:         ptr(44.0),
		PreLasikK2:         ptr(44.5),
		PreLasikRefraction: ptr(-6.0),
		CurrentRefraction:  ptr(-0.5),
	}
	warnings := DetectEdgeCases(domain.BiometryData{AxialLength: 23.5, K1: 40, K2: 40.5}, patient)

	if domain.HasWarning(warnings, domain.WarnMissingLasikHistory) {
		t.Errorf("complete history must not flag missing pre-LASIK data, got %v", warnings)
	}
}
