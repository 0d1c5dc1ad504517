package iol

import (
	"math"
	"testing"
)

func TestRegistryResolve(t *testing.T) {
	t.Parallel()
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	testCases := []struct {
		name          string
		spec          ConstantsSpec
		wantAConstant float64
	}{
		{
			name:          "empty spec falls back to default",
			spec:          ConstantsSpec{},
			wantAConstant: 118.4,
		},
		{
			name:          "explicit default keyword",
			spec:          ConstantsSpec{Lens: "default"},
			wantAConstant: 118.4,
		},
		{
			name:          "known lens model",
			spec:          ConstantsSpec{Lens: "SN60WF"},
			wantAConstant: 118.7,
		},
		{
			name:          "lookup is case-insensitive",
			spec:          ConstantsSpec{Lens: "sn60wf"},
			wantAConstant: 118.7,
		},
		{
			name:          "unknown identifier falls back to default instead of failing",
			spec:          ConstantsSpec{Lens: "NO-SUCH-LENS"},
			wantAConstant: 118.4,
		},
		{
			name:          "custom constants win over everything",
			spec:          ConstantsSpec{Lens: "SN60WF", Custom: &Constants{AConstant: 119.0, HaigisA0: 1.5, HaigisA1: 0.4, HaigisA2: 0.1}},
			wantAConstant: 119.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := registry.Resolve(tc.spec)
			if got.AConstant != tc.wantAConstant {
				t.Errorf("expected A-constant %v, got %v", tc.wantAConstant, got.AConstant)
			}
		})
	}
}

func TestRegistryDerivesHaigisTriplet(t *testing.T) {
	t.Parallel()
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	// SA60AT has no published triplet in the table: a0 is derived from
	// the A-constant, a1/a2 take the standard defaults.
	c := registry.Resolve(ConstantsSpec{Lens: "SA60AT"})
	if c.HaigisA1 != defaultHaigisA1 || c.HaigisA2 != defaultHaigisA2 {
		t.Errorf("expected default a1/a2, got %v/%v", c.HaigisA1, c.HaigisA2)
	}

	wantA0 := 0.62467*118.4 - 68.747 - defaultHaigisA1*meanACDAnchor - defaultHaigisA2*meanALAnchor
	if math.Abs(c.HaigisA0-wantA0) > 1e-9 {
		t.Errorf("expected derived a0 %v, got %v", wantA0, c.HaigisA0)
	}

	// SN60WF carries an optimized triplet: it must not be overwritten.
	optimized := registry.Resolve(ConstantsSpec{Lens: "SN60WF"})
	if optimized.HaigisA0 != 1.46 {
		t.Errorf("expected published a0 1.46, got %v", optimized.HaigisA0)
	}
}

func TestRegistryCustomFillsMissingHaigis(t *testing.T) {
	t.Parallel()
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	c := registry.Resolve(ConstantsSpec{Custom: &Constants{AConstant: 119.0}})
	if c.HaigisA0 == 0 {
		t.Error("expected a derived a0 for a custom A-constant without a triplet")
	}
	if c.HaigisA1 != defaultHaigisA1 {
		t.Errorf("expected default a1, got %v", c.HaigisA1)
	}
}

func TestRegistryLensCatalog(t *testing.T) {
	t.Parallel()
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	lenses := registry.Lenses()
	if len(lenses) == 0 {
		t.Fatal("expected a non-empty lens catalog")
	}
	for _, l := range lenses {
		if l.Model == "" {
			t.Error("catalog entry without a model name")
		}
		if l.Constants.AConstant <= 0 {
			t.Errorf("lens %s has no A-constant", l.Model)
		}
	}
}
