package iol

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lenses.yaml
var lensesYAML []byte

// Haigis defaults used when a lens has no optimized triplet. a0 is then
// derived from the A-constant via the published ACD-constant relation,
// anchored on the population averages ACD 3.37 mm and AL 23.39 mm.
const (
	defaultHaigisA1 = 0.4
	defaultHaigisA2 = 0.1
	meanACDAnchor   = 3.37
	meanALAnchor    = 23.39
)

// Constants is a fully resolved set of optical constants for one lens.
type Constants struct {
	AConstant float64 `json:"a_constant"`
	HaigisA0  float64 `json:"haigis_a0"`
	HaigisA1  float64 `json:"haigis_a1"`
	HaigisA2  float64 `json:"haigis_a2"`
}

// ConstantsSpec selects the constants for a calculation. Resolution order:
// an explicit Custom struct wins, then a known lens model identifier, then
// the registry default. Unknown identifiers fall back to the default rather
// than failing, so a stale lens catalog upstream never blocks a calculation.
type ConstantsSpec struct {
	// Lens is a lens model identifier, the literal "default", or empty.
	Lens string `json:"lens,omitempty"`

	// Custom overrides the registry entirely when present. Zero-valued
	// Haigis coefficients are filled in from the A-constant.
	Custom *Constants `json:"custom,omitempty"`
}

// LensInfo describes one registry entry, for catalog listings.
type LensInfo struct {
	Model        string    `json:"model"`
	Manufacturer string    `json:"manufacturer,omitempty"`
	Constants    Constants `json:"constants"`
}

// Registry resolves lens identifiers to optical constants.
type Registry struct {
	defaults Constants
	lenses   map[string]LensInfo
	ordered  []string
}

// lensFile mirrors the embedded YAML layout.
type lensFile struct {
	Default struct {
		AConstant float64 `yaml:"a_constant"`
	} `yaml:"default"`
	Lenses []struct {
		Model        string  `yaml:"model"`
		Manufacturer string  `yaml:"manufacturer"`
		AConstant    float64 `yaml:"a_constant"`
		Haigis       *struct {
			A0 float64 `yaml:"a0"`
			A1 float64 `yaml:"a1"`
			A2 float64 `yaml:"a2"`
		} `yaml:"haigis"`
	} `yaml:"lenses"`
}

// NewRegistry parses the embedded lens table.
func NewRegistry() (*Registry, error) {
	var file lensFile
	if err := yaml.Unmarshal(lensesYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse embedded lens table: %w", err)
	}
	if file.Default.AConstant <= 0 {
		return nil, fmt.Errorf("embedded lens table has no default A-constant")
	}

	r := &Registry{
		defaults: constantsFromA(file.Default.AConstant),
		lenses:   make(map[string]LensInfo, len(file.Lenses)),
	}
	for _, l := range file.Lenses {
		c := constantsFromA(l.AConstant)
		if l.Haigis != nil {
			c.HaigisA0 = l.Haigis.A0
			c.HaigisA1 = l.Haigis.A1
			c.HaigisA2 = l.Haigis.A2
		}
		info := LensInfo{Model: l.Model, Manufacturer: l.Manufacturer, Constants: c}
		r.lenses[normalizeModel(l.Model)] = info
		r.ordered = append(r.ordered, normalizeModel(l.Model))
	}
	sort.Strings(r.ordered)
	return r, nil
}

var (
	defaultRegistry     *Registry
	defaultRegistryErr  error
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry built from the embedded
// lens table. The table is parsed once; the registry is immutable afterwards.
func DefaultRegistry() (*Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = NewRegistry()
	})
	return defaultRegistry, defaultRegistryErr
}

// Resolve maps a ConstantsSpec to a concrete Constants value.
func (r *Registry) Resolve(spec ConstantsSpec) Constants {
	if spec.Custom != nil {
		c := *spec.Custom
		if c.AConstant <= 0 {
			c.AConstant = r.defaults.AConstant
		}
		if c.HaigisA1 == 0 && c.HaigisA2 == 0 && c.HaigisA0 == 0 {
			derived := constantsFromA(c.AConstant)
			c.HaigisA0 = derived.HaigisA0
			c.HaigisA1 = derived.HaigisA1
			c.HaigisA2 = derived.HaigisA2
		}
		return c
	}

	name := normalizeModel(spec.Lens)
	if name == "" || name == "default" {
		return r.defaults
	}
	if info, ok := r.lenses[name]; ok {
		return info.Constants
	}
	// Unknown identifier: explicit fallback, never a lookup failure.
	return r.defaults
}

// Lenses returns the catalog entries in stable model order.
func (r *Registry) Lenses() []LensInfo {
	out := make([]LensInfo, 0, len(r.ordered))
	for _, key := range r.ordered {
		out = append(out, r.lenses[key])
	}
	return out
}

// Defaults returns the fallback constants.
func (r *Registry) Defaults() Constants {
	return r.defaults
}

// constantsFromA derives a complete constant set from an A-constant alone.
// The Haigis a0 follows from the SRK/T ACD-constant relation
// (ACDconst = 0.62467*A - 68.747) evaluated at the population anchors.
func constantsFromA(aConstant float64) Constants {
	acdConst := 0.62467*aConstant - 68.747
	return Constants{
		AConstant: aConstant,
		HaigisA0:  acdConst - defaultHaigisA1*meanACDAnchor - defaultHaigisA2*meanALAnchor,
		HaigisA1:  defaultHaigisA1,
		HaigisA2:  defaultHaigisA2,
	}
}

func normalizeModel(model string) string {
	return strings.ToLower(strings.TrimSpace(model))
}
