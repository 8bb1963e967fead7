package models

import (
	"fmt"
	"strings"
)

// SpoolSpec is a single spool definition as stored in the static catalog
// (one JSON file per spool). Every key except brand and type is optional in
// the source data; absent numbers stay nil so the estimator can tell "not
// provided" apart from zero.
type SpoolSpec struct {
	Brand                 string   `json:"brand"`
	Type                  string   `json:"type"`
	Image                 string   `json:"image,omitempty"`
	Description           string   `json:"description,omitempty"`
	FilamentDiameterMm    *float64 `json:"filamentDiameterMm,omitempty"`
	FilamentWeightGrams   *float64 `json:"filamentWeightGrams,omitempty"`
	EmptySpoolWeightGrams *float64 `json:"emptySpoolWeightGrams,omitempty"`
	CoreInnerDiameterMm   *float64 `json:"coreInnerDiameterMm,omitempty"`
	Refillable            bool     `json:"refillable,omitempty"`
}

// BrandAliases expands the brand field into its lookup keys. A brand like
// "ESUN/Generic" carries multiple aliases separated by '/'; each trimmed,
// non-empty alias is its own key.
func (s SpoolSpec) BrandAliases() []string {
	var aliases []string
	for _, part := range strings.Split(s.Brand, "/") {
		part = strings.TrimSpace(part)
		if part != "" {
			aliases = append(aliases, part)
		}
	}
	return aliases
}

// DisplayName is the brand plus variant label, e.g. "ESUN PLA+ 1kg".
func (s SpoolSpec) DisplayName() string {
	name := strings.TrimSpace(s.Brand + " " + s.Type)
	if name == "" {
		return "(unnamed spool)"
	}
	return name
}

func (s SpoolSpec) String() string {
	//  - ESUN PLA+ 1kg (2.85mm) - 1000g nominal, 250g empty (refillable)
	// Default to not showing the diameter if it's 1.75
	diameter := ""
	if s.FilamentDiameterMm != nil && *s.FilamentDiameterMm != 1.75 {
		diameter = fmt.Sprintf(" \x1b[38;2;200;128;0m(%.2fmm)\x1b[0m", *s.FilamentDiameterMm)
	}

	nominal := "?"
	if s.FilamentWeightGrams != nil {
		nominal = fmt.Sprintf("%.0fg", *s.FilamentWeightGrams)
	}
	empty := "?"
	if s.EmptySpoolWeightGrams != nil {
		empty = fmt.Sprintf("%.0fg", *s.EmptySpoolWeightGrams)
	}

	refillable := ""
	if s.Refillable {
		refillable = " \x1b[38;2;0;200;0m(refillable)\x1b[0m"
	}

	name := fmt.Sprintf("\033[1m%s\033[0m", s.DisplayName())

	return fmt.Sprintf("%s%s - %s nominal, %s empty%s", name, diameter, nominal, empty, refillable)
}
