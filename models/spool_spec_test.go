package models

import (
	"reflect"
	"strings"
	"testing"
)

func TestBrandAliases(t *testing.T) {
	tests := []struct {
		name     string
		brand    string
		expected []string
	}{
		{
			"single brand",
			"Prusament",
			[]string{"Prusament"},
		},
		{
			"two aliases",
			"ESUN/Generic",
			[]string{"ESUN", "Generic"},
		},
		{
			"aliases with surrounding whitespace",
			" ESUN / Generic ",
			[]string{"ESUN", "Generic"},
		},
		{
			"empty segments dropped",
			"ESUN//Generic/",
			[]string{"ESUN", "Generic"},
		},
		{
			"empty brand",
			"",
			nil,
		},
		{
			"only separators",
			"///",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := SpoolSpec{Brand: tt.brand}
			if got := spec.BrandAliases(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("BrandAliases() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		spec     SpoolSpec
		expected string
	}{
		{
			"brand and type",
			SpoolSpec{Brand: "ESUN", Type: "PLA+ 1kg"},
			"ESUN PLA+ 1kg",
		},
		{
			"brand only",
			SpoolSpec{Brand: "ESUN"},
			"ESUN",
		},
		{
			"type only",
			SpoolSpec{Type: "PLA+ 1kg"},
			"PLA+ 1kg",
		},
		{
			"neither",
			SpoolSpec{},
			"(unnamed spool)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.DisplayName(); got != tt.expected {
				t.Errorf("DisplayName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSpoolSpecString(t *testing.T) {
	diameter := 2.85
	nominal := 1000.0
	empty := 250.0
	spec := SpoolSpec{
		Brand:                 "ESUN",
		Type:                  "PLA+ 1kg",
		FilamentDiameterMm:    &diameter,
		FilamentWeightGrams:   &nominal,
		EmptySpoolWeightGrams: &empty,
		Refillable:            true,
	}

	got := spec.String()
	for _, want := range []string{"ESUN PLA+ 1kg", "(2.85mm)", "1000g nominal", "250g empty", "(refillable)"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}

	// 1.75 is the default diameter and isn't repeated in the display line.
	standard := 1.75
	spec.FilamentDiameterMm = &standard
	if strings.Contains(spec.String(), "1.75") {
		t.Errorf("String() = %q, should not show 1.75mm diameter", spec.String())
	}

	// Unknown weights show as question marks rather than zeros.
	bare := SpoolSpec{Brand: "Generic", Type: "PLA"}
	if !strings.Contains(bare.String(), "? nominal, ? empty") {
		t.Errorf("String() = %q, want unknown weights rendered as ?", bare.String())
	}
}
