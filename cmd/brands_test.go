package cmd

import (
	"testing"

	"github.com/dstockto/spoolscale/models"
)

func fptr(v float64) *float64 { return &v }

func TestSpecFilters(t *testing.T) {
	tests := []struct {
		name     string
		filter   SpecFilter
		spec     models.SpoolSpec
		expected bool
	}{
		{
			"standard filament - match",
			standardSpools,
			models.SpoolSpec{FilamentDiameterMm: fptr(1.75)},
			true,
		},
		{
			"standard filament - unstated diameter matches",
			standardSpools,
			models.SpoolSpec{},
			true,
		},
		{
			"standard filament - no match",
			standardSpools,
			models.SpoolSpec{FilamentDiameterMm: fptr(2.85)},
			false,
		},
		{
			"ultimaker filament - match",
			ultimakerSpools,
			models.SpoolSpec{FilamentDiameterMm: fptr(2.85)},
			true,
		},
		{
			"ultimaker filament - unstated diameter no match",
			ultimakerSpools,
			models.SpoolSpec{},
			false,
		},
		{
			"refillable only - match",
			refillableOnly,
			models.SpoolSpec{Refillable: true},
			true,
		},
		{
			"refillable only - no match",
			refillableOnly,
			models.SpoolSpec{},
			false,
		},
		{
			"type contains - match",
			typeContains("pla"),
			models.SpoolSpec{Type: "PLA+ 1kg"},
			true,
		},
		{
			"type contains - no match",
			typeContains("petg"),
			models.SpoolSpec{Type: "PLA+ 1kg"},
			false,
		},
		{
			"no filter",
			noFilter,
			models.SpoolSpec{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter(tt.spec); got != tt.expected {
				t.Errorf("filter(%+v) = %v, want %v", tt.spec, got, tt.expected)
			}
		})
	}
}

func TestAggregateFilter(t *testing.T) {
	refillableStandard := aggregateFilter(standardSpools, refillableOnly)

	spec := models.SpoolSpec{FilamentDiameterMm: fptr(1.75), Refillable: true}
	if !refillableStandard(spec) {
		t.Error("aggregateFilter rejected a spec matching all filters")
	}

	spec.Refillable = false
	if refillableStandard(spec) {
		t.Error("aggregateFilter accepted a spec failing one filter")
	}

	if !aggregateFilter()(models.SpoolSpec{}) {
		t.Error("empty aggregateFilter rejected a spec, want accept-all")
	}
}

func TestFilterSpecs(t *testing.T) {
	specs := []models.SpoolSpec{
		{Brand: "A", Refillable: true},
		{Brand: "B"},
		{Brand: "C", Refillable: true},
	}

	got := filterSpecs(specs, refillableOnly)
	if len(got) != 2 || got[0].Brand != "A" || got[1].Brand != "C" {
		t.Errorf("filterSpecs = %v, want the two refillable specs in order", got)
	}

	if got := filterSpecs(specs, nil); len(got) != 3 {
		t.Errorf("filterSpecs with nil filter = %d specs, want all 3", len(got))
	}
}
