// Package estimator computes how much filament is left on a spool from a
// scale measurement and the spool's catalog entry.
package estimator

import (
	"math"
	"strconv"
	"strings"

	"github.com/dstockto/spoolscale/models"
)

// Deliberate simplifications in the physical model: the core weight is a
// flat figure for master-spool cores, and the density is the PLA value
// applied regardless of actual material. Both can be overridden in config.
const (
	DefaultCoreWeightGrams    = 40.0
	DefaultDensityGramsPerCm3 = 1.24
)

// NominalSizes is the fixed set of capacities (grams) the selection UIs
// offer when the spool's own nominal weight should be overridden.
var NominalSizes = []float64{250, 1000, 3000}

type Estimator struct {
	CoreWeightGrams float64
	Density         float64 // grams per cubic centimeter
}

func New() Estimator {
	return Estimator{
		CoreWeightGrams: DefaultCoreWeightGrams,
		Density:         DefaultDensityGramsPerCm3,
	}
}

// Input is one estimation request. NominalOverride and MeasuredWeight are
// kept as the text the user entered; parsing them is part of the contract,
// so a garbled weight degrades to an empty Result instead of an error.
type Input struct {
	Spec            *models.SpoolSpec
	NominalOverride string
	IncludeCore     bool
	MeasuredWeight  string
}

// Result holds the derived figures. RemainingLength is in meters. All four
// fields are nil together when the input is insufficient (no spec, or the
// measured weight doesn't parse to a number above zero); otherwise length
// and percent may individually be nil when the spec lacks a diameter or a
// nominal weight.
type Result struct {
	RemainingWeight  *float64
	RemainingLength  *float64
	RemainingPercent *float64
	SafeWeight       *float64
}

// Estimate is pure: same input, same output, no side effects.
func (e Estimator) Estimate(in Input) Result {
	if in.Spec == nil {
		return Result{}
	}
	measured, ok := parsePositive(in.MeasuredWeight)
	if !ok {
		return Result{}
	}

	nominal := 0.0
	if v, ok := parsePositive(in.NominalOverride); ok {
		nominal = v
	} else if in.Spec.FilamentWeightGrams != nil {
		nominal = *in.Spec.FilamentWeightGrams
	}

	empty := 0.0
	if in.Spec.EmptySpoolWeightGrams != nil {
		empty = *in.Spec.EmptySpoolWeightGrams
	}
	// The loose core only ever weighs in for refillable spools; for everything
	// else its weight is already part of emptySpoolWeightGrams.
	if in.Spec.Refillable && in.IncludeCore {
		empty += e.CoreWeightGrams
	}

	remaining := measured - empty
	if remaining < 0 {
		remaining = 0
	}
	if nominal > 0 && remaining > nominal {
		remaining = nominal
	}

	res := Result{RemainingWeight: &remaining}

	if remaining > 0 && in.Spec.FilamentDiameterMm != nil && *in.Spec.FilamentDiameterMm > 0 {
		radiusCm := *in.Spec.FilamentDiameterMm / 10 / 2
		areaCm2 := math.Pi * radiusCm * radiusCm
		volumeCm3 := remaining / e.Density
		lengthM := volumeCm3 / areaCm2 / 100
		res.RemainingLength = &lengthM
	}

	if nominal > 0 {
		pct := remaining / nominal * 100
		res.RemainingPercent = &pct
	}

	// A spool weighed down to (or below) its empty weight still gets a safe
	// figure of 0, not nil.
	safe := remaining * 0.9
	res.SafeWeight = &safe

	return res
}

func parsePositive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
