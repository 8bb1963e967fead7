package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dstockto/spoolscale/models"
)

func TestRoundAmount(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{10.12, 10.1},
		{10.15, 10.2}, // RoundToEven: 1.5 rounds to 2
		{10.25, 10.2}, // RoundToEven: 2.5 rounds to 2
		{10.04, 10.0},
		{10.05, 10.0}, // RoundToEven: 0.5 rounds to 0
		{10.06, 10.1},
	}

	for _, tt := range tests {
		got := RoundAmount(tt.input)
		if got != tt.expected {
			t.Errorf("RoundAmount(%f) = %f, want %f", tt.input, got, tt.expected)
		}
	}
}

func TestFormatGrams(t *testing.T) {
	if got := FormatGrams(nil); got != "n/a" {
		t.Errorf("FormatGrams(nil) = %q, want n/a", got)
	}

	v := 495.04
	if got := FormatGrams(&v); got != "495.0g" {
		t.Errorf("FormatGrams(495.04) = %q, want 495.0g", got)
	}

	zero := 0.0
	if got := FormatGrams(&zero); got != "0.0g" {
		t.Errorf("FormatGrams(0) = %q, want 0.0g", got)
	}
}

func TestFormatMeters(t *testing.T) {
	if got := FormatMeters(nil); got != "n/a" {
		t.Errorf("FormatMeters(nil) = %q, want n/a", got)
	}

	v := 184.41
	if got := FormatMeters(&v); got != "~184.4m" {
		t.Errorf("FormatMeters(184.41) = %q, want ~184.4m", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(nil); got != "n/a" {
		t.Errorf("FormatPercent(nil) = %q, want n/a", got)
	}

	v := 55.0
	if got := FormatPercent(&v); got != "55.0%" {
		t.Errorf("FormatPercent(55) = %q, want 55.0%%", got)
	}
}

func TestMakeAmazonSearch(t *testing.T) {
	got := makeAmazonSearch("ESUN", "PLA+ 1kg")
	if !strings.HasPrefix(got, "https://www.amazon.com/s?k=") {
		t.Errorf("makeAmazonSearch() = %q, want an amazon search URL", got)
	}
	if !strings.Contains(got, "ESUN") {
		t.Errorf("makeAmazonSearch() = %q, want the brand included", got)
	}
}

func TestPurchaseLinkUsesFirstAlias(t *testing.T) {
	spec := models.SpoolSpec{Brand: "ESUN/Generic", Type: "PLA 1kg"}
	got := purchaseLink(spec)
	if !strings.Contains(got, "ESUN") {
		t.Errorf("purchaseLink() = %q, want the first alias included", got)
	}
	if strings.Contains(got, "Generic") {
		t.Errorf("purchaseLink() = %q, want secondary aliases excluded", got)
	}
}

func TestResolveSources(t *testing.T) {
	oldCfg := Cfg
	defer func() { Cfg = oldCfg }()

	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	Cfg = &Config{
		SpoolSources: []string{"https://spools.test/esun.json"},
		SpoolsDir:    dir,
	}

	got, err := ResolveSources()
	if err != nil {
		t.Fatalf("ResolveSources: %v", err)
	}

	want := []string{
		"https://spools.test/esun.json",
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.json"),
	}
	if len(got) != len(want) {
		t.Fatalf("ResolveSources = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ResolveSources[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveSourcesUnconfigured(t *testing.T) {
	oldCfg := Cfg
	defer func() { Cfg = oldCfg }()

	for _, cfg := range []*Config{nil, {}} {
		Cfg = cfg
		if _, err := ResolveSources(); err == nil {
			t.Errorf("ResolveSources with config %v succeeded, want an error", cfg)
		}
	}
}

func TestNewEstimatorUsesConfigOverrides(t *testing.T) {
	oldCfg := Cfg
	defer func() { Cfg = oldCfg }()

	Cfg = &Config{CoreWeightGrams: 55, FilamentDensity: 1.27}
	est := newEstimator()
	if est.CoreWeightGrams != 55 {
		t.Errorf("CoreWeightGrams = %f, want 55", est.CoreWeightGrams)
	}
	if est.Density != 1.27 {
		t.Errorf("Density = %f, want 1.27", est.Density)
	}

	Cfg = nil
	est = newEstimator()
	if est.CoreWeightGrams != 40 || est.Density != 1.24 {
		t.Errorf("defaults = %f/%f, want 40/1.24", est.CoreWeightGrams, est.Density)
	}
}

func TestNominalSizes(t *testing.T) {
	oldCfg := Cfg
	defer func() { Cfg = oldCfg }()

	Cfg = nil
	got := nominalSizes()
	if len(got) != 3 || got[0] != 250 || got[1] != 1000 || got[2] != 3000 {
		t.Errorf("nominalSizes() = %v, want [250 1000 3000]", got)
	}

	Cfg = &Config{NominalSizes: []float64{500}}
	got = nominalSizes()
	if len(got) != 1 || got[0] != 500 {
		t.Errorf("nominalSizes() = %v, want [500]", got)
	}
}
