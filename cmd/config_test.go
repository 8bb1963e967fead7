package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMergeInto(t *testing.T) {
	dst := &Config{
		ApiBase:         "http://localhost:8000",
		SpoolsDir:       "./spools",
		SpoolSources:    []string{"a.json"},
		CoreWeightGrams: 40,
		NominalSizes:    []float64{250, 1000},
	}

	src := &Config{
		ApiBase:         "http://spools.example.com",
		SpoolSources:    []string{"b.json"},
		FilamentDensity: 1.27,
		NominalSizes:    []float64{500, 2000},
	}

	mergeInto(dst, src)

	if dst.ApiBase != "http://spools.example.com" {
		t.Errorf("expected ApiBase to be %q, got %q", "http://spools.example.com", dst.ApiBase)
	}

	// src didn't set these; the earlier layer's values survive
	if dst.SpoolsDir != "./spools" {
		t.Errorf("expected SpoolsDir to be %q, got %q", "./spools", dst.SpoolsDir)
	}
	if dst.CoreWeightGrams != 40 {
		t.Errorf("expected CoreWeightGrams to be 40, got %f", dst.CoreWeightGrams)
	}

	if dst.FilamentDensity != 1.27 {
		t.Errorf("expected FilamentDensity to be 1.27, got %f", dst.FilamentDensity)
	}

	// sources accumulate across layers
	expectedSources := []string{"a.json", "b.json"}
	if len(dst.SpoolSources) != len(expectedSources) {
		t.Fatalf("expected SpoolSources to have %d elements, got %d", len(expectedSources), len(dst.SpoolSources))
	}
	for i, v := range expectedSources {
		if dst.SpoolSources[i] != v {
			t.Errorf("expected SpoolSources[%d] to be %q, got %q", i, v, dst.SpoolSources[i])
		}
	}

	// nominal sizes replace: the last layer wins
	if len(dst.NominalSizes) != 2 || dst.NominalSizes[0] != 500 || dst.NominalSizes[1] != 2000 {
		t.Errorf("expected NominalSizes to be [500 2000], got %v", dst.NominalSizes)
	}
}

func TestMergeIntoNilSafe(t *testing.T) {
	dst := &Config{ApiBase: "http://localhost:8000"}
	mergeInto(dst, nil)
	mergeInto(nil, dst)

	if dst.ApiBase != "http://localhost:8000" {
		t.Errorf("expected ApiBase to survive nil merges, got %q", dst.ApiBase)
	}
}

func TestLoadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	configContent := `{
		"api_base": "http://api.test",
		"spools_dir": "/srv/spools",
		"spool_sources": ["https://spools.test/esun.json"],
		"core_weight_grams": 55,
		"filament_density": 1.27
	}`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write temp config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.ApiBase != "http://api.test" {
		t.Errorf("expected ApiBase %q, got %q", "http://api.test", cfg.ApiBase)
	}
	if cfg.SpoolsDir != "/srv/spools" {
		t.Errorf("expected SpoolsDir %q, got %q", "/srv/spools", cfg.SpoolsDir)
	}
	if len(cfg.SpoolSources) != 1 || cfg.SpoolSources[0] != "https://spools.test/esun.json" {
		t.Errorf("expected one spool source, got %v", cfg.SpoolSources)
	}
	if cfg.CoreWeightGrams != 55 {
		t.Errorf("expected CoreWeightGrams 55, got %f", cfg.CoreWeightGrams)
	}
	if cfg.FilamentDensity != 1.27 {
		t.Errorf("expected FilamentDensity 1.27, got %f", cfg.FilamentDensity)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{"api_base":`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("expected an error for malformed config JSON")
	}
}

func TestExists(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "present")
	if err := os.WriteFile(tmpFile, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !exists(tmpFile) {
		t.Errorf("exists(%q) returned false, want true", tmpFile)
	}

	if exists(tmpFile + "-nonexistent") {
		t.Error("exists() returned true for nonexistent file, want false")
	}

	if exists("") {
		t.Error("exists(\"\") returned true, want false")
	}
}
