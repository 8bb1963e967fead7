package models

// ContribDraft is a spool contribution written out ahead of time as a YAML
// file, so a submission can be prepared offline and reviewed before sending.
// Flags given on the command line override draft values.
type ContribDraft struct {
	Brand                 string   `yaml:"brand"`
	Type                  string   `yaml:"type"`
	Description           string   `yaml:"description,omitempty"`
	FilamentDiameterMm    *float64 `yaml:"filament_diameter_mm,omitempty"`
	FilamentWeightGrams   *float64 `yaml:"filament_weight_grams,omitempty"`
	EmptySpoolWeightGrams *float64 `yaml:"empty_spool_weight_grams,omitempty"`
	Refillable            bool     `yaml:"refillable,omitempty"`
	Image                 string   `yaml:"image,omitempty"`
}
