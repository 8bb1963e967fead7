package models

import "fmt"

// SpoolAnalysis is the response from the backend's spool image analyzer.
// Every field except notes may be absent when the analyzer cannot tell.
type SpoolAnalysis struct {
	BrandGuess                *string  `json:"brand_guess"`
	MaterialType              *string  `json:"material_type"`
	HolePatternType           *string  `json:"hole_pattern_type"`
	EstimatedEmptyWeightGrams *float64 `json:"estimated_empty_weight_grams"`
	Notes                     string   `json:"notes"`
}

// SpoolContribution is the backend's receipt for a submitted spool
// definition: where the JSON and image landed, plus the spool as stored.
type SpoolContribution struct {
	Id        string    `json:"id"`
	JsonPath  string    `json:"json_path"`
	ImagePath string    `json:"image_path"`
	Spool     SpoolSpec `json:"spool"`
}

func (c SpoolContribution) String() string {
	return fmt.Sprintf("#%s -> %s (image %s)", c.Id, c.JsonPath, c.ImagePath)
}
