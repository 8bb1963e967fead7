/*
Copyright © 2025 David Stockton <dave@davidstockton.com>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/dstockto/spoolscale/catalog"
	"github.com/dstockto/spoolscale/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// brandsCmd represents the brands command.
var brandsCmd = &cobra.Command{
	Use:   "brands [query]",
	Short: "list catalog spools grouped by brand",
	Long: `List the spool catalog grouped by brand. An optional query narrows the list;
matching is forgiving (substring or in-order characters), so 'esn' still finds ESUN.`,
	RunE:    runBrands,
	Aliases: []string{"b", "list"},
}

func runBrands(cmd *cobra.Command, args []string) error {
	specs, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	specs = catalog.Filter(specs, query)

	var filters []SpecFilter

	if refillable, err := cmd.Flags().GetBool("refillable"); err == nil && refillable {
		filters = append(filters, refillableOnly)
	}

	// The catalog has no diameter grouping, so we filter manually
	diameter, err := cmd.Flags().GetString("diameter")
	if err != nil {
		return fmt.Errorf("failed to get diameter flag: %w", err)
	}

	switch diameter {
	case "*":
		filters = append(filters, noFilter)
	case "2.85":
		filters = append(filters, ultimakerSpools)
	default:
		filters = append(filters, standardSpools)
	}

	specs = filterSpecs(specs, aggregateFilter(filters...))

	groups := catalog.GroupByBrand(specs)
	brands := catalog.Brands(groups)

	if len(brands) == 0 {
		if strings.TrimSpace(query) == "" {
			color.HiRed("The catalog is empty.\n")
		} else {
			color.HiRed("No spools matched '%s'.\n", query)
		}
		return nil
	}

	for _, brand := range brands {
		group := groups[brand]
		color.Green("%s (%d):\n", brand, len(group))
		for _, s := range group {
			fmt.Printf(" - %s\n", s)
		}
	}

	bold := color.New(color.Bold).SprintFunc()
	specPlural := "specs"
	if len(specs) == 1 {
		specPlural = "spec"
	}
	fmt.Printf("\n%s: %d %s across %d brands\n", bold("Summary"), len(specs), specPlural, len(brands))

	return nil
}

func init() {
	rootCmd.AddCommand(brandsCmd)

	brandsCmd.Flags().StringP("diameter", "d", "1.75", "filter by filament diameter, default is 1.75mm, '*' for all")
	brandsCmd.Flags().BoolP("refillable", "r", false, "show only refillable spools")
}

// SpecFilter selects catalog specs a command cares about.
type SpecFilter func(models.SpoolSpec) bool

// noFilter returns true for all specs.
func noFilter(_ models.SpoolSpec) bool {
	return true
}

// standardSpools returns true for 1.75 mm filament, and for specs that don't
// state a diameter at all.
func standardSpools(spec models.SpoolSpec) bool {
	return spec.FilamentDiameterMm == nil || *spec.FilamentDiameterMm == 1.75
}

// ultimakerSpools returns true for Ultimaker-style 2.85 mm filament.
func ultimakerSpools(spec models.SpoolSpec) bool {
	return spec.FilamentDiameterMm != nil && *spec.FilamentDiameterMm == 2.85
}

// refillableOnly returns true for master-spool style refillable specs.
func refillableOnly(spec models.SpoolSpec) bool {
	return spec.Refillable
}

// aggregateFilter returns a function that returns true if all given filters return true.
func aggregateFilter(filters ...SpecFilter) SpecFilter {
	return func(s models.SpoolSpec) bool {
		for _, f := range filters {
			if !f(s) {
				return false
			}
		}

		return true
	}
}

func filterSpecs(specs []models.SpoolSpec, filter SpecFilter) []models.SpoolSpec {
	if filter == nil {
		return specs
	}
	var filtered []models.SpoolSpec
	for _, s := range specs {
		if filter(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
