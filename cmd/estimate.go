/*
Copyright © 2025 David Stockton <dave@davidstockton.com>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dstockto/spoolscale/catalog"
	"github.com/dstockto/spoolscale/estimator"
	"github.com/dstockto/spoolscale/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// estimateCmd represents the estimate command.
var estimateCmd = &cobra.Command{
	Use:   "estimate [brand query]",
	Short: "estimate remaining filament from a measured spool weight",
	Long: `Estimate how much filament is left on a spool. Weigh the whole spool on a
kitchen scale, then pass the reading with --weight. The brand query narrows the
catalog; when several specs still match you'll be asked to pick one.`,
	RunE:    runEstimate,
	Aliases: []string{"e", "est"},
}

func runEstimate(cmd *cobra.Command, args []string) error {
	weight, err := cmd.Flags().GetString("weight")
	if err != nil {
		return err
	}
	if strings.TrimSpace(weight) == "" {
		return errors.New("a measured weight is required; pass it with --weight")
	}

	specs, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return errors.New("the spool catalog is empty; check spool_sources and spools_dir in config")
	}

	query := strings.Join(args, " ")
	matches := catalog.Filter(specs, query)

	if typeQuery, err := cmd.Flags().GetString("type"); err == nil && typeQuery != "" {
		matches = filterSpecs(matches, typeContains(typeQuery))
	}

	spec, err := pickSpec(cmd, specs, matches, query)
	if err != nil {
		return err
	}
	if spec == nil {
		// selection canceled
		return nil
	}

	includeCore, err := cmd.Flags().GetBool("include-core")
	if err != nil {
		return err
	}
	// Stale core inclusion must never apply to a spool that doesn't support it.
	if includeCore && !spec.Refillable {
		color.Yellow("This spool is not refillable; ignoring --include-core.\n")
		includeCore = false
	}

	nominal, err := cmd.Flags().GetString("nominal")
	if err != nil {
		return err
	}

	est := newEstimator()
	result := est.Estimate(estimator.Input{
		Spec:            spec,
		NominalOverride: nominal,
		IncludeCore:     includeCore,
		MeasuredWeight:  weight,
	})

	if result.RemainingWeight == nil {
		return fmt.Errorf("measured weight must be a positive number of grams, got %q", weight)
	}

	printEstimate(*spec, est, includeCore, weight, result)

	if showPurchase, err := cmd.Flags().GetBool("purchase"); err == nil && showPurchase {
		fmt.Printf("Buy again: %s\n", purchaseLink(*spec))
	}

	return nil
}

// pickSpec narrows the matches to a single spec, going interactive when the
// query was ambiguous. A nil spec with nil error means the user canceled.
func pickSpec(cmd *cobra.Command, all []models.SpoolSpec, matches []models.SpoolSpec, query string) (*models.SpoolSpec, error) {
	if len(matches) == 1 {
		return &matches[0], nil
	}

	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
	forceSimple, _ := cmd.Flags().GetBool("simple-select")

	if len(matches) == 0 {
		color.HiRed("No spools matched '%s'.\n", query)
		if !isInteractiveAllowed(nonInteractive) {
			return nil, fmt.Errorf("no spools matched '%s'", query)
		}
		// Offer the whole catalog instead of giving up.
		matches = nil
	}

	if !isInteractiveAllowed(nonInteractive) {
		fmt.Printf("Multiple spools match '%s':\n", query)
		for _, s := range matches {
			fmt.Printf(" - %s\n", s)
		}
		return nil, fmt.Errorf("%d spools matched '%s'; refine the query or drop --non-interactive", len(matches), query)
	}

	selected, canceled, err := selectSpecInteractively(all, query, matches, forceSimple)
	if err != nil {
		return nil, err
	}
	if canceled {
		fmt.Println("Selection canceled.")
		return nil, nil
	}
	return &selected, nil
}

func printEstimate(spec models.SpoolSpec, est estimator.Estimator, includeCore bool, weight string, result estimator.Result) {
	fmt.Printf("Spool:     %s\n", spec)

	empty := 0.0
	if spec.EmptySpoolWeightGrams != nil {
		empty = *spec.EmptySpoolWeightGrams
	}
	coreNote := ""
	if includeCore && spec.Refillable {
		coreNote = fmt.Sprintf(" + %.0fg core", est.CoreWeightGrams)
		empty += est.CoreWeightGrams
	}
	fmt.Printf("Measured:  %sg on a %.0fg empty spool%s\n", strings.TrimSpace(weight), empty, coreNote)

	bold := color.New(color.Bold).SprintFunc()
	remaining := FormatGrams(result.RemainingWeight)
	if result.RemainingPercent != nil {
		remaining = fmt.Sprintf("%s (%s)", remaining, FormatPercent(result.RemainingPercent))
	}

	if *result.RemainingWeight == 0 {
		color.HiRed("%s: %s\n", bold("Remaining"), remaining)
	} else {
		color.Green("%s: %s\n", bold("Remaining"), remaining)
	}
	fmt.Printf("%s:      %s\n", bold("Safe"), FormatGrams(result.SafeWeight))
	if result.RemainingLength != nil {
		fmt.Printf("%s:    %s\n", bold("Length"), FormatMeters(result.RemainingLength))
	}
}

// typeContains matches the variant label case-insensitively.
func typeContains(query string) SpecFilter {
	lowerQuery := strings.ToLower(strings.TrimSpace(query))

	return func(s models.SpoolSpec) bool {
		return strings.Contains(strings.ToLower(s.Type), lowerQuery)
	}
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().StringP("weight", "w", "", "measured total spool weight in grams")
	estimateCmd.Flags().StringP("nominal", "n", "", "override the nominal filament weight (e.g. 250, 1000, 3000)")
	estimateCmd.Flags().StringP("type", "t", "", "narrow matches by variant label")
	estimateCmd.Flags().Bool("include-core", false, "add the loose core weight (refillable spools only)")
	estimateCmd.Flags().Bool("purchase", false, "show a purchase link for the spool")
	estimateCmd.Flags().Bool("simple-select", false, "use the plain numbered selector instead of the search prompt")
	estimateCmd.Flags().Bool("non-interactive", false, "never prompt; fail when the query is ambiguous")
}
