package cmd

import (
	"errors"
	"fmt"

	"github.com/dstockto/spoolscale/api"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan <image...>",
	Short: "analyze spool photos through the backend",
	Long: `Upload one or more spool photos to the analyzer backend. The backend guesses
the brand, material, hub hole pattern, and empty weight where it can; anything
it can't tell stays blank.`,
	RunE: runScan,
	Args: cobra.MinimumNArgs(1),
}

func runScan(cmd *cobra.Command, args []string) error {
	if Cfg == nil || Cfg.ApiBase == "" {
		return errors.New("backend endpoint not configured; set api_base in config")
	}

	apiClient := api.NewClient(Cfg.ApiBase)

	var errs error
	for _, path := range args {
		analysis, err := apiClient.AnalyzeSpoolImage(cmd.Context(), path)
		if err != nil {
			color.HiRed("Failed to analyze %s: %v\n", path, err)
			errs = errors.Join(errs, fmt.Errorf("analyze %s: %w", path, err))
			continue
		}

		bold := color.New(color.Bold).SprintFunc()
		color.Green("Analyzed %s:\n", path)
		fmt.Printf(" - %s: %s\n", bold("Brand"), stringOrUnknown(analysis.BrandGuess))
		fmt.Printf(" - %s: %s\n", bold("Material"), stringOrUnknown(analysis.MaterialType))
		fmt.Printf(" - %s: %s\n", bold("Hole pattern"), stringOrUnknown(analysis.HolePatternType))
		fmt.Printf(" - %s: %s\n", bold("Empty weight"), FormatGrams(analysis.EstimatedEmptyWeightGrams))
		if analysis.Notes != "" {
			fmt.Printf(" - %s: %s\n", bold("Notes"), analysis.Notes)
		}
	}

	cmd.SilenceUsage = true
	return errs
}

func stringOrUnknown(s *string) string {
	if s == nil || *s == "" {
		return "unknown"
	}
	return *s
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
