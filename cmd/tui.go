package cmd

import (
	"errors"

	"github.com/dstockto/spoolscale/tui"
	"github.com/spf13/cobra"
)

// interactiveCmd represents the interactive command.
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "full-screen live estimator",
	Long: `Open the full-screen estimator. Filter the catalog, pick a spool, and type
the scale reading; the remaining weight, length, and safe figure update as
you type.`,
	RunE:    runInteractive,
	Aliases: []string{"i"},
	Args:    cobra.NoArgs,
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	if !isInteractiveAllowed(false) {
		return errors.New("the live estimator needs a terminal")
	}

	specs, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return errors.New("the spool catalog is empty; check spool_sources and spools_dir in config")
	}

	return tui.Run(specs, newEstimator(), nominalSizes())
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
