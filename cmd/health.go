package cmd

import (
	"errors"

	"github.com/dstockto/spoolscale/api"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// healthCmd pings the backend so scan/contrib failures can be told apart
// from a backend that's simply down.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "check that the backend is reachable",
	RunE:  runHealth,
	Args:  cobra.NoArgs,
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if Cfg == nil || Cfg.ApiBase == "" {
		return errors.New("backend endpoint not configured; set api_base in config")
	}

	if err := api.NewClient(Cfg.ApiBase).Health(cmd.Context()); err != nil {
		color.HiRed("Backend at %s is not healthy: %v\n", Cfg.ApiBase, err)
		cmd.SilenceUsage = true
		return err
	}

	color.Green("Backend at %s is healthy.\n", Cfg.ApiBase)
	return nil
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
