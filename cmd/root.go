/*
Copyright © 2025 David Stockton <dave@davidstockton.com>
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Config represents the structure of the config.json file
// Example at project root: config.json
//
//	{
//	  "api_base": "http://localhost:8000",
//	  "spools_dir": "./spools",
//	  "spool_sources": ["https://example.com/spools/esun-pla-1kg.json"]
//	}
//
// Add fields here as config grows.
type Config struct {
	ApiBase         string    `json:"api_base"`
	SpoolsDir       string    `json:"spools_dir"`
	SpoolSources    []string  `json:"spool_sources"`
	CoreWeightGrams float64   `json:"core_weight_grams"`
	FilamentDensity float64   `json:"filament_density"`
	NominalSizes    []float64 `json:"nominal_sizes"`
}

// Cfg holds the loaded configuration and is available to all commands.
var Cfg *Config

// cfgFile is set from --config flag.
var cfgFile string

// noColor toggles ANSI color output off when set via --no-color flag.
var noColor bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "spoolscale",
	Short: "Spoolscale estimates remaining filament from a kitchen-scale weight",
	Long: `Spoolscale estimates how much filament is left on a 3D-printer spool.
Weigh the spool, pick its specification from the catalog, and spoolscale works
out the remaining weight, length, and a conservative safe figure.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Apply color preference as early as possible, but only disable if the flag is set
		if noColor {
			color.NoColor = true
		}

		// Load config only once; subsequent subcommands in the chain need not reload
		if Cfg != nil {
			return nil
		}
		// Determine path: explicit flag takes precedence; else try merge from standard locations
		if cfgFile != "" {
			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config from %s: %w", cfgFile, err)
			}
			Cfg = cfg

			return nil
		}

		cfg, err := LoadMergedConfig()
		if err != nil {
			return fmt.Errorf("unable to load config: %w", err)
		}
		// Config is optional; only set if any file existed
		if cfg != nil {
			Cfg = cfg
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// LoadConfig reads and parses JSON config from the given path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("json config parsing error: %w", err)
	}

	return &c, nil
}

func exists(path string) bool {
	if path == "" {
		return false
	}

	_, err := os.Stat(path)

	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

//nolint:gochecknoinits
func init() {
	// Global config flag for all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (config.json)")
	// Global color toggle
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")
}

// LoadMergedConfig attempts to load and merge configs from standard locations when no explicit --config is provided.
// Precedence (later overrides earlier):
//  1. $HOME/.config/spoolscale/config.json
//  2. $XDG_CONFIG_HOME/spoolscale/config.json
//  3. ./config.json (current working directory)
//
// If none exist, returns (nil, nil).
func LoadMergedConfig() (*Config, error) {
	paths := discoverConfigPaths()
	if len(paths) == 0 {
		return nil, nil
	}

	merged := &Config{}

	for _, p := range paths {
		c, err := LoadConfig(p)
		if err != nil {
			return nil, fmt.Errorf("failed loading %s: %w", p, err)
		}

		mergeInto(merged, c)
	}

	return merged, nil
}

// discoverConfigPaths returns existing config paths in merge order.
func discoverConfigPaths() []string {
	var out []string
	// 1) HOME
	if home, _ := os.UserHomeDir(); home != "" {
		p := filepath.Join(home, ".config", "spoolscale", "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}
	// 2) XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		p := filepath.Join(xdg, "spoolscale", "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}
	// 3) CWD
	if cwd, _ := os.Getwd(); cwd != "" {
		p := filepath.Join(cwd, "config.json")
		if exists(p) {
			out = append(out, p)
		}
	}

	return out
}

// mergeInto copies non-zero values and slices from src into dst.
// Slices are appended so layered configs can contribute sources.
func mergeInto(dst, src *Config) {
	if src == nil || dst == nil {
		return
	}

	if src.ApiBase != "" {
		dst.ApiBase = src.ApiBase
	}

	if src.SpoolsDir != "" {
		dst.SpoolsDir = src.SpoolsDir
	}

	if src.CoreWeightGrams > 0 {
		dst.CoreWeightGrams = src.CoreWeightGrams
	}

	if src.FilamentDensity > 0 {
		dst.FilamentDensity = src.FilamentDensity
	}
	// slices
	if src.SpoolSources != nil {
		// append to allow layered config; duplicates are acceptable
		dst.SpoolSources = append(dst.SpoolSources, src.SpoolSources...)
	}

	if src.NominalSizes != nil {
		// nominal sizes replace rather than accumulate; the last layer wins
		dst.NominalSizes = src.NominalSizes
	}
}
