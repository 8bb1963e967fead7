package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/dstockto/spoolscale/catalog"
	"github.com/dstockto/spoolscale/estimator"
	"github.com/dstockto/spoolscale/models"
	"github.com/spf13/cobra"
)

// ResolveSources builds the enumerated catalog source list from config:
// explicit spool_sources first, then the *.json files of spools_dir.
func ResolveSources() ([]string, error) {
	if Cfg == nil {
		return nil, errors.New("no spool sources configured")
	}

	sources := append([]string{}, Cfg.SpoolSources...)

	if Cfg.SpoolsDir != "" {
		expanded, err := catalog.ExpandDir(Cfg.SpoolsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to list spools dir %s: %w", Cfg.SpoolsDir, err)
		}
		sources = append(sources, expanded...)
	}

	if len(sources) == 0 {
		return nil, errors.New("no spool sources configured")
	}

	return sources, nil
}

// loadCatalog resolves the configured sources and loads whatever specs are
// reachable. Individual bad sources are skipped inside catalog.Load.
func loadCatalog(ctx context.Context) ([]models.SpoolSpec, error) {
	sources, err := ResolveSources()
	if err != nil {
		return nil, err
	}
	return catalog.Load(ctx, sources), nil
}

// newEstimator applies the config overrides for the core weight and density
// constants on top of the defaults.
func newEstimator() estimator.Estimator {
	est := estimator.New()
	if Cfg != nil {
		if Cfg.CoreWeightGrams > 0 {
			est.CoreWeightGrams = Cfg.CoreWeightGrams
		}
		if Cfg.FilamentDensity > 0 {
			est.Density = Cfg.FilamentDensity
		}
	}
	return est
}

// nominalSizes returns the configured nominal capacities, falling back to
// the standard 250/1000/3000 set.
func nominalSizes() []float64 {
	if Cfg != nil && len(Cfg.NominalSizes) > 0 {
		return Cfg.NominalSizes
	}
	return estimator.NominalSizes
}

// floatFlag reads a float flag and returns nil when it was not set, so
// optional numeric form fields can be omitted rather than sent as zero.
func floatFlag(cmd *cobra.Command, name string) (*float64, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// RoundAmount rounds a float64 to one decimal place using RoundToEven.
func RoundAmount(amount float64) float64 {
	return math.RoundToEven(amount*10) / 10
}

// FormatGrams renders an optional gram figure, "n/a" when absent.
func FormatGrams(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(RoundAmount(*v), 'f', 1, 64) + "g"
}

// FormatMeters renders an optional length figure, "n/a" when absent.
func FormatMeters(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return "~" + strconv.FormatFloat(RoundAmount(*v), 'f', 1, 64) + "m"
}

// FormatPercent renders an optional percentage, "n/a" when absent.
func FormatPercent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(RoundAmount(*v), 'f', 1, 64) + "%"
}

func makeAmazonSearch(brand string, spoolType string) string {
	q := url.QueryEscape(strings.TrimSpace(brand + " " + spoolType))

	return "https://www.amazon.com/s?k=" + q
}

// Build an iTerm2-compatible OSC 8 hyperlink: label "text" pointing to "link".
// Example format: \x1b]8;;http://example.com\x1b\\This is a link\x1b]8;;\x1b\\
func termLink(text string, link string) string {
	return "\x1b]8;;" + link + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}

func purchaseLink(spec models.SpoolSpec) string {
	// Multi-alias brands search under the first alias only
	brand := spec.Brand
	if aliases := spec.BrandAliases(); len(aliases) > 0 {
		brand = aliases[0]
	}
	search := makeAmazonSearch(brand, spec.Type)
	return termLink(search, search)
}
