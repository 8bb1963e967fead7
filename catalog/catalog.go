// Package catalog loads and indexes the read-only spool specification
// catalog. Sources are static JSON files, one spool per file, addressed by
// local path or http(s) URL.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dstockto/spoolscale/models"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// Load fetches every source independently and returns the specs that loaded
// cleanly, in source order. A source that is missing, unreachable, or
// malformed is skipped; a partial (even empty) catalog is a normal degraded
// state, not an error.
func Load(ctx context.Context, sources []string) []models.SpoolSpec {
	loaded := make([]*models.SpoolSpec, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src string) {
			defer wg.Done()
			spec, err := loadSource(ctx, src)
			if err != nil {
				return
			}
			loaded[i] = spec
		}(i, src)
	}
	wg.Wait()

	specs := make([]models.SpoolSpec, 0, len(sources))
	for _, s := range loaded {
		if s != nil {
			specs = append(specs, *s)
		}
	}
	return specs
}

func loadSource(ctx context.Context, src string) (*models.SpoolSpec, error) {
	var (
		b   []byte
		err error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		b, err = fetchURL(ctx, src)
	} else {
		b, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, err
	}

	var spec models.SpoolSpec
	if err := json.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}
	return &spec, nil
}

func fetchURL(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid source url: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", src, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ExpandDir lists the *.json files directly under dir, in lexical order, so
// a spools directory can stand in for an explicit source list.
func ExpandDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read spools dir: %w", err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

// GroupByBrand indexes specs under each of their expanded brand aliases,
// preserving insertion order per alias. A spec with brand "ESUN/Generic"
// appears under both "ESUN" and "Generic".
func GroupByBrand(specs []models.SpoolSpec) map[string][]models.SpoolSpec {
	groups := make(map[string][]models.SpoolSpec)
	for _, s := range specs {
		for _, alias := range s.BrandAliases() {
			groups[alias] = append(groups[alias], s)
		}
	}
	return groups
}

// Brands returns the group keys sorted for stable display.
func Brands(groups map[string][]models.SpoolSpec) []string {
	brands := make([]string, 0, len(groups))
	for b := range groups {
		brands = append(brands, b)
	}
	sort.Strings(brands)
	return brands
}

// Filter returns the specs whose brand matches the query. An empty or
// whitespace query returns the input unchanged. A spec matches when the
// lower-cased query is a substring of any of its aliases, or a subsequence
// of one; subsequence matching deliberately trades precision for recall so
// typos and partial brand names still hit.
func Filter(specs []models.SpoolSpec, query string) []models.SpoolSpec {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return specs
	}

	var out []models.SpoolSpec
	for _, s := range specs {
		if matchesBrand(s, q) {
			out = append(out, s)
		}
	}
	return out
}

func matchesBrand(s models.SpoolSpec, query string) bool {
	for _, alias := range s.BrandAliases() {
		lower := strings.ToLower(alias)
		if strings.Contains(lower, query) || isSubsequence(query, lower) {
			return true
		}
	}
	return false
}

// isSubsequence reports whether every rune of needle appears in haystack in
// order, not necessarily contiguously.
func isSubsequence(needle, haystack string) bool {
	if needle == "" {
		return true
	}
	runes := []rune(needle)
	i := 0
	for _, r := range haystack {
		if r == runes[i] {
			i++
			if i == len(runes) {
				return true
			}
		}
	}
	return false
}
