package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dstockto/spoolscale/catalog"
	"github.com/dstockto/spoolscale/models"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// isInteractiveAllowed returns true when the user did not disable interaction
// via flag and when the process is attached to a TTY suitable for prompting.
func isInteractiveAllowed(nonInteractive bool) bool {
	if nonInteractive {
		return false
	}
	// Require stdin, stdout, and stderr to be terminals and TERM to be sane
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "" || term == "dumb" {
		return false
	}
	return true
}

// selectSpecInteractively shows a selectable list of spool specs and returns
// the chosen one. If the user cancels the prompt (Esc or Ctrl+C), canceled is
// true. initialTerm is the user's original query. If initialCandidates is
// non-empty, they are shown first, followed by the rest of the catalog.
func selectSpecInteractively(all []models.SpoolSpec, initialTerm string, initialCandidates []models.SpoolSpec, forceSimple bool) (models.SpoolSpec, bool, error) {
	if len(all) == 0 {
		return models.SpoolSpec{}, false, fmt.Errorf("no spools available to select from")
	}

	// Build ordered candidates: initial matches first (unique), then the rest.
	// Specs carry no IDs, so brand+type is the identity here.
	seen := map[string]struct{}{}
	candidates := make([]models.SpoolSpec, 0, len(all))
	for _, s := range initialCandidates {
		key := s.DisplayName()
		if _, ok := seen[key]; !ok {
			candidates = append(candidates, s)
			seen[key] = struct{}{}
		}
	}
	for _, s := range all {
		key := s.DisplayName()
		if _, ok := seen[key]; !ok {
			candidates = append(candidates, s)
			seen[key] = struct{}{}
		}
	}

	// When user forces --simple-select, limit choices to the initial ambiguous matches only.
	if forceSimple {
		initOnly := make([]models.SpoolSpec, 0, len(initialCandidates))
		seenInit := map[string]struct{}{}
		for _, s := range initialCandidates {
			key := s.DisplayName()
			if _, ok := seenInit[key]; !ok {
				initOnly = append(initOnly, s)
				seenInit[key] = struct{}{}
			}
		}
		if len(initOnly) == 0 {
			return models.SpoolSpec{}, true, fmt.Errorf("no spools matched the original search for simple selector")
		}
		return selectSpecSimple(initOnly, initialTerm)
	}

	// Prepare string items without ANSI for stability
	items := make([]string, len(candidates))
	for i, it := range candidates {
		items[i] = it.DisplayName()
	}

	searcher := func(input string, index int) bool {
		item := candidates[index]
		needle := strings.TrimSpace(input)
		if needle == "" {
			return true
		}
		if len(catalog.Filter([]models.SpoolSpec{item}, needle)) > 0 {
			return true
		}
		return strings.Contains(strings.ToLower(item.Type), strings.ToLower(needle))
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✔ {{ . | green }}",
	}

	label := "Select the intended spool (type to filter; Esc to cancel)"
	if strings.TrimSpace(initialTerm) != "" {
		label = fmt.Sprintf("Select the intended spool for '%s' (type to filter; Esc to cancel)", initialTerm)
	}

	prompt := promptui.Select{
		Label:             label,
		Items:             items,
		Templates:         templates,
		Size:              12,
		Searcher:          searcher,
		StartInSearchMode: true,
		Stdin:             os.Stdin,
		Stdout:            NoBellStdout,
	}

	idx, _, perr := prompt.Run()
	if perr != nil {
		if perr == promptui.ErrInterrupt || perr == promptui.ErrAbort {
			return models.SpoolSpec{}, true, nil
		}
		// Fall back to simple selector on unexpected prompt errors
		return selectSpecSimple(candidates, initialTerm)
	}

	return candidates[idx], false, nil
}

// selectSpecSimple provides a numbered list over basic stdin without cursor
// control. User types a number or presses Enter to cancel.
func selectSpecSimple(candidates []models.SpoolSpec, initialTerm string) (models.SpoolSpec, bool, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Multiple spools match; please choose one:")
	if strings.TrimSpace(initialTerm) != "" {
		fmt.Printf("(for '%s')\n", initialTerm)
	}
	for i, s := range candidates {
		fmt.Printf("%2d) %s\n", i+1, s.String())
	}
	fmt.Print("Enter number to select, or press Enter to cancel: ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return models.SpoolSpec{}, true, nil
	}
	for idx := range candidates {
		if line == fmt.Sprintf("%d", idx+1) {
			return candidates[idx], false, nil
		}
	}
	return models.SpoolSpec{}, true, fmt.Errorf("invalid selection: %q", line)
}
