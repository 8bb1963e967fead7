package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dstockto/spoolscale/api"
	"github.com/dstockto/spoolscale/models"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// contribCmd represents the contrib command.
var contribCmd = &cobra.Command{
	Use:   "contrib",
	Short: "submit a new spool definition to the catalog backend",
	Long: `Submit a spool definition (with a photo) for inclusion in the shared catalog.
Fields come from flags, or from a YAML draft file via --file; flags win when
both are given. Missing brand or type is prompted for on a terminal.`,
	RunE: runContrib,
}

func runContrib(cmd *cobra.Command, _ []string) error {
	if Cfg == nil || Cfg.ApiBase == "" {
		return errors.New("backend endpoint not configured; set api_base in config")
	}

	draft, err := loadDraft(cmd)
	if err != nil {
		return err
	}

	if err := applyContribFlags(cmd, &draft); err != nil {
		return err
	}

	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
	if err := promptMissingFields(&draft, nonInteractive); err != nil {
		return err
	}

	if draft.Image == "" {
		return errors.New("an image is required; pass --image or set image: in the draft")
	}
	if _, err := os.Stat(draft.Image); err != nil {
		return fmt.Errorf("image not readable: %w", err)
	}

	req := api.ContribRequest{
		Brand:                 draft.Brand,
		Type:                  draft.Type,
		Description:           draft.Description,
		FilamentDiameterMm:    draft.FilamentDiameterMm,
		FilamentWeightGrams:   draft.FilamentWeightGrams,
		EmptySpoolWeightGrams: draft.EmptySpoolWeightGrams,
		Refillable:            draft.Refillable,
		ImagePath:             draft.Image,
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	if dryRun {
		_, err := color.New(color.FgHiYellow).Println("Dry run mode enabled. Nothing will be submitted.")
		if err != nil {
			return err
		}
		printContribPreview(req)
		return nil
	}

	apiClient := api.NewClient(Cfg.ApiBase)
	contribution, err := apiClient.ContribSpool(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("contribution failed: %w", err)
	}

	color.Green("Contribution accepted: %s\n", contribution)
	fmt.Printf(" - %s\n", contribution.Spool)

	return nil
}

// loadDraft reads the YAML draft when --file was given, else starts empty.
func loadDraft(cmd *cobra.Command) (models.ContribDraft, error) {
	var draft models.ContribDraft

	path, err := cmd.Flags().GetString("file")
	if err != nil || path == "" {
		return draft, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return draft, fmt.Errorf("failed to read draft %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &draft); err != nil {
		return draft, fmt.Errorf("failed to parse draft %s: %w", path, err)
	}
	return draft, nil
}

func applyContribFlags(cmd *cobra.Command, draft *models.ContribDraft) error {
	if brand, err := cmd.Flags().GetString("brand"); err == nil && brand != "" {
		draft.Brand = brand
	}
	if spoolType, err := cmd.Flags().GetString("type"); err == nil && spoolType != "" {
		draft.Type = spoolType
	}
	if description, err := cmd.Flags().GetString("description"); err == nil && description != "" {
		draft.Description = description
	}
	if image, err := cmd.Flags().GetString("image"); err == nil && image != "" {
		draft.Image = image
	}
	if cmd.Flags().Changed("refillable") {
		refillable, err := cmd.Flags().GetBool("refillable")
		if err != nil {
			return err
		}
		draft.Refillable = refillable
	}

	for flag, target := range map[string]**float64{
		"diameter":     &draft.FilamentDiameterMm,
		"weight":       &draft.FilamentWeightGrams,
		"empty-weight": &draft.EmptySpoolWeightGrams,
	} {
		v, err := floatFlag(cmd, flag)
		if err != nil {
			return err
		}
		if v != nil {
			*target = v
		}
	}

	return nil
}

// promptMissingFields asks for brand and type when they're absent and a
// terminal is available; otherwise missing required fields are an error.
func promptMissingFields(draft *models.ContribDraft, nonInteractive bool) error {
	required := func(field string) func(string) error {
		return func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	if strings.TrimSpace(draft.Brand) == "" {
		if !isInteractiveAllowed(nonInteractive) {
			return errors.New("a brand is required; pass --brand")
		}
		prompt := promptui.Prompt{Label: "Brand", Validate: required("brand"), Stdout: NoBellStdout}
		brand, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("prompt canceled: %w", err)
		}
		draft.Brand = strings.TrimSpace(brand)
	}

	if strings.TrimSpace(draft.Type) == "" {
		if !isInteractiveAllowed(nonInteractive) {
			return errors.New("a type is required; pass --type")
		}
		prompt := promptui.Prompt{Label: "Type", Validate: required("type"), Stdout: NoBellStdout}
		spoolType, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("prompt canceled: %w", err)
		}
		draft.Type = strings.TrimSpace(spoolType)
	}

	return nil
}

func printContribPreview(req api.ContribRequest) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("%s: %s\n", bold("Brand"), req.Brand)
	fmt.Printf("%s: %s\n", bold("Type"), req.Type)
	if req.Description != "" {
		fmt.Printf("%s: %s\n", bold("Description"), req.Description)
	}
	if req.FilamentDiameterMm != nil {
		fmt.Printf("%s: %.2fmm\n", bold("Diameter"), *req.FilamentDiameterMm)
	}
	fmt.Printf("%s: %s\n", bold("Nominal"), FormatGrams(req.FilamentWeightGrams))
	fmt.Printf("%s: %s\n", bold("Empty"), FormatGrams(req.EmptySpoolWeightGrams))
	fmt.Printf("%s: %t\n", bold("Refillable"), req.Refillable)
	fmt.Printf("%s: %s\n", bold("Image"), req.ImagePath)
}

func init() {
	rootCmd.AddCommand(contribCmd)

	contribCmd.Flags().StringP("file", "f", "", "YAML draft file with the spool definition")
	contribCmd.Flags().StringP("brand", "b", "", "spool brand (aliases joined with '/')")
	contribCmd.Flags().StringP("type", "t", "", "variant label, e.g. 'PLA+ 1kg'")
	contribCmd.Flags().String("description", "", "free-text description")
	contribCmd.Flags().StringP("image", "i", "", "path to a spool photo")
	contribCmd.Flags().Float64("diameter", 0, "filament diameter in mm")
	contribCmd.Flags().Float64("weight", 0, "nominal filament weight in grams")
	contribCmd.Flags().Float64("empty-weight", 0, "empty spool weight in grams")
	contribCmd.Flags().Bool("refillable", false, "spool is a refillable master spool")
	contribCmd.Flags().BoolP("dry-run", "d", false, "show what would be submitted, but don't submit")
	contribCmd.Flags().Bool("non-interactive", false, "never prompt; fail when required fields are missing")
}
