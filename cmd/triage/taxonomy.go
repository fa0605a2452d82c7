package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/ticket-triage/internal/config"
	"github.com/Veraticus/ticket-triage/internal/taxonomy"
)

func taxonomyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomy",
		Short: "Validate and print the loaded classification taxonomy",
		Long: `Load the taxonomy (built-in defaults plus any overrides from the
configured taxonomy file), validate it, and print the compiled category
tiers, pending-source candidates, and escalation matrices.`,
		Args: cobra.NoArgs,
		RunE: runTaxonomy,
	}
}

func runTaxonomy(_ *cobra.Command, _ []string) error {
	store, err := taxonomy.Load(config.ExpandPath(viper.GetString("taxonomy.file")))
	if err != nil {
		return fmt.Errorf("taxonomy is invalid: %w", err)
	}

	fmt.Println("Taxonomy OK")
	fmt.Println()

	fmt.Printf("Common requests (%d):\n", len(store.CommonRequests()))
	for _, entry := range store.CommonRequests() {
		fmt.Printf("  %s -> %s\n", entry.Name, strings.Join(entry.CategoryPath, " / "))
	}

	fmt.Printf("Support issues (%d):\n", len(store.SupportIssues()))
	for _, entry := range store.SupportIssues() {
		fmt.Printf("  %s -> %s\n", entry.Name, strings.Join(entry.CategoryPath, " / "))
	}

	fmt.Printf("Claims (%d):\n", len(store.Claims()))
	for _, entry := range store.Claims() {
		fmt.Printf("  %s -> %s\n", entry.Name, strings.Join(entry.CategoryPath, " / "))
	}

	fmt.Printf("Endorsement lines (%d):\n", len(store.Endorsements()))
	for _, line := range store.Endorsements() {
		fmt.Printf("  %s (misc subtypes: %d)\n", line.Line, len(line.Misc))
	}

	fmt.Printf("Pending-source candidates (%d):\n", len(store.Sources()))
	for _, src := range store.Sources() {
		fmt.Printf("  %s (%d keywords, %d patterns)\n",
			src.Source, len(src.Keywords), len(src.Patterns))
	}

	fmt.Println("Escalation matrices:")
	for _, category := range []string{"Claim", "Endorsement", "Support Issue", "Service Request", "default"} {
		matrix := store.MatrixFor(category)
		thresholds := make([]string, 0, len(matrix.Levels))
		for _, level := range matrix.Levels {
			thresholds = append(thresholds, fmt.Sprintf("%.0fh", level.ThresholdHours))
		}
		fmt.Printf("  %-16s %s\n", category, strings.Join(thresholds, " / "))
	}

	return nil
}
