package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <ticket-id>",
		Short: "Analyze a single ticket",
		Long: `Analyze one ticket end to end: classification, pending source,
parent/child aggregation, and escalation actions.

Examples:
  triage analyze 4821            # Analyze and execute automatic actions
  triage analyze 4821 --dry-run  # Analyze without executing anything
  triage analyze 4821 --json     # Emit the raw report as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().Bool("dry-run", false, "Skip execution of automatic actions")
	cmd.Flags().Bool("json", false, "Emit the report as JSON")

	_ = viper.BindPFlag("analyze.dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("analyze.json", cmd.Flags().Lookup("json"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ids, err := parseTicketIDs(args)
	if err != nil {
		return err
	}

	deps, err := buildDeps(ctx, !viper.GetBool("analyze.dry_run"))
	if err != nil {
		return err
	}
	defer deps.close()

	report, err := deps.engine.AnalyzeTicket(ctx, ids[0])
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if viper.GetBool("analyze.json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printReport(report)
	return nil
}
