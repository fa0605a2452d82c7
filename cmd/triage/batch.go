package main

import (
	"fmt"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/ticket-triage/internal/engine"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <ticket-id>...",
		Short: "Analyze many tickets concurrently",
		Long: `Analyze a set of tickets on a bounded worker pool and print a
summary line for each. Failed analyses are reported at the end without
aborting the rest of the batch.

Examples:
  triage batch 4821 4822 4830
  triage batch 4821 4822 --workers 10 --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().Int("workers", 5, "Number of concurrent analyses")
	cmd.Flags().Bool("dry-run", false, "Skip execution of automatic actions")
	cmd.Flags().Bool("verbose", false, "Print full reports instead of summary lines")

	_ = viper.BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("batch.dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("batch.verbose", cmd.Flags().Lookup("verbose"))

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ids, err := parseTicketIDs(args)
	if err != nil {
		return err
	}

	deps, err := buildDeps(ctx, !viper.GetBool("batch.dry_run"))
	if err != nil {
		return err
	}
	defer deps.close()

	bar := progressbar.NewOptions(len(ids),
		progressbar.OptionSetDescription("Analyzing tickets"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	results := deps.engine.AnalyzeBatch(ctx, ids, viper.GetInt("batch.workers"), func(engine.BatchResult) {
		_ = bar.Add(1)
	})
	_ = bar.Finish()

	verbose := viper.GetBool("batch.verbose")
	failures := 0
	for _, res := range results {
		if res.Err != nil {
			failures++
			fmt.Printf("Ticket #%d: FAILED: %v\n", res.TicketID, res.Err)
			continue
		}
		if verbose {
			printReport(res.Report)
			fmt.Println()
			continue
		}
		fmt.Printf("Ticket #%d: %s | pending on %s | %d action(s)\n",
			res.TicketID,
			strings.Join(res.Report.Classification.CategoryPath, " / "),
			res.Report.Pending.Primary,
			len(res.Report.Actions))
	}

	fmt.Printf("\nAnalyzed %d ticket(s), %d failed\n", len(results), failures)
	if failures > 0 {
		return fmt.Errorf("%d of %d analyses failed", failures, len(results))
	}
	return nil
}
