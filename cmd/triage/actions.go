package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func actionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions <ticket-id>",
		Short: "Show the executed action history for a ticket",
		Long: `Print the append-only outcome log for a ticket: every action the
executor dispatched, in execution order, with its result.`,
		Args: cobra.ExactArgs(1),
		RunE: runActions,
	}
}

func runActions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ids, err := parseTicketIDs(args)
	if err != nil {
		return err
	}

	deps, err := buildDeps(ctx, false)
	if err != nil {
		return err
	}
	defer deps.close()

	outcomes, err := deps.storage.OutcomesForTicket(ctx, ids[0])
	if err != nil {
		return fmt.Errorf("failed to load action history: %w", err)
	}
	if len(outcomes) == 0 {
		fmt.Printf("No actions recorded for ticket #%d\n", ids[0])
		return nil
	}

	fmt.Printf("Action history for ticket #%d:\n", ids[0])
	for _, outcome := range outcomes {
		status := "FAILED"
		if outcome.Success {
			status = "OK"
		}
		fmt.Printf("  %s  %-22s %-6s %s\n",
			outcome.Timestamp.Format(time.RFC3339),
			outcome.Kind,
			status,
			outcome.Message)
	}
	return nil
}
