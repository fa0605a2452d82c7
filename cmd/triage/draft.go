package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/ticket-triage/internal/llm"
)

func draftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft <ticket-id>",
		Short: "Analyze a ticket and draft a customer reply",
		Long: `Analyze a ticket without executing any actions and generate a reply
draft grounded in the analysis. The draft is printed for review, never
posted to the ticket.

Requires an LLM API key (llm.api_key in the config file or
TRIAGE_LLM_API_KEY).`,
		Args: cobra.ExactArgs(1),
		RunE: runDraft,
	}

	cmd.Flags().String("instruction", "", "Extra drafting instruction")
	_ = viper.BindPFlag("draft.instruction", cmd.Flags().Lookup("instruction"))

	return cmd
}

func runDraft(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ids, err := parseTicketIDs(args)
	if err != nil {
		return err
	}

	drafter, err := llm.NewDrafter(llm.Config{
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		Temperature: viper.GetFloat64("llm.temperature"),
	})
	if err != nil {
		return fmt.Errorf("drafter configuration: %w", err)
	}

	deps, err := buildDeps(ctx, false)
	if err != nil {
		return err
	}
	defer deps.close()

	report, err := deps.engine.AnalyzeTicket(ctx, ids[0])
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	draft, err := drafter.DraftReply(ctx, report, viper.GetString("draft.instruction"))
	if err != nil {
		return fmt.Errorf("drafting failed: %w", err)
	}

	printReport(report)
	fmt.Println("\nDraft reply:")
	fmt.Println(draft)
	return nil
}
