package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/ticket-triage/internal/model"
	"github.com/Veraticus/ticket-triage/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <ticket-id>...",
		Short: "Analyze tickets and export the reports to Google Sheets",
		Long: `Analyze the given tickets without executing any actions and write
the resulting reports to a Google Sheets spreadsheet.

Authentication uses either a service account
(GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH) or OAuth2 credentials
(GOOGLE_SHEETS_CLIENT_ID, GOOGLE_SHEETS_CLIENT_SECRET,
GOOGLE_SHEETS_REFRESH_TOKEN).

Examples:
  triage export 4821 4822
  triage export 4821 --spreadsheet-id 1abc...xyz`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExport,
	}

	cmd.Flags().String("spreadsheet-id", "", "Existing spreadsheet ID (created if empty)")
	cmd.Flags().Int("workers", 5, "Number of concurrent analyses")

	_ = viper.BindPFlag("export.spreadsheet_id", cmd.Flags().Lookup("spreadsheet-id"))
	_ = viper.BindPFlag("export.workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ids, err := parseTicketIDs(args)
	if err != nil {
		return err
	}

	var sheetsConfig sheets.Config
	if err := sheetsConfig.LoadFromEnv(); err != nil {
		return fmt.Errorf("sheets configuration: %w", err)
	}
	if id := viper.GetString("export.spreadsheet_id"); id != "" {
		sheetsConfig.SpreadsheetID = id
	}

	deps, err := buildDeps(ctx, false)
	if err != nil {
		return err
	}
	defer deps.close()

	results := deps.engine.AnalyzeBatch(ctx, ids, viper.GetInt("export.workers"), nil)

	reports := make([]*model.TicketReport, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("Ticket #%d: FAILED: %v\n", res.TicketID, res.Err)
			continue
		}
		reports = append(reports, res.Report)
	}
	if len(reports) == 0 {
		return fmt.Errorf("no reports to export")
	}

	writer, err := sheets.NewWriter(ctx, sheetsConfig, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}
	if err := writer.Write(ctx, reports); err != nil {
		return fmt.Errorf("failed to export reports: %w", err)
	}

	fmt.Printf("Exported %d report(s) to Google Sheets\n", len(reports))
	return nil
}
