package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/Veraticus/ticket-triage/internal/model"
)

const reportSheet = "Tickets"

// Writer implements the service.ReportWriter interface for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write exports the analysis reports, replacing the report sheet's
// previous contents.
func (w *Writer) Write(ctx context.Context, reports []*model.TicketReport) error {
	w.logger.Info("starting report export", "tickets", len(reports))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to prepare spreadsheet: %w", err)
	}

	clearRange := reportSheet + "!A:Z"
	if _, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := prepareReportData(reports)
	_, err = w.service.Spreadsheets.Values.Update(spreadsheetID, reportSheet+"!A1", &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write report data: %w", err)
	}

	w.logger.Info("report export complete",
		"spreadsheet_id", spreadsheetID,
		"rows", len(values))
	return nil
}

// prepareReportData flattens reports into spreadsheet rows.
func prepareReportData(reports []*model.TicketReport) [][]any {
	rows := [][]any{{
		"Ticket", "Subject", "Status", "Category", "Procedure", "Stage",
		"Pending On", "Confidence", "Evidence", "Coordination", "Top Action",
	}}

	for _, r := range reports {
		coordination := ""
		if r.Consolidated != nil && r.Consolidated.CoordinationNeeded {
			coordination = "needed"
		}

		topAction := ""
		if len(r.Actions) > 0 {
			topAction = fmt.Sprintf("[%s] %s", r.Actions[0].Priority, r.Actions[0].Description)
		}

		rows = append(rows, []any{
			r.Ticket.ID,
			r.Ticket.Subject,
			r.Ticket.Status.String(),
			strings.Join(r.Classification.CategoryPath, " / "),
			r.Classification.SOP.Name,
			r.Classification.Stage,
			string(r.Pending.Primary),
			fmt.Sprintf("%.2f", r.Pending.Confidence),
			strings.Join(r.Pending.EvidencePreview(), "; "),
			coordination,
			topAction,
		})
	}

	return rows
}

func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		return w.config.SpreadsheetID, nil
	}

	created, err := w.service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: w.config.SpreadsheetName},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: reportSheet}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	w.logger.Info("created spreadsheet", "spreadsheet_id", created.SpreadsheetId)
	return created.SpreadsheetId, nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}
