package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/ticket-triage/internal/action"
	"github.com/Veraticus/ticket-triage/internal/config"
	"github.com/Veraticus/ticket-triage/internal/engine"
	"github.com/Veraticus/ticket-triage/internal/freshdesk"
	"github.com/Veraticus/ticket-triage/internal/model"
	"github.com/Veraticus/ticket-triage/internal/normalize"
	"github.com/Veraticus/ticket-triage/internal/storage"
	"github.com/Veraticus/ticket-triage/internal/taxonomy"
)

// appDeps bundles the wired application components for a command run.
type appDeps struct {
	engine  *engine.AnalysisEngine
	storage *storage.SQLiteStorage
	store   *taxonomy.Store
}

// buildDeps constructs the engine and its collaborators from viper
// configuration.
func buildDeps(ctx context.Context, autoExecute bool) (*appDeps, error) {
	store, err := taxonomy.Load(config.ExpandPath(viper.GetString("taxonomy.file")))
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	source, err := buildSource()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cfg := engine.DefaultConfig()
	cfg.AutoExecute = autoExecute
	if timeout := viper.GetDuration("platform.timeout"); timeout > 0 {
		cfg.FetchTimeout = timeout
	}

	eng := engine.New(source, normalize.NewHTMLNormalizer(), store, db, action.NewDefaultRegistry(source), cfg)

	return &appDeps{engine: eng, storage: db, store: store}, nil
}

func (d *appDeps) close() {
	_ = d.storage.Close()
}

func buildSource() (*freshdesk.Client, error) {
	return freshdesk.NewClient(freshdesk.Config{
		BaseURL: viper.GetString("platform.base_url"),
		APIKey:  viper.GetString("platform.api_key"),
		Timeout: viper.GetDuration("platform.timeout"),
	})
}

func parseTicketIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid ticket id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// printReport renders a report in the CLI's human-readable format.
func printReport(report *model.TicketReport) {
	fmt.Printf("Ticket #%d: %s\n", report.Ticket.ID, report.Ticket.Subject)
	fmt.Printf("  Status:     %s\n", report.Ticket.Status)
	fmt.Printf("  Category:   %s (tier: %s)\n",
		strings.Join(report.Classification.CategoryPath, " / "),
		report.Classification.MatchedTier)
	fmt.Printf("  Procedure:  %s (stage %d of %d, TAT %.0fh)\n",
		report.Classification.SOP.Name,
		report.Classification.Stage,
		len(report.Classification.SOP.Steps),
		report.Classification.SOP.TATHours)
	fmt.Printf("  Pending on: %s (confidence %.2f)\n", report.Pending.Primary, report.Pending.Confidence)
	for _, ev := range report.Pending.EvidencePreview() {
		fmt.Printf("    - %s\n", ev)
	}

	if len(report.Children) > 0 {
		fmt.Printf("  Children (%d):\n", len(report.Children))
		for _, child := range report.Children {
			fmt.Printf("    #%d %s -> pending on %s\n",
				child.Ticket.ID,
				strings.Join(child.Classification.CategoryPath, " / "),
				child.Pending.Primary)
		}
	}
	if report.Consolidated != nil {
		fmt.Printf("  Consolidated routing: %s (last event %s)\n",
			report.Consolidated.RoutedTo,
			report.Consolidated.LastEvent.Format(time.RFC3339))
		if report.Consolidated.CoordinationNeeded {
			fmt.Println("  Coordination needed: children are blocked on different parties")
		}
	}
	if report.Parent != nil {
		fmt.Printf("  Parent: #%d %s\n", report.Parent.ID, report.Parent.Subject)
	}

	if len(report.Actions) > 0 {
		fmt.Println("  Actions:")
		for _, act := range report.Actions {
			auto := ""
			if act.AutoExecutable {
				auto = " (auto)"
			}
			fmt.Printf("    [%s] %s%s\n", act.Priority, act.Description, auto)
		}
	}
	for _, outcome := range report.Outcomes {
		status := "FAILED"
		if outcome.Success {
			status = "OK"
		}
		fmt.Printf("  Executed %s: %s (%s)\n", outcome.Kind, outcome.Message, status)
	}
}
