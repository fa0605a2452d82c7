// Package engine orchestrates the full ticket analysis pipeline:
// fetch, normalize, classify, resolve the pending source, aggregate
// relatives, evaluate escalations, and execute automatic actions.
package engine

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/ticket-triage/internal/action"
	"github.com/Veraticus/ticket-triage/internal/classify"
	"github.com/Veraticus/ticket-triage/internal/common"
	"github.com/Veraticus/ticket-triage/internal/escalation"
	"github.com/Veraticus/ticket-triage/internal/model"
	"github.com/Veraticus/ticket-triage/internal/pending"
	"github.com/Veraticus/ticket-triage/internal/relation"
	"github.com/Veraticus/ticket-triage/internal/service"
	"github.com/Veraticus/ticket-triage/internal/taxonomy"
)

// Config holds configuration options for the analysis engine.
type Config struct {
	FetchTimeout time.Duration
	ChildWorkers int
	AutoExecute  bool
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		FetchTimeout: 15 * time.Second,
		ChildWorkers: relation.DefaultWorkers,
		AutoExecute:  true,
	}
}

// AnalysisEngine wires the core components together. Per-ticket
// analysis is pure computation over fetched text; only collaborator
// fetches and action execution touch the network.
type AnalysisEngine struct {
	source     service.TicketSource
	normalizer service.TextNormalizer
	storage    service.Storage
	classifier *classify.Classifier
	resolver   *pending.Resolver
	escalator  *escalation.Engine
	executor   *action.Executor
	aggregator *relation.Aggregator
	cfg        Config
}

// New creates an analysis engine over the given collaborators.
func New(source service.TicketSource, normalizer service.TextNormalizer, tax *taxonomy.Store, storage service.Storage, registry *action.Registry, cfg Config) *AnalysisEngine {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultConfig().FetchTimeout
	}

	e := &AnalysisEngine{
		source:     source,
		normalizer: normalizer,
		storage:    storage,
		classifier: classify.New(tax),
		resolver:   pending.New(tax),
		escalator:  escalation.New(tax),
		executor:   action.NewExecutor(registry, storage),
		cfg:        cfg,
	}
	e.aggregator = relation.NewWithWorkers(source, e, cfg.ChildWorkers)
	return e
}

// AnalyzeTicket produces the full report for one ticket. Collaborator
// failures degrade to the richest locally computable result; the only
// hard error is an invalid ticket id.
func (e *AnalysisEngine) AnalyzeTicket(ctx context.Context, id int64) (*model.TicketReport, error) {
	if id <= 0 {
		return nil, common.ErrNoTicketID
	}

	ticket := e.fetchTicket(ctx, id)
	if ticket == nil {
		// Unavailable upstream data is not an error: report the
		// fallback classification for the bare id.
		slog.Warn("ticket unavailable, producing fallback report", "ticket_id", id)
		ticket = &model.Ticket{ID: id}
	}

	rel := e.aggregator.Aggregate(ctx, *ticket)

	history, err := e.storage.ReminderHistory(ctx, id)
	if err != nil {
		slog.Warn("failed to load reminder history", "ticket_id", id, "error", err)
		history = model.ReminderHistory{}
	}

	actions := e.escalator.Evaluate(rel.Main.Classification, *ticket, history)

	var outcomes []model.ExecutionResult
	if e.cfg.AutoExecute {
		outcomes = e.executor.ExecuteAll(ctx, id, autoExecutable(actions))
	}

	report := &model.TicketReport{
		AnalyzedAt:     time.Now(),
		Ticket:         *ticket,
		Classification: rel.Main.Classification,
		Pending:        rel.Main.Pending,
		Children:       rel.Children,
		Consolidated:   rel.Consolidated,
		Parent:         rel.Parent,
		Actions:        actions,
		Outcomes:       outcomes,
	}

	if err := e.storage.SaveReport(ctx, report); err != nil {
		slog.Warn("failed to persist report snapshot", "ticket_id", id, "error", err)
	}

	return report, nil
}

// AnalyzeSnapshot implements relation.TicketAnalyzer: classification
// and pending-source resolution over one already-fetched ticket.
func (e *AnalysisEngine) AnalyzeSnapshot(ctx context.Context, ticket model.Ticket) model.TicketAnalysis {
	convs := e.fetchConversations(ctx, ticket.ID)
	text := e.buildText(ticket, convs)

	cls := e.classifier.Classify(text)
	cls.Stage = classify.InferStage(cls, ticket, text)

	return model.TicketAnalysis{
		Ticket:         ticket,
		Classification: cls,
		Pending:        e.resolver.Resolve(text, convs, ticket.Status),
	}
}

// buildText concatenates subject, description, and normalized
// conversation bodies into the scoring corpus.
func (e *AnalysisEngine) buildText(ticket model.Ticket, convs []model.ConversationEntry) string {
	parts := make([]string, 0, len(convs)+2)
	parts = append(parts, ticket.Subject, e.normalizer.Normalize(ticket.Description))
	for _, c := range convs {
		parts = append(parts, e.normalizer.Normalize(c.Body))
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func (e *AnalysisEngine) fetchTicket(ctx context.Context, id int64) *model.Ticket {
	fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	defer cancel()

	ticket, err := e.source.FetchTicket(fetchCtx, id)
	if err != nil {
		slog.Warn("ticket fetch failed", "ticket_id", id, "error", err)
		return nil
	}
	return ticket
}

func (e *AnalysisEngine) fetchConversations(ctx context.Context, id int64) []model.ConversationEntry {
	fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	defer cancel()

	convs, err := e.source.FetchConversations(fetchCtx, id)
	if err != nil {
		slog.Warn("conversation fetch failed, scoring ticket text only",
			"ticket_id", id,
			"error", err)
		return nil
	}
	return convs
}

func autoExecutable(actions []model.Action) []model.Action {
	out := make([]model.Action, 0, len(actions))
	for _, a := range actions {
		if a.AutoExecutable {
			out = append(out, a)
		}
	}
	return out
}

// BatchResult pairs a single batch analysis with its error, if any.
type BatchResult struct {
	Report   *model.TicketReport
	Err      error
	TicketID int64
}

// AnalyzeBatch analyzes many tickets on a bounded worker pool. Results
// keep the input order; a per-result callback fires as each analysis
// completes.
func (e *AnalysisEngine) AnalyzeBatch(ctx context.Context, ids []int64, workers int, onDone func(BatchResult)) []BatchResult {
	if workers <= 0 {
		workers = relation.DefaultWorkers
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	type job struct {
		id  int64
		idx int
	}

	workChan := make(chan job, len(ids))
	for i, id := range ids {
		workChan <- job{idx: i, id: id}
	}
	close(workChan)

	results := make([]BatchResult, len(ids))

	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range workChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				report, err := e.AnalyzeTicket(ctx, j.id)
				results[j.idx] = BatchResult{TicketID: j.id, Report: report, Err: err}

				if onDone != nil {
					mu.Lock()
					onDone(results[j.idx])
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	return results
}
