// Package relation detects parent/child ticket topology and
// consolidates per-child analysis into a single routing signal.
package relation

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"sync"

	"github.com/Veraticus/ticket-triage/internal/model"
	"github.com/Veraticus/ticket-triage/internal/service"
)

// DefaultWorkers bounds the child-ticket fan-out. Child analyses are
// independent, so they run in parallel up to this limit with a join
// before consolidation.
const DefaultWorkers = 5

// subjectParentRef matches a "#1234" style parent reference in a child
// ticket's subject line.
var subjectParentRef = regexp.MustCompile(`#(\d+)`)

// TicketAnalyzer runs classification and pending-source resolution over
// one already-fetched ticket snapshot.
type TicketAnalyzer interface {
	AnalyzeSnapshot(ctx context.Context, ticket model.Ticket) model.TicketAnalysis
}

// Aggregator walks a ticket's immediate relatives. Traversal is capped
// at one level: children are analyzed exactly once and never expanded
// for grandchildren, so the walk terminates even if the platform
// returns inconsistent back-references.
type Aggregator struct {
	source   service.TicketSource
	analyzer TicketAnalyzer
	workers  int
}

// New creates an aggregator with the default worker bound.
func New(source service.TicketSource, analyzer TicketAnalyzer) *Aggregator {
	return &Aggregator{source: source, analyzer: analyzer, workers: DefaultWorkers}
}

// NewWithWorkers creates an aggregator with a custom worker bound.
func NewWithWorkers(source service.TicketSource, analyzer TicketAnalyzer, workers int) *Aggregator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Aggregator{source: source, analyzer: analyzer, workers: workers}
}

// Aggregate analyzes a ticket and, depending on its status, its
// children or parent. Collaborator failures degrade to a
// standalone-ticket result rather than propagating.
func (a *Aggregator) Aggregate(ctx context.Context, ticket model.Ticket) model.RelationshipAnalysis {
	out := model.RelationshipAnalysis{
		Main: a.analyzer.AnalyzeSnapshot(ctx, ticket),
	}

	switch {
	case ticket.IsParent():
		children, err := a.source.FetchChildren(ctx, ticket.ID)
		if err != nil {
			slog.Warn("failed to fetch child tickets, treating as standalone",
				"ticket_id", ticket.ID,
				"error", err)
			return out
		}

		visited := map[int64]bool{ticket.ID: true}
		unique := make([]model.Ticket, 0, len(children))
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			unique = append(unique, child)
		}

		out.Children = a.analyzeChildren(ctx, unique)
		out.Consolidated = consolidate(out.Children)

	case ticket.IsChild():
		out.Parent = a.resolveParent(ctx, ticket)
	}

	return out
}

// analyzeChildren fans the children out over a bounded worker pool and
// joins before returning. Results keep the platform's child order.
func (a *Aggregator) analyzeChildren(ctx context.Context, children []model.Ticket) []model.TicketAnalysis {
	if len(children) == 0 {
		return nil
	}

	type job struct {
		ticket model.Ticket
		idx    int
	}

	workChan := make(chan job, len(children))
	for i, child := range children {
		workChan <- job{idx: i, ticket: child}
	}
	close(workChan)

	results := make([]model.TicketAnalysis, len(children))

	workers := a.workers
	if workers > len(children) {
		workers = len(children)
	}

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
				// Each worker writes only its own index; the merge
				// happens after the join.
				results[j.idx] = a.analyzer.AnalyzeSnapshot(ctx, j.ticket)
			}
		}()
	}
	wg.Wait()

	return results
}

// consolidate derives the parent's routing signal: the pending source
// of the most recently updated child wins, and heterogeneous child
// sources raise the coordination flag.
func consolidate(children []model.TicketAnalysis) *model.PendingSummary {
	if len(children) == 0 {
		return nil
	}

	summary := &model.PendingSummary{}
	seen := make(map[model.PendingSource]bool)

	for _, child := range children {
		if !seen[child.Pending.Primary] {
			seen[child.Pending.Primary] = true
			summary.Sources = append(summary.Sources, child.Pending.Primary)
		}
		if child.Ticket.UpdatedAt.After(summary.LastEvent) || summary.RoutedTo == "" {
			summary.LastEvent = child.Ticket.UpdatedAt
			summary.RoutedTo = child.Pending.Primary
		}
	}

	summary.CoordinationNeeded = len(summary.Sources) > 1
	return summary
}

// resolveParent is a best-effort lookup: an explicit parent id first,
// then a subject-line reference. Failure yields nil, never an error.
func (a *Aggregator) resolveParent(ctx context.Context, ticket model.Ticket) *model.Ticket {
	if ticket.ParentID != 0 {
		parent, err := a.source.FetchParent(ctx, ticket)
		if err != nil {
			slog.Debug("parent lookup failed",
				"ticket_id", ticket.ID,
				"parent_id", ticket.ParentID,
				"error", err)
			return nil
		}
		if parent != nil {
			return parent
		}
	}

	m := subjectParentRef.FindStringSubmatch(ticket.Subject)
	if m == nil {
		return nil
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id == ticket.ID {
		return nil
	}

	parent, err := a.source.FetchTicket(ctx, id)
	if err != nil {
		slog.Debug("subject-referenced parent lookup failed",
			"ticket_id", ticket.ID,
			"referenced_id", id,
			"error", err)
		return nil
	}
	return parent
}
