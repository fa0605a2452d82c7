// Package pending infers which external party a ticket is currently
// blocked on, with a confidence score and supporting evidence.
package pending

import (
	"fmt"
	"strings"

	"github.com/Veraticus/ticket-triage/internal/model"
	"github.com/Veraticus/ticket-triage/internal/taxonomy"
)

// Scoring weights. The latest conversation entry gets a recency bonus:
// it is the strongest evidence of the current blocking party.
const (
	keywordScore      = 2
	patternScore      = 3
	recencyScore      = 1
	confidenceDivisor = 5.0
	statusConfidence  = 0.3
)

// StatusOnlyEvidence is the evidence entry used when no content signal
// exists and the source is derived from ticket status alone.
const StatusOnlyEvidence = "Based on ticket status only"

// Resolver scores ticket text and conversation history against the
// taxonomy's pending-source candidates. Resolution is deterministic:
// identical inputs always yield identical output.
type Resolver struct {
	store *taxonomy.Store
}

// New creates a resolver over the given taxonomy.
func New(store *taxonomy.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve determines the primary pending source for a ticket. Ties are
// broken by candidate declaration order; an all-zero score falls back
// to the status-derived default with fixed confidence.
func (r *Resolver) Resolve(text string, conversations []model.ConversationEntry, status model.Status) model.PendingSourceResult {
	lower := strings.ToLower(text)

	var latestLower string
	if latest := model.LatestEntry(conversations); latest != nil {
		latestLower = strings.ToLower(latest.Body)
	}

	scores := make(map[model.PendingSource]int)
	evidence := make(map[model.PendingSource][]string)

	for _, cand := range r.store.Sources() {
		score := 0
		var hits []string

		for _, kw := range cand.Keywords {
			if strings.Contains(lower, kw) {
				score += keywordScore
				hits = append(hits, fmt.Sprintf("Keyword %q found in ticket text", kw))
			}
		}

		for i, re := range cand.Patterns {
			if re.MatchString(text) {
				score += patternScore
				hits = append(hits, fmt.Sprintf("Pattern %q matched", cand.PatternText[i]))
			}
		}

		// Recency pass over the most recent conversation entry only.
		if latestLower != "" {
			for _, kw := range cand.Keywords {
				if strings.Contains(latestLower, kw) {
					score += recencyScore
					hits = append(hits, fmt.Sprintf("Keyword %q in latest conversation entry", kw))
				}
			}
		}

		scores[cand.Source] = score
		evidence[cand.Source] = hits
	}

	primary := model.SourceUnknown
	bestScore := 0
	for _, cand := range r.store.Sources() {
		if scores[cand.Source] > bestScore {
			bestScore = scores[cand.Source]
			primary = cand.Source
		}
	}

	if bestScore == 0 {
		return model.PendingSourceResult{
			Primary:    r.store.RoutingFor(status),
			Confidence: statusConfidence,
			Evidence:   []string{StatusOnlyEvidence},
			AllScores:  scores,
		}
	}

	confidence := float64(bestScore) / confidenceDivisor
	if confidence > 1.0 {
		confidence = 1.0
	}

	return model.PendingSourceResult{
		Primary:    primary,
		Confidence: confidence,
		Evidence:   evidence[primary],
		AllScores:  scores,
	}
}
