// Package classify implements the priority-tiered ticket classifier.
//
// Tiers are evaluated in a fixed order and the first qualifying tier
// wins: specific actionable requests must outrank broad category
// guesses. Within a tier the highest-scoring entry is selected, with
// ties broken by table-declaration order.
package classify

import (
	"strings"

	"github.com/Veraticus/ticket-triage/internal/model"
	"github.com/Veraticus/ticket-triage/internal/taxonomy"
)

// Tier names reported in ClassificationResult.MatchedTier.
const (
	TierCommonRequest = "common_request"
	TierSupportIssue  = "support_issue"
	TierClaim         = "claim"
	TierEndorsement   = "endorsement"
	TierGeneric       = "generic"
	TierLegacy        = "legacy"
	TierFallback      = "fallback"
)

// Qualification thresholds per tier.
const (
	commonRequestThreshold = 3
	supportIssueThreshold  = 2
	claimThreshold         = 2
	endorsementThreshold   = 2
	miscScore              = 2
)

// Classifier scores raw ticket text against the taxonomy tiers. It is
// a pure function of (text, store): identical inputs always produce
// identical results.
type Classifier struct {
	store *taxonomy.Store
}

// New creates a classifier over the given taxonomy.
func New(store *taxonomy.Store) *Classifier {
	return &Classifier{store: store}
}

// Classify resolves the category for the given text. Empty or
// whitespace-only text yields the taxonomy's fallback category; this
// method never fails.
func (c *Classifier) Classify(text string) model.ClassificationResult {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return c.fallback()
	}

	if res, ok := c.scoreTier(TierCommonRequest, c.store.CommonRequests(), lower, commonRequestThreshold); ok {
		return res
	}
	if res, ok := c.scoreTier(TierSupportIssue, c.store.SupportIssues(), lower, supportIssueThreshold); ok {
		return res
	}
	if res, ok := c.scoreTier(TierClaim, c.store.Claims(), lower, claimThreshold); ok {
		return res
	}
	if res, ok := c.scoreEndorsements(lower); ok {
		return res
	}
	if res, ok := c.genericLookup(lower); ok {
		return res
	}
	return c.legacyBuckets(lower)
}

// scoreTier evaluates every entry in a tier and returns a result if the
// best score reaches the threshold. An entry beats an earlier one only
// with a strictly higher score, so declaration order breaks ties.
func (c *Classifier) scoreTier(tier string, entries []taxonomy.TierEntry, text string, threshold int) (model.ClassificationResult, bool) {
	scores := make(map[string]int, len(entries))
	bestScore := 0
	var best *taxonomy.TierEntry

	for i := range entries {
		score := scoreKeywordSet(text, entries[i].Keywords)
		if score > 0 {
			scores[entries[i].Name] = score
		}
		if score > bestScore {
			bestScore = score
			best = &entries[i]
		}
	}

	if best == nil || bestScore < threshold {
		return model.ClassificationResult{}, false
	}

	return model.ClassificationResult{
		CategoryPath: best.CategoryPath,
		MatchedTier:  tier,
		Scores:       scores,
		SOP:          c.store.SOP(best.SOPKey),
	}, true
}

// scoreEndorsements scans every (line x financial/non-financial)
// combination plus each line's miscellaneous list, and selects the
// single strictly-highest scoring combination across the whole tier.
func (c *Classifier) scoreEndorsements(text string) (model.ClassificationResult, bool) {
	lines := c.store.Endorsements()
	scores := make(map[string]int, len(lines)*2)

	bestScore := 0
	bestPath := []string(nil)
	bestSOP := ""

	for _, line := range lines {
		misc := 0
		if anyContains(text, line.Misc) {
			misc = miscScore
		}

		combos := []struct {
			subType string
			score   int
		}{
			{"Financial", scoreKeywordSet(text, line.Financial) + misc},
			{"Non-Financial", scoreKeywordSet(text, line.NonFinancial) + misc},
		}

		for _, combo := range combos {
			if combo.score > 0 {
				scores[line.Line+"/"+combo.subType] = combo.score
			}
			if combo.score > bestScore {
				bestScore = combo.score
				bestPath = []string{"Endorsement", line.Line, combo.subType}
				bestSOP = line.SOPKey
			}
		}
	}

	if bestScore < endorsementThreshold {
		return model.ClassificationResult{}, false
	}

	return model.ClassificationResult{
		CategoryPath: bestPath,
		MatchedTier:  TierEndorsement,
		Scores:       scores,
		SOP:          c.store.SOP(bestSOP),
	}, true
}

// genericLookup is a flat single-keyword substring table.
func (c *Classifier) genericLookup(text string) (model.ClassificationResult, bool) {
	for _, entry := range c.store.Generic() {
		if strings.Contains(text, entry.Keyword) {
			return model.ClassificationResult{
				CategoryPath: entry.CategoryPath,
				MatchedTier:  TierGeneric,
				Scores:       map[string]int{entry.Keyword: 1},
				SOP:          model.GenericSOP(),
			}, true
		}
	}
	return model.ClassificationResult{}, false
}

// legacyBuckets is the last-resort financial/technical/operations
// classifier. Text matching none of the buckets is Uncategorized.
func (c *Classifier) legacyBuckets(text string) model.ClassificationResult {
	legacy := c.store.Legacy()

	buckets := []struct {
		name     string
		keywords []string
	}{
		{"Financial", legacy.Financial},
		{"Technical", legacy.Technical},
		{"Operations", legacy.Operations},
	}

	for _, bucket := range buckets {
		if anyContains(text, bucket.keywords) {
			return model.ClassificationResult{
				CategoryPath: []string{bucket.name},
				MatchedTier:  TierLegacy,
				Scores:       map[string]int{bucket.name: 1},
				SOP:          model.GenericSOP(),
			}
		}
	}

	return c.fallback()
}

func (c *Classifier) fallback() model.ClassificationResult {
	return model.ClassificationResult{
		CategoryPath: c.store.FallbackCategory(),
		MatchedTier:  TierFallback,
		Scores:       map[string]int{},
		SOP:          model.GenericSOP(),
	}
}

// scoreKeywordSet scores text against one keyword set: 3 for any
// primary hit, 2 for any secondary hit, 1 for any context hit. Each
// bucket contributes at most once regardless of how many of its
// keywords appear.
func scoreKeywordSet(text string, ks taxonomy.KeywordSet) int {
	score := 0
	if anyContains(text, ks.Primary) {
		score += 3
	}
	if anyContains(text, ks.Secondary) {
		score += 2
	}
	if anyContains(text, ks.Context) {
		score++
	}
	return score
}

func anyContains(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
