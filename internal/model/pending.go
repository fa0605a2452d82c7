package model

// PendingSource identifies the external party currently blocking ticket
// progress.
type PendingSource string

// Pending source constants. The first six are scored candidates; the
// internal team is only ever assigned through status-based routing, and
// unknown is the zero-signal fallback.
const (
	SourceCustomer     PendingSource = "customer"
	SourceInsurer      PendingSource = "insurer"
	SourceDealer       PendingSource = "dealer"
	SourceSurveyor     PendingSource = "surveyor"
	SourceGarage       PendingSource = "garage"
	SourceTechSupport  PendingSource = "tech_support"
	SourceInternalTeam PendingSource = "internal_team"
	SourceUnknown      PendingSource = "unknown"
)

// EvidencePreviewLimit bounds how many evidence entries are rendered to
// callers; the full list is always retained internally.
const EvidencePreviewLimit = 3

// PendingSourceResult is the resolver's verdict on who a ticket is
// blocked on, with supporting evidence.
type PendingSourceResult struct {
	AllScores  map[PendingSource]int
	Primary    PendingSource
	Evidence   []string
	Confidence float64
}

// EvidencePreview returns at most EvidencePreviewLimit evidence entries
// for display purposes.
func (r PendingSourceResult) EvidencePreview() []string {
	if len(r.Evidence) <= EvidencePreviewLimit {
		return r.Evidence
	}
	return r.Evidence[:EvidencePreviewLimit]
}
