// Package taxonomy holds the immutable classification configuration:
// category keyword tables, pending-source candidate tables, status
// routing, SOP descriptors, and escalation matrices. A Store is built
// once at startup and is read-only afterwards.
package taxonomy

import (
	"fmt"
	"regexp"

	"github.com/spf13/viper"

	"github.com/Veraticus/ticket-triage/internal/model"
)

// KeywordSet holds the three priority buckets used for tier scoring.
// Primary hits contribute 3, secondary 2, context 1; each bucket
// contributes at most once per entry.
type KeywordSet struct {
	Primary   []string `mapstructure:"primary"`
	Secondary []string `mapstructure:"secondary"`
	Context   []string `mapstructure:"context"`
}

// TierEntry is one scored candidate within a classification tier.
type TierEntry struct {
	Name         string     `mapstructure:"name"`
	SOPKey       string     `mapstructure:"sop_key"`
	CategoryPath []string   `mapstructure:"category_path"`
	Keywords     KeywordSet `mapstructure:"keywords"`
}

// EndorsementLine is one insurance line in the endorsement tier. Each
// line is scored as two sub-types (financial and non-financial); the
// miscellaneous list contributes a flat 2 to both when any of its
// keywords match.
type EndorsementLine struct {
	Line         string     `mapstructure:"line"`
	SOPKey       string     `mapstructure:"sop_key"`
	Financial    KeywordSet `mapstructure:"financial"`
	NonFinancial KeywordSet `mapstructure:"non_financial"`
	Misc         []string   `mapstructure:"misc"`
}

// GenericEntry is a single-keyword fallback category mapping.
type GenericEntry struct {
	Keyword      string   `mapstructure:"keyword"`
	CategoryPath []string `mapstructure:"category_path"`
}

// LegacyBuckets is the last-resort three-bucket keyword classifier.
type LegacyBuckets struct {
	Financial  []string `mapstructure:"financial"`
	Technical  []string `mapstructure:"technical"`
	Operations []string `mapstructure:"operations"`
}

// SourceConfig declares one pending-source candidate: its keyword list
// and regex patterns. Declaration order is the tie-break order.
type SourceConfig struct {
	Source   string   `mapstructure:"source"`
	Keywords []string `mapstructure:"keywords"`
	Patterns []string `mapstructure:"patterns"`
}

// SOPConfig is the serialized form of an SOP descriptor.
type SOPConfig struct {
	Name     string   `mapstructure:"name"`
	Steps    []string `mapstructure:"steps"`
	TATHours float64  `mapstructure:"tat_hours"`
}

// Config is the full serializable taxonomy. DefaultConfig returns the
// built-in tables; a YAML file can override any part of it.
type Config struct {
	SOPs                map[string]SOPConfig     `mapstructure:"sops"`
	StatusRouting       map[int]string           `mapstructure:"status_routing"`
	FallbackCategory    string                   `mapstructure:"fallback_category"`
	CommonRequests      []TierEntry              `mapstructure:"common_requests"`
	SupportIssues       []TierEntry              `mapstructure:"support_issues"`
	Claims              []TierEntry              `mapstructure:"claims"`
	Endorsements        []EndorsementLine        `mapstructure:"endorsements"`
	Generic             []GenericEntry           `mapstructure:"generic"`
	Sources             []SourceConfig           `mapstructure:"sources"`
	Matrices            []model.EscalationMatrix `mapstructure:"matrices"`
	PSUInsurers         []string                 `mapstructure:"psu_insurers"`
	ReminderLadderHours []float64                `mapstructure:"reminder_ladder_hours"`
	Legacy              LegacyBuckets            `mapstructure:"legacy"`
}

// SourceTable is a compiled pending-source candidate.
type SourceTable struct {
	Source      model.PendingSource
	Keywords    []string
	Patterns    []*regexp.Regexp
	PatternText []string
}

// Store is the compiled, read-only taxonomy.
type Store struct {
	routing       map[model.Status]model.PendingSource
	sops          map[string]model.SOPDescriptor
	matrices      map[string]model.EscalationMatrix
	cfg           Config
	sources       []SourceTable
	defaultMatrix model.EscalationMatrix
}

// New compiles a Config into a Store, validating regex patterns and
// escalation matrix monotonicity.
func New(cfg Config) (*Store, error) {
	s := &Store{
		cfg:      cfg,
		routing:  make(map[model.Status]model.PendingSource, len(cfg.StatusRouting)),
		sops:     make(map[string]model.SOPDescriptor, len(cfg.SOPs)),
		matrices: make(map[string]model.EscalationMatrix, len(cfg.Matrices)),
	}

	for _, src := range cfg.Sources {
		table := SourceTable{
			Source:   model.PendingSource(src.Source),
			Keywords: src.Keywords,
		}
		for _, p := range src.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("source %q: invalid pattern %q: %w", src.Source, p, err)
			}
			table.Patterns = append(table.Patterns, re)
			table.PatternText = append(table.PatternText, p)
		}
		s.sources = append(s.sources, table)
	}

	for code, src := range cfg.StatusRouting {
		s.routing[model.Status(code)] = model.PendingSource(src)
	}

	for key, sop := range cfg.SOPs {
		s.sops[key] = model.SOPDescriptor{
			Name:     sop.Name,
			Steps:    sop.Steps,
			TATHours: sop.TATHours,
		}
	}

	for _, m := range cfg.Matrices {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if m.Category == "default" {
			s.defaultMatrix = m
			continue
		}
		s.matrices[m.Category] = m
	}
	if len(s.defaultMatrix.Levels) == 0 {
		return nil, fmt.Errorf("taxonomy requires a %q escalation matrix", "default")
	}

	if cfg.FallbackCategory == "" {
		return nil, fmt.Errorf("taxonomy requires a fallback category")
	}

	return s, nil
}

// Load builds a Store from the built-in defaults, optionally merged
// with overrides read from the YAML file at path.
func Load(path string) (*Store, error) {
	cfg := DefaultConfig()

	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
		}
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse taxonomy file: %w", err)
		}
	}

	return New(cfg)
}

// CommonRequests returns the common-request tier entries in declaration order.
func (s *Store) CommonRequests() []TierEntry { return s.cfg.CommonRequests }

// SupportIssues returns the support-issue tier entries in declaration order.
func (s *Store) SupportIssues() []TierEntry { return s.cfg.SupportIssues }

// Claims returns the claim tier entries in declaration order.
func (s *Store) Claims() []TierEntry { return s.cfg.Claims }

// Endorsements returns the endorsement lines in declaration order.
// Declaration order is the documented tie-break order for the tier's
// best-match scan.
func (s *Store) Endorsements() []EndorsementLine { return s.cfg.Endorsements }

// Generic returns the single-keyword fallback table in declaration order.
func (s *Store) Generic() []GenericEntry { return s.cfg.Generic }

// Legacy returns the three-bucket keyword classifier tables.
func (s *Store) Legacy() LegacyBuckets { return s.cfg.Legacy }

// FallbackCategory returns the category path used for unscoreable text.
func (s *Store) FallbackCategory() []string {
	return []string{s.cfg.FallbackCategory}
}

// Sources returns the compiled pending-source candidates in declaration
// order.
func (s *Store) Sources() []SourceTable { return s.sources }

// RoutingFor returns the default pending source for a ticket status.
func (s *Store) RoutingFor(status model.Status) model.PendingSource {
	if src, ok := s.routing[status]; ok {
		return src
	}
	return model.SourceInternalTeam
}

// SOP returns the descriptor for the given key, substituting the
// generic descriptor when none exists. This lookup never fails.
func (s *Store) SOP(key string) model.SOPDescriptor {
	if sop, ok := s.sops[key]; ok {
		return sop
	}
	return model.GenericSOP()
}

// HasSOP reports whether an explicit descriptor exists for the key.
func (s *Store) HasSOP(key string) bool {
	_, ok := s.sops[key]
	return ok
}

// MatrixFor returns the escalation matrix for a top-level category,
// falling back to the default matrix.
func (s *Store) MatrixFor(category string) model.EscalationMatrix {
	if m, ok := s.matrices[category]; ok {
		return m
	}
	return s.defaultMatrix
}

// PSUInsurers returns the public-sector insurer names used by the
// escalation engine's document-request rule.
func (s *Store) PSUInsurers() []string { return s.cfg.PSUInsurers }

// ReminderLadder returns the not-contactable reminder offsets in hours.
func (s *Store) ReminderLadder() []float64 { return s.cfg.ReminderLadderHours }
