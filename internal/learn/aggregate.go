// Package learn turns raw review feedback into derived artifacts: ranked
// learned patterns per file extension and corpus-wide statistics. All
// functions here are pure, single-pass transforms over an already
// materialized event slice; fetching that slice is the caller's problem.
package learn

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/runger/revlearn/internal/feedback"
)

// MaxExampleSnippetLen bounds the code snippet carried by a few-shot example.
const MaxExampleSnippetLen = 500

// maxExamplesPerPattern is how many few-shot examples a pattern carries.
const maxExamplesPerPattern = 3

// Config holds the tunable parameters of a patterns query.
type Config struct {
	// MinOccurrences drops pattern groups seen fewer than this many times.
	MinOccurrences int

	// MaxResults caps the number of patterns returned.
	MaxResults int

	// MinAccuracyPercent drops patterns below this accuracy threshold.
	MinAccuracyPercent float64
}

// DefaultConfig returns the default patterns-query tuning.
func DefaultConfig() Config {
	return Config{MinOccurrences: 2, MaxResults: 15, MinAccuracyPercent: 0}
}

// Validate rejects out-of-range tuning values. Non-positive occurrence and
// result bounds are reported rather than clamped.
func (c Config) Validate() []feedback.ValidationError {
	var errs []feedback.ValidationError
	if c.MinOccurrences <= 0 {
		errs = append(errs, feedback.ValidationError{Field: "minOccurrences", Message: "must be positive"})
	}
	if c.MaxResults <= 0 {
		errs = append(errs, feedback.ValidationError{Field: "maxResults", Message: "must be positive"})
	}
	if c.MinAccuracyPercent < 0 || c.MinAccuracyPercent > 100 {
		errs = append(errs, feedback.ValidationError{Field: "minAccuracyPercent", Message: "must be between 0 and 100"})
	}
	return errs
}

// FewShotExample is one historical instance of a pattern, carried along so
// a downstream review engine can show the model what the pattern looks like.
type FewShotExample struct {
	CodeSnippet string `json:"code_snippet"`
	Suggestion  string `json:"suggestion"`
	WasHelpful  bool   `json:"was_helpful"`
	Correction  string `json:"correction,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// Pattern is a learned pattern: one distinct (rule, extension, issue)
// combination with its helpfulness tally and sample instances. Patterns are
// recomputed from scratch on every query and never persisted.
type Pattern struct {
	PatternKey       string           `json:"pattern_key"`
	Rule             string           `json:"rule"`
	FileExtension    string           `json:"file_extension"`
	TotalOccurrences int              `json:"total_occurrences"`
	HelpfulCount     int              `json:"helpful_count"`
	NotHelpfulCount  int              `json:"not_helpful_count"`
	AccuracyPercent  float64          `json:"accuracy_percent"`
	Examples         []FewShotExample `json:"examples"`
}

// Aggregate groups the feedback events of one file extension into ranked
// learned patterns. It returns the patterns (accuracy descending, ties
// broken by occurrence count descending) and the unfiltered event total.
//
// Groups smaller than MinOccurrences or below MinAccuracyPercent are
// dropped; at most MaxResults patterns survive. Few-shot examples are the
// first three group members in input order, deliberately not re-sorted.
func Aggregate(events []feedback.Event, cfg Config) ([]Pattern, int, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, 0, fmt.Errorf("invalid patterns query: %s", strings.Join(msgs, "; "))
	}

	groups := make(map[string][]feedback.Event)
	var order []string
	for _, ev := range events {
		key := ev.PatternKey()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], ev)
	}

	patterns := make([]Pattern, 0, len(order))
	for _, key := range order {
		members := groups[key]
		if len(members) < cfg.MinOccurrences {
			continue
		}
		p := buildPattern(key, members)
		if p.AccuracyPercent < cfg.MinAccuracyPercent {
			continue
		}
		patterns = append(patterns, p)
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].AccuracyPercent != patterns[j].AccuracyPercent {
			return patterns[i].AccuracyPercent > patterns[j].AccuracyPercent
		}
		return patterns[i].TotalOccurrences > patterns[j].TotalOccurrences
	})
	if len(patterns) > cfg.MaxResults {
		patterns = patterns[:cfg.MaxResults]
	}
	return patterns, len(events), nil
}

// buildPattern tallies one group and samples its few-shot examples.
func buildPattern(key string, members []feedback.Event) Pattern {
	p := Pattern{
		PatternKey:       key,
		TotalOccurrences: len(members),
	}
	if len(members) > 0 {
		p.Rule = members[0].Rule
		p.FileExtension = members[0].FileExtension
	}
	for _, ev := range members {
		if ev.IsHelpful {
			p.HelpfulCount++
		} else {
			p.NotHelpfulCount++
		}
	}
	p.AccuracyPercent = accuracyPercent(p.HelpfulCount, p.TotalOccurrences)

	limit := len(members)
	if limit > maxExamplesPerPattern {
		limit = maxExamplesPerPattern
	}
	for _, ev := range members[:limit] {
		snippet, _ := feedback.Truncate(ev.CodeSnippet, MaxExampleSnippetLen)
		p.Examples = append(p.Examples, FewShotExample{
			CodeSnippet: snippet,
			Suggestion:  ev.Suggestion,
			WasHelpful:  ev.IsHelpful,
			Correction:  ev.Correction,
			Reason:      ev.Reason,
		})
	}
	return p
}

// accuracyPercent returns the helpful percentage rounded to one decimal
// place, or 0 for an empty group.
func accuracyPercent(helpful, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(100*float64(helpful)/float64(total)*10) / 10
}
