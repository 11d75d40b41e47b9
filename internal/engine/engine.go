// Package engine wires the feedback pipeline together: validation in
// front of the store on the write path, full-scan fetch in front of the
// aggregators on the read path.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/runger/revlearn/internal/feedback"
	"github.com/runger/revlearn/internal/learn"
	"github.com/runger/revlearn/internal/metrics"
	"github.com/runger/revlearn/internal/store"
)

// Engine exposes the feedback operations the CLI (or any other transport)
// calls into.
type Engine struct {
	store  *store.Store
	logger *slog.Logger
}

// New creates an engine over an opened store.
func New(st *store.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: st, logger: logger}
}

// Submit validates a submission and appends it. On validation failure the
// full error list is returned and nothing is stored.
func (e *Engine) Submit(ctx context.Context, sub feedback.Submission) (string, []feedback.ValidationError, error) {
	ev, verrs := feedback.Validate(sub)
	if len(verrs) > 0 {
		metrics.Global.ValidationRejects.Add(1)
		return "", verrs, nil
	}
	id, err := e.store.Append(ctx, ev)
	if err != nil {
		metrics.Global.StoreErrors.Add(1)
		return "", nil, err
	}
	metrics.Global.FeedbackSubmissions.Add(1)
	return id, nil, nil
}

// PatternsResult is the outcome of a patterns query: the ranked patterns
// and the unfiltered feedback total for the extension.
type PatternsResult struct {
	Patterns      []learn.Pattern `json:"patterns"`
	TotalFeedback int             `json:"total_feedback"`
}

// Patterns computes the ranked learned patterns for one file extension.
// The extension is required; tuning values are validated, not clamped.
func (e *Engine) Patterns(ctx context.Context, ext string, cfg learn.Config) (*PatternsResult, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return nil, fmt.Errorf("invalid patterns query: fileExtension is required")
	}
	events, err := e.store.QueryByExtension(ctx, ext)
	if err != nil {
		metrics.Global.StoreErrors.Add(1)
		return nil, err
	}
	patterns, total, err := learn.Aggregate(events, cfg)
	if err != nil {
		return nil, err
	}
	metrics.Global.PatternQueries.Add(1)
	e.logger.Debug("computed patterns",
		"extension", ext, "patterns", len(patterns), "events", total)
	return &PatternsResult{Patterns: patterns, TotalFeedback: total}, nil
}

// Stats computes the global statistics over the whole feedback corpus.
func (e *Engine) Stats(ctx context.Context) (*learn.GlobalStats, error) {
	events, err := e.store.QueryAll(ctx)
	if err != nil {
		metrics.Global.StoreErrors.Add(1)
		return nil, err
	}
	stats := learn.GlobalStatsFrom(events)
	metrics.Global.StatsQueries.Add(1)
	return &stats, nil
}
