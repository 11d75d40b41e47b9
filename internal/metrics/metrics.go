// Package metrics provides atomic counters for feedback-engine
// observability. Counters are lock-free (sync/atomic) and safe for
// concurrent use.
package metrics

import (
	"sync/atomic"
)

// Counters holds the observability counters of the feedback engine.
type Counters struct {
	FeedbackSubmissions atomic.Int64 // stored feedback events
	ValidationRejects   atomic.Int64 // submissions rejected by validation
	PatternQueries      atomic.Int64 // learned-pattern queries served
	StatsQueries        atomic.Int64 // global-stats queries served
	StoreErrors         atomic.Int64 // persistence failures surfaced
	ConfigResolutions   atomic.Int64 // rule cascade resolutions performed
}

// Global is the process-wide metrics singleton.
var Global = &Counters{}

// Snapshot returns a point-in-time copy of all counters as a string-keyed
// map. Per-field consistent, not transactionally consistent across fields.
func (c *Counters) Snapshot() map[string]int64 {
	return map[string]int64{
		"feedback_submissions": c.FeedbackSubmissions.Load(),
		"validation_rejects":   c.ValidationRejects.Load(),
		"pattern_queries":      c.PatternQueries.Load(),
		"stats_queries":        c.StatsQueries.Load(),
		"store_errors":         c.StoreErrors.Load(),
		"config_resolutions":   c.ConfigResolutions.Load(),
	}
}

// Reset zeroes all counters. Useful for test isolation.
func (c *Counters) Reset() {
	c.FeedbackSubmissions.Store(0)
	c.ValidationRejects.Store(0)
	c.PatternQueries.Store(0)
	c.StatsQueries.Store(0)
	c.StoreErrors.Store(0)
	c.ConfigResolutions.Store(0)
}
