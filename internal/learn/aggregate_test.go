package learn

import (
	"strings"
	"testing"

	"github.com/runger/revlearn/internal/feedback"
)

func mkEvent(rule, ext, hash string, helpful bool) feedback.Event {
	return feedback.Event{
		Rule:          rule,
		FileExtension: ext,
		IssueHash:     hash,
		IsHelpful:     helpful,
		CodeSnippet:   "snippet for " + hash,
		Suggestion:    "suggestion for " + hash,
	}
}

func repeat(ev feedback.Event, n int) []feedback.Event {
	out := make([]feedback.Event, n)
	for i := range out {
		out[i] = ev
	}
	return out
}

func TestAggregate_AccuracyScenario(t *testing.T) {
	// 3 helpful + 1 not helpful with the same key => 75.0% over 4.
	events := repeat(mkEvent("STYLE", ".cs", "h1", true), 3)
	events = append(events, mkEvent("STYLE", ".cs", "h1", false))

	patterns, total, err := Aggregate(events, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
	if len(patterns) != 1 {
		t.Fatalf("patterns = %d, want 1", len(patterns))
	}
	p := patterns[0]
	if p.AccuracyPercent != 75.0 {
		t.Errorf("accuracy = %v, want 75.0", p.AccuracyPercent)
	}
	if p.TotalOccurrences != 4 || p.HelpfulCount != 3 || p.NotHelpfulCount != 1 {
		t.Errorf("counts = %d/%d/%d", p.TotalOccurrences, p.HelpfulCount, p.NotHelpfulCount)
	}
	if p.PatternKey != "STYLE|.cs|h1" {
		t.Errorf("key = %q", p.PatternKey)
	}
}

func TestAggregate_MinAccuracyExcludes(t *testing.T) {
	events := repeat(mkEvent("STYLE", ".cs", "h1", true), 3)
	events = append(events, mkEvent("STYLE", ".cs", "h1", false))

	cfg := DefaultConfig()
	cfg.MinAccuracyPercent = 80
	patterns, total, err := Aggregate(events, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(patterns) != 0 {
		t.Errorf("expected 75%% pattern excluded at threshold 80, got %d", len(patterns))
	}
	if total != 4 {
		t.Errorf("total should stay unfiltered, got %d", total)
	}
}

func TestAggregate_CountInvariant(t *testing.T) {
	var events []feedback.Event
	events = append(events, repeat(mkEvent("A", ".go", "h1", true), 5)...)
	events = append(events, repeat(mkEvent("A", ".go", "h1", false), 2)...)
	events = append(events, repeat(mkEvent("B", ".go", "h2", false), 3)...)

	patterns, _, err := Aggregate(events, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range patterns {
		if p.HelpfulCount+p.NotHelpfulCount != p.TotalOccurrences {
			t.Errorf("%s: %d + %d != %d", p.PatternKey, p.HelpfulCount, p.NotHelpfulCount, p.TotalOccurrences)
		}
		if p.AccuracyPercent < 0 || p.AccuracyPercent > 100 {
			t.Errorf("%s: accuracy out of range: %v", p.PatternKey, p.AccuracyPercent)
		}
	}
}

func TestAggregate_SortOrder(t *testing.T) {
	var events []feedback.Event
	// 100% accuracy, 2 occurrences
	events = append(events, repeat(mkEvent("A", ".go", "small", true), 2)...)
	// 100% accuracy, 4 occurrences - ties broken by occurrences
	events = append(events, repeat(mkEvent("B", ".go", "big", true), 4)...)
	// 50% accuracy, 10 occurrences - accuracy dominates
	events = append(events, repeat(mkEvent("C", ".go", "noisy", true), 5)...)
	events = append(events, repeat(mkEvent("C", ".go", "noisy", false), 5)...)

	patterns, _, err := Aggregate(events, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(patterns) != 3 {
		t.Fatalf("patterns = %d", len(patterns))
	}
	wantOrder := []string{"big", "small", "noisy"}
	for i, hash := range wantOrder {
		if !strings.HasSuffix(patterns[i].PatternKey, hash) {
			t.Errorf("position %d: got %q, want *%s", i, patterns[i].PatternKey, hash)
		}
	}
}

func TestAggregate_MinOccurrencesMonotonic(t *testing.T) {
	var events []feedback.Event
	events = append(events, repeat(mkEvent("A", ".go", "h1", true), 2)...)
	events = append(events, repeat(mkEvent("B", ".go", "h2", true), 3)...)
	events = append(events, repeat(mkEvent("C", ".go", "h3", true), 5)...)

	prev := -1
	for min := 1; min <= 6; min++ {
		cfg := DefaultConfig()
		cfg.MinOccurrences = min
		patterns, _, err := Aggregate(events, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if prev >= 0 && len(patterns) > prev {
			t.Errorf("minOccurrences=%d: count grew from %d to %d", min, prev, len(patterns))
		}
		prev = len(patterns)
	}
}

func TestAggregate_MaxResultsCaps(t *testing.T) {
	var events []feedback.Event
	for _, hash := range []string{"h1", "h2", "h3", "h4"} {
		events = append(events, repeat(mkEvent("R", ".go", hash, true), 2)...)
	}
	cfg := DefaultConfig()
	cfg.MaxResults = 2
	patterns, _, err := Aggregate(events, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(patterns) != 2 {
		t.Errorf("patterns = %d, want 2", len(patterns))
	}
}

func TestAggregate_ExamplesFirstThreeInInputOrder(t *testing.T) {
	var events []feedback.Event
	for i, suffix := range []string{"first", "second", "third", "fourth"} {
		ev := mkEvent("R", ".go", "h1", i%2 == 0)
		ev.Suggestion = suffix
		events = append(events, ev)
	}
	patterns, _, err := Aggregate(events, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(patterns) != 1 {
		t.Fatalf("patterns = %d", len(patterns))
	}
	got := patterns[0].Examples
	if len(got) != 3 {
		t.Fatalf("examples = %d, want 3", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Suggestion != want {
			t.Errorf("example %d = %q, want %q", i, got[i].Suggestion, want)
		}
	}
}

func TestAggregate_ExampleSnippetTruncated(t *testing.T) {
	ev := mkEvent("R", ".go", "h1", true)
	ev.CodeSnippet = strings.Repeat("x", 900)
	patterns, _, err := Aggregate(repeat(ev, 2), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	snippet := patterns[0].Examples[0].CodeSnippet
	if len(snippet) != MaxExampleSnippetLen {
		t.Errorf("snippet length = %d, want %d", len(snippet), MaxExampleSnippetLen)
	}
	if !strings.HasSuffix(snippet, "...") {
		t.Error("truncated snippet should end with ellipsis")
	}
}

func TestAggregate_RejectsNonPositiveTuning(t *testing.T) {
	for _, cfg := range []Config{
		{MinOccurrences: 0, MaxResults: 15},
		{MinOccurrences: 2, MaxResults: -1},
		{MinOccurrences: 2, MaxResults: 15, MinAccuracyPercent: 101},
	} {
		if _, _, err := Aggregate(nil, cfg); err == nil {
			t.Errorf("config %+v: expected error", cfg)
		}
	}
}

func TestAccuracyPercent_Rounding(t *testing.T) {
	tests := []struct {
		helpful, total int
		want           float64
	}{
		{0, 0, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{3, 4, 75.0},
		{1, 1, 100.0},
		{0, 5, 0.0},
	}
	for _, tt := range tests {
		if got := accuracyPercent(tt.helpful, tt.total); got != tt.want {
			t.Errorf("accuracyPercent(%d, %d) = %v, want %v", tt.helpful, tt.total, got, tt.want)
		}
	}
}
