package ruleset

import (
	"testing"
)

func TestPathIncluded(t *testing.T) {
	cfg := &RuleConfig{
		IncludePaths: []string{"src/**"},
		ExcludePaths: []string{"src/generated/**"},
	}
	tests := []struct {
		path string
		want bool
	}{
		{"src/server/main.go", true},
		{"src/generated/api.go", false},
		{"docs/readme.md", false},
	}
	for _, tt := range tests {
		if got := cfg.PathIncluded(tt.path); got != tt.want {
			t.Errorf("PathIncluded(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	// No include list means everything not excluded.
	open := &RuleConfig{ExcludePaths: []string{"vendor/**"}}
	if !open.PathIncluded("anything/at/all.go") {
		t.Error("empty include list should admit everything")
	}
	if open.PathIncluded("vendor/lib/x.go") {
		t.Error("exclusion must still apply")
	}
}

func TestChecksForPath(t *testing.T) {
	cfg := &RuleConfig{
		ExcludePaths: []string{"vendor/**"},
		Checks: []CheckDefinition{
			{ID: "go-only", Scope: []string{"**/*.go"}},
			{ID: "everywhere"},
			{ID: "py-only", Scope: []string{"**/*.py"}},
		},
	}

	got := cfg.ChecksForPath("internal/server/handler.go")
	if len(got) != 2 {
		t.Fatalf("checks = %d, want 2", len(got))
	}
	ids := map[string]bool{got[0].ID: true, got[1].ID: true}
	if !ids["go-only"] || !ids["everywhere"] {
		t.Errorf("wrong checks: %v", ids)
	}

	if checks := cfg.ChecksForPath("vendor/pkg/x.go"); checks != nil {
		t.Errorf("excluded path must match nothing, got %d", len(checks))
	}
}
