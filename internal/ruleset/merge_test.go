package ruleset

import (
	"reflect"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func check(id string, sev Severity) CheckDefinition {
	return CheckDefinition{ID: id, Severity: sev, Description: "desc " + id}
}

func TestMerge_OverrideWinsByID(t *testing.T) {
	base := &RuleConfig{Checks: []CheckDefinition{check("doc-1", SeverityWarning)}}
	override := &RuleConfig{
		Checks:  []CheckDefinition{check("doc-1", SeverityError)},
		Inherit: boolPtr(true),
	}

	merged := Merge(base, override)
	if len(merged.Checks) != 1 {
		t.Fatalf("checks = %d, want 1", len(merged.Checks))
	}
	if merged.Checks[0].Severity != SeverityError {
		t.Errorf("severity = %q, want error", merged.Checks[0].Severity)
	}
}

func TestMerge_IDMatchCaseInsensitive(t *testing.T) {
	base := &RuleConfig{Checks: []CheckDefinition{check("Doc-1", SeverityWarning)}}
	override := &RuleConfig{Checks: []CheckDefinition{check("doc-1", SeverityError)}}

	merged := Merge(base, override)
	if len(merged.Checks) != 1 {
		t.Fatalf("checks = %d, want 1", len(merged.Checks))
	}
	if merged.Checks[0].Severity != SeverityError {
		t.Error("case-insensitive match should take the override")
	}
}

func TestMerge_KeepsBaseAndAppendsNew(t *testing.T) {
	base := &RuleConfig{Checks: []CheckDefinition{
		check("a", SeverityInfo),
		check("b", SeverityWarning),
	}}
	override := &RuleConfig{Checks: []CheckDefinition{
		check("b", SeverityError),
		check("c", SeverityInfo),
	}}

	merged := Merge(base, override)
	if len(merged.Checks) != 3 {
		t.Fatalf("checks = %d, want 3", len(merged.Checks))
	}
	if merged.Checks[0].ID != "a" || merged.Checks[1].ID != "b" || merged.Checks[2].ID != "c" {
		t.Errorf("order = %v", []string{merged.Checks[0].ID, merged.Checks[1].ID, merged.Checks[2].ID})
	}
	if merged.Checks[1].Severity != SeverityError {
		t.Error("b should carry the override severity")
	}
}

func TestMerge_VersionIsMax(t *testing.T) {
	if got := Merge(&RuleConfig{Version: 3}, &RuleConfig{Version: 2}).Version; got != 3 {
		t.Errorf("version = %d, want 3", got)
	}
	if got := Merge(&RuleConfig{Version: 1}, &RuleConfig{Version: 4}).Version; got != 4 {
		t.Errorf("version = %d, want 4", got)
	}
}

func TestMerge_IncludeReplacedExcludeUnioned(t *testing.T) {
	base := &RuleConfig{
		IncludePaths: []string{"src/**"},
		ExcludePaths: []string{"vendor/**", "dist/**"},
	}
	override := &RuleConfig{
		IncludePaths: []string{"lib/**"},
		ExcludePaths: []string{"dist/**", "tmp/**"},
	}

	merged := Merge(base, override)
	if !reflect.DeepEqual(merged.IncludePaths, []string{"lib/**"}) {
		t.Errorf("include = %v, want wholesale replacement", merged.IncludePaths)
	}
	if !reflect.DeepEqual(merged.ExcludePaths, []string{"vendor/**", "dist/**", "tmp/**"}) {
		t.Errorf("exclude = %v, want de-duplicated union", merged.ExcludePaths)
	}

	// Empty override include keeps the base list.
	merged = Merge(base, &RuleConfig{})
	if !reflect.DeepEqual(merged.IncludePaths, []string{"src/**"}) {
		t.Errorf("include = %v, want base kept", merged.IncludePaths)
	}
}

func TestMerge_OverrideDecidesInherit(t *testing.T) {
	base := &RuleConfig{Inherit: boolPtr(true)}
	override := &RuleConfig{Inherit: boolPtr(false)}
	if Merge(base, override).InheritsBase() {
		t.Error("override's inherit=false must win")
	}

	// Absent on the override means the default, regardless of base.
	base = &RuleConfig{Inherit: boolPtr(false)}
	if !Merge(base, &RuleConfig{}).InheritsBase() {
		t.Error("absent override inherit should read as true")
	}
}

func TestMerge_PRChecksIndependent(t *testing.T) {
	base := &RuleConfig{
		Checks:   []CheckDefinition{check("x", SeverityInfo)},
		PRChecks: []CheckDefinition{check("x", SeverityWarning)},
	}
	override := &RuleConfig{
		PRChecks: []CheckDefinition{check("x", SeverityError)},
	}

	merged := Merge(base, override)
	if merged.Checks[0].Severity != SeverityInfo {
		t.Error("file-level check must not be touched by a PR-level override")
	}
	if merged.PRChecks[0].Severity != SeverityError {
		t.Error("PR-level override lost")
	}
}

func TestMerge_AnonymousChecksNeverOverridden(t *testing.T) {
	// Both layers define a same-named check without an id. Load-time
	// normalization gives each a distinct random id, so the merge keeps
	// both instead of letting one override the other.
	baseDoc := []byte(`
checks:
  - severity: warning
    description: no magic numbers
`)
	overrideDoc := []byte(`
checks:
  - severity: error
    description: no magic numbers
`)
	base, err := Parse(baseDoc)
	if err != nil {
		t.Fatal(err)
	}
	override, err := Parse(overrideDoc)
	if err != nil {
		t.Fatal(err)
	}

	merged := Merge(base, override)
	if len(merged.Checks) != 2 {
		t.Fatalf("checks = %d, want both anonymous checks kept", len(merged.Checks))
	}
	if merged.Checks[0].ID == merged.Checks[1].ID {
		t.Error("anonymous checks must receive distinct ids")
	}
}

func TestMerge_Deterministic(t *testing.T) {
	base := &RuleConfig{
		Version:      2,
		ExcludePaths: []string{"vendor/**"},
		Checks:       []CheckDefinition{check("a", SeverityInfo), check("b", SeverityWarning)},
	}
	override := &RuleConfig{
		Version: 3,
		Checks:  []CheckDefinition{check("b", SeverityError)},
	}

	first := Merge(base, override)
	second := Merge(base, override)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must merge identically")
	}
}

func TestMerge_NilLayers(t *testing.T) {
	cfg := &RuleConfig{Version: 1}
	if Merge(nil, cfg) != cfg {
		t.Error("nil base should pass the override through")
	}
	if Merge(cfg, nil) != cfg {
		t.Error("nil override should pass the base through")
	}
}
