package ruleset

import (
	"strings"
)

// Merge combines two cascade layers: override entries win over base entries
// that share a check id (compared case-insensitively), base entries without
// an override survive unchanged, and override-only entries are appended.
//
// The other fields follow fixed rules: version is the max of the two,
// include paths are replaced wholesale when the override supplies any,
// exclude paths are unioned, and the override alone decides the inherit
// flag for any further cascading.
//
// Merge is a pure function; neither input is modified.
func Merge(base, override *RuleConfig) *RuleConfig {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := &RuleConfig{
		Version: base.Version,
		Inherit: override.Inherit,
	}
	if override.Version > merged.Version {
		merged.Version = override.Version
	}

	if len(override.IncludePaths) > 0 {
		merged.IncludePaths = append([]string(nil), override.IncludePaths...)
	} else {
		merged.IncludePaths = append([]string(nil), base.IncludePaths...)
	}
	merged.ExcludePaths = unionStrings(base.ExcludePaths, override.ExcludePaths)

	merged.Checks = mergeChecks(base.Checks, override.Checks)
	merged.PRChecks = mergeChecks(base.PRChecks, override.PRChecks)
	return merged
}

// mergeChecks performs the keyed union. Base order is preserved for
// retained and overridden entries; override-only entries follow in their
// own order.
func mergeChecks(base, override []CheckDefinition) []CheckDefinition {
	overrideByID := make(map[string]CheckDefinition, len(override))
	for _, c := range override {
		overrideByID[strings.ToLower(c.ID)] = c
	}

	merged := make([]CheckDefinition, 0, len(base)+len(override))
	taken := make(map[string]bool, len(base))
	for _, c := range base {
		key := strings.ToLower(c.ID)
		if ov, ok := overrideByID[key]; ok {
			merged = append(merged, ov)
			taken[key] = true
		} else {
			merged = append(merged, c)
		}
	}
	for _, c := range override {
		if !taken[strings.ToLower(c.ID)] {
			merged = append(merged, c)
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// unionStrings concatenates two string sets, dropping duplicates while
// keeping first-seen order.
func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range append(append([]string(nil), a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
