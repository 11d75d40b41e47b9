package ruleset

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// PathIncluded reports whether a repo-relative path falls inside the
// config's include/exclude globs. An empty include list means everything
// is included; exclusion always wins.
func (c *RuleConfig) PathIncluded(path string) bool {
	path = filepath.ToSlash(path)
	for _, glob := range c.ExcludePaths {
		if ok, _ := doublestar.Match(glob, path); ok {
			return false
		}
	}
	if len(c.IncludePaths) == 0 {
		return true
	}
	for _, glob := range c.IncludePaths {
		if ok, _ := doublestar.Match(glob, path); ok {
			return true
		}
	}
	return false
}

// ChecksForPath returns the file-level checks applicable to one
// repo-relative path: the path must pass the config's include/exclude
// globs, and each check's own scope globs (empty scope matches every
// path).
func (c *RuleConfig) ChecksForPath(path string) []CheckDefinition {
	if !c.PathIncluded(path) {
		return nil
	}
	path = filepath.ToSlash(path)
	var applicable []CheckDefinition
	for _, check := range c.Checks {
		if checkInScope(check, path) {
			applicable = append(applicable, check)
		}
	}
	return applicable
}

func checkInScope(check CheckDefinition, path string) bool {
	if len(check.Scope) == 0 {
		return true
	}
	for _, glob := range check.Scope {
		if ok, _ := doublestar.Match(glob, path); ok {
			return true
		}
	}
	return false
}
