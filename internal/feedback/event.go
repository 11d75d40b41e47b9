// Package feedback defines the review feedback event model and its
// structural validation rules.
package feedback

import (
	"strings"
)

// PatternKeyDelimiter joins the three grouping fields of a pattern key.
const PatternKeyDelimiter = "|"

// Event is a single piece of reviewer feedback on an AI-generated review
// suggestion. Events are immutable once stored: the store assigns ID and
// TSMs at insert time and nothing updates them afterwards.
type Event struct {
	ID            string
	FileExtension string
	Rule          string
	CodeSnippet   string
	Suggestion    string
	IssueHash     string
	IsHelpful     bool
	Reason        string
	Correction    string
	Contributor   string
	Repository    string
	TSMs          int64
}

// PatternKey returns the grouping key for this event: two events belong to
// the same learned pattern iff rule, extension, and issue hash all match.
func (e *Event) PatternKey() string {
	return PatternKey(e.Rule, e.FileExtension, e.IssueHash)
}

// PatternKey builds a pattern key from its three components.
func PatternKey(rule, fileExtension, issueHash string) string {
	return strings.Join([]string{rule, fileExtension, issueHash}, PatternKeyDelimiter)
}
