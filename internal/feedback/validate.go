package feedback

import (
	"fmt"
	"strings"
)

// Field size limits for a feedback submission.
const (
	MaxExtensionLen   = 20
	MaxRuleLen        = 100
	MaxIssueHashLen   = 64
	MaxSnippetLen     = 64000
	MaxSuggestionLen  = 64000
	MaxCorrectionLen  = 64000
	MaxReasonLen      = 1000
	MaxContributorLen = 100
	MaxRepositoryLen  = 200

	errExceedsMaxLengthFmt = "exceeds max length %d"
	errRequiredNonEmpty    = "is required and must be non-empty"
)

// ValidationError is a single field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Submission is a candidate feedback event as supplied by a caller, before
// validation and normalization.
type Submission struct {
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
}

// Validate checks a submission against the structural rules and returns
// either a normalized event or a non-empty list of errors, never both.
// All problems are collected so the caller sees every failure at once.
//
// Normalization lowercases the file extension and truncates oversized
// free-text fields to their storage ceilings (see Truncate).
func Validate(sub Submission) (*Event, []ValidationError) {
	var errs []ValidationError
	addError := func(field, message string) {
		errs = append(errs, ValidationError{Field: field, Message: message})
	}

	ext := strings.ToLower(strings.TrimSpace(sub.FileExtension))
	switch {
	case ext == "":
		addError("fileExtension", errRequiredNonEmpty)
	case !strings.HasPrefix(ext, "."):
		addError("fileExtension", "must start with a dot")
	case len(ext) > MaxExtensionLen:
		addError("fileExtension", fmt.Sprintf(errExceedsMaxLengthFmt, MaxExtensionLen))
	}

	rule := strings.TrimSpace(sub.Rule)
	switch {
	case rule == "":
		addError("rule", errRequiredNonEmpty)
	case len(rule) > MaxRuleLen:
		addError("rule", fmt.Sprintf(errExceedsMaxLengthFmt, MaxRuleLen))
	}

	hash := strings.TrimSpace(sub.IssueHash)
	switch {
	case hash == "":
		addError("issueHash", errRequiredNonEmpty)
	case len(hash) > MaxIssueHashLen:
		addError("issueHash", fmt.Sprintf(errExceedsMaxLengthFmt, MaxIssueHashLen))
	}

	if len(sub.Reason) > MaxReasonLen {
		addError("reason", fmt.Sprintf(errExceedsMaxLengthFmt, MaxReasonLen))
	}
	if len(sub.Contributor) > MaxContributorLen {
		addError("contributor", fmt.Sprintf(errExceedsMaxLengthFmt, MaxContributorLen))
	}
	if len(sub.Repository) > MaxRepositoryLen {
		addError("repository", fmt.Sprintf(errExceedsMaxLengthFmt, MaxRepositoryLen))
	}

	if len(errs) > 0 {
		return nil, errs
	}

	snippet, _ := Truncate(sub.CodeSnippet, MaxSnippetLen)
	suggestion, _ := Truncate(sub.Suggestion, MaxSuggestionLen)
	correction, _ := Truncate(sub.Correction, MaxCorrectionLen)

	return &Event{
		FileExtension: ext,
		Rule:          rule,
		CodeSnippet:   snippet,
		Suggestion:    suggestion,
		IssueHash:     hash,
		IsHelpful:     sub.IsHelpful,
		Reason:        sub.Reason,
		Correction:    correction,
		Contributor:   strings.TrimSpace(sub.Contributor),
		Repository:    strings.TrimSpace(sub.Repository),
	}, nil
}
