// Package ruleset loads and merges the layered rule-check configuration:
// embedded defaults, organization-wide standards, and repository overrides,
// cascaded by stable check identifier.
package ruleset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Severity classifies how a check finding is reported.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// PatternKind discriminates the typed pattern payload of a check.
type PatternKind string

const (
	KindMetricThreshold PatternKind = "metric_threshold"
	KindRegex           PatternKind = "regex"
	KindStaticList      PatternKind = "static_list"
	KindInspection      PatternKind = "inspection"
)

// MetricThreshold flags code where a named metric crosses a threshold.
type MetricThreshold struct {
	Metric    string  `yaml:"metric" json:"metric"`
	Operator  string  `yaml:"operator" json:"operator"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// RegexPattern flags lines matching an expression.
type RegexPattern struct {
	Expression string `yaml:"expression" json:"expression"`
	Multiline  bool   `yaml:"multiline" json:"multiline,omitempty"`
}

// StaticList flags occurrences of any listed item.
type StaticList struct {
	Items []string `yaml:"items" json:"items"`
}

// InspectionDirective is a free-form instruction handed to the review
// engine rather than matched mechanically.
type InspectionDirective struct {
	Directive string `yaml:"directive" json:"directive"`
}

// PatternSpec is the tagged variant payload of a check. Exactly one of the
// case fields is set, selected by Kind.
type PatternSpec struct {
	Kind       PatternKind          `json:"type"`
	Metric     *MetricThreshold     `json:"metric,omitempty"`
	Regex      *RegexPattern        `json:"regex,omitempty"`
	Static     *StaticList          `json:"static_list,omitempty"`
	Inspection *InspectionDirective `json:"inspection,omitempty"`
}

// patternHeader peeks at the discriminator before decoding the payload.
type patternHeader struct {
	Type PatternKind `yaml:"type"`
}

// UnmarshalYAML decodes the discriminated pattern payload: a "type" field
// selects the case, and the remaining fields are decoded into that case's
// struct only.
func (p *PatternSpec) UnmarshalYAML(node *yaml.Node) error {
	var header patternHeader
	if err := node.Decode(&header); err != nil {
		return err
	}
	p.Kind = header.Type
	switch header.Type {
	case KindMetricThreshold:
		p.Metric = &MetricThreshold{}
		return node.Decode(p.Metric)
	case KindRegex:
		p.Regex = &RegexPattern{}
		return node.Decode(p.Regex)
	case KindStaticList:
		p.Static = &StaticList{}
		return node.Decode(p.Static)
	case KindInspection:
		p.Inspection = &InspectionDirective{}
		return node.Decode(p.Inspection)
	default:
		return fmt.Errorf("unknown pattern type %q", header.Type)
	}
}

// MarshalYAML re-emits the active case with its discriminator.
func (p PatternSpec) MarshalYAML() (interface{}, error) {
	switch p.Kind {
	case KindMetricThreshold:
		return struct {
			Type            PatternKind `yaml:"type"`
			MetricThreshold `yaml:",inline"`
		}{p.Kind, *p.Metric}, nil
	case KindRegex:
		return struct {
			Type         PatternKind `yaml:"type"`
			RegexPattern `yaml:",inline"`
		}{p.Kind, *p.Regex}, nil
	case KindStaticList:
		return struct {
			Type       PatternKind `yaml:"type"`
			StaticList `yaml:",inline"`
		}{p.Kind, *p.Static}, nil
	case KindInspection:
		return struct {
			Type                PatternKind `yaml:"type"`
			InspectionDirective `yaml:",inline"`
		}{p.Kind, *p.Inspection}, nil
	default:
		return nil, fmt.Errorf("unknown pattern type %q", p.Kind)
	}
}

// CheckDefinition is one named rule with severity, scope, and a matching
// directive. Checks without an author-supplied id are assigned a fresh
// random one at load time, which guarantees they can never be matched (and
// therefore never overridden) by a check in another layer.
type CheckDefinition struct {
	ID          string       `yaml:"id" json:"id"`
	Severity    Severity     `yaml:"severity" json:"severity"`
	Scope       []string     `yaml:"scope" json:"scope,omitempty"`
	Description string       `yaml:"description" json:"description"`
	Guidance    string       `yaml:"guidance" json:"guidance,omitempty"`
	Pattern     *PatternSpec `yaml:"pattern" json:"pattern,omitempty"`
}

// RuleConfig is one cascade layer's document. The merged effective config
// reuses the same shape; it is always freshly computed and never persisted.
type RuleConfig struct {
	Version      int               `yaml:"version" json:"version"`
	IncludePaths []string          `yaml:"include_paths" json:"include_paths,omitempty"`
	ExcludePaths []string          `yaml:"exclude_paths" json:"exclude_paths,omitempty"`
	Checks       []CheckDefinition `yaml:"checks" json:"checks"`
	PRChecks     []CheckDefinition `yaml:"pr_checks" json:"pr_checks,omitempty"`

	// Inherit controls whether this layer merges on top of the layers
	// below it. Absent means true.
	Inherit *bool `yaml:"inherit" json:"inherit,omitempty"`
}

// InheritsBase reports whether this layer cascades on top of lower layers.
func (c *RuleConfig) InheritsBase() bool {
	return c.Inherit == nil || *c.Inherit
}
