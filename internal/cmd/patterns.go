package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/runger/revlearn/internal/engine"
	"github.com/runger/revlearn/internal/learn"
	"github.com/runger/revlearn/internal/store"
)

var (
	ptExt         string
	ptMinOccur    int
	ptMaxResults  int
	ptMinAccuracy float64
	ptJSON        bool
	ptDBPath      string
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show learned patterns for a file extension",
	Long: `Recompute and rank the learned patterns for one file extension.

Patterns are ordered by accuracy (percentage of helpful feedback),
ties broken by occurrence count.

Examples:
  revlearn patterns --ext .go
  revlearn patterns --ext .py --min-occurrences 3 --min-accuracy 80 --json`,
	RunE: runPatterns,
}

func init() {
	defaults := learn.DefaultConfig()
	patternsCmd.Flags().StringVar(&ptExt, "ext", "", "file extension to query (required)")
	patternsCmd.Flags().IntVar(&ptMinOccur, "min-occurrences", defaults.MinOccurrences, "minimum group size for a pattern")
	patternsCmd.Flags().IntVar(&ptMaxResults, "max-results", defaults.MaxResults, "maximum patterns returned")
	patternsCmd.Flags().Float64Var(&ptMinAccuracy, "min-accuracy", defaults.MinAccuracyPercent, "minimum accuracy percent")
	patternsCmd.Flags().BoolVar(&ptJSON, "json", false, "emit JSON")
	patternsCmd.Flags().StringVar(&ptDBPath, "db", "", "feedback database path (default ~/.revlearn/feedback.db)")
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := store.Open(ctx, store.Options{Path: ptDBPath, Logger: slog.Default()})
	if err != nil {
		return err
	}
	defer st.Close()

	eng := engine.New(st, slog.Default())
	result, err := eng.Patterns(ctx, ptExt, learn.Config{
		MinOccurrences:     ptMinOccur,
		MaxResults:         ptMaxResults,
		MinAccuracyPercent: ptMinAccuracy,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if ptJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(out, "%d pattern(s) from %d feedback event(s) for %s\n",
		len(result.Patterns), result.TotalFeedback, ptExt)
	for _, p := range result.Patterns {
		fmt.Fprintf(out, "\n%s  (%s)\n", p.Rule, p.PatternKey)
		fmt.Fprintf(out, "  accuracy: %.1f%%  helpful: %d/%d\n",
			p.AccuracyPercent, p.HelpfulCount, p.TotalOccurrences)
		for i, ex := range p.Examples {
			verdict := "helpful"
			if !ex.WasHelpful {
				verdict = "not helpful"
			}
			fmt.Fprintf(out, "  example %d (%s): %s\n", i+1, verdict, firstLine(ex.Suggestion))
		}
	}
	return nil
}

// firstLine keeps listings one line per entry.
func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + " ..."
		}
	}
	return s
}
