package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/runger/revlearn/internal/engine"
	"github.com/runger/revlearn/internal/store"
)

var (
	stJSON   bool
	stDBPath string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show global feedback statistics",
	Long: `Summarize the whole feedback corpus: totals, helpfulness rate,
distinct patterns and contributors, per-extension counts, and the
top-contributor leaderboard.

Examples:
  revlearn stats
  revlearn stats --json`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&stJSON, "json", false, "emit JSON")
	statsCmd.Flags().StringVar(&stDBPath, "db", "", "feedback database path (default ~/.revlearn/feedback.db)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := store.Open(ctx, store.Options{Path: stDBPath, Logger: slog.Default()})
	if err != nil {
		return err
	}
	defer st.Close()

	eng := engine.New(st, slog.Default())
	stats, err := eng.Stats(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if stJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(out, "feedback:       %d (%d helpful, %d not helpful, %.1f%%)\n",
		stats.TotalFeedback, stats.HelpfulCount, stats.NotHelpfulCount, stats.HelpfulRatePercent)
	fmt.Fprintf(out, "patterns:       %d distinct\n", stats.DistinctPatterns)
	fmt.Fprintf(out, "contributors:   %d distinct\n", stats.DistinctContributors)

	if len(stats.ByExtension) > 0 {
		fmt.Fprintln(out, "\nby extension:")
		exts := make([]string, 0, len(stats.ByExtension))
		for ext := range stats.ByExtension {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		for _, ext := range exts {
			fmt.Fprintf(out, "  %-12s %d\n", ext, stats.ByExtension[ext])
		}
	}
	if len(stats.TopContributors) > 0 {
		fmt.Fprintln(out, "\ntop contributors:")
		for i, c := range stats.TopContributors {
			fmt.Fprintf(out, "  %d. %s (%d)\n", i+1, c.Name, c.Count)
		}
	}
	return nil
}
