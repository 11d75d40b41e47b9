package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/runger/revlearn/internal/metrics"
	"github.com/runger/revlearn/internal/ruleset"
	"github.com/runger/revlearn/internal/store"
)

var (
	drDBPath   string
	drRepoRoot string
)

var doctorCmd = &cobra.Command{
	Use:    "doctor",
	Short:  "Check the revlearn installation",
	Hidden: true,
	Long: `Run diagnostic checks:
- feedback database opens and has the expected schema
- embedded default rules parse
- central and repo config layers, if present, parse

A counter summary for this process follows the checks.

Examples:
  revlearn doctor`,
	RunE: runDoctor,
}

type checkResult struct {
	name    string
	status  string // "ok", "warn", "error"
	message string
}

func init() {
	doctorCmd.Flags().StringVar(&drDBPath, "db", "", "feedback database path (default ~/.revlearn/feedback.db)")
	doctorCmd.Flags().StringVar(&drRepoRoot, "repo-root", ".", "repository root to probe for the repo-local config")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	results := make([]checkResult, 0, 4)

	// Feedback database
	st, err := store.Open(ctx, store.Options{Path: drDBPath, Logger: slog.Default()})
	if err != nil {
		results = append(results, checkResult{"feedback database", "error", err.Error()})
	} else {
		if schemaErr := store.ValidateSchema(ctx, st.DB()); schemaErr != nil {
			results = append(results, checkResult{"feedback database", "error", schemaErr.Error()})
		} else {
			results = append(results, checkResult{"feedback database", "ok", st.Path()})
		}
		st.Close()
	}

	// Embedded defaults
	if _, err := ruleset.EmbeddedDefaults(); err != nil {
		results = append(results, checkResult{"embedded rules", "error", err.Error()})
	} else {
		results = append(results, checkResult{"embedded rules", "ok", "built-in baseline parses"})
	}

	// Central layer
	if central := ruleset.CentralPathFromEnv(); central == "" {
		results = append(results, checkResult{"central rules", "warn", "no central document configured"})
	} else if data, err := os.ReadFile(central); err != nil {
		results = append(results, checkResult{"central rules", "warn", fmt.Sprintf("%s: %v", central, err)})
	} else if _, err := ruleset.Parse(data); err != nil {
		results = append(results, checkResult{"central rules", "error", fmt.Sprintf("%s: %v", central, err)})
	} else {
		results = append(results, checkResult{"central rules", "ok", central})
	}

	// Repo layer
	if repoPath := ruleset.DiscoverRepoPath(drRepoRoot); repoPath == "" {
		results = append(results, checkResult{"repo rules", "warn", "no repo document found"})
	} else if data, err := os.ReadFile(repoPath); err != nil {
		results = append(results, checkResult{"repo rules", "warn", fmt.Sprintf("%s: %v", repoPath, err)})
	} else if _, err := ruleset.Parse(data); err != nil {
		results = append(results, checkResult{"repo rules", "error", fmt.Sprintf("%s: %v", repoPath, err)})
	} else {
		results = append(results, checkResult{"repo rules", "ok", repoPath})
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, r := range results {
		fmt.Fprintf(out, "[%-5s] %-18s %s\n", r.status, r.name, r.message)
		if r.status == "error" {
			failed = true
		}
	}

	fmt.Fprintln(out, "\ncounters:")
	snap := metrics.Global.Snapshot()
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-22s %d\n", name, snap[name])
	}

	if failed {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}
