package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runger/revlearn/internal/metrics"
	"github.com/runger/revlearn/internal/ruleset"
)

var (
	rlRepoRoot string
	rlCentral  string
	rlPath     string
	rlJSON     bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Resolve the effective rule configuration",
	Long: `Cascade the embedded defaults, the central standards document, and
the repository's own config into one effective rule set.

The central document location comes from --central, the
REVLEARN_CENTRAL_CONFIG environment variable, or the default search
path, in that order. The repo document is the first match among
.revlearn/rules.yaml, .revlearn.yaml, and .github/revlearn-rules.yaml.

Examples:
  revlearn rules --repo-root .
  revlearn rules --repo-root . --path internal/server/handler.go`,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rlRepoRoot, "repo-root", ".", "repository root to search for the repo-local config")
	rulesCmd.Flags().StringVar(&rlCentral, "central", "", "central standards document (overrides env and defaults)")
	rulesCmd.Flags().StringVar(&rlPath, "path", "", "show only checks applicable to this repo-relative path")
	rulesCmd.Flags().BoolVar(&rlJSON, "json", false, "emit JSON instead of YAML")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	central := rlCentral
	if central == "" {
		central = ruleset.CentralPathFromEnv()
	}

	effective, err := ruleset.Resolve(ruleset.LoadOptions{
		Logger:      slog.Default(),
		CentralPath: central,
		RepoRoot:    rlRepoRoot,
	})
	if err != nil {
		return err
	}
	metrics.Global.ConfigResolutions.Add(1)

	out := cmd.OutOrStdout()
	if rlPath != "" {
		checks := effective.ChecksForPath(rlPath)
		if rlJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(checks)
		}
		fmt.Fprintf(out, "%d check(s) apply to %s\n", len(checks), rlPath)
		for _, c := range checks {
			fmt.Fprintf(out, "  [%s] %s: %s\n", c.Severity, c.ID, c.Description)
		}
		return nil
	}

	if rlJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(effective)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(effective)
}
