package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/runger/revlearn/internal/engine"
	"github.com/runger/revlearn/internal/feedback"
	"github.com/runger/revlearn/internal/store"
)

var (
	fbExt         string
	fbRule        string
	fbSnippet     string
	fbSuggestion  string
	fbIssueHash   string
	fbHelpful     bool
	fbNotHelpful  bool
	fbReason      string
	fbCorrection  string
	fbContributor string
	fbRepository  string
	fbDBPath      string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record feedback on a review suggestion",
	Long: `Record whether an AI-generated review suggestion was helpful.

Examples:
  revlearn feedback --ext .go --rule STYLE-021 --issue-hash 4f2a --helpful
  revlearn feedback --ext .py --rule SEC-003 --issue-hash 91bc --not-helpful \
      --reason "false positive on test fixtures"`,
	RunE: runFeedback,
}

func init() {
	feedbackCmd.Flags().StringVar(&fbExt, "ext", "", "file extension the suggestion applied to (e.g. .go)")
	feedbackCmd.Flags().StringVar(&fbRule, "rule", "", "rule that produced the suggestion")
	feedbackCmd.Flags().StringVar(&fbIssueHash, "issue-hash", "", "hash identifying the suggestion instance")
	feedbackCmd.Flags().StringVar(&fbSnippet, "snippet", "", "the code the suggestion was about (optional)")
	feedbackCmd.Flags().StringVar(&fbSuggestion, "suggestion", "", "the suggestion text (optional)")
	feedbackCmd.Flags().BoolVar(&fbHelpful, "helpful", false, "the suggestion was helpful")
	feedbackCmd.Flags().BoolVar(&fbNotHelpful, "not-helpful", false, "the suggestion was not helpful")
	feedbackCmd.Flags().StringVar(&fbReason, "reason", "", "why the suggestion was judged this way (optional)")
	feedbackCmd.Flags().StringVar(&fbCorrection, "correction", "", "what the correct suggestion would have been (optional)")
	feedbackCmd.Flags().StringVar(&fbContributor, "contributor", "", "who gave the feedback (optional)")
	feedbackCmd.Flags().StringVar(&fbRepository, "repository", "", "repository the review ran in (optional)")
	feedbackCmd.Flags().StringVar(&fbDBPath, "db", "", "feedback database path (default ~/.revlearn/feedback.db)")
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	if fbHelpful == fbNotHelpful {
		return fmt.Errorf("exactly one of --helpful or --not-helpful is required")
	}

	ctx := cmd.Context()
	st, err := store.Open(ctx, store.Options{Path: fbDBPath, Logger: slog.Default()})
	if err != nil {
		return err
	}
	defer st.Close()

	eng := engine.New(st, slog.Default())
	id, verrs, err := eng.Submit(ctx, feedback.Submission{
		FileExtension: fbExt,
		Rule:          fbRule,
		CodeSnippet:   fbSnippet,
		Suggestion:    fbSuggestion,
		IssueHash:     fbIssueHash,
		IsHelpful:     fbHelpful,
		Reason:        fbReason,
		Correction:    fbCorrection,
		Contributor:   fbContributor,
		Repository:    fbRepository,
	})
	if err != nil {
		return err
	}
	if len(verrs) > 0 {
		for _, ve := range verrs {
			fmt.Fprintf(cmd.ErrOrStderr(), "invalid %s\n", ve.Error())
		}
		return fmt.Errorf("feedback rejected: %d validation error(s)", len(verrs))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "recorded feedback %s\n", id)
	return nil
}
