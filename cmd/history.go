package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcquiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.EventRepo().QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(w, "No quizzes recorded.")
			return nil
		}

		fmt.Fprintf(w, "%-19s  %-8s  %8s  %7s  %s\n", "Finished", "Duration", "Answered", "Score", "Session")
		fmt.Fprintln(w, strings.Repeat("─", 85))
		for _, sess := range sessions {
			fmt.Fprintf(w, "%-19s  %5d:%02d  %8d  %3d/%-3d  %s\n",
				sess.Timestamp.Local().Format("2006-01-02 15:04:05"),
				sess.DurationSecs/60, sess.DurationSecs%60,
				sess.Answered, sess.Score, sess.QuestionsTotal, sess.SessionID)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to show")
}
