package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcquiz/internal/flagged"
)

var flaggedCmd = &cobra.Command{
	Use:   "flagged",
	Short: "List questions flagged as incorrect",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		entries, err := flagged.NewFileRepo(cfg.FlaggedPath).List()
		if err != nil {
			return fmt.Errorf("read flagged questions: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(w, "No flagged questions.")
			return nil
		}

		for i, e := range entries {
			fmt.Fprintf(w, "%d. %s\n", i+1, e.Text)
			fmt.Fprintf(w, "   options:  %s\n", strings.Join(e.Options, " | "))
			fmt.Fprintf(w, "   answer:   %s\n", strings.Join(e.Correct.Raw(), ", "))
			fmt.Fprintf(w, "   reason:   %s\n", e.Reason)
			fmt.Fprintf(w, "   flagged:  %s\n", e.MarkedAsIncorrect.Display())
		}
		fmt.Fprintf(w, "\n%d flagged\n", len(entries))
		return nil
	},
}
