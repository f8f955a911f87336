package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcquiz/internal/questions"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a question bank against the schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			path = cfg.QuestionsPath
		}

		qs, err := questions.LoadFile(path)
		if err != nil {
			return err
		}

		multi := 0
		for _, q := range qs {
			if q.Correct.Len() > 1 {
				multi++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions (%d with several correct answers)\n", path, len(qs), multi)
		return nil
	},
}
