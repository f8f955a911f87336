package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mcquiz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "mcquiz",
	Short: "Multiple-choice quiz trainer",
	Long:  "mcquiz runs multiple-choice quizzes from a JSON question bank in the terminal and tracks how you do over time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/mcquiz/config.yml)")
	flags.String("questions", "", "Path to question bank (overrides MCQUIZ_QUESTIONS env var)")
	flags.String("stats", "", "Path to statistics file (overrides MCQUIZ_STATS env var)")
	flags.String("flagged", "", "Path to flagged questions file (overrides MCQUIZ_FLAGGED env var)")
	flags.String("db", "", "Path to SQLite history database (overrides MCQUIZ_DB env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(flaggedCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the configuration with the persistent flags taking
// precedence over the environment and the config file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var o config.Overrides
	o.ConfigPath, _ = cmd.Flags().GetString("config")
	o.Questions, _ = cmd.Flags().GetString("questions")
	o.Stats, _ = cmd.Flags().GetString("stats")
	o.Flagged, _ = cmd.Flags().GetString("flagged")
	o.DB, _ = cmd.Flags().GetString("db")
	return config.Load(o)
}
