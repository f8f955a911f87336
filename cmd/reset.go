package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete statistics, flagged questions and session history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		paths := []string{
			cfg.StatsPath,
			cfg.FlaggedPath,
			cfg.DBPath,
			cfg.DBPath + "-wal",
			cfg.DBPath + "-shm",
		}

		w := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintln(w, "This deletes:")
			for _, p := range paths[:3] {
				fmt.Fprintln(w, "  "+p)
			}
			return errors.New("refusing to reset without --yes")
		}

		for _, p := range paths {
			err := os.Remove(p)
			switch {
			case err == nil:
				fmt.Fprintln(w, "removed", p)
			case errors.Is(err, fs.ErrNotExist):
			default:
				return fmt.Errorf("remove %s: %w", p, err)
			}
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
