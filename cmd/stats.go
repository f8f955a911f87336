package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mcquiz/internal/report"
	"github.com/abhisek/mcquiz/internal/stats"
	"github.com/abhisek/mcquiz/internal/ui/layout"
	"github.com/abhisek/mcquiz/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show question statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		sortName, _ := cmd.Flags().GetString("sort")
		page, _ := cmd.Flags().GetInt("page")
		details, _ := cmd.Flags().GetBool("details")

		mode, err := report.ParseSortMode(sortName)
		if err != nil {
			return err
		}
		if page < 1 {
			return fmt.Errorf("page must be at least 1, got %d", page)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		s, err := stats.NewFileRepo(cfg.StatsPath).Load()
		var loadErr *stats.LoadError
		if errors.As(err, &loadErr) {
			fmt.Fprintln(os.Stderr, "warning:", err)
		}

		w := cmd.OutOrStdout()
		printOverview(w, report.Summarize(s))
		if len(s.Questions) == 0 {
			fmt.Fprintln(w, "\nNo questions attempted yet.")
			return nil
		}

		p := report.Paginate(report.Rows(s, mode), page-1, cfg.PageSize)
		fmt.Fprintln(w)
		lipgloss.Fprintln(w, theme.Subtitle.Render(
			fmt.Sprintf("Sorted by %s, page %d of %d", mode.Label(), p.Index+1, p.Pages)))

		fmt.Fprintf(w, "%-50s  %8s  %7s  %5s  %7s\n", "Question", "Attempts", "Correct", "Wrong", "Success")
		fmt.Fprintln(w, strings.Repeat("─", 85))
		for _, row := range p.Rows {
			fmt.Fprintf(w, "%-50s  %8d  %7d  %5d  %6.1f%%\n",
				layout.Truncate(row.Text, 50),
				row.Stats.Attempts, row.Stats.CorrectAttempts, row.Stats.IncorrectAttempts,
				row.SuccessRate*100)
			if details {
				printDetails(w, row.Stats, cfg.DetailRecentWrong)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("sort", report.SortFirstSeen.String(), "Sort order: first-seen, most-wrong, most-correct or recent")
	statsCmd.Flags().Int("page", 1, "Page number")
	statsCmd.Flags().Bool("details", false, "Show correct answers, attempt times and recent wrong answers")
}

func printOverview(w io.Writer, o report.Overview) {
	lipgloss.Fprintln(w, theme.Title.Render("Statistics"))
	fmt.Fprintf(w, "Completed quizzes:  %d\n", o.TotalQuizzes)
	fmt.Fprintf(w, "Questions seen:     %d\n", o.Questions)
	fmt.Fprintf(w, "Total attempts:     %d\n", o.Attempts)
	fmt.Fprintf(w, "Overall success:    %.1f%%\n", o.SuccessRate*100)
}

func printDetails(w io.Writer, qs *stats.QuestionStats, recentWrong int) {
	fmt.Fprintf(w, "    correct answers: %s\n", strings.Join(qs.CorrectAnswers, ", "))
	fmt.Fprintf(w, "    first attempted: %s   last attempted: %s\n",
		qs.FirstAttempted.Display(), qs.LastAttempted.Display())
	for _, wa := range report.RecentWrong(qs, recentWrong) {
		given := strings.Join(wa.Answer, ", ")
		if given == "" {
			given = "No answer"
		}
		fmt.Fprintf(w, "    ✗ %s  %s\n", wa.Timestamp.Display(), given)
	}
}
