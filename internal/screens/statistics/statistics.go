package statistics

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcquiz/internal/report"
	"github.com/abhisek/mcquiz/internal/router"
	"github.com/abhisek/mcquiz/internal/screen"
	"github.com/abhisek/mcquiz/internal/stats"
	"github.com/abhisek/mcquiz/internal/ui/components"
	"github.com/abhisek/mcquiz/internal/ui/layout"
	"github.com/abhisek/mcquiz/internal/ui/theme"
)

// Source provides the statistics to display. stats.Tracker implements it.
type Source interface {
	Store() *stats.Store
}

// Options configures the statistics screen.
type Options struct {
	PageSize    int
	RecentWrong int
}

// StatisticsScreen shows the overview and the per-question list.
type StatisticsScreen struct {
	src      Source
	opts     Options
	mode     report.SortMode
	page     int
	selected int // index within the current page
	expanded map[string]bool
}

var _ screen.Screen = (*StatisticsScreen)(nil)
var _ screen.KeyHintProvider = (*StatisticsScreen)(nil)

// New creates a StatisticsScreen reading from src.
func New(src Source, opts Options) *StatisticsScreen {
	if opts.PageSize < 1 {
		opts.PageSize = 5
	}
	return &StatisticsScreen{
		src:      src,
		opts:     opts,
		expanded: make(map[string]bool),
	}
}

func (s *StatisticsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatisticsScreen) Title() string {
	return "Statistics"
}

func (s *StatisticsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "←→", Description: "Page"},
		{Key: "O", Description: "Sort"},
		{Key: "Esc", Description: "Back"},
	}
}

// currentPage recomputes the visible page from the live store.
func (s *StatisticsScreen) currentPage() report.Page {
	rows := report.Rows(s.src.Store(), s.mode)
	p := report.Paginate(rows, s.page, s.opts.PageSize)
	s.page = p.Index
	s.selected = min(max(s.selected, 0), max(len(p.Rows)-1, 0))
	return p
}

func (s *StatisticsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	p := s.currentPage()
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "o":
		s.mode = s.mode.Next()
		s.page = 0
		s.selected = 0
	case "left", "h":
		if s.page > 0 {
			s.page--
			s.selected = 0
		}
	case "right", "l":
		if s.page < p.Pages-1 {
			s.page++
			s.selected = 0
		}
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(p.Rows)-1 {
			s.selected++
		}
	case "enter":
		if s.selected < len(p.Rows) {
			text := p.Rows[s.selected].Text
			s.expanded[text] = !s.expanded[text]
		}
	}
	return s, nil
}

func (s *StatisticsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	store := s.src.Store()
	o := report.Summarize(store)

	var b strings.Builder
	b.WriteString("\n")

	overview := components.RenderFields([]components.Field{
		{Label: "Completed quizzes", Value: fmt.Sprintf("%d", o.TotalQuizzes)},
		{Label: "Questions seen", Value: fmt.Sprintf("%d", o.Questions)},
		{Label: "Total attempts", Value: fmt.Sprintf("%d", o.Attempts)},
		{Label: "Overall success", Value: fmt.Sprintf("%.1f%%", o.SuccessRate*100)},
	})
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Panel("Overview", overview, cw)))
	b.WriteString("\n\n")

	if len(store.Questions) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No statistics yet. Take a quiz!"))
		return b.String()
	}

	p := s.currentPage()
	header := fmt.Sprintf("Sort: %s    Page %d/%d    %d questions", s.mode.Label(), p.Index+1, p.Pages, p.Total)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Width(cw).Render(header)))
	b.WriteString("\n")

	var lines []string
	for i, row := range p.Rows {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		rate := fmt.Sprintf("%3.0f%% (%d/%d)", row.SuccessRate*100, row.Stats.CorrectAttempts, row.Stats.Attempts)
		text := layout.Truncate(row.Text, max(cw-lipgloss.Width(rate)-4, 8))
		pad := max(cw-2-lipgloss.Width(text)-lipgloss.Width(rate), 1)
		lines = append(lines, style.Render(prefix+text)+strings.Repeat(" ", pad)+rateStyle(row.SuccessRate).Render(rate))

		if s.expanded[row.Text] {
			lines = append(lines, s.renderDetails(row, cw-6))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))))

	return b.String()
}

func (s *StatisticsScreen) renderDetails(row report.Row, width int) string {
	qs := row.Stats
	fields := components.RenderFields([]components.Field{
		{Label: "Attempts", Value: fmt.Sprintf("%d", qs.Attempts)},
		{Label: "Correct", Value: fmt.Sprintf("%d", qs.CorrectAttempts)},
		{Label: "Wrong", Value: fmt.Sprintf("%d", qs.IncorrectAttempts)},
		{Label: "Success", Value: fmt.Sprintf("%.1f%%", row.SuccessRate*100)},
		{Label: "Correct answers", Value: strings.Join(qs.CorrectAnswers, ", ")},
		{Label: "First attempted", Value: qs.FirstAttempted.Display()},
		{Label: "Last attempted", Value: qs.LastAttempted.Display()},
	})

	var b strings.Builder
	b.WriteString(fields)
	recent := report.RecentWrong(qs, s.opts.RecentWrong)
	if len(recent) > 0 {
		b.WriteString("\n" + theme.Label.Render("Recent wrong answers:"))
		for _, w := range recent {
			given := strings.Join(w.Answer, ", ")
			if given == "" {
				given = "No answer"
			}
			line := fmt.Sprintf("%s  %s", w.Timestamp.Display(), given)
			b.WriteString("\n  " + theme.Incorrect.Render(layout.Truncate(line, width-2)))
		}
	}
	return lipgloss.NewStyle().MarginLeft(4).Render(b.String())
}

func rateStyle(rate float64) lipgloss.Style {
	switch {
	case rate >= 0.8:
		return lipgloss.NewStyle().Foreground(theme.Success)
	case rate >= 0.6:
		return lipgloss.NewStyle().Foreground(theme.Warning)
	default:
		return lipgloss.NewStyle().Foreground(theme.Error)
	}
}
