package results

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcquiz/internal/router"
	"github.com/abhisek/mcquiz/internal/screen"
	"github.com/abhisek/mcquiz/internal/session"
	"github.com/abhisek/mcquiz/internal/ui/components"
	"github.com/abhisek/mcquiz/internal/ui/layout"
	"github.com/abhisek/mcquiz/internal/ui/theme"
)

// ResultsScreen displays the outcome of a finished quiz.
type ResultsScreen struct {
	summary     session.Summary
	buttons     components.ButtonRow
	showDetails bool
	selected    int
	expanded    map[int]bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. restart is invoked for "Restart"; a nil
// restart disables it.
func New(summary session.Summary, restart func() tea.Cmd) *ResultsScreen {
	home := func() tea.Cmd {
		return func() tea.Msg { return router.PopToRootMsg{} }
	}
	if restart == nil {
		restart = func() tea.Cmd { return nil }
	}
	return &ResultsScreen{
		summary: summary,
		buttons: components.NewButtonRow(
			components.NewButton("Restart", false, restart),
			components.NewButton("Home", false, home),
		),
		expanded: make(map[int]bool),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	if s.showDetails {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Expand"},
			{Key: "D", Description: "Hide details"},
			{Key: "R", Description: "Restart"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "D", Description: "Details"},
		{Key: "R", Description: "Restart"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "r":
		return s, s.buttons.Buttons[0].OnPress()
	case "d":
		s.showDetails = !s.showDetails
		return s, nil
	}

	if s.showDetails {
		switch kmsg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.summary.Results)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.summary
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Title, "Quiz complete!"))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		fmt.Sprintf("Score: %d/%d    %.0f%%", sum.Score, sum.Total, sum.Percent)))
	b.WriteString("\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Time: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	banner := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 3).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(gradeColor(sum.Grade)).
		Foreground(gradeColor(sum.Grade)).
		Render(gradeMessage(sum.Grade))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, banner))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.buttons.View()))
	b.WriteString("\n\n")

	if s.showDetails {
		b.WriteString(s.renderDetails(width))
	}

	return b.String()
}

// renderDetails lists every submitted answer, expanding the marked ones.
func (s *ResultsScreen) renderDetails(width int) string {
	cw := components.ContentWidth(width)
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Detailed results")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	if len(s.summary.Results) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("No answers recorded")))
		return b.String()
	}

	var lines []string
	for i, r := range s.summary.Results {
		verdict := theme.Correct.Render("✓")
		if !r.Correct {
			verdict = theme.Incorrect.Render("✗")
		}
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		text := layout.Truncate(fmt.Sprintf("%d. %s", r.Position+1, r.Question.Text), cw-6)
		style := theme.Unselected
		if i == s.selected {
			style = theme.Selected
		}
		lines = append(lines, prefix+verdict+" "+style.Render(text))

		if s.expanded[i] {
			lines = append(lines, "      "+components.RenderFields([]components.Field{
				{Label: "Your answer", Value: yourAnswer(r.Selected)},
				{Label: "Correct answer", Value: strings.Join(r.Question.CorrectAnswers(), ", ")},
				{Label: "Result", Value: verdictText(r.Correct)},
			}))
		}
	}

	block := lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	return b.String()
}

func yourAnswer(selected []string) string {
	if len(selected) == 0 {
		return "No answer"
	}
	return strings.Join(selected, ", ")
}

func verdictText(correct bool) string {
	if correct {
		return "Correct"
	}
	return "Incorrect"
}

func gradeMessage(g session.Grade) string {
	switch g {
	case session.GradeExcellent:
		return "Excellent! You really know this."
	case session.GradeGood:
		return "Good job! A little more practice to go."
	default:
		return "Needs work. Keep practicing!"
	}
}

func gradeColor(g session.Grade) color.Color {
	switch g {
	case session.GradeExcellent:
		return theme.Success
	case session.GradeGood:
		return theme.Warning
	default:
		return theme.Error
	}
}
