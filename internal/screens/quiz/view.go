package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcquiz/internal/report"
	"github.com/abhisek/mcquiz/internal/session"
	"github.com/abhisek/mcquiz/internal/ui/components"
	"github.com/abhisek/mcquiz/internal/ui/layout"
	"github.com/abhisek/mcquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if layout.IsCompactWidth(width) {
		return s.renderMain(width)
	}
	mainWidth := width - layout.SidePanelWidth - 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.renderMain(mainWidth),
		"  ",
		s.renderSidePanel(layout.SidePanelWidth),
	)
}

// renderMain renders the question, its options and the feedback.
func (s *QuizScreen) renderMain(width int) string {
	v := s.sess.Current()
	inner := max(width-4, 10)

	var b strings.Builder

	info := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d/%d", v.Position+1, v.Total))
	bar := components.NewProgressBar("", float64(v.Position+1)/float64(v.Total), false, min(24, inner/3))
	b.WriteString(info + "  " + bar.View())
	b.WriteString("\n")
	b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", inner)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(inner).
		MarginLeft(2).
		Foreground(theme.Text).
		Bold(true).
		Render(v.Question.Text))
	b.WriteString("\n")
	b.WriteString("  " + theme.Hint.Render("Select all that apply"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(s.checklist.View()))
	b.WriteString("\n")

	if v.Phase == session.PhaseShowingFeedback && v.Last != nil {
		b.WriteString(renderFeedback(v))
		b.WriteString("\n")
	}

	if s.flagging {
		b.WriteString("  " + theme.Label.Render("Flag reason: ") + s.reason.View())
		b.WriteString("\n")
	}

	if s.status != "" {
		style := theme.Status
		if s.statusErr {
			style = theme.ErrorText
		}
		b.WriteString("\n  " + style.Render(layout.Truncate(s.status, inner)))
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func renderFeedback(v session.View) string {
	var b strings.Builder
	if v.Last.Correct {
		b.WriteString("  " + theme.Correct.Render("Correct!"))
	} else {
		b.WriteString("  " + theme.Incorrect.Render("Incorrect"))
		b.WriteString("\n  " + theme.Label.Render("Correct answer: ") +
			theme.Value.Render(strings.Join(v.Question.CorrectAnswers(), ", ")))
	}
	b.WriteString("\n\n")

	next := "n: next question"
	if v.IsLast {
		next = "n: Finish"
	}
	b.WriteString("  " + theme.Hint.Render(next))
	return b.String()
}

// renderSidePanel renders quiz progress and the current question's history.
func (s *QuizScreen) renderSidePanel(width int) string {
	v := s.sess.Current()

	quizInfo := components.RenderFields([]components.Field{
		{Label: "Questions", Value: fmt.Sprintf("%d", v.Total)},
		{Label: "Progress", Value: fmt.Sprintf("%d/%d", v.Position+1, v.Total)},
		{Label: "Correct", Value: fmt.Sprintf("%d", v.Score)},
	})

	return lipgloss.JoinVertical(lipgloss.Left,
		components.Panel("Quiz", quizInfo, width),
		components.Panel("This question", s.renderQuestionStats(v.Question.Text, width-4), width),
	)
}

func (s *QuizScreen) renderQuestionStats(text string, width int) string {
	if s.deps.Stats == nil {
		return theme.Hint.Render("No statistics")
	}
	qs, ok := s.deps.Stats.Lookup(text)
	if !ok || qs.Attempts == 0 {
		return theme.Hint.Render("Not attempted yet")
	}

	var b strings.Builder
	b.WriteString(components.RenderFields([]components.Field{
		{Label: "Attempts", Value: fmt.Sprintf("%d", qs.Attempts)},
		{Label: "Correct", Value: fmt.Sprintf("%d", qs.CorrectAttempts)},
		{Label: "Wrong", Value: fmt.Sprintf("%d", qs.IncorrectAttempts)},
		{Label: "Success", Value: fmt.Sprintf("%.0f%%", report.SuccessRate(qs)*100)},
	}))

	recent := report.RecentWrong(qs, s.deps.RecentWrong)
	if len(recent) > 0 {
		b.WriteString("\n\n" + theme.Label.Render("Recent wrong answers:"))
		for _, w := range recent {
			given := strings.Join(w.Answer, ", ")
			if given == "" {
				given = "No answer"
			}
			b.WriteString("\n" + theme.Incorrect.Render(layout.Truncate("✗ "+given, width)))
		}
	}
	return b.String()
}
