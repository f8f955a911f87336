package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcquiz/internal/ui/components"
	"github.com/abhisek/mcquiz/internal/ui/theme"
)

const titleFull = `┏┳┓┏━╸┏━┓╻ ╻╻╺━┓
┃┃┃┃  ┃┓┃┃ ┃┃┏━┛
╹ ╹┗━╸┗┻┛┗━┛╹┗━╸`

const titleCompact = "M C Q U I Z"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func (h *HomeScreen) View(width, height int) string {
	compact := height < 20
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, h.renderInfoBar(cw))
	if h.bankErr != "" {
		sections = append(sections, renderBankError(h.bankErr, cw))
	}
	sections = append(sections, h.renderMenu(cw))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderInfoBar shows the bank size and the number of completed quizzes.
func (h *HomeScreen) renderInfoBar(cw int) string {
	quizzes := h.deps.Tracker.Store().TotalQuizzes

	bank := lipgloss.NewStyle().Foreground(theme.TextDim).Render("no questions")
	if h.bankErr == "" {
		bank = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("%d questions", h.bankSize))
	}
	done := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("%d quizzes completed", quizzes))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(bank + "   " + done)
}

func renderBankError(msg string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Error).
		Width(cw).
		Padding(0, 1).
		Render(theme.ErrorText.Render(msg) + "\n" + theme.Hint.Render("Fix the file and press r to retry."))
}

// renderMenu renders each menu item as a fixed-width button.
func (h *HomeScreen) renderMenu(cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	disabledBtn := normalBtn.Foreground(theme.Border)

	buttons := make([]string, len(h.menu.Items))
	for i, item := range h.menu.Items {
		switch {
		case item.Disabled:
			buttons[i] = disabledBtn.Render(item.Label)
		case i == h.menu.Selected:
			buttons[i] = selectedBtn.Render(item.Label)
		default:
			buttons[i] = normalBtn.Render(item.Label)
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, buttons...))
}
