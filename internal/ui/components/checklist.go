package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcquiz/internal/ui/theme"
)

// Checklist is a list of independently toggleable options. Options are
// toggled with space (or x) on the cursor row, or with their number key.
type Checklist struct {
	Options []string
	Cursor  int
	checked []bool

	// revealed is set once the answer is known; it freezes the list and
	// marks each option right or wrong.
	revealed bool
	correct  []bool
}

// NewChecklist creates a checklist with nothing checked.
func NewChecklist(options []string) Checklist {
	return Checklist{
		Options: options,
		checked: make([]bool, len(options)),
	}
}

// Init returns nil.
func (c Checklist) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and toggling.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	if c.revealed {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ", "x":
		c.Toggle(c.Cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(c.Options) {
				c.Cursor = i
				c.Toggle(i)
			}
		}
	}
	return c, nil
}

// Toggle flips option i.
func (c *Checklist) Toggle(i int) {
	if c.revealed || i < 0 || i >= len(c.checked) {
		return
	}
	c.checked[i] = !c.checked[i]
}

// Checked reports whether option i is checked.
func (c Checklist) Checked(i int) bool {
	return i >= 0 && i < len(c.checked) && c.checked[i]
}

// Selected returns the checked options in display order.
func (c Checklist) Selected() []string {
	var out []string
	for i, opt := range c.Options {
		if c.checked[i] {
			out = append(out, opt)
		}
	}
	return out
}

// Reveal freezes the list and marks every option with isCorrect.
func (c *Checklist) Reveal(isCorrect func(option string) bool) {
	c.revealed = true
	c.correct = make([]bool, len(c.Options))
	for i, opt := range c.Options {
		c.correct[i] = isCorrect(opt)
	}
}

// Revealed reports whether the answer is shown.
func (c Checklist) Revealed() bool {
	return c.revealed
}

// View renders the checklist.
func (c Checklist) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		box := "[ ]"
		if c.checked[i] {
			box = "[x]"
		}
		prefix := "  "
		if i == c.Cursor && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d. %s %s", prefix, i+1, box, opt)

		var style lipgloss.Style
		switch {
		case c.revealed && c.correct[i]:
			style = theme.Correct
		case c.revealed && c.checked[i]:
			style = theme.Incorrect
		case c.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
