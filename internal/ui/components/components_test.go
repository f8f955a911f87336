package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestChecklist_ToggleWithNumbers(t *testing.T) {
	c := NewChecklist([]string{"a", "b", "c"})

	c, _ = c.Update(keyPress('1'))
	c, _ = c.Update(keyPress('3'))

	got := c.Selected()
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Selected = %v, want [a c]", got)
	}

	c, _ = c.Update(keyPress('1'))
	if c.Checked(0) {
		t.Error("second press should uncheck option 1")
	}
}

func TestChecklist_CursorAndSpace(t *testing.T) {
	c := NewChecklist([]string{"a", "b", "c"})

	c, _ = c.Update(specialKey(tea.KeyDown))
	c, _ = c.Update(specialKey(tea.KeySpace))
	if c.Cursor != 1 || !c.Checked(1) {
		t.Errorf("cursor %d checked(1) %v, want 1 true", c.Cursor, c.Checked(1))
	}

	c, _ = c.Update(specialKey(tea.KeyDown))
	c, _ = c.Update(specialKey(tea.KeyDown))
	if c.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", c.Cursor)
	}
	c, _ = c.Update(keyPress('x'))
	if !c.Checked(2) {
		t.Error("x should toggle the cursor row")
	}
}

func TestChecklist_OutOfRangeNumberIgnored(t *testing.T) {
	c := NewChecklist([]string{"a", "b"})
	c, _ = c.Update(keyPress('5'))
	if len(c.Selected()) != 0 {
		t.Errorf("Selected = %v, want none", c.Selected())
	}
}

func TestChecklist_RevealFreezes(t *testing.T) {
	c := NewChecklist([]string{"a", "b"})
	c, _ = c.Update(keyPress('2'))
	c.Reveal(func(o string) bool { return o == "a" })

	c, _ = c.Update(keyPress('1'))
	if c.Checked(0) {
		t.Error("revealed checklist accepted a toggle")
	}
	if !c.Revealed() {
		t.Error("Revealed = false after Reveal")
	}
	if !strings.Contains(c.View(), "[x]") {
		t.Error("view lost the submitted selection")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "one"}, {Label: "two", Disabled: true}, {Label: "three"}})
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}

	m.SetDisabled(2, true)
	if m.Selected != 0 {
		t.Errorf("Selected after disabling = %d, want 0", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd { ran = true; return nil }}})
	m.Update(specialKey(tea.KeyEnter))
	if !ran {
		t.Error("expected action to run on Enter")
	}
}

func TestButtonRow(t *testing.T) {
	pressed := ""
	row := NewButtonRow(
		NewButton("Restart", false, func() tea.Cmd { pressed = "restart"; return nil }),
		NewButton("Home", false, func() tea.Cmd { pressed = "home"; return nil }),
	)
	if row.Focused() != 0 || !row.Buttons[0].Active {
		t.Fatal("first button should start focused")
	}

	row, _ = row.Update(specialKey(tea.KeyTab))
	row, _ = row.Update(specialKey(tea.KeyEnter))
	if pressed != "home" {
		t.Errorf("pressed = %q, want home", pressed)
	}

	row, _ = row.Update(specialKey(tea.KeyRight))
	if row.Focused() != 0 {
		t.Errorf("focus = %d, want wrap to 0", row.Focused())
	}
}

func TestProgressBar(t *testing.T) {
	view := NewProgressBar("3/10", 0.3, true, 40).View()
	if !strings.Contains(view, "3/10") || !strings.Contains(view, "30%") {
		t.Errorf("progress view = %q", view)
	}
}

func TestRenderFields(t *testing.T) {
	out := RenderFields([]Field{{"Attempts", "3"}, {"Correct", "2"}})
	if !strings.Contains(out, "Attempts:") || !strings.Contains(out, "Correct:") {
		t.Errorf("fields = %q", out)
	}
}
