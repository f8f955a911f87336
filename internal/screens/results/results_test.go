package results

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcquiz/internal/questions"
	"github.com/abhisek/mcquiz/internal/router"
	"github.com/abhisek/mcquiz/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSummary() session.Summary {
	q1 := questions.Question{Text: "2 + 2?", Options: []string{"3", "4"}, Correct: questions.SingleAnswer("4")}
	q2 := questions.Question{Text: "Primes?", Options: []string{"2", "3", "4"}, Correct: questions.MultiAnswer("2", "3")}
	return session.Summary{
		Score:    1,
		Total:    2,
		Percent:  50,
		Grade:    session.GradeNeedsWork,
		Duration: 90 * time.Second,
		Results: []session.Result{
			{Position: 0, Question: q1, Selected: []string{"4"}, Correct: true},
			{Position: 1, Question: q2, Selected: nil, Correct: false},
		},
	}
}

func TestResultsScreen_Title(t *testing.T) {
	s := New(testSummary(), nil)
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Results")
	}
}

func TestResultsScreen_ShowsScoreAndGrade(t *testing.T) {
	view := New(testSummary(), nil).View(100, 30)
	for _, want := range []string{"1/2", "50%", "Needs work"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultsScreen_ExpandDetails(t *testing.T) {
	var scr = New(testSummary(), nil)

	if strings.Contains(scr.View(100, 40), "Detailed results") {
		t.Fatal("details shown before toggling")
	}

	scr.Update(keyPress('d'))
	scr.Update(specialKey(tea.KeyDown))
	scr.Update(specialKey(tea.KeyEnter))

	view := scr.View(100, 40)
	if !strings.Contains(view, "Detailed results") {
		t.Error("expected details section")
	}
	if !strings.Contains(view, "No answer") {
		t.Error("expected empty submission to render as No answer")
	}
	if !strings.Contains(view, "2, 3") {
		t.Error("expected correct answers of the expanded question")
	}
}

func TestResultsScreen_Restart(t *testing.T) {
	restarted := false
	s := New(testSummary(), func() tea.Cmd {
		restarted = true
		return nil
	})
	s.Update(keyPress('r'))
	if !restarted {
		t.Error("expected r to restart")
	}
}

func TestResultsScreen_EscGoesHome(t *testing.T) {
	s := New(testSummary(), nil)
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("Esc produced %T, want router.PopToRootMsg", cmd())
	}
}

func TestResultsScreen_HomeButton(t *testing.T) {
	s := New(testSummary(), nil)
	s.Update(specialKey(tea.KeyTab))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected Home button to produce a command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("Home produced %T, want router.PopToRootMsg", cmd())
	}
}
