package quiz

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcquiz/internal/answer"
	"github.com/abhisek/mcquiz/internal/flagged"
	"github.com/abhisek/mcquiz/internal/logging"
	"github.com/abhisek/mcquiz/internal/questions"
	"github.com/abhisek/mcquiz/internal/router"
	"github.com/abhisek/mcquiz/internal/screen"
	"github.com/abhisek/mcquiz/internal/screens/results"
	"github.com/abhisek/mcquiz/internal/session"
	"github.com/abhisek/mcquiz/internal/store"
	"github.com/abhisek/mcquiz/internal/ui/components"
	"github.com/abhisek/mcquiz/internal/ui/layout"
)

// QuizScreen implements screen.Screen for a running quiz.
type QuizScreen struct {
	sess      *session.Session
	deps      Deps
	checklist components.Checklist

	flagging bool
	reason   components.TextInput

	status    string
	statusErr bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen driving sess.
func New(sess *session.Session, deps Deps) *QuizScreen {
	if deps.Logger == nil {
		deps.Logger = logging.Nop()
	}
	s := &QuizScreen{sess: sess, deps: deps}
	s.resetChecklist()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	s.deps.Logger.Info("quiz started", "session_id", s.sess.ID(), "questions", s.sess.Total())
	s.appendSessionEvent(store.ActionStart)
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.flagging {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Flag"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.sess.Phase() == session.PhaseShowingFeedback {
		next := "Next"
		if s.sess.Current().IsLast {
			next = "Finish"
		}
		return []layout.KeyHint{
			{Key: "N/Enter", Description: next},
			{Key: "F", Description: "Flag"},
			{Key: "S", Description: "Stats"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-9/Space", Description: "Toggle"},
		{Key: "Enter", Description: "Submit"},
		{Key: "P", Description: "Previous"},
		{Key: "F", Description: "Flag"},
		{Key: "S", Description: "Stats"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case flagDoneMsg:
		return s.handleFlagDone(msg)

	case tea.KeyMsg:
		if s.flagging {
			return s.handleFlagKey(msg)
		}
		return s.handleKey(msg)
	}

	// Forward cursor blinks and the like to the reason input.
	if s.flagging {
		var cmd tea.Cmd
		s.reason, cmd = s.reason.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.deps.Logger.Info("quiz abandoned", "session_id", s.sess.ID(), "answered", len(s.sess.Log()))
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "f":
		if s.deps.Flags == nil {
			return s, nil
		}
		s.flagging = true
		s.reason = components.NewTextInput("What is wrong with this question? (optional)", 200)
		return s, s.reason.Init()
	case "s":
		if s.deps.StatsScreen == nil {
			return s, nil
		}
		next := s.deps.StatsScreen()
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}

	switch s.sess.Phase() {
	case session.PhaseInProgress:
		switch msg.String() {
		case "enter":
			return s.submit()
		case "p", "left":
			return s.previous()
		}
		var cmd tea.Cmd
		s.checklist, cmd = s.checklist.Update(msg)
		return s, cmd

	case session.PhaseShowingFeedback:
		switch msg.String() {
		case "n", "enter", "right":
			return s.advance()
		}
	}
	return s, nil
}

// submit evaluates the checked options.
func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	q := s.sess.Current().Question
	selected := s.checklist.Selected()

	correct, err := s.sess.Submit(selected)
	if errors.Is(err, session.ErrInvalidTransition) {
		return s, nil
	}
	s.setSaveStatus(err)

	canonical := q.CorrectAnswers()
	s.checklist.Reveal(func(opt string) bool {
		return answer.Contains(canonical, opt)
	})
	s.appendAnswerEvent(q, selected, correct)
	return s, nil
}

// advance moves to the next question or finishes the quiz.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	err := s.sess.Advance()
	if errors.Is(err, session.ErrInvalidTransition) {
		return s, nil
	}
	s.setSaveStatus(err)

	if s.sess.Phase() == session.PhaseCompleted {
		return s, s.finish()
	}
	s.resetChecklist()
	return s, nil
}

func (s *QuizScreen) previous() (screen.Screen, tea.Cmd) {
	if err := s.sess.Previous(); err != nil {
		return s, nil
	}
	s.resetChecklist()
	return s, nil
}

// finish records the end of the run and swaps in the results screen.
func (s *QuizScreen) finish() tea.Cmd {
	sum := s.sess.Summary()
	s.deps.Logger.Info("quiz completed",
		"session_id", s.sess.ID(),
		"score", sum.Score,
		"total", sum.Total,
		"grade", sum.Grade.String(),
	)
	s.appendSessionEvent(store.ActionEnd)

	next := results.New(sum, s.restart)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// restart begins a new run of the same session in a fresh quiz screen.
func (s *QuizScreen) restart() tea.Cmd {
	if err := s.sess.Restart(); err != nil {
		s.deps.Logger.Warn("restart quiz", logging.Err(err))
		return nil
	}
	next := New(s.sess, s.deps)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) handleFlagKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.flagging = false
		return s, nil
	case "enter":
		s.flagging = false
		return s, s.flagCmd(s.sess.Current().Question, s.reason.Value())
	}
	var cmd tea.Cmd
	s.reason, cmd = s.reason.Update(msg)
	return s, cmd
}

func (s *QuizScreen) flagCmd(q questions.Question, reason string) tea.Cmd {
	flags := s.deps.Flags
	return func() tea.Msg {
		already, err := flags.Flag(q, reason)
		return flagDoneMsg{Already: already, Err: err}
	}
}

func (s *QuizScreen) handleFlagDone(msg flagDoneMsg) (screen.Screen, tea.Cmd) {
	var loadErr *flagged.LoadError
	switch {
	case errors.As(msg.Err, &loadErr):
		s.deps.Logger.Warn("flagged questions reset", logging.Err(msg.Err))
		s.setStatus("Question flagged (unreadable flag file was moved aside)", true)
	case msg.Err != nil:
		s.deps.Logger.Warn("flag question", logging.Err(msg.Err))
		s.setStatus("Could not flag question: "+msg.Err.Error(), true)
	case msg.Already:
		s.setStatus("Question already flagged", false)
	default:
		s.setStatus("Question flagged as incorrect", false)
	}
	return s, nil
}

func (s *QuizScreen) resetChecklist() {
	s.checklist = components.NewChecklist(s.sess.Current().Options)
}

func (s *QuizScreen) setStatus(text string, isErr bool) {
	s.status = text
	s.statusErr = isErr
}

// setSaveStatus surfaces a statistics write failure, or clears a previous
// one once a write succeeds.
func (s *QuizScreen) setSaveStatus(err error) {
	var saveErr *session.SaveError
	if errors.As(err, &saveErr) {
		s.deps.Logger.Warn("save statistics", "op", saveErr.Op, logging.Err(saveErr.Err))
		s.setStatus("Statistics not saved: "+saveErr.Err.Error(), true)
		return
	}
	if s.statusErr {
		s.setStatus("", false)
	}
}

func (s *QuizScreen) appendSessionEvent(action string) {
	if s.deps.Events == nil {
		return
	}
	data := store.SessionEventData{
		SessionID:      s.sess.ID(),
		Action:         action,
		QuestionsTotal: s.sess.Total(),
	}
	if action == store.ActionEnd {
		sum := s.sess.Summary()
		data.Answered = len(sum.Results)
		data.Score = sum.Score
		data.DurationSecs = int(sum.Duration.Seconds())
	}
	if err := s.deps.Events.AppendSessionEvent(context.Background(), data); err != nil {
		s.deps.Logger.Warn("append session event", "action", action, logging.Err(err))
	}
}

func (s *QuizScreen) appendAnswerEvent(q questions.Question, selected []string, correct bool) {
	if s.deps.Events == nil {
		return
	}
	err := s.deps.Events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID:    s.sess.ID(),
		QuestionText: q.Text,
		Submitted:    selected,
		Correct:      correct,
	})
	if err != nil {
		s.deps.Logger.Warn("append answer event", logging.Err(err))
	}
}
