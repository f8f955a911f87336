package home

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcquiz/internal/logging"
	"github.com/abhisek/mcquiz/internal/questions"
	"github.com/abhisek/mcquiz/internal/router"
	"github.com/abhisek/mcquiz/internal/screen"
	"github.com/abhisek/mcquiz/internal/screens/history"
	"github.com/abhisek/mcquiz/internal/screens/quiz"
	"github.com/abhisek/mcquiz/internal/screens/statistics"
	"github.com/abhisek/mcquiz/internal/session"
	"github.com/abhisek/mcquiz/internal/store"
	"github.com/abhisek/mcquiz/internal/ui/components"
	"github.com/abhisek/mcquiz/internal/ui/layout"
)

// Menu item indices.
const (
	itemStart = iota
	itemStats
	itemHistory
	itemExit
)

// BankLoader provides the question bank. questions.Bank implements it.
type BankLoader interface {
	Load() ([]questions.Question, error)
	Path() string
}

// Tracker records answers and serves statistics. stats.Tracker
// implements it.
type Tracker interface {
	session.Recorder
	quiz.StatsSource
	statistics.Source
}

// Deps are the collaborators of the home screen. Flags and Events may be
// nil.
type Deps struct {
	Bank    BankLoader
	Tracker Tracker
	Flags   quiz.Flagger
	Events  store.EventRepo
	Logger  *slog.Logger

	PageSize          int
	SideRecentWrong   int
	DetailRecentWrong int

	// SessionOptions is passed to every new session.
	SessionOptions session.Options
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps     Deps
	menu     components.Menu
	bankSize int
	bankErr  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ router.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen and loads the question bank.
func New(deps Deps) *HomeScreen {
	if deps.Logger == nil {
		deps.Logger = logging.Nop()
	}
	h := &HomeScreen{deps: deps}

	items := make([]components.MenuItem, 4)
	items[itemStart] = components.MenuItem{Label: "Start quiz", Action: h.startQuiz}
	items[itemStats] = components.MenuItem{Label: "Statistics", Action: h.openStats}
	items[itemHistory] = components.MenuItem{Label: "History", Action: h.openHistory, Disabled: deps.Events == nil}
	items[itemExit] = components.MenuItem{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }}
	h.menu = components.NewMenu(items)

	h.loadBank()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume retries a failed bank load when returning to the menu.
func (h *HomeScreen) Resume() tea.Cmd {
	if h.bankErr != "" {
		h.loadBank()
	}
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if h.bankErr != "" {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "r" {
		h.loadBank()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// loadBank loads the bank and enables "Start quiz" when it is usable.
func (h *HomeScreen) loadBank() {
	qs, err := h.deps.Bank.Load()
	switch {
	case err != nil:
		h.setBankError(err)
	case len(qs) == 0:
		h.setBankError(session.ErrNoQuestions)
	default:
		h.bankSize = len(qs)
		h.bankErr = ""
		h.menu.SetDisabled(itemStart, false)
	}
}

func (h *HomeScreen) setBankError(err error) {
	h.deps.Logger.Warn("question bank unavailable", "path", h.deps.Bank.Path(), logging.Err(err))
	h.bankSize = 0
	h.bankErr = describeBankError(err)
	h.menu.SetDisabled(itemStart, true)
}

func describeBankError(err error) string {
	var parseErr *questions.ParseError
	switch {
	case errors.Is(err, questions.ErrNotFound):
		return "Question bank not found: " + strings.TrimPrefix(err.Error(), questions.ErrNotFound.Error()+": ")
	case errors.As(err, &parseErr):
		return fmt.Sprintf("Question bank %s is invalid: %v", parseErr.Path, parseErr.Err)
	case errors.Is(err, session.ErrNoQuestions):
		return "Question bank has no questions"
	default:
		return err.Error()
	}
}

func (h *HomeScreen) startQuiz() tea.Cmd {
	qs, err := h.deps.Bank.Load()
	if err != nil {
		h.setBankError(err)
		return nil
	}
	sess, err := session.New(qs, h.deps.Tracker, h.deps.SessionOptions)
	if err != nil {
		h.setBankError(err)
		return nil
	}

	next := quiz.New(sess, quiz.Deps{
		Stats:       h.deps.Tracker,
		Flags:       h.deps.Flags,
		Events:      h.deps.Events,
		Logger:      h.deps.Logger,
		RecentWrong: h.deps.SideRecentWrong,
		StatsScreen: h.statsScreen,
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (h *HomeScreen) statsScreen() screen.Screen {
	return statistics.New(h.deps.Tracker, statistics.Options{
		PageSize:    h.deps.PageSize,
		RecentWrong: h.deps.DetailRecentWrong,
	})
}

func (h *HomeScreen) openStats() tea.Cmd {
	next := h.statsScreen()
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (h *HomeScreen) openHistory() tea.Cmd {
	next := history.New(h.deps.Events)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}
