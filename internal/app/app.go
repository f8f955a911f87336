package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcquiz/internal/config"
	"github.com/abhisek/mcquiz/internal/flagged"
	"github.com/abhisek/mcquiz/internal/questions"
	"github.com/abhisek/mcquiz/internal/router"
	"github.com/abhisek/mcquiz/internal/screen"
	"github.com/abhisek/mcquiz/internal/screens/home"
	"github.com/abhisek/mcquiz/internal/stats"
	"github.com/abhisek/mcquiz/internal/store"
	"github.com/abhisek/mcquiz/internal/ui/layout"
)

// Options wires the application's collaborators. Flags and Events may be
// nil; history is unavailable without Events.
type Options struct {
	Config  config.Config
	Bank    *questions.Bank
	Tracker *stats.Tracker
	Flags   *flagged.FileRepo
	Events  store.EventRepo
	Logger  *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	tracker home.Tracker
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	deps := home.Deps{
		Bank:              opts.Bank,
		Tracker:           opts.Tracker,
		Events:            opts.Events,
		Logger:            opts.Logger,
		PageSize:          opts.Config.PageSize,
		SideRecentWrong:   opts.Config.SideRecentWrong,
		DetailRecentWrong: opts.Config.DetailRecentWrong,
	}
	// A nil *flagged.FileRepo must not become a non-nil interface.
	if opts.Flags != nil {
		deps.Flags = opts.Flags
	}
	return newModel(home.New(deps), opts.Tracker)
}

func newModel(root screen.Screen, tracker home.Tracker) AppModel {
	return AppModel{
		router:  router.New(root),
		tracker: tracker,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc is left to the screens: the quiz uses it to cancel input.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status is the right-hand side of the header.
func (m AppModel) status() string {
	if m.tracker == nil {
		return ""
	}
	n := m.tracker.Store().TotalQuizzes
	if n == 1 {
		return "1 quiz completed"
	}
	return fmt.Sprintf("%d quizzes completed", n)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
