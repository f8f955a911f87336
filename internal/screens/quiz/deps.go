package quiz

import (
	"log/slog"

	"github.com/abhisek/mcquiz/internal/questions"
	"github.com/abhisek/mcquiz/internal/screen"
	"github.com/abhisek/mcquiz/internal/stats"
	"github.com/abhisek/mcquiz/internal/store"
)

// StatsSource looks up the long-term record of a question.
type StatsSource interface {
	Lookup(text string) (*stats.QuestionStats, bool)
}

// Flagger marks questions as incorrect.
type Flagger interface {
	Flag(q questions.Question, reason string) (alreadyFlagged bool, err error)
}

// Deps are the collaborators of the quiz screen. Flags, Events and
// StatsScreen may be nil.
type Deps struct {
	Stats  StatsSource
	Flags  Flagger
	Events store.EventRepo
	Logger *slog.Logger

	// RecentWrong is how many recent wrong answers the side panel lists.
	RecentWrong int

	// StatsScreen builds the full statistics screen opened with "s".
	StatsScreen func() screen.Screen
}
