package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/mcquiz/internal/questions"
)

// Phase represents the current phase of a quiz session.
type Phase int

const (
	PhaseInProgress      Phase = iota // Waiting for an answer to the current question
	PhaseShowingFeedback              // Answer submitted, verdict on screen
	PhaseCompleted                    // Every question answered
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in_progress"
	case PhaseShowingFeedback:
		return "showing_feedback"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	// ErrInvalidTransition is returned when a command is issued in a phase
	// that does not accept it. The session is left unchanged.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrNoQuestions is returned when a session is started with an empty bank.
	ErrNoQuestions = errors.New("question bank is empty")
)

// SaveError reports that the session state changed but the statistics
// update could not be persisted.
type SaveError struct {
	Op  string
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s: statistics not saved: %v", e.Op, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Recorder receives answer outcomes and quiz completions. stats.Tracker is
// the production implementation.
type Recorder interface {
	Record(q questions.Question, submitted []string, correct bool) error
	CompleteQuiz() error
}

// Result is one entry of the answer log.
type Result struct {
	// Position is the index into the session's question order.
	Position int

	Question questions.Question

	// Selected holds the submitted options as displayed.
	Selected []string

	Correct bool
}

// View is a read-only snapshot of the current question for rendering.
type View struct {
	ID       string
	Phase    Phase
	Position int
	Total    int
	Question questions.Question

	// Options are the question's normalized options in this session's
	// shuffled order.
	Options []string

	// Last is the most recent result. It describes the current question
	// only while Phase is PhaseShowingFeedback.
	Last *Result

	Score    int
	Answered int
	IsLast   bool
}
