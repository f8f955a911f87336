// Package session implements the quiz session state machine. The session
// owns the question order, the per-question option order, the score and
// the answer log. It is UI-agnostic: the quiz screen issues commands and
// renders the queries after each one.
package session

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mcquiz/internal/answer"
	"github.com/abhisek/mcquiz/internal/questions"
)

// Options configures a Session. Zero values select production defaults.
type Options struct {
	// Rand drives the question and option shuffles. When nil a source is
	// seeded from the clock at session start.
	Rand *rand.Rand

	// Now is the clock used for session timing.
	Now func() time.Time

	// NewID generates session ids.
	NewID func() string
}

// Session is a single run through the question bank.
type Session struct {
	bank     []questions.Question
	recorder Recorder
	rng      *rand.Rand
	now      func() time.Time
	newID    func() string

	id          string
	order       []int   // order[position] is an index into bank
	optionOrder [][]int // optionOrder[position] permutes that question's options
	position    int
	score       int
	phase       Phase
	log         []Result
	startedAt   time.Time
}

// New starts a session over bank. A nil recorder discards outcomes.
func New(bank []questions.Question, recorder Recorder, opts Options) (*Session, error) {
	if len(bank) == 0 {
		return nil, ErrNoQuestions
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	if opts.Rand == nil {
		seed := uint64(opts.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	s := &Session{
		bank:     bank,
		recorder: recorder,
		rng:      opts.Rand,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	s.reset()
	return s, nil
}

// reset draws fresh shuffles and clears progress.
func (s *Session) reset() {
	s.id = s.newID()
	s.order = s.rng.Perm(len(s.bank))
	s.optionOrder = make([][]int, len(s.bank))
	for pos, idx := range s.order {
		s.optionOrder[pos] = s.rng.Perm(len(s.bank[idx].Options))
	}
	s.position = 0
	s.score = 0
	s.phase = PhaseInProgress
	s.log = nil
	s.startedAt = s.now()
}

// Submit evaluates the selected options against the current question,
// records the outcome and moves to PhaseShowingFeedback. The selection is
// normalized before it is logged and recorded. An empty selection is always
// wrong. When the outcome cannot be persisted the transition still happens
// and a *SaveError is returned.
//
// A question reached again through Previous can be submitted again; every
// submit counts toward the score and the statistics, so the score may
// exceed Total.
func (s *Session) Submit(selected []string) (bool, error) {
	if s.phase != PhaseInProgress {
		return false, ErrInvalidTransition
	}

	q := s.current()
	submitted := answer.NormalizeAll(selected)
	correct := answer.Check(submitted, q.CorrectAnswers())
	if correct {
		s.score++
	}
	s.log = append(s.log, Result{
		Position: s.position,
		Question: q,
		Selected: submitted,
		Correct:  correct,
	})
	s.phase = PhaseShowingFeedback

	if err := s.recorder.Record(q, submitted, correct); err != nil {
		return correct, &SaveError{Op: "submit", Err: err}
	}
	return correct, nil
}

// Advance leaves the feedback phase. On the last question the session is
// completed and the completed-quiz counter is incremented exactly once.
func (s *Session) Advance() error {
	if s.phase != PhaseShowingFeedback {
		return ErrInvalidTransition
	}

	if s.position < len(s.order)-1 {
		s.position++
		s.phase = PhaseInProgress
		return nil
	}

	s.phase = PhaseCompleted
	if err := s.recorder.CompleteQuiz(); err != nil {
		return &SaveError{Op: "complete quiz", Err: err}
	}
	return nil
}

// Previous moves back one question before an answer is submitted. It
// never touches the score, the log or the statistics.
func (s *Session) Previous() error {
	if s.phase != PhaseInProgress || s.position == 0 {
		return ErrInvalidTransition
	}
	s.position--
	return nil
}

// Restart begins a new run over the same bank with a new id and fresh
// shuffles. Statistics are untouched.
func (s *Session) Restart() error {
	if s.phase != PhaseCompleted {
		return ErrInvalidTransition
	}
	s.reset()
	return nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// StartedAt returns when the current run began.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Elapsed returns the time since the current run began.
func (s *Session) Elapsed() time.Duration { return s.now().Sub(s.startedAt) }

// Total returns the number of questions in the session.
func (s *Session) Total() int { return len(s.order) }

// Current returns a snapshot of the current question.
func (s *Session) Current() View {
	q := s.current()
	perm := s.optionOrder[s.position]
	opts := make([]string, len(perm))
	for i, j := range perm {
		opts[i] = answer.Normalize(q.Options[j])
	}

	v := View{
		ID:       s.id,
		Phase:    s.phase,
		Position: s.position,
		Total:    len(s.order),
		Question: q,
		Options:  opts,
		Score:    s.score,
		Answered: len(s.log),
		IsLast:   s.position == len(s.order)-1,
	}
	if n := len(s.log); n > 0 {
		last := s.log[n-1]
		v.Last = &last
	}
	return v
}

// Log returns a copy of the answer log.
func (s *Session) Log() []Result {
	return append([]Result(nil), s.log...)
}

func (s *Session) current() questions.Question {
	return s.bank[s.order[s.position]]
}

type nopRecorder struct{}

func (nopRecorder) Record(questions.Question, []string, bool) error { return nil }
func (nopRecorder) CompleteQuiz() error                             { return nil }
