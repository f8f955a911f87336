package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/mcquiz/internal/questions"
)

// Tracker binds an in-memory Store to its Repo. Every mutation is persisted
// synchronously; a failed write leaves the in-memory update in place and is
// returned to the caller.
//
// Tracker assumes a single writer. Two processes sharing one statistics
// file race, and the last Save wins.
type Tracker struct {
	repo  Repo
	store *Store
	now   func() time.Time

	// held is set when the document on disk could not be read and is still
	// in place. Saves are refused so the file is not overwritten.
	held error
}

// Open loads the store from repo. On a *LoadError the returned Tracker is
// still usable (it holds a fresh store) and the error is returned for
// reporting. If the unreadable document was not moved aside, the Tracker
// keeps updates in memory only and every persist reports why.
func Open(repo Repo) (*Tracker, error) {
	store, err := repo.Load()
	if store == nil {
		store = NewStore(time.Now())
	}
	t := &Tracker{repo: repo, store: store, now: time.Now}
	var loadErr *LoadError
	if errors.As(err, &loadErr) && loadErr.MovedTo == "" {
		t.held = loadErr
	}
	return t, err
}

// NewTracker creates a Tracker over an already loaded store.
func NewTracker(repo Repo, store *Store, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{repo: repo, store: store, now: now}
}

// Store returns the in-memory statistics.
func (t *Tracker) Store() *Store {
	return t.store
}

// Lookup returns the stats of the question with the given text.
func (t *Tracker) Lookup(text string) (*QuestionStats, bool) {
	return t.store.Lookup(text)
}

// Record applies an answer and persists the store.
func (t *Tracker) Record(q questions.Question, submitted []string, correct bool) error {
	t.store.Record(q, submitted, correct, t.now())
	return t.save()
}

// CompleteQuiz counts a finished quiz and persists the store.
func (t *Tracker) CompleteQuiz() error {
	t.store.CompleteQuiz()
	return t.save()
}

func (t *Tracker) save() error {
	if t.held != nil {
		return fmt.Errorf("statistics not written: %w", t.held)
	}
	return t.repo.Save(t.store)
}
