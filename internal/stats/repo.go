package stats

import (
	"fmt"
	"time"

	"github.com/abhisek/mcquiz/internal/docfile"
	"github.com/abhisek/mcquiz/internal/isotime"
)

// Repo loads and persists the statistics document.
type Repo interface {
	// Load returns the stored statistics. Implementations never fail the
	// session: when the document is unusable they return a fresh store
	// together with a *LoadError describing what happened.
	Load() (*Store, error)

	// Save writes the full store.
	Save(s *Store) error
}

// LoadError reports a statistics document that could not be read. The
// accompanying store is fresh. MovedTo is empty when the document is still
// at Path, either because it could not be read at all or because moving it
// failed.
type LoadError struct {
	Path    string
	MovedTo string // where the unreadable document was moved, if anywhere
	Err     error
}

func (e *LoadError) Error() string {
	if e.MovedTo != "" {
		return fmt.Sprintf("statistics %s unreadable (moved to %s), starting fresh: %v", e.Path, e.MovedTo, e.Err)
	}
	return fmt.Sprintf("statistics %s unreadable, starting fresh: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FileRepo stores statistics as a JSON document on disk.
type FileRepo struct {
	Path string
	Now  func() time.Time
}

var _ Repo = (*FileRepo)(nil)

// NewFileRepo creates a FileRepo using the wall clock.
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{Path: path, Now: time.Now}
}

func (r *FileRepo) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *FileRepo) Load() (*Store, error) {
	var s Store
	found, err := docfile.ReadJSON(r.Path, &s)
	if !found && err == nil {
		return NewStore(r.now()), nil
	}
	if err != nil {
		loadErr := &LoadError{Path: r.Path, Err: err}
		if found {
			if dst, qerr := docfile.Quarantine(r.Path, r.now()); qerr == nil {
				loadErr.MovedTo = dst
			}
		}
		return NewStore(r.now()), loadErr
	}

	if s.Questions == nil {
		s.Questions = make(map[string]*QuestionStats)
	}
	for text, qs := range s.Questions {
		if qs == nil {
			delete(s.Questions, text)
		}
	}
	if s.Created.IsZero() {
		s.Created = isotime.New(r.now())
	}
	return &s, nil
}

func (r *FileRepo) Save(s *Store) error {
	if err := docfile.WriteJSON(r.Path, s); err != nil {
		return fmt.Errorf("save statistics: %w", err)
	}
	return nil
}
