// Package flagged keeps the list of questions the user reported as having
// a wrong answer key. The document is append-only and created on first use.
package flagged

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/abhisek/mcquiz/internal/docfile"
	"github.com/abhisek/mcquiz/internal/isotime"
	"github.com/abhisek/mcquiz/internal/questions"
)

// DefaultReason is stored when the user gives no reason.
const DefaultReason = "No reason given"

// Entry is a flagged copy of a question.
type Entry struct {
	questions.Question
	MarkedAsIncorrect isotime.Time `json:"marked_as_incorrect"`
	Reason            string       `json:"reason"`
}

type entryMeta struct {
	MarkedAsIncorrect isotime.Time `json:"marked_as_incorrect"`
	Reason            string       `json:"reason"`
}

// MarshalJSON writes the question record with the flag fields added.
func (e Entry) MarshalJSON() ([]byte, error) {
	fields, err := e.Question.Fields()
	if err != nil {
		return nil, err
	}
	meta, err := json.Marshal(entryMeta{MarkedAsIncorrect: e.MarkedAsIncorrect, Reason: e.Reason})
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(meta, &m); err != nil {
		return nil, err
	}
	for k, v := range m {
		fields[k] = v
	}
	return json.Marshal(fields)
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var meta entryMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return err
	}
	var q questions.Question
	if err := json.Unmarshal(data, &q); err != nil {
		return err
	}
	delete(q.Extra, "marked_as_incorrect")
	delete(q.Extra, "reason")
	if len(q.Extra) == 0 {
		q.Extra = nil
	}
	*e = Entry{Question: q, MarkedAsIncorrect: meta.MarkedAsIncorrect, Reason: meta.Reason}
	return nil
}

// Document is the on-disk flagged-questions document.
type Document struct {
	Created   isotime.Time `json:"created"`
	Questions []Entry      `json:"questions"`
}

// LoadError reports a malformed flagged document. The document was moved
// to MovedTo and replaced by a fresh one.
type LoadError struct {
	Path    string
	MovedTo string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("flagged questions %s unreadable (moved to %s): %v", e.Path, e.MovedTo, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FileRepo stores flagged questions as a JSON document.
type FileRepo struct {
	Path string
	Now  func() time.Time
}

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

// load returns the stored document, or a fresh one when it is absent or
// malformed. A malformed document is moved aside and reported. When the
// document cannot be read, or cannot be moved aside, load returns a nil
// document so that nothing overwrites it.
func (r *FileRepo) load() (*Document, error) {
	var doc Document
	found, err := docfile.ReadJSON(r.Path, &doc)
	if err != nil {
		if !found {
			return nil, fmt.Errorf("load flagged questions: %w", err)
		}
		dst, qerr := docfile.Quarantine(r.Path, r.now())
		if qerr != nil {
			return nil, fmt.Errorf("load flagged questions: %w", errors.Join(err, qerr))
		}
		return r.fresh(), &LoadError{Path: r.Path, MovedTo: dst, Err: err}
	}
	if !found {
		return r.fresh(), nil
	}
	if doc.Created.IsZero() {
		doc.Created = isotime.New(r.now())
	}
	return &doc, nil
}

func (r *FileRepo) fresh() *Document {
	return &Document{Created: isotime.New(r.now()), Questions: []Entry{}}
}

// List returns the flagged entries in the order they were flagged. A
// missing document yields an empty list.
func (r *FileRepo) List() ([]Entry, error) {
	var doc Document
	if _, err := docfile.ReadJSON(r.Path, &doc); err != nil {
		return nil, fmt.Errorf("list flagged questions: %w", err)
	}
	return doc.Questions, nil
}

// Flag appends a copy of q unless a question with the same text is already
// flagged. The reason is trimmed; an empty reason becomes DefaultReason.
//
// When the existing document was unreadable it is moved aside, the flag is
// stored in a fresh document, and the *LoadError is returned alongside
// alreadyFlagged=false.
func (r *FileRepo) Flag(q questions.Question, reason string) (alreadyFlagged bool, err error) {
	doc, loadErr := r.load()
	if doc == nil {
		return false, loadErr
	}

	for _, e := range doc.Questions {
		if e.Text == q.Text {
			return true, nil
		}
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultReason
	}

	entry := Entry{
		Question: questions.Question{
			Text:    q.Text,
			Options: append([]string(nil), q.Options...),
			Correct: q.Correct,
			Extra:   maps.Clone(q.Extra),
		},
		MarkedAsIncorrect: isotime.New(r.now()),
		Reason:            reason,
	}
	doc.Questions = append(doc.Questions, entry)

	if err := docfile.WriteJSON(r.Path, doc); err != nil {
		return false, fmt.Errorf("save flagged question: %w", err)
	}
	if loadErr != nil {
		return false, loadErr
	}
	return false, nil
}
