package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/abhisek/mcquiz/internal/answer"
)

// Bank loads a question bank document once and serves the cached result
// for the lifetime of the process. Failed loads are not cached so a fixed
// document is picked up on the next call.
type Bank struct {
	path string

	mu     sync.Mutex
	loaded []Question
}

// NewBank creates a Bank reading from path.
func NewBank(path string) *Bank {
	return &Bank{path: path}
}

// Path returns the document path.
func (b *Bank) Path() string {
	return b.path
}

// Load returns the questions in document order. Repeated successful calls
// return the same slice without re-reading the document. Callers must not
// modify it.
//
// Errors are ErrNotFound (wrapped) when the document is absent and
// *ParseError when it is malformed.
func (b *Bank) Load() ([]Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.loaded != nil {
		return b.loaded, nil
	}

	qs, err := LoadFile(b.path)
	if err != nil {
		return nil, err
	}
	b.loaded = qs
	return qs, nil
}

// LoadFile reads and parses a question bank document without caching.
func LoadFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, &ParseError{Path: path, Err: err}
	}

	qs, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return qs, nil
}

// Parse validates and decodes a question bank document.
func Parse(data []byte) ([]Question, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	for i, q := range qs {
		if err := checkQuestion(q); err != nil {
			return nil, fmt.Errorf("question %d (%q): %w", i+1, truncate(q.Text, 60), err)
		}
	}
	return qs, nil
}

// checkQuestion verifies that every correct answer is one of the options.
func checkQuestion(q Question) error {
	var missing []string
	for _, c := range q.CorrectAnswers() {
		if !answer.Contains(q.Options, c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("correct answer(s) not among options: %s", strings.Join(missing, ", "))
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
