package questions

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/mcquiz/internal/answer"
)

// Question is a single multiple-choice question from the bank.
type Question struct {
	// Text is the prompt shown to the user. It is also the key under which
	// statistics are recorded, so editing it starts a fresh history.
	Text string `json:"question"`

	// Options are the answer choices in document order. Any number of them
	// may be correct; the UI always offers them as independent checkboxes.
	Options []string `json:"options"`

	// Correct holds the correct answer(s).
	Correct AnswerSet `json:"correct_answer"`

	// Extra keeps any other keys of the bank record, such as an explanation,
	// so that a copy of the question re-encodes with them.
	Extra map[string]json.RawMessage `json:"-"`
}

// questionKeys are the record keys Question decodes into its own fields.
var questionKeys = []string{"question", "options", "correct_answer"}

// question has Question's fields without its JSON methods.
type question Question

func (q *Question) UnmarshalJSON(data []byte) error {
	var plain question
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range questionKeys {
		delete(all, k)
	}
	plain.Extra = nil
	if len(all) > 0 {
		plain.Extra = all
	}
	*q = Question(plain)
	return nil
}

func (q Question) MarshalJSON() ([]byte, error) {
	fields, err := q.Fields()
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// Fields returns the question as a JSON object keyed by record key, the
// extra keys included. Callers may add keys before encoding it.
func (q Question) Fields() (map[string]json.RawMessage, error) {
	fields := make(map[string]json.RawMessage, len(q.Extra)+len(questionKeys))
	for k, v := range q.Extra {
		fields[k] = v
	}
	known, err := json.Marshal(question(q))
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(known, &m); err != nil {
		return nil, err
	}
	for k, v := range m {
		fields[k] = v
	}
	return fields, nil
}

// CorrectAnswers returns the canonical (normalized) correct answers.
func (q Question) CorrectAnswers() []string {
	return q.Correct.Canonical()
}

// AnswerSet is the set of correct answers for a question. Documents may
// store a single string or a list of strings; the original shape is kept so
// that a question re-encodes the way it was written.
type AnswerSet struct {
	values []string
	list   bool
}

// SingleAnswer returns an AnswerSet encoded as a plain string.
func SingleAnswer(v string) AnswerSet {
	return AnswerSet{values: []string{v}}
}

// MultiAnswer returns an AnswerSet encoded as a list.
func MultiAnswer(vs ...string) AnswerSet {
	return AnswerSet{values: append([]string(nil), vs...), list: true}
}

// Raw returns the answers exactly as written in the document.
func (a AnswerSet) Raw() []string {
	return append([]string(nil), a.values...)
}

// Canonical returns the normalized answers with duplicates removed,
// preserving first-seen order.
func (a AnswerSet) Canonical() []string {
	seen := make(map[string]bool, len(a.values))
	out := make([]string, 0, len(a.values))
	for _, v := range answer.NormalizeAll(a.values) {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Len returns the number of answers as written.
func (a AnswerSet) Len() int {
	return len(a.values)
}

func (a AnswerSet) MarshalJSON() ([]byte, error) {
	if !a.list && len(a.values) == 1 {
		return json.Marshal(a.values[0])
	}
	if a.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.values)
}

func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = SingleAnswer(single)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("correct_answer must be a string or a list of strings: %w", err)
	}
	*a = MultiAnswer(list...)
	return nil
}
