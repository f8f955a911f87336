package stats

import (
	"time"

	"github.com/abhisek/mcquiz/internal/isotime"
	"github.com/abhisek/mcquiz/internal/questions"
)

// WrongAnswer is one incorrect submission for a question.
type WrongAnswer struct {
	Answer    []string     `json:"answer"`
	Timestamp isotime.Time `json:"timestamp"`
}

// QuestionStats is the long-term performance record for one question.
type QuestionStats struct {
	Attempts          int           `json:"attempts"`
	CorrectAttempts   int           `json:"correct_attempts"`
	IncorrectAttempts int           `json:"incorrect_attempts"`
	CorrectAnswers    []string      `json:"correct_answers"`
	WrongAnswersGiven []WrongAnswer `json:"wrong_answers_given"`
	LastAttempted     isotime.Time  `json:"last_attempted"`
	FirstAttempted    isotime.Time  `json:"first_attempted"`
}

// Store is the statistics document: one QuestionStats per distinct question
// text plus the number of completed quizzes.
type Store struct {
	Created      isotime.Time              `json:"created"`
	TotalQuizzes int                       `json:"total_quizzes"`
	Questions    map[string]*QuestionStats `json:"questions"`
}

// NewStore returns an empty store created at now.
func NewStore(now time.Time) *Store {
	return &Store{
		Created:   isotime.New(now),
		Questions: make(map[string]*QuestionStats),
	}
}

// Record applies one answer to the entry keyed by the question's exact text,
// creating the entry on first attempt. Wrong answers are appended to the
// entry's history, which is never pruned.
func (s *Store) Record(q questions.Question, submitted []string, correct bool, now time.Time) *QuestionStats {
	if s.Questions == nil {
		s.Questions = make(map[string]*QuestionStats)
	}

	qs, ok := s.Questions[q.Text]
	if !ok {
		qs = &QuestionStats{
			CorrectAnswers:    q.CorrectAnswers(),
			WrongAnswersGiven: []WrongAnswer{},
		}
		s.Questions[q.Text] = qs
	}

	ts := isotime.New(now)
	qs.Attempts++
	qs.LastAttempted = ts
	if qs.FirstAttempted.IsZero() {
		qs.FirstAttempted = ts
	}

	if correct {
		qs.CorrectAttempts++
		return qs
	}

	qs.IncorrectAttempts++
	given := make([]string, len(submitted))
	copy(given, submitted)
	qs.WrongAnswersGiven = append(qs.WrongAnswersGiven, WrongAnswer{
		Answer:    given,
		Timestamp: ts,
	})
	return qs
}

// CompleteQuiz counts one finished quiz.
func (s *Store) CompleteQuiz() {
	s.TotalQuizzes++
}

// Lookup returns the entry for the exact question text.
func (s *Store) Lookup(text string) (*QuestionStats, bool) {
	qs, ok := s.Questions[text]
	return qs, ok
}
