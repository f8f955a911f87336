package stats

import (
	"testing"
	"time"

	"github.com/abhisek/mcquiz/internal/questions"
)

func testQuestion() questions.Question {
	return questions.Question{
		Text:    "Capital of France?",
		Options: []string{"**Paris**", "London"},
		Correct: questions.SingleAnswer("**Paris**"),
	}
}

func TestRecord_CreatesEntry(t *testing.T) {
	s := NewStore(time.Now())
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	qs := s.Record(testQuestion(), []string{"Paris"}, true, now)

	if qs.Attempts != 1 || qs.CorrectAttempts != 1 || qs.IncorrectAttempts != 0 {
		t.Errorf("counters = %d/%d/%d, want 1/1/0", qs.Attempts, qs.CorrectAttempts, qs.IncorrectAttempts)
	}
	if len(qs.CorrectAnswers) != 1 || qs.CorrectAnswers[0] != "Paris" {
		t.Errorf("CorrectAnswers = %v, want [Paris]", qs.CorrectAnswers)
	}
	if !qs.FirstAttempted.Equal(now) || !qs.LastAttempted.Equal(now) {
		t.Errorf("first/last = %v/%v, want %v", qs.FirstAttempted, qs.LastAttempted, now)
	}
	if len(qs.WrongAnswersGiven) != 0 {
		t.Errorf("WrongAnswersGiven = %v, want empty", qs.WrongAnswersGiven)
	}
}

func TestRecord_Monotonic(t *testing.T) {
	s := NewStore(time.Now())
	q := testQuestion()
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	outcomes := []bool{true, false, false, true, false}
	for i, correct := range outcomes {
		before := QuestionStats{}
		if qs, ok := s.Lookup(q.Text); ok {
			before = *qs
		}

		qs := s.Record(q, []string{"London"}, correct, first.Add(time.Duration(i)*time.Hour))

		if qs.Attempts != before.Attempts+1 {
			t.Errorf("step %d: attempts = %d, want %d", i, qs.Attempts, before.Attempts+1)
		}
		dc := qs.CorrectAttempts - before.CorrectAttempts
		di := qs.IncorrectAttempts - before.IncorrectAttempts
		if dc+di != 1 || (correct && dc != 1) || (!correct && di != 1) {
			t.Errorf("step %d: correct delta %d, incorrect delta %d", i, dc, di)
		}
		if qs.Attempts != qs.CorrectAttempts+qs.IncorrectAttempts {
			t.Errorf("step %d: attempts %d != correct+incorrect", i, qs.Attempts)
		}
	}

	qs, _ := s.Lookup(q.Text)
	if !qs.FirstAttempted.Equal(first) {
		t.Errorf("FirstAttempted = %v, want %v", qs.FirstAttempted, first)
	}
	if want := first.Add(4 * time.Hour); !qs.LastAttempted.Equal(want) {
		t.Errorf("LastAttempted = %v, want %v", qs.LastAttempted, want)
	}
	if len(qs.WrongAnswersGiven) != 3 {
		t.Errorf("WrongAnswersGiven = %d entries, want 3", len(qs.WrongAnswersGiven))
	}
}

func TestRecord_WrongAnswerCopiesSubmission(t *testing.T) {
	s := NewStore(time.Now())
	submitted := []string{"London"}
	s.Record(testQuestion(), submitted, false, time.Now())
	submitted[0] = "mutated"

	qs, _ := s.Lookup(testQuestion().Text)
	if got := qs.WrongAnswersGiven[0].Answer[0]; got != "London" {
		t.Errorf("stored answer = %q, want London", got)
	}
}

func TestRecord_EmptySubmission(t *testing.T) {
	s := NewStore(time.Now())
	qs := s.Record(testQuestion(), nil, false, time.Now())
	if qs.WrongAnswersGiven[0].Answer == nil {
		t.Error("expected empty, non-nil answer so it encodes as []")
	}
}

func TestRecord_KeyedByRawText(t *testing.T) {
	s := NewStore(time.Now())
	q1 := testQuestion()
	q2 := testQuestion()
	q2.Text = q1.Text + " "

	s.Record(q1, []string{"Paris"}, true, time.Now())
	s.Record(q2, []string{"Paris"}, true, time.Now())

	if len(s.Questions) != 2 {
		t.Errorf("entries = %d, want 2", len(s.Questions))
	}
}

func TestCompleteQuiz(t *testing.T) {
	s := NewStore(time.Now())
	s.CompleteQuiz()
	s.CompleteQuiz()
	if s.TotalQuizzes != 2 {
		t.Errorf("TotalQuizzes = %d, want 2", s.TotalQuizzes)
	}
}
