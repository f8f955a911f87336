package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.EventRepo().AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: ActionEnd}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	records, err := s.EventRepo().QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("records after reopen = %d, want 1", len(records))
	}

	// The sequence continues instead of restarting.
	seq, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if seq != 2 {
		t.Errorf("next sequence after reopen = %d, want 2", seq)
	}
}

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if seq <= last {
			t.Errorf("sequence %d not greater than %d", seq, last)
		}
		last = seq
	}
}

func TestQuerySessionSummaries(t *testing.T) {
	s := openTestStore(t)
	clock := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	s.now = func() time.Time { clock = clock.Add(time.Minute); return clock }
	repo := s.EventRepo()
	ctx := context.Background()

	for _, id := range []string{"first", "second", "third"} {
		if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: id, Action: ActionStart, QuestionsTotal: 4}); err != nil {
			t.Fatal(err)
		}
		if err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID: id, Action: ActionEnd, QuestionsTotal: 4, Answered: 4, Score: 3, DurationSecs: 42,
		}); err != nil {
			t.Fatal(err)
		}
	}

	records, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3 (end events only)", len(records))
	}
	if records[0].SessionID != "third" || records[2].SessionID != "first" {
		t.Errorf("order = %s..%s, want newest first", records[0].SessionID, records[2].SessionID)
	}
	if r := records[0]; r.QuestionsTotal != 4 || r.Answered != 4 || r.Score != 3 || r.DurationSecs != 42 {
		t.Errorf("record = %+v", r)
	}
	if !records[0].Timestamp.After(records[1].Timestamp) {
		t.Errorf("timestamps not decreasing: %v, %v", records[0].Timestamp, records[1].Timestamp)
	}

	limited, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limited records = %d, want 2", len(limited))
	}
}

func TestAnswerEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []AnswerEventData{
		{SessionID: "s1", QuestionText: "2 + 2?", Submitted: []string{"4"}, Correct: true},
		{SessionID: "s2", QuestionText: "other", Submitted: []string{"x"}},
		{SessionID: "s1", QuestionText: "Primes?", Submitted: nil, Correct: false},
	}
	for _, e := range events {
		if err := repo.AppendAnswerEvent(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.QueryAnswers(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("answers = %d, want 2", len(got))
	}
	if got[0].QuestionText != "2 + 2?" || !got[0].Correct || len(got[0].Submitted) != 1 || got[0].Submitted[0] != "4" {
		t.Errorf("answer[0] = %+v", got[0])
	}
	if got[1].Correct || len(got[1].Submitted) != 0 {
		t.Errorf("answer[1] = %+v", got[1])
	}
	if got[0].Sequence >= got[1].Sequence {
		t.Error("answers not in submission order")
	}
}

func TestAppendValidation(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{Action: ActionStart}); err == nil {
		t.Error("expected error for empty session id")
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s", Action: "pause"}); err == nil {
		t.Error("expected error for unknown action")
	}
	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{}); err == nil {
		t.Error("expected error for empty session id")
	}
}
