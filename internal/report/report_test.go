package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mcquiz/internal/isotime"
	"github.com/abhisek/mcquiz/internal/stats"
)

var base = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func entry(correct, incorrect int, first, last time.Duration) *stats.QuestionStats {
	qs := &stats.QuestionStats{
		Attempts:          correct + incorrect,
		CorrectAttempts:   correct,
		IncorrectAttempts: incorrect,
		FirstAttempted:    isotime.New(base.Add(first)),
		LastAttempted:     isotime.New(base.Add(last)),
	}
	for i := 0; i < incorrect; i++ {
		qs.WrongAnswersGiven = append(qs.WrongAnswersGiven, stats.WrongAnswer{
			Answer:    []string{string(rune('a' + i))},
			Timestamp: isotime.New(base.Add(time.Duration(i) * time.Minute)),
		})
	}
	return qs
}

func testStore() *stats.Store {
	s := stats.NewStore(base)
	s.TotalQuizzes = 3
	s.Questions["alpha"] = entry(3, 1, 2*time.Hour, 5*time.Hour)
	s.Questions["beta"] = entry(1, 3, 0, 1*time.Hour)
	s.Questions["gamma"] = entry(2, 0, 1*time.Hour, 9*time.Hour)
	s.Questions["delta"] = entry(1, 3, 3*time.Hour, 2*time.Hour)
	return s
}

func texts(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Text
	}
	return out
}

func TestSummarize(t *testing.T) {
	o := Summarize(testStore())
	assert.Equal(t, 3, o.TotalQuizzes)
	assert.Equal(t, 4, o.Questions)
	assert.Equal(t, 14, o.Attempts)
	assert.Equal(t, 7, o.Correct)
	assert.Equal(t, 7, o.Incorrect)
	assert.InDelta(t, 0.5, o.SuccessRate, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	o := Summarize(stats.NewStore(base))
	assert.Equal(t, 0, o.Attempts)
	assert.Equal(t, 0.0, o.SuccessRate)
}

func TestRates(t *testing.T) {
	tests := []struct {
		name      string
		qs        *stats.QuestionStats
		success   float64
		errorRate float64
	}{
		{"nil", nil, 0, 0},
		{"never attempted", &stats.QuestionStats{}, 0, 0},
		{"all correct", entry(4, 0, 0, 0), 1, 0},
		{"mixed", entry(1, 3, 0, 0), 0.25, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuccessRate(tt.qs); got != tt.success {
				t.Errorf("SuccessRate = %v, want %v", got, tt.success)
			}
			if got := ErrorRate(tt.qs); got != tt.errorRate {
				t.Errorf("ErrorRate = %v, want %v", got, tt.errorRate)
			}
		})
	}
}

func TestRows_SortModes(t *testing.T) {
	tests := []struct {
		mode SortMode
		want []string
	}{
		{SortFirstSeen, []string{"beta", "gamma", "alpha", "delta"}},
		{SortMostWrong, []string{"beta", "delta", "alpha", "gamma"}},
		{SortMostCorrect, []string{"gamma", "alpha", "beta", "delta"}},
		{SortRecent, []string{"gamma", "alpha", "delta", "beta"}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, texts(Rows(testStore(), tt.mode)))
		})
	}
}

func TestRows_UnsetTimesLast(t *testing.T) {
	s := testStore()
	s.Questions["aaa-legacy"] = &stats.QuestionStats{}

	for _, mode := range []SortMode{SortFirstSeen, SortRecent} {
		rows := Rows(s, mode)
		assert.Equal(t, "aaa-legacy", rows[len(rows)-1].Text, mode.String())
	}
}

func TestSortMode_CycleAndParse(t *testing.T) {
	m := SortFirstSeen
	seen := map[SortMode]bool{}
	for i := 0; i < 4; i++ {
		seen[m] = true
		parsed, err := ParseSortMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
		m = m.Next()
	}
	assert.Len(t, seen, 4)
	assert.Equal(t, SortFirstSeen, m)

	_, err := ParseSortMode("alphabetical")
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	rows := Rows(testStore(), SortFirstSeen)

	tests := []struct {
		name      string
		index     int
		size      int
		wantIndex int
		wantPages int
		wantRows  int
	}{
		{"first page", 0, 3, 0, 2, 3},
		{"last partial page", 1, 3, 1, 2, 1},
		{"past the end clamps", 9, 3, 1, 2, 1},
		{"negative clamps", -2, 3, 0, 2, 3},
		{"zero size treated as one", 0, 0, 0, 4, 1},
		{"single page", 0, 10, 0, 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(rows, tt.index, tt.size)
			assert.Equal(t, tt.wantIndex, p.Index)
			assert.Equal(t, tt.wantPages, p.Pages)
			assert.Len(t, p.Rows, tt.wantRows)
			assert.Equal(t, 4, p.Total)
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate(nil, 3, 5)
	assert.Equal(t, 0, p.Index)
	assert.Equal(t, 1, p.Pages)
	assert.Empty(t, p.Rows)
}

func TestRecentWrong(t *testing.T) {
	qs := entry(0, 4, 0, 0)

	got := RecentWrong(qs, 3)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b"}, got[0].Answer)
	assert.Equal(t, []string{"d"}, got[2].Answer)

	assert.Len(t, RecentWrong(qs, 10), 4)
	assert.Nil(t, RecentWrong(qs, 0))
	assert.Nil(t, RecentWrong(nil, 3))
}
