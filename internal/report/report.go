// Package report derives read-only views of the statistics store. Every
// function recomputes from the store it is given; nothing is cached.
package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/mcquiz/internal/stats"
)

// Overview aggregates the whole statistics store.
type Overview struct {
	TotalQuizzes int
	Questions    int
	Attempts     int
	Correct      int
	Incorrect    int

	// SuccessRate is Correct/Attempts in [0,1], 0 when nothing was attempted.
	SuccessRate float64
}

// Summarize computes the overview of s.
func Summarize(s *stats.Store) Overview {
	o := Overview{TotalQuizzes: s.TotalQuizzes, Questions: len(s.Questions)}
	for _, qs := range s.Questions {
		o.Attempts += qs.Attempts
		o.Correct += qs.CorrectAttempts
		o.Incorrect += qs.IncorrectAttempts
	}
	if o.Attempts > 0 {
		o.SuccessRate = float64(o.Correct) / float64(o.Attempts)
	}
	return o
}

// SuccessRate returns correct/attempts, or 0 for a question never attempted.
func SuccessRate(qs *stats.QuestionStats) float64 {
	if qs == nil || qs.Attempts == 0 {
		return 0
	}
	return float64(qs.CorrectAttempts) / float64(qs.Attempts)
}

// ErrorRate returns incorrect/attempts, or 0 for a question never attempted.
func ErrorRate(qs *stats.QuestionStats) float64 {
	if qs == nil || qs.Attempts == 0 {
		return 0
	}
	return float64(qs.IncorrectAttempts) / float64(qs.Attempts)
}

// RecentWrong returns up to n of the most recent wrong answers, oldest
// first.
func RecentWrong(qs *stats.QuestionStats, n int) []stats.WrongAnswer {
	if qs == nil || n <= 0 {
		return nil
	}
	wrong := qs.WrongAnswersGiven
	if len(wrong) > n {
		wrong = wrong[len(wrong)-n:]
	}
	return slices.Clone(wrong)
}

// SortMode orders per-question rows.
type SortMode int

const (
	SortFirstSeen   SortMode = iota // first attempt, oldest first
	SortMostWrong                   // error rate, highest first
	SortMostCorrect                 // success rate, highest first
	SortRecent                      // last attempt, newest first
)

var sortModeNames = []string{"first-seen", "most-wrong", "most-correct", "recent"}

func (m SortMode) String() string {
	if int(m) < 0 || int(m) >= len(sortModeNames) {
		return fmt.Sprintf("sort(%d)", int(m))
	}
	return sortModeNames[m]
}

// Label is the human-readable name shown in the statistics view.
func (m SortMode) Label() string {
	switch m {
	case SortMostWrong:
		return "Most wrong"
	case SortMostCorrect:
		return "Most correct"
	case SortRecent:
		return "Recently attempted"
	default:
		return "First attempted"
	}
}

// Next returns the following sort mode, wrapping around.
func (m SortMode) Next() SortMode {
	return SortMode((int(m) + 1) % len(sortModeNames))
}

// ParseSortMode parses a sort mode name as printed by String.
func ParseSortMode(s string) (SortMode, error) {
	for i, name := range sortModeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return SortMode(i), nil
		}
	}
	return SortFirstSeen, fmt.Errorf("unknown sort mode %q (want one of %s)", s, strings.Join(sortModeNames, ", "))
}

// Row is one question in the per-question list.
type Row struct {
	Text        string
	Stats       *stats.QuestionStats
	SuccessRate float64
	ErrorRate   float64
}

// Rows lists every question of s ordered by mode. Ties are broken by
// question text.
func Rows(s *stats.Store, mode SortMode) []Row {
	rows := make([]Row, 0, len(s.Questions))
	for text, qs := range s.Questions {
		rows = append(rows, Row{
			Text:        text,
			Stats:       qs,
			SuccessRate: SuccessRate(qs),
			ErrorRate:   ErrorRate(qs),
		})
	}

	slices.SortFunc(rows, func(a, b Row) int {
		var c int
		switch mode {
		case SortMostWrong:
			c = cmp.Compare(b.ErrorRate, a.ErrorRate)
		case SortMostCorrect:
			c = cmp.Compare(b.SuccessRate, a.SuccessRate)
		case SortRecent:
			c = compareTimes(a.Stats.LastAttempted.Time, b.Stats.LastAttempted.Time, true)
		default:
			c = compareTimes(a.Stats.FirstAttempted.Time, b.Stats.FirstAttempted.Time, false)
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.Text, b.Text)
	})
	return rows
}

// compareTimes orders a and b, oldest first unless newestFirst is set.
// Unset times always sort last.
func compareTimes(a, b time.Time, newestFirst bool) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	case newestFirst:
		return b.Compare(a)
	default:
		return a.Compare(b)
	}
}

// Page is one page of rows.
type Page struct {
	Rows []Row

	// Index is the zero-based page number after clamping.
	Index int
	Pages int
	Total int
}

// Paginate returns page index of rows with size rows per page. The index is
// clamped into range; an empty list has a single empty page.
func Paginate(rows []Row, index, size int) Page {
	if size < 1 {
		size = 1
	}
	pages := max((len(rows)+size-1)/size, 1)
	index = min(max(index, 0), pages-1)

	start := index * size
	end := min(start+size, len(rows))
	return Page{
		Rows:  rows[start:end],
		Index: index,
		Pages: pages,
		Total: len(rows),
	}
}
