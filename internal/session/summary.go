package session

import "time"

// Grade is the qualitative band of a finished quiz.
type Grade int

const (
	GradeNeedsWork Grade = iota
	GradeGood
	GradeExcellent
)

// Grade thresholds in percent.
const (
	excellentThreshold = 80.0
	goodThreshold      = 60.0
)

func (g Grade) String() string {
	switch g {
	case GradeExcellent:
		return "Excellent"
	case GradeGood:
		return "Good"
	default:
		return "Needs work"
	}
}

// GradeFor maps a percentage to its grade.
func GradeFor(percent float64) Grade {
	switch {
	case percent >= excellentThreshold:
		return GradeExcellent
	case percent >= goodThreshold:
		return GradeGood
	default:
		return GradeNeedsWork
	}
}

// Summary holds the data displayed on the results screen.
type Summary struct {
	Score    int
	Total    int
	Percent  float64
	Grade    Grade
	Duration time.Duration
	Results  []Result
}

// Summary returns the score, percentage and grade of the current run.
// It may be called in any phase.
func (s *Session) Summary() Summary {
	var percent float64
	if total := len(s.order); total > 0 {
		percent = float64(s.score) / float64(total) * 100
	}
	percent = min(max(percent, 0), 100)

	return Summary{
		Score:    s.score,
		Total:    len(s.order),
		Percent:  percent,
		Grade:    GradeFor(percent),
		Duration: s.Elapsed(),
		Results:  s.Log(),
	}
}
