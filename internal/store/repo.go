package store

import (
	"context"
	"time"
)

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID      string
	Action         string // ActionStart or ActionEnd
	QuestionsTotal int
	Answered       int // on end only
	Score          int // on end only
	DurationSecs   int // on end only
}

// AnswerEventData captures a single submitted answer.
type AnswerEventData struct {
	SessionID    string
	QuestionText string
	Submitted    []string
	Correct      bool
}

// SessionSummaryRecord is a completed session as shown in the history.
type SessionSummaryRecord struct {
	SessionID      string
	Timestamp      time.Time
	QuestionsTotal int
	Answered       int
	Score          int
	DurationSecs   int
}

// AnswerRecord is a stored answer event.
type AnswerRecord struct {
	Sequence     int64
	Timestamp    time.Time
	QuestionText string
	Submitted    []string
	Correct      bool
}

// EventRepo provides append and query access to session history events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a submitted answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns ended sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryAnswers returns the answers of one session in submission order.
	QueryAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)
}
