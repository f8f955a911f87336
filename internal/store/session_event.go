package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

var _ EventRepo = (*eventRepo)(nil)

func (r *eventRepo) timestamp() string {
	return r.now().UTC().Format(time.RFC3339Nano)
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	if data.SessionID == "" {
		return fmt.Errorf("save session event: empty session id")
	}
	if data.Action != ActionStart && data.Action != ActionEnd {
		return fmt.Errorf("save session event: unknown action %q", data.Action)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events
		(sequence, timestamp, session_id, action, questions_total, answered, score, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.timestamp(), data.SessionID, data.Action,
		data.QuestionsTotal, data.Answered, data.Score, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	if data.SessionID == "" {
		return fmt.Errorf("save answer event: empty session id")
	}

	submitted := data.Submitted
	if submitted == nil {
		submitted = []string{}
	}
	encoded, err := json.Marshal(submitted)
	if err != nil {
		return fmt.Errorf("encode submitted answer: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events
		(sequence, timestamp, session_id, question_text, submitted, correct)
		VALUES (?, ?, ?, ?, ?, ?)`,
		seqNum, r.timestamp(), data.SessionID, data.QuestionText, string(encoded), data.Correct,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	query := `SELECT session_id, timestamp, questions_total, answered, score, duration_secs
		FROM session_events WHERE action = ? ORDER BY sequence DESC`
	args := []any{ActionEnd}
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		var ts string
		if err := rows.Scan(&rec.SessionID, &ts, &rec.QuestionsTotal, &rec.Answered, &rec.Score, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		if rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse session timestamp: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return records, nil
}

func (r *eventRepo) QueryAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT sequence, timestamp, question_text, submitted, correct
		FROM answer_events WHERE session_id = ? ORDER BY sequence ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var records []AnswerRecord
	for rows.Next() {
		var rec AnswerRecord
		var ts, submitted string
		if err := rows.Scan(&rec.Sequence, &ts, &rec.QuestionText, &submitted, &rec.Correct); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		if rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse answer timestamp: %w", err)
		}
		if err := json.Unmarshal([]byte(submitted), &rec.Submitted); err != nil {
			return nil, fmt.Errorf("decode submitted answer: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	return records, nil
}
