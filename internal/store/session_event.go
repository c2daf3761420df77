package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo.
type eventRepo struct {
	db      *sql.DB
	dialect string
	seq     *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(SessionEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "action", "variant_id",
			"subjects", "questions", "correct_answers", "duration_secs").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Action, data.VariantID,
			strings.Join(data.Subjects[:], ","), data.Questions, data.Correct, data.DurationSecs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionEvents(ctx context.Context, sessionID string) ([]SessionEvent, error) {
	b := entsql.Dialect(r.dialect)
	query, args := b.Select("sequence", "timestamp", "session_id", "action", "variant_id",
		"subjects", "questions", "correct_answers", "duration_secs").
		From(b.Table(SessionEventsTable.Name)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var (
			ev       SessionEvent
			subjects string
		)
		if err := rows.Scan(&ev.Sequence, &ev.Timestamp, &ev.SessionID, &ev.Action, &ev.VariantID,
			&subjects, &ev.Questions, &ev.Correct, &ev.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		if parts := strings.SplitN(subjects, ",", 2); len(parts) == 2 {
			ev.Subjects = [2]string{parts[0], parts[1]}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session events: %w", err)
	}
	return out, nil
}
