package sqlite

import (
	"context"
	"database/sql"

	"github.com/jebstuart/TimeoutOverride/internal/domain/entity"
	"github.com/jebstuart/TimeoutOverride/internal/domain/repository"
	"github.com/jebstuart/TimeoutOverride/internal/logging"
)

type wakeSessionRepo struct {
	db *sql.DB
}

// NewWakeSessionRepository creates a SQLite-backed wake-session repository.
func NewWakeSessionRepository(db *sql.DB) repository.WakeSessionRepository {
	return &wakeSessionRepo{db: db}
}

func (r *wakeSessionRepo) Open(ctx context.Context, session *entity.WakeSession) (int64, error) {
	log := logging.FromContext(ctx)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO wake_sessions (started_at, reset_count) VALUES (?, 0)`,
		session.StartedAt.UnixMilli())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	log.Debug().Int64("session_id", id).Msg("wake session opened")
	return id, nil
}

func (r *wakeSessionRepo) Close(ctx context.Context, id int64, session *entity.WakeSession) error {
	log := logging.FromContext(ctx)

	var endedAt sql.NullInt64
	if session.EndedAt != nil {
		endedAt = sql.NullInt64{Int64: session.EndedAt.UnixMilli(), Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE wake_sessions SET ended_at = ?, reason = ?, reset_count = ? WHERE id = ?`,
		endedAt, string(session.Reason), session.ResetCount, id)
	if err != nil {
		return err
	}

	log.Debug().
		Int64("session_id", id).
		Str("reason", string(session.Reason)).
		Int("resets", session.ResetCount).
		Msg("wake session closed")
	return nil
}

func (r *wakeSessionRepo) Recent(ctx context.Context, limit int) ([]entity.WakeSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, reason, reset_count
		 FROM wake_sessions ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	sessions := make([]entity.WakeSession, 0, limit)
	for rows.Next() {
		var (
			s         entity.WakeSession
			startedAt int64
			endedAt   sql.NullInt64
			reason    sql.NullString
		)
		if err := rows.Scan(&s.ID, &startedAt, &endedAt, &reason, &s.ResetCount); err != nil {
			return nil, err
		}
		s.StartedAt = msToTime(startedAt)
		if endedAt.Valid {
			t := msToTime(endedAt.Int64)
			s.EndedAt = &t
		}
		s.Reason = entity.EndReason(reason.String)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *wakeSessionRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM wake_sessions WHERE id NOT IN (
			SELECT id FROM wake_sessions ORDER BY started_at DESC, id DESC LIMIT ?
		)`, keep)
	return err
}
