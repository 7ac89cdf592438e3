package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"estudos/backend/internal/model"
)

const sessionColumns = `id, user_id, subject_id, topic_id, started_at, ended_at,
		status, studied_seconds, created_at, updated_at`

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *SessionRepository) InsertSessionTx(ctx context.Context, tx *sql.Tx, session *model.StudySession) error {
	var topicID interface{}
	if session.TopicID != nil {
		topicID = *session.TopicID
	}

	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO study_sessions (
			id, user_id, subject_id, topic_id, started_at, ended_at,
			status, studied_seconds, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.SubjectID,
		topicID,
		formatTime(session.StartedAt),
		formatTimePtr(session.EndedAt),
		session.Status,
		session.StudiedSeconds,
		formatTime(session.CreatedAt),
		formatTime(session.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) UpdateSessionTx(ctx context.Context, tx *sql.Tx, session *model.StudySession) error {
	_, err := tx.ExecContext(
		ctx,
		`UPDATE study_sessions
		 SET ended_at = ?,
		     status = ?,
		     studied_seconds = ?,
		     updated_at = ?
		 WHERE id = ?`,
		formatTimePtr(session.EndedAt),
		session.Status,
		session.StudiedSeconds,
		formatTime(session.UpdatedAt),
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// GetActiveByUserTx returns the user's session still in progress or paused,
// or ErrNotFound when none exists.
func (r *SessionRepository) GetActiveByUserTx(ctx context.Context, tx *sql.Tx, userID string) (*model.StudySession, error) {
	row := tx.QueryRowContext(
		ctx,
		`SELECT `+sessionColumns+`
		 FROM study_sessions
		 WHERE user_id = ? AND status IN (?, ?)`,
		userID,
		model.StatusInProgress,
		model.StatusPaused,
	)
	return scanStudySession(row)
}

func (r *SessionRepository) GetSessionTx(ctx context.Context, tx *sql.Tx, id, userID string) (*model.StudySession, error) {
	row := tx.QueryRowContext(
		ctx,
		`SELECT `+sessionColumns+`
		 FROM study_sessions
		 WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanStudySession(row)
}

func (r *SessionRepository) GetSession(ctx context.Context, id, userID string) (*model.StudySession, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT `+sessionColumns+`
		 FROM study_sessions
		 WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanStudySession(row)
}

func (r *SessionRepository) ListSessions(ctx context.Context, userID string, limit int) ([]model.StudySession, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+sessionColumns+`
		 FROM study_sessions
		 WHERE user_id = ?
		 ORDER BY started_at DESC
		 LIMIT ?`,
		userID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return collectSessions(rows, limit)
}

// ListOverlapping returns the user's sessions whose lifetime intersects
// [from, to]. Sessions without an end timestamp are still open and overlap any
// period that starts before now.
func (r *SessionRepository) ListOverlapping(ctx context.Context, userID string, from, to time.Time) ([]model.StudySession, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+sessionColumns+`
		 FROM study_sessions
		 WHERE user_id = ?
		   AND started_at <= ?
		   AND (ended_at IS NULL OR ended_at >= ?)
		 ORDER BY started_at ASC`,
		userID,
		formatTime(to),
		formatTime(from),
	)
	if err != nil {
		return nil, fmt.Errorf("list overlapping sessions: %w", err)
	}
	return collectSessions(rows, 16)
}

// ListCompletedInScope returns completed sessions that ended inside [from, to],
// optionally narrowed to a subject or topic. Used by goal evaluation.
func (r *SessionRepository) ListCompletedInScope(
	ctx context.Context,
	userID string,
	subjectID, topicID *string,
	from, to time.Time,
) ([]model.StudySession, error) {
	query := `SELECT ` + sessionColumns + `
		 FROM study_sessions
		 WHERE user_id = ?
		   AND status = ?
		   AND ended_at >= ?
		   AND ended_at <= ?`
	args := []interface{}{userID, model.StatusCompleted, formatTime(from), formatTime(to)}

	if subjectID != nil {
		query += ` AND subject_id = ?`
		args = append(args, *subjectID)
	}
	if topicID != nil {
		query += ` AND topic_id = ?`
		args = append(args, *topicID)
	}
	query += ` ORDER BY ended_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list completed sessions: %w", err)
	}
	return collectSessions(rows, 16)
}

func (r *SessionRepository) DeleteSession(ctx context.Context, id, userID string) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(
		ctx,
		`DELETE FROM annotations WHERE session_id = ?`,
		id,
	); err != nil {
		return fmt.Errorf("delete session annotations: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		`DELETE FROM pause_intervals WHERE session_id = ?`,
		id,
	); err != nil {
		return fmt.Errorf("delete session pauses: %w", err)
	}

	result, err := tx.ExecContext(
		ctx,
		`DELETE FROM study_sessions WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) InsertPauseTx(ctx context.Context, tx *sql.Tx, pause *model.PauseInterval) error {
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO pause_intervals (id, session_id, started_at, ended_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		pause.ID,
		pause.SessionID,
		formatTime(pause.StartedAt),
		formatTimePtr(pause.EndedAt),
		formatTime(pause.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert pause: %w", err)
	}
	return nil
}

// OpenPauseTx returns the session's pause interval without an end timestamp,
// or ErrNotFound when the session is not paused.
func (r *SessionRepository) OpenPauseTx(ctx context.Context, tx *sql.Tx, sessionID string) (*model.PauseInterval, error) {
	row := tx.QueryRowContext(
		ctx,
		`SELECT id, session_id, started_at, ended_at, created_at
		 FROM pause_intervals
		 WHERE session_id = ? AND ended_at IS NULL`,
		sessionID,
	)
	return scanPauseInterval(row)
}

func (r *SessionRepository) ClosePauseTx(ctx context.Context, tx *sql.Tx, pauseID string, endedAt time.Time) error {
	_, err := tx.ExecContext(
		ctx,
		`UPDATE pause_intervals SET ended_at = ? WHERE id = ?`,
		formatTime(endedAt),
		pauseID,
	)
	if err != nil {
		return fmt.Errorf("close pause: %w", err)
	}
	return nil
}

func (r *SessionRepository) ListPausesTx(ctx context.Context, tx *sql.Tx, sessionID string) ([]model.PauseInterval, error) {
	rows, err := tx.QueryContext(
		ctx,
		`SELECT id, session_id, started_at, ended_at, created_at
		 FROM pause_intervals
		 WHERE session_id = ?
		 ORDER BY started_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pauses: %w", err)
	}
	return collectPauses(rows)
}

func (r *SessionRepository) ListPauses(ctx context.Context, sessionID string) ([]model.PauseInterval, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, session_id, started_at, ended_at, created_at
		 FROM pause_intervals
		 WHERE session_id = ?
		 ORDER BY started_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pauses: %w", err)
	}
	return collectPauses(rows)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStudySession(s scanner) (*model.StudySession, error) {
	session := model.StudySession{}
	var topicID sql.NullString
	var startedAt string
	var endedAt sql.NullString
	var createdAt string
	var updatedAt string
	err := s.Scan(
		&session.ID,
		&session.UserID,
		&session.SubjectID,
		&topicID,
		&startedAt,
		&endedAt,
		&session.Status,
		&session.StudiedSeconds,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	if topicID.Valid {
		value := topicID.String
		session.TopicID = &value
	}

	parsedStartedAt, err := parseTime(startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse session started_at: %w", err)
	}
	session.StartedAt = parsedStartedAt

	if endedAt.Valid {
		parsedEndedAt, parseErr := parseTime(endedAt.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parse session ended_at: %w", parseErr)
		}
		session.EndedAt = &parsedEndedAt
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse session created_at: %w", err)
	}
	session.CreatedAt = parsedCreatedAt

	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse session updated_at: %w", err)
	}
	session.UpdatedAt = parsedUpdatedAt

	return &session, nil
}

func scanPauseInterval(s scanner) (*model.PauseInterval, error) {
	pause := model.PauseInterval{}
	var startedAt string
	var endedAt sql.NullString
	var createdAt string
	err := s.Scan(
		&pause.ID,
		&pause.SessionID,
		&startedAt,
		&endedAt,
		&createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan pause: %w", err)
	}

	parsedStartedAt, err := parseTime(startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse pause started_at: %w", err)
	}
	pause.StartedAt = parsedStartedAt

	if endedAt.Valid {
		parsedEndedAt, parseErr := parseTime(endedAt.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parse pause ended_at: %w", parseErr)
		}
		pause.EndedAt = &parsedEndedAt
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse pause created_at: %w", err)
	}
	pause.CreatedAt = parsedCreatedAt

	return &pause, nil
}

func collectSessions(rows *sql.Rows, sizeHint int) ([]model.StudySession, error) {
	defer rows.Close()

	sessions := make([]model.StudySession, 0, sizeHint)
	for rows.Next() {
		session, scanErr := scanStudySession(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func collectPauses(rows *sql.Rows) ([]model.PauseInterval, error) {
	defer rows.Close()

	pauses := make([]model.PauseInterval, 0, 4)
	for rows.Next() {
		pause, scanErr := scanPauseInterval(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		pauses = append(pauses, *pause)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pauses: %w", err)
	}
	return pauses, nil
}
