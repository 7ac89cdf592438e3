package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"estudos/backend/internal/model"
)

const goalColumns = `id, user_id, subject_id, topic_id, title, goal_type,
		target_quantity, current_quantity, unit, frequency, starts_at, ends_at,
		completed, last_checked_at, created_at, updated_at`

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO goals (
			id, user_id, subject_id, topic_id, title, goal_type,
			target_quantity, current_quantity, unit, frequency, starts_at, ends_at,
			completed, last_checked_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID,
		goal.UserID,
		nullString(goal.SubjectID),
		nullString(goal.TopicID),
		goal.Title,
		goal.Type,
		goal.TargetQuantity,
		goal.CurrentQuantity,
		goal.Unit,
		nullString(goal.Frequency),
		formatTime(goal.StartsAt),
		formatTimePtr(goal.EndsAt),
		boolToInt(goal.Completed),
		formatTimePtr(goal.LastCheckedAt),
		formatTime(goal.CreatedAt),
		formatTime(goal.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id, userID string) (*model.Goal, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT `+goalColumns+`
		 FROM goals
		 WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanGoal(row)
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID string) ([]model.Goal, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+goalColumns+`
		 FROM goals
		 WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return collectGoals(rows)
}

// ListOverlapping returns goals whose date range intersects [from, to].
func (r *GoalRepository) ListOverlapping(ctx context.Context, userID string, from, to time.Time) ([]model.Goal, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+goalColumns+`
		 FROM goals
		 WHERE user_id = ?
		   AND starts_at <= ?
		   AND (ends_at IS NULL OR ends_at >= ?)
		 ORDER BY created_at DESC`,
		userID,
		formatTime(to),
		formatTime(from),
	)
	if err != nil {
		return nil, fmt.Errorf("list overlapping goals: %w", err)
	}
	return collectGoals(rows)
}

// Update rewrites the user-editable fields. Progress fields are owned by
// UpdateProgress and are not touched here.
func (r *GoalRepository) Update(ctx context.Context, goal *model.Goal) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE goals
		 SET subject_id = ?,
		     topic_id = ?,
		     title = ?,
		     goal_type = ?,
		     target_quantity = ?,
		     unit = ?,
		     frequency = ?,
		     starts_at = ?,
		     ends_at = ?,
		     updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		nullString(goal.SubjectID),
		nullString(goal.TopicID),
		goal.Title,
		goal.Type,
		goal.TargetQuantity,
		goal.Unit,
		nullString(goal.Frequency),
		formatTime(goal.StartsAt),
		formatTimePtr(goal.EndsAt),
		formatTime(goal.UpdatedAt),
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireAffected(result, "update goal")
}

func (r *GoalRepository) UpdateProgress(ctx context.Context, goal *model.Goal) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE goals
		 SET current_quantity = ?,
		     completed = ?,
		     last_checked_at = ?,
		     updated_at = ?
		 WHERE id = ?`,
		goal.CurrentQuantity,
		boolToInt(goal.Completed),
		formatTimePtr(goal.LastCheckedAt),
		formatTime(goal.UpdatedAt),
		goal.ID,
	)
	if err != nil {
		return fmt.Errorf("update goal progress: %w", err)
	}
	return requireAffected(result, "update goal progress")
}

func (r *GoalRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM goals WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireAffected(result, "delete goal")
}

func scanGoal(s scanner) (*model.Goal, error) {
	goal := model.Goal{}
	var subjectID, topicID, frequency sql.NullString
	var startsAt string
	var endsAt, lastCheckedAt sql.NullString
	var completed int
	var createdAt, updatedAt string
	err := s.Scan(
		&goal.ID,
		&goal.UserID,
		&subjectID,
		&topicID,
		&goal.Title,
		&goal.Type,
		&goal.TargetQuantity,
		&goal.CurrentQuantity,
		&goal.Unit,
		&frequency,
		&startsAt,
		&endsAt,
		&completed,
		&lastCheckedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan goal: %w", err)
	}

	goal.SubjectID = nullStringPtr(subjectID)
	goal.TopicID = nullStringPtr(topicID)
	goal.Frequency = nullStringPtr(frequency)
	goal.Completed = completed != 0

	parsedStartsAt, err := parseTime(startsAt)
	if err != nil {
		return nil, fmt.Errorf("parse goal starts_at: %w", err)
	}
	goal.StartsAt = parsedStartsAt

	goal.EndsAt, err = parseNullTime(endsAt)
	if err != nil {
		return nil, fmt.Errorf("parse goal ends_at: %w", err)
	}
	goal.LastCheckedAt, err = parseNullTime(lastCheckedAt)
	if err != nil {
		return nil, fmt.Errorf("parse goal last_checked_at: %w", err)
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse goal created_at: %w", err)
	}
	goal.CreatedAt = parsedCreatedAt

	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse goal updated_at: %w", err)
	}
	goal.UpdatedAt = parsedUpdatedAt

	return &goal, nil
}

func collectGoals(rows *sql.Rows) ([]model.Goal, error) {
	defer rows.Close()

	goals := make([]model.Goal, 0, 8)
	for rows.Next() {
		goal, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		goals = append(goals, *goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

func parseNullTime(raw sql.NullString) (*time.Time, error) {
	if !raw.Valid {
		return nil, nil
	}
	t, err := parseTime(raw.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	value := s.String
	return &value
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s affected rows: %w", op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
