package repository

import (
	"context"
	"database/sql"
	"fmt"

	"estudos/backend/internal/model"
)

type TopicRepository struct {
	db *sql.DB
}

func NewTopicRepository(db *sql.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

func (r *TopicRepository) Create(ctx context.Context, topic *model.Topic) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO topics (id, subject_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		topic.ID,
		topic.SubjectID,
		topic.Name,
		formatTime(topic.CreatedAt),
		formatTime(topic.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create topic: %w", err)
	}
	return nil
}

// GetByID joins through subjects so that a topic is only visible to the
// subject's owner.
func (r *TopicRepository) GetByID(ctx context.Context, id, userID string) (*model.Topic, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT t.id, t.subject_id, t.name, t.created_at, t.updated_at
		 FROM topics t
		 JOIN subjects s ON s.id = t.subject_id
		 WHERE t.id = ? AND s.user_id = ?`,
		id,
		userID,
	)
	return scanTopic(row)
}

func (r *TopicRepository) ListBySubject(ctx context.Context, subjectID, userID string) ([]model.Topic, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT t.id, t.subject_id, t.name, t.created_at, t.updated_at
		 FROM topics t
		 JOIN subjects s ON s.id = t.subject_id
		 WHERE t.subject_id = ? AND s.user_id = ?
		 ORDER BY t.name ASC`,
		subjectID,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := make([]model.Topic, 0, 8)
	for rows.Next() {
		topic, scanErr := scanTopic(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		topics = append(topics, *topic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}
	return topics, nil
}

func (r *TopicRepository) Update(ctx context.Context, topic *model.Topic, userID string) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE topics
		 SET name = ?, updated_at = ?
		 WHERE id = ? AND subject_id IN (SELECT id FROM subjects WHERE user_id = ?)`,
		topic.Name,
		formatTime(topic.UpdatedAt),
		topic.ID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	return requireAffected(result, "update topic")
}

func (r *TopicRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM topics
		 WHERE id = ? AND subject_id IN (SELECT id FROM subjects WHERE user_id = ?)`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	return requireAffected(result, "delete topic")
}

func scanTopic(s scanner) (*model.Topic, error) {
	topic := model.Topic{}
	var createdAt, updatedAt string
	err := s.Scan(&topic.ID, &topic.SubjectID, &topic.Name, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan topic: %w", err)
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse topic created_at: %w", err)
	}
	topic.CreatedAt = parsedCreatedAt

	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse topic updated_at: %w", err)
	}
	topic.UpdatedAt = parsedUpdatedAt

	return &topic, nil
}
