package repository

import (
	"context"
	"database/sql"
	"fmt"

	"estudos/backend/internal/model"
)

type AnnotationRepository struct {
	db *sql.DB
}

func NewAnnotationRepository(db *sql.DB) *AnnotationRepository {
	return &AnnotationRepository{db: db}
}

func (r *AnnotationRepository) Create(ctx context.Context, annotation *model.Annotation) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO annotations (id, user_id, session_id, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		annotation.ID,
		annotation.UserID,
		annotation.SessionID,
		annotation.Content,
		formatTime(annotation.CreatedAt),
		formatTime(annotation.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create annotation: %w", err)
	}
	return nil
}

func (r *AnnotationRepository) GetByID(ctx context.Context, id, userID string) (*model.Annotation, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, session_id, content, created_at, updated_at
		 FROM annotations
		 WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanAnnotation(row)
}

func (r *AnnotationRepository) ListBySession(ctx context.Context, sessionID, userID string) ([]model.Annotation, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, session_id, content, created_at, updated_at
		 FROM annotations
		 WHERE session_id = ? AND user_id = ?
		 ORDER BY created_at ASC`,
		sessionID,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}
	defer rows.Close()

	annotations := make([]model.Annotation, 0, 4)
	for rows.Next() {
		annotation, scanErr := scanAnnotation(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		annotations = append(annotations, *annotation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate annotations: %w", err)
	}
	return annotations, nil
}

func (r *AnnotationRepository) Update(ctx context.Context, annotation *model.Annotation) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE annotations
		 SET content = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		annotation.Content,
		formatTime(annotation.UpdatedAt),
		annotation.ID,
		annotation.UserID,
	)
	if err != nil {
		return fmt.Errorf("update annotation: %w", err)
	}
	return requireAffected(result, "update annotation")
}

func (r *AnnotationRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM annotations WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete annotation: %w", err)
	}
	return requireAffected(result, "delete annotation")
}

func scanAnnotation(s scanner) (*model.Annotation, error) {
	annotation := model.Annotation{}
	var createdAt, updatedAt string
	err := s.Scan(
		&annotation.ID,
		&annotation.UserID,
		&annotation.SessionID,
		&annotation.Content,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan annotation: %w", err)
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse annotation created_at: %w", err)
	}
	annotation.CreatedAt = parsedCreatedAt

	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse annotation updated_at: %w", err)
	}
	annotation.UpdatedAt = parsedUpdatedAt

	return &annotation, nil
}
