package repository

import (
	"context"
	"database/sql"
	"fmt"

	"estudos/backend/internal/model"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO categories (id, user_id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		category.ID,
		category.UserID,
		category.Name,
		formatTime(category.CreatedAt),
		formatTime(category.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id, userID string) (*model.Category, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, name, created_at, updated_at
		 FROM categories
		 WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanCategory(row)
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]model.Category, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, name, created_at, updated_at
		 FROM categories
		 WHERE user_id = ?
		 ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0, 8)
	for rows.Next() {
		category, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		categories = append(categories, *category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE categories
		 SET name = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		category.Name,
		formatTime(category.UpdatedAt),
		category.ID,
		category.UserID,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireAffected(result, "update category")
}

func (r *CategoryRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(result, "delete category")
}

func scanCategory(s scanner) (*model.Category, error) {
	category := model.Category{}
	var createdAt, updatedAt string
	err := s.Scan(&category.ID, &category.UserID, &category.Name, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse category created_at: %w", err)
	}
	category.CreatedAt = parsedCreatedAt

	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse category updated_at: %w", err)
	}
	category.UpdatedAt = parsedUpdatedAt

	return &category, nil
}
