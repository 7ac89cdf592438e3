package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "estudos/backend/internal/errors"
	"estudos/backend/internal/model"
	"estudos/backend/internal/repository"
)

type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, userID, name string) (*model.Category, *apperrors.APIError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("categoria inválida", map[string]string{"nome": "nome é obrigatório"})
	}

	now := time.Now().UTC()
	category := model.Category{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, apperrors.Internal("")
	}
	return &category, nil
}

func (s *CategoryService) Get(ctx context.Context, userID, id string) (*model.Category, *apperrors.APIError) {
	category, err := s.repo.GetByID(ctx, id, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("categoria não encontrada")
	}
	if err != nil {
		return nil, apperrors.Internal("")
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]model.Category, *apperrors.APIError) {
	categories, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("")
	}
	return categories, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id, name string) (*model.Category, *apperrors.APIError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("categoria inválida", map[string]string{"nome": "nome é obrigatório"})
	}

	category, apiErr := s.Get(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}

	category.Name = name
	category.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, category); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("categoria não encontrada")
		}
		return nil, apperrors.Internal("")
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	err := s.repo.Delete(ctx, id, userID)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("categoria não encontrada")
	}
	if err != nil {
		return apperrors.Internal("")
	}
	return nil
}
