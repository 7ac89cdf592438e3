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

type SubjectService struct {
	repo       *repository.SubjectRepository
	categories *repository.CategoryRepository
}

func NewSubjectService(repo *repository.SubjectRepository, categories *repository.CategoryRepository) *SubjectService {
	return &SubjectService{repo: repo, categories: categories}
}

type SubjectInput struct {
	Name       string
	CategoryID *string
}

func (s *SubjectService) Create(ctx context.Context, userID string, input SubjectInput) (*model.Subject, *apperrors.APIError) {
	if apiErr := s.validate(ctx, userID, &input); apiErr != nil {
		return nil, apiErr
	}

	now := time.Now().UTC()
	subject := model.Subject{
		ID:         uuid.NewString(),
		UserID:     userID,
		CategoryID: input.CategoryID,
		Name:       input.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, &subject); err != nil {
		return nil, apperrors.Internal("")
	}
	return &subject, nil
}

func (s *SubjectService) Get(ctx context.Context, userID, id string) (*model.Subject, *apperrors.APIError) {
	subject, err := s.repo.GetByID(ctx, id, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("matéria não encontrada")
	}
	if err != nil {
		return nil, apperrors.Internal("")
	}
	return subject, nil
}

func (s *SubjectService) List(ctx context.Context, userID string) ([]model.Subject, *apperrors.APIError) {
	subjects, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("")
	}
	return subjects, nil
}

func (s *SubjectService) Update(ctx context.Context, userID, id string, input SubjectInput) (*model.Subject, *apperrors.APIError) {
	subject, apiErr := s.Get(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}
	if apiErr := s.validate(ctx, userID, &input); apiErr != nil {
		return nil, apiErr
	}

	subject.Name = input.Name
	subject.CategoryID = input.CategoryID
	subject.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, subject); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("matéria não encontrada")
		}
		return nil, apperrors.Internal("")
	}
	return subject, nil
}

func (s *SubjectService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	err := s.repo.Delete(ctx, id, userID)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("matéria não encontrada")
	}
	if err != nil {
		return apperrors.Internal("")
	}
	return nil
}

func (s *SubjectService) validate(ctx context.Context, userID string, input *SubjectInput) *apperrors.APIError {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return apperrors.Validation("matéria inválida", map[string]string{"nome": "nome é obrigatório"})
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID, userID); err != nil {
			if err == repository.ErrNotFound {
				return apperrors.NotFound("categoria não encontrada")
			}
			return apperrors.Internal("")
		}
	}
	return nil
}
