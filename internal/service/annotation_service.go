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

type AnnotationService struct {
	repo     *repository.AnnotationRepository
	sessions *repository.SessionRepository
}

func NewAnnotationService(repo *repository.AnnotationRepository, sessions *repository.SessionRepository) *AnnotationService {
	return &AnnotationService{repo: repo, sessions: sessions}
}

func (s *AnnotationService) Create(ctx context.Context, userID, sessionID, content string) (*model.Annotation, *apperrors.APIError) {
	content = strings.TrimSpace(content)
	fields := map[string]string{}
	if content == "" {
		fields["conteudo"] = "conteúdo é obrigatório"
	}
	if sessionID == "" {
		fields["sessaoId"] = "sessão é obrigatória"
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation("anotação inválida", fields)
	}

	if _, err := s.sessions.GetSession(ctx, sessionID, userID); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("sessão de estudo não encontrada")
		}
		return nil, apperrors.Internal("")
	}

	now := time.Now().UTC()
	annotation := model.Annotation{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &annotation); err != nil {
		return nil, apperrors.Internal("")
	}
	return &annotation, nil
}

func (s *AnnotationService) Get(ctx context.Context, userID, id string) (*model.Annotation, *apperrors.APIError) {
	annotation, err := s.repo.GetByID(ctx, id, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("anotação não encontrada")
	}
	if err != nil {
		return nil, apperrors.Internal("")
	}
	return annotation, nil
}

func (s *AnnotationService) ListBySession(ctx context.Context, userID, sessionID string) ([]model.Annotation, *apperrors.APIError) {
	if sessionID == "" {
		return nil, apperrors.BadRequest("sessaoId é obrigatório")
	}
	annotations, err := s.repo.ListBySession(ctx, sessionID, userID)
	if err != nil {
		return nil, apperrors.Internal("")
	}
	return annotations, nil
}

func (s *AnnotationService) Update(ctx context.Context, userID, id, content string) (*model.Annotation, *apperrors.APIError) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("anotação inválida", map[string]string{"conteudo": "conteúdo é obrigatório"})
	}

	annotation, apiErr := s.Get(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}

	annotation.Content = content
	annotation.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, annotation); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("anotação não encontrada")
		}
		return nil, apperrors.Internal("")
	}
	return annotation, nil
}

func (s *AnnotationService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	err := s.repo.Delete(ctx, id, userID)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("anotação não encontrada")
	}
	if err != nil {
		return apperrors.Internal("")
	}
	return nil
}
