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

type TopicService struct {
	repo     *repository.TopicRepository
	subjects *repository.SubjectRepository
}

func NewTopicService(repo *repository.TopicRepository, subjects *repository.SubjectRepository) *TopicService {
	return &TopicService{repo: repo, subjects: subjects}
}

type TopicInput struct {
	SubjectID string
	Name      string
}

func (s *TopicService) Create(ctx context.Context, userID string, input TopicInput) (*model.Topic, *apperrors.APIError) {
	input.Name = strings.TrimSpace(input.Name)
	fields := map[string]string{}
	if input.Name == "" {
		fields["nome"] = "nome é obrigatório"
	}
	if input.SubjectID == "" {
		fields["materiaId"] = "matéria é obrigatória"
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation("tópico inválido", fields)
	}

	if _, err := s.subjects.GetByID(ctx, input.SubjectID, userID); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("matéria não encontrada")
		}
		return nil, apperrors.Internal("")
	}

	now := time.Now().UTC()
	topic := model.Topic{
		ID:        uuid.NewString(),
		SubjectID: input.SubjectID,
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &topic); err != nil {
		return nil, apperrors.Internal("")
	}
	return &topic, nil
}

func (s *TopicService) Get(ctx context.Context, userID, id string) (*model.Topic, *apperrors.APIError) {
	topic, err := s.repo.GetByID(ctx, id, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("tópico não encontrado")
	}
	if err != nil {
		return nil, apperrors.Internal("")
	}
	return topic, nil
}

func (s *TopicService) ListBySubject(ctx context.Context, userID, subjectID string) ([]model.Topic, *apperrors.APIError) {
	if subjectID == "" {
		return nil, apperrors.BadRequest("materiaId é obrigatório")
	}
	if _, err := s.subjects.GetByID(ctx, subjectID, userID); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("matéria não encontrada")
		}
		return nil, apperrors.Internal("")
	}

	topics, err := s.repo.ListBySubject(ctx, subjectID, userID)
	if err != nil {
		return nil, apperrors.Internal("")
	}
	return topics, nil
}

func (s *TopicService) Update(ctx context.Context, userID, id, name string) (*model.Topic, *apperrors.APIError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("tópico inválido", map[string]string{"nome": "nome é obrigatório"})
	}

	topic, apiErr := s.Get(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}

	topic.Name = name
	topic.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, topic, userID); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("tópico não encontrado")
		}
		return nil, apperrors.Internal("")
	}
	return topic, nil
}

func (s *TopicService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	err := s.repo.Delete(ctx, id, userID)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("tópico não encontrado")
	}
	if err != nil {
		return apperrors.Internal("")
	}
	return nil
}
