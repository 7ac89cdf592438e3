package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "estudos/backend/internal/errors"
	"estudos/backend/internal/model"
	"estudos/backend/internal/repository"
)

type GoalService struct {
	repo     *repository.GoalRepository
	sessions *repository.SessionRepository
	subjects *repository.SubjectRepository
	topics   *repository.TopicRepository
}

func NewGoalService(
	repo *repository.GoalRepository,
	sessions *repository.SessionRepository,
	subjects *repository.SubjectRepository,
	topics *repository.TopicRepository,
) *GoalService {
	return &GoalService{
		repo:     repo,
		sessions: sessions,
		subjects: subjects,
		topics:   topics,
	}
}

type GoalInput struct {
	SubjectID      *string
	TopicID        *string
	Title          string
	Type           string
	TargetQuantity float64
	Unit           string
	Frequency      *string
	StartsAt       time.Time
	EndsAt         *time.Time
}

// GoalView is the wire representation of a goal with its derived progress.
type GoalView struct {
	model.Goal
	TypeLabel       string  `json:"tipoLabel"`
	PercentComplete float64 `json:"percentualConcluido"`
}

func (s *GoalService) Create(ctx context.Context, userID string, input GoalInput) (*GoalView, *apperrors.APIError) {
	if apiErr := s.validate(ctx, userID, &input); apiErr != nil {
		return nil, apiErr
	}

	now := time.Now().UTC()
	goal := model.Goal{
		ID:             uuid.NewString(),
		UserID:         userID,
		SubjectID:      input.SubjectID,
		TopicID:        input.TopicID,
		Title:          input.Title,
		Type:           input.Type,
		TargetQuantity: input.TargetQuantity,
		Unit:           input.Unit,
		Frequency:      input.Frequency,
		StartsAt:       input.StartsAt.UTC(),
		EndsAt:         input.EndsAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, &goal); err != nil {
		return nil, apperrors.Internal("")
	}

	if apiErr := s.evaluate(ctx, &goal, now); apiErr != nil {
		return nil, apiErr
	}

	view := toGoalView(&goal)
	return &view, nil
}

func (s *GoalService) Get(ctx context.Context, userID, goalID string) (*GoalView, *apperrors.APIError) {
	goal, err := s.repo.GetByID(ctx, goalID, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("meta não encontrada")
	}
	if err != nil {
		return nil, apperrors.Internal("")
	}

	if apiErr := s.evaluate(ctx, goal, time.Now().UTC()); apiErr != nil {
		return nil, apiErr
	}

	view := toGoalView(goal)
	return &view, nil
}

func (s *GoalService) List(ctx context.Context, userID string) ([]GoalView, *apperrors.APIError) {
	goals, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("")
	}

	now := time.Now().UTC()
	views := make([]GoalView, 0, len(goals))
	for i := range goals {
		if apiErr := s.evaluate(ctx, &goals[i], now); apiErr != nil {
			return nil, apiErr
		}
		views = append(views, toGoalView(&goals[i]))
	}
	return views, nil
}

func (s *GoalService) Update(ctx context.Context, userID, goalID string, input GoalInput) (*GoalView, *apperrors.APIError) {
	goal, err := s.repo.GetByID(ctx, goalID, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("meta não encontrada")
	}
	if err != nil {
		return nil, apperrors.Internal("")
	}

	if apiErr := s.validate(ctx, userID, &input); apiErr != nil {
		return nil, apiErr
	}

	goal.SubjectID = input.SubjectID
	goal.TopicID = input.TopicID
	goal.Title = input.Title
	goal.Type = input.Type
	goal.TargetQuantity = input.TargetQuantity
	goal.Unit = input.Unit
	goal.Frequency = input.Frequency
	goal.StartsAt = input.StartsAt.UTC()
	goal.EndsAt = input.EndsAt
	goal.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, goal); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("meta não encontrada")
		}
		return nil, apperrors.Internal("")
	}

	if apiErr := s.evaluate(ctx, goal, time.Now().UTC()); apiErr != nil {
		return nil, apiErr
	}

	view := toGoalView(goal)
	return &view, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID string) *apperrors.APIError {
	err := s.repo.Delete(ctx, goalID, userID)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("meta não encontrada")
	}
	if err != nil {
		return apperrors.Internal("")
	}
	return nil
}

// evaluate recomputes the goal's current quantity from the qualifying
// completed sessions and persists the progress fields. Re-evaluation with the
// same activity set and asOf is idempotent; the completion flag latches once
// reached.
func (s *GoalService) evaluate(ctx context.Context, goal *model.Goal, asOf time.Time) *apperrors.APIError {
	from := goal.StartsAt
	to := asOf
	if goal.EndsAt != nil {
		to = minTime(to, *goal.EndsAt)
	}

	if goal.Frequency != nil {
		fStart, fEnd, err := periodBounds(frequencyPeriod(*goal.Frequency), asOf)
		if err == nil {
			from = maxTime(from, fStart)
			to = minTime(to, fEnd)
		}
	}

	var current float64
	if !from.After(to) {
		sessions, err := s.sessions.ListCompletedInScope(ctx, goal.UserID, goal.SubjectID, goal.TopicID, from, to)
		if err != nil {
			return apperrors.Internal("")
		}
		current = accumulate(goal, sessions)
	}

	completed := goal.Completed || (current >= goal.TargetQuantity)

	goal.CurrentQuantity = current
	goal.Completed = completed
	goal.LastCheckedAt = &asOf
	goal.UpdatedAt = asOf

	if err := s.repo.UpdateProgress(ctx, goal); err != nil {
		return apperrors.Internal("")
	}
	return nil
}

func accumulate(goal *model.Goal, sessions []model.StudySession) float64 {
	switch goal.Type {
	case model.GoalTypeTime:
		var seconds int64
		for i := range sessions {
			seconds += sessions[i].StudiedSeconds
		}
		if goal.Unit == model.UnitHours {
			return float64(seconds) / 3600
		}
		return float64(seconds) / 60
	case model.GoalTypeSessionCount:
		return float64(len(sessions))
	case model.GoalTypeTopicsCompleted:
		topics := make(map[string]struct{}, len(sessions))
		for i := range sessions {
			if sessions[i].TopicID != nil {
				topics[*sessions[i].TopicID] = struct{}{}
			}
		}
		return float64(len(topics))
	}
	return 0
}

func frequencyPeriod(frequency string) string {
	switch frequency {
	case model.FrequencyDaily:
		return PeriodDay
	case model.FrequencyWeekly:
		return PeriodWeek
	case model.FrequencyMonthly:
		return PeriodMonth
	}
	return ""
}

func (s *GoalService) validate(ctx context.Context, userID string, input *GoalInput) *apperrors.APIError {
	fields := map[string]string{}
	if input.Title == "" {
		fields["titulo"] = "título é obrigatório"
	}
	if !model.ValidGoalType(input.Type) {
		fields["tipo"] = "tipo de meta inválido"
	}
	if input.TargetQuantity < 0 {
		fields["quantidadeAlvo"] = "quantidade alvo não pode ser negativa"
	}
	if !model.ValidUnit(input.Unit) {
		fields["unidade"] = "unidade inválida"
	}
	if input.Type == model.GoalTypeTime && input.Unit != model.UnitMinutes && input.Unit != model.UnitHours {
		fields["unidade"] = "metas de tempo usam minutos ou horas"
	}
	if input.Frequency != nil && !model.ValidFrequency(*input.Frequency) {
		fields["frequencia"] = "frequência inválida"
	}
	if input.StartsAt.IsZero() {
		fields["dataInicio"] = "data de início é obrigatória"
	}
	if input.EndsAt != nil && input.EndsAt.Before(input.StartsAt) {
		fields["dataFim"] = "data final anterior à data de início"
	}
	if len(fields) > 0 {
		return apperrors.Validation("meta inválida", fields)
	}

	if input.SubjectID != nil {
		if _, err := s.subjects.GetByID(ctx, *input.SubjectID, userID); err != nil {
			if err == repository.ErrNotFound {
				return apperrors.NotFound("matéria não encontrada")
			}
			return apperrors.Internal("")
		}
	}
	if input.TopicID != nil {
		topic, err := s.topics.GetByID(ctx, *input.TopicID, userID)
		if err == repository.ErrNotFound {
			return apperrors.NotFound("tópico não encontrado")
		}
		if err != nil {
			return apperrors.Internal("")
		}
		if input.SubjectID != nil && topic.SubjectID != *input.SubjectID {
			return apperrors.BadRequest("o tópico não pertence à matéria informada")
		}
	}
	return nil
}

func toGoalView(goal *model.Goal) GoalView {
	return GoalView{
		Goal:            *goal,
		TypeLabel:       model.GoalTypeLabels[goal.Type],
		PercentComplete: goal.PercentComplete(),
	}
}
