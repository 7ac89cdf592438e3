package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "estudos/backend/internal/errors"
	"estudos/backend/internal/model"
	"estudos/backend/internal/repository"
)

type SessionService struct {
	repo     *repository.SessionRepository
	subjects *repository.SubjectRepository
	topics   *repository.TopicRepository
}

func NewSessionService(
	repo *repository.SessionRepository,
	subjects *repository.SubjectRepository,
	topics *repository.TopicRepository,
) *SessionService {
	return &SessionService{
		repo:     repo,
		subjects: subjects,
		topics:   topics,
	}
}

type StartSessionInput struct {
	SubjectID string
	TopicID   *string
}

// SessionView is the wire representation of a session: the entity plus its
// pause intervals and the studied time valued as of the request.
type SessionView struct {
	model.StudySession
	StatusLabel string                `json:"statusLabel"`
	Pauses      []model.PauseInterval `json:"pausas"`
	StudiedTime string                `json:"tempoEstudado"`
}

func (s *SessionService) Start(ctx context.Context, userID string, input StartSessionInput) (*SessionView, *apperrors.APIError) {
	if input.SubjectID == "" {
		return nil, apperrors.Validation("sessão inválida", map[string]string{"materiaId": "matéria é obrigatória"})
	}

	if _, err := s.subjects.GetByID(ctx, input.SubjectID, userID); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("matéria não encontrada")
		}
		return nil, apperrors.Internal("")
	}
	if input.TopicID != nil {
		topic, err := s.topics.GetByID(ctx, *input.TopicID, userID)
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("tópico não encontrado")
		}
		if err != nil {
			return nil, apperrors.Internal("")
		}
		if topic.SubjectID != input.SubjectID {
			return nil, apperrors.BadRequest("o tópico não pertence à matéria informada")
		}
	}

	now := time.Now().UTC()
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal("")
	}
	defer tx.Rollback()

	// Check-and-create inside one tx; the partial unique index on active
	// sessions catches a racing start on another connection.
	if _, err := s.repo.GetActiveByUserTx(ctx, tx, userID); err == nil {
		return nil, apperrors.Conflict("já existe uma sessão de estudo em andamento")
	} else if err != repository.ErrNotFound {
		return nil, apperrors.Internal("")
	}

	session := model.StudySession{
		ID:        uuid.NewString(),
		UserID:    userID,
		SubjectID: input.SubjectID,
		TopicID:   input.TopicID,
		StartedAt: now,
		Status:    model.StatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertSessionTx(ctx, tx, &session); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, apperrors.Conflict("já existe uma sessão de estudo em andamento")
		}
		return nil, apperrors.Internal("")
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Internal("")
	}

	view := toSessionView(&session, nil, now)
	return &view, nil
}

func (s *SessionService) Pause(ctx context.Context, userID, sessionID string) (*SessionView, *apperrors.APIError) {
	now := time.Now().UTC()
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal("")
	}
	defer tx.Rollback()

	session, apiErr := s.getSessionTx(ctx, tx, sessionID, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	if session.Status != model.StatusInProgress {
		return nil, apperrors.InvalidState(
			fmt.Sprintf("a sessão não pode ser pausada no estado %q", session.StatusLabel()),
		)
	}

	pause := model.PauseInterval{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		StartedAt: now,
		CreatedAt: now,
	}
	if err := s.repo.InsertPauseTx(ctx, tx, &pause); err != nil {
		return nil, apperrors.Internal("")
	}

	session.Status = model.StatusPaused
	session.UpdatedAt = now
	if err := s.repo.UpdateSessionTx(ctx, tx, session); err != nil {
		return nil, apperrors.Internal("")
	}

	pauses, err := s.repo.ListPausesTx(ctx, tx, session.ID)
	if err != nil {
		return nil, apperrors.Internal("")
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Internal("")
	}

	view := toSessionView(session, pauses, now)
	return &view, nil
}

func (s *SessionService) Resume(ctx context.Context, userID, sessionID string) (*SessionView, *apperrors.APIError) {
	now := time.Now().UTC()
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal("")
	}
	defer tx.Rollback()

	session, apiErr := s.getSessionTx(ctx, tx, sessionID, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	if session.Status != model.StatusPaused {
		return nil, apperrors.InvalidState(
			fmt.Sprintf("a sessão não pode ser retomada no estado %q", session.StatusLabel()),
		)
	}

	pause, err := s.repo.OpenPauseTx(ctx, tx, session.ID)
	if err != nil {
		// A paused session always carries an open pause.
		return nil, apperrors.Internal("")
	}
	if err := s.repo.ClosePauseTx(ctx, tx, pause.ID, now); err != nil {
		return nil, apperrors.Internal("")
	}

	session.Status = model.StatusInProgress
	session.UpdatedAt = now
	if err := s.repo.UpdateSessionTx(ctx, tx, session); err != nil {
		return nil, apperrors.Internal("")
	}

	pauses, err := s.repo.ListPausesTx(ctx, tx, session.ID)
	if err != nil {
		return nil, apperrors.Internal("")
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Internal("")
	}

	view := toSessionView(session, pauses, now)
	return &view, nil
}

func (s *SessionService) Complete(ctx context.Context, userID, sessionID string) (*SessionView, *apperrors.APIError) {
	now := time.Now().UTC()
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal("")
	}
	defer tx.Rollback()

	session, apiErr := s.getSessionTx(ctx, tx, sessionID, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	if session.Status == model.StatusCompleted {
		return nil, apperrors.InvalidState("a sessão já foi concluída")
	}

	if session.Status == model.StatusPaused {
		pause, err := s.repo.OpenPauseTx(ctx, tx, session.ID)
		if err == nil {
			if err := s.repo.ClosePauseTx(ctx, tx, pause.ID, now); err != nil {
				return nil, apperrors.Internal("")
			}
		} else if err != repository.ErrNotFound {
			return nil, apperrors.Internal("")
		}
	}

	pauses, err := s.repo.ListPausesTx(ctx, tx, session.ID)
	if err != nil {
		return nil, apperrors.Internal("")
	}

	session.EndedAt = &now
	session.Status = model.StatusCompleted
	session.StudiedSeconds = int64(model.StudiedDuration(session, pauses, now).Seconds())
	session.UpdatedAt = now
	if err := s.repo.UpdateSessionTx(ctx, tx, session); err != nil {
		return nil, apperrors.Internal("")
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Internal("")
	}

	view := toSessionView(session, pauses, now)
	return &view, nil
}

func (s *SessionService) Get(ctx context.Context, userID, sessionID string) (*SessionView, *apperrors.APIError) {
	session, err := s.repo.GetSession(ctx, sessionID, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("sessão de estudo não encontrada")
	}
	if err != nil {
		return nil, apperrors.Internal("")
	}

	pauses, err := s.repo.ListPauses(ctx, session.ID)
	if err != nil {
		return nil, apperrors.Internal("")
	}

	view := toSessionView(session, pauses, time.Now().UTC())
	return &view, nil
}

func (s *SessionService) List(ctx context.Context, userID string, limit int) ([]SessionView, *apperrors.APIError) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	sessions, err := s.repo.ListSessions(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Internal("")
	}

	now := time.Now().UTC()
	views := make([]SessionView, 0, len(sessions))
	for i := range sessions {
		pauses, err := s.repo.ListPauses(ctx, sessions[i].ID)
		if err != nil {
			return nil, apperrors.Internal("")
		}
		views = append(views, toSessionView(&sessions[i], pauses, now))
	}
	return views, nil
}

func (s *SessionService) Delete(ctx context.Context, userID, sessionID string) *apperrors.APIError {
	err := s.repo.DeleteSession(ctx, sessionID, userID)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("sessão de estudo não encontrada")
	}
	if err != nil {
		return apperrors.Internal("")
	}
	return nil
}

func (s *SessionService) getSessionTx(ctx context.Context, tx *sql.Tx, sessionID, userID string) (*model.StudySession, *apperrors.APIError) {
	session, err := s.repo.GetSessionTx(ctx, tx, sessionID, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("sessão de estudo não encontrada")
	}
	if err != nil {
		return nil, apperrors.Internal("")
	}
	return session, nil
}

func toSessionView(session *model.StudySession, pauses []model.PauseInterval, now time.Time) SessionView {
	studied := model.StudiedDuration(session, pauses, now)
	if pauses == nil {
		pauses = []model.PauseInterval{}
	}
	return SessionView{
		StudySession: *session,
		StatusLabel:  session.StatusLabel(),
		Pauses:       pauses,
		StudiedTime:  FormatHMS(studied),
	}
}

// FormatHMS renders a duration as HH:MM:SS.
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
