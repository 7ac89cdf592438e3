package service

import (
	"context"
	"math"
	"time"

	apperrors "estudos/backend/internal/errors"
	"estudos/backend/internal/model"
	"estudos/backend/internal/repository"
)

type DashboardService struct {
	sessions *repository.SessionRepository
	subjects *repository.SubjectRepository
	goals    *repository.GoalRepository
	goalSvc  *GoalService
}

func NewDashboardService(
	sessions *repository.SessionRepository,
	subjects *repository.SubjectRepository,
	goals *repository.GoalRepository,
	goalSvc *GoalService,
) *DashboardService {
	return &DashboardService{
		sessions: sessions,
		subjects: subjects,
		goals:    goals,
		goalSvc:  goalSvc,
	}
}

type DashboardView struct {
	Period          string    `json:"periodo"`
	PeriodStart     time.Time `json:"inicioPeriodo"`
	PeriodEnd       time.Time `json:"fimPeriodo"`
	TotalStudied    string    `json:"tempoTotalEstudado"`
	SessionCount    int       `json:"totalSessoes"`
	TopSubject      string    `json:"materiaMaisEstudada"`
	TopSubjectHours float64   `json:"horasMateriaMaisEstudada"`
	GoalsCompleted  int       `json:"metasConcluidas"`
}

// Summarize aggregates the user's sessions and goals over the reporting
// period containing referenceDate. Sessions still running are valued as of
// now; goals overlapping the period are re-evaluated before being counted.
func (s *DashboardService) Summarize(ctx context.Context, userID, period string, referenceDate time.Time) (*DashboardView, *apperrors.APIError) {
	from, to, err := periodBounds(period, referenceDate)
	if err != nil {
		return nil, apperrors.BadRequest("período inválido: use dia, semana ou mes")
	}

	now := time.Now().UTC()
	sessions, listErr := s.sessions.ListOverlapping(ctx, userID, from, to)
	if listErr != nil {
		return nil, apperrors.Internal("")
	}

	var total time.Duration
	bySubject := make(map[string]time.Duration)
	for i := range sessions {
		pauses, pausesErr := s.sessions.ListPauses(ctx, sessions[i].ID)
		if pausesErr != nil {
			return nil, apperrors.Internal("")
		}
		studied := model.StudiedDuration(&sessions[i], pauses, now)
		total += studied
		bySubject[sessions[i].SubjectID] += studied
	}

	topSubjectID, topDuration := topSubject(bySubject)
	topSubjectName := ""
	if topSubjectID != "" {
		subject, subjErr := s.subjects.GetByID(ctx, topSubjectID, userID)
		if subjErr == nil {
			topSubjectName = subject.Name
		} else if subjErr != repository.ErrNotFound {
			return nil, apperrors.Internal("")
		}
	}

	goals, goalsErr := s.goals.ListOverlapping(ctx, userID, from, to)
	if goalsErr != nil {
		return nil, apperrors.Internal("")
	}
	completed := 0
	for i := range goals {
		if apiErr := s.goalSvc.evaluate(ctx, &goals[i], now); apiErr != nil {
			return nil, apiErr
		}
		if goals[i].Completed {
			completed++
		}
	}

	return &DashboardView{
		Period:          period,
		PeriodStart:     from,
		PeriodEnd:       to,
		TotalStudied:    FormatHMS(total),
		SessionCount:    len(sessions),
		TopSubject:      topSubjectName,
		TopSubjectHours: roundHours(topDuration),
		GoalsCompleted:  completed,
	}, nil
}

// topSubject picks the subject with the largest studied duration; ties break
// toward the lowest subject identifier.
func topSubject(bySubject map[string]time.Duration) (string, time.Duration) {
	var topID string
	var topDur time.Duration
	for id, dur := range bySubject {
		if dur > topDur || (dur == topDur && (topID == "" || id < topID)) {
			topID = id
			topDur = dur
		}
	}
	return topID, topDur
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
