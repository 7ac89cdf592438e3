package model

import "time"

const (
	StatusInProgress = "in_progress"
	StatusPaused     = "paused"
	StatusCompleted  = "completed"
)

// StatusLabels maps session statuses to their display labels.
var StatusLabels = map[string]string{
	StatusInProgress: "Em andamento",
	StatusPaused:     "Pausada",
	StatusCompleted:  "Concluída",
}

type StudySession struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	SubjectID      string     `json:"materiaId"`
	TopicID        *string    `json:"topicoId,omitempty"`
	StartedAt      time.Time  `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
	Status         string     `json:"status"`
	StudiedSeconds int64      `json:"studiedSeconds"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type PauseInterval struct {
	ID        string     `json:"id"`
	SessionID string     `json:"sessionId"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// IsActive reports whether the session still accepts transitions.
func (s *StudySession) IsActive() bool {
	return s.Status == StatusInProgress || s.Status == StatusPaused
}

func (s *StudySession) StatusLabel() string {
	return StatusLabels[s.Status]
}

// StudiedDuration returns the time studied between the session start and asOf
// (or the session end, once completed), excluding every pause interval. An open
// pause counts up to asOf. The result is clamped at zero so clock skew in the
// stored timestamps can never produce a negative duration.
func StudiedDuration(s *StudySession, pauses []PauseInterval, asOf time.Time) time.Duration {
	end := asOf
	if s.EndedAt != nil {
		end = *s.EndedAt
	}

	total := end.Sub(s.StartedAt)
	for _, p := range pauses {
		pauseEnd := end
		if p.EndedAt != nil {
			pauseEnd = *p.EndedAt
		}
		paused := pauseEnd.Sub(p.StartedAt)
		if paused > 0 {
			total -= paused
		}
	}

	if total < 0 {
		return 0
	}
	return total
}
