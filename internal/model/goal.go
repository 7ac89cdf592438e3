package model

import "time"

const (
	GoalTypeTime            = "time"
	GoalTypeSessionCount    = "session_count"
	GoalTypeTopicsCompleted = "topics_completed"
)

const (
	UnitMinutes    = "minutes"
	UnitHours      = "hours"
	UnitTopics     = "topics"
	UnitSessions   = "sessions"
	UnitCategories = "categories"
)

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// GoalTypeLabels maps goal types to their display labels.
var GoalTypeLabels = map[string]string{
	GoalTypeTime:            "Tempo de estudo",
	GoalTypeSessionCount:    "Sessões concluídas",
	GoalTypeTopicsCompleted: "Tópicos estudados",
}

type Goal struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	SubjectID       *string    `json:"materiaId,omitempty"`
	TopicID         *string    `json:"topicoId,omitempty"`
	Title           string     `json:"titulo"`
	Type            string     `json:"tipo"`
	TargetQuantity  float64    `json:"quantidadeAlvo"`
	CurrentQuantity float64    `json:"quantidadeAtual"`
	Unit            string     `json:"unidade"`
	Frequency       *string    `json:"frequencia,omitempty"`
	StartsAt        time.Time  `json:"dataInicio"`
	EndsAt          *time.Time `json:"dataFim,omitempty"`
	Completed       bool       `json:"concluida"`
	LastCheckedAt   *time.Time `json:"lastCheckedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// PercentComplete is current/target*100, uncapped. A non-positive target
// yields 0 so progress never divides by zero.
func (g *Goal) PercentComplete() float64 {
	if g.TargetQuantity <= 0 {
		return 0
	}
	return g.CurrentQuantity / g.TargetQuantity * 100
}

func ValidGoalType(t string) bool {
	return t == GoalTypeTime || t == GoalTypeSessionCount || t == GoalTypeTopicsCompleted
}

func ValidUnit(u string) bool {
	switch u {
	case UnitMinutes, UnitHours, UnitTopics, UnitSessions, UnitCategories:
		return true
	}
	return false
}

func ValidFrequency(f string) bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}
