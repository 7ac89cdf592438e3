package service

import (
	"context"
	"testing"
	"time"

	"estudos/backend/internal/model"
)

func (env *testEnv) addSubjectWithID(t *testing.T, id, name string) {
	t.Helper()
	now := time.Now().UTC()
	if err := env.subjects.Create(context.Background(), &model.Subject{
		ID:        id,
		UserID:    env.userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed subject %s: %v", name, err)
	}
}

func newDashboardService(env *testEnv) *DashboardService {
	goalSvc := NewGoalService(env.goals, env.sessions, env.subjects, env.topics)
	return NewDashboardService(env.sessions, env.subjects, env.goals, goalSvc)
}

func TestDashboardWeekSummary(t *testing.T) {
	env := newTestEnv(t)
	svc := newDashboardService(env)
	ctx := context.Background()

	// 2026-08-12 is a Wednesday inside the week of Aug 10-16.
	day := time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)
	otherSubject := env.addSubject(t, "Matemática")

	env.seedCompletedSession(t, env.subjectID, nil, day.Add(9*time.Hour), day.Add(9*time.Hour+40*time.Minute))
	env.seedCompletedSession(t, otherSubject, nil, day.Add(10*time.Hour), day.Add(11*time.Hour+30*time.Minute))

	goalSvc := NewGoalService(env.goals, env.sessions, env.subjects, env.topics)
	ends := day.AddDate(0, 0, 4)
	if _, apiErr := goalSvc.Create(ctx, env.userID, GoalInput{
		Title:          "Duas horas na semana",
		Type:           model.GoalTypeTime,
		TargetQuantity: 120,
		Unit:           model.UnitMinutes,
		StartsAt:       day.AddDate(0, 0, -2),
		EndsAt:         &ends,
	}); apiErr != nil {
		t.Fatalf("create goal: %v", apiErr)
	}

	view, apiErr := svc.Summarize(ctx, env.userID, PeriodWeek, day)
	if apiErr != nil {
		t.Fatalf("summarize: %v", apiErr)
	}

	if view.Period != PeriodWeek {
		t.Fatalf("unexpected period %s", view.Period)
	}
	if view.SessionCount != 2 {
		t.Fatalf("expected 2 sessions, got %d", view.SessionCount)
	}
	if view.TotalStudied != "02:10:00" {
		t.Fatalf("expected 02:10:00 total, got %s", view.TotalStudied)
	}
	if view.TopSubject != "Matemática" {
		t.Fatalf("expected Matemática on top, got %q", view.TopSubject)
	}
	if view.TopSubjectHours != 1.5 {
		t.Fatalf("expected 1.5 top-subject hours, got %f", view.TopSubjectHours)
	}
	if view.GoalsCompleted != 1 {
		t.Fatalf("expected 1 completed goal, got %d", view.GoalsCompleted)
	}
}

func TestDashboardTopSubjectTieBreaksOnLowestID(t *testing.T) {
	env := newTestEnv(t)
	svc := newDashboardService(env)
	ctx := context.Background()

	env.addSubjectWithID(t, "subject-a", "Português")
	env.addSubjectWithID(t, "subject-b", "História")

	day := time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)
	env.seedCompletedSession(t, "subject-b", nil, day.Add(9*time.Hour), day.Add(10*time.Hour))
	env.seedCompletedSession(t, "subject-a", nil, day.Add(11*time.Hour), day.Add(12*time.Hour))

	view, apiErr := svc.Summarize(ctx, env.userID, PeriodDay, day)
	if apiErr != nil {
		t.Fatalf("summarize: %v", apiErr)
	}
	if view.TopSubject != "Português" {
		t.Fatalf("expected tie to break toward lowest id, got %q", view.TopSubject)
	}
}

func TestDashboardEmptyPeriod(t *testing.T) {
	env := newTestEnv(t)
	svc := newDashboardService(env)

	view, apiErr := svc.Summarize(context.Background(), env.userID, PeriodMonth, time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC))
	if apiErr != nil {
		t.Fatalf("summarize: %v", apiErr)
	}
	if view.SessionCount != 0 || view.TotalStudied != "00:00:00" || view.TopSubject != "" {
		t.Fatalf("expected empty summary, got %+v", view)
	}
}

func TestDashboardRejectsUnknownPeriod(t *testing.T) {
	env := newTestEnv(t)
	svc := newDashboardService(env)

	_, apiErr := svc.Summarize(context.Background(), env.userID, "ano", time.Now())
	if apiErr == nil {
		t.Fatal("expected error for unknown period")
	}
	if apiErr.Status != 400 {
		t.Fatalf("expected status 400, got %d", apiErr.Status)
	}
}
