package service

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"

	"estudos/backend/internal/db"
	"estudos/backend/internal/model"
	"estudos/backend/internal/repository"
)

type testEnv struct {
	sessions *repository.SessionRepository
	subjects *repository.SubjectRepository
	topics   *repository.TopicRepository
	goals    *repository.GoalRepository

	userID    string
	subjectID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	if err := db.RunMigrations(database, migrationsDir); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	env := &testEnv{
		sessions:  repository.NewSessionRepository(database),
		subjects:  repository.NewSubjectRepository(database),
		topics:    repository.NewTopicRepository(database),
		goals:     repository.NewGoalRepository(database),
		userID:    uuid.NewString(),
		subjectID: uuid.NewString(),
	}

	ctx := context.Background()
	now := time.Now().UTC()

	users := repository.NewUserRepository(database)
	if err := users.Create(ctx, &model.User{
		ID:           env.userID,
		Name:         "Estudante",
		Username:     "estudante",
		Email:        "estudante@example.com",
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := env.subjects.Create(ctx, &model.Subject{
		ID:        env.subjectID,
		UserID:    env.userID,
		Name:      "Direito Constitucional",
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed subject: %v", err)
	}

	return env
}

func (env *testEnv) addSubject(t *testing.T, name string) string {
	t.Helper()
	now := time.Now().UTC()
	id := uuid.NewString()
	if err := env.subjects.Create(context.Background(), &model.Subject{
		ID:        id,
		UserID:    env.userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed subject %s: %v", name, err)
	}
	return id
}

// seedCompletedSession inserts a finished session spanning [startedAt, endedAt]
// with no pauses.
func (env *testEnv) seedCompletedSession(t *testing.T, subjectID string, topicID *string, startedAt, endedAt time.Time) {
	t.Helper()

	ctx := context.Background()
	tx, err := env.sessions.BeginTx(ctx)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer tx.Rollback()

	session := model.StudySession{
		ID:             uuid.NewString(),
		UserID:         env.userID,
		SubjectID:      subjectID,
		TopicID:        topicID,
		StartedAt:      startedAt,
		EndedAt:        &endedAt,
		Status:         model.StatusCompleted,
		StudiedSeconds: int64(endedAt.Sub(startedAt).Seconds()),
		CreatedAt:      startedAt,
		UpdatedAt:      endedAt,
	}
	if err := env.sessions.InsertSessionTx(ctx, tx, &session); err != nil {
		t.Fatalf("insert session: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestGoalEvaluationTimeInMinutes(t *testing.T) {
	env := newTestEnv(t)
	svc := NewGoalService(env.goals, env.sessions, env.subjects, env.topics)
	ctx := context.Background()

	now := time.Now().UTC()
	env.seedCompletedSession(t, env.subjectID, nil, now.Add(-3*time.Hour), now.Add(-3*time.Hour).Add(50*time.Minute))
	env.seedCompletedSession(t, env.subjectID, nil, now.Add(-2*time.Hour), now.Add(-2*time.Hour).Add(80*time.Minute))

	view, apiErr := svc.Create(ctx, env.userID, GoalInput{
		Title:          "Estudar 2 horas",
		Type:           model.GoalTypeTime,
		TargetQuantity: 120,
		Unit:           model.UnitMinutes,
		StartsAt:       now.AddDate(0, 0, -7),
	})
	if apiErr != nil {
		t.Fatalf("create goal: %v", apiErr)
	}

	if view.CurrentQuantity != 130 {
		t.Fatalf("expected 130 minutes accumulated, got %f", view.CurrentQuantity)
	}
	if !view.Completed {
		t.Fatal("expected goal to be completed")
	}
	if view.PercentComplete < 108 || view.PercentComplete > 109 {
		t.Fatalf("expected ~108.33%%, got %f", view.PercentComplete)
	}
}

func TestGoalEvaluationSessionCount(t *testing.T) {
	env := newTestEnv(t)
	svc := NewGoalService(env.goals, env.sessions, env.subjects, env.topics)
	ctx := context.Background()

	now := time.Now().UTC()
	env.seedCompletedSession(t, env.subjectID, nil, now.Add(-4*time.Hour), now.Add(-4*time.Hour).Add(25*time.Minute))
	env.seedCompletedSession(t, env.subjectID, nil, now.Add(-2*time.Hour), now.Add(-2*time.Hour).Add(25*time.Minute))

	view, apiErr := svc.Create(ctx, env.userID, GoalInput{
		Title:          "Três sessões",
		Type:           model.GoalTypeSessionCount,
		TargetQuantity: 3,
		Unit:           model.UnitSessions,
		StartsAt:       now.AddDate(0, 0, -1),
	})
	if apiErr != nil {
		t.Fatalf("create goal: %v", apiErr)
	}

	if view.CurrentQuantity != 2 {
		t.Fatalf("expected 2 sessions, got %f", view.CurrentQuantity)
	}
	if view.Completed {
		t.Fatal("goal should not be completed yet")
	}
}

func TestGoalScopedToSubject(t *testing.T) {
	env := newTestEnv(t)
	svc := NewGoalService(env.goals, env.sessions, env.subjects, env.topics)
	ctx := context.Background()

	otherSubject := env.addSubject(t, "Matemática")

	now := time.Now().UTC()
	env.seedCompletedSession(t, env.subjectID, nil, now.Add(-3*time.Hour), now.Add(-3*time.Hour).Add(60*time.Minute))
	env.seedCompletedSession(t, otherSubject, nil, now.Add(-2*time.Hour), now.Add(-2*time.Hour).Add(30*time.Minute))

	view, apiErr := svc.Create(ctx, env.userID, GoalInput{
		SubjectID:      &env.subjectID,
		Title:          "Uma hora na matéria",
		Type:           model.GoalTypeTime,
		TargetQuantity: 60,
		Unit:           model.UnitMinutes,
		StartsAt:       now.AddDate(0, 0, -1),
	})
	if apiErr != nil {
		t.Fatalf("create goal: %v", apiErr)
	}

	if view.CurrentQuantity != 60 {
		t.Fatalf("expected only the subject's 60 minutes, got %f", view.CurrentQuantity)
	}
}

func TestGoalCompletionLatches(t *testing.T) {
	env := newTestEnv(t)
	svc := NewGoalService(env.goals, env.sessions, env.subjects, env.topics)
	ctx := context.Background()

	now := time.Now().UTC()
	env.seedCompletedSession(t, env.subjectID, nil, now.Add(-3*time.Hour), now.Add(-3*time.Hour).Add(60*time.Minute))

	view, apiErr := svc.Create(ctx, env.userID, GoalInput{
		Title:          "Meia hora",
		Type:           model.GoalTypeTime,
		TargetQuantity: 30,
		Unit:           model.UnitMinutes,
		StartsAt:       now.AddDate(0, 0, -1),
	})
	if apiErr != nil {
		t.Fatalf("create goal: %v", apiErr)
	}
	if !view.Completed {
		t.Fatal("expected goal completed")
	}

	// Raising the target above current progress keeps the flag set.
	updated, apiErr := svc.Update(ctx, env.userID, view.ID, GoalInput{
		Title:          "Meia hora",
		Type:           model.GoalTypeTime,
		TargetQuantity: 500,
		Unit:           model.UnitMinutes,
		StartsAt:       now.AddDate(0, 0, -1),
	})
	if apiErr != nil {
		t.Fatalf("update goal: %v", apiErr)
	}
	if !updated.Completed {
		t.Fatal("completion flag should latch once reached")
	}
	if updated.CurrentQuantity != 60 {
		t.Fatalf("expected current 60, got %f", updated.CurrentQuantity)
	}
}

func TestGoalValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewGoalService(env.goals, env.sessions, env.subjects, env.topics)
	ctx := context.Background()

	_, apiErr := svc.Create(ctx, env.userID, GoalInput{
		Title:          "",
		Type:           "streak",
		TargetQuantity: -1,
		Unit:           "days",
		StartsAt:       time.Time{},
	})
	if apiErr == nil {
		t.Fatal("expected validation error")
	}
	if apiErr.Status != 400 {
		t.Fatalf("expected status 400, got %d", apiErr.Status)
	}
	for _, field := range []string{"titulo", "tipo", "quantidadeAlvo", "unidade", "dataInicio"} {
		if _, ok := apiErr.Errors[field]; !ok {
			t.Fatalf("expected field error for %s", field)
		}
	}
}
