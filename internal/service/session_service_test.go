package service

import (
	"context"
	"testing"

	"estudos/backend/internal/model"
)

func TestSessionPauseResumePauseComplete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSessionService(env.sessions, env.subjects, env.topics)
	ctx := context.Background()

	started, apiErr := svc.Start(ctx, env.userID, StartSessionInput{SubjectID: env.subjectID})
	if apiErr != nil {
		t.Fatalf("start: %v", apiErr)
	}
	if started.Status != model.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", started.Status)
	}

	if _, apiErr := svc.Pause(ctx, env.userID, started.ID); apiErr != nil {
		t.Fatalf("first pause: %v", apiErr)
	}
	resumed, apiErr := svc.Resume(ctx, env.userID, started.ID)
	if apiErr != nil {
		t.Fatalf("resume: %v", apiErr)
	}
	if resumed.Status != model.StatusInProgress {
		t.Fatalf("expected in_progress after resume, got %s", resumed.Status)
	}
	if _, apiErr := svc.Pause(ctx, env.userID, started.ID); apiErr != nil {
		t.Fatalf("second pause: %v", apiErr)
	}

	completed, apiErr := svc.Complete(ctx, env.userID, started.ID)
	if apiErr != nil {
		t.Fatalf("complete: %v", apiErr)
	}
	if completed.Status != model.StatusCompleted || completed.EndedAt == nil {
		t.Fatalf("expected completed session with end timestamp, got %+v", completed.StudySession)
	}
	if len(completed.Pauses) != 2 {
		t.Fatalf("expected 2 pause intervals, got %d", len(completed.Pauses))
	}
	for i, pause := range completed.Pauses {
		if pause.EndedAt == nil {
			t.Fatalf("pause %d still open after completion", i)
		}
	}
	if completed.StudiedSeconds < 0 {
		t.Fatalf("negative studied seconds: %d", completed.StudiedSeconds)
	}
}

func TestSessionSecondStartConflicts(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSessionService(env.sessions, env.subjects, env.topics)
	ctx := context.Background()

	if _, apiErr := svc.Start(ctx, env.userID, StartSessionInput{SubjectID: env.subjectID}); apiErr != nil {
		t.Fatalf("start: %v", apiErr)
	}
	_, apiErr := svc.Start(ctx, env.userID, StartSessionInput{SubjectID: env.subjectID})
	if apiErr == nil {
		t.Fatal("expected conflict for second active session")
	}
	if apiErr.Status != 409 {
		t.Fatalf("expected status 409, got %d", apiErr.Status)
	}
}

func TestSessionInvalidTransitions(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSessionService(env.sessions, env.subjects, env.topics)
	ctx := context.Background()

	started, apiErr := svc.Start(ctx, env.userID, StartSessionInput{SubjectID: env.subjectID})
	if apiErr != nil {
		t.Fatalf("start: %v", apiErr)
	}

	if _, apiErr := svc.Resume(ctx, env.userID, started.ID); apiErr == nil || apiErr.Status != 400 {
		t.Fatalf("expected 400 resuming a running session, got %v", apiErr)
	}

	if _, apiErr := svc.Complete(ctx, env.userID, started.ID); apiErr != nil {
		t.Fatalf("complete: %v", apiErr)
	}
	if _, apiErr := svc.Pause(ctx, env.userID, started.ID); apiErr == nil || apiErr.Status != 400 {
		t.Fatalf("expected 400 pausing a completed session, got %v", apiErr)
	}
	if _, apiErr := svc.Complete(ctx, env.userID, started.ID); apiErr == nil || apiErr.Status != 400 {
		t.Fatalf("expected 400 completing twice, got %v", apiErr)
	}
}
