package model

import (
	"testing"
	"time"
)

func timeAt(hour, minute int) time.Time {
	return time.Date(2026, time.August, 12, hour, minute, 0, 0, time.UTC)
}

func TestStudiedDurationExcludesClosedPauses(t *testing.T) {
	end := timeAt(10, 0)
	pauseEnd := timeAt(9, 40)
	session := StudySession{
		StartedAt: timeAt(9, 0),
		EndedAt:   &end,
		Status:    StatusCompleted,
	}
	pauses := []PauseInterval{
		{StartedAt: timeAt(9, 30), EndedAt: &pauseEnd},
	}

	got := StudiedDuration(&session, pauses, timeAt(12, 0))
	if got != 50*time.Minute {
		t.Fatalf("expected 50m studied, got %s", got)
	}
}

func TestStudiedDurationOpenPauseCountsUpToAsOf(t *testing.T) {
	session := StudySession{
		StartedAt: timeAt(9, 0),
		Status:    StatusPaused,
	}
	pauses := []PauseInterval{
		{StartedAt: timeAt(9, 30)},
	}

	got := StudiedDuration(&session, pauses, timeAt(10, 0))
	if got != 30*time.Minute {
		t.Fatalf("expected 30m studied, got %s", got)
	}
}

func TestStudiedDurationNeverNegative(t *testing.T) {
	end := timeAt(9, 10)
	pauseEnd := timeAt(9, 30)
	session := StudySession{
		StartedAt: timeAt(9, 0),
		EndedAt:   &end,
		Status:    StatusCompleted,
	}
	pauses := []PauseInterval{
		{StartedAt: timeAt(8, 50), EndedAt: &pauseEnd},
	}

	if got := StudiedDuration(&session, pauses, timeAt(10, 0)); got != 0 {
		t.Fatalf("expected clamp to zero, got %s", got)
	}
}

func TestIsActive(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{StatusInProgress, true},
		{StatusPaused, true},
		{StatusCompleted, false},
	}
	for _, tc := range cases {
		session := StudySession{Status: tc.status}
		if session.IsActive() != tc.want {
			t.Fatalf("IsActive for %s: expected %v", tc.status, tc.want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	session := StudySession{Status: StatusPaused}
	if session.StatusLabel() != "Pausada" {
		t.Fatalf("unexpected label %q", session.StatusLabel())
	}
}
