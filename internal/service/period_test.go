package service

import (
	"testing"
	"time"
)

func TestPeriodBoundsDay(t *testing.T) {
	ref := time.Date(2026, time.August, 12, 15, 30, 0, 0, time.UTC)
	start, end, err := periodBounds(PeriodDay, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("expected start %s, got %s", wantStart, start)
	}
	if !end.Before(wantStart.AddDate(0, 0, 1)) || end.Before(wantStart) {
		t.Fatalf("end %s outside the day", end)
	}
}

func TestPeriodBoundsWeekStartsMonday(t *testing.T) {
	// 2026-08-12 is a Wednesday.
	ref := time.Date(2026, time.August, 12, 10, 0, 0, 0, time.UTC)
	start, end, err := periodBounds(PeriodWeek, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("expected Monday %s, got %s", wantStart, start)
	}
	if end.Day() != 16 || end.Month() != time.August {
		t.Fatalf("expected end on Sunday Aug 16, got %s", end)
	}
}

func TestPeriodBoundsWeekSundayBelongsToSameWeek(t *testing.T) {
	// 2026-08-16 is a Sunday; it closes the week that began Monday the 10th.
	ref := time.Date(2026, time.August, 16, 23, 0, 0, 0, time.UTC)
	start, _, err := periodBounds(PeriodWeek, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("expected Monday %s, got %s", wantStart, start)
	}
}

func TestPeriodBoundsMonth(t *testing.T) {
	ref := time.Date(2026, time.February, 14, 8, 0, 0, 0, time.UTC)
	start, end, err := periodBounds(PeriodMonth, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("expected start %s, got %s", wantStart, start)
	}
	if end.Month() != time.February || end.Day() != 28 {
		t.Fatalf("expected end on Feb 28, got %s", end)
	}
}

func TestPeriodBoundsInvalid(t *testing.T) {
	if _, _, err := periodBounds("ano", time.Now()); err == nil {
		t.Fatal("expected error for unknown period")
	}
}

func TestFormatHMS(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{50 * time.Minute, "00:50:00"},
		{2*time.Hour + 10*time.Minute + 5*time.Second, "02:10:05"},
		{-time.Minute, "00:00:00"},
	}
	for _, tc := range cases {
		if got := FormatHMS(tc.d); got != tc.want {
			t.Fatalf("FormatHMS(%s): expected %s, got %s", tc.d, tc.want, got)
		}
	}
}
