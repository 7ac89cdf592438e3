package model

import (
	"math"
	"testing"
)

func TestPercentCompleteUncapped(t *testing.T) {
	goal := Goal{TargetQuantity: 120, CurrentQuantity: 130}
	got := goal.PercentComplete()
	if math.Abs(got-108.333333) > 0.001 {
		t.Fatalf("expected ~108.33%%, got %f", got)
	}
}

func TestPercentCompleteZeroTarget(t *testing.T) {
	goal := Goal{TargetQuantity: 0, CurrentQuantity: 10}
	if got := goal.PercentComplete(); got != 0 {
		t.Fatalf("expected 0%% for zero target, got %f", got)
	}
}

func TestValidGoalType(t *testing.T) {
	for _, valid := range []string{GoalTypeTime, GoalTypeSessionCount, GoalTypeTopicsCompleted} {
		if !ValidGoalType(valid) {
			t.Fatalf("expected %s to be valid", valid)
		}
	}
	if ValidGoalType("streak") {
		t.Fatal("expected streak to be invalid")
	}
}

func TestValidFrequency(t *testing.T) {
	if !ValidFrequency(FrequencyWeekly) {
		t.Fatal("expected weekly to be valid")
	}
	if ValidFrequency("yearly") {
		t.Fatal("expected yearly to be invalid")
	}
}
