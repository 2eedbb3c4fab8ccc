package plan

import (
	"math"
	"testing"
)

// TestNormalizedGoalClamping verifies out-of-range goal times land on the
// discipline-specific bound, never the raw value.
func TestNormalizedGoalClamping(t *testing.T) {
	cases := []struct {
		discipline Discipline
		goal       float64
		want       float64
	}{
		{Discipline5K, 10, 15},
		{Discipline5K, 90, 50},
		{Discipline10K, -3, 25},
		{DisciplineHalf, 200, 160},
		{DisciplineMarathon, 100, 160},
		{DisciplineHyrox, 300, 130},
		{Discipline10K, math.NaN(), 25},
	}
	for _, tc := range cases {
		p := DefaultProfile()
		p.Discipline = tc.discipline
		p.GoalTime = tc.goal
		if got := p.Normalized().GoalTime; got != tc.want {
			t.Errorf("%s goal %v clamped to %v, want %v", tc.discipline, tc.goal, got, tc.want)
		}
	}
}

// TestNormalizedDefaults verifies unknown enums degrade to the 10K /
// hypertrophy defaults instead of failing.
func TestNormalizedDefaults(t *testing.T) {
	p := AthleteProfile{Discipline: "ultra", StrengthFocus: "yoga", GoalTime: 50}
	n := p.Normalized()
	if n.Discipline != Discipline10K {
		t.Errorf("discipline = %q, want 10k fallback", n.Discipline)
	}
	if n.StrengthFocus != FocusHypertrophy {
		t.Errorf("focus = %q, want hypertrophy fallback", n.StrengthFocus)
	}
	if n.DifficultyFactor != 1.0 {
		t.Errorf("difficulty = %v, want 1.0 default", n.DifficultyFactor)
	}
}

// TestNormalizedRanges verifies week counts and session counts clamp.
func TestNormalizedRanges(t *testing.T) {
	p := DefaultProfile()
	p.DurationWeeks = 2
	p.RunDays = 12
	p.StrengthDays = -1
	p.StartPercent = 120
	p.DifficultyFactor = 0.5

	n := p.Normalized()
	if n.DurationWeeks != 4 {
		t.Errorf("duration = %d, want 4 minimum", n.DurationWeeks)
	}
	if n.RunDays != 7 {
		t.Errorf("run days = %d, want 7", n.RunDays)
	}
	if n.StrengthDays != 0 {
		t.Errorf("strength days = %d, want 0", n.StrengthDays)
	}
	if n.StartPercent != 50 {
		t.Errorf("start percent = %v, want 50", n.StartPercent)
	}
	if n.DifficultyFactor != DifficultyFloor {
		t.Errorf("difficulty = %v, want floor %v", n.DifficultyFactor, DifficultyFloor)
	}
}
