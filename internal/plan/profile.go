package plan

import "math"

// Difficulty factor bounds and step (see ApplyFeedback).
const (
	DifficultyFloor = 0.8
	DifficultyStep  = 0.05
)

// AthleteProfile is the athlete configuration the whole engine runs from.
// Numeric fields coming from the outside are clamped by Normalized
// before use.
type AthleteProfile struct {
	Discipline       Discipline    `json:"discipline"`
	GoalTime         float64       `json:"goal_time_min"`
	CurrentEstimate  float64       `json:"current_estimate_min,omitempty"` // 0 = not supplied
	RunDays          int           `json:"run_days_per_week"`
	StrengthDays     int           `json:"strength_days_per_week"`
	HyroxSessions    int           `json:"hyrox_sessions_per_week"`
	ExtraRuns        int           `json:"extra_run_sessions"`
	ExtraStrength    int           `json:"extra_strength_sessions"`
	StrengthFocus    StrengthFocus `json:"strength_focus"`
	DurationWeeks    int           `json:"duration_weeks"`
	StartPercent     float64       `json:"start_percent"`
	DifficultyFactor float64       `json:"difficulty_factor"`
}

// DefaultProfile returns a sensible starting configuration.
func DefaultProfile() AthleteProfile {
	return AthleteProfile{
		Discipline:       Discipline10K,
		GoalTime:         50,
		RunDays:          3,
		StrengthDays:     2,
		StrengthFocus:    FocusHypertrophy,
		DurationWeeks:    10,
		StartPercent:     15,
		DifficultyFactor: 1.0,
	}
}

// Normalized returns a copy with every numeric field clamped to its valid
// range. Out-of-range and NaN inputs are silently pulled to the nearest
// bound; nothing here ever fails.
func (p AthleteProfile) Normalized() AthleteProfile {
	switch p.Discipline {
	case Discipline5K, Discipline10K, DisciplineHalf, DisciplineMarathon, DisciplineHyrox:
	default:
		p.Discipline = Discipline10K
	}
	switch p.StrengthFocus {
	case FocusForce, FocusHypertrophy, FocusPower, FocusEndurance, FocusCrossfit:
	default:
		p.StrengthFocus = FocusHypertrophy
	}

	minGoal, maxGoal := p.Discipline.GoalBounds()
	p.GoalTime = clampFloat(p.GoalTime, minGoal, maxGoal)
	if p.CurrentEstimate != 0 {
		// The estimate is only useful when it is a plausible time slower
		// than or equal to twice the goal ceiling.
		p.CurrentEstimate = clampFloat(p.CurrentEstimate, minGoal, maxGoal*2)
	}

	p.RunDays = clampInt(p.RunDays, 1, 7)
	p.StrengthDays = clampInt(p.StrengthDays, 0, 7)
	p.HyroxSessions = clampInt(p.HyroxSessions, 0, 7)
	p.ExtraRuns = clampInt(p.ExtraRuns, 0, 3)
	p.ExtraStrength = clampInt(p.ExtraStrength, 0, 3)
	p.DurationWeeks = clampInt(p.DurationWeeks, 4, 52)
	p.StartPercent = clampFloat(p.StartPercent, 0, 50)
	if math.IsNaN(p.DifficultyFactor) || p.DifficultyFactor == 0 {
		p.DifficultyFactor = 1.0
	}
	if p.DifficultyFactor < DifficultyFloor {
		p.DifficultyFactor = DifficultyFloor
	}
	return p
}

func clampFloat(v, min, max float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
