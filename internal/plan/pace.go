package plan

import (
	"fmt"
	"math"
)

// PaceSet holds the per-week target paces in minutes per kilometre, plus
// the remaining gap to goal pace as a whole percentage.
type PaceSet struct {
	RacePace   float64 `json:"race_pace"`
	Easy       float64 `json:"easy"`
	Threshold  float64 `json:"threshold"`
	Interval   float64 `json:"interval"`
	GapPercent int     `json:"gap_percent"`
}

// EasyString, ThresholdString and IntervalString render paces as "m:ss /km".
func (p PaceSet) EasyString() string      { return FormatPace(p.Easy) }
func (p PaceSet) ThresholdString() string { return FormatPace(p.Threshold) }
func (p PaceSet) IntervalString() string  { return FormatPace(p.Interval) }

// PaceInput is everything the pace model needs for one week.
type PaceInput struct {
	Week             int     // 1-indexed
	TotalWeeks       int
	GoalTime         float64 // minutes
	StartPercent     float64 // ignored when CurrentEstimate is supplied and slower than goal
	DifficultyFactor float64
	DistanceKm       float64
	CurrentEstimate  float64 // minutes, 0 = not supplied
}

// StartFactor is the athlete's fitness gap at week 1 as a pace multiplier.
// A supplied current-estimate slower than the goal wins over StartPercent.
func (in PaceInput) StartFactor() float64 {
	racePace := in.GoalTime / in.DistanceKm
	if in.CurrentEstimate > in.GoalTime {
		return (in.CurrentEstimate / in.DistanceKm) / racePace
	}
	return 1 + in.StartPercent/100
}

// CurrentFactor interpolates linearly from the start factor at week 1 down
// to 1.0 at the final week. Independent of the difficulty factor.
func (in PaceInput) CurrentFactor() float64 {
	denom := in.TotalWeeks - 1
	if denom < 1 {
		denom = 1
	}
	progress := float64(in.Week-1) / float64(denom)
	start := in.StartFactor()
	return start - progress*(start-1.0)
}

// WeekInput assembles the pace-model input for one week of a profile.
func WeekInput(p AthleteProfile, week int) PaceInput {
	return PaceInput{
		Week:             week,
		TotalWeeks:       p.DurationWeeks,
		GoalTime:         p.GoalTime,
		StartPercent:     p.StartPercent,
		DifficultyFactor: p.DifficultyFactor,
		DistanceKm:       p.Discipline.DistanceKm(),
		CurrentEstimate:  p.CurrentEstimate,
	}
}

// ComputePaces derives the week's target paces. Pure function of its input:
// callers must not cache results across difficulty-factor changes.
func ComputePaces(in PaceInput) PaceSet {
	racePace := in.GoalTime / in.DistanceKm
	current := racePace * in.CurrentFactor() * in.DifficultyFactor

	easy, threshold, interval := paceRatios(in.DistanceKm)
	return PaceSet{
		RacePace:   current,
		Easy:       current * easy,
		Threshold:  current * threshold,
		Interval:   current * interval,
		GapPercent: int(math.Round((in.CurrentFactor() - 1) * 100)),
	}
}

// paceRatios returns the easy/threshold/interval multipliers on current
// race pace for a given event distance.
func paceRatios(distanceKm float64) (easy, threshold, interval float64) {
	switch {
	case distanceKm <= 5.5:
		return 1.45, 1.15, 0.95
	case distanceKm > 40:
		return 1.20, 0.96, 0.88
	case distanceKm > 20:
		return 1.25, 1.02, 0.90
	default:
		return 1.35, 1.08, 0.90
	}
}

// RenderWeek recomputes a stored week's paces with the profile's current
// difficulty factor. Session identity, exercises and schedule stay as
// generated; only the pace set and the per-session pace and estimated
// distance fields change.
func RenderWeek(p AthleteProfile, wk Week) Week {
	paces := ComputePaces(WeekInput(p.Normalized(), wk.Number))
	wk.Paces = paces

	sessions := append([]Session(nil), wk.Sessions...)
	for i := range sessions {
		sessions[i] = renderSessionPaces(sessions[i], paces)
	}
	wk.Sessions = sessions
	return wk
}

// RenderPlan applies RenderWeek to every week.
func RenderPlan(p AthleteProfile, pl Plan) Plan {
	weeks := make([]Week, len(pl.Weeks))
	for i, wk := range pl.Weeks {
		weeks[i] = RenderWeek(p, wk)
	}
	pl.Weeks = weeks
	return pl
}

// renderSessionPaces rewrites a session's pace string from the given pace
// set, matching the target the generator assigned: threshold for WODs and
// threshold-structure runs, interval for interval and pyramid runs, easy
// for steady runs. Steady runs also refresh their estimated distance.
func renderSessionPaces(s Session, paces PaceSet) Session {
	switch {
	case s.Category == CategoryStrength:
	case s.Category == CategoryHyrox:
		s.Pace = paces.ThresholdString()
	case s.Structure == StructureThreshold:
		s.Pace = paces.ThresholdString()
	case s.Structure == StructureInterval || s.Structure == StructurePyramid:
		s.Pace = paces.IntervalString()
	default:
		s.Pace = paces.EasyString()
		if s.Distance != "" {
			s.Distance = distanceLabel(s.Duration, paces.Easy)
		}
	}
	return s
}

// FormatPace renders a min/km value as "m:ss /km".
func FormatPace(minPerKm float64) string {
	if minPerKm <= 0 || math.IsNaN(minPerKm) || math.IsInf(minPerKm, 0) {
		return "-"
	}
	totalSec := int(math.Round(minPerKm * 60))
	return fmt.Sprintf("%d:%02d /km", totalSec/60, totalSec%60)
}
