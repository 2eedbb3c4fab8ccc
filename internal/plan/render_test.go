package plan

import (
	"math"
	"reflect"
	"testing"
)

// TestRenderWeekAppliesDifficultyFactor verifies re-rendering a week after
// a difficulty change scales every pace while session identity, schedule
// and the gap percentage stay as generated.
func TestRenderWeekAppliesDifficultyFactor(t *testing.T) {
	g := testGenerator(t)
	profile := tenKProfile()
	wk := g.Generate(profile).Weeks[4]

	profile.DifficultyFactor = 1.05
	rendered := RenderWeek(profile, wk)

	if got, want := rendered.Paces.Easy, wk.Paces.Easy*1.05; math.Abs(got-want) > 1e-9 {
		t.Errorf("easy = %v, want %v", got, want)
	}
	if got, want := rendered.Paces.Threshold, wk.Paces.Threshold*1.05; math.Abs(got-want) > 1e-9 {
		t.Errorf("threshold = %v, want %v", got, want)
	}
	if got, want := rendered.Paces.Interval, wk.Paces.Interval*1.05; math.Abs(got-want) > 1e-9 {
		t.Errorf("interval = %v, want %v", got, want)
	}
	if rendered.Paces.GapPercent != wk.Paces.GapPercent {
		t.Errorf("gap = %d, want %d (difficulty must not move the gap)",
			rendered.Paces.GapPercent, wk.Paces.GapPercent)
	}

	for i, s := range rendered.Sessions {
		if s.ID != wk.Sessions[i].ID {
			t.Errorf("session %d id = %q, want %q", i, s.ID, wk.Sessions[i].ID)
		}
	}
	if !reflect.DeepEqual(rendered.Schedule, wk.Schedule) {
		t.Error("schedule changed on render")
	}
}

// TestRenderWeekRewritesSessionPaces verifies the per-session pace strings
// and estimated distances follow the recomputed pace set, and that
// strength sessions stay paceless.
func TestRenderWeekRewritesSessionPaces(t *testing.T) {
	g := testGenerator(t)
	profile := tenKProfile()
	wk := g.Generate(profile).Weeks[0]

	profile.DifficultyFactor = 1.2
	rendered := RenderWeek(profile, wk)

	for _, s := range rendered.Sessions {
		switch {
		case s.Category == CategoryStrength:
			if s.Pace != "" {
				t.Errorf("%s: strength pace = %q, want empty", s.ID, s.Pace)
			}
		case s.Structure == StructureThreshold:
			if s.Pace != rendered.Paces.ThresholdString() {
				t.Errorf("%s: pace = %q, want %q", s.ID, s.Pace, rendered.Paces.ThresholdString())
			}
		case s.Structure == StructureInterval || s.Structure == StructurePyramid:
			if s.Pace != rendered.Paces.IntervalString() {
				t.Errorf("%s: pace = %q, want %q", s.ID, s.Pace, rendered.Paces.IntervalString())
			}
		default:
			if s.Pace != rendered.Paces.EasyString() {
				t.Errorf("%s: pace = %q, want %q", s.ID, s.Pace, rendered.Paces.EasyString())
			}
			if s.Distance != "" {
				if want := distanceLabel(s.Duration, rendered.Paces.Easy); s.Distance != want {
					t.Errorf("%s: distance = %q, want %q", s.ID, s.Distance, want)
				}
			}
		}
	}
}

// TestRenderWeekIdentityAtGenerationFactor verifies rendering with the
// profile the plan was generated from reproduces the stored week exactly,
// for both the running and Hyrox branches.
func TestRenderWeekIdentityAtGenerationFactor(t *testing.T) {
	g := testGenerator(t)

	profiles := []AthleteProfile{
		tenKProfile(),
		{
			Discipline:       DisciplineHyrox,
			GoalTime:         80,
			HyroxSessions:    3,
			ExtraRuns:        2,
			StrengthDays:     1,
			StrengthFocus:    FocusForce,
			DurationWeeks:    6,
			StartPercent:     10,
			DifficultyFactor: 1.0,
		},
	}
	for _, profile := range profiles {
		p := g.Generate(profile)
		for _, wk := range p.Weeks {
			if rendered := RenderWeek(profile, wk); !reflect.DeepEqual(rendered, wk) {
				t.Errorf("%s week %d: render at generation factor changed the week",
					profile.Discipline, wk.Number)
			}
		}
	}
}

// TestRenderPlan verifies every week of the plan view picks up the new
// factor.
func TestRenderPlan(t *testing.T) {
	g := testGenerator(t)
	profile := tenKProfile()
	p := g.Generate(profile)

	profile.DifficultyFactor = 1.05
	rendered := RenderPlan(profile, p)

	if len(rendered.Weeks) != len(p.Weeks) {
		t.Fatalf("weeks = %d, want %d", len(rendered.Weeks), len(p.Weeks))
	}
	for i, wk := range rendered.Weeks {
		if want := p.Weeks[i].Paces.Easy * 1.05; math.Abs(wk.Paces.Easy-want) > 1e-9 {
			t.Errorf("week %d easy = %v, want %v", wk.Number, wk.Paces.Easy, want)
		}
	}
}
