package plan

import (
	"reflect"
	"testing"

	"github.com/claude/paceforge/internal/catalog"
)

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return NewGenerator(c)
}

func tenKProfile() AthleteProfile {
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

// TestGenerateTenKScenario pins the reference 10K configuration: week 1
// carries exactly 3 runs + 2 strength sessions and the quality run is the
// short VMA session.
func TestGenerateTenKScenario(t *testing.T) {
	g := testGenerator(t)
	p := g.Generate(tenKProfile())

	if len(p.Weeks) != 10 {
		t.Fatalf("weeks = %d, want 10", len(p.Weeks))
	}

	week1 := p.Weeks[0]
	if len(week1.Sessions) != 5 {
		t.Fatalf("week 1 sessions = %d, want 5", len(week1.Sessions))
	}

	runs, strength := 0, 0
	var quality *Session
	for i, s := range week1.Sessions {
		switch s.Category {
		case CategoryRun:
			runs++
			if s.Intensity == IntensityHigh {
				quality = &week1.Sessions[i]
			}
		case CategoryStrength:
			strength++
		}
	}
	if runs != 3 || strength != 2 {
		t.Errorf("week 1 composition = %d runs + %d strength, want 3 + 2", runs, strength)
	}
	if quality == nil {
		t.Fatal("week 1 has no quality run")
	}
	if quality.Type != "VMA Courte" {
		t.Errorf("week 1 quality type = %q, want %q", quality.Type, "VMA Courte")
	}

	if week1.Paces.GapPercent != 15 {
		t.Errorf("week 1 gap = %d, want 15", week1.Paces.GapPercent)
	}
	if last := p.Weeks[9].Paces.GapPercent; last != 0 {
		t.Errorf("week 10 gap = %d, want 0", last)
	}
}

// TestGenerateDeterministic verifies repeated generation from the same
// profile yields an identical plan structure.
func TestGenerateDeterministic(t *testing.T) {
	g := testGenerator(t)
	a := g.Generate(tenKProfile())
	b := g.Generate(tenKProfile())
	if !reflect.DeepEqual(a, b) {
		t.Error("two generations from the same profile differ")
	}
}

// TestPhaseClassification covers the ordinal thresholds for a 10-week plan.
func TestPhaseClassification(t *testing.T) {
	cases := []struct {
		week int
		want Phase
	}{
		{1, PhaseAdaptation},
		{3, PhaseAdaptation},
		{4, PhaseDevelopment},
		{8, PhaseDevelopment},
		{9, PhaseTaper},
		{10, PhaseRace},
	}
	for _, tc := range cases {
		if got := PhaseFor(tc.week, 10); got != tc.want {
			t.Errorf("PhaseFor(%d, 10) = %q, want %q", tc.week, got, tc.want)
		}
	}
}

// TestTenKQualityRotation verifies the 4-week quality cycle.
func TestTenKQualityRotation(t *testing.T) {
	g := testGenerator(t)
	profile := tenKProfile()
	profile.DurationWeeks = 8
	p := g.Generate(profile)

	want := []string{"VMA Courte", "Seuil", "Côtes", "VMA Longue"}
	for w := 0; w < 4; w++ {
		var got string
		for _, s := range p.Weeks[w].Sessions {
			if s.Category == CategoryRun && s.Intensity == IntensityHigh {
				got = s.Type
			}
		}
		if got != want[w] {
			t.Errorf("week %d quality = %q, want %q", w+1, got, want[w])
		}
	}
}

// TestTaperReducesStrength verifies taper weeks drop two strength sessions
// with a floor of zero.
func TestTaperReducesStrength(t *testing.T) {
	g := testGenerator(t)
	profile := tenKProfile()
	profile.StrengthDays = 3
	p := g.Generate(profile)

	countStrength := func(w Week) int {
		n := 0
		for _, s := range w.Sessions {
			if s.Category == CategoryStrength {
				n++
			}
		}
		return n
	}

	if got := countStrength(p.Weeks[4]); got != 3 {
		t.Errorf("development week strength = %d, want 3", got)
	}
	if got := countStrength(p.Weeks[8]); got != 1 {
		t.Errorf("taper week strength = %d, want 1", got)
	}

	profile.StrengthDays = 1
	p = g.Generate(profile)
	if got := countStrength(p.Weeks[8]); got != 0 {
		t.Errorf("taper week strength with 1 configured = %d, want 0", got)
	}
}

// TestStrengthSplitRotationAcrossWeeks verifies the split cursor carries
// over between weeks instead of resetting.
func TestStrengthSplitRotationAcrossWeeks(t *testing.T) {
	g := testGenerator(t)
	profile := tenKProfile()
	p := g.Generate(profile)

	var splits []string
	for _, w := range p.Weeks[:3] {
		for _, s := range w.Sessions {
			if s.Category == CategoryStrength {
				splits = append(splits, s.Type)
			}
		}
	}
	// 2 sessions/week over 3 weeks through a 5-way split: the first five
	// must all differ, and the sixth wraps back to the first.
	if len(splits) != 6 {
		t.Fatalf("strength sessions over 3 weeks = %d, want 6", len(splits))
	}
	seen := make(map[string]bool)
	for _, name := range splits[:5] {
		if seen[name] {
			t.Errorf("split %q repeated within first full rotation", name)
		}
		seen[name] = true
	}
	if splits[5] != splits[0] {
		t.Errorf("sixth split = %q, want wrap to %q", splits[5], splits[0])
	}
}

// TestForceTwoWaySplit verifies the pure-force 2 sessions/week special case
// alternates the two-way rotation.
func TestForceTwoWaySplit(t *testing.T) {
	g := testGenerator(t)
	profile := tenKProfile()
	profile.StrengthFocus = FocusForce
	profile.StrengthDays = 2
	p := g.Generate(profile)

	names := make(map[string]bool)
	for _, w := range p.Weeks[:2] {
		for _, s := range w.Sessions {
			if s.Category == CategoryStrength {
				names[s.Type] = true
			}
		}
	}
	if len(names) != 2 {
		t.Errorf("distinct force splits = %d, want 2 (got %v)", len(names), names)
	}
}

// TestMarathonLongRunFormula pins the literal long-run heuristics: linear
// growth capped at 150 with a recovery variant every third week.
func TestMarathonLongRunFormula(t *testing.T) {
	g := testGenerator(t)
	profile := tenKProfile()
	profile.Discipline = DisciplineMarathon
	profile.GoalTime = 240
	profile.DurationWeeks = 12
	p := g.Generate(profile)

	longRun := func(w Week) Session {
		for _, s := range w.Sessions {
			if isLongRun(s) {
				return s
			}
		}
		t.Fatalf("week %d has no long run", w.Number)
		return Session{}
	}

	if s := longRun(p.Weeks[0]); s.Duration != 110 {
		t.Errorf("week 1 long run = %d min, want 110", s.Duration)
	}
	if s := longRun(p.Weeks[2]); s.Type != "Sortie Longue Récupération" || s.Duration != 90 {
		t.Errorf("week 3 long run = %q %d min, want recovery variant at 90", s.Type, s.Duration)
	}
	if s := longRun(p.Weeks[6]); s.Duration != 150 {
		t.Errorf("week 7 long run = %d min, want capped 150", s.Duration)
	}
}

// TestHyroxSplitRotation verifies all five Hyrox splits appear before any
// repeats, across week boundaries.
func TestHyroxSplitRotation(t *testing.T) {
	g := testGenerator(t)
	profile := AthleteProfile{
		Discipline:       DisciplineHyrox,
		GoalTime:         80,
		HyroxSessions:    3,
		ExtraRuns:        1,
		DurationWeeks:    5,
		StartPercent:     10,
		DifficultyFactor: 1.0,
	}
	p := g.Generate(profile)

	var splits []string
	for _, w := range p.Weeks {
		for _, s := range w.Sessions {
			if s.Category == CategoryHyrox {
				splits = append(splits, s.Type)
			}
		}
	}
	if len(splits) < 10 {
		t.Fatalf("hyrox sessions = %d, want at least 10", len(splits))
	}
	seen := make(map[string]bool)
	for i, name := range splits[:5] {
		if seen[name] {
			t.Fatalf("split %q repeated at position %d before full rotation", name, i)
		}
		seen[name] = true
	}
	if len(seen) != 5 {
		t.Errorf("distinct splits in first rotation = %d, want 5", len(seen))
	}
}

// TestHyroxRunEngine verifies the extra-run composition: one VMA session,
// then steady endurance runs.
func TestHyroxRunEngine(t *testing.T) {
	g := testGenerator(t)
	profile := AthleteProfile{
		Discipline:       DisciplineHyrox,
		GoalTime:         80,
		HyroxSessions:    2,
		ExtraRuns:        3,
		DurationWeeks:    6,
		DifficultyFactor: 1.0,
	}
	p := g.Generate(profile)

	var vma, endurance int
	for _, s := range p.Weeks[0].Sessions {
		switch s.Type {
		case "VMA Hyrox":
			vma++
		case "Endurance Fondamentale":
			endurance++
		}
	}
	if vma != 1 || endurance != 2 {
		t.Errorf("hyrox run engine = %d VMA + %d endurance, want 1 + 2", vma, endurance)
	}
}

// TestSessionIDsStable verifies the id scheme and uniqueness within a plan.
func TestSessionIDsStable(t *testing.T) {
	g := testGenerator(t)
	p := g.Generate(tenKProfile())

	seen := make(map[string]bool)
	for _, w := range p.Weeks {
		for _, s := range w.Sessions {
			if s.ID == "" {
				t.Fatalf("week %d session %q has empty id", w.Number, s.Type)
			}
			if seen[s.ID] {
				t.Fatalf("duplicate session id %q", s.ID)
			}
			seen[s.ID] = true
		}
	}

	if p.Weeks[0].Sessions[0].ID != "w1-run-1" {
		t.Errorf("first session id = %q, want w1-run-1", p.Weeks[0].Sessions[0].ID)
	}
}
