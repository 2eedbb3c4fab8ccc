package plan

import (
	"fmt"
	"math"

	"github.com/claude/paceforge/internal/catalog"
)

// Generator builds plans from an athlete profile and the workout catalog.
type Generator struct {
	catalog *catalog.Catalog
}

// NewGenerator returns a Generator backed by the given catalog.
func NewGenerator(c *catalog.Catalog) *Generator {
	return &Generator{catalog: c}
}

// rotationState carries the split cursors across week generation so
// rotations advance week to week instead of resetting. It is explicit
// state threaded through buildWeek, never package-level.
type rotationState struct {
	hyrox    int
	strength map[StrengthFocus]int
}

func newRotationState() rotationState {
	return rotationState{strength: make(map[StrengthFocus]int)}
}

// Quality-run rotation for 10K plans, indexed by week % 4.
var tenKQualityCycle = [4]string{"VMA Longue", "VMA Courte", "Seuil", "Côtes"}

// Generate produces the full plan. Deterministic for a fixed profile and
// catalog; the caller stamps ID and GeneratedAt on the result.
func (g *Generator) Generate(profile AthleteProfile) Plan {
	p := profile.Normalized()
	rot := newRotationState()

	weeks := make([]Week, 0, p.DurationWeeks)
	for w := 1; w <= p.DurationWeeks; w++ {
		var week Week
		week, rot = g.buildWeek(p, w, rot)
		weeks = append(weeks, week)
	}
	return Plan{Weeks: weeks}
}

// PhaseFor classifies a week ordinal within a plan of the given length.
func PhaseFor(week, totalWeeks int) Phase {
	switch {
	case week == totalWeeks:
		return PhaseRace
	case week > totalWeeks-2:
		return PhaseTaper
	case week <= int(math.Ceil(float64(totalWeeks)*0.3)):
		return PhaseAdaptation
	default:
		return PhaseDevelopment
	}
}

func (g *Generator) buildWeek(p AthleteProfile, week int, rot rotationState) (Week, rotationState) {
	paces := ComputePaces(WeekInput(p, week))
	phase := PhaseFor(week, p.DurationWeeks)

	var sessions []Session
	if p.Discipline == DisciplineHyrox {
		sessions, rot = g.hyroxWeek(p, week, phase, paces, rot)
	} else {
		sessions, rot = g.runningWeek(p, week, phase, paces, rot)
	}

	return Week{
		Number:   week,
		Phase:    phase,
		Paces:    paces,
		Sessions: sessions,
		Schedule: AssignSchedule(sessions, p.Discipline == DisciplineHyrox),
	}, rot
}

// sessionID builds the stable completion key: week ordinal + category +
// per-category ordinal.
func sessionID(week int, cat Category, ordinal int) string {
	return fmt.Sprintf("w%d-%s-%d", week, cat, ordinal)
}

// --- standard running branch ---

func (g *Generator) runningWeek(p AthleteProfile, week int, phase Phase, paces PaceSet, rot rotationState) ([]Session, rotationState) {
	var sessions []Session
	runOrdinal := 0

	addRun := func(s Session) {
		runOrdinal++
		s.ID = sessionID(week, CategoryRun, runOrdinal)
		s.Category = CategoryRun
		sessions = append(sessions, s)
	}

	easyDuration := 40
	if phase == PhaseDevelopment {
		easyDuration = 50
	}
	if phase == PhaseTaper || phase == PhaseRace {
		easyDuration = 35
	}

	addRun(Session{
		Type:      "Footing",
		Structure: StructureSteady,
		Intensity: IntensityLow,
		Duration:  easyDuration,
		Distance:  distanceLabel(easyDuration, paces.Easy),
		Pace:      paces.EasyString(),
		RPE:       4,
	})

	if p.RunDays >= 2 {
		addRun(g.qualityRun(p.Discipline, week, paces))
	}

	if p.RunDays >= 3 {
		addRun(g.longRun(p.Discipline, week, phase, paces))
	}

	if p.RunDays >= 4 {
		addRun(Session{
			Type:      "Footing Récupération",
			Structure: StructureSteady,
			Intensity: IntensityLow,
			Duration:  30,
			Distance:  distanceLabel(30, paces.Easy),
			Pace:      paces.EasyString(),
			RPE:       3,
		})
	}

	for i := 0; i < p.ExtraRuns; i++ {
		addRun(Session{
			Type:      "Footing",
			Structure: StructureSteady,
			Intensity: IntensityLow,
			Duration:  40,
			Distance:  distanceLabel(40, paces.Easy),
			Pace:      paces.EasyString(),
			RPE:       4,
		})
	}

	sessions, rot = g.appendStrength(sessions, p, week, phase, rot)
	return sessions, rot
}

// qualityRun picks the week's key session. Only the 10K cycle is a strict
// 4-week rotation; the other events alternate or stay on their signature
// session. Unknown disciplines already degraded to 10K in Normalized.
func (g *Generator) qualityRun(d Discipline, week int, paces PaceSet) Session {
	var typ string
	structure := StructureInterval
	pace := paces.IntervalString()

	switch d {
	case Discipline5K:
		if week%2 == 0 {
			typ = "VMA Longue"
		} else {
			typ = "VMA Courte"
		}
	case DisciplineHalf:
		typ = "Seuil"
		structure = StructureThreshold
		pace = paces.ThresholdString()
	case DisciplineMarathon:
		if week%2 == 0 {
			typ = "Allure Marathon"
		} else {
			typ = "Seuil"
		}
		structure = StructureThreshold
		pace = paces.ThresholdString()
	default: // 10K
		typ = tenKQualityCycle[week%4]
		switch typ {
		case "Seuil":
			structure = StructureThreshold
			pace = paces.ThresholdString()
		case "Côtes":
			structure = StructurePyramid
		}
	}

	return Session{
		Type:      typ,
		Structure: structure,
		Intensity: IntensityHigh,
		Duration:  50,
		Pace:      pace,
		RPE:       8,
	}
}

// longRun applies the event-specific duration formulas. The marathon and
// half formulas are kept literally from the original heuristics, including
// the half reset past 130 minutes.
func (g *Generator) longRun(d Discipline, week int, phase Phase, paces PaceSet) Session {
	typ := "Sortie Longue"
	duration := 0

	switch d {
	case DisciplineMarathon:
		duration = 100 + week*10
		if duration > 150 {
			duration = 150
		}
		if week%3 == 0 {
			typ = "Sortie Longue Récupération"
			duration = 90
		}
	case DisciplineHalf:
		duration = 80 + week*5
		if duration > 130 {
			duration = 90
		}
	case Discipline5K:
		duration = 50 + week*5
		if duration > 75 {
			duration = 75
		}
	default: // 10K
		duration = 60 + week*5
		if duration > 90 {
			duration = 90
		}
	}

	if phase == PhaseTaper || phase == PhaseRace {
		duration = int(float64(duration) * 0.6)
	}

	return Session{
		Type:      typ,
		Structure: StructureSteady,
		Intensity: IntensityLow,
		Duration:  duration,
		Distance:  distanceLabel(duration, paces.Easy),
		Pace:      paces.EasyString(),
		RPE:       5,
	}
}

// appendStrength emits the week's strength sessions, rotating the focus
// split cursor. Taper weeks drop two sessions (floor zero).
func (g *Generator) appendStrength(sessions []Session, p AthleteProfile, week int, phase Phase, rot rotationState) ([]Session, rotationState) {
	count := p.StrengthDays + p.ExtraStrength
	if phase == PhaseTaper || phase == PhaseRace {
		count -= 2
		if count < 0 {
			count = 0
		}
	}

	splits := g.catalog.SplitNames(string(p.StrengthFocus))
	// Pure force at exactly two sessions per week runs a two-way
	// upper/lower rotation instead of the full five-way split.
	if p.StrengthFocus == FocusForce && p.StrengthDays == 2 && len(splits) >= 2 {
		splits = splits[:2]
	}

	for i := 0; i < count; i++ {
		var split string
		if len(splits) > 0 {
			split = splits[rot.strength[p.StrengthFocus]%len(splits)]
			rot.strength[p.StrengthFocus]++
		}
		sessions = append(sessions, g.strengthSession(p.StrengthFocus, split, week, i+1))
	}
	return sessions, rot
}

func (g *Generator) strengthSession(focus StrengthFocus, split string, week, ordinal int) Session {
	intensity := IntensityLow
	rpe := 7
	if focus == FocusForce || focus == FocusPower || focus == FocusCrossfit {
		intensity = IntensityHigh
		rpe = 8
	}
	typ := split
	if typ == "" {
		typ = "Renforcement"
	}
	return Session{
		ID:        sessionID(week, CategoryStrength, ordinal),
		Category:  CategoryStrength,
		Type:      typ,
		Structure: StructureSteady,
		Intensity: intensity,
		Duration:  50,
		RPE:       rpe,
		Exercises: g.exercisesFor(string(focus), split),
	}
}

// --- Hyrox branch ---

func (g *Generator) hyroxWeek(p AthleteProfile, week int, phase Phase, paces PaceSet, rot rotationState) ([]Session, rotationState) {
	var sessions []Session
	runOrdinal := 0

	// Run engine: one VMA session when any extra runs are configured,
	// steady endurance runs for the remainder.
	if p.ExtraRuns > 0 {
		runOrdinal++
		sessions = append(sessions, Session{
			ID:        sessionID(week, CategoryRun, runOrdinal),
			Category:  CategoryRun,
			Type:      "VMA Hyrox",
			Structure: StructureInterval,
			Intensity: IntensityHigh,
			Duration:  45,
			Pace:      paces.IntervalString(),
			RPE:       8,
		})
	}
	for i := 1; i < p.ExtraRuns; i++ {
		runOrdinal++
		sessions = append(sessions, Session{
			ID:        sessionID(week, CategoryRun, runOrdinal),
			Category:  CategoryRun,
			Type:      "Endurance Fondamentale",
			Structure: StructureSteady,
			Intensity: IntensityLow,
			Duration:  50,
			Distance:  distanceLabel(50, paces.Easy),
			Pace:      paces.EasyString(),
			RPE:       4,
		})
	}

	hyroxSplits := g.catalog.SplitNames("hyrox")
	for i := 0; i < p.HyroxSessions; i++ {
		var split string
		if len(hyroxSplits) > 0 {
			split = hyroxSplits[rot.hyrox%len(hyroxSplits)]
			rot.hyrox++
		} else {
			split = "Hyrox WOD"
		}
		structure := StructureInterval
		if split == "Simulation Course" {
			structure = StructureSteady
		}
		sessions = append(sessions, Session{
			ID:        sessionID(week, CategoryHyrox, i+1),
			Category:  CategoryHyrox,
			Type:      split,
			Structure: structure,
			Intensity: IntensityHigh,
			Duration:  60,
			Pace:      paces.ThresholdString(),
			RPE:       8,
			Exercises: g.exercisesFor("hyrox", split),
		})
	}

	sessions, rot = g.appendStrength(sessions, p, week, phase, rot)
	return sessions, rot
}

// exercisesFor copies catalog templates into session exercises. An unknown
// focus/split degrades to no exercises.
func (g *Generator) exercisesFor(focus, split string) []Exercise {
	templates := g.catalog.Exercises(focus, split)
	if len(templates) == 0 {
		return nil
	}
	exercises := make([]Exercise, len(templates))
	for i, t := range templates {
		exercises[i] = Exercise{
			Name:         t.Name,
			Sets:         t.Sets,
			Reps:         t.Reps,
			Rest:         t.Rest,
			RPE:          t.RPE,
			Instructions: t.Instructions,
		}
	}
	return exercises
}

// distanceLabel estimates covered distance for a steady run at the given
// pace, e.g. "8.3 km".
func distanceLabel(durationMin int, paceMinPerKm float64) string {
	if paceMinPerKm <= 0 {
		return ""
	}
	km := float64(durationMin) / paceMinPerKm
	return fmt.Sprintf("%.1f km", km)
}
