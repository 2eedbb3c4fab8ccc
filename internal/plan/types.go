package plan

import "time"

// Discipline is the target event category.
type Discipline string

const (
	Discipline5K       Discipline = "5k"
	Discipline10K      Discipline = "10k"
	DisciplineHalf     Discipline = "21k"
	DisciplineMarathon Discipline = "42k"
	DisciplineHyrox    Discipline = "hyrox"
)

// DistanceKm returns the race distance used for pace math.
// Hyrox has no fixed running distance; 8 km covers the cumulative run legs.
func (d Discipline) DistanceKm() float64 {
	switch d {
	case Discipline5K:
		return 5
	case Discipline10K:
		return 10
	case DisciplineHalf:
		return 21.1
	case DisciplineMarathon:
		return 42.195
	case DisciplineHyrox:
		return 8
	default:
		return 10
	}
}

// GoalBounds returns the valid goal-time range in minutes for the discipline.
func (d Discipline) GoalBounds() (min, max float64) {
	switch d {
	case Discipline5K:
		return 15, 50
	case Discipline10K:
		return 25, 90
	case DisciplineHalf:
		return 70, 160
	case DisciplineMarathon:
		return 160, 330
	case DisciplineHyrox:
		return 50, 130
	default:
		return 25, 90
	}
}

// StrengthFocus selects a strength programming style, each with its own
// split rotation.
type StrengthFocus string

const (
	FocusForce       StrengthFocus = "force"
	FocusHypertrophy StrengthFocus = "hypertrophy"
	FocusPower       StrengthFocus = "power"
	FocusEndurance   StrengthFocus = "endurance"
	FocusCrossfit    StrengthFocus = "crossfit"
)

// Phase classifies a week within the plan.
type Phase string

const (
	PhaseAdaptation  Phase = "adaptation"
	PhaseDevelopment Phase = "development"
	PhaseTaper       Phase = "taper"
	PhaseRace        Phase = "race"
)

// Category is the session discipline category.
type Category string

const (
	CategoryRun      Category = "run"
	CategoryStrength Category = "strength"
	CategoryHyrox    Category = "hyrox"
)

// Structure tags the internal shape of a session.
type Structure string

const (
	StructureSteady    Structure = "steady"
	StructureInterval  Structure = "interval"
	StructureThreshold Structure = "threshold"
	StructurePyramid   Structure = "pyramid"
)

// Intensity is the coarse low/high bucket used for volume distribution.
type Intensity string

const (
	IntensityLow  Intensity = "low"
	IntensityHigh Intensity = "high"
)

// Exercise is one prescribed movement inside a session.
type Exercise struct {
	Name         string `json:"name"`
	Sets         int    `json:"sets"`
	Reps         string `json:"reps"`
	Rest         string `json:"rest"`
	RPE          int    `json:"rpe"`
	Instructions string `json:"instructions,omitempty"`
}

// Session is a single prescribed workout. The ID is stable across schedule
// recomputation and exercise swaps; it is the completion key.
type Session struct {
	ID        string     `json:"id"`
	Category  Category   `json:"category"`
	Type      string     `json:"type"`
	Structure Structure  `json:"structure"`
	Intensity Intensity  `json:"intensity"`
	Duration  int        `json:"duration_min"`
	Distance  string     `json:"distance,omitempty"`
	Pace      string     `json:"pace,omitempty"`
	RPE       int        `json:"rpe"`
	Exercises []Exercise `json:"exercises,omitempty"`
}

// ExerciseID returns the completion key for the exercise at index i.
func (s Session) ExerciseID(i int) string {
	return exerciseID(s.ID, i)
}

// DaySlot is one of the seven schedule slots.
type DaySlot struct {
	Day        string   `json:"day"`
	SessionIDs []string `json:"session_ids,omitempty"`
	Activity   string   `json:"activity"`
	Focus      string   `json:"focus,omitempty"`
}

// Schedule is the Monday..Sunday placement of a week's sessions.
type Schedule struct {
	Days [7]DaySlot `json:"days"`
}

// Week is one generated training week.
type Week struct {
	Number   int       `json:"number"`
	Phase    Phase     `json:"phase"`
	Paces    PaceSet   `json:"paces"`
	Sessions []Session `json:"sessions"`
	Schedule Schedule  `json:"schedule"`
}

// SessionByID returns the session with the given id, if present.
func (w Week) SessionByID(id string) (Session, bool) {
	for _, s := range w.Sessions {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}

// Plan is the full ordered week sequence. It is generated atomically and
// only ever replaced as a whole.
type Plan struct {
	ID          string    `json:"id,omitempty"`
	GeneratedAt time.Time `json:"generated_at,omitempty"`
	Weeks       []Week    `json:"weeks"`
}

// FindSession locates a session anywhere in the plan.
func (p Plan) FindSession(id string) (weekIdx, sessionIdx int, ok bool) {
	for wi, w := range p.Weeks {
		for si, s := range w.Sessions {
			if s.ID == id {
				return wi, si, true
			}
		}
	}
	return 0, 0, false
}

// HasExercise reports whether id addresses an exercise position that
// exists somewhere in the plan.
func (p Plan) HasExercise(id string) bool {
	for _, w := range p.Weeks {
		for _, s := range w.Sessions {
			for i := range s.Exercises {
				if s.ExerciseID(i) == id {
					return true
				}
			}
		}
	}
	return false
}
