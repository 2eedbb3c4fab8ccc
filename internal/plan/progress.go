package plan

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ExerciseLog holds free-form recorded values for one exercise, e.g.
// weights lifted per set.
type ExerciseLog map[string]string

// SessionResult captures optional overrides recorded when a session is
// completed, typically from a GPS capture or timer.
type SessionResult struct {
	CompletedAt time.Time `json:"completed_at"`
	Duration    int       `json:"duration_min,omitempty"`
	Distance    string    `json:"distance,omitempty"`
	Route       string    `json:"route,omitempty"`
}

// CompletionState tracks what the athlete has actually done. All mutators
// return a new value; the maps are never shared between states.
type CompletionState struct {
	Sessions  map[string]SessionResult `json:"sessions"`
	Exercises map[string]bool          `json:"exercises"`
	Log       map[string]ExerciseLog   `json:"log"`
}

// NewCompletionState returns an empty state.
func NewCompletionState() CompletionState {
	return CompletionState{
		Sessions:  make(map[string]SessionResult),
		Exercises: make(map[string]bool),
		Log:       make(map[string]ExerciseLog),
	}
}

func (c CompletionState) clone() CompletionState {
	next := NewCompletionState()
	for k, v := range c.Sessions {
		next.Sessions[k] = v
	}
	for k, v := range c.Exercises {
		next.Exercises[k] = v
	}
	for k, v := range c.Log {
		logCopy := make(ExerciseLog, len(v))
		for lk, lv := range v {
			logCopy[lk] = lv
		}
		next.Log[k] = logCopy
	}
	return next
}

// SessionDone reports whether the session has been completed.
func (c CompletionState) SessionDone(id string) bool {
	_, ok := c.Sessions[id]
	return ok
}

// CompleteSession marks a session done. A nil result records a bare
// completion stamped now; recompleting overwrites the previous result.
func (c CompletionState) CompleteSession(id string, result *SessionResult) CompletionState {
	next := c.clone()
	r := SessionResult{CompletedAt: time.Now().UTC()}
	if result != nil {
		r = *result
		if r.CompletedAt.IsZero() {
			r.CompletedAt = time.Now().UTC()
		}
	}
	next.Sessions[id] = r
	return next
}

// UncompleteSession removes a session completion along with its exercise
// markers and logged values.
func (c CompletionState) UncompleteSession(id string) CompletionState {
	next := c.clone()
	delete(next.Sessions, id)
	prefix := id + "-ex-"
	for k := range next.Exercises {
		if strings.HasPrefix(k, prefix) {
			delete(next.Exercises, k)
		}
	}
	for k := range next.Log {
		if strings.HasPrefix(k, prefix) {
			delete(next.Log, k)
		}
	}
	return next
}

// CompleteExercise marks one exercise done and merges any logged values.
func (c CompletionState) CompleteExercise(id string, values ExerciseLog) CompletionState {
	next := c.clone()
	next.Exercises[id] = true
	if len(values) > 0 {
		logEntry := next.Log[id]
		if logEntry == nil {
			logEntry = make(ExerciseLog, len(values))
		}
		for k, v := range values {
			logEntry[k] = v
		}
		next.Log[id] = logEntry
	}
	return next
}

func exerciseID(sessionID string, index int) string {
	return fmt.Sprintf("%s-ex-%d", sessionID, index)
}

// SwapExercises exchanges the exercises at positions i and j of a session
// and, atomically with it, exchanges their completion markers and logged
// values so credit follows the work rather than the slot. Invalid input
// (unknown session, out-of-range or equal indices) is a no-op returning
// the inputs unchanged.
func SwapExercises(p Plan, st CompletionState, sessionID string, i, j int) (Plan, CompletionState, bool) {
	wi, si, ok := p.FindSession(sessionID)
	if !ok {
		return p, st, false
	}
	session := p.Weeks[wi].Sessions[si]
	if i == j || i < 0 || j < 0 || i >= len(session.Exercises) || j >= len(session.Exercises) {
		return p, st, false
	}

	// Rebuild the plan by value down to the swapped session.
	newPlan := p
	newPlan.Weeks = append([]Week(nil), p.Weeks...)
	week := newPlan.Weeks[wi]
	week.Sessions = append([]Session(nil), week.Sessions...)
	session = week.Sessions[si]
	session.Exercises = append([]Exercise(nil), session.Exercises...)
	session.Exercises[i], session.Exercises[j] = session.Exercises[j], session.Exercises[i]
	week.Sessions[si] = session
	newPlan.Weeks[wi] = week

	next := st.clone()
	idI, idJ := exerciseID(sessionID, i), exerciseID(sessionID, j)

	doneI, doneJ := next.Exercises[idI], next.Exercises[idJ]
	delete(next.Exercises, idI)
	delete(next.Exercises, idJ)
	if doneI {
		next.Exercises[idJ] = true
	}
	if doneJ {
		next.Exercises[idI] = true
	}

	logI, okI := next.Log[idI]
	logJ, okJ := next.Log[idJ]
	delete(next.Log, idI)
	delete(next.Log, idJ)
	if okI {
		next.Log[idJ] = logI
	}
	if okJ {
		next.Log[idI] = logJ
	}

	return newPlan, next, true
}

// Stats are the aggregate progress figures over a whole plan.
type Stats struct {
	TotalSessions      int         `json:"total_sessions"`
	CompletedSessions  int         `json:"completed_sessions"`
	AdherencePct       float64     `json:"adherence_pct"`
	RealizedDistanceKm float64     `json:"realized_distance_km"`
	LowIntensityMin    int         `json:"low_intensity_min"`
	HighIntensityMin   int         `json:"high_intensity_min"`
	Weeks              []WeekStats `json:"weeks"`
}

// WeekStats compares planned and realized volume for one week.
type WeekStats struct {
	Week        int `json:"week"`
	PlannedMin  int `json:"planned_min"`
	RealizedMin int `json:"realized_min"`
}

// ComputeStats derives the aggregates from scratch. Pure function of
// (plan, state); nothing is cached.
func ComputeStats(p Plan, st CompletionState) Stats {
	stats := Stats{Weeks: make([]WeekStats, 0, len(p.Weeks))}

	for _, w := range p.Weeks {
		ws := WeekStats{Week: w.Number}
		for _, s := range w.Sessions {
			stats.TotalSessions++
			ws.PlannedMin += s.Duration
			if s.Intensity == IntensityHigh {
				stats.HighIntensityMin += s.Duration
			} else {
				stats.LowIntensityMin += s.Duration
			}

			result, done := st.Sessions[s.ID]
			if !done {
				continue
			}
			stats.CompletedSessions++

			realized := s.Duration
			if result.Duration > 0 {
				realized = result.Duration
			}
			ws.RealizedMin += realized

			if s.Category == CategoryRun {
				distance := s.Distance
				if result.Distance != "" {
					distance = result.Distance
				}
				stats.RealizedDistanceKm += parseDistanceKm(distance)
			}
		}
		stats.Weeks = append(stats.Weeks, ws)
	}

	if stats.TotalSessions > 0 {
		stats.AdherencePct = 100 * float64(stats.CompletedSessions) / float64(stats.TotalSessions)
	}
	return stats
}

// parseDistanceKm extracts the leading numeric value of a distance label
// like "8.3 km". Unparseable labels count as zero.
func parseDistanceKm(label string) float64 {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0
	}
	end := 0
	for end < len(label) && (label[end] == '.' || label[end] == ',' || (label[end] >= '0' && label[end] <= '9')) {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(label[:end], ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// NextOpenWeek returns the ordinal of the first week still holding an
// incomplete session, or 0 when the plan is finished (or empty).
func NextOpenWeek(p Plan, st CompletionState) int {
	for _, w := range p.Weeks {
		for _, s := range w.Sessions {
			if !st.SessionDone(s.ID) {
				return w.Number
			}
		}
	}
	return 0
}
