package plan

import "time"

// State is the complete engine state: configuration, the generated plan,
// everything the athlete has completed, and the open-week view pointer.
// Engine operations take a State and return a new one.
type State struct {
	Profile    AthleteProfile
	Plan       Plan
	Completion CompletionState
	OpenWeek   int
}

// NewState returns a fresh state around the given profile, with no plan.
func NewState(profile AthleteProfile) State {
	return State{
		Profile:    profile.Normalized(),
		Completion: NewCompletionState(),
		OpenWeek:   1,
	}
}

// ExportTuple is the read-only projection handed to external renderers
// (TCX files, images). The engine never formats files itself.
type ExportTuple struct {
	Session     Session                `json:"session"`
	CompletedAt time.Time              `json:"completed_at"`
	Duration    int                    `json:"duration_min"`
	Distance    string                 `json:"distance,omitempty"`
	Route       string                 `json:"route,omitempty"`
	Log         map[string]ExerciseLog `json:"log,omitempty"`
}

// ExportSession builds the export tuple for a completed session. Returns
// false when the session is unknown or not completed.
func (st State) ExportSession(id string) (ExportTuple, bool) {
	result, done := st.Completion.Sessions[id]
	if !done {
		return ExportTuple{}, false
	}
	wi, si, ok := st.Plan.FindSession(id)
	if !ok {
		return ExportTuple{}, false
	}
	session := st.Plan.Weeks[wi].Sessions[si]

	tuple := ExportTuple{
		Session:     session,
		CompletedAt: result.CompletedAt,
		Duration:    session.Duration,
		Distance:    session.Distance,
	}
	if result.Duration > 0 {
		tuple.Duration = result.Duration
	}
	if result.Distance != "" {
		tuple.Distance = result.Distance
	}
	tuple.Route = result.Route

	for i := range session.Exercises {
		exID := session.ExerciseID(i)
		if logEntry, ok := st.Completion.Log[exID]; ok {
			if tuple.Log == nil {
				tuple.Log = make(map[string]ExerciseLog)
			}
			tuple.Log[exID] = logEntry
		}
	}
	return tuple, true
}

// ExportCompleted returns export tuples for every completed session, in
// plan order.
func (st State) ExportCompleted() []ExportTuple {
	var tuples []ExportTuple
	for _, w := range st.Plan.Weeks {
		for _, s := range w.Sessions {
			if tuple, ok := st.ExportSession(s.ID); ok {
				tuples = append(tuples, tuple)
			}
		}
	}
	return tuples
}
