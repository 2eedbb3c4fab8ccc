package plan

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Snapshot is the flat persistence form of the engine state: the shape
// handed to and accepted from the storage collaborator and the import/
// export endpoints. Completion sets flatten to sorted lists so snapshots
// of equal state are byte-identical.
type Snapshot struct {
	Profile            AthleteProfile           `json:"profile"`
	Plan               Plan                     `json:"plan"`
	CompletedSessions  []string                 `json:"completed_sessions"`
	SessionResults     map[string]SessionResult `json:"session_results,omitempty"`
	CompletedExercises []string                 `json:"completed_exercises"`
	ExerciseLog        map[string]ExerciseLog   `json:"exercise_log"`
	OpenWeek           int                      `json:"open_week"`
}

// requiredSnapshotKeys are the top-level keys an import must carry.
var requiredSnapshotKeys = []string{
	"profile", "plan", "completed_sessions", "completed_exercises", "exercise_log",
}

// TakeSnapshot flattens the state.
func TakeSnapshot(st State) Snapshot {
	snap := Snapshot{
		Profile:            st.Profile,
		Plan:               st.Plan,
		CompletedSessions:  make([]string, 0, len(st.Completion.Sessions)),
		SessionResults:     make(map[string]SessionResult, len(st.Completion.Sessions)),
		CompletedExercises: make([]string, 0, len(st.Completion.Exercises)),
		ExerciseLog:        make(map[string]ExerciseLog, len(st.Completion.Log)),
		OpenWeek:           st.OpenWeek,
	}
	for id, result := range st.Completion.Sessions {
		snap.CompletedSessions = append(snap.CompletedSessions, id)
		snap.SessionResults[id] = result
	}
	for id := range st.Completion.Exercises {
		snap.CompletedExercises = append(snap.CompletedExercises, id)
	}
	for id, logEntry := range st.Completion.Log {
		snap.ExerciseLog[id] = logEntry
	}
	sort.Strings(snap.CompletedSessions)
	sort.Strings(snap.CompletedExercises)
	return snap
}

// Restore rebuilds engine state from a snapshot. The profile is normalized
// on the way in so persisted out-of-range values cannot leak back.
func (s Snapshot) Restore() State {
	st := NewState(s.Profile)
	st.Plan = s.Plan
	st.OpenWeek = s.OpenWeek
	if st.OpenWeek <= 0 {
		st.OpenWeek = 1
	}
	for _, id := range s.CompletedSessions {
		result := s.SessionResults[id]
		st.Completion.Sessions[id] = result
	}
	for _, id := range s.CompletedExercises {
		st.Completion.Exercises[id] = true
	}
	for id, logEntry := range s.ExerciseLog {
		entryCopy := make(ExerciseLog, len(logEntry))
		for k, v := range logEntry {
			entryCopy[k] = v
		}
		st.Completion.Log[id] = entryCopy
	}
	return st
}

// ParseSnapshot validates and decodes an imported snapshot. Validation is
// all-or-nothing: a malformed document or a missing required key rejects
// the import entirely without touching current state. Unknown extra keys
// are ignored.
func ParseSnapshot(raw []byte) (Snapshot, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return Snapshot{}, fmt.Errorf("invalid snapshot document: %w", err)
	}
	for _, k := range requiredSnapshotKeys {
		if _, ok := keys[k]; !ok {
			return Snapshot{}, fmt.Errorf("snapshot missing required key %q", k)
		}
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}
