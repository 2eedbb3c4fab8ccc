package plan

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

// TestSnapshotRoundTrip verifies take → marshal → parse → restore yields
// the original state.
func TestSnapshotRoundTrip(t *testing.T) {
	st := NewState(DefaultProfile())
	st.Plan = twoWeekPlan()
	st.Completion = st.Completion.CompleteSession("w1-run-1", &SessionResult{Duration: 42, Distance: "7.2 km"})
	st.Completion = st.Completion.CompleteExercise("w1-strength-1-ex-0", ExerciseLog{"poids": "80kg"})
	st.OpenWeek = 1

	raw, err := json.Marshal(TakeSnapshot(st))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snap, err := ParseSnapshot(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	restored := snap.Restore()

	if !reflect.DeepEqual(restored.Profile, st.Profile) {
		t.Error("profile did not round-trip")
	}
	if !reflect.DeepEqual(restored.Plan, st.Plan) {
		t.Error("plan did not round-trip")
	}
	if got := restored.Completion.Sessions["w1-run-1"]; got.Duration != 42 || got.Distance != "7.2 km" {
		t.Errorf("session result did not round-trip: %+v", got)
	}
	if !restored.Completion.Exercises["w1-strength-1-ex-0"] {
		t.Error("exercise completion did not round-trip")
	}
	if restored.Completion.Log["w1-strength-1-ex-0"]["poids"] != "80kg" {
		t.Error("exercise log did not round-trip")
	}
}

// TestSnapshotDeterministic verifies equal states produce byte-identical
// snapshots (completion sets are sorted on the way out).
func TestSnapshotDeterministic(t *testing.T) {
	completedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	build := func(order []string) []byte {
		st := NewState(DefaultProfile())
		st.Plan = twoWeekPlan()
		for _, id := range order {
			st.Completion = st.Completion.CompleteSession(id, &SessionResult{CompletedAt: completedAt})
		}
		raw, err := json.Marshal(TakeSnapshot(st))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return raw
	}

	a := build([]string{"w1-run-1", "w1-run-2", "w2-run-1"})
	b := build([]string{"w2-run-1", "w1-run-1", "w1-run-2"})
	if string(a) != string(b) {
		t.Error("snapshot bytes depend on completion order")
	}
}

// TestParseSnapshotRejectsMissingKeys verifies import validation is
// all-or-nothing on required top-level keys.
func TestParseSnapshotRejectsMissingKeys(t *testing.T) {
	valid := TakeSnapshot(NewState(DefaultProfile()))
	raw, _ := json.Marshal(valid)

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	delete(doc, "completed_exercises")
	broken, _ := json.Marshal(doc)

	if _, err := ParseSnapshot(broken); err == nil {
		t.Error("snapshot missing completed_exercises accepted")
	}
	if _, err := ParseSnapshot([]byte("not json")); err == nil {
		t.Error("malformed snapshot accepted")
	}
}

// TestParseSnapshotIgnoresExtraKeys verifies unknown keys are tolerated.
func TestParseSnapshotIgnoresExtraKeys(t *testing.T) {
	raw, _ := json.Marshal(TakeSnapshot(NewState(DefaultProfile())))

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	doc["future_field"] = json.RawMessage(`{"x":1}`)
	extended, _ := json.Marshal(doc)

	if _, err := ParseSnapshot(extended); err != nil {
		t.Errorf("snapshot with extra key rejected: %v", err)
	}
}
