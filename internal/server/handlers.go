package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/paceforge/internal/plan"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotState().Profile)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var profile plan.AthleteProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	normalized := profile.Normalized()
	err := s.withState(r.Context(), func(st plan.State) (plan.State, bool, error) {
		st.Profile = normalized
		return st, true, nil
	})
	if err != nil {
		s.log.Error("saving profile", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, normalized)
}

// handleGeneratePlan builds a fresh plan from the stored profile. The
// previous plan and all completion data are replaced as a whole.
func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var generated plan.Plan
	err := s.withState(r.Context(), func(st plan.State) (plan.State, bool, error) {
		p := s.gen.Generate(st.Profile)
		p.ID = uuid.NewString()
		p.GeneratedAt = time.Now().UTC()

		next := plan.NewState(st.Profile)
		next.Plan = p
		generated = p
		return next, true, nil
	})
	if err != nil {
		s.log.Error("generating plan", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, generated)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	st := s.snapshotState()
	if len(st.Plan.Weeks) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no plan generated"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"plan":      plan.RenderPlan(st.Profile, st.Plan),
		"open_week": st.OpenWeek,
	})
}

// handleGetWeek serves one week with its paces recomputed under the
// current difficulty factor; the stored plan keeps its generation-time
// values.
func (s *Server) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid week number"})
		return
	}
	st := s.snapshotState()
	for _, wk := range st.Plan.Weeks {
		if wk.Number == n {
			writeJSON(w, http.StatusOK, plan.RenderWeek(st.Profile, wk))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "week not found"})
}

// handleResetSchedule recomputes one week's day placement from its session
// list. Session IDs and completion data are untouched.
func (s *Server) handleResetSchedule(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid week number"})
		return
	}

	var reset plan.Week
	found := false
	err = s.withState(r.Context(), func(st plan.State) (plan.State, bool, error) {
		for wi, wk := range st.Plan.Weeks {
			if wk.Number != n {
				continue
			}
			found = true
			hyroxMode := st.Profile.Discipline == plan.DisciplineHyrox
			wk.Schedule = plan.AssignSchedule(wk.Sessions, hyroxMode)

			weeks := append([]plan.Week(nil), st.Plan.Weeks...)
			weeks[wi] = wk
			st.Plan.Weeks = weeks
			reset = plan.RenderWeek(st.Profile, wk)
			return st, true, nil
		}
		return st, false, nil
	})
	if err != nil {
		s.log.Error("resetting schedule", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "week not found"})
		return
	}
	writeJSON(w, http.StatusOK, reset)
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var result *plan.SessionResult
	body, _ := io.ReadAll(r.Body)
	if len(body) > 0 {
		var decoded plan.SessionResult
		if err := json.Unmarshal(body, &decoded); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
		result = &decoded
	}

	known := false
	err := s.withState(r.Context(), func(st plan.State) (plan.State, bool, error) {
		if _, _, ok := st.Plan.FindSession(id); !ok {
			return st, false, nil
		}
		known = true
		st.Completion = st.Completion.CompleteSession(id, result)
		return st, true, nil
	})
	if err != nil {
		s.log.Error("completing session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !known {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed", "session_id": id})
}

func (s *Server) handleUncompleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	known := false
	err := s.withState(r.Context(), func(st plan.State) (plan.State, bool, error) {
		if _, _, ok := st.Plan.FindSession(id); !ok {
			return st, false, nil
		}
		known = true
		st.Completion = st.Completion.UncompleteSession(id)
		return st, true, nil
	})
	if err != nil {
		s.log.Error("uncompleting session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !known {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "uncompleted", "session_id": id})
}

func (s *Server) handleSwapExercises(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		I int `json:"i"`
		J int `json:"j"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	swapped := false
	err := s.withState(r.Context(), func(st plan.State) (plan.State, bool, error) {
		newPlan, newCompletion, ok := plan.SwapExercises(st.Plan, st.Completion, id, req.I, req.J)
		if !ok {
			return st, false, nil
		}
		swapped = true
		st.Plan = newPlan
		st.Completion = newCompletion
		return st, true, nil
	})
	if err != nil {
		s.log.Error("swapping exercises", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !swapped {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid swap"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "swapped", "session_id": id})
}

func (s *Server) handleCompleteExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Values plan.ExerciseLog `json:"values"`
	}
	body, _ := io.ReadAll(r.Body)
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
	}

	known := false
	err := s.withState(r.Context(), func(st plan.State) (plan.State, bool, error) {
		if !st.Plan.HasExercise(id) {
			return st, false, nil
		}
		known = true
		st.Completion = st.Completion.CompleteExercise(id, req.Values)
		return st, true, nil
	})
	if err != nil {
		s.log.Error("completing exercise", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !known {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed", "exercise_id": id})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Feedback plan.Feedback `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if !req.Feedback.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "feedback must be too-easy, too-hard or keep"})
		return
	}

	var result plan.AdaptationResult
	err := s.withState(r.Context(), func(st plan.State) (plan.State, bool, error) {
		result = plan.ApplyFeedback(st.Profile, req.Feedback, st.Plan, st.Completion)
		st.Profile = result.Profile
		if result.OpenWeek > 0 {
			st.OpenWeek = result.OpenWeek
		}
		return st, true, nil
	})
	if err != nil {
		s.log.Error("applying feedback", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st := s.snapshotState()
	writeJSON(w, http.StatusOK, plan.ComputeStats(st.Plan, st.Completion))
}

func (s *Server) handleExportSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	tuple, ok := s.snapshotState().ExportSession(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found or not completed"})
		return
	}
	writeJSON(w, http.StatusOK, tuple)
}

func (s *Server) handleExportCompleted(w http.ResponseWriter, r *http.Request) {
	tuples := s.snapshotState().ExportCompleted()
	if tuples == nil {
		tuples = []plan.ExportTuple{}
	}
	writeJSON(w, http.StatusOK, tuples)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, plan.TakeSnapshot(s.snapshotState()))
}

// handleImportSnapshot replaces the whole state from an uploaded snapshot.
// Validation is all-or-nothing; a rejected document leaves state untouched.
func (s *Server) handleImportSnapshot(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
		return
	}
	snap, err := plan.ParseSnapshot(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	err = s.withState(r.Context(), func(st plan.State) (plan.State, bool, error) {
		return snap.Restore(), true, nil
	})
	if err != nil {
		s.log.Error("importing snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "imported",
		"completed_sessions": len(snap.CompletedSessions),
		"weeks":              len(snap.Plan.Weeks),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
