package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/paceforge/internal/plan"
)

func testAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/profile", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(plan.DefaultProfile())
	})
	mux.HandleFunc("/api/v1/plan", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"plan": plan.Plan{
				ID: "abc",
				Weeks: []plan.Week{
					{Number: 1, Phase: plan.PhaseAdaptation, Paces: plan.PaceSet{GapPercent: 15}},
					{Number: 2, Phase: plan.PhaseDevelopment, Paces: plan.PaceSet{GapPercent: 13}},
				},
			},
			"open_week": 2,
		})
	})
	mux.HandleFunc("/api/v1/plan/weeks/2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(plan.Week{Number: 2, Phase: plan.PhaseDevelopment})
	})
	mux.HandleFunc("/api/v1/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(plan.Stats{TotalSessions: 50, CompletedSessions: 10, AdherencePct: 20})
	})
	mux.HandleFunc("/api/v1/export/w1-run-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(plan.ExportTuple{
			Session:  plan.Session{ID: "w1-run-1", Category: plan.CategoryRun},
			Duration: 45,
			Distance: "9.0 km",
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// TestHTTPClientGetProfile verifies the profile endpoint decodes into the
// profile type.
func TestHTTPClientGetProfile(t *testing.T) {
	srv := testAPIServer(t)
	c := NewHTTPClient(srv.URL)

	profile, err := c.GetProfile(context.Background())
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Discipline != plan.Discipline10K {
		t.Errorf("discipline = %q, want %q", profile.Discipline, plan.Discipline10K)
	}
}

// TestHTTPClientGetPlan verifies the plan document decodes with its
// open-week pointer.
func TestHTTPClientGetPlan(t *testing.T) {
	srv := testAPIServer(t)
	c := NewHTTPClient(srv.URL)

	doc, err := c.GetPlan(context.Background())
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if doc.Plan.ID != "abc" {
		t.Errorf("plan id = %q, want abc", doc.Plan.ID)
	}
	if len(doc.Plan.Weeks) != 2 {
		t.Errorf("weeks = %d, want 2", len(doc.Plan.Weeks))
	}
	if doc.OpenWeek != 2 {
		t.Errorf("open week = %d, want 2", doc.OpenWeek)
	}
}

// TestHTTPClientGetWeek verifies the single-week endpoint.
func TestHTTPClientGetWeek(t *testing.T) {
	srv := testAPIServer(t)
	c := NewHTTPClient(srv.URL)

	week, err := c.GetWeek(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetWeek: %v", err)
	}
	if week.Number != 2 {
		t.Errorf("week number = %d, want 2", week.Number)
	}
	if week.Phase != plan.PhaseDevelopment {
		t.Errorf("phase = %q, want development", week.Phase)
	}
}

// TestHTTPClientGetStats verifies the stats endpoint.
func TestHTTPClientGetStats(t *testing.T) {
	srv := testAPIServer(t)
	c := NewHTTPClient(srv.URL)

	stats, err := c.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalSessions != 50 {
		t.Errorf("total = %d, want 50", stats.TotalSessions)
	}
	if stats.AdherencePct != 20 {
		t.Errorf("adherence = %v, want 20", stats.AdherencePct)
	}
}

// TestHTTPClientGetExport verifies the export endpoint.
func TestHTTPClientGetExport(t *testing.T) {
	srv := testAPIServer(t)
	c := NewHTTPClient(srv.URL)

	tuple, err := c.GetExport(context.Background(), "w1-run-1")
	if err != nil {
		t.Fatalf("GetExport: %v", err)
	}
	if tuple.Session.ID != "w1-run-1" {
		t.Errorf("session id = %q, want w1-run-1", tuple.Session.ID)
	}
	if tuple.Distance != "9.0 km" {
		t.Errorf("distance = %q, want 9.0 km", tuple.Distance)
	}
}

// TestHTTPClientErrorStatus verifies a non-200 reply surfaces as an error
// carrying the status and body.
func TestHTTPClientErrorStatus(t *testing.T) {
	srv := testAPIServer(t)
	c := NewHTTPClient(srv.URL)

	_, err := c.GetWeek(context.Background(), 99)
	if err == nil {
		t.Fatal("expected error for 404 reply")
	}
}
