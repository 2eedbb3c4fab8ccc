package mcp

import (
	"context"
	"strconv"

	"github.com/claude/paceforge/internal/plan"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetProfile = mcp.NewTool("get_profile",
	mcp.WithDescription("Retrieve the athlete profile: discipline, goal time, weekly run/strength volume, strength focus and the current difficulty factor."),
)

var toolGetPlanOverview = mcp.NewTool("get_plan_overview",
	mcp.WithDescription("Summarize the generated plan: one line per week with phase, session count and the pace gap remaining to race pace, plus the open week."),
)

var toolGetWeek = mcp.NewTool("get_week",
	mcp.WithDescription("Retrieve one training week in full: pace targets, every session with its exercises, and the Monday-to-Sunday schedule."),
	mcp.WithString("week", mcp.Required(), mcp.Description("Week ordinal (1-based)")),
)

var toolGetPaceTargets = mcp.NewTool("get_pace_targets",
	mcp.WithDescription("Retrieve the pace targets for one week: easy, threshold and interval paces in min/km plus the gap to race pace in percent."),
	mcp.WithString("week", mcp.Required(), mcp.Description("Week ordinal (1-based)")),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Retrieve progress statistics: adherence, realized running distance, low/high intensity minutes and per-week planned vs realized volume."),
)

var toolGetSessionExport = mcp.NewTool("get_session_export",
	mcp.WithDescription("Retrieve the export record of a completed session: the prescription plus recorded duration, distance, route and exercise log."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id, e.g. w3-run-1")),
)

// --- Tool handlers ---

func (h *handlers) getProfile(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profile, err := h.ds.GetProfile(ctx)
	if err != nil {
		h.log.Error("mcp get_profile", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(profile)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// weekSummary is one overview line.
type weekSummary struct {
	Number     int        `json:"number"`
	Phase      plan.Phase `json:"phase"`
	Sessions   int        `json:"sessions"`
	GapPercent int        `json:"gap_percent"`
}

func overviewOf(doc PlanDocument) map[string]any {
	weeks := make([]weekSummary, 0, len(doc.Plan.Weeks))
	for _, w := range doc.Plan.Weeks {
		weeks = append(weeks, weekSummary{
			Number:     w.Number,
			Phase:      w.Phase,
			Sessions:   len(w.Sessions),
			GapPercent: w.Paces.GapPercent,
		})
	}
	return map[string]any{
		"id":           doc.Plan.ID,
		"generated_at": doc.Plan.GeneratedAt,
		"open_week":    doc.OpenWeek,
		"weeks":        weeks,
	}
}

func (h *handlers) getPlanOverview(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := h.ds.GetPlan(ctx)
	if err != nil {
		h.log.Error("mcp get_plan_overview", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(overviewOf(doc))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeek(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weekStr, err := req.RequireString("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}
	number, err := strconv.Atoi(weekStr)
	if err != nil {
		return mcp.NewToolResultError("week must be an integer"), nil
	}

	week, err := h.ds.GetWeek(ctx, number)
	if err != nil {
		h.log.Error("mcp get_week", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(week)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPaceTargets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weekStr, err := req.RequireString("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}
	number, err := strconv.Atoi(weekStr)
	if err != nil {
		return mcp.NewToolResultError("week must be an integer"), nil
	}

	week, err := h.ds.GetWeek(ctx, number)
	if err != nil {
		h.log.Error("mcp get_pace_targets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"week":        week.Number,
		"phase":       week.Phase,
		"easy":        week.Paces.EasyString(),
		"threshold":   week.Paces.ThresholdString(),
		"interval":    week.Paces.IntervalString(),
		"gap_percent": week.Paces.GapPercent,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetStats(ctx)
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	tuple, err := h.ds.GetExport(ctx, sessionID)
	if err != nil {
		h.log.Error("mcp get_session_export", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(tuple)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
