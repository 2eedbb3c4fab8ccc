package mcp

import (
	"context"

	"github.com/claude/paceforge/internal/plan"
)

// PlanDocument pairs the generated plan with the open-week pointer, the
// shape served by GET /api/v1/plan.
type PlanDocument struct {
	Plan     plan.Plan `json:"plan"`
	OpenWeek int       `json:"open_week"`
}

// DataSource abstracts the data layer for MCP tools. The binary runs
// locally (stdio) while the plan lives on the server, so the only
// implementation is HTTPClient calling the REST API.
type DataSource interface {
	GetProfile(ctx context.Context) (plan.AthleteProfile, error)
	GetPlan(ctx context.Context) (PlanDocument, error)
	GetWeek(ctx context.Context, number int) (plan.Week, error)
	GetStats(ctx context.Context) (plan.Stats, error)
	GetExport(ctx context.Context, sessionID string) (plan.ExportTuple, error)
}
