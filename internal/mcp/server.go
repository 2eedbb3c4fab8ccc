package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("PaceForge", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("PaceForge training plan server. Query the athlete profile, the generated plan with its weekly schedules and pace targets, progress statistics, and completed-session exports."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetProfile, Handler: h.getProfile},
		server.ServerTool{Tool: toolGetPlanOverview, Handler: h.getPlanOverview},
		server.ServerTool{Tool: toolGetWeek, Handler: h.getWeek},
		server.ServerTool{Tool: toolGetPaceTargets, Handler: h.getPaceTargets},
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
		server.ServerTool{Tool: toolGetSessionExport, Handler: h.getSessionExport},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentWeek, Handler: h.currentWeek},
		server.ServerResource{Resource: resProfile, Handler: h.profile},
		server.ServerResource{Resource: resProgress, Handler: h.progress},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCurrentWeek = mcp.NewResource(
	"paceforge://current_week",
	"Current Week",
	mcp.WithResourceDescription("The first week still holding incomplete sessions: its phase, pace targets, sessions and day schedule"),
	mcp.WithMIMEType("application/json"),
)

var resProfile = mcp.NewResource(
	"paceforge://profile",
	"Athlete Profile",
	mcp.WithResourceDescription("The stored athlete configuration: discipline, goal time, weekly volume and difficulty factor"),
	mcp.WithMIMEType("application/json"),
)

var resProgress = mcp.NewResource(
	"paceforge://progress",
	"Progress",
	mcp.WithResourceDescription("Adherence, realized distance and intensity-distribution statistics over the whole plan"),
	mcp.WithMIMEType("application/json"),
)
