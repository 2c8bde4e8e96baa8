// Package mcp implements the Model Context Protocol server for liftlog,
// exposing the computed workout views as tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/datojulien/liftlog/internal/analysis"
)

// Server wraps an MCPServer with the liftlog snapshot loader.
type Server struct {
	mcp    *mcpserver.MCPServer
	loader analysis.Loader
	logger *slog.Logger
}

// NewServer creates a new MCP server. If loader is nil, tool calls return
// an error response instead of panicking.
func NewServer(loader analysis.Loader, logger *slog.Logger) *Server {
	s := &Server{
		loader: loader,
		logger: logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"liftlog",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildListDaysTool(), s.handleListDays)
	mcpSrv.AddTool(buildListExercisesTool(), s.handleListExercises)
	mcpSrv.AddTool(buildDaySummaryTool(), s.handleDaySummary)
	mcpSrv.AddTool(buildExerciseSummaryTool(), s.handleExerciseSummary)
	mcpSrv.AddTool(buildPersonalRecordsTool(), s.handlePersonalRecords)
	mcpSrv.AddTool(buildStatsTool(), s.handleStats)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleListDays is the exported handler for the "list_days" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleListDays(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleListDays(ctx, req)
}

// HandleListExercises is the exported handler for the "list_exercises" tool.
func (s *Server) HandleListExercises(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleListExercises(ctx, req)
}

// HandleDaySummary is the exported handler for the "day_summary" tool.
func (s *Server) HandleDaySummary(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleDaySummary(ctx, req)
}

// HandleExerciseSummary is the exported handler for the "exercise_summary" tool.
func (s *Server) HandleExerciseSummary(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleExerciseSummary(ctx, req)
}

// HandlePersonalRecords is the exported handler for the "personal_records" tool.
func (s *Server) HandlePersonalRecords(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handlePersonalRecords(ctx, req)
}

// HandleStats is the exported handler for the "stats" tool.
func (s *Server) HandleStats(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleStats(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// snapshot loads a fresh snapshot, or returns a tool error result.
func (s *Server) snapshot(ctx context.Context) (*analysis.Snapshot, *mcpgo.CallToolResult) {
	if s.loader == nil {
		return nil, mcpgo.NewToolResultError("workout data source is unavailable")
	}
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, mcpgo.NewToolResultErrorf("loading workout data failed: %s", err.Error())
	}
	return snap, nil
}

// --- tool definitions ---

func buildListDaysTool() mcpgo.Tool {
	return mcpgo.NewTool("list_days",
		mcpgo.WithDescription("List all workout days, newest first, each with total volume, set count and heaviest lift."),
	)
}

func buildListExercisesTool() mcpgo.Tool {
	return mcpgo.NewTool("list_exercises",
		mcpgo.WithDescription("List all exercises alphabetically, each with its aggregate summary and personal record."),
	)
}

func buildDaySummaryTool() mcpgo.Tool {
	return mcpgo.NewTool("day_summary",
		mcpgo.WithDescription("Get the full set-by-set detail and summary for one workout day."),
		mcpgo.WithString("date",
			mcpgo.Required(),
			mcpgo.Description("The workout day in YYYY-MM-DD format"),
		),
	)
}

func buildExerciseSummaryTool() mcpgo.Tool {
	return mcpgo.NewTool("exercise_summary",
		mcpgo.WithDescription("Get the full set history, summary and personal record for one exercise."),
		mcpgo.WithString("name",
			mcpgo.Required(),
			mcpgo.Description("The exercise name (case-insensitive)"),
		),
	)
}

func buildPersonalRecordsTool() mcpgo.Tool {
	return mcpgo.NewTool("personal_records",
		mcpgo.WithDescription("Get the personal-record set (heaviest actual lift) for every exercise."),
	)
}

func buildStatsTool() mcpgo.Tool {
	return mcpgo.NewTool("stats",
		mcpgo.WithDescription("Get dataset statistics: accepted/rejected/filtered row counts, date span, day and exercise counts."),
	)
}

// --- tool handlers ---

func (s *Server) handleListDays(ctx context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	snap, errResult := s.snapshot(ctx)
	if errResult != nil {
		return errResult, nil
	}

	days := make([]map[string]any, 0, len(snap.Days))
	for _, d := range snap.Days {
		days = append(days, map[string]any{
			"date":    d.Key,
			"summary": d.Summary,
		})
	}
	return toolResultJSON(map[string]any{"days": days})
}

func (s *Server) handleListExercises(ctx context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	snap, errResult := s.snapshot(ctx)
	if errResult != nil {
		return errResult, nil
	}

	exercises := make([]map[string]any, 0, len(snap.Exercises))
	for _, e := range snap.Exercises {
		entry := map[string]any{
			"name":    e.Name,
			"summary": e.Summary,
		}
		if e.Record != nil {
			entry["record"] = e.Record
		}
		exercises = append(exercises, entry)
	}
	return toolResultJSON(map[string]any{"exercises": exercises})
}

func (s *Server) handleDaySummary(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	date := strings.TrimSpace(req.GetString("date", ""))
	if date == "" {
		return mcpgo.NewToolResultError("date is required and must not be empty"), nil
	}
	if _, err := time.Parse(analysis.DayKeyLayout, date); err != nil {
		return mcpgo.NewToolResultErrorf("invalid date %q: must be YYYY-MM-DD", date), nil
	}

	snap, errResult := s.snapshot(ctx)
	if errResult != nil {
		return errResult, nil
	}

	day, found := snap.DayByKey(date)
	if !found {
		return mcpgo.NewToolResultErrorf("no sets logged on %s", date), nil
	}

	s.logger.Debug("mcp: day_summary", "date", date, "sets", len(day.Sets))
	return toolResultJSON(day)
}

func (s *Server) handleExerciseSummary(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		return mcpgo.NewToolResultError("name is required and must not be empty"), nil
	}

	snap, errResult := s.snapshot(ctx)
	if errResult != nil {
		return errResult, nil
	}

	exercise, found := snap.ExerciseByName(name)
	if !found {
		return mcpgo.NewToolResultErrorf("exercise %q not found", name), nil
	}

	s.logger.Debug("mcp: exercise_summary", "name", exercise.Name, "sets", len(exercise.Sets))
	return toolResultJSON(exercise)
}

func (s *Server) handlePersonalRecords(ctx context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	snap, errResult := s.snapshot(ctx)
	if errResult != nil {
		return errResult, nil
	}

	records := make([]map[string]any, 0, len(snap.Exercises))
	for _, e := range snap.Exercises {
		if e.Record == nil {
			continue
		}
		records = append(records, map[string]any{
			"exercise": e.Name,
			"record":   e.Record,
		})
	}
	return toolResultJSON(map[string]any{"records": records})
}

func (s *Server) handleStats(ctx context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	snap, errResult := s.snapshot(ctx)
	if errResult != nil {
		return errResult, nil
	}
	return toolResultJSON(snap.Stats)
}
