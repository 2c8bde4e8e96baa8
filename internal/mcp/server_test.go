package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datojulien/liftlog/internal/analysis"
	"github.com/datojulien/liftlog/internal/ingest"
)

const fixtureExport = `Date,Exercise,Reps,Weight(kg),Duration(s),Distance(m),Incline,Resistance,isWarmup,Note,multiplier
2025-07-16 09:09:40,Dumbbell Row,5,31.75,,,,,FALSE,,2
2025-07-15 18:00:00,Squat,8,100,,,,,FALSE,,
2025-07-16 09:30:00,Squat,5,100,,,,,FALSE,,
`

func fixtureLoader() analysis.Loader {
	return analysis.LoaderFunc(func(_ context.Context) (*analysis.Snapshot, error) {
		batch, err := ingest.ReadAll(strings.NewReader(fixtureExport))
		if err != nil {
			return nil, err
		}
		return analysis.Build(batch.Records, batch.Rejected, nil), nil
	})
}

func newMCPServer() *Server {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewServer(fixtureLoader(), logger)
}

// makeReq builds a CallToolRequest with the given arguments.
func makeReq(toolName string, args map[string]any) mcpgo.CallToolRequest {
	req := mcpgo.CallToolRequest{}
	req.Params.Name = toolName
	req.Params.Arguments = args
	return req
}

// textContent extracts the first TextContent string from a CallToolResult.
func textContent(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content, "expected at least one content item")
	tc, ok := result.Content[0].(mcpgo.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return tc.Text
}

func TestHandleListDays(t *testing.T) {
	srv := newMCPServer()

	result, err := srv.HandleListDays(context.Background(), makeReq("list_days", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var body struct {
		Days []struct {
			Date string `json:"date"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &body))
	require.Len(t, body.Days, 2)
	assert.Equal(t, "2025-07-16", body.Days[0].Date)
}

func TestHandleListExercises(t *testing.T) {
	srv := newMCPServer()

	result, err := srv.HandleListExercises(context.Background(), makeReq("list_exercises", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textContent(t, result)
	assert.Contains(t, text, "Dumbbell Row")
	assert.Contains(t, text, "Squat")
	assert.Contains(t, text, `"record"`)
}

func TestHandleDaySummary(t *testing.T) {
	srv := newMCPServer()

	result, err := srv.HandleDaySummary(context.Background(),
		makeReq("day_summary", map[string]any{"date": "2025-07-16"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var day analysis.DayGroup
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &day))
	assert.Equal(t, "2025-07-16", day.Key)
	assert.Len(t, day.Sets, 2)
}

func TestHandleDaySummaryValidation(t *testing.T) {
	srv := newMCPServer()

	result, err := srv.HandleDaySummary(context.Background(), makeReq("day_summary", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = srv.HandleDaySummary(context.Background(),
		makeReq("day_summary", map[string]any{"date": "July 16th"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = srv.HandleDaySummary(context.Background(),
		makeReq("day_summary", map[string]any{"date": "1999-01-01"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleExerciseSummary(t *testing.T) {
	srv := newMCPServer()

	result, err := srv.HandleExerciseSummary(context.Background(),
		makeReq("exercise_summary", map[string]any{"name": "squat"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var exercise analysis.ExerciseGroup
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &exercise))
	assert.Equal(t, "Squat", exercise.Name)
	require.NotNil(t, exercise.Record)
	assert.Equal(t, 8, exercise.Record.Reps)
}

func TestHandleExerciseSummaryNotFound(t *testing.T) {
	srv := newMCPServer()

	result, err := srv.HandleExerciseSummary(context.Background(),
		makeReq("exercise_summary", map[string]any{"name": "Leg Press"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandlePersonalRecords(t *testing.T) {
	srv := newMCPServer()

	result, err := srv.HandlePersonalRecords(context.Background(), makeReq("personal_records", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var body struct {
		Records []struct {
			Exercise string `json:"exercise"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &body))
	require.Len(t, body.Records, 2)
}

func TestHandleStats(t *testing.T) {
	srv := newMCPServer()

	result, err := srv.HandleStats(context.Background(), makeReq("stats", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textContent(t, result)
	assert.Contains(t, text, `"rows_accepted":3`)
}

func TestNilLoader(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	srv := NewServer(nil, logger)

	result, err := srv.HandleListDays(context.Background(), makeReq("list_days", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestLoaderFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	failing := analysis.LoaderFunc(func(_ context.Context) (*analysis.Snapshot, error) {
		return nil, errors.New("source unreachable")
	})
	srv := NewServer(failing, logger)

	result, err := srv.HandleStats(context.Background(), makeReq("stats", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
