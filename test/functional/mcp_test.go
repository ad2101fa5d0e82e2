package functional_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/okrboard/internal/mcp"
	"github.com/rpggio/okrboard/internal/testserver"
	"github.com/stretchr/testify/require"
)

func connectHTTP(t *testing.T, url string) *sdkmcp.ClientSession {
	t.Helper()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{Endpoint: url + "/mcp"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestHTTPFunctional_Health(t *testing.T) {
	ts := testserver.New(t)
	url := ts.StartHTTP(t)

	resp, err := http.Get(url + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
}

func TestHTTPFunctional_CheckInWorkflow(t *testing.T) {
	ts := testserver.New(t)
	p := ts.Seed(t)
	session := connectHTTP(t, ts.StartHTTP(t))

	var obj mcp.ObjectiveResponse
	testserver.CallTool(t, session, "create_objective", map[string]any{
		"owner_id": p.Teams[1].ID,
		"title":    "Reduce churn",
		"key_results": []map[string]any{
			{"title": "Monthly churn", "start_value": 8, "target_value": 4},
		},
	}, &obj)
	require.Equal(t, "Ops", obj.Owner)
	require.Equal(t, 0, obj.Progress)

	var updated mcp.ObjectiveResponse
	testserver.CallTool(t, session, "update_key_result", map[string]any{
		"objective_id":  obj.ID,
		"key_result_id": obj.KeyResults[0].ID,
		"current_value": 5,
	}, &updated)
	require.Equal(t, 75, updated.Progress)

	var project mcp.ProjectResponse
	testserver.CallTool(t, session, "get_project", nil, &project)
	require.Len(t, project.Objectives, 1)
	require.Equal(t, 75, project.Objectives[0].KeyResults[0].Progress)

	var activity mcp.ActivityResponse
	testserver.CallTool(t, session, "get_recent_activity", map[string]any{"limit": 2}, &activity)
	require.Len(t, activity.Entries, 2)
	require.Equal(t, "key_result_updated", activity.Entries[0].Type)
	require.Equal(t, "objective_created", activity.Entries[1].Type)
}

func TestHTTPFunctional_ConcurrentSessions(t *testing.T) {
	ts := testserver.New(t)
	ts.Seed(t)
	url := ts.StartHTTP(t)

	sessions := []*sdkmcp.ClientSession{connectHTTP(t, url), connectHTTP(t, url)}
	done := make(chan struct{}, len(sessions)*5)
	for i, session := range sessions {
		for j := 0; j < 5; j++ {
			go func(session *sdkmcp.ClientSession, n int) {
				defer func() { done <- struct{}{} }()
				_, _ = session.CallTool(context.Background(), &sdkmcp.CallToolParams{
					Name:      "create_objective",
					Arguments: map[string]any{"title": "Parallel", "key_results": []map[string]any{{"title": "KR", "current_value": float64(n)}}},
				})
			}(session, i*5+j)
		}
	}
	for i := 0; i < cap(done); i++ {
		<-done
	}

	current, ok := ts.Store.CurrentProject()
	require.True(t, ok)
	require.Len(t, current.Objectives, 10)
	for _, obj := range current.Objectives {
		require.Equal(t, obj.KeyResults[0].Progress, obj.Progress)
	}
}
