package mcp_test

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/okrboard/internal/domain/okr"
	"github.com/rpggio/okrboard/internal/mcp"
	"github.com/rpggio/okrboard/internal/testserver"
	"github.com/stretchr/testify/require"
)

func TestServer_ListTools(t *testing.T) {
	ts := testserver.New(t)
	session := ts.Connect(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"ping",
		"list_projects",
		"get_project",
		"select_project",
		"create_objective",
		"update_key_result",
		"get_recent_activity",
	}, names)
}

func TestServer_Ping(t *testing.T) {
	ts := testserver.New(t)
	session := ts.Connect(t)

	var resp mcp.PingResponse
	testserver.CallTool(t, session, "ping", nil, &resp)
	require.Equal(t, "ok", resp.Status)
	require.NotEmpty(t, resp.Time)
}

func TestServer_DocsResource(t *testing.T) {
	ts := testserver.New(t)
	session := ts.Connect(t)

	res, err := session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "okrboard://docs/index"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "create_objective")
	require.Contains(t, session.InitializeResult().Instructions, "get_project")
}

func TestServer_NoProject(t *testing.T) {
	ts := testserver.New(t)
	session := ts.Connect(t)

	res := testserver.CallToolResult(t, session, "get_project", nil)
	require.True(t, res.IsError)
	require.Contains(t, testserver.ToolText(res), "NO_PROJECT")

	res = testserver.CallToolResult(t, session, "create_objective", map[string]any{"title": "Grow"})
	require.True(t, res.IsError)
	require.Contains(t, testserver.ToolText(res), "NO_PROJECT")
	require.Zero(t, ts.Notifications())
}

func TestServer_ProjectsAndSelection(t *testing.T) {
	ts := testserver.New(t)
	acme := ts.Seed(t)
	other, err := ts.Store.CreateProject(context.Background(), okr.CreateProjectRequest{Name: "Side"})
	require.NoError(t, err)
	session := ts.Connect(t)

	var list mcp.ListProjectsResponse
	testserver.CallTool(t, session, "list_projects", nil, &list)
	require.Len(t, list.Projects, 2)
	require.Equal(t, "Acme", list.Projects[0].Name)
	require.Equal(t, "Q1", list.Projects[0].ActiveCycle)
	require.False(t, list.Projects[0].Current)
	require.True(t, list.Projects[1].Current)

	var selected mcp.ProjectResponse
	testserver.CallTool(t, session, "select_project", map[string]any{"id": acme.ID}, &selected)
	require.Equal(t, acme.ID, selected.ID)
	require.Equal(t, "Make useful things", selected.Mission)
	require.Len(t, selected.Teams, 2)
	require.NotNil(t, selected.ActiveCycle)
	require.Equal(t, "Q1", selected.ActiveCycle.Name)

	current, ok := ts.Store.CurrentProject()
	require.True(t, ok)
	require.Equal(t, acme.ID, current.ID)
	require.NotEqual(t, other.ID, current.ID)

	res := testserver.CallToolResult(t, session, "select_project", map[string]any{"id": "proj-missing"})
	require.True(t, res.IsError)
	require.Contains(t, testserver.ToolText(res), "PROJECT_NOT_FOUND")
}

func TestServer_CreateObjective(t *testing.T) {
	ts := testserver.New(t)
	p := ts.Seed(t)
	session := ts.Connect(t)
	sales := p.Teams[0]
	before := ts.Notifications()
	changed, cancel := ts.Broadcaster.Subscribe()
	defer cancel()

	var obj mcp.ObjectiveResponse
	testserver.CallTool(t, session, "create_objective", map[string]any{
		"owner_id": sales.ID,
		"title":    "Grow revenue",
		"notes":    "Focus on enterprise",
		"key_results": []map[string]any{
			{"title": "Close deals", "target_value": 10, "current_value": 4},
			{"title": "Raise NPS", "start_value": 20, "target_value": 60},
			{"title": "Launch partner program"},
		},
	}, &obj)

	require.Equal(t, "Grow revenue", obj.Title)
	require.Equal(t, "Sales", obj.Owner)
	require.Equal(t, "Q1", obj.Cycle)
	require.Len(t, obj.KeyResults, 3)
	require.Equal(t, 40, obj.KeyResults[0].Progress)
	// current defaults to start
	require.Equal(t, 20.0, obj.KeyResults[1].CurrentValue)
	require.Equal(t, 0, obj.KeyResults[1].Progress)
	require.Equal(t, 0.0, obj.KeyResults[2].StartValue)
	require.Equal(t, 100.0, obj.KeyResults[2].TargetValue)
	require.Equal(t, 13, obj.Progress)

	require.Equal(t, before+1, ts.Notifications())
	select {
	case <-changed:
	default:
		t.Fatal("broadcaster was not notified")
	}

	current, ok := ts.Store.CurrentProject()
	require.True(t, ok)
	stored, ok := current.Objective(obj.ID)
	require.True(t, ok)
	require.Len(t, stored.KeyResults, 3)
	require.Equal(t, "Focus on enterprise", stored.Notes)
}

func TestServer_CreateObjectiveDefaultsToCompany(t *testing.T) {
	ts := testserver.New(t)
	ts.Seed(t)
	session := ts.Connect(t)

	var obj mcp.ObjectiveResponse
	testserver.CallTool(t, session, "create_objective", map[string]any{"title": "Be profitable"}, &obj)
	require.Equal(t, okr.CompanyOwnerID, obj.OwnerID)
	require.Equal(t, "Acme", obj.Owner)
	require.Empty(t, obj.KeyResults)
	require.Equal(t, 0, obj.Progress)
}

func TestServer_CreateObjectiveRejections(t *testing.T) {
	ts := testserver.New(t)
	p := ts.Seed(t)
	session := ts.Connect(t)

	res := testserver.CallToolResult(t, session, "create_objective", map[string]any{"title": "   "})
	require.True(t, res.IsError)
	require.Contains(t, testserver.ToolText(res), "INVALID_INPUT")

	// Archive every cycle so none is Active.
	_, err := ts.Store.ReplaceCurrentProject(context.Background(), "archive all", func(cur okr.Project) (okr.Project, error) {
		for i := range cur.Cycles {
			cur.Cycles[i].Status = okr.CycleArchived
		}
		return cur, nil
	})
	require.NoError(t, err)
	before := ts.Notifications()

	res = testserver.CallToolResult(t, session, "create_objective", map[string]any{"title": "Grow"})
	require.True(t, res.IsError)
	require.Contains(t, testserver.ToolText(res), "NO_ACTIVE_CYCLE")
	require.Equal(t, before, ts.Notifications())

	current, ok := ts.Store.CurrentProject()
	require.True(t, ok)
	require.Equal(t, len(p.Objectives), len(current.Objectives))
}

func TestServer_UpdateKeyResult(t *testing.T) {
	ts := testserver.New(t)
	ts.Seed(t)
	session := ts.Connect(t)

	var obj mcp.ObjectiveResponse
	testserver.CallTool(t, session, "create_objective", map[string]any{
		"title": "Grow revenue",
		"key_results": []map[string]any{
			{"title": "Close deals", "target_value": 10},
			{"title": "Raise NPS", "start_value": 20, "target_value": 60},
		},
	}, &obj)

	var updated mcp.ObjectiveResponse
	testserver.CallTool(t, session, "update_key_result", map[string]any{
		"objective_id":  obj.ID,
		"key_result_id": obj.KeyResults[0].ID,
		"current_value": 5,
	}, &updated)
	require.Equal(t, "Close deals", updated.KeyResults[0].Title)
	require.Equal(t, 10.0, updated.KeyResults[0].TargetValue)
	require.Equal(t, 50, updated.KeyResults[0].Progress)
	require.Equal(t, 25, updated.Progress)

	res := testserver.CallToolResult(t, session, "update_key_result", map[string]any{
		"objective_id":  obj.ID,
		"key_result_id": "kr-missing",
		"current_value": 5,
	})
	require.True(t, res.IsError)
	require.Contains(t, testserver.ToolText(res), "KEY_RESULT_NOT_FOUND")

	res = testserver.CallToolResult(t, session, "update_key_result", map[string]any{
		"objective_id":  "obj-missing",
		"key_result_id": obj.KeyResults[0].ID,
	})
	require.True(t, res.IsError)
	require.Contains(t, testserver.ToolText(res), "OBJECTIVE_NOT_FOUND")
}

func TestServer_GetProjectScopesToActiveCycle(t *testing.T) {
	ts := testserver.New(t)
	ts.Seed(t)
	session := ts.Connect(t)
	ctx := context.Background()

	_, err := ts.Store.AddObjective(ctx, okr.ObjectiveInput{Title: "In Q1"})
	require.NoError(t, err)
	q2, err := ts.Store.AddCycle(ctx, "Q2", "2026-04-01", "")
	require.NoError(t, err)
	require.NoError(t, ts.Store.SetActiveCycle(ctx, q2.ID))
	_, err = ts.Store.AddObjective(ctx, okr.ObjectiveInput{Title: "In Q2"})
	require.NoError(t, err)

	var active mcp.ProjectResponse
	testserver.CallTool(t, session, "get_project", nil, &active)
	require.Equal(t, "Q2", active.ActiveCycle.Name)
	require.Len(t, active.Objectives, 1)
	require.Equal(t, "In Q2", active.Objectives[0].Title)
	require.Len(t, active.Cycles, 3)

	var all mcp.ProjectResponse
	testserver.CallTool(t, session, "get_project", map[string]any{"all_cycles": true}, &all)
	require.Len(t, all.Objectives, 2)
}

func TestServer_GetRecentActivity(t *testing.T) {
	ts := testserver.New(t)
	ts.Seed(t)
	session := ts.Connect(t)

	testserver.CallTool(t, session, "create_objective", map[string]any{"title": "Grow"}, nil)

	var resp mcp.ActivityResponse
	testserver.CallTool(t, session, "get_recent_activity", map[string]any{"limit": 2}, &resp)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, "objective_created", resp.Entries[0].Type)
	require.Contains(t, resp.Entries[0].Summary, "Grow")

	var filtered mcp.ActivityResponse
	testserver.CallTool(t, session, "get_recent_activity", map[string]any{"activity_type": "project_created"}, &filtered)
	require.Len(t, filtered.Entries, 1)
	require.Contains(t, filtered.Entries[0].Summary, "Acme")

	res := testserver.CallToolResult(t, session, "get_recent_activity", map[string]any{"activity_type": "renamed"})
	require.True(t, res.IsError)
	require.Contains(t, testserver.ToolText(res), "INVALID_INPUT")
}
