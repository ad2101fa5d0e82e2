package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, h *Handler) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "ping",
		Description: "Check that the server is up",
	}, h.ping)

	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with their active cycle and objective count",
	}, h.listProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get the current project: foundation, teams, cycles and the active cycle's objectives with progress",
	}, h.getProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "select_project",
		Description: "Make a project the current one. Objectives are always created in the current project",
	}, h.selectProject)

	// Mutations
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_objective",
		Description: "Create an objective with its key results in the active cycle of the current project. Progress is computed by the server",
	}, h.createObjective)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_key_result",
		Description: "Update a key result, typically its current value during a check-in. Omitted fields keep their values",
	}, h.updateKeyResult)

	// History
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "List recent changes to the current project, newest first",
	}, h.getRecentActivity)
}
