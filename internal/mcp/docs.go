package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `okrboard tracks Objectives and Key Results (OKRs) for the current project.

Model:
- Project: mission, vision, teams, planning cycles and objectives. One project is current.
- Cycle: a planning period. At most one cycle is Active; new objectives always land in it.
- Objective: a goal owned by a team or by the company (owner_id "company").
- Key result: start, target and current values. Progress is computed by the server:
  clamp(0, 100, round((current - start) / (target - start) * 100)), 100 when target equals start.
  Objective progress is the rounded mean of its key results.

Workflow:
1) Orient: get_project (or list_projects + select_project).
2) Draft objectives with the user, then create each with create_objective.
   Use team ids from get_project as owner_id; omit it for company objectives.
3) Check-ins: update_key_result with the new current_value.
4) get_recent_activity shows what changed.

Errors come back as CODE: message. NO_ACTIVE_CYCLE means the user must activate a cycle first.

Docs: okrboard://docs/index`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "okrboard://docs/index",
		Name:        "docs_index",
		Title:       "okrboard docs",
		Description: "How to write good OKRs with the okrboard tools.",
		Content: `# okrboard: Assistant Docs

## Writing objectives

- An objective is qualitative and inspiring: "Delight first-time customers", not "Increase NPS".
- Keep 3 to 5 objectives per owner per cycle.
- Prefer one owner per objective. Company objectives use owner_id ` + "`company`" + `.

## Writing key results

- Each key result is a number moving from ` + "`start_value`" + ` to ` + "`target_value`" + `.
- Decreasing metrics work: start 40, target 10 means lower is better.
- Binary outcomes: start 0, target 1.
- Omit ` + "`current_value`" + ` on creation; it starts at ` + "`start_value`" + `.
- 2 to 4 key results per objective.

## Tools

| tool | use |
|---|---|
| ` + "`get_project`" + ` | teams (owner ids), active cycle, objectives with progress |
| ` + "`create_objective`" + ` | one objective and all its key results in a single change |
| ` + "`update_key_result`" + ` | check-ins; omitted fields are kept |
| ` + "`get_recent_activity`" + ` | recent changes, newest first |

## Limits

- Cycles, teams and the foundation are managed by the user, not through these tools.
- Objectives can only be created while the project has an Active cycle.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
