// Package testserver wires a complete okrboard stack on in-memory SQLite for tests.
package testserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/okrboard/internal/domain/activity"
	"github.com/rpggio/okrboard/internal/domain/okr"
	"github.com/rpggio/okrboard/internal/mcp"
	"github.com/rpggio/okrboard/internal/notify"
	"github.com/rpggio/okrboard/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	DB          *sqlite.DB
	Store       *okr.Store
	Activity    *activity.Service
	Broadcaster *notify.Broadcaster
	MCP         *sdkmcp.Server
	Server      *httptest.Server

	notifications atomic.Int64
}

// New starts a stack with an empty store. The HTTP server is not started
// until StartHTTP is called.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	ts := &TestServer{
		DB:          db,
		Activity:    activity.NewService(sqlite.NewActivityRepository(db), nil),
		Broadcaster: notify.NewBroadcaster(),
	}
	ts.Store = okr.NewStore(
		sqlite.NewSlotRepository(db),
		ts.Activity,
		notify.Multi{ts.Broadcaster, ts},
		nil,
	)
	require.NoError(t, ts.Store.Load(context.Background()))

	ts.MCP = mcp.NewServer(mcp.Config{
		Store:         ts.Store,
		Activity:      ts.Activity,
		TransportMode: "http",
		Version:       "test",
	})
	return ts
}

// Notify counts change notifications.
func (ts *TestServer) Notify(context.Context) {
	ts.notifications.Add(1)
}

// Notifications reports how many changes have been announced.
func (ts *TestServer) Notifications() int {
	return int(ts.notifications.Load())
}

// Seed creates project Acme with teams Sales and Ops and an Active cycle Q1.
func (ts *TestServer) Seed(t *testing.T) *okr.Project {
	t.Helper()
	ctx := context.Background()
	_, err := ts.Store.CreateProject(ctx, okr.CreateProjectRequest{
		Name:      "Acme",
		Mission:   "Make useful things",
		TeamNames: []string{"Sales", "Ops"},
	})
	require.NoError(t, err)
	q1, err := ts.Store.AddCycle(ctx, "Q1", "2026-01-01", "2026-03-31")
	require.NoError(t, err)
	require.NoError(t, ts.Store.SetActiveCycle(ctx, q1.ID))

	p, ok := ts.Store.CurrentProject()
	require.True(t, ok)
	return p
}

// StartHTTP serves the MCP server over streamable HTTP.
func (ts *TestServer) StartHTTP(t *testing.T) string {
	t.Helper()
	ts.Server = httptest.NewServer(mcp.NewHTTPHandler(ts.MCP))
	t.Cleanup(ts.Server.Close)
	return ts.Server.URL
}

// Connect returns a client session attached over in-memory transports.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := ts.MCP.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

// CallTool calls a tool that is expected to succeed and decodes its
// structured output into out.
func CallTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	res := CallToolResult(t, session, name, args)
	require.False(t, res.IsError, "tool %s failed: %s", name, ToolText(res))
	if out == nil {
		return
	}
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

// CallToolResult calls a tool and returns the raw result.
func CallToolResult(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	return res
}

// ToolText joins the text content of a result.
func ToolText(res *sdkmcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if text, ok := c.(*sdkmcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}
