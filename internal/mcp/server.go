package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/okrboard/internal/domain/activity"
	"github.com/rpggio/okrboard/internal/domain/okr"
)

// Store defines the OKR store operations needed by MCP. *okr.Store implements it.
type Store interface {
	Projects() []okr.ProjectSummary
	CurrentProject() (*okr.Project, bool)
	SelectProject(ctx context.Context, id string) error
	CreateObjectiveWithKeyResults(ctx context.Context, draft okr.ObjectiveDraft) (*okr.Objective, error)
	UpdateKeyResult(ctx context.Context, objectiveID, krID string, in okr.KeyResultInput) error
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Config contains server configuration.
type Config struct {
	Store         Store
	Activity      ActivityService
	TransportMode string // "stdio" or "http"
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "okrboard",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, NewHandler(cfg.Store, cfg.Activity, logger))

	logger.Debug("mcp server configured", "transport", cfg.TransportMode, "version", version)
	return server
}
