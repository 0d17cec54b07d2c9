// Package mcp exposes the Tick time tracking API as Model Context
// Protocol tools over the official SDK's stdio transport.
package mcp

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tick-mcp/internal/config"
	"tick-mcp/internal/tick"
)

// Server holds the per-process state shared by all tool handlers. There
// is no cache and no session state; concurrent tool calls are fully
// independent.
type Server struct {
	api      tick.Client
	resolver *tick.Resolver

	teamWindowDays int
	now            func() time.Time
}

// NewServer creates an MCP server with all Tick tools registered.
func NewServer(version string, cfg *config.AppConfig, api tick.Client) *mcp.Server {
	s := &Server{
		api:            api,
		resolver:       tick.NewResolver(api),
		teamWindowDays: cfg.TeamWindowDays,
		now:            time.Now,
	}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "tick-mcp",
		Version: version,
	}, nil)
	s.registerTools(srv)
	return srv
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations marks tools that only fetch remote state.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(true),
	}
}

// writeAnnotations marks tools that create or modify remote entries.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// destructiveAnnotations marks tools that remove remote entries.
func destructiveAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		OpenWorldHint:   boolPtr(true),
	}
}
