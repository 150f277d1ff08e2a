// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"podpulse/internal/contract"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the PodPulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"PodPulse Delivery Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_cycle_kpi ---
	s.AddTool(mcp.NewTool("get_cycle_kpi",
		mcp.WithDescription("Compute per-cycle delivery KPIs (committed, completed, delivery %, spillover) for every configured pod."),
		mcp.WithString("quarter", mcp.Description("Quarter to report on (e.g., 'Q1-26'). Defaults to the configured quarter.")),
		mcp.WithString("cycle", mcp.Description("Override the resolved current cycle."), mcp.Enum("C1", "C2", "C3", "C4", "C5", "C6")),
	), h.handleGetCycleKpi)

	// --- 2. Tool: get_feature_movement ---
	s.AddTool(mcp.NewTool("get_feature_movement",
		mcp.WithDescription("List tracked projects per pod with normalized feature states, leads, and target dates."),
	), h.handleGetFeatureMovement)

	// --- 3. Tool: resolve_entity ---
	s.AddTool(mcp.NewTool("resolve_entity",
		mcp.WithDescription("Resolve a free-text name to the best-matching tracked project across all pods."),
		mcp.WithString("query", mcp.Description("The project name or fragment to resolve."), mcp.Required()),
	), h.handleResolveEntity)

	return s
}

// StartMCPServer starts the PodPulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
