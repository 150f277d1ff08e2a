package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"podpulse/core"
	"podpulse/internal/contract"
	"podpulse/internal/tracker"
	"podpulse/schema"

	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

func (h *toolHandler) handleGetCycleKpi(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if q := request.GetString("quarter", ""); q != "" {
		cfg.Quarter = q
	}
	if c := request.GetString("cycle", ""); c != "" {
		key := schema.CycleKey(c)
		if _, ok := schema.ValidCycleKeys[key]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid cycle: %s", c)), nil
		}
		cfg.TargetCycle = key
	}

	client := tracker.NewClient(cfg.TrackerEndpoint, cfg.TrackerToken)
	report := core.ComputeCycleKpi(ctx, cfg, client, h.mgr)
	if !report.Success {
		return mcp.NewToolResultError(fmt.Sprintf("kpi aggregation failed: %s (%s)", report.ErrorMessage, report.ErrorCode)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetFeatureMovement(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	client := tracker.NewClient(cfg.TrackerEndpoint, cfg.TrackerToken)
	report := core.ComputeFeatureMovement(ctx, cfg, client, h.mgr)
	if !report.Success {
		return mcp.NewToolResultError(fmt.Sprintf("feature movement failed: %s (%s)", report.ErrorMessage, report.ErrorCode)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleResolveEntity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	query := request.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	client := tracker.NewClient(cfg.TrackerEndpoint, cfg.TrackerToken)
	report := core.ResolveEntity(ctx, cfg, client, h.mgr, query)
	if !report.Success {
		return mcp.NewToolResultError(fmt.Sprintf("resolution failed: %s (%s)", report.ErrorMessage, report.ErrorCode)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
