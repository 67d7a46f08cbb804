package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/loader"
	"github.com/huangsam/scorecard/internal/outwriter"
	"github.com/huangsam/scorecard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// mcpInputName is recorded in the registry for descriptions sent over MCP.
const mcpInputName = "mcp"

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.RegistryManager
}

// compiledModel is one entry of the compile_scorecard result.
type compiledModel struct {
	ModelName string `json:"model_name"`
	Params    string `json:"params,omitempty"`
	Document  string `json:"document,omitempty"`
	Error     string `json:"error,omitempty"`
}

// parseDescription reads the description argument of a tool call.
func parseDescription(request mcp.CallToolRequest) (*schema.Description, error) {
	raw := request.GetString("description", "")
	if raw == "" {
		return nil, errors.New("description is required")
	}
	return loader.Parse([]byte(raw))
}

func (h *toolHandler) handleCompileScorecard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	desc, err := parseDescription(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid description: %v", err)), nil
	}
	cfg := h.baseCfg.Clone()
	cfg.FailFast = request.GetBool("fail_fast", cfg.FailFast)

	results, err := core.GetCompileResults(core.WithSuppressHeader(ctx), cfg, desc, h.mgr, mcpInputName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("compilation failed: %v", err)), nil
	}

	models := make([]compiledModel, len(results))
	for i, r := range results {
		models[i] = compiledModel{
			ModelName: r.Name,
			Params:    schema.FormatParams(r.Point),
			Document:  string(r.Document),
		}
		if r.Failed() {
			models[i].Error = r.Err.Error()
		}
	}

	return jsonResult(models), nil
}

func (h *toolHandler) handleSummarizeScorecard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	desc, err := parseDescription(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid description: %v", err)), nil
	}

	summaries, err := core.GetSummaryResults(core.WithSuppressHeader(ctx), h.baseCfg.Clone(), desc, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}

	return jsonResult(summaries), nil
}

func (h *toolHandler) handleListGrid(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	desc, err := parseDescription(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid description: %v", err)), nil
	}

	base, points, err := core.GetGridPoints(desc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameter grid: %v", err)), nil
	}

	return jsonResult(outwriter.GridEntries(base, points)), nil
}

// jsonResult encodes data as indented JSON, leaving predicate operators unescaped.
func jsonResult(data any) *mcp.CallToolResult {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(buf.String())
}
