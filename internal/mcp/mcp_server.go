// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Scorecard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.RegistryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Scorecard Compiler Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: compile_scorecard ---
	s.AddTool(mcp.NewTool("compile_scorecard",
		mcp.WithDescription("Compile a JSON scorecard description into one PMML 4.2 document per parameter grid point."),
		mcp.WithString("description", mcp.Description("The scorecard description as a JSON object string."), mcp.Required()),
		mcp.WithBoolean("fail_fast", mcp.Description("Stop at the first grid point that fails to compile.")),
	), h.handleCompileScorecard)

	// --- 2. Tool: summarize_scorecard ---
	s.AddTool(mcp.NewTool("summarize_scorecard",
		mcp.WithDescription("Summarize the characteristics, predicates, partial scores and reason codes of every model a description expands to."),
		mcp.WithString("description", mcp.Description("The scorecard description as a JSON object string."), mcp.Required()),
	), h.handleSummarizeScorecard)

	// --- 3. Tool: list_grid ---
	s.AddTool(mcp.NewTool("list_grid",
		mcp.WithDescription("List the model names and parameter values of the parameter grid without compiling."),
		mcp.WithString("description", mcp.Description("The scorecard description as a JSON object string."), mcp.Required()),
	), h.handleListGrid)

	return s
}

// StartMCPServer starts the Scorecard MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.RegistryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
