// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tooldock/tooldock/internal/contract"
)

// NewMCPServer initializes and configures the tooldock MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Tooldock Acquisition Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: resolve_tool_version ---
	s.AddTool(mcp.NewTool("resolve_tool_version",
		mcp.WithDescription("Resolve a requested tool version (e.g. 'latest') to a concrete release version without downloading anything."),
		mcp.WithString("tool", mcp.Description("Tool name from the catalog (buildx, compose), or any name when org and repo are given."), mcp.Required()),
		mcp.WithString("version", mcp.Description("Requested version: a channel like 'latest', an exact version, or a commit SHA. Defaults to 'latest'.")),
		mcp.WithString("org", mcp.Description("GitHub organization for tools outside the catalog.")),
		mcp.WithString("repo", mcp.Description("GitHub repository for tools outside the catalog.")),
	), h.handleResolveToolVersion)

	// --- 2. Tool: install_tool ---
	s.AddTool(mcp.NewTool("install_tool",
		mcp.WithDescription("Download a tool release, populate the artifact cache and install the binary, optionally as a docker CLI plugin."),
		mcp.WithString("tool", mcp.Description("Tool name from the catalog (buildx, compose), or any name when org and repo are given."), mcp.Required()),
		mcp.WithString("version", mcp.Description("Requested version. Defaults to 'latest'.")),
		mcp.WithString("dest", mcp.Description("Destination directory. Defaults to a fresh temp directory.")),
		mcp.WithBoolean("plugin", mcp.Description("Install as a docker CLI plugin instead of a standalone binary.")),
		mcp.WithString("org", mcp.Description("GitHub organization for tools outside the catalog.")),
		mcp.WithString("repo", mcp.Description("GitHub repository for tools outside the catalog.")),
	), h.handleInstallTool)

	// --- 3. Tool: cache_status ---
	s.AddTool(mcp.NewTool("cache_status",
		mcp.WithDescription("Report the local tool cache inventory, plus remote tier status when the configured backend reports one."),
	), h.handleCacheStatus)

	return s
}

// StartMCPServer starts the tooldock MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
