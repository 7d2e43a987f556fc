package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tooldock/tooldock/core"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/internal/fetch"
	"github.com/tooldock/tooldock/internal/platform"
	"github.com/tooldock/tooldock/internal/toolcache"
	"github.com/tooldock/tooldock/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// requestConfig clones the base config and applies per-request tool and
// version arguments. Handlers never mutate the base config because requests
// on one server session are independent.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()

	name := request.GetString("tool", "")
	if name != "" {
		tool, ok := schema.LookupTool(name, request.GetString("org", ""), request.GetString("repo", ""))
		if !ok {
			return nil, fmt.Errorf("unknown tool '%s'. provide org and repo for tools outside the catalog", name)
		}
		cfg.Tool = tool
	}
	if v := request.GetString("version", ""); v != "" {
		cfg.RequestedVersion = v
	}
	if cfg.RequestedVersion == "" {
		cfg.RequestedVersion = "latest"
	}
	return cfg, nil
}

func (h *toolHandler) handleResolveToolVersion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid resolve parameters: %v", err)), nil
	}

	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("platform detection failed: %v", err)), nil
	}

	resolver := fetch.NewResolver(nil, fetch.RenderManifestURL(cfg.ManifestURL, cfg.Tool))
	release, err := resolver.ResolveRelease(ctx, cfg.Tool, cfg.RequestedVersion)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolution failed: %v", err)), nil
	}

	filename := fetch.BuildFilename(cfg.Tool.Name, release.Version, info.OS, info.Arch, info.ARMRevision)
	release.DownloadURL = fetch.BuildDownloadURL(cfg.DownloadURL, cfg.GitHubHost, cfg.Tool, release.Version, filename)

	jsonData, _ := json.MarshalIndent(release, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleInstallTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid install parameters: %v", err)), nil
	}
	if d := request.GetString("dest", ""); d != "" {
		cfg.InstallDir = d
	}
	cfg.InstallAsPlugin = request.GetBool("plugin", false)

	// The flow is driven directly instead of through the core executors so
	// that nothing writes progress output to stdout, which carries the MCP
	// protocol stream.
	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("platform detection failed: %v", err)), nil
	}
	if err := toolcache.InitRemote(ctx, cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("remote cache setup failed: %v", err)), nil
	}

	flow := core.NewInstallFlow(cfg, info, toolcache.Manager.GetRemote())
	installed, err := flow.Install(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("install failed: %v", err)), nil
	}

	result := struct {
		Release       *schema.ToolRelease `json:"release"`
		InstalledPath string              `json:"installed_path"`
		Plugin        bool                `json:"plugin"`
	}{flow.Release(), installed, cfg.InstallAsPlugin}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCacheStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inv, err := toolcache.Inventory(core.LocalCacheRoot(h.baseCfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cache inventory failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(inv, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
