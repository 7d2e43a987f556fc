// Package core has core logic for tool acquisition, caching and builder management.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/tooldock/tooldock/internal"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/internal/fetch"
	"github.com/tooldock/tooldock/internal/outwriter"
	"github.com/tooldock/tooldock/internal/platform"
	"github.com/tooldock/tooldock/internal/toolcache"
	"github.com/tooldock/tooldock/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteToolInstall acquires the requested tool version and installs its
// binary. It serves as the main entry point for the 'install' command.
func ExecuteToolInstall(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	info, err := detectHost(ctx, cfg)
	if err != nil {
		return err
	}
	if err := toolcache.InitRemote(ctx, cfg); err != nil {
		return err
	}
	flow := NewInstallFlow(cfg, info, toolcache.Manager.GetRemote())
	installed, err := flow.Install(ctx)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	fmt.Printf("✅ Installed %s %s at %s in %v\n",
		cfg.Tool.Name, flow.Release().Version, installed, duration.Round(time.Millisecond))
	return nil
}

// ExecuteToolFetch acquires the requested tool version into the artifact
// cache without installing it. It serves as the main entry point for the
// 'fetch' command.
func ExecuteToolFetch(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	info, err := detectHost(ctx, cfg)
	if err != nil {
		return err
	}
	if err := toolcache.InitRemote(ctx, cfg); err != nil {
		return err
	}
	flow := NewInstallFlow(cfg, info, toolcache.Manager.GetRemote())
	artifact, err := flow.Download(ctx)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	fmt.Printf("✅ Cached %s %s at %s in %v\n",
		cfg.Tool.Name, flow.Release().Version, artifact, duration.Round(time.Millisecond))
	return nil
}

// ExecuteVersionResolve resolves the requested version against the release
// manifest and prints the release record without downloading anything.
// It serves as the main entry point for the 'resolve' command.
func ExecuteVersionResolve(ctx context.Context, cfg *contract.Config) error {
	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return err
	}

	resolver := fetch.NewResolver(nil, fetch.RenderManifestURL(cfg.ManifestURL, cfg.Tool))
	release, err := resolver.ResolveRelease(ctx, cfg.Tool, cfg.RequestedVersion)
	if err != nil {
		return err
	}

	filename := fetch.BuildFilename(cfg.Tool.Name, release.Version, info.OS, info.Arch, info.ARMRevision)
	release.DownloadURL = fetch.BuildDownloadURL(cfg.DownloadURL, cfg.GitHubHost, cfg.Tool, release.Version, filename)

	writer := outwriter.NewOutWriter()
	return writer.WriteRelease(*release, cfg)
}

// ExecuteCacheStatus prints the local cache inventory, followed by remote
// tier status when the configured backend reports one. Structured output
// modes emit the inventory as a single document; the remote block is
// rendered in text mode only.
func ExecuteCacheStatus(ctx context.Context, cfg *contract.Config) error {
	if !shouldBeQuiet(ctx) && cfg.Output == schema.TextOut {
		internal.LogCacheHeader(LocalCacheRoot(cfg), string(cfg.RemoteBackend))
	}

	if err := toolcache.InitRemote(ctx, cfg); err != nil {
		return err
	}

	inv, err := toolcache.Inventory(LocalCacheRoot(cfg))
	if err != nil {
		return err
	}

	writer := outwriter.NewOutWriter()
	if err := writer.WriteInventory(inv, cfg); err != nil {
		return err
	}
	if cfg.Output != schema.TextOut {
		return nil
	}

	reporter, ok := toolcache.Manager.GetRemote().(contract.StatusReporter)
	if !ok {
		return nil
	}
	status, err := reporter.Status()
	if err != nil {
		return fmt.Errorf("cannot read remote cache status: %w", err)
	}
	fmt.Println()
	return writer.WriteRemoteStatus(status, cfg)
}

// ExecuteCacheClear removes every entry from the local cache tier. With
// includeRemote it also clears the configured remote tier.
func ExecuteCacheClear(ctx context.Context, cfg *contract.Config, includeRemote bool) error {
	root := LocalCacheRoot(cfg)
	if err := toolcache.ClearLocal(root); err != nil {
		return err
	}
	fmt.Printf("🧹 Cleared local cache at %s\n", root)

	if !includeRemote {
		return nil
	}

	switch cfg.RemoteBackend {
	case schema.NoneRemote:
		return nil

	case schema.S3Remote:
		remote, err := toolcache.NewRemoteCache(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = remote.Close() }()
		s3, ok := remote.(*toolcache.S3RemoteCache)
		if !ok {
			return fmt.Errorf("remote backend %s does not support clearing", cfg.RemoteBackend)
		}
		if err := s3.Clear(ctx); err != nil {
			return err
		}

	case schema.DatabaseRemote:
		if err := toolcache.ClearDatabaseRemote(cfg.RemoteDBBackend, cfg.RemoteDBConnect); err != nil {
			return err
		}
	}

	fmt.Printf("🧹 Cleared remote cache (%s)\n", cfg.RemoteBackend)
	return nil
}

// ExecuteCacheExport writes the local cache inventory to the configured
// output file. It serves as the main entry point for the 'cache export'
// command.
func ExecuteCacheExport(_ context.Context, cfg *contract.Config) error {
	return toolcache.ExecuteCacheExport(LocalCacheRoot(cfg), cfg.Output, cfg.OutputFile)
}

// ExecuteCacheMigrate brings the database remote cache schema to the
// requested version. A negative target migrates to the latest version;
// zero rolls back every migration.
func ExecuteCacheMigrate(_ context.Context, cfg *contract.Config, targetVersion int) error {
	if cfg.RemoteBackend != schema.DatabaseRemote {
		return fmt.Errorf("cache migrate requires the database remote backend, got '%s'", cfg.RemoteBackend)
	}
	if err := toolcache.Migrate(cfg.RemoteDBBackend, cfg.RemoteDBConnect, targetVersion); err != nil {
		return err
	}
	fmt.Printf("✅ Migrated %s cache schema\n", cfg.RemoteDBBackend)
	return nil
}

// detectHost detects the host platform and prints the acquisition header.
func detectHost(ctx context.Context, cfg *contract.Config) (*platform.Info, error) {
	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return nil, err
	}
	if !shouldBeQuiet(ctx) {
		internal.LogInstallHeader(cfg.Tool.Name, cfg.RequestedVersion, info.String())
	}
	return info, nil
}
