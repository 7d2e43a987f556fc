package core

import (
	"context"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/tooldock/tooldock/internal"
	"github.com/tooldock/tooldock/internal/binstall"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/internal/fetch"
	"github.com/tooldock/tooldock/internal/platform"
	"github.com/tooldock/tooldock/internal/toolcache"
	"github.com/tooldock/tooldock/schema"
)

// FlowState names a step of the linear acquisition state machine.
type FlowState string

// Acquisition states in flow order. Failures are terminal at whatever state
// the flow has reached; there is no retry and no cleanup of partial work.
const (
	StateRequested       FlowState = "REQUESTED"
	StateVersionResolved FlowState = "VERSION_RESOLVED"
	StateCacheChecked    FlowState = "CACHE_CHECKED"
	StateCacheHit        FlowState = "CACHE_HIT"
	StateCacheMiss       FlowState = "CACHE_MISS"
	StateDownloaded      FlowState = "DOWNLOADED"
	StateExtracted       FlowState = "EXTRACTED"
	StateCachePopulated  FlowState = "CACHE_POPULATED"
	StateReady           FlowState = "READY"
	StateInstalled       FlowState = "INSTALLED"
)

// LocalCacheRoot returns the root of the local hosted tool cache tier.
func LocalCacheRoot(cfg *contract.Config) string {
	return filepath.Join(cfg.CacheDir, "tools")
}

// artifactCacheBase returns the root for canonical artifact paths.
func artifactCacheBase(cfg *contract.Config) string {
	return filepath.Join(cfg.CacheDir, "artifacts")
}

// InstallFlow drives one tool acquisition from version resolution to an
// installed binary. Each flow serves exactly one request; the steps run
// sequentially and every network or cache interaction completes before the
// next begins.
type InstallFlow struct {
	cfg      *contract.Config
	info     *platform.Info
	resolver *fetch.Resolver
	download *fetch.Downloader
	local    contract.LocalToolCache
	remote   contract.RemoteCache

	state    FlowState
	release  *schema.ToolRelease
	artifact string
}

// NewInstallFlow creates a flow for the validated config on the detected
// platform. The remote cache tier may be nil.
func NewInstallFlow(cfg *contract.Config, info *platform.Info, remote contract.RemoteCache) *InstallFlow {
	return &InstallFlow{
		cfg:      cfg,
		info:     info,
		resolver: fetch.NewResolver(nil, fetch.RenderManifestURL(cfg.ManifestURL, cfg.Tool)),
		download: fetch.NewDownloader(nil),
		local:    toolcache.NewDirToolCache(LocalCacheRoot(cfg)),
		remote:   remote,
		state:    StateRequested,
	}
}

// State returns the state the flow has reached.
func (f *InstallFlow) State() FlowState {
	return f.state
}

// Release returns the resolved release, or nil before resolution.
func (f *InstallFlow) Release() *schema.ToolRelease {
	return f.release
}

func (f *InstallFlow) advance(next FlowState) {
	log.Debugf("Install flow %s -> %s", f.state, next)
	f.state = next
}

// Download resolves the requested version and returns the canonical cached
// artifact path. On a cache miss it downloads the release archive, extracts
// it, and populates both cache tiers. Calling Download again on a flow that
// already produced an artifact returns the same path.
func (f *InstallFlow) Download(ctx context.Context) (string, error) {
	if f.artifact != "" {
		return f.artifact, nil
	}

	release, err := f.resolver.ResolveRelease(ctx, f.cfg.Tool, f.cfg.RequestedVersion)
	if err != nil {
		return "", err
	}
	f.release = release
	f.advance(StateVersionResolved)

	filename := fetch.BuildFilename(f.cfg.Tool.Name, release.Version, f.info.OS, f.info.Arch, f.info.ARMRevision)
	release.DownloadURL = fetch.BuildDownloadURL(f.cfg.DownloadURL, f.cfg.GitHubHost, f.cfg.Tool, release.Version, filename)

	cache, err := toolcache.NewArtifactCache(toolcache.ArtifactCacheOpts{
		ToolName: f.cfg.Tool.Name,
		Version:  release.Version,
		BaseDir:  artifactCacheBase(f.cfg),
		FileName: filename,
		Platform: f.info.String(),
	}, f.local, f.remote)
	if err != nil {
		return "", err
	}

	cached, ok := cache.Find(ctx)
	f.advance(StateCacheChecked)
	if ok {
		f.advance(StateCacheHit)
		f.advance(StateReady)
		f.artifact = cached
		return cached, nil
	}
	f.advance(StateCacheMiss)

	extractRoot, err := f.download.FetchAndExtract(ctx, release.DownloadURL)
	if err != nil {
		return "", err
	}
	f.advance(StateDownloaded)
	f.advance(StateExtracted)

	// The cached file keeps the release asset name but holds the extracted
	// binary bytes, so cache hits install without re-extraction.
	binary, err := internal.FirstRegularFile(extractRoot, f.cfg.Tool.BinaryName(f.info.OS))
	if err != nil {
		return "", err
	}

	cached, err = cache.Save(ctx, binary)
	if err != nil {
		return "", err
	}
	f.advance(StateCachePopulated)
	f.advance(StateReady)
	f.artifact = cached
	return cached, nil
}

// Install runs Download and places the artifact into the configured
// destination, as a standalone binary or as a docker CLI plugin.
func (f *InstallFlow) Install(ctx context.Context) (string, error) {
	artifact, err := f.Download(ctx)
	if err != nil {
		return "", err
	}

	installer := binstall.NewInstaller(f.cfg.Tool, f.info.OS, f.cfg.PathFile)
	var installed string
	if f.cfg.InstallAsPlugin {
		installed, err = installer.InstallPlugin(artifact, f.cfg.PluginDir)
	} else {
		installed, err = installer.Install(artifact, f.cfg.InstallDir)
	}
	if err != nil {
		return "", err
	}
	f.advance(StateInstalled)
	return installed, nil
}
