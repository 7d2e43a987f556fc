package core

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/internal/platform"
	"github.com/tooldock/tooldock/schema"
)

// releaseServer serves a release manifest and one release archive the way a
// GitHub release host would, counting requests per endpoint.
type releaseServer struct {
	*httptest.Server
	manifestHits atomic.Int64
	archiveHits  atomic.Int64
}

// newReleaseServer publishes "latest" -> v0.12.1 with an archive holding a
// single file named binaryName.
func newReleaseServer(t *testing.T, binaryName string, binaryContent []byte) *releaseServer {
	t.Helper()
	rs := &releaseServer{}
	archive := buildTarGz(t, binaryName, binaryContent)

	mux := http.NewServeMux()
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, _ *http.Request) {
		rs.manifestHits.Add(1)
		manifest := schema.ReleaseManifest{
			"latest": {TagName: "v0.12.1"},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(manifest)
	})
	mux.HandleFunc("/dl/", func(w http.ResponseWriter, _ *http.Request) {
		rs.archiveHits.Add(1)
		_, _ = w.Write(archive)
	})

	rs.Server = httptest.NewServer(mux)
	t.Cleanup(rs.Close)
	return rs
}

// buildTarGz returns a gzip tarball holding a single executable file.
func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: name,
		Mode: 0o755,
		Size: int64(len(content)),
	}), "Failed to write tar header")
	_, err := tw.Write(content)
	require.NoError(t, err, "Failed to write tar content")
	require.NoError(t, tw.Close(), "Failed to close tar writer")
	require.NoError(t, gz.Close(), "Failed to close gzip writer")
	return buf.Bytes()
}

// flowConfig points a validated config at the test release server.
func flowConfig(t *testing.T, server *releaseServer) *contract.Config {
	t.Helper()
	return &contract.Config{
		Tool:             schema.Tool{Name: "buildx", Org: "docker", Repo: "buildx"},
		RequestedVersion: "latest",
		CacheDir:         t.TempDir(),
		GitHubHost:       schema.DefaultGitHubHost,
		ManifestURL:      server.URL + "/manifest.json",
		DownloadURL:      server.URL + "/dl/{version}/{filename}",
		RemoteBackend:    schema.NoneRemote,
		Output:           schema.TextOut,
	}
}

// linuxAMD64 pins the flow to one platform so tests behave the same on any host.
func linuxAMD64() *platform.Info {
	return &platform.Info{OS: "linux", Arch: "amd64"}
}

func TestInstallFlowDownloadMiss(t *testing.T) {
	ctx := context.Background()
	binary := []byte("#!/bin/sh\necho buildx\n")
	server := newReleaseServer(t, "buildx", binary)
	cfg := flowConfig(t, server)

	flow := NewInstallFlow(cfg, linuxAMD64(), nil)
	assert.Equal(t, StateRequested, flow.State(), "New flows start at REQUESTED")

	artifact, err := flow.Download(ctx)
	require.NoError(t, err, "Download should not fail")
	assert.Equal(t, StateReady, flow.State(), "Download should end at READY")

	want := filepath.Join(cfg.CacheDir, "artifacts", "0.12.1", "linux-amd64", "buildx_0.12.1_linux_amd64.tar.gz")
	assert.Equal(t, want, artifact, "Artifact should land on the canonical cache path")

	content, err := os.ReadFile(artifact)
	require.NoError(t, err, "Artifact should be readable")
	assert.Equal(t, binary, content, "Artifact should hold the extracted binary bytes")

	release := flow.Release()
	require.NotNil(t, release, "Release should be recorded after resolution")
	assert.Equal(t, "latest", release.Requested)
	assert.Equal(t, "0.12.1", release.Version)
	assert.Equal(t, server.URL+"/dl/0.12.1/buildx_0.12.1_linux_amd64.tar.gz", release.DownloadURL)

	assert.EqualValues(t, 1, server.manifestHits.Load(), "Symbolic versions resolve against the manifest once")
	assert.EqualValues(t, 1, server.archiveHits.Load(), "A cache miss downloads the archive once")
}

func TestInstallFlowLocalCacheHit(t *testing.T) {
	ctx := context.Background()
	binary := []byte("binary-bytes")
	server := newReleaseServer(t, "buildx", binary)
	cfg := flowConfig(t, server)

	first := NewInstallFlow(cfg, linuxAMD64(), nil)
	_, err := first.Download(ctx)
	require.NoError(t, err, "First download should not fail")

	second := NewInstallFlow(cfg, linuxAMD64(), nil)
	artifact, err := second.Download(ctx)
	require.NoError(t, err, "Second download should not fail")
	assert.Equal(t, StateReady, second.State(), "Cache hits still end at READY")

	content, err := os.ReadFile(artifact)
	require.NoError(t, err, "Artifact should be readable")
	assert.Equal(t, binary, content, "Cache hit should serve the original bytes")

	assert.EqualValues(t, 2, server.manifestHits.Load(), "Each flow resolves the version fresh")
	assert.EqualValues(t, 1, server.archiveHits.Load(), "Cache hits must not refetch the archive")
}

func TestInstallFlowDownloadMemoized(t *testing.T) {
	ctx := context.Background()
	server := newReleaseServer(t, "buildx", []byte("binary-bytes"))
	cfg := flowConfig(t, server)

	flow := NewInstallFlow(cfg, linuxAMD64(), nil)
	first, err := flow.Download(ctx)
	require.NoError(t, err, "Download should not fail")

	again, err := flow.Download(ctx)
	require.NoError(t, err, "Repeated download should not fail")
	assert.Equal(t, first, again, "Repeated downloads should return the same artifact")
	assert.EqualValues(t, 1, server.manifestHits.Load(), "A flow resolves at most once")
	assert.EqualValues(t, 1, server.archiveHits.Load(), "A flow downloads at most once")
}

func TestInstallFlowConcreteVersionSkipsManifest(t *testing.T) {
	ctx := context.Background()
	server := newReleaseServer(t, "buildx", []byte("binary-bytes"))
	cfg := flowConfig(t, server)
	cfg.RequestedVersion = "v0.11.2"

	flow := NewInstallFlow(cfg, linuxAMD64(), nil)
	artifact, err := flow.Download(ctx)
	require.NoError(t, err, "Download should not fail")

	assert.Equal(t, "0.11.2", flow.Release().Version, "Concrete versions normalize without a lookup")
	assert.Contains(t, artifact, "buildx_0.11.2_linux_amd64.tar.gz")
	assert.EqualValues(t, 0, server.manifestHits.Load(), "Concrete versions never touch the manifest")
	assert.EqualValues(t, 1, server.archiveHits.Load())
}

func TestInstallFlowInstall(t *testing.T) {
	t.Setenv("PATH", os.Getenv("PATH")) // restore PATH after the test

	ctx := context.Background()
	binary := []byte("buildx-payload")
	server := newReleaseServer(t, "buildx", binary)
	cfg := flowConfig(t, server)
	cfg.InstallDir = t.TempDir()

	flow := NewInstallFlow(cfg, linuxAMD64(), nil)
	installed, err := flow.Install(ctx)
	require.NoError(t, err, "Install should not fail")
	assert.Equal(t, StateInstalled, flow.State(), "Install should end at INSTALLED")

	assert.Equal(t, filepath.Join(cfg.InstallDir, "buildx-bin", "buildx"), installed,
		"Binary should land in {destDir}/{tool}-bin")

	info, err := os.Stat(installed)
	require.NoError(t, err, "Installed binary should stat")
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm(), "Installed binary should be executable")

	content, err := os.ReadFile(installed)
	require.NoError(t, err, "Installed binary should be readable")
	assert.Equal(t, binary, content, "Installed content mismatch")
}

func TestInstallFlowInstallPlugin(t *testing.T) {
	ctx := context.Background()
	server := newReleaseServer(t, "buildx", []byte("plugin-bytes"))
	cfg := flowConfig(t, server)
	cfg.InstallAsPlugin = true
	cfg.PluginDir = t.TempDir()

	flow := NewInstallFlow(cfg, linuxAMD64(), nil)
	installed, err := flow.Install(ctx)
	require.NoError(t, err, "Plugin install should not fail")
	assert.Equal(t, StateInstalled, flow.State())
	assert.Equal(t, filepath.Join(cfg.PluginDir, "docker-buildx"), installed,
		"Plugin should land in {pluginDir}/docker-{tool}")
}

func TestInstallFlowResolveErrorIsTerminal(t *testing.T) {
	ctx := context.Background()
	server := newReleaseServer(t, "buildx", []byte("binary-bytes"))
	cfg := flowConfig(t, server)
	cfg.ManifestURL = server.URL + "/missing.json"

	flow := NewInstallFlow(cfg, linuxAMD64(), nil)
	_, err := flow.Download(ctx)
	require.Error(t, err, "Download should fail when the manifest is unreachable")

	var terr *schema.TransportError
	require.ErrorAs(t, err, &terr, "Manifest failures surface as transport errors")
	assert.Equal(t, http.StatusNotFound, terr.StatusCode)
	assert.Equal(t, StateRequested, flow.State(), "A failed resolution leaves the flow at REQUESTED")
}

func TestInstallFlowUnknownChannel(t *testing.T) {
	ctx := context.Background()
	server := newReleaseServer(t, "buildx", []byte("binary-bytes"))
	cfg := flowConfig(t, server)
	cfg.RequestedVersion = "nightly"

	flow := NewInstallFlow(cfg, linuxAMD64(), nil)
	_, err := flow.Download(ctx)
	require.Error(t, err, "Unknown channels should fail resolution")
	assert.True(t, errors.Is(err, schema.ErrVersionNotFound), "Error should wrap ErrVersionNotFound")
	assert.Equal(t, StateRequested, flow.State())
}

func TestInstallFlowArchiveFetchErrorIsTerminal(t *testing.T) {
	ctx := context.Background()
	server := newReleaseServer(t, "buildx", []byte("binary-bytes"))
	cfg := flowConfig(t, server)
	cfg.DownloadURL = server.URL + "/absent/{version}/{filename}"

	flow := NewInstallFlow(cfg, linuxAMD64(), nil)
	_, err := flow.Download(ctx)
	require.Error(t, err, "Download should fail when the archive is unreachable")

	var terr *schema.TransportError
	require.ErrorAs(t, err, &terr, "Archive failures surface as transport errors")
	assert.Equal(t, http.StatusNotFound, terr.StatusCode)
	assert.Equal(t, StateCacheMiss, flow.State(), "A failed download leaves the flow at CACHE_MISS")
	assert.EqualValues(t, 0, server.archiveHits.Load())
}

func TestInstallFlowBinaryMissingFromArchive(t *testing.T) {
	ctx := context.Background()
	server := newReleaseServer(t, "README.md", []byte("no binary here"))
	cfg := flowConfig(t, server)

	flow := NewInstallFlow(cfg, linuxAMD64(), nil)
	_, err := flow.Download(ctx)
	require.Error(t, err, "Download should fail when the archive lacks the binary")
	assert.ErrorContains(t, err, "not found under")
	assert.Equal(t, StateExtracted, flow.State(), "The flow stops where extraction left it")
}

func TestLocalCacheRoot(t *testing.T) {
	cfg := &contract.Config{CacheDir: filepath.Join("srv", "cache")}
	assert.Equal(t, filepath.Join("srv", "cache", "tools"), LocalCacheRoot(cfg))
}
