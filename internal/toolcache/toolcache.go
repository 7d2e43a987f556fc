// Package toolcache is the two-tier artifact cache: a local hosted tool
// cache on disk plus an optional remote tier that spans CI jobs.
package toolcache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/tooldock/tooldock/internal"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

// ArtifactCacheOpts is the identity of one cached artifact.
type ArtifactCacheOpts struct {
	ToolName string // tool cache name, e.g. buildx
	Version  string // normalized version, no leading v
	BaseDir  string // root for canonical artifact paths
	FileName string // artifact file name inside the cache directory
	Platform string // platform segment, e.g. linux-amd64 or linux-armv7
}

// ArtifactCache caches one (tool, version, platform) artifact across the
// local and remote tiers. The remote tier may be nil; its absence lowers
// the hit rate and nothing else.
type ArtifactCache struct {
	opts     ArtifactCacheOpts
	cacheDir string
	local    contract.LocalToolCache
	remote   contract.RemoteCache
}

// NewArtifactCache computes the canonical cache directory
// {baseDir}/{version}/{platform} and creates it up front.
func NewArtifactCache(opts ArtifactCacheOpts, local contract.LocalToolCache, remote contract.RemoteCache) (*ArtifactCache, error) {
	cacheDir := filepath.Join(opts.BaseDir, opts.Version, opts.Platform)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", cacheDir, err)
	}
	return &ArtifactCache{
		opts:     opts,
		cacheDir: cacheDir,
		local:    local,
		remote:   remote,
	}, nil
}

// CacheDir returns the canonical cache directory for this artifact.
func (c *ArtifactCache) CacheDir() string {
	return c.cacheDir
}

// cachePath is the canonical location of the artifact file.
func (c *ArtifactCache) cachePath() string {
	return filepath.Join(c.cacheDir, c.opts.FileName)
}

// key is the composite key used for the remote tier.
func (c *ArtifactCache) key() string {
	return schema.CacheKey(c.opts.ToolName, c.opts.Version, c.opts.Platform)
}

// Find looks the artifact up in the local tier first, then the remote tier.
// A hit returns the canonical artifact path. A miss returns ok=false, and so
// does every cache-layer failure along the way; Find never fails.
func (c *ArtifactCache) Find(ctx context.Context) (string, bool) {
	if dir, ok := c.local.Find(c.opts.ToolName, c.opts.Version, c.opts.Platform); ok {
		cached := filepath.Join(dir, c.opts.FileName)
		if err := internal.CopyFile(cached, c.cachePath(), 0o644); err != nil {
			log.Debugf("local cache copy of %s failed: %v", cached, err)
			return "", false
		}
		log.Debugf("Found %s in local tool cache", cached)
		return c.cachePath(), true
	}

	if c.remote == nil {
		return "", false
	}

	found, err := c.remote.Restore(ctx, []string{c.cacheDir}, c.key())
	if err != nil {
		log.Debugf("remote cache restore failed for key %s: %v", c.key(), err)
		return "", false
	}
	if !found {
		return "", false
	}
	log.Debugf("Restored key %s from remote cache", c.key())
	if _, err := c.local.Register(c.cacheDir, c.opts.ToolName, c.opts.Version, c.opts.Platform); err != nil {
		log.Debugf("local cache register after restore failed: %v", err)
	}
	return c.cachePath(), true
}

// Save copies sourceFile to the canonical cache path, registers the cache
// directory with the local tier and uploads it to the remote tier. The
// upload is best effort; a failed upload logs a warning and the save still
// succeeds. Returns the canonical artifact path.
func (c *ArtifactCache) Save(ctx context.Context, sourceFile string) (string, error) {
	if err := internal.CopyFile(sourceFile, c.cachePath(), 0o644); err != nil {
		return "", err
	}

	if _, err := c.local.Register(c.cacheDir, c.opts.ToolName, c.opts.Version, c.opts.Platform); err != nil {
		return "", fmt.Errorf("cannot register %s in local tool cache: %w", c.cacheDir, err)
	}

	if c.remote != nil {
		if err := c.remote.Save(ctx, []string{c.cacheDir}, c.key()); err != nil {
			internal.Warningf("remote cache save failed for key %s: %v", c.key(), err)
		}
	}
	return c.cachePath(), nil
}
