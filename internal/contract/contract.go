// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/tooldock/tooldock/schema"
)

// DockerClient defines the necessary operations against the local docker
// CLI. This allows the buildx driver logic to be tested without needing a
// real docker executable.
type DockerClient interface {
	// Run executes a docker command and returns its stdout.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, args ...string) ([]byte, error)

	// BuildxVersion returns the raw output of `docker buildx version`.
	BuildxVersion(ctx context.Context) (string, error)

	// ServerVersionJSON returns the raw output of `docker version --format json`.
	ServerVersionJSON(ctx context.Context) ([]byte, error)
}

// LocalToolCache defines the hosted tool cache: a per-runner directory cache
// of downloaded tools keyed by name, version and platform.
type LocalToolCache interface {
	// Find returns the cached directory for the key, or ok=false on a miss.
	Find(name, version, platform string) (string, bool)

	// Register copies sourceDir into the cache under the key and returns
	// the registered directory.
	Register(sourceDir, name, version, platform string) (string, error)
}

// BlobStore defines the interface for keyed blob storage.
// This allows mocking the store for testing.
type BlobStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.RemoteCacheStatus, error)
	Close() error
}

// RemoteCache defines the optional job-spanning cache tier. Implementations
// are selected from config at startup; absence of a backend is a degraded
// cache-hit rate, never an error.
type RemoteCache interface {
	// Restore downloads the entry stored under key into the given paths'
	// directory. It returns false when the key is not present remotely.
	Restore(ctx context.Context, paths []string, key string) (bool, error)

	// Save uploads the given paths under key.
	Save(ctx context.Context, paths []string, key string) error

	// Close releases any held connections.
	Close() error
}

// StatusReporter is implemented by remote cache tiers that can report
// connectivity and content statistics about themselves.
type StatusReporter interface {
	Status() (schema.RemoteCacheStatus, error)
}
