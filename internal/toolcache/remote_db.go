package toolcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

// cacheTable is the name of the table for remote artifact caching.
const cacheTable = "tool_cache"

// bundleFormatVersion is stored with every entry and checked on restore.
const bundleFormatVersion = 1

// DatabaseRemoteCache stores cache bundles as blobs in a SQL database.
type DatabaseRemoteCache struct {
	store contract.BlobStore
}

var _ contract.RemoteCache = &DatabaseRemoteCache{} // Compile-time check

// NewDatabaseRemoteCache opens the blob store for the given backend.
func NewDatabaseRemoteCache(backend schema.DatabaseBackend, connStr string) (*DatabaseRemoteCache, error) {
	store, err := NewBlobStore(cacheTable, backend, connStr)
	if err != nil {
		return nil, err
	}
	return &DatabaseRemoteCache{store: store}, nil
}

// Restore fetches the bundle stored under key and unpacks it into paths.
// A missing key is a miss, not an error.
func (d *DatabaseRemoteCache) Restore(ctx context.Context, paths []string, key string) (bool, error) {
	data, version, _, err := d.store.Get(key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if version != bundleFormatVersion {
		return false, fmt.Errorf("unsupported cache bundle version %d for key %s", version, key)
	}
	if err := unpackPaths(data, paths); err != nil {
		return false, err
	}
	return true, nil
}

// Save bundles paths and stores the bundle under key.
func (d *DatabaseRemoteCache) Save(ctx context.Context, paths []string, key string) error {
	data, err := packPaths(paths)
	if err != nil {
		return err
	}
	return d.store.Set(key, data, bundleFormatVersion, time.Now().Unix())
}

// Close closes the underlying store.
func (d *DatabaseRemoteCache) Close() error {
	return d.store.Close()
}

// Status reports the underlying store state.
func (d *DatabaseRemoteCache) Status() (schema.RemoteCacheStatus, error) {
	return d.store.GetStatus()
}
