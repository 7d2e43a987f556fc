package toolcache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &RemoteCacheManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// RemoteCacheManager hands the configured remote cache tier to commands.
type RemoteCacheManager struct {
	sync.RWMutex
	remote contract.RemoteCache
}

// GetRemote returns the configured remote tier, or nil when it is disabled.
func (m *RemoteCacheManager) GetRemote() contract.RemoteCache {
	m.RLock()
	defer m.RUnlock()
	return m.remote
}

// InitRemote initializes the global manager from validated config.
// Safe for concurrent use; the backend is constructed exactly once.
func InitRemote(ctx context.Context, cfg *contract.Config) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		remote, err := NewRemoteCache(ctx, cfg)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize remote cache: %w", err)
			return
		}

		Manager.Lock()
		Manager.remote = remote
		Manager.Unlock()
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// NewRemoteCache constructs the remote tier selected by cfg.RemoteBackend.
// The none backend yields a nil cache.
func NewRemoteCache(ctx context.Context, cfg *contract.Config) (contract.RemoteCache, error) {
	switch cfg.RemoteBackend {
	case schema.NoneRemote:
		return nil, nil

	case schema.S3Remote:
		return NewS3RemoteCache(ctx, S3Options{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Region:    cfg.S3Region,
			UseSSL:    cfg.S3UseSSL,
		})

	case schema.DatabaseRemote:
		return NewDatabaseRemoteCache(cfg.RemoteDBBackend, cfg.RemoteDBConnect)

	default:
		return nil, fmt.Errorf("unsupported remote backend: %s", cfg.RemoteBackend)
	}
}

// CloseRemote should be called on application shutdown.
func CloseRemote() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.remote != nil {
			_ = Manager.remote.Close()
		}
	})
}

// ClearLocal removes every entry under the local cache root.
func ClearLocal(root string) error {
	if root == "" {
		return fmt.Errorf("cache root cannot be empty")
	}
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("failed to remove cache root %s: %w", root, err)
	}
	return nil
}

// ClearDatabaseRemote clears the database remote cache for the specified
// backend. For SQLite the connection string is the database file path, the
// same way NewBlobStore reads it, and the file is deleted. For
// MySQL/PostgreSQL the cache table is dropped.
func ClearDatabaseRemote(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbPath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, cacheTable)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, cacheTable)

	default:
		return fmt.Errorf("unsupported database backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
