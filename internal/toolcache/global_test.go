package toolcache

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

func TestRemoteCacheLifecycle(t *testing.T) {
	t.Run("none backend", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		cfg := &contract.Config{RemoteBackend: schema.NoneRemote}
		err := InitRemote(context.Background(), cfg)
		assert.NoError(t, err, "InitRemote with none backend should not fail")

		assert.Nil(t, Manager.GetRemote(), "None backend should yield no remote tier")

		// Close is safe with no remote
		CloseRemote()
	})

	t.Run("database sqlite backend", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		dbPath := filepath.Join(t.TempDir(), "remote.db")
		cfg := &contract.Config{
			RemoteBackend:   schema.DatabaseRemote,
			RemoteDBBackend: schema.SQLiteBackend,
			RemoteDBConnect: dbPath,
		}
		err := InitRemote(context.Background(), cfg)
		require.NoError(t, err, "InitRemote with sqlite database backend should not fail")

		assert.NotNil(t, Manager.GetRemote(), "Database backend should yield a remote tier")

		CloseRemote()
	})

	t.Run("idempotent setup", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		cfg := &contract.Config{RemoteBackend: schema.NoneRemote}

		// Multiple initializations should be safe (sync.Once)
		err1 := InitRemote(context.Background(), cfg)
		err2 := InitRemote(context.Background(), cfg)
		err3 := InitRemote(context.Background(), cfg)

		assert.NoError(t, err1, "First init should not fail")
		assert.NoError(t, err2, "Second init should not fail")
		assert.NoError(t, err3, "Third init should not fail")

		// Multiple closes should be safe (sync.Once)
		CloseRemote()
		CloseRemote()
		CloseRemote()
	})

	t.Run("concurrent access", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		dbPath := filepath.Join(t.TempDir(), "concurrent.db")
		cfg := &contract.Config{
			RemoteBackend:   schema.DatabaseRemote,
			RemoteDBBackend: schema.SQLiteBackend,
			RemoteDBConnect: dbPath,
		}

		const numGoroutines = 10
		done := make(chan bool, numGoroutines)

		for i := range numGoroutines {
			go func(id int) {
				defer func() { done <- true }()
				if err := InitRemote(context.Background(), cfg); err != nil {
					t.Errorf("Goroutine %d: InitRemote failed: %v", id, err)
					return
				}
				if Manager.GetRemote() == nil {
					t.Errorf("Goroutine %d: GetRemote returned nil", id)
				}
			}(i)
		}

		// Wait for all goroutines to complete
		for range numGoroutines {
			<-done
		}

		CloseRemote()
	})
}

func TestNewRemoteCacheUnsupported(t *testing.T) {
	cfg := &contract.Config{RemoteBackend: schema.RemoteBackend("carrier-pigeon")}
	_, err := NewRemoteCache(context.Background(), cfg)
	assert.Error(t, err, "Expected error for unsupported remote backend")
	assert.Contains(t, err.Error(), "unsupported remote backend")
}

func TestClearLocal(t *testing.T) {
	t.Run("removes the root", func(t *testing.T) {
		root := t.TempDir()
		seedCacheEntry(t, root, "buildx", "0.12.1", "linux-amd64", "buildx.tar.gz", "data")

		err := ClearLocal(root)
		require.NoError(t, err, "ClearLocal should not fail")

		_, err = os.Stat(root)
		assert.True(t, os.IsNotExist(err), "Cache root should be removed")
	})

	t.Run("missing root", func(t *testing.T) {
		err := ClearLocal(filepath.Join(t.TempDir(), "never-created"))
		assert.NoError(t, err, "ClearLocal on a missing root should not error")
	})

	t.Run("empty root", func(t *testing.T) {
		err := ClearLocal("")
		assert.Error(t, err, "Expected error for empty cache root")
	})
}

func TestClearDatabaseRemote(t *testing.T) {
	t.Run("SQLite backend", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "clear_test.db")
		require.NoError(t, os.WriteFile(dbPath, []byte("sqlite bytes"), 0o644), "Failed to create database file")

		err := ClearDatabaseRemote(schema.SQLiteBackend, dbPath)
		require.NoError(t, err, "ClearDatabaseRemote should not fail")

		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err), "Database file should be removed")
	})

	t.Run("SQLite backend - non-existent file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "non_existent.db")
		err := ClearDatabaseRemote(schema.SQLiteBackend, dbPath)
		assert.NoError(t, err, "Clearing a non-existent file should not error")
	})

	t.Run("SQLite backend - default path fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		dbPath := contract.GetDBFilePath()
		require.NoError(t, os.WriteFile(dbPath, []byte("sqlite bytes"), 0o644), "Failed to create database file")

		err := ClearDatabaseRemote(schema.SQLiteBackend, "")
		require.NoError(t, err, "ClearDatabaseRemote should not fail")

		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err), "Default database file should be removed")
	})

	t.Run("unsupported backend", func(t *testing.T) {
		err := ClearDatabaseRemote(schema.DatabaseBackend("unsupported"), "")
		assert.Error(t, err, "Expected error for unsupported backend")
	})
}
