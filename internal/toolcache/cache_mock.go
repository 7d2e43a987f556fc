package toolcache

import (
	"github.com/stretchr/testify/mock"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

// MockBlobStore is a mock implementation of BlobStore for testing.
type MockBlobStore struct {
	mock.Mock
}

var _ contract.BlobStore = &MockBlobStore{} // Compile-time check

// Get implements the BlobStore interface.
func (m *MockBlobStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	value, _ := args.Get(0).([]byte)
	ts, _ := args.Get(2).(int64)
	return value, args.Int(1), ts, args.Error(3)
}

// Set implements the BlobStore interface.
func (m *MockBlobStore) Set(key string, value []byte, version int, timestamp int64) error {
	args := m.Called(key, value, version, timestamp)
	return args.Error(0)
}

// GetStatus implements the BlobStore interface.
func (m *MockBlobStore) GetStatus() (schema.RemoteCacheStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.RemoteCacheStatus)
	return status, args.Error(1)
}

// Close implements the BlobStore interface.
func (m *MockBlobStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockLocalToolCache is a mock implementation of LocalToolCache for testing.
type MockLocalToolCache struct {
	mock.Mock
}

var _ contract.LocalToolCache = &MockLocalToolCache{} // Compile-time check

// Find implements the LocalToolCache interface.
func (m *MockLocalToolCache) Find(name, version, platform string) (string, bool) {
	args := m.Called(name, version, platform)
	return args.String(0), args.Bool(1)
}

// Register implements the LocalToolCache interface.
func (m *MockLocalToolCache) Register(sourceDir, name, version, platform string) (string, error) {
	args := m.Called(sourceDir, name, version, platform)
	return args.String(0), args.Error(1)
}
