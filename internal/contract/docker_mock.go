package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDockerClient is an autogenerated mock type for the DockerClient type.
type MockDockerClient struct {
	mock.Mock
}

var _ DockerClient = &MockDockerClient{} // Compile-time check

// Run implements the contract.DockerClient interface.
func (m *MockDockerClient) Run(ctx context.Context, args ...string) ([]byte, error) {
	var mockArgs []interface{}
	mockArgs = append(mockArgs, ctx)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// BuildxVersion implements the contract.DockerClient interface.
func (m *MockDockerClient) BuildxVersion(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	out, _ := ret.Get(0).(string)
	return out, ret.Error(1)
}

// ServerVersionJSON implements the contract.DockerClient interface.
func (m *MockDockerClient) ServerVersionJSON(ctx context.Context) ([]byte, error) {
	ret := m.Called(ctx)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// MockRemoteCache is an autogenerated mock type for the RemoteCache type.
type MockRemoteCache struct {
	mock.Mock
}

var _ RemoteCache = &MockRemoteCache{} // Compile-time check

// Restore implements the contract.RemoteCache interface.
func (m *MockRemoteCache) Restore(ctx context.Context, paths []string, key string) (bool, error) {
	ret := m.Called(ctx, paths, key)
	found, _ := ret.Get(0).(bool)
	return found, ret.Error(1)
}

// Save implements the contract.RemoteCache interface.
func (m *MockRemoteCache) Save(ctx context.Context, paths []string, key string) error {
	ret := m.Called(ctx, paths, key)
	return ret.Error(0)
}

// Close implements the contract.RemoteCache interface.
func (m *MockRemoteCache) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
