package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tooldock/tooldock/internal/buildx"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

const builderInspectOutput = `Name:          ci-builder
Driver:        docker-container

Nodes:
Name:             ci-builder0
Endpoint:         unix:///var/run/docker.sock
Status:           running
BuildKit version: v0.13.2
`

const engineVersionsOutput = `{"Client":{"Version":"27.0.3"},"Server":{"Version":"27.0.3"}}`

// builderConfig routes command output to a JSON file for assertions.
func builderConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:     schema.JSONOut,
		OutputFile: filepath.Join(t.TempDir(), "builder.json"),
	}
}

// readBuilderReport decodes the report the command wrote.
func readBuilderReport(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "Output file should exist")
	var report map[string]any
	require.NoError(t, json.Unmarshal(data, &report), "Output should be valid JSON")
	return report
}

// healthyBuildx mocks a docker CLI with a current buildx plugin.
func healthyBuildx() *contract.MockDockerClient {
	mockDocker := &contract.MockDockerClient{}
	mockDocker.On("BuildxVersion", mock.Anything).
		Return("github.com/docker/buildx v0.12.1 2b03339", nil)
	return mockDocker
}

func TestExecuteBuilderCreate(t *testing.T) {
	mockDocker := healthyBuildx()
	mockDocker.On("Run", mock.Anything,
		"buildx", "create",
		"--name", "ci-builder",
		"--driver", "docker-container",
		"--bootstrap",
	).Return([]byte("ci-builder\n"), nil).Once()
	mockDocker.On("Run", mock.Anything, "buildx", "inspect", "ci-builder").
		Return([]byte(builderInspectOutput), nil).Once()
	mockDocker.On("ServerVersionJSON", mock.Anything).
		Return([]byte(engineVersionsOutput), nil)

	cfg := builderConfig(t)
	err := ExecuteBuilderCreate(context.Background(), cfg, mockDocker, buildx.CreateBuilderOpts{Name: "ci-builder"})
	require.NoError(t, err, "ExecuteBuilderCreate should not fail")

	report := readBuilderReport(t, cfg.OutputFile)
	builder, ok := report["builder"].(map[string]any)
	require.True(t, ok, "Report should nest the builder details")
	assert.Equal(t, "ci-builder", builder["name"])
	assert.Equal(t, "docker-container", builder["driver"])
	assert.Equal(t, "Running", report["status"])
	mockDocker.AssertExpectations(t)
}

func TestExecuteBuilderInspect(t *testing.T) {
	mockDocker := healthyBuildx()
	mockDocker.On("Run", mock.Anything, "buildx", "inspect", "ci-builder").
		Return([]byte(builderInspectOutput), nil)
	mockDocker.On("ServerVersionJSON", mock.Anything).
		Return([]byte(engineVersionsOutput), nil)

	cfg := builderConfig(t)
	err := ExecuteBuilderInspect(context.Background(), cfg, mockDocker, "ci-builder")
	require.NoError(t, err, "ExecuteBuilderInspect should not fail")

	report := readBuilderReport(t, cfg.OutputFile)
	builder, ok := report["builder"].(map[string]any)
	require.True(t, ok, "Report should nest the builder details")
	assert.Equal(t, "ci-builder", builder["name"])
	assert.Equal(t, "unix:///var/run/docker.sock", builder["endpoint"])
	assert.Equal(t, "27.0.3", report["docker_client_version"])
	assert.Equal(t, "27.0.3", report["docker_server_version"])
}

func TestExecuteBuilderInspectDegradedEngineProbe(t *testing.T) {
	mockDocker := healthyBuildx()
	mockDocker.On("Run", mock.Anything, "buildx", "inspect", "ci-builder").
		Return([]byte(builderInspectOutput), nil)
	mockDocker.On("ServerVersionJSON", mock.Anything).
		Return([]byte(nil), errors.New("Cannot connect to the Docker daemon"))

	cfg := builderConfig(t)
	err := ExecuteBuilderInspect(context.Background(), cfg, mockDocker, "ci-builder")
	require.NoError(t, err, "An unreachable daemon should not fail the inspect")

	report := readBuilderReport(t, cfg.OutputFile)
	assert.NotContains(t, report, "docker_client_version", "Engine versions should be omitted when the probe fails")
	assert.NotContains(t, report, "docker_server_version")
}

func TestExecuteBuilderRemove(t *testing.T) {
	mockDocker := healthyBuildx()
	mockDocker.On("Run", mock.Anything, "buildx", "rm", "ci-builder").
		Return([]byte(nil), nil).Once()

	err := ExecuteBuilderRemove(context.Background(), &contract.Config{}, mockDocker, "ci-builder")
	assert.NoError(t, err, "ExecuteBuilderRemove should not fail")
	mockDocker.AssertExpectations(t)
}

func TestExecuteBuilderUnavailable(t *testing.T) {
	mockDocker := &contract.MockDockerClient{}
	mockDocker.On("BuildxVersion", mock.Anything).
		Return("", errors.New("docker: 'buildx' is not a docker command"))

	err := ExecuteBuilderInspect(context.Background(), builderConfig(t), mockDocker, "ci-builder")
	require.Error(t, err, "Builder commands require buildx")
	assert.Contains(t, err.Error(), "docker buildx is not available")
}

func TestExecuteBuilderVersionTooOld(t *testing.T) {
	mockDocker := &contract.MockDockerClient{}
	mockDocker.On("BuildxVersion", mock.Anything).
		Return("github.com/docker/buildx v0.7.1 05846896", nil)

	err := ExecuteBuilderRemove(context.Background(), &contract.Config{}, mockDocker, "ci-builder")
	require.Error(t, err, "Builder commands reject an outdated buildx")
	assert.Contains(t, err.Error(), "older than the required")
}
