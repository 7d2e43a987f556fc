package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

func sampleBuilder() schema.BuilderInfo {
	return schema.BuilderInfo{
		Name:          "tooldock-9f31c2aa",
		Driver:        "docker-container",
		Status:        "running",
		Endpoint:      "unix:///var/run/docker.sock",
		BuildKitImage: "v0.13.2",
	}
}

func TestWriteBuilderResultsText(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut}

	var buf bytes.Buffer
	err := WriteBuilderResults(&buf, sampleBuilder(), "27.0.3", "27.0.3", cfg)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Name:")
	assert.Contains(t, output, "tooldock-9f31c2aa")
	assert.Contains(t, output, "docker-container")
	assert.Contains(t, output, "Running")
	assert.Contains(t, output, "unix:///var/run/docker.sock")
	assert.Contains(t, output, "v0.13.2")
	assert.Contains(t, output, "Docker Client:")
	assert.Contains(t, output, "27.0.3")
}

func TestWriteBuilderResultsTextSkipsEmptyFields(t *testing.T) {
	info := sampleBuilder()
	info.Endpoint = ""
	info.BuildKitImage = ""

	cfg := &contract.Config{Output: schema.TextOut}

	var buf bytes.Buffer
	err := WriteBuilderResults(&buf, info, "", "", cfg)
	require.NoError(t, err)

	output := buf.String()
	assert.NotContains(t, output, "Endpoint:")
	assert.NotContains(t, output, "BuildKit:")
	assert.NotContains(t, output, "Docker Client:")
	assert.Contains(t, output, "Name:")
}

func TestWriteBuilderResultsJSON(t *testing.T) {
	cfg := &contract.Config{Output: schema.JSONOut}

	var buf bytes.Buffer
	err := WriteBuilderResults(&buf, sampleBuilder(), "27.0.3", "26.1.4", cfg)
	require.NoError(t, err)

	var result map[string]any
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)

	assert.Equal(t, "Running", result["status"])
	assert.Equal(t, "27.0.3", result["docker_client_version"])
	assert.Equal(t, "26.1.4", result["docker_server_version"])

	builder, ok := result["builder"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tooldock-9f31c2aa", builder["name"])
	assert.Equal(t, "docker-container", builder["driver"])
}

func TestWriteBuilderResultsCSV(t *testing.T) {
	cfg := &contract.Config{Output: schema.CSVOut}

	var buf bytes.Buffer
	err := WriteBuilderResults(&buf, sampleBuilder(), "27.0.3", "27.0.3", cfg)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2) // header + 1 row

	assert.Contains(t, lines[0], "name")
	assert.Contains(t, lines[0], "status")
	assert.Contains(t, lines[1], "tooldock-9f31c2aa")
	assert.Contains(t, lines[1], "Running")
}

func TestWriteBuilderResultsStatusLabels(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected string
	}{
		{name: "running builder", status: "running", expected: "Running"},
		{name: "bootstrapping builder", status: "starting", expected: "Starting"},
		{name: "stopped builder", status: "inactive", expected: "Inactive"},
		{name: "broken builder", status: "errored", expected: "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := sampleBuilder()
			info.Status = tt.status
			cfg := &contract.Config{Output: schema.CSVOut}

			var buf bytes.Buffer
			err := WriteBuilderResults(&buf, info, "", "", cfg)
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}
