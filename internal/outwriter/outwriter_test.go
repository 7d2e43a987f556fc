package outwriter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

func TestGetMaxTableFileWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{name: "wide terminal clamps to maximum", width: 200, expected: 60},
		{name: "medium terminal leaves room", width: 100, expected: 30},
		{name: "narrow terminal clamps to minimum", width: 80, expected: 15},
		{name: "tiny terminal clamps to minimum", width: 40, expected: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, GetMaxTableFileWidth(cfg))
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		expected string
	}{
		{name: "zero", size: 0, expected: "0 B"},
		{name: "small", size: 512, expected: "512 B"},
		{name: "kilobytes", size: 1536, expected: "1.5 KiB"},
		{name: "megabytes", size: 52428800, expected: "50 MiB"},
		{name: "negative clamps to zero", size: -1, expected: "0 B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatSize(tt.size))
		})
	}
}

func TestOutWriterWritesToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "release.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outputFile}

	err := NewOutWriter().WriteRelease(sampleRelease(), cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"version": "0.12.1"`)
}

func TestOutWriterWritesToStdout(t *testing.T) {
	// Empty OutputFile selects stdout; the write must not fail.
	cfg := &contract.Config{Output: schema.JSONOut}

	err := NewOutWriter().WriteInventory(sampleInventory(), cfg)
	require.NoError(t, err)
}

func TestOutWriterRejectsUnwritablePath(t *testing.T) {
	cfg := &contract.Config{
		Output:     schema.CSVOut,
		OutputFile: filepath.Join(t.TempDir(), "missing", "deep", "out.csv"),
	}

	err := NewOutWriter().WriteRemoteStatus(sampleRemoteStatus(), cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no such file") || os.IsNotExist(err))
}
