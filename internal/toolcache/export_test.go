package toolcache

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tooldock/tooldock/schema"
)

func TestExecuteCacheExportRequiresOutputFile(t *testing.T) {
	err := ExecuteCacheExport(t.TempDir(), schema.CSVOut, "")
	assert.Error(t, err, "Export without an output file should fail")
	assert.Contains(t, err.Error(), "--output-file is required")
}

func TestExecuteCacheExportEmptyCache(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "out.csv")
	err := ExecuteCacheExport(t.TempDir(), schema.CSVOut, outputFile)
	assert.Error(t, err, "Export of an empty cache should fail")
	assert.Contains(t, err.Error(), "no cached artifacts found")
}

func TestExecuteCacheExportUnsupportedFormat(t *testing.T) {
	root := t.TempDir()
	seedCacheEntry(t, root, "buildx", "0.12.1", "linux-amd64", "buildx.tar.gz", "data")

	outputFile := filepath.Join(t.TempDir(), "out.txt")
	err := ExecuteCacheExport(root, schema.TextOut, outputFile)
	assert.Error(t, err, "Text is not an export format")
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestExecuteCacheExportCSV(t *testing.T) {
	root := t.TempDir()
	seedCacheEntry(t, root, "buildx", "0.12.1", "linux-amd64", "buildx_0.12.1_linux_amd64.tar.gz", "aaaa")
	seedCacheEntry(t, root, "compose", "2.24.5", "darwin-arm64", "compose_2.24.5_darwin_arm64.tar.gz", "bb")

	outputFile := filepath.Join(t.TempDir(), "out.csv")
	err := ExecuteCacheExport(root, schema.CSVOut, outputFile)
	require.NoError(t, err, "CSV export should not fail")

	f, err := os.Open(outputFile)
	require.NoError(t, err, "Exported file should be readable")
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "Exported file should be valid CSV")
	require.Len(t, records, 3, "Header plus two rows expected")

	assert.Equal(t, []string{"tool", "version", "platform", "file", "size_bytes", "mod_time"}, records[0], "Header mismatch")
	assert.Equal(t, "buildx", records[1][0])
	assert.Equal(t, "0.12.1", records[1][1])
	assert.Equal(t, "linux-amd64", records[1][2])
	assert.Equal(t, "buildx_0.12.1_linux_amd64.tar.gz", records[1][3])
	assert.Equal(t, "4", records[1][4])
	assert.NotEmpty(t, records[1][5], "ModTime column should be populated")
	assert.Equal(t, "compose", records[2][0])
}

func TestExecuteCacheExportJSON(t *testing.T) {
	root := t.TempDir()
	seedCacheEntry(t, root, "buildx", "0.12.1", "linux-amd64", "buildx_0.12.1_linux_amd64.tar.gz", "aaaa")

	outputFile := filepath.Join(t.TempDir(), "out.json")
	err := ExecuteCacheExport(root, schema.JSONOut, outputFile)
	require.NoError(t, err, "JSON export should not fail")

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err, "Exported file should be readable")

	var inv schema.CacheInventory
	require.NoError(t, json.Unmarshal(data, &inv), "Exported file should be valid JSON")
	assert.Equal(t, 1, inv.TotalCount, "One entry expected")
	require.Len(t, inv.Entries, 1)
	assert.Equal(t, "buildx", inv.Entries[0].Tool)
	assert.Equal(t, int64(4), inv.Entries[0].SizeBytes)
}

func TestExecuteCacheExportParquet(t *testing.T) {
	root := t.TempDir()
	seedCacheEntry(t, root, "buildx", "0.12.1", "linux-amd64", "buildx_0.12.1_linux_amd64.tar.gz", "aaaa")

	outputFile := filepath.Join(t.TempDir(), "out.parquet")
	err := ExecuteCacheExport(root, schema.ParquetOut, outputFile)
	require.NoError(t, err, "Parquet export should not fail")

	info, err := os.Stat(outputFile)
	require.NoError(t, err, "Exported file should exist")
	assert.Greater(t, info.Size(), int64(0), "Exported file should not be empty")
}
