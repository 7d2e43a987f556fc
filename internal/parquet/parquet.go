// Package parquet provides data structures and functions for exporting tool
// cache inventories to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/tooldock/tooldock/schema"
)

// CacheArtifact represents a single cached artifact in the local tool cache.
// This struct maps one entry of the walked cache inventory.
type CacheArtifact struct {
	// Tool is the catalog name of the cached tool
	Tool string `parquet:"tool,snappy"`

	// Version is the normalized release version, without a leading v
	Version string `parquet:"version,snappy"`

	// Platform is the os-arch segment the artifact was cached for
	Platform string `parquet:"platform,snappy"`

	// File is the artifact file name inside the cache directory
	File string `parquet:"file,snappy"`

	// SizeBytes is the artifact size on disk
	SizeBytes int64 `parquet:"size_bytes,snappy"`

	// ModTime is when the artifact was last written (stored as TIMESTAMP with nanosecond precision)
	ModTime time.Time `parquet:"mod_time,snappy"`
}

// WriteCacheArtifactsParquet writes a slice of CacheArtifact structs to a Parquet file.
func WriteCacheArtifactsParquet(data []CacheArtifact, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the CacheArtifact struct tags
	writer := parquet.NewGenericWriter[CacheArtifact](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchCacheArtifacts generates sample CacheArtifact data for demonstration.
func MockFetchCacheArtifacts() []CacheArtifact {
	now := time.Now()

	return []CacheArtifact{
		{
			Tool:      "buildx",
			Version:   "0.12.1",
			Platform:  "linux-amd64",
			File:      "buildx",
			SizeBytes: 31457280,
			ModTime:   now.Add(-2 * time.Hour),
		},
		{
			Tool:      "buildx",
			Version:   "0.12.1",
			Platform:  "linux-armv7",
			File:      "buildx",
			SizeBytes: 27262976,
			ModTime:   now.Add(-24 * time.Hour),
		},
		{
			Tool:      "compose",
			Version:   "2.24.5",
			Platform:  "darwin-arm64",
			File:      "compose",
			SizeBytes: 58720256,
			ModTime:   now.Add(-10 * time.Minute),
		},
	}
}

// ConvertCacheRecords converts schema.CacheRecord to CacheArtifact for Parquet export.
func ConvertCacheRecords(records []schema.CacheRecord) []CacheArtifact {
	result := make([]CacheArtifact, len(records))
	for i, record := range records {
		result[i] = CacheArtifact{
			Tool:      record.Tool,
			Version:   record.Version,
			Platform:  record.Platform,
			File:      record.File,
			SizeBytes: record.SizeBytes,
			ModTime:   record.ModTime,
		}
	}
	return result
}
