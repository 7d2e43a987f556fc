package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

// WriteReleaseResults outputs a resolved tool release, dispatching based on
// the output format configured.
func WriteReleaseResults(w io.Writer, release schema.ToolRelease, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, release); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeReleaseCSV(w, release); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only available through 'tooldock cache export'")
	default:
		// Default to human-readable key/value lines
		return writeReleaseText(w, release)
	}
	return nil
}

// writeReleaseText writes the resolution as aligned key/value lines.
func writeReleaseText(w io.Writer, release schema.ToolRelease) error {
	lines := []struct {
		key   string
		value string
	}{
		{"Tool", release.Tool.Name},
		{"Source", release.Tool.Org + "/" + release.Tool.Repo},
		{"Requested", release.Requested},
		{"Version", release.Version},
		{"Manifest URL", release.ManifestURL},
		{"Download URL", release.DownloadURL},
	}
	for _, line := range lines {
		if line.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-13s %s\n", line.key+":", line.value); err != nil {
			return err
		}
	}
	return nil
}

// writeReleaseCSV writes the resolution as a single CSV record.
func writeReleaseCSV(w io.Writer, release schema.ToolRelease) error {
	header := []string{"tool", "org", "repo", "requested", "version", "manifest_url", "download_url"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		rec := []string{
			release.Tool.Name,
			release.Tool.Org,
			release.Tool.Repo,
			release.Requested,
			release.Version,
			release.ManifestURL,
			release.DownloadURL,
		}
		return csvWriter.Write(rec)
	})
}
