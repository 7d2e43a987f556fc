package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

// WriteRemoteStatusResults outputs remote cache tier status, dispatching
// based on the output format configured.
func WriteRemoteStatusResults(w io.Writer, status schema.RemoteCacheStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, status); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeRemoteStatusCSV(w, status); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only available through 'tooldock cache export'")
	default:
		// Default to human-readable key/value lines
		return writeRemoteStatusText(w, status)
	}
	return nil
}

// writeRemoteStatusText writes the status as aligned key/value lines.
func writeRemoteStatusText(w io.Writer, status schema.RemoteCacheStatus) error {
	if _, err := fmt.Fprintf(w, "%-14s %s\n", "Backend:", status.Backend); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-14s %t\n", "Connected:", status.Connected); err != nil {
		return err
	}
	if !status.Connected {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%-14s %d\n", "Entries:", status.TotalEntries); err != nil {
		return err
	}
	if status.TotalEntries > 0 {
		if _, err := fmt.Fprintf(w, "%-14s %s\n", "Last Entry:", status.LastEntryTime.Format(DateTimeFormat)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-14s %s\n", "Oldest Entry:", status.OldestEntryTime.Format(DateTimeFormat)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%-14s %s\n", "Table Size:", formatSize(status.TableSizeBytes)); err != nil {
		return err
	}
	return nil
}

// writeRemoteStatusCSV writes the status as a single CSV record.
func writeRemoteStatusCSV(w io.Writer, status schema.RemoteCacheStatus) error {
	header := []string{"backend", "connected", "total_entries", "last_entry_time", "oldest_entry_time", "table_size_bytes"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		rec := []string{
			status.Backend,
			strconv.FormatBool(status.Connected),
			strconv.Itoa(status.TotalEntries),
			status.LastEntryTime.Format(time.RFC3339),
			status.OldestEntryTime.Format(time.RFC3339),
			strconv.FormatInt(status.TableSizeBytes, 10),
		}
		return csvWriter.Write(rec)
	})
}
