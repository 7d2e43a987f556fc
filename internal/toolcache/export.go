package toolcache

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tooldock/tooldock/internal/parquet"
	"github.com/tooldock/tooldock/schema"
)

// ExecuteCacheExport writes the local cache inventory to outputFile in the
// requested format (csv, json or parquet).
func ExecuteCacheExport(root string, mode schema.OutputMode, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	inv, err := Inventory(root)
	if err != nil {
		return fmt.Errorf("failed to read cache inventory: %w", err)
	}

	// Check if there's any data to export
	if inv.TotalCount == 0 {
		return errors.New("no cached artifacts found to export")
	}

	fmt.Printf("Exporting %d cache entries from %s\n", inv.TotalCount, root)

	switch mode {
	case schema.CSVOut:
		if err := exportInventoryCSV(inv, outputFile); err != nil {
			return fmt.Errorf("failed to write CSV export: %w", err)
		}
		fmt.Printf("Exported %d cache records to: %s\n", inv.TotalCount, outputFile)
		return nil

	case schema.JSONOut:
		if err := exportInventoryJSON(inv, outputFile); err != nil {
			return fmt.Errorf("failed to write JSON export: %w", err)
		}
		fmt.Printf("Exported %d cache records to: %s\n", inv.TotalCount, outputFile)
		return nil

	case schema.ParquetOut:
		records := parquet.ConvertCacheRecords(inv.Entries)
		if err := parquet.WriteCacheArtifactsParquet(records, outputFile); err != nil {
			return fmt.Errorf("failed to write cache records: %w", err)
		}
		fmt.Printf("Exported %d cache records to: %s\n", len(records), outputFile)

		fmt.Println("\nExport complete! The Parquet file can be used with:")
		fmt.Println("  - Apache Spark")
		fmt.Println("  - Apache Arrow")
		fmt.Println("  - Pandas (via pyarrow)")
		fmt.Println("  - DuckDB")
		fmt.Println("  - Any other Parquet-compatible tool")
		return nil

	default:
		return fmt.Errorf("unsupported export format: %s. Must be csv, json, or parquet", mode)
	}
}

// exportInventoryCSV writes the inventory entries in CSV format.
func exportInventoryCSV(inv *schema.CacheInventory, outputFile string) error {
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	header := []string{"tool", "version", "platform", "file", "size_bytes", "mod_time"}
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return err
	}
	for _, e := range inv.Entries {
		rec := []string{
			e.Tool,
			e.Version,
			e.Platform,
			e.File,
			strconv.FormatInt(e.SizeBytes, 10),
			e.ModTime.Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			_ = f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// exportInventoryJSON writes the full inventory in indented JSON format.
func exportInventoryJSON(inv *schema.CacheInventory, outputFile string) error {
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(inv); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
