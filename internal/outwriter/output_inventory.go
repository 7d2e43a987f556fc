package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

// WriteInventoryResults outputs the local cache inventory, dispatching based
// on the output format configured.
func WriteInventoryResults(w io.Writer, inv *schema.CacheInventory, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, inv); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeInventoryCSV(w, inv); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only available through 'tooldock cache export'")
	default:
		// Default to human-readable table
		return writeInventoryTable(w, inv, cfg)
	}
	return nil
}

// writeInventoryTable generates and writes the human-readable table.
func writeInventoryTable(w io.Writer, inv *schema.CacheInventory, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Tool", "Version", "Platform", "File", "Size", "Modified"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, e := range inv.Entries {
		data = append(data, []string{
			e.Tool,
			e.Version,
			e.Platform,
			contract.TruncatePath(e.File, GetMaxTableFileWidth(cfg)),
			formatSize(e.SizeBytes),
			e.ModTime.Format(DateTimeFormat),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d cached artifacts (total size: %s)\n", inv.TotalCount, formatSize(inv.TotalSize)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Cache root: %s\n", inv.Root); err != nil {
		return err
	}
	return nil
}

// writeInventoryCSV writes the inventory entries in CSV format. The columns
// match the cache export command so downstream consumers see one shape.
func writeInventoryCSV(w io.Writer, inv *schema.CacheInventory) error {
	header := []string{"tool", "version", "platform", "file", "size_bytes", "mod_time"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, e := range inv.Entries {
			rec := []string{
				e.Tool,
				e.Version,
				e.Platform,
				e.File,
				strconv.FormatInt(e.SizeBytes, 10),
				e.ModTime.Format(time.RFC3339),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
