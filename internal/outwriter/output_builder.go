package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

// builderReport pairs builder details with the docker engine versions probed
// alongside the inspect call.
type builderReport struct {
	Builder             schema.BuilderInfo `json:"builder"`
	Status              string             `json:"status"`
	DockerClientVersion string             `json:"docker_client_version,omitempty"`
	DockerServerVersion string             `json:"docker_server_version,omitempty"`
}

// WriteBuilderResults outputs builder details plus docker engine versions,
// dispatching based on the output format configured.
func WriteBuilderResults(w io.Writer, info schema.BuilderInfo, clientVersion, serverVersion string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		report := builderReport{
			Builder:             info,
			Status:              contract.GetPlainStatus(info.Status),
			DockerClientVersion: clientVersion,
			DockerServerVersion: serverVersion,
		}
		if err := writeJSON(w, report); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeBuilderCSV(w, info, clientVersion, serverVersion); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only available through 'tooldock cache export'")
	default:
		// Default to human-readable key/value lines
		return writeBuilderText(w, info, clientVersion, serverVersion)
	}
	return nil
}

// writeBuilderText writes builder details as aligned key/value lines with a
// colored status label.
func writeBuilderText(w io.Writer, info schema.BuilderInfo, clientVersion, serverVersion string) error {
	lines := []struct {
		key   string
		value string
	}{
		{"Name", info.Name},
		{"Driver", info.Driver},
		{"Status", contract.GetColorStatus(info.Status)},
		{"Endpoint", info.Endpoint},
		{"BuildKit", info.BuildKitImage},
		{"Config", info.ConfigFile},
		{"Docker Client", clientVersion},
		{"Docker Server", serverVersion},
	}
	for _, line := range lines {
		if line.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-14s %s\n", line.key+":", line.value); err != nil {
			return err
		}
	}
	return nil
}

// writeBuilderCSV writes builder details as a single CSV record.
func writeBuilderCSV(w io.Writer, info schema.BuilderInfo, clientVersion, serverVersion string) error {
	header := []string{"name", "driver", "status", "endpoint", "buildkit", "docker_client_version", "docker_server_version"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		rec := []string{
			info.Name,
			info.Driver,
			contract.GetPlainStatus(info.Status),
			info.Endpoint,
			info.BuildKitImage,
			clientVersion,
			serverVersion,
		}
		return csvWriter.Write(rec)
	})
}
