// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"os"

	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and handles output file
// selection, so callers only hand over data and config.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRelease prints a resolved tool release using the configured output format.
func (ow *OutWriter) WriteRelease(release schema.ToolRelease, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteReleaseResults(w, release, cfg)
	}, "Wrote release")
}

// WriteInventory prints the local cache inventory using the configured output format.
func (ow *OutWriter) WriteInventory(inv *schema.CacheInventory, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteInventoryResults(w, inv, cfg)
	}, "Wrote inventory")
}

// WriteBuilder prints builder details plus docker engine versions using the
// configured output format.
func (ow *OutWriter) WriteBuilder(info schema.BuilderInfo, clientVersion, serverVersion string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteBuilderResults(w, info, clientVersion, serverVersion, cfg)
	}, "Wrote builder info")
}

// WriteRemoteStatus prints remote cache tier status using the configured output format.
func (ow *OutWriter) WriteRemoteStatus(status schema.RemoteCacheStatus, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteRemoteStatusResults(w, status, cfg)
	}, "Wrote cache status")
}

// GetMaxTableFileWidth calculates the maximum width for artifact file names
// in table output based on terminal width.
func GetMaxTableFileWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns: Tool, Version, Platform, Size,
	// Modified, plus table borders, separators, and padding.
	baseWidth := 70

	// Calculate available space for the file name
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable file name width
		return 15
	}
	if available > 60 {
		// Maximum width to keep rows scannable
		return 60
	}
	return available
}
