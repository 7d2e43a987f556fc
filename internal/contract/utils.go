package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Builder status label constants.
const (
	RunningValue  = "Running"  // Builder is up and accepting builds
	StartingValue = "Starting" // Builder is bootstrapping
	InactiveValue = "Inactive" // Builder exists but is stopped
	ErrorValue    = "Error"    // Builder failed to start
)

// Color variables for console output.
var (
	RunningColor  = color.New(color.FgGreen, color.Bold) // runningColor represents a healthy builder.
	StartingColor = color.New(color.FgYellow)            // startingColor represents a transitional state, not bold.
	InactiveColor = color.New(color.FgCyan)              // inactiveColor represents informational / stopped signal.
	ErrorColor    = color.New(color.FgRed, color.Bold)   // errorColor represents standard danger.
)

// GetPlainStatus returns a plain text label for a raw builder status string.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "running":
		return RunningValue
	case "starting", "bootstrapping":
		return StartingValue
	case "inactive", "stopped", "created":
		return InactiveValue
	default:
		return ErrorValue
	}
}

// GetColorStatus returns a colored text label for console output (table).
// It uses GetPlainStatus to determine the string, and then applies the appropriate color.
func GetColorStatus(status string) string {
	text := GetPlainStatus(status)

	switch text {
	case RunningValue:
		return RunningColor.Sprint(text)
	case StartingValue:
		return StartingColor.Sprint(text)
	case InactiveValue:
		return InactiveColor.Sprint(text)
	default: // "Error"
		return ErrorColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path and format type. It falls back to os.Stdout on error.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for remote cache storage.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tooldock_cache.db"
	}
	return filepath.Join(homeDir, ".tooldock_cache.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
// Without this check, small maxWidth values could cause slice bounds errors in the truncation calculation.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
