package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for version resolution.
var (
	// ErrVersionNotFound indicates the requested version is absent from the
	// release manifest.
	ErrVersionNotFound = errors.New("version not found in release manifest")

	// ErrInvalidVersion indicates the resolved version is neither a
	// semantic-version-like string nor a commit-SHA-like identifier.
	ErrInvalidVersion = errors.New("invalid version")
)

// TransportError reports a failed HTTP interaction: a non-success status or
// a network-level failure on a manifest or binary fetch. The URL and status
// ride along for diagnosability.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ExtractionError reports an archive that could not be unpacked.
type ExtractionError struct {
	Archive string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot extract archive %s: %v", e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
