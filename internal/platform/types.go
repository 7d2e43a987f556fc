// Package platform provides host platform detection for tool artifact naming.
//
// It detects OS, architecture, and ARM revision details used to build cache
// paths and release artifact names. The package uses gopsutil for kernel
// architecture detection and provides graceful fallback behavior when
// detection fails.
package platform

import (
	"context"
	"fmt"
)

// Info contains platform detection information.
type Info struct {
	OS          string // "linux", "darwin", "windows"
	Arch        string // GOARCH (e.g., "amd64", "arm64", "arm")
	ArchRaw     string // kernel arch (e.g., "x86_64", "armv7l")
	ARMRevision string // "6", "7" when Arch is "arm" and the kernel reveals it
}

// String returns the platform identifier used in cache paths, in the form
// "{os}-{arch}". On 32-bit ARM hosts with a known revision the revision is
// appended, e.g. "linux-armv7".
func (i *Info) String() string {
	if i.Arch == "arm" && i.ARMRevision != "" {
		return fmt.Sprintf("%s-%sv%s", i.OS, i.Arch, i.ARMRevision)
	}
	return fmt.Sprintf("%s-%s", i.OS, i.Arch)
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsARM returns true if the architecture is 32-bit ARM.
func (i *Info) IsARM() bool {
	return i.Arch == "arm"
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
