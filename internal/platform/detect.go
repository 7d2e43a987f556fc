package platform

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// armRevisionRegex extracts the revision digit from kernel arch strings
// such as "armv7l" or "armv6l".
var armRevisionRegex = regexp.MustCompile(`^armv(\d+)`)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct{}

var _ Detector = &RealDetector{} // Compile-time check

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect performs platform detection and returns platform information.
// It uses runtime.GOOS and runtime.GOARCH for OS and architecture,
// and gopsutil for the kernel architecture string.
//
// If gopsutil fails to read the kernel architecture, ArchRaw and
// ARMRevision are left empty and detection continues (graceful fallback).
// Artifact names for 32-bit ARM then fall back to the plain "arm" form.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	kernelArch, err := host.KernelArch()
	if err != nil {
		// Check if context was cancelled - this is a hard failure
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		// Graceful fallback for detection failures only
		return info, nil
	}

	info.ArchRaw = strings.TrimSpace(kernelArch)
	if info.Arch == "arm" {
		info.ARMRevision = parseARMRevision(info.ArchRaw)
	}

	return info, nil
}

// parseARMRevision extracts the ARM revision from a kernel arch string.
// Returns an empty string when the revision cannot be determined.
func parseARMRevision(kernelArch string) string {
	matches := armRevisionRegex.FindStringSubmatch(strings.ToLower(kernelArch))
	if len(matches) != 2 {
		return ""
	}
	return matches[1]
}
