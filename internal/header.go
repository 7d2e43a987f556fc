package internal

import "fmt"

// LogInstallHeader prints a concise, 2-line header for each acquisition run.
func LogInstallHeader(tool, requested, platform string) {
	// Line 1: what is being acquired
	fmt.Printf("🔧 Tool: %s (Requested: %s)\n", tool, requested)

	// Line 2: the platform the artifact is keyed on
	fmt.Printf("💻 Platform: %s\n", platform)
}

// LogCacheHeader prints a header for cache operations.
func LogCacheHeader(root string, remote string) {
	fmt.Printf("📦 Cache: %s (Remote: %s)\n", root, remote)
}
