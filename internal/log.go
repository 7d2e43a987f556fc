package internal

import (
	"fmt"
	"os"
)

// Warningf reports a non-fatal condition on stderr. Cache tier failures are
// warnings, never errors: a degraded hit rate must not fail the job.
func Warningf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", fmt.Sprintf(format, args...))
}
