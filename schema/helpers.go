package schema

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// semverLikeRegex accepts MAJOR.MINOR.PATCH with optional pre-release
	// and build suffixes (1.2.3, 1.2.3-rc.1, 1.2.3+build5).
	semverLikeRegex = regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?$`)

	// commitSHARegex accepts abbreviated through full git object names.
	commitSHARegex = regexp.MustCompile(`^[0-9a-f]{7,40}$`)
)

// NormalizeVersion strips leading and trailing 'v' characters from a release
// tag. The result is the version spec used consistently for cache keys and
// download URLs: NormalizeVersion("v0.4.1") == NormalizeVersion("0.4.1").
func NormalizeVersion(version string) string {
	return strings.Trim(strings.TrimSpace(version), "v")
}

// IsSemverLike reports whether s looks like a concrete semantic version.
func IsSemverLike(s string) bool {
	return semverLikeRegex.MatchString(s)
}

// IsCommitSHA reports whether s looks like a git commit SHA (7-40 hex chars).
func IsCommitSHA(s string) bool {
	return commitSHARegex.MatchString(s)
}

// CacheKey composes the opaque remote cache key for an artifact.
func CacheKey(name, version, platform string) string {
	return fmt.Sprintf("%s-%s-%s", name, version, platform)
}
