package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizeVersion verifies that leading and trailing v characters are
// stripped and that prefixed and bare inputs normalize to the same spec.
func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"leading v", "v0.4.1", "0.4.1"},
		{"no prefix", "0.4.1", "0.4.1"},
		{"trailing v", "0.4.1v", "0.4.1"},
		{"both ends", "v0.4.1v", "0.4.1"},
		{"double leading v", "vv1.2.3", "1.2.3"},
		{"prerelease suffix", "v1.2.3-rc.1", "1.2.3-rc.1"},
		{"whitespace", "  v2.0.0 ", "2.0.0"},
		{"symbolic untouched", "latest", "latest"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeVersion(tt.input))
		})
	}
}

// TestNormalizeVersionEquivalence checks the prefix-presence property:
// the same version with and without the v prefix yields an equal result.
func TestNormalizeVersionEquivalence(t *testing.T) {
	versions := []string{"0.4.1", "1.0.0", "10.20.30", "1.2.3-beta.2"}
	for _, v := range versions {
		assert.Equal(t, NormalizeVersion(v), NormalizeVersion("v"+v))
		assert.Equal(t, v, NormalizeVersion("v"+v))
	}
}

func TestIsSemverLike(t *testing.T) {
	valid := []string{"0.0.1", "1.2.3", "10.20.30", "1.2.3-rc.1", "1.2.3+build.5", "1.2.3-alpha+001"}
	for _, v := range valid {
		assert.True(t, IsSemverLike(v), "expected %q to be semver-like", v)
	}

	invalid := []string{"", "latest", "1.2", "1", "v1.2.3", "1.2.3.4", "abc1234"}
	for _, v := range invalid {
		assert.False(t, IsSemverLike(v), "expected %q to not be semver-like", v)
	}
}

func TestIsCommitSHA(t *testing.T) {
	valid := []string{"abc1234", "2b03339", "0123456789abcdef0123456789abcdef01234567"}
	for _, v := range valid {
		assert.True(t, IsCommitSHA(v), "expected %q to be SHA-like", v)
	}

	invalid := []string{"", "abc123", "xyz1234", "ABC1234", "0123456789abcdef0123456789abcdef012345678"}
	for _, v := range invalid {
		assert.False(t, IsCommitSHA(v), "expected %q to not be SHA-like", v)
	}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "buildx-0.12.1-linux-amd64", CacheKey("buildx", "0.12.1", "linux-amd64"))
	assert.Equal(t, "compose-2.24.0-linux-armv7", CacheKey("compose", "2.24.0", "linux-armv7"))
}
