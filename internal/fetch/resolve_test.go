package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tooldock/tooldock/schema"
)

func newManifestServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResolveConcreteVersions(t *testing.T) {
	// Concrete versions must resolve without consulting the manifest.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("manifest should not be fetched for concrete versions")
	}))
	t.Cleanup(server.Close)

	resolver := NewResolver(server.Client(), server.URL)
	ctx := context.Background()

	tests := []struct {
		name      string
		requested string
		expected  string
	}{
		{"concrete version", "2.0.0", "2.0.0"},
		{"v prefix stripped", "v0.4.1", "0.4.1"},
		{"no prefix unchanged", "0.4.1", "0.4.1"},
		{"pre-release suffix", "v1.0.0-rc.1", "1.0.0-rc.1"},
		{"build metadata suffix", "1.0.0+build.5", "1.0.0+build.5"},
		{"short commit sha", "2b03339", "2b03339"},
		{"full commit sha", "2b03339e30f2d1a9cbd3edd2e4d5e4b7a16b1a9c", "2b03339e30f2d1a9cbd3edd2e4d5e4b7a16b1a9c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := resolver.Resolve(ctx, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resolved)
		})
	}
}

func TestResolveNormalizationEquivalence(t *testing.T) {
	resolver := NewResolver(nil, "http://unused.invalid")
	ctx := context.Background()

	withPrefix, err := resolver.Resolve(ctx, "v0.4.1")
	require.NoError(t, err)
	withoutPrefix, err := resolver.Resolve(ctx, "0.4.1")
	require.NoError(t, err)
	assert.Equal(t, withoutPrefix, withPrefix, "prefixed and bare forms must resolve identically")
}

func TestResolveSymbolicVersion(t *testing.T) {
	server := newManifestServer(t, `{"latest": {"tag_name": "v1.2.3"}, "edge": {"tag_name": "v2.0.0-rc.1"}}`)
	resolver := NewResolver(server.Client(), server.URL)
	ctx := context.Background()

	resolved, err := resolver.Resolve(ctx, "latest")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", resolved)

	resolved, err = resolver.Resolve(ctx, "edge")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0-rc.1", resolved)
}

func TestResolveVersionNotFound(t *testing.T) {
	server := newManifestServer(t, `{"latest": {"tag_name": "v1.2.3"}}`)
	resolver := NewResolver(server.Client(), server.URL)

	_, err := resolver.Resolve(context.Background(), "nightly")
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrVersionNotFound)
	assert.Contains(t, err.Error(), "nightly")
}

func TestResolveSymbolicLookupUsesRawKey(t *testing.T) {
	// The manifest key is the raw requested string; normalization applies
	// to the tag that comes back, not the lookup key.
	server := newManifestServer(t, `{"latest": {"tag_name": "v1.2.3"}}`)
	resolver := NewResolver(server.Client(), server.URL)

	_, err := resolver.Resolve(context.Background(), "vlatestv")
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrVersionNotFound)
}

func TestResolveManifestNotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	manifestURL := server.URL + "/releases.json"
	resolver := NewResolver(server.Client(), manifestURL)

	_, err := resolver.Resolve(context.Background(), "latest")
	require.Error(t, err)

	var transportErr *schema.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusNotFound, transportErr.StatusCode)
	assert.Contains(t, transportErr.Error(), manifestURL)
	assert.Contains(t, transportErr.Error(), "404")
}

func TestResolveManifestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	manifestURL := server.URL
	server.Close() // Connections now refuse

	resolver := NewResolver(nil, manifestURL)
	_, err := resolver.Resolve(context.Background(), "latest")
	require.Error(t, err)

	var transportErr *schema.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Error(), manifestURL)
}

func TestResolveInvalidManifestTag(t *testing.T) {
	server := newManifestServer(t, `{"latest": {"tag_name": "definitely-not-a-version"}}`)
	resolver := NewResolver(server.Client(), server.URL)

	_, err := resolver.Resolve(context.Background(), "latest")
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrInvalidVersion)
	assert.Contains(t, err.Error(), "definitely-not-a-version")
}

func TestResolveMalformedManifest(t *testing.T) {
	server := newManifestServer(t, `{"latest": `)
	resolver := NewResolver(server.Client(), server.URL)

	_, err := resolver.Resolve(context.Background(), "latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode release manifest")
}

func TestResolveRelease(t *testing.T) {
	server := newManifestServer(t, `{"latest": {"tag_name": "v1.2.3"}}`)
	resolver := NewResolver(server.Client(), server.URL)

	tool := schema.Tool{Name: "buildx", Org: "docker", Repo: "buildx"}
	release, err := resolver.ResolveRelease(context.Background(), tool, "latest")
	require.NoError(t, err)

	assert.Equal(t, tool, release.Tool)
	assert.Equal(t, "latest", release.Requested)
	assert.Equal(t, "1.2.3", release.Version)
	assert.Equal(t, server.URL, release.ManifestURL)
}
