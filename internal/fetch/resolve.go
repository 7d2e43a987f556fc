package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tooldock/tooldock/schema"
)

// Resolver turns a requested version string into a concrete normalized
// version. The release manifest is fetched fresh on every symbolic
// resolution, never cached across calls.
type Resolver struct {
	client      *http.Client
	manifestURL string
	userAgent   string
}

// NewResolver creates a resolver bound to one tool's release manifest URL.
// A nil client falls back to the package default.
func NewResolver(client *http.Client, manifestURL string) *Resolver {
	if client == nil {
		client = NewHTTPClient()
	}
	return &Resolver{
		client:      client,
		manifestURL: manifestURL,
		userAgent:   DefaultUserAgent,
	}
}

// Resolve normalizes requested and returns it directly when it is already a
// concrete semantic version or a commit SHA. Symbolic names are looked up in
// the release manifest under the raw requested string; the entry's tag is
// then normalized and validated.
func (r *Resolver) Resolve(ctx context.Context, requested string) (string, error) {
	normalized := schema.NormalizeVersion(requested)
	if schema.IsSemverLike(normalized) || schema.IsCommitSHA(normalized) {
		return normalized, nil
	}

	manifest, err := r.fetchManifest(ctx)
	if err != nil {
		return "", err
	}

	entry, ok := manifest[requested]
	if !ok {
		return "", fmt.Errorf("%q: %w", requested, schema.ErrVersionNotFound)
	}

	resolved := schema.NormalizeVersion(entry.TagName)
	if !schema.IsSemverLike(resolved) && !schema.IsCommitSHA(resolved) {
		return "", fmt.Errorf("%q: %w", entry.TagName, schema.ErrInvalidVersion)
	}
	return resolved, nil
}

// ResolveRelease resolves requested and returns the release record consumed
// by the download flow.
func (r *Resolver) ResolveRelease(ctx context.Context, tool schema.Tool, requested string) (*schema.ToolRelease, error) {
	version, err := r.Resolve(ctx, requested)
	if err != nil {
		return nil, err
	}
	return &schema.ToolRelease{
		Tool:        tool,
		Requested:   requested,
		Version:     version,
		ManifestURL: r.manifestURL,
	}, nil
}

// fetchManifest retrieves and decodes the release manifest.
func (r *Resolver) fetchManifest(ctx context.Context) (schema.ReleaseManifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.manifestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	log.Debugf("Fetching release manifest %s", r.manifestURL)
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &schema.TransportError{URL: r.manifestURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &schema.TransportError{URL: r.manifestURL, StatusCode: resp.StatusCode}
	}

	var manifest schema.ReleaseManifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("decode release manifest: %w", err)
	}
	return manifest, nil
}
