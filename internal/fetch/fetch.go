// Package fetch resolves tool release versions and downloads release archives.
//
// Resolution consults a remote JSON manifest for symbolic versions such as
// "latest". Downloads are single-shot: a failed transfer is surfaced
// immediately with no retry.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tooldock/tooldock/schema"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests.
	DefaultUserAgent = "tooldock/1.0"
)

// NewHTTPClient returns the HTTP client used for manifest and archive fetches.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Allow up to 10 redirects
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

// Downloader fetches release archives and unpacks them into a fresh
// temporary directory. Temp files are not cleaned up on failure.
type Downloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader creates a new downloader. A nil client falls back to the
// package default.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = NewHTTPClient()
	}
	return &Downloader{
		client:    client,
		userAgent: DefaultUserAgent,
	}
}

// FetchAndExtract downloads the archive at downloadURL to a temporary
// location and unpacks it according to its extension: ZIP for .zip archives,
// gzip-compressed tarball otherwise. It returns the extraction root.
func (d *Downloader) FetchAndExtract(ctx context.Context, downloadURL string) (string, error) {
	name, err := archiveName(downloadURL)
	if err != nil {
		return "", err
	}

	tmpDir, err := os.MkdirTemp("", "tooldock-fetch-")
	if err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	archivePath := filepath.Join(tmpDir, name)
	if err := d.downloadToFile(ctx, downloadURL, archivePath); err != nil {
		return "", err
	}

	extractRoot := filepath.Join(tmpDir, "extracted")
	if err := os.MkdirAll(extractRoot, 0o755); err != nil {
		return "", fmt.Errorf("create extract dir: %w", err)
	}

	if strings.HasSuffix(name, ".zip") {
		err = extractZip(archivePath, extractRoot)
	} else {
		err = extractTarGz(archivePath, extractRoot)
	}
	if err != nil {
		return "", &schema.ExtractionError{Archive: archivePath, Err: err}
	}

	return extractRoot, nil
}

// downloadToFile performs a single download attempt. There is no retry.
func (d *Downloader) downloadToFile(ctx context.Context, downloadURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	log.Debugf("Downloading %s", downloadURL)
	resp, err := d.client.Do(req)
	if err != nil {
		return &schema.TransportError{URL: downloadURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &schema.TransportError{URL: downloadURL, StatusCode: resp.StatusCode}
	}

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write archive file: %w", err)
	}
	return nil
}

// archiveName infers the archive file name from a download URL.
func archiveName(downloadURL string) (string, error) {
	parsed, err := url.Parse(downloadURL)
	if err != nil {
		return "", fmt.Errorf("parse download url: %w", err)
	}
	base := path.Base(parsed.Path)
	if base == "." || base == "" || base == "/" {
		return "", fmt.Errorf("infer archive name from url: %s", downloadURL)
	}
	return base, nil
}
