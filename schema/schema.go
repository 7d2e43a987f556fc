// Package schema has configs, models and shared vocabulary for all parts of tooldock.
package schema

import "time"

// Tool identifies a CLI tool that tooldock can acquire from GitHub releases.
// Name is the catalog key and the installed executable name; Org and Repo
// locate the release source.
type Tool struct {
	Name string `json:"name"`
	Org  string `json:"org"`
	Repo string `json:"repo"`
}

// BinaryName returns the executable name for the given OS identifier.
// Windows binaries carry the .exe suffix; everything else is the bare name.
func (t Tool) BinaryName(goos string) string {
	if goos == WindowsOS || goos == NodeWin32 {
		return t.Name + ".exe"
	}
	return t.Name
}

// PluginName returns the docker CLI plugin name for the tool, e.g.
// docker-buildx for buildx. The .exe suffix applies on Windows.
func (t Tool) PluginName(goos string) string {
	name := "docker-" + t.Name
	if goos == WindowsOS || goos == NodeWin32 {
		return name + ".exe"
	}
	return name
}

// ReleaseEntry is a single release record from the remote release manifest.
type ReleaseEntry struct {
	TagName string `json:"tag_name"`
}

// ReleaseManifest maps version strings (concrete tags or channel names such
// as "latest") to release metadata. Fetched fresh on every resolution.
type ReleaseManifest map[string]ReleaseEntry

// ToolRelease is the immutable result of one version resolution: the
// normalized version plus the URLs it was resolved against. Constructed once
// per resolution and threaded through the download flow unchanged.
type ToolRelease struct {
	Tool        Tool   `json:"tool"`
	Requested   string `json:"requested"`
	Version     string `json:"version"`
	ManifestURL string `json:"manifest_url"`
	DownloadURL string `json:"download_url"`
}

// CacheRecord describes one artifact in the local tool cache.
type CacheRecord struct {
	Tool      string    `json:"tool"`
	Version   string    `json:"version"`
	Platform  string    `json:"platform"`
	File      string    `json:"file"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
}

// CacheInventory is the walked state of the local tool cache root.
type CacheInventory struct {
	Root       string        `json:"root"`
	Entries    []CacheRecord `json:"entries"`
	TotalSize  int64         `json:"total_size"`
	TotalCount int           `json:"total_count"`
}

// RemoteCacheStatus reports the state of a database-backed remote cache tier.
type RemoteCacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// BuilderInfo describes a buildx builder instance as reported by
// `docker buildx inspect`.
type BuilderInfo struct {
	Name          string `json:"name"`
	Driver        string `json:"driver"`
	Status        string `json:"status"`
	Endpoint      string `json:"endpoint,omitempty"`
	BuildKitImage string `json:"buildkit_image,omitempty"`
	ConfigFile    string `json:"config_file,omitempty"`
}
