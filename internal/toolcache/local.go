package toolcache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tooldock/tooldock/internal"
	"github.com/tooldock/tooldock/internal/contract"
)

// DirToolCache is the directory-backed local tool cache tier. Layout:
// {root}/{name}/{version}/{platform}/ holds the registered files, with a
// sibling {platform}.complete marker written after registration finishes.
type DirToolCache struct {
	root string
}

var _ contract.LocalToolCache = &DirToolCache{} // Compile-time check

// NewDirToolCache returns a local tier rooted at root. The root is created
// lazily on the first Register.
func NewDirToolCache(root string) *DirToolCache {
	return &DirToolCache{root: root}
}

// Root returns the cache root directory.
func (d *DirToolCache) Root() string {
	return d.root
}

func (d *DirToolCache) entryDir(name, version, platform string) string {
	return filepath.Join(d.root, name, version, platform)
}

func (d *DirToolCache) markerPath(name, version, platform string) string {
	return d.entryDir(name, version, platform) + ".complete"
}

// Find returns the registered directory for the exact key. Entries without
// a completion marker are treated as absent.
func (d *DirToolCache) Find(name, version, platform string) (string, bool) {
	dir := d.entryDir(name, version, platform)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	if _, err := os.Stat(d.markerPath(name, version, platform)); err != nil {
		return "", false
	}
	return dir, true
}

// Register copies the files under sourceDir into the cache and marks the
// entry complete. Registering an existing key overwrites its files.
func (d *DirToolCache) Register(sourceDir, name, version, platform string) (string, error) {
	dir := d.entryDir(name, version, platform)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create tool cache directory %s: %w", dir, err)
	}
	if err := internal.CopyDir(sourceDir, dir); err != nil {
		return "", fmt.Errorf("cannot copy %s into tool cache: %w", sourceDir, err)
	}
	if err := os.WriteFile(d.markerPath(name, version, platform), nil, 0o644); err != nil {
		return "", fmt.Errorf("cannot write completion marker for %s: %w", dir, err)
	}
	return dir, nil
}
