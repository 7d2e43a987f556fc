package toolcache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tooldock/tooldock/schema"
)

// Inventory walks the local tool cache root and returns its contents.
// The layout walked is {root}/{tool}/{version}/{platform}/{file}; completion
// markers and stray files at intermediate levels are skipped. Entries come
// back sorted by tool, version, platform and file name.
func Inventory(root string) (*schema.CacheInventory, error) {
	inv := &schema.CacheInventory{Root: root}

	tools, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return inv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read cache root %s: %w", root, err)
	}

	for _, tool := range tools {
		if !tool.IsDir() {
			continue
		}
		toolDir := filepath.Join(root, tool.Name())
		versions, err := os.ReadDir(toolDir)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", toolDir, err)
		}

		for _, version := range versions {
			if !version.IsDir() {
				continue
			}
			versionDir := filepath.Join(toolDir, version.Name())
			platforms, err := os.ReadDir(versionDir)
			if err != nil {
				return nil, fmt.Errorf("cannot read %s: %w", versionDir, err)
			}

			for _, platform := range platforms {
				if !platform.IsDir() {
					continue
				}
				platformDir := filepath.Join(versionDir, platform.Name())
				files, err := os.ReadDir(platformDir)
				if err != nil {
					return nil, fmt.Errorf("cannot read %s: %w", platformDir, err)
				}

				for _, file := range files {
					if file.IsDir() {
						continue
					}
					info, err := file.Info()
					if err != nil {
						return nil, fmt.Errorf("cannot stat %s: %w", filepath.Join(platformDir, file.Name()), err)
					}
					inv.Entries = append(inv.Entries, schema.CacheRecord{
						Tool:      tool.Name(),
						Version:   version.Name(),
						Platform:  platform.Name(),
						File:      file.Name(),
						SizeBytes: info.Size(),
						ModTime:   info.ModTime(),
					})
					inv.TotalSize += info.Size()
				}
			}
		}
	}

	inv.TotalCount = len(inv.Entries)
	return inv, nil
}
