// Package internal has helpers that are only useful within the tooldock runtime.
package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies src to dst with the given mode, creating parent
// directories as needed. Writes are plain copies, not atomic renames;
// concurrent writers to the same destination race with last-writer-wins
// semantics.
func CopyFile(src, dst string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("cannot create directory for %s: %w", dst, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open source file %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("cannot create destination file %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("cannot copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("cannot finalize %s: %w", dst, err)
	}
	return nil
}

// CopyDir copies the regular files under srcDir into dstDir, preserving the
// relative layout. Symlinks and other non-regular entries are skipped.
func CopyDir(srcDir, dstDir string) error {
	return filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		return CopyFile(path, filepath.Join(dstDir, rel), info.Mode().Perm())
	})
}

// FirstRegularFile returns the path of the first regular file found under
// dir whose base name matches name. Used to locate an extracted binary
// inside an archive's directory tree.
func FirstRegularFile(dir, name string) (string, error) {
	var found string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() && filepath.Base(path) == name {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("file %s not found under %s", name, dir)
	}
	return found, nil
}
