package toolcache

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// packPaths bundles the regular files under the given directories into an
// in-memory gzip tarball. Entry names carry the index of the originating
// path as their first element so unpackPaths can route them back.
func packPaths(paths []string) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	for i, root := range paths {
		prefix := strconv.Itoa(i)
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			hdr := &tar.Header{
				Name:    prefix + "/" + filepath.ToSlash(rel),
				Mode:    int64(info.Mode().Perm()),
				Size:    info.Size(),
				ModTime: info.ModTime(),
			}
			if err := tw.WriteHeader(hdr); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			_, err = io.Copy(tw, f)
			_ = f.Close()
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("cannot bundle %s: %w", root, err)
		}
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unpackPaths restores a bundle produced by packPaths into the given
// directories. Entries with an out-of-range path index or a name escaping
// its directory are rejected.
func unpackPaths(data []byte, paths []string) error {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("cannot read bundle: %w", err)
	}
	defer func() { _ = gr.Close() }()

	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("cannot read bundle entry: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		idxStr, rel, ok := strings.Cut(hdr.Name, "/")
		if !ok {
			return fmt.Errorf("malformed bundle entry name: %s", hdr.Name)
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 || idx >= len(paths) {
			return fmt.Errorf("bundle entry %s does not map to a restore path", hdr.Name)
		}

		target := filepath.Join(paths[idx], filepath.FromSlash(rel))
		if !strings.HasPrefix(target, filepath.Clean(paths[idx])+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path: %s", hdr.Name)
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode))
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, tr); err != nil {
			_ = out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
	}
	return nil
}
