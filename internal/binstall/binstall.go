// Package binstall places resolved tool binaries into destination
// directories and publishes them on the executable search path.
package binstall

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/tooldock/tooldock/internal"
	"github.com/tooldock/tooldock/schema"
)

// Installer copies tool binaries into place for one tool. goos decides the
// executable naming and permission behavior, so tests can exercise foreign
// platforms without running on them.
type Installer struct {
	tool     schema.Tool
	goos     string
	pathFile string
}

// NewInstaller returns an installer for tool. pathFile, when non-empty,
// names a file that collects PATH additions one directory per line (the CI
// job PATH file); it is injected here rather than read from the
// environment.
func NewInstaller(tool schema.Tool, goos, pathFile string) *Installer {
	return &Installer{tool: tool, goos: goos, pathFile: pathFile}
}

// Install copies binaryPath into {destDir}/{tool}-bin under the platform's
// executable name, marks it executable and publishes the directory on the
// search path. An empty destDir installs under a fresh temp directory.
// Repeated installs into the same destination overwrite. Returns the
// installed binary path.
func (i *Installer) Install(binaryPath, destDir string) (string, error) {
	if destDir == "" {
		tmp, err := os.MkdirTemp("", "tooldock-")
		if err != nil {
			return "", fmt.Errorf("cannot create temp install directory: %w", err)
		}
		destDir = tmp
	}

	dir := filepath.Join(destDir, i.tool.Name+"-bin")
	installed := filepath.Join(dir, i.tool.BinaryName(i.goos))
	if err := internal.CopyFile(binaryPath, installed, 0o755); err != nil {
		return "", err
	}
	if err := i.markExecutable(installed); err != nil {
		return "", err
	}
	if err := i.publishPath(dir); err != nil {
		return "", err
	}
	log.Debugf("Installed %s at %s", i.tool.Name, installed)
	return installed, nil
}

// InstallPlugin copies binaryPath into pluginDir under the docker CLI
// plugin name, docker-{tool}. Chmod and overwrite semantics match Install.
// The search path is left alone; docker discovers plugins by directory.
func (i *Installer) InstallPlugin(binaryPath, pluginDir string) (string, error) {
	installed := filepath.Join(pluginDir, i.tool.PluginName(i.goos))
	if err := internal.CopyFile(binaryPath, installed, 0o755); err != nil {
		return "", err
	}
	if err := i.markExecutable(installed); err != nil {
		return "", err
	}
	log.Debugf("Installed %s as docker CLI plugin at %s", i.tool.Name, installed)
	return installed, nil
}

// markExecutable sets 0755 on POSIX platforms. Windows has no executable
// bit, so the copy alone suffices there.
func (i *Installer) markExecutable(path string) error {
	if i.goos == schema.WindowsOS || i.goos == schema.NodeWin32 {
		return nil
	}
	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("cannot mark %s executable: %w", path, err)
	}
	return nil
}

// publishPath prepends dir to the process PATH, so the installed tool
// shadows any preexisting copy, and appends it to the job PATH file when
// one is configured.
func (i *Installer) publishPath(dir string) error {
	current := os.Getenv("PATH")
	if err := os.Setenv("PATH", dir+string(os.PathListSeparator)+current); err != nil {
		return fmt.Errorf("cannot update PATH: %w", err)
	}

	if i.pathFile != "" {
		f, err := os.OpenFile(i.pathFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open PATH file %s: %w", i.pathFile, err)
		}
		if _, err := fmt.Fprintln(f, dir); err != nil {
			_ = f.Close()
			return fmt.Errorf("cannot append to PATH file %s: %w", i.pathFile, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("cannot finalize PATH file %s: %w", i.pathFile, err)
		}
	}

	log.Debugf("Added %s to PATH", dir)
	return nil
}
