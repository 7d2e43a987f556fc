package fetch

import (
	"fmt"
	"strings"

	"github.com/tooldock/tooldock/schema"
)

// BuildFilename returns the release asset name for a tool version on the
// given platform, in the form {tool}_{version}_{os}_{arch}{ext}. OS and
// architecture identifiers accept both Go runtime values and Node-style
// aliases ("win32", "x64") and are mapped to canonical release-asset names.
func BuildFilename(toolName, version, osName, arch, armRevision string) string {
	targetOS := mapOS(osName)
	targetArch := mapArch(arch, armRevision)

	extension := ".tar.gz"
	if targetOS == schema.WindowsOS {
		extension = ".zip"
	}
	return fmt.Sprintf("%s_%s_%s_%s%s", toolName, version, targetOS, targetArch, extension)
}

// BuildDownloadURL renders a release download URL template for a single
// asset. An empty template falls back to the package default, in which the
// version segment always carries the "v" tag prefix.
func BuildDownloadURL(template, host string, tool schema.Tool, version, filename string) string {
	if template == "" {
		template = schema.DefaultDownloadURLTemplate
	}
	replacer := strings.NewReplacer(
		"{host}", host,
		"{org}", tool.Org,
		"{repo}", tool.Repo,
		"{version}", version,
		"{filename}", filename,
	)
	return replacer.Replace(template)
}

// RenderManifestURL fills the org/repo placeholders in a manifest URL template.
func RenderManifestURL(template string, tool schema.Tool) string {
	replacer := strings.NewReplacer(
		"{org}", tool.Org,
		"{repo}", tool.Repo,
	)
	return replacer.Replace(template)
}

// mapOS converts OS identifiers to canonical release-asset names.
func mapOS(osName string) string {
	if osName == schema.NodeWin32 {
		return schema.WindowsOS
	}
	return osName
}

// mapArch converts CPU architecture identifiers to canonical release-asset
// names. Unrecognized values pass through unchanged.
func mapArch(arch, armRevision string) string {
	switch arch {
	case "x64":
		return "amd64"
	case "ppc64":
		return "ppc64le"
	case "arm":
		if armRevision != "" {
			return "armv" + armRevision
		}
		return "arm"
	default:
		return arch
	}
}
