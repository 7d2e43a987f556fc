package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tooldock/tooldock/core"
)

// installCmd runs the full acquisition flow and installs the binary.
var installCmd = &cobra.Command{
	Use:   "install <tool> [version]",
	Short: "Download, cache and install a tool binary",
	Long: `Resolve the requested version, consult the two-tier artifact cache, and
install the binary onto the job PATH.

On a cache miss the release archive is downloaded from GitHub, extracted,
and both cache tiers are populated before installation.

Examples:
  # Install the latest buildx release
  tooldock install buildx

  # Install a pinned compose version as a docker CLI plugin
  tooldock install compose v2.24.5 --plugin

  # Install a tool outside the catalog
  tooldock install mytool 1.0.0 --org myorg --repo mytool`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteToolInstall(rootCtx, cfg)
	},
}

// fetchCmd populates the cache without installing anything.
var fetchCmd = &cobra.Command{
	Use:   "fetch <tool> [version]",
	Short: "Download a tool release into the artifact cache",
	Long: `Run the acquisition flow up to cache population and stop before
installation. Useful for warming the cache in a setup job so later jobs
hit the local or remote tier.

Examples:
  # Warm the cache with the latest buildx release
  tooldock fetch buildx

  # Warm the cache with a pinned version
  tooldock fetch compose 2.24.5`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteToolFetch(rootCtx, cfg)
	},
}

// resolveCmd resolves a version spec without downloading anything.
var resolveCmd = &cobra.Command{
	Use:   "resolve <tool> [version]",
	Short: "Resolve a requested version to a concrete release",
	Long: `Resolve a requested version ('latest', a channel name, an exact version,
or a commit SHA) to the concrete version spec and download URL, without
touching the cache or downloading the release.

Concrete versions resolve locally; symbolic names consult the release
manifest.

Examples:
  # Resolve the latest buildx release
  tooldock resolve buildx latest

  # Show the download URL for a pinned version as JSON
  tooldock resolve buildx v0.12.1 --output json`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteVersionResolve(rootCtx, cfg)
	},
}
