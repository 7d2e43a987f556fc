package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tooldock/tooldock/core"
	"github.com/tooldock/tooldock/internal/buildx"
	"github.com/tooldock/tooldock/internal/contract"
)

// builderCmd focused on buildx builder lifecycle management.
var builderCmd = &cobra.Command{
	Use:   "builder",
	Short: "Manage buildx builder instances",
	Long: `Create, inspect and remove BuildKit builder instances through the docker
buildx CLI. Requires a buildx plugin of at least version ` + buildx.MinBuildxVersion + `;
run 'tooldock install buildx' to get one.

Subcommands:
  create  - Provision and bootstrap a builder
  inspect - Show details of an existing builder
  rm      - Tear a builder down

Examples:
  # Create a docker-container builder with a generated name
  tooldock builder create

  # Remove it again
  tooldock builder rm tooldock-<uuid>`,
}

// builderCreateCmd provisions a new builder instance.
var builderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Provision and bootstrap a BuildKit builder",
	Long: `Run 'docker buildx create --bootstrap' with the configured driver and an
optional buildkitd.toml, then inspect and print the result.

Generated builder names use the tooldock-{uuid} convention so CI jobs can
create disposable builders without colliding.

Examples:
  # Default docker-container builder
  tooldock builder create

  # Named builder with a BuildKit config file
  tooldock builder create --name ci-builder --buildkit-config ./buildkitd.toml`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		opts := buildx.CreateBuilderOpts{
			Name:          viper.GetString("name"),
			Driver:        viper.GetString("driver"),
			BuildKitFlags: viper.GetString("buildkitd-flags"),
		}
		if configPath := viper.GetString("buildkit-config"); configPath != "" {
			content, err := os.ReadFile(configPath)
			if err != nil {
				return fmt.Errorf("cannot read buildkit config %s: %w", configPath, err)
			}
			opts.BuildKitConfig = string(content)
		}
		return core.ExecuteBuilderCreate(rootCtx, cfg, contract.NewLocalDockerClient(), opts)
	},
}

// builderInspectCmd shows builder details.
var builderInspectCmd = &cobra.Command{
	Use:   "inspect <name>",
	Short: "Show details of a builder instance",
	Long: `Parse 'docker buildx inspect' output for the named builder and print its
driver, status and endpoint, together with docker engine versions when
the daemon answers the probe.

Examples:
  # Inspect a builder
  tooldock builder inspect ci-builder

  # Machine-readable details
  tooldock builder inspect ci-builder --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional argument is a builder name, not a tool name.
		return sharedSetup(rootCtx, cmd, nil)
	},
	RunE: func(_ *cobra.Command, args []string) error {
		return core.ExecuteBuilderInspect(rootCtx, cfg, contract.NewLocalDockerClient(), args[0])
	},
}

// builderRemoveCmd tears a builder down.
var builderRemoveCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a builder instance and its nodes",
	Long: `Run 'docker buildx rm' for the named builder.

Examples:
  # Remove a builder created earlier in the job
  tooldock builder rm ci-builder`,
	Args:    cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return sharedSetup(rootCtx, cmd, nil)
	},
	RunE: func(_ *cobra.Command, args []string) error {
		return core.ExecuteBuilderRemove(rootCtx, cfg, contract.NewLocalDockerClient(), args[0])
	},
}
