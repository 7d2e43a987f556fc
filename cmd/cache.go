package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tooldock/tooldock/core"
)

// cacheCmd focused on cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the artifact cache (improves acquisition speed)",
	Long: `Manage the two-tier artifact cache that avoids redundant release downloads.

The local tier is a hosted-tool style directory cache keyed by
tool/version/platform. The optional remote tier (S3 or a database) spans
CI runner instances; its absence only degrades the hit rate.

Subcommands:
  status  - Show cache inventory and remote tier state
  clear   - Remove cached artifacts
  export  - Export the inventory as csv/json/parquet
  migrate - Manage the database remote tier schema

Examples:
  # Check cache contents
  tooldock cache status

  # Clear the local tier after a bad download
  tooldock cache clear`,
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache inventory and remote tier details",
	Long: `Show the contents of the local artifact cache and, for database remote
backends, connection and size details of the remote tier.

Use this to:
- Verify which tool versions are already cached
- Monitor cache growth over time
- Debug cache-related issues

Examples:
  # Check cache status
  tooldock cache status

  # Machine-readable inventory
  tooldock cache status --output json`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteCacheStatus(rootCtx, cfg)
	},
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached artifacts",
	Long: `Delete every artifact from the local cache tier. With --remote the
configured remote tier is cleared too.

Use this when:
- A cached artifact may be corrupt or partially written
- Testing acquisition performance without cache
- Reclaiming disk space on long-lived runners

For the database remote tier: SQLite deletes the database file;
MySQL/PostgreSQL drop the cache table.

Examples:
  # Clear the local tier only
  tooldock cache clear

  # Clear local and remote tiers (set connection via env variables)
  TOOLDOCK_REMOTE_BACKEND=database TOOLDOCK_REMOTE_DB_BACKEND=mysql \
    TOOLDOCK_REMOTE_DB_CONNECT="..." tooldock cache clear --remote`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteCacheClear(rootCtx, cfg, viper.GetBool("remote"))
	},
}

// cacheExportCmd exports the cache inventory to a file.
var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the cache inventory as csv, json or parquet",
	Long: `Walk the local cache tier and write its inventory to the configured
output file. Parquet output suits downstream analytics tooling; csv and
json match the columns of 'cache status'.

Examples:
  # Export the inventory to parquet
  tooldock cache export --output parquet --output-file /tmp/cache.parquet

  # Export as csv to stdout
  tooldock cache export --output csv`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteCacheExport(rootCtx, cfg)
	},
}

// cacheMigrateCmd manages the database remote tier schema.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the database remote cache schema",
	Long: `Bring the database remote cache schema to the target version using the
embedded migrations. Requires the database remote backend.

Target version semantics:
  -1 (default) - migrate to the latest version
   0           - roll back every migration
   N           - migrate up or down to version N

Examples:
  # Migrate a PostgreSQL remote tier to the latest schema
  TOOLDOCK_REMOTE_BACKEND=database TOOLDOCK_REMOTE_DB_BACKEND=postgresql \
    TOOLDOCK_REMOTE_DB_CONNECT="host=... dbname=..." tooldock cache migrate`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteCacheMigrate(rootCtx, cfg, viper.GetInt("target-version"))
	},
}
