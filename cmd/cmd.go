package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(builderCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheExportCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Add the builder subcommands to the parent builder command
	builderCmd.AddCommand(builderCreateCmd)
	builderCmd.AddCommand(builderInspectCmd)
	builderCmd.AddCommand(builderRemoveCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("cache-dir", "", "Root directory of the local artifact cache (default ~/"+contract.DefaultDirName+"/"+contract.CacheDirName+")")
	rootCmd.PersistentFlags().String("plugin-dir", "", "Docker CLI plugin directory (default ~/.docker/cli-plugins)")
	rootCmd.PersistentFlags().String("path-file", "", "File collecting PATH additions for the CI job, one directory per line")
	rootCmd.PersistentFlags().String("github-host", schema.DefaultGitHubHost, "Host used in release download URLs")
	rootCmd.PersistentFlags().String("manifest-url", schema.DefaultManifestURLTemplate, "Release manifest URL template")
	rootCmd.PersistentFlags().String("download-url", schema.DefaultDownloadURLTemplate, "Release download URL template")
	rootCmd.PersistentFlags().String("org", "", "GitHub organization for tools outside the catalog")
	rootCmd.PersistentFlags().String("repo", "", "GitHub repository for tools outside the catalog")
	rootCmd.PersistentFlags().String("remote-backend", string(schema.NoneRemote), "Remote cache backend: none or s3 or database")
	rootCmd.PersistentFlags().String("s3-endpoint", "", "S3 endpoint for the s3 remote backend")
	rootCmd.PersistentFlags().String("s3-bucket", "", "S3 bucket for the s3 remote backend")
	rootCmd.PersistentFlags().String("s3-access-key", "", "S3 access key (prefer TOOLDOCK_S3_ACCESS_KEY)")
	rootCmd.PersistentFlags().String("s3-secret-key", "", "S3 secret key (prefer TOOLDOCK_S3_SECRET_KEY)")
	rootCmd.PersistentFlags().String("s3-region", "", "S3 region for the s3 remote backend")
	rootCmd.PersistentFlags().String("s3-use-ssl", "yes", "Use TLS for the s3 remote backend (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("remote-db-backend", string(schema.SQLiteBackend), "Database remote backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("remote-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of subprocess and cache activity")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of installCmd to Viper
	installCmd.Flags().Bool("plugin", false, "Install as a docker CLI plugin instead of a standalone binary")
	installCmd.Flags().String("dest", "", "Destination directory (default: a fresh temp directory)")
	if err := viper.BindPFlags(installCmd.Flags()); err != nil {
		contract.LogFatal("Error binding install flags", err)
	}

	// Bind all flags of cacheClearCmd to Viper
	cacheClearCmd.Flags().Bool("remote", false, "Also clear the configured remote cache tier")
	if err := viper.BindPFlags(cacheClearCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache clear flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}

	// Bind all flags of builderCreateCmd to Viper
	builderCreateCmd.Flags().String("name", "", "Builder name (default: a generated tooldock-{uuid} name)")
	builderCreateCmd.Flags().String("driver", "", "Builder driver (default: docker-container)")
	builderCreateCmd.Flags().String("buildkit-config", "", "Path to a buildkitd.toml passed to the builder")
	builderCreateCmd.Flags().String("buildkitd-flags", "", "Extra BuildKit daemon flags")
	if err := viper.BindPFlags(builderCreateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding builder create flags", err)
	}
}
