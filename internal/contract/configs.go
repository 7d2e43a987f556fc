package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tooldock/tooldock/schema"
)

// Default values for configuration.
const (
	DefaultWidth   = 0 // 0 = auto-detect
	MaxWidth       = 500
	DefaultDirName = ".tooldock"
	CacheDirName   = "cache"
)

// Config holds the runtime configuration for tool installation.
// This struct remains the "final, validated" config.
type Config struct {
	Tool             schema.Tool
	RequestedVersion string

	CacheDir   string // Root of the local artifact cache
	InstallDir string // Empty means install into a fresh temp directory
	PluginDir  string // Docker CLI plugin directory
	PathFile   string // Optional file that collects PATH additions, one per line

	GitHubHost  string
	ManifestURL string
	DownloadURL string // Release download URL template

	RemoteBackend schema.RemoteBackend
	S3Endpoint    string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string // Please use env var as this is plaintext
	S3Region      string
	S3UseSSL      bool

	RemoteDBBackend schema.DatabaseBackend
	RemoteDBConnect string // Please use env var as this is plaintext

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	InstallAsPlugin bool
	UseColors       bool // Enable colored labels in table output
	Debug           bool // Enable debug logging of subprocess and HTTP activity
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	ToolNameStr string
	VersionStr  string

	// --- Fields from rootCmd.PersistentFlags() ---
	CacheDir        string `mapstructure:"cache-dir"`
	PluginDir       string `mapstructure:"plugin-dir"`
	PathFile        string `mapstructure:"path-file"`
	GitHubHost      string `mapstructure:"github-host"`
	ManifestURL     string `mapstructure:"manifest-url"`
	DownloadURL     string `mapstructure:"download-url"`
	RemoteBackend   string `mapstructure:"remote-backend"`
	S3Endpoint      string `mapstructure:"s3-endpoint"`
	S3Bucket        string `mapstructure:"s3-bucket"`
	S3AccessKey     string `mapstructure:"s3-access-key"`
	S3SecretKey     string `mapstructure:"s3-secret-key"`
	S3Region        string `mapstructure:"s3-region"`
	S3UseSSL        string `mapstructure:"s3-use-ssl"`
	RemoteDBBackend string `mapstructure:"remote-db-backend"`
	RemoteDBConnect string `mapstructure:"remote-db-connect"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
	Debug           bool   `mapstructure:"debug"`

	// --- Fields from installCmd.Flags() ---
	Org    string `mapstructure:"org"`
	Repo   string `mapstructure:"repo"`
	Plugin bool   `mapstructure:"plugin"`
	Dest   string `mapstructure:"dest"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateRemoteConfigs(cfg, input); err != nil {
		return err
	}
	if err := resolveToolAndDirs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("remote-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("remote-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.PathFile = input.PathFile
	cfg.GitHubHost = input.GitHubHost
	cfg.ManifestURL = input.ManifestURL
	cfg.DownloadURL = input.DownloadURL
	cfg.InstallAsPlugin = input.Plugin
	cfg.Debug = input.Debug

	if cfg.GitHubHost == "" {
		cfg.GitHubHost = schema.DefaultGitHubHost
	}
	if cfg.ManifestURL == "" {
		cfg.ManifestURL = schema.DefaultManifestURLTemplate
	}
	if cfg.DownloadURL == "" {
		cfg.DownloadURL = schema.DefaultDownloadURLTemplate
	}

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Width Validation ---
	if input.Width < 0 || input.Width > MaxWidth {
		return fmt.Errorf("width must be between 0 and %d (received %d)", MaxWidth, input.Width)
	}
	cfg.Width = input.Width

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	return nil
}

// validateRemoteConfigs validates the remote cache backend configuration.
func validateRemoteConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.RemoteBackend = schema.RemoteBackend(strings.ToLower(input.RemoteBackend))
	if _, ok := schema.ValidRemoteBackends[cfg.RemoteBackend]; !ok {
		return fmt.Errorf("invalid remote backend '%s'. must be none, s3, database", input.RemoteBackend)
	}

	switch cfg.RemoteBackend {
	case schema.S3Remote:
		if input.S3Endpoint == "" {
			return fmt.Errorf("s3-endpoint is required when using %s backend", cfg.RemoteBackend)
		}
		if input.S3Bucket == "" {
			return fmt.Errorf("s3-bucket is required when using %s backend", cfg.RemoteBackend)
		}
		cfg.S3Endpoint = input.S3Endpoint
		cfg.S3Bucket = input.S3Bucket
		cfg.S3AccessKey = input.S3AccessKey
		cfg.S3SecretKey = input.S3SecretKey
		cfg.S3Region = input.S3Region

		useSSL, err := ParseBoolString(input.S3UseSSL)
		if err != nil {
			return fmt.Errorf("invalid --s3-use-ssl value: %w", err)
		}
		cfg.S3UseSSL = useSSL
	case schema.DatabaseRemote:
		cfg.RemoteDBBackend = schema.DatabaseBackend(strings.ToLower(input.RemoteDBBackend))
		if _, ok := schema.ValidDatabaseBackends[cfg.RemoteDBBackend]; !ok {
			return fmt.Errorf("invalid remote db backend '%s'. must be sqlite, mysql, postgresql", input.RemoteDBBackend)
		}
		cfg.RemoteDBConnect = input.RemoteDBConnect
		if err := ValidateDatabaseConnectionString(cfg.RemoteDBBackend, cfg.RemoteDBConnect); err != nil {
			return err
		}
	}

	return nil
}

// resolveToolAndDirs resolves the requested tool from the catalog and expands
// directory defaults relative to the user's home directory.
func resolveToolAndDirs(cfg *Config, input *ConfigRawInput) error {
	// Commands without a tool argument (cache, builder) skip tool resolution.
	if input.ToolNameStr != "" {
		tool, ok := schema.LookupTool(input.ToolNameStr, input.Org, input.Repo)
		if !ok {
			return fmt.Errorf("unknown tool '%s'. provide --org and --repo for tools outside the catalog", input.ToolNameStr)
		}
		cfg.Tool = tool
	}

	cfg.RequestedVersion = strings.TrimSpace(input.VersionStr)
	if cfg.RequestedVersion == "" {
		cfg.RequestedVersion = "latest"
	}

	cacheDir := input.CacheDir
	if cacheDir == "" {
		cacheDir = GetDefaultCacheDir()
	}
	absCacheDir, err := filepath.Abs(cacheDir)
	if err != nil {
		return err
	}
	cfg.CacheDir = absCacheDir

	cfg.InstallDir = input.Dest

	cfg.PluginDir = input.PluginDir
	if cfg.PluginDir == "" {
		cfg.PluginDir = GetDefaultPluginDir()
	}

	return nil
}

// GetDefaultCacheDir returns the default root directory for the local artifact cache.
func GetDefaultCacheDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(DefaultDirName, CacheDirName)
	}
	return filepath.Join(homeDir, DefaultDirName, CacheDirName)
}

// GetDefaultPluginDir returns the default Docker CLI plugin directory.
func GetDefaultPluginDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".docker", "cli-plugins")
	}
	return filepath.Join(homeDir, ".docker", "cli-plugins")
}
