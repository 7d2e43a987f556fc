package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// RemoteBackend represents the remote cache tier implementation.
	RemoteBackend string

	// DatabaseBackend represents the database engine behind the database
	// remote cache tier.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All remote cache backends supported.
const (
	NoneRemote     RemoteBackend = "none" // default
	S3Remote       RemoteBackend = "s3"
	DatabaseRemote RemoteBackend = "database"
)

// All database backends supported by the database remote cache.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// OS identifiers. Node-style aliases are accepted on input so release-asset
// naming stays compatible with manifests produced for other toolchains.
const (
	WindowsOS = "windows"
	LinuxOS   = "linux"
	DarwinOS  = "darwin"
	NodeWin32 = "win32"
)

// Release hosting defaults.
const (
	// DefaultGitHubHost is the host used in download URL templates.
	DefaultGitHubHost = "github.com"

	// DefaultManifestURLTemplate locates the JSON release manifest for a
	// tool. {org} and {repo} are substituted from the tool catalog.
	DefaultManifestURLTemplate = "https://raw.githubusercontent.com/{org}/{repo}/master/.github/releases.json"

	// DefaultDownloadURLTemplate builds the release asset URL. {host},
	// {org}, {repo}, {version} and {filename} are substituted at download
	// time; the tag is always the v-prefixed form of the version spec.
	DefaultDownloadURLTemplate = "https://{host}/{org}/{repo}/releases/download/v{version}/{filename}"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidRemoteBackends lists all valid remote cache backends.
var ValidRemoteBackends = map[RemoteBackend]struct{}{
	NoneRemote:     {},
	S3Remote:       {},
	DatabaseRemote: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// KnownTools is the built-in tool catalog. Tools outside the catalog are
// reachable through the --org/--repo flags.
var KnownTools = map[string]Tool{
	"buildx":  {Name: "buildx", Org: "docker", Repo: "buildx"},
	"compose": {Name: "compose", Org: "docker", Repo: "compose"},
}

// LookupTool returns the catalog entry for name, or a synthesized Tool when
// org and repo are supplied for an uncataloged tool.
func LookupTool(name, org, repo string) (Tool, bool) {
	if tool, ok := KnownTools[name]; ok {
		// Explicit org/repo flags override the catalog entry.
		if org != "" {
			tool.Org = org
		}
		if repo != "" {
			tool.Repo = repo
		}
		return tool, true
	}
	if org == "" || repo == "" {
		return Tool{}, false
	}
	return Tool{Name: name, Org: org, Repo: repo}, true
}
