// Package buildx drives the docker buildx CLI for builder lifecycle
// management.
package buildx

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
	version "github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/schema"
)

// MinBuildxVersion is the oldest buildx that supports the create flags the
// driver passes. The --bootstrap flag appeared in 0.8.
const MinBuildxVersion = "0.8.0"

// DefaultDriver runs BuildKit inside a container, which accepts a
// buildkitd.toml and daemon flags.
const DefaultDriver = "docker-container"

// builderNamePrefix leads every generated builder name.
const builderNamePrefix = "tooldock-"

// buildxVersionRe extracts the version spec from `docker buildx version`
// output such as "github.com/docker/buildx v0.12.1 2b03339-desktop".
var buildxVersionRe = regexp.MustCompile(`v?(\d+\.\d+\.\d+[^\s]*)`)

// Client wraps a docker CLI handle with buildx builder operations.
type Client struct {
	docker contract.DockerClient
}

// NewClient returns a buildx client over the given docker CLI handle.
func NewClient(docker contract.DockerClient) *Client {
	return &Client{docker: docker}
}

// CreateBuilderOpts controls builder creation. The zero value creates a
// docker-container builder with a generated name and default BuildKit
// settings.
type CreateBuilderOpts struct {
	Name           string // empty generates tooldock-{uuid}
	Driver         string // empty selects DefaultDriver
	BuildKitConfig string // raw buildkitd.toml content, written to a temp file
	BuildKitFlags  string // extra daemon flags passed via --buildkitd-flags
}

// IsAvailable reports whether the docker CLI has a usable buildx plugin.
func (c *Client) IsAvailable(ctx context.Context) bool {
	_, err := c.docker.BuildxVersion(ctx)
	return err == nil
}

// Version returns the installed buildx version spec without a leading v.
func (c *Client) Version(ctx context.Context) (string, error) {
	raw, err := c.docker.BuildxVersion(ctx)
	if err != nil {
		return "", err
	}
	m := buildxVersionRe.FindStringSubmatch(raw)
	if m == nil {
		return "", fmt.Errorf("cannot parse buildx version from %q", raw)
	}
	return schema.NormalizeVersion(m[1]), nil
}

// EnsureVersion fails when the installed buildx is older than minimum.
func (c *Client) EnsureVersion(ctx context.Context, minimum string) error {
	spec, err := c.Version(ctx)
	if err != nil {
		return err
	}
	installed, err := version.NewVersion(spec)
	if err != nil {
		return fmt.Errorf("invalid buildx version %s: %w", spec, err)
	}
	floor, err := version.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum version %s: %w", minimum, err)
	}
	if installed.LessThan(floor) {
		return fmt.Errorf("buildx version %s is older than the required %s. Run 'tooldock install buildx' to upgrade", installed, floor)
	}
	return nil
}

// CreateBuilder creates and bootstraps a builder instance, then inspects it.
func (c *Client) CreateBuilder(ctx context.Context, opts CreateBuilderOpts) (schema.BuilderInfo, error) {
	name := opts.Name
	if name == "" {
		name = builderNamePrefix + uuid.New().String()
	}
	driver := opts.Driver
	if driver == "" {
		driver = DefaultDriver
	}

	args := []string{"buildx", "create", "--name", name, "--driver", driver}

	var configFile string
	if opts.BuildKitConfig != "" {
		path, err := WriteBuildKitConfig(opts.BuildKitConfig)
		if err != nil {
			return schema.BuilderInfo{}, err
		}
		configFile = path
		args = append(args, "--config", path)
	}
	if opts.BuildKitFlags != "" {
		args = append(args, "--buildkitd-flags", opts.BuildKitFlags)
	}
	args = append(args, "--bootstrap")

	if _, err := c.docker.Run(ctx, args...); err != nil {
		return schema.BuilderInfo{}, fmt.Errorf("cannot create builder %s: %w", name, err)
	}
	log.Debugf("Created builder %s with driver %s", name, driver)

	info, err := c.InspectBuilder(ctx, name)
	if err != nil {
		return schema.BuilderInfo{}, err
	}
	info.ConfigFile = configFile
	return info, nil
}

// InspectBuilder parses `docker buildx inspect` output into a BuilderInfo.
// The output is a key/value listing for the builder followed by one block
// per node; the first occurrence of each key wins.
func (c *Client) InspectBuilder(ctx context.Context, name string) (schema.BuilderInfo, error) {
	out, err := c.docker.Run(ctx, "buildx", "inspect", name)
	if err != nil {
		return schema.BuilderInfo{}, fmt.Errorf("cannot inspect builder %s: %w", name, err)
	}

	info := schema.BuilderInfo{}
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "Name":
			if info.Name == "" {
				info.Name = value
			}
		case "Driver":
			if info.Driver == "" {
				info.Driver = value
			}
		case "Status":
			if info.Status == "" {
				info.Status = value
			}
		case "Endpoint":
			if info.Endpoint == "" {
				info.Endpoint = value
			}
		case "BuildKit version", "BuildKit":
			if info.BuildKitImage == "" {
				info.BuildKitImage = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return schema.BuilderInfo{}, fmt.Errorf("cannot read inspect output for %s: %w", name, err)
	}
	if info.Name == "" {
		return schema.BuilderInfo{}, fmt.Errorf("builder %s not found in inspect output", name)
	}
	return info, nil
}

// RemoveBuilder removes a builder instance and its nodes.
func (c *Client) RemoveBuilder(ctx context.Context, name string) error {
	if _, err := c.docker.Run(ctx, "buildx", "rm", name); err != nil {
		return fmt.Errorf("cannot remove builder %s: %w", name, err)
	}
	log.Debugf("Removed builder %s", name)
	return nil
}

// EngineVersions probes `docker version --format json` and returns the
// client and server version strings for diagnostics.
func (c *Client) EngineVersions(ctx context.Context) (string, string, error) {
	out, err := c.docker.ServerVersionJSON(ctx)
	if err != nil {
		return "", "", err
	}

	jsonMap := make(map[string]map[string]interface{})
	if err := json.Unmarshal(out, &jsonMap); err != nil {
		return "", "", fmt.Errorf("unable to parse docker version output: %w, output is: %s", err, string(out))
	}
	client, ok := jsonMap["Client"]
	if !ok {
		return "", "", errors.New("docker version output did not have 'Client' field")
	}
	clientVersion, ok := client["Version"].(string)
	if !ok {
		return "", "", errors.New("docker version output did not have 'Client.Version' field")
	}
	server, ok := jsonMap["Server"]
	if !ok {
		return clientVersion, "", errors.New("docker version output did not have 'Server' field")
	}
	serverVersion, ok := server["Version"].(string)
	if !ok {
		return clientVersion, "", errors.New("docker version output did not have 'Server.Version' field")
	}
	return clientVersion, serverVersion, nil
}

// WriteBuildKitConfig writes raw buildkitd.toml content to a temp file and
// returns its path. The file is handed to `buildx create --config` and left
// in place afterwards.
func WriteBuildKitConfig(content string) (string, error) {
	f, err := os.CreateTemp("", "buildkitd-*.toml")
	if err != nil {
		return "", fmt.Errorf("cannot create buildkitd config file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("cannot write buildkitd config: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("cannot finalize buildkitd config: %w", err)
	}
	return f.Name(), nil
}
