package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// LocalDockerClient implements the DockerClient interface by executing the
// local 'docker' binary installed on the machine.
type LocalDockerClient struct{}

var _ DockerClient = &LocalDockerClient{} // Compile-time check

// NewLocalDockerClient creates a new instance of the local docker client.
func NewLocalDockerClient() *LocalDockerClient {
	return &LocalDockerClient{}
}

// Run executes a docker command and returns its stdout.
func (c *LocalDockerClient) Run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "docker", args...)
	log.Debugf("Executing: %v", cmd.Args)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("docker %s failed: %s", strings.Join(args, " "), stderr)
	} else if err != nil {
		return nil, fmt.Errorf("docker command failed: %w. Ensure docker is installed and available on your PATH", err)
	}
	return out, nil
}

// BuildxVersion implements the DockerClient interface.
func (c *LocalDockerClient) BuildxVersion(ctx context.Context) (string, error) {
	out, err := c.Run(ctx, "buildx", "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ServerVersionJSON implements the DockerClient interface.
func (c *LocalDockerClient) ServerVersionJSON(ctx context.Context) ([]byte, error) {
	return c.Run(ctx, "version", "--format", "json")
}
