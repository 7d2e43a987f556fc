package core

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tooldock/tooldock/internal/buildx"
	"github.com/tooldock/tooldock/internal/contract"
	"github.com/tooldock/tooldock/internal/outwriter"
	"github.com/tooldock/tooldock/schema"
)

// ExecuteBuilderCreate provisions a BuildKit builder instance and prints its
// details. It serves as the main entry point for the 'builder create' command.
func ExecuteBuilderCreate(ctx context.Context, cfg *contract.Config, docker contract.DockerClient, opts buildx.CreateBuilderOpts) error {
	client := buildx.NewClient(docker)
	if err := ensureBuildx(ctx, client); err != nil {
		return err
	}
	info, err := client.CreateBuilder(ctx, opts)
	if err != nil {
		return err
	}
	return writeBuilder(ctx, cfg, client, info)
}

// ExecuteBuilderInspect prints the details of an existing builder instance.
// It serves as the main entry point for the 'builder inspect' command.
func ExecuteBuilderInspect(ctx context.Context, cfg *contract.Config, docker contract.DockerClient, name string) error {
	client := buildx.NewClient(docker)
	if err := ensureBuildx(ctx, client); err != nil {
		return err
	}
	info, err := client.InspectBuilder(ctx, name)
	if err != nil {
		return err
	}
	return writeBuilder(ctx, cfg, client, info)
}

// ExecuteBuilderRemove tears down a builder instance and its nodes.
// It serves as the main entry point for the 'builder rm' command.
func ExecuteBuilderRemove(ctx context.Context, _ *contract.Config, docker contract.DockerClient, name string) error {
	client := buildx.NewClient(docker)
	if err := ensureBuildx(ctx, client); err != nil {
		return err
	}
	if err := client.RemoveBuilder(ctx, name); err != nil {
		return err
	}
	fmt.Printf("✅ Removed builder %s\n", name)
	return nil
}

// ensureBuildx guards builder commands behind availability and minimum
// version checks of the buildx plugin.
func ensureBuildx(ctx context.Context, client *buildx.Client) error {
	if !client.IsAvailable(ctx) {
		return errors.New("docker buildx is not available. Run 'tooldock install buildx' first")
	}
	return client.EnsureVersion(ctx, buildx.MinBuildxVersion)
}

// writeBuilder renders builder details, with docker engine versions attached
// when the daemon answers the probe.
func writeBuilder(ctx context.Context, cfg *contract.Config, client *buildx.Client, info schema.BuilderInfo) error {
	clientVersion, serverVersion, err := client.EngineVersions(ctx)
	if err != nil {
		log.Debugf("Engine version probe failed: %v", err)
	}
	writer := outwriter.NewOutWriter()
	return writer.WriteBuilder(info, clientVersion, serverVersion, cfg)
}
