package docker

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/nat"
)

type NodeOptions struct {
	Image      string
	Cmd        []string
	Env        []string
	RPCPort    int
	StreamLogs bool
}

// StartNode creates and starts a long-running node container with its RPC
// port published on the host, and returns the container ID.
func (c *Client) StartNode(ctx context.Context, opts NodeOptions) (string, error) {
	port, err := nat.NewPort("tcp", strconv.Itoa(opts.RPCPort))
	if err != nil {
		return "", fmt.Errorf("invalid RPC port %d: %w", opts.RPCPort, err)
	}

	config := &container.Config{
		Image:        opts.Image,
		Cmd:          opts.Cmd,
		Env:          opts.Env,
		ExposedPorts: nat.PortSet{port: struct{}{}},
	}

	hostConfig := &container.HostConfig{
		PortBindings: nat.PortMap{
			port: []nat.PortBinding{{HostIP: "0.0.0.0", HostPort: strconv.Itoa(opts.RPCPort)}},
		},
	}

	resp, err := c.cli.ContainerCreate(ctx, config, hostConfig, nil, nil, "")
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	containerID := resp.ID

	if opts.StreamLogs {
		attachResp, err := c.cli.ContainerAttach(ctx, containerID, container.AttachOptions{
			Stream: true,
			Stdout: true,
			Stderr: true,
		})
		if err != nil {
			_ = c.cli.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true})
			return "", fmt.Errorf("failed to attach to container: %w", err)
		}

		go func() {
			defer attachResp.Close()
			_, _ = stdcopy.StdCopy(os.Stdout, os.Stderr, attachResp.Reader)
		}()
	}

	if err := c.cli.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		_ = c.cli.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true})
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	return containerID, nil
}

// WaitNode blocks until the container stops on its own or ctx is cancelled.
func (c *Client) WaitNode(ctx context.Context, containerID string) error {
	statusCh, errCh := c.cli.ContainerWait(ctx, containerID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("error waiting for container: %w", err)
		}
		return nil
	case status := <-statusCh:
		if status.StatusCode != 0 {
			return fmt.Errorf("container exited with code %d", status.StatusCode)
		}
		return nil
	}
}

// StopNode stops and removes the container.
func (c *Client) StopNode(ctx context.Context, containerID string) error {
	if err := c.cli.ContainerStop(ctx, containerID, container.StopOptions{}); err != nil {
		return fmt.Errorf("failed to stop container: %w", err)
	}

	if err := c.cli.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true}); err != nil {
		return fmt.Errorf("failed to remove container: %w", err)
	}

	return nil
}
