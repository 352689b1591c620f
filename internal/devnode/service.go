package devnode

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/lisaaztec/dev-rel/configs"
	"github.com/lisaaztec/dev-rel/internal/bridge/l1"
	"github.com/lisaaztec/dev-rel/internal/devnode/docker"
	"github.com/lisaaztec/dev-rel/internal/logger"
)

const localImageTag = "bridgenet-devnode:local"

// Service runs a throwaway local L1 dev node in a container, for bootstraps
// that have no external chain to target.
type Service struct {
	logger *slog.Logger
}

func NewService() *Service {
	return &Service{
		logger: logger.Named("devnode"),
	}
}

// Execute ensures the node image is available, starts the node with its RPC
// port published, waits until the RPC answers, then blocks until ctx is
// cancelled or the node exits. The container is removed on the way out.
func (s *Service) Execute(ctx context.Context, cfg configs.DevNode) error {
	dockerClient, err := docker.New()
	if err != nil {
		return fmt.Errorf("failed to create docker client: %w", err)
	}
	defer dockerClient.Close()

	image, err := s.ensureImage(ctx, dockerClient, cfg)
	if err != nil {
		return err
	}

	s.logger.Info("starting L1 dev node", "image", image, "rpc_port", cfg.RPCPort)

	containerID, err := dockerClient.StartNode(ctx, docker.NodeOptions{
		Image: image,
		Cmd: []string{
			"anvil",
			"--host", "0.0.0.0",
			"--port", strconv.Itoa(cfg.RPCPort),
			"--chain-id", strconv.Itoa(cfg.ChainID),
		},
		RPCPort:    cfg.RPCPort,
		StreamLogs: true,
	})
	if err != nil {
		return err
	}

	defer func() {
		// Stop with a fresh context so shutdown still works after ctx is
		// cancelled.
		if err := dockerClient.StopNode(context.Background(), containerID); err != nil {
			s.logger.With("err", err.Error()).Error("failed to stop dev node container")
		}
	}()

	rpcURL := fmt.Sprintf("http://localhost:%d", cfg.RPCPort)
	if err := l1.WaitForRPC(ctx, rpcURL); err != nil {
		return err
	}

	s.logger.Info("L1 dev node ready", "rpc_url", rpcURL, "chain_id", cfg.ChainID)

	return dockerClient.WaitNode(ctx, containerID)
}

// ensureImage returns the image to run, building a local one when a build
// directory is configured and pulling the configured image otherwise.
func (s *Service) ensureImage(ctx context.Context, dockerClient *docker.Client, cfg configs.DevNode) (string, error) {
	if cfg.BuildDir != "" {
		exists, err := dockerClient.ImageExists(ctx, localImageTag)
		if err != nil {
			return "", fmt.Errorf("failed to check if image exists: %w", err)
		}
		if exists {
			s.logger.Info("dev node image already exists", "tag", localImageTag)
			return localImageTag, nil
		}

		absBuildDir, err := filepath.Abs(cfg.BuildDir)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute build path: %w", err)
		}

		if err := dockerClient.BuildImage(ctx, "Dockerfile", absBuildDir, localImageTag); err != nil {
			return "", fmt.Errorf("failed to build dev node image: %w", err)
		}

		return localImageTag, nil
	}

	exists, err := dockerClient.ImageExists(ctx, cfg.Image)
	if err != nil {
		return "", fmt.Errorf("failed to check if image exists: %w", err)
	}
	if !exists {
		if err := dockerClient.PullImage(ctx, cfg.Image); err != nil {
			return "", err
		}
	}

	return cfg.Image, nil
}
