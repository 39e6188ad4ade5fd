package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/target/cipms/config"
	"golang.org/x/sync/errgroup"
)

// ServiceOrchestrationConfig contains what RunServicesWithShutdown starts.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts all enabled services and blocks until SIGINT/SIGTERM
// or until one of them fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return RunServices(ctx, cfg)
}

// RunServices runs the enabled services until ctx is cancelled.
func RunServices(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil || cfg.Services == nil {
		return errors.New("service orchestration config requires AppConfig and services")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return err
	}

	group, gctx := errgroup.WithContext(ctx)

	if enabled[config.ServiceModeHTTP] {
		server, srvErr := NewHTTPServer(&HTTPServerConfig{Config: cfg.Config, Services: cfg.Services, Logger: logger})
		if srvErr != nil {
			return srvErr
		}
		group.Go(func() error {
			return ServeHTTP(gctx, server, cfg.Config.HTTP.ShutdownTimeout, logger)
		})
		if cfg.Services.LoginLimiter != nil {
			group.Go(func() error {
				return cfg.Services.LoginLimiter.Run(gctx, 0)
			})
		}
	}

	if enabled[config.ServiceModeSessionSweeper] {
		interval := sweepInterval(cfg.Config.Session)
		logger.Info("starting session sweeper", "interval", interval, "idle_ttl", cfg.Config.Session.IdleTTL)
		group.Go(func() error {
			return cfg.Services.Sessions.Run(gctx, interval)
		})
	}

	err = group.Wait()
	logger.Info("services stopped")
	return err
}
