package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	grpcAdapter "github.com/andrescamacho/fuelroute-go/internal/adapters/grpc"
	"github.com/andrescamacho/fuelroute-go/internal/adapters/metrics"
	"github.com/andrescamacho/fuelroute-go/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var (
		address string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC routing server",
		Long: `Serve fuelroute.v1.RoutingService/PlanRoute over gRPC.

The server keeps a PID file so only one instance runs per configuration,
exposes Prometheus metrics when metrics.enabled is set, and stops gracefully
on SIGINT or SIGTERM.

Examples:
  fuelroute serve
  fuelroute serve --address 0.0.0.0:50061
  fuelroute serve --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunServer(ServerFlags{Address: address, Force: force})
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address (overrides server.address)")
	cmd.Flags().BoolVar(&force, "force", false, "Stop any running server before starting")

	return cmd
}

// ServerFlags are the command-line overrides of the server configuration
type ServerFlags struct {
	ConfigPath string
	Address    string
	Force      bool
}

// RunServer serves routing requests until interrupted
func RunServer(flags ServerFlags) error {
	if flags.ConfigPath != "" {
		configPath = flags.ConfigPath
	}

	// The server always solves in process and keeps no database
	a, err := newApp(appOptions{local: true, metrics: true})
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg
	logger := a.logger
	if flags.Address != "" {
		cfg.Server.Address = flags.Address
	}

	// 1. Single instance lock
	pf := pidfile.New(cfg.Server.PIDFile)
	if err := pf.Acquire(); err != nil {
		if !flags.Force || !errors.Is(err, pidfile.ErrAlreadyRunning) {
			return fmt.Errorf("%w\nUse --force to stop the existing server", err)
		}
		logger.Warn("force mode: stopping existing server", "pid_file", pf.Path())
		if err := pf.KillExisting(cfg.Server.ShutdownTimeout); err != nil {
			return fmt.Errorf("failed to stop existing server: %w", err)
		}
		if err := pf.Acquire(); err != nil {
			return fmt.Errorf("failed to acquire PID file after stopping existing server: %w", err)
		}
	}
	defer func() {
		if err := pf.Release(); err != nil {
			logger.Warn("failed to release PID file", "error", err)
		}
	}()

	// 2. Metrics endpoint
	if cfg.Metrics.Enabled {
		metricsAddress := net.JoinHostPort(cfg.Metrics.Host, strconv.Itoa(cfg.Metrics.Port))
		metricsServer, err := metrics.NewServer(metricsAddress, cfg.Metrics.Path, logger)
		if err != nil {
			return err
		}
		metricsServer.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Warn("metrics server shutdown failed", "error", err)
			}
		}()
	}

	// 3. gRPC routing service
	server, err := grpcAdapter.NewRoutingServer(a.mediator, cfg.Server.Address, grpcAdapter.ServerOptions{
		RequestsPerSecond: float64(cfg.Server.RateLimit.Requests),
		Burst:             cfg.Server.RateLimit.Burst,
		Logger:            logger,
	})
	if err != nil {
		return err
	}

	return server.Start()
}
