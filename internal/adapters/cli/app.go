package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/andrescamacho/fuelroute-go/internal/adapters/metrics"
	"github.com/andrescamacho/fuelroute-go/internal/adapters/persistence"
	routingAdapter "github.com/andrescamacho/fuelroute-go/internal/adapters/routing"
	"github.com/andrescamacho/fuelroute-go/internal/application/common"
	"github.com/andrescamacho/fuelroute-go/internal/application/setup"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/infrastructure/config"
	"github.com/andrescamacho/fuelroute-go/internal/infrastructure/database"
	"github.com/andrescamacho/fuelroute-go/internal/infrastructure/logging"
)

// appOptions selects which outer adapters a command needs
type appOptions struct {
	// database opens (and migrates) the configured database
	database bool
	// remote overrides routing.remote_address; empty uses the config value
	remote string
	// local ignores any remote address
	local bool
	// metrics registers collectors and the mediator middleware when metrics.enabled is set
	metrics bool
}

// app is the wired object graph shared by CLI commands
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	mediator common.Mediator
	closers  []func() error
}

// newApp loads configuration and wires repositories, routing client and mediator
func newApp(opts appOptions) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}
	a.closers = append(a.closers, logCloser.Close)

	var networkRepo routing.NetworkRepository
	var recordRepo routing.SolveRecordRepository
	if opts.database {
		db, err := database.Open(&cfg.Database)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, func() error { return database.Close(db) })

		networkRepo = persistence.NewGormNetworkRepository(db)
		recordRepo = persistence.NewGormSolveRecordRepository(db)
	}

	remote := opts.remote
	if remote == "" && !opts.local {
		remote = cfg.Routing.RemoteAddress
	}
	client, err := a.routingClient(remote)
	if err != nil {
		a.Close()
		return nil, err
	}

	var collector *metrics.CommandMetricsCollector
	if opts.metrics && cfg.Metrics.Enabled {
		if collector, err = initMetrics(); err != nil {
			a.Close()
			return nil, err
		}
	}

	registry := setup.NewHandlerRegistry(client, networkRepo, recordRepo, nil)
	a.mediator, err = setup.NewRoutingMediator(registry, collector)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	return a, nil
}

func (a *app) routingClient(address string) (routing.RoutingClient, error) {
	if address == "" {
		var opts []routing.Option
		if a.cfg.Routing.MaxStates > 0 {
			opts = append(opts, routing.WithMaxStates(a.cfg.Routing.MaxStates))
		}
		return routingAdapter.NewLocalRoutingClient(opts...), nil
	}

	a.logger.Debug("using remote routing service", "address", address)
	client, err := routingAdapter.NewGRPCRoutingClient(address, a.cfg.Routing.Timeout)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)
	return client, nil
}

// initMetrics creates the global registry with routing and command collectors
func initMetrics() (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()

	routingCollector := metrics.NewRoutingMetricsCollector()
	if err := routingCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register routing metrics: %w", err)
	}
	metrics.SetGlobalRoutingCollector(routingCollector)

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	return commandCollector, nil
}

// context returns a context carrying the application logger, bounded by the routing timeout
func (a *app) context() (context.Context, context.CancelFunc) {
	ctx := common.WithLogger(context.Background(), common.NewSlogLogger(a.logger))
	return context.WithTimeout(ctx, a.cfg.Routing.Timeout)
}

// send dispatches request with the application context
func (a *app) send(request common.Request) (common.Response, error) {
	ctx, cancel := a.context()
	defer cancel()
	return a.mediator.Send(ctx, request)
}

// Close releases resources in reverse order of acquisition
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.logger != nil {
			a.logger.Warn("cleanup failed", "error", err)
		}
	}
	a.closers = nil
}
