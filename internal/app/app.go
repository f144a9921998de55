// Package app wires the configured drivers, services and HTTP surface
// together.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dhoini/Admin-panel/internal/api/rest"
	"github.com/Dhoini/Admin-panel/internal/api/rest/handlers"
	"github.com/Dhoini/Admin-panel/internal/artifact"
	"github.com/Dhoini/Admin-panel/internal/config"
	"github.com/Dhoini/Admin-panel/internal/events"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/internal/gateway/memory"
	"github.com/Dhoini/Admin-panel/internal/gateway/postgres"
	restgw "github.com/Dhoini/Admin-panel/internal/gateway/rest"
	"github.com/Dhoini/Admin-panel/internal/metrics"
	"github.com/Dhoini/Admin-panel/internal/pages"
	"github.com/Dhoini/Admin-panel/internal/service"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// systemMetricsInterval is how often runtime gauges are refreshed
const systemMetricsInterval = 15 * time.Second

// App представляет собой контейнер для всех компонентов приложения
type App struct {
	Config        *config.Config
	Logger        *logger.Logger
	Registry      *prometheus.Registry
	Metrics       metrics.AdminMetrics
	SystemMetrics metrics.SystemMetrics

	Gateway    gateway.Gateway
	Artifacts  artifact.Store
	Events     events.Publisher
	Dashboard  *service.DashboardService
	Reports    *service.ReportService
	Users      *service.UserService
	Admins     *service.AdminService
	Dispatcher *pages.Dispatcher
	Router     *gin.Engine
	Server     *rest.Server

	closers []func() error
}

// NewApp создает и инициализирует новый экземпляр приложения. Every external
// connection is opened here; on error the ones already opened are closed.
func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (_ *App, err error) {
	a := &App{Config: cfg, Logger: log, Registry: prometheus.NewRegistry()}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.Metrics = metrics.NewAdminMetrics(a.Registry, log)
	a.SystemMetrics = metrics.NewSystemMetrics(a.Registry, log)

	driver, err := a.openGateway(ctx)
	if err != nil {
		return nil, err
	}
	a.Gateway = gateway.NewInstrumented(driver, a.Metrics, log)

	if a.Artifacts, err = a.openArtifacts(ctx); err != nil {
		return nil, err
	}
	if a.Events, err = a.openEvents(ctx); err != nil {
		return nil, err
	}

	a.Dashboard = service.NewDashboardService(a.Gateway, a.Metrics, cfg.Location(), time.Now, log)
	a.Reports = service.NewReportService(a.Gateway, a.Artifacts, cfg.Reports.TTL, a.Metrics, log)
	a.Users = service.NewUserService(a.Gateway, a.Events, log)
	a.Admins = service.NewAdminService(a.Gateway, a.Events, log)
	a.Dispatcher = pages.NewDispatcher(a.Users, a.Admins, a.Dashboard, log)

	// Устанавливаем режим Gin в зависимости от окружения
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	debug := !cfg.IsProduction()

	a.Router = rest.SetupRouter(log, rest.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Registry:       a.Registry,
		Metrics:        a.Metrics,
	}, rest.Handlers{
		Health:    handlers.HealthCheck(cfg.Gateway.Driver),
		Pages:     handlers.NewPageHandler(a.Dispatcher, debug, log),
		Dashboard: handlers.NewDashboardHandler(a.Dashboard),
		Reports:   handlers.NewReportHandler(a.Reports, debug, log),
		Users:     handlers.NewUserHandler(a.Users, debug, log),
		Admins:    handlers.NewAdminHandler(a.Admins, debug, log),
	})
	a.Server = rest.NewServer(a.Router, rest.ServerConfig{
		Port:         cfg.App.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, log)

	return a, nil
}

func (a *App) onClose(f func() error) {
	a.closers = append(a.closers, f)
}

func (a *App) openGateway(ctx context.Context) (gateway.Gateway, error) {
	cfg := a.Config
	switch cfg.Gateway.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewConnection(ctx, postgres.PoolConfig{
			DSN:            cfg.Database.DSN,
			MaxConns:       cfg.Database.MaxConns,
			ConnectTimeout: cfg.Database.ConnectTimeout,
		}, a.Logger)
		if err != nil {
			return nil, err
		}
		a.onClose(func() error { pool.Close(); return nil })
		return postgres.NewGateway(pool, a.Logger), nil

	case config.DriverREST:
		return restgw.NewClient(cfg.Rest.URL, cfg.Rest.APIKey, cfg.Rest.Timeout, a.Logger), nil

	case config.DriverMemory, "":
		a.Logger.Warnw("Using in-memory gateway, data is lost on restart")
		return memory.New(a.Logger), nil

	default:
		return nil, fmt.Errorf("unknown gateway driver %q", cfg.Gateway.Driver)
	}
}

func (a *App) openArtifacts(ctx context.Context) (artifact.Store, error) {
	cfg := a.Config
	if cfg.Redis.Addr == "" {
		a.Logger.Infow("Redis not configured, keeping reports in memory")
		store := artifact.NewMemoryStore()
		a.onClose(store.Close)
		return store, nil
	}

	client, err := artifact.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, a.Logger)
	if err != nil {
		return nil, err
	}
	store := artifact.NewRedisStore(client, a.Logger)
	a.onClose(store.Close)
	return store, nil
}

func (a *App) openEvents(ctx context.Context) (events.Publisher, error) {
	cfg := a.Config
	if !cfg.Kafka.Enabled {
		return events.Noop{}, nil
	}

	if err := events.EnsureTopics(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, a.Logger); err != nil {
		return nil, err
	}
	producer, err := events.NewSyncProducer(cfg.Kafka.Brokers)
	if err != nil {
		return nil, err
	}
	pub := events.NewKafkaPublisher(producer, cfg.Kafka.Topic, a.Logger)
	a.onClose(pub.Close)
	return pub, nil
}

// Run starts the system metrics loop and serves HTTP until ctx is cancelled,
// then shuts the server down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	a.SystemMetrics.StartRecording(systemMetricsInterval)
	defer a.SystemMetrics.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.Logger.Info("Server stopped gracefully")
	return <-errCh
}

// Close releases connections in reverse order of opening
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
