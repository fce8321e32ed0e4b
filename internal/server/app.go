// Package server initializes and runs the booking server: storage, the
// sign-in limiter, the gRPC endpoint and the Prometheus /metrics endpoint,
// with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/s-r-jones/deep-dive-air/internal/dbx"
	"github.com/s-r-jones/deep-dive-air/internal/logging"
	"github.com/s-r-jones/deep-dive-air/internal/server/config"
	"github.com/s-r-jones/deep-dive-air/internal/server/ratelimit"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/repomanager"
	"github.com/s-r-jones/deep-dive-air/internal/server/services"

	gs "github.com/s-r-jones/deep-dive-air/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	redis      *redis.Client
	registry   *prometheus.Registry
	grpcServer *gs.GRPCServer
}

// NewApp opens and migrates the database, connects the limiter and builds
// the gRPC server. Logs go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.LogLevel, w)
	if err != nil {
		return nil, err
	}

	dialect, err := dbx.DialectFor(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := dbx.Open(ctx, dialect, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewSQLRepositoryManager(dialect)
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db, registry: prometheus.NewRegistry()}

	var limiter ratelimit.Limiter = ratelimit.Noop{}
	if c.RedisAddr != "" {
		app.redis, err = ratelimit.NewRedisClient(ctx, c.RedisAddr)
		if err != nil {
			app.close(ctx)
			return nil, err
		}
		limiter, err = ratelimit.NewRedisLimiter(app.redis, ratelimit.Config{
			KeyPrefix: "airbooking:login",
			Limit:     c.LoginAttemptsLimit,
			Window:    c.LoginAttemptsWindow,
		})
		if err != nil {
			app.close(ctx)
			return nil, err
		}
	} else {
		logger.Warn(ctx, "Redis address not set, sign-in attempts are not limited")
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "airbooking"),
	)
	metrics, err := gs.NewGRPCMetrics(app.registry)
	if err != nil {
		app.close(ctx)
		return nil, err
	}

	as := services.NewAuthService(db, rm, limiter, logger, c)
	fs := services.NewFlightService(db, rm, logger)
	bs := services.NewBookingService(db, rm, logger)

	app.grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, as, fs, bs, metrics, c.SecretKey)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))
	return mux
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if app.config.MetricsAddr == "" {
		return
	}

	srv := &http.Server{
		Addr:              app.config.MetricsAddr,
		Handler:           app.metricsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails,
// then releases the database and Redis connections.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startMetricsServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(context.Background())
	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(ctx, "redis close error", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
