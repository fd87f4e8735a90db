package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"QuantDesk/internal/usecase"
	"QuantDesk/pkg/config"
	xhttp "QuantDesk/pkg/http"
	applogger "QuantDesk/pkg/logger"
	"QuantDesk/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	refresher  *usecase.CatalogRefresher
	refreshJob *usecase.CatalogRefreshJob
	queue      *queue.RedisQueue
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. q may be nil
// when no Redis queue is configured; the refresher then runs its job
// inline.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	refresher *usecase.CatalogRefresher,
	refreshJob *usecase.CatalogRefreshJob,
	q *queue.RedisQueue,
) *App {
	return &App{
		cfg:        cfg,
		logger:     logger,
		handler:    handler,
		refresher:  refresher,
		refreshJob: refreshJob,
		queue:      q,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(a.logger, 2*time.Second))
	}
	a.httpServer = xhttp.NewServer(a.handler, opts...)

	// Queue workers consume refresh messages when Redis is configured
	if a.queue != nil {
		a.queue.RegisterJob(a.refreshJob)
		if err := a.queue.Start(); err != nil {
			a.logger.Error("queue start error", applogger.Error(err))
			return err
		}
		a.queue.StartRetryProcessor()
		a.logger.Info("queue started", applogger.String("job", a.refreshJob.Name()))
	}

	// Start catalog refresher
	go func() {
		if err := a.refresher.Start(ctx); err != nil && err != context.Canceled {
			a.logger.Error("refresher error", applogger.Error(err))
		}
	}()
	a.logger.Info("catalog refresher started")

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	cancel()
	return a.shutdown(context.Background())
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.queue != nil {
		if err := a.queue.Stop(shutdownCtx); err != nil {
			a.logger.Warn("queue stop error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
