// Package server owns the boot sequence: configuration, infrastructure
// connections, background machinery, and the HTTP listener with graceful
// shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/inkstore/app/events"
	"github.com/shashiranjanraj/inkstore/app/jobs"
	"github.com/shashiranjanraj/inkstore/config"
	_ "github.com/shashiranjanraj/inkstore/database/migrations"
	"github.com/shashiranjanraj/inkstore/internal/kernel"
	"github.com/shashiranjanraj/inkstore/pkg/cache"
	"github.com/shashiranjanraj/inkstore/pkg/database"
	"github.com/shashiranjanraj/inkstore/pkg/logger"
	"github.com/shashiranjanraj/inkstore/pkg/migration"
	"github.com/shashiranjanraj/inkstore/pkg/queue"
	"github.com/shashiranjanraj/inkstore/pkg/schedule"
	"github.com/shashiranjanraj/inkstore/pkg/storage"

	"github.com/shashiranjanraj/inkstore/app/repositories"
)

const shutdownGrace = 10 * time.Second

// Start boots the store and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.MongoLogURI(); uri != "" {
		if _, err := logger.EnableMongoSink(uri, config.MongoLogDatabase(), config.MongoLogCollection()); err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		// Redis is an accelerator here, not a dependency; the cache and
		// session layers degrade to no-ops without it.
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}
	storage.Connect()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startBackground(ctx)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           kernel.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("inkstore listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

// startBackground wires everything that runs outside the request cycle:
// the live feed hub, event listeners, queue workers, and the scheduler.
func startBackground(ctx context.Context) {
	go events.LiveOrders.Run()
	events.Register()

	jobs.RegisterJobs()
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(database.DB)
	queue.StartWorkers(ctx, 4)

	orders := repositories.NewOrderRepository()
	schedule.Every(10).Minutes().Name("orders.fail-stale").WithoutOverlapping().Run(func() {
		n, err := orders.FailStalePending(time.Hour)
		if err != nil {
			logger.Error("stale order sweep failed", "error", err)
			return
		}
		if n > 0 {
			logger.Info("stale pending orders failed", "count", n)
		}
	})
	schedule.Start(ctx)
}
