package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"parceltrack/cmd"
	apihttp "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/in/http/apidocs"
	"parceltrack/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	config, err := cmd.LoadConfig(".")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := newLogger(config)
	slog.SetDefault(logger)

	app, err := cmd.NewCompositionRoot(config, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to release resources", "error", closeErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = restoreSnapshot(ctx, app, logger); err != nil {
		log.Fatalf("Failed to restore parcel records: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e, err := newEcho(ctx, app, config)
	if err != nil {
		log.Fatalf("Failed to set up HTTP server: %v", err)
	}
	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", startErr)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
	jobManager.StopAll()

	saveHandler := app.CreateSaveSnapshotCommandHandler()
	if err = saveHandler.Handle(shutdownCtx, commands.NewSaveSnapshotCommand()); err != nil {
		logger.Error("final snapshot failed", "error", err)
	}
}

func newLogger(config cmd.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(config.LogLevel))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if config.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// restoreSnapshot loads the last saved records. Records the engine rejects are
// skipped; unreadable storage is returned so the caller can refuse to start
// instead of overwriting it with an empty snapshot.
func restoreSnapshot(ctx context.Context, app *cmd.CompositionRoot, logger *slog.Logger) error {
	handler := app.CreateLoadSnapshotCommandHandler()
	result, err := handler.Handle(ctx, commands.NewLoadSnapshotCommand())
	if err != nil {
		return err
	}
	if result.Skipped > 0 {
		logger.Warn("some parcel records were skipped", "skipped", result.Skipped, "error", result.Rejected)
	}
	logger.Info("parcel records restored", "parcels", result.Restored)
	return nil
}

func newEcho(ctx context.Context, app *cmd.CompositionRoot, config cmd.Config) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	m := app.Metrics()
	e.Use(middleware.Recover())
	e.Use(apihttp.RequestMetrics(m.HTTPRequests, m.HTTPDuration))
	e.Use(apihttp.RateLimit(config.RateLimit))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{Registry: m.Registry()})))

	if err := apidocs.Register(ctx, e); err != nil {
		return nil, err
	}

	app.CreateServer().RegisterRoutes(e)
	return e, nil
}
