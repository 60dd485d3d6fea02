package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/cmd"
	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/tracing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const (
	serviceName     = "storefront"
	shutdownTimeout = 10 * time.Second
)

func main() {
	bootLogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs, err := cmd.LoadConfig(bootLogger)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	shutdownTracing, err := tracing.InitTracerProvider(serviceName, configs.Tracing.JaegerEndpoint, configs.Tracing.SampleRatio)
	if err != nil {
		log.Fatalf("Error initializing tracing: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(ctx, configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	if _, err = app.CreateRepairIndexCommandHandler().Handle(ctx, commands.NewRepairIndexCommand()); err != nil {
		log.Fatalf("Error repairing order index: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	httpadapter.Register(e, app.CreateServer())

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}

	jobManager.StopAll()

	if err = app.Close(); err != nil {
		logger.Error("event producer close failed", "error", err)
	}
	if gormDB != nil {
		if err = postgres.Close(gormDB); err != nil {
			logger.Error("database close failed", "error", err)
		}
	}
	if err = shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracer provider shutdown failed", "error", err)
	}
}

// openDatabase returns nil when the memory storage driver is selected.
func openDatabase(ctx context.Context, configs cmd.Config) (*gorm.DB, error) {
	if configs.StorageDriver != cmd.StoragePostgres {
		return nil, nil //nolint:nilnil // no database for the memory driver
	}

	db, err := postgres.Open(ctx, configs.Connection())
	if err != nil {
		return nil, err
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
