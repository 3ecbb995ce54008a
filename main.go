package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomkeeper/config"
	"roomkeeper/jobs"
	"roomkeeper/routes"
	"roomkeeper/services"
	"roomkeeper/services/notification"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// @title        Roomkeeper API
// @version      1.0
// @description  Clients and rooms of a small booking service.
// @BasePath     /
func main() {
	config.LoadEnv()

	app := &cli.App{
		Name:   "roomkeeper",
		Usage:  "clients and rooms CRUD service",
		Flags:  config.Flags(),
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func run(c *cli.Context) error {
	cfg := config.FromCLI(c)

	app, err := config.InitApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer app.Close()

	opts := services.ServiceOptions{
		DB:       app.DB,
		Cache:    services.NewCache(app.Redis, cfg.CacheTTL, app.Logger),
		Logger:   app.Logger,
		Notifier: notification.NewMelodyService(app.Melody),
	}
	clientService := services.NewClientService(opts)
	roomService := services.NewRoomService(opts)

	routes.SetupRoutes(app.Router, clientService, roomService, app.Melody)

	if opts.Cache != nil {
		if err := jobs.InitCronJobs(app.Cron, cfg.CacheWarmSpec, app.Logger, clientService, roomService); err != nil {
			return fmt.Errorf("failed to initialize cron jobs: %w", err)
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: app.Router,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("start listening", zap.Int("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	app.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
