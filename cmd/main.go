package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thermostat_panel/internal/config"
	"thermostat_panel/internal/handlers"
	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/metrics"
	"thermostat_panel/internal/models"
	"thermostat_panel/internal/repository"
	"thermostat_panel/internal/server"
	"thermostat_panel/internal/service"
	"thermostat_panel/internal/thermostat"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load configs/config.yml, .env and PANEL_* overrides
	cfg, err := config.Load(os.Getenv("PANEL_CONFIG_FILE"))
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)

	rec, err := metrics.New(cfg.Metrics, log)
	if err != nil {
		log.Fatalw("failed to init metrics", "err", err)
	}
	defer closeMetrics(rec, log)

	// wire dependencies
	repos := repository.NewRepository(initialState(cfg), cfg.Events.Capacity)
	backend := thermostat.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	services := service.NewService(repos, backend, rec, log, service.Options{
		Debounce:        cfg.Panel.Debounce,
		HeatStatusEvery: cfg.Panel.HeatStatusEvery,
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start pollers
	go services.Poller.Run(ctx)

	log.Infow("panel_starting", "port", cfg.Port, "backend", cfg.Backend.URL,
		"target", cfg.Panel.Target, "poll_interval", cfg.Panel.PollInterval)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, services, log)
}

// initialState seeds the panel from configuration; readings stay empty
// until the first poll.
func initialState(cfg config.Config) models.PanelState {
	return models.PanelState{
		Target:       cfg.Panel.Target,
		PollInterval: cfg.Panel.PollInterval,
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, services *service.Service, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// drop any target push still waiting out its debounce
	if services.Target.Cancel() {
		log.Infow("pending_target_push_cancelled")
	}

	// stop pollers
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

func closeMetrics(rec metrics.Recorder, log *logger.Logger) {
	c, ok := rec.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		log.Warnw("metrics_close_failed", "err", err)
	}
}
