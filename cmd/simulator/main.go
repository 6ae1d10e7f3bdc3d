package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thermostat_panel/internal/config"
	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/server"
	"thermostat_panel/internal/simulator"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load(os.Getenv("PANEL_CONFIG_FILE"))
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	house := simulator.NewHouse(simulator.Options{
		AmbientF:   cfg.Simulator.AmbientF,
		StartTempF: cfg.Simulator.StartTempF,
		Target:     cfg.Simulator.Target,
	}, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go house.Run(ctx, cfg.Simulator.Tick)

	srv := &server.Server{}
	go func() {
		log.Infow("simulator_starting", "port", cfg.Simulator.Port, "ambient_f", cfg.Simulator.AmbientF,
			"start_temp_f", cfg.Simulator.StartTempF, "target", cfg.Simulator.Target)
		if err := srv.Run(cfg.Simulator.Port, simulator.NewHandler(house, log).InitRoutes()); err != nil {
			log.Fatalw("error starting simulator", "err", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down simulator...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("simulator forced to shutdown", "err", err)
	}
}
