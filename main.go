package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-booking-api/core/config"
	"go-booking-api/core/logger"
	"go-booking-api/core/server"

	"github.com/urfave/cli/v2"
)

// @title Booking API
// @version 1.0
// @description Hosts publish time slots, guests book them.
// @BasePath /api

func main() {
	app := &cli.App{
		Name:  "go-booking-api",
		Usage: "Scheduling and booking service.",
		Before: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.App.LogLevel, cfg.App.LogFormat)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API (and the notification worker when Redis is configured).",
				Action: func(c *cli.Context) error {
					return server.Serve(c.Context, config.Get())
				},
			},
			{
				Name:  "worker",
				Usage: "Run only the notification queue worker.",
				Action: func(c *cli.Context) error {
					return server.Worker(c.Context, config.Get())
				},
			},
			{
				Name:  "migrate",
				Usage: "Apply database migrations and exit.",
				Action: func(c *cli.Context) error {
					return server.Migrate(c.Context, config.Get())
				},
			},
		},
		DefaultCommand: "serve",
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error("Application failed", "error", err)
		stop()
		os.Exit(1)
	}
}
