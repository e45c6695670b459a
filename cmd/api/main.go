package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"moviecatalog/internal/config"
	"moviecatalog/internal/database"
	"moviecatalog/internal/logging"
	"moviecatalog/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "movie catalog API:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, _, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	app, err := server.NewApp(cfg, db, logger)
	if err != nil {
		return err
	}

	return app.Run(ctx)
}
