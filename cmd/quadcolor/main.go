package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/kjkrol/quadcolor/internal/app"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(logger); err != nil {
		logger.Error("quadcolor stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	conf := app.DefaultConfig(sources)

	host, err := newHost(conf.Host)
	if err != nil {
		return err
	}
	a, err := app.New(host, newDevice, conf, logger)
	if err != nil {
		host.Close()
		return err
	}
	defer a.Close()

	ctx, cancel := rootContext()
	defer cancel()
	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("quadcolor closed")
	return nil
}
