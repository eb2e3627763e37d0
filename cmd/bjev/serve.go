package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lox/bjev/cmd/bjev/shared"
	"github.com/lox/bjev/internal/api"
)

// ServeCmd runs the HTTP API.
type ServeCmd struct {
	Addr string `default:":8080" env:"BJEV_ADDR" help:"Listen address"`
}

func (c *ServeCmd) Run(g *Globals) error {
	logger, cfg, err := g.setup()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           api.New(cfg, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx := shared.SetupSignalHandler(logger)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", "error", err)
		}
	}()

	logger.Info("Starting EV server", "addr", c.Addr, "decks", decksLabel(cfg.Decks), "allowed", cfg.Rules.Allowed)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
