package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mercata/storefront/services/user-service/internal/bootstrap"
	"github.com/mercata/storefront/services/user-service/internal/logger"
)

const shutdownGrace = 10 * time.Second

func main() {
	logger.Init()

	app, err := bootstrap.NewServer()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("startup failed")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	run(app, sig)
}

func run(app *bootstrap.App, sig <-chan os.Signal) {
	errCh := make(chan error, 1)
	go func() {
		logger.Logger.Info().Str("addr", app.Server.Addr).Msg("user service listening")
		errCh <- app.Server.ListenAndServe()
	}()

	select {
	case s := <-sig:
		logger.Logger.Info().Str("signal", s.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Error().Err(err).Msg("server stopped")
		}
		app.Close()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := app.Server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	app.Close()
}
