package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"econwatch/config"
	"econwatch/report"
)

// runServe exposes stored reports over HTTP until the context is cancelled.
func runServe(ctx context.Context, log zerolog.Logger, cfg *config.Config) error {
	store, err := report.NewFileStore(cfg.Reports.Dir)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	report.NewAPIServer(store).Routes(mux)

	server := &http.Server{
		Addr:    cfg.Serve.Addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Serve.Addr).Msg("serving reports")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
