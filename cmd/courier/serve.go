package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/courier/pkg/metrics"
	"github.com/dmitrymomot/courier/pkg/preview"
	"github.com/dmitrymomot/courier/pkg/transport/recorder"
)

const shutdownTimeout = 5 * time.Second

// serve blocks until ctx is canceled or the server fails.
func serve(ctx context.Context, addr string, rec *recorder.Transport, reg *prometheus.Registry, log *slog.Logger) error {
	srv := &http.Server{
		Addr: addr,
		Handler: preview.New(rec,
			preview.WithLogger(log),
			preview.WithMount("/metrics", metrics.Handler(reg)),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("preview server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
