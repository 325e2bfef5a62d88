package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mdobak/go-xerrors"
)

// serve runs the API and diagnostics listeners until ctx is cancelled or one
// of them fails, then shuts both down within the configured timeout.
func (app *application) serve(ctx context.Context) error {
	apiServer := &http.Server{
		Addr:         app.config.Addr,
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}
	diagServer := &http.Server{
		Addr:     app.config.DiagAddr,
		Handler:  app.diagRoutes(),
		ErrorLog: slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	listenErr := make(chan error, 2)
	for _, srv := range []*http.Server{apiServer, diagServer} {
		app.doInBackground(func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				listenErr <- xerrors.Newf("listening on %s: %w", srv.Addr, err)
			}
		})
	}

	var serveErr error
	select {
	case <-ctx.Done():
		app.logger.Info("Shutting down server", slog.String("signal", context.Cause(ctx).Error()))
	case serveErr = <-listenErr:
		app.logger.Error("Server failed", slog.String("stack", xerrors.Sprint(serveErr)))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	shutdownErr := errors.Join(apiServer.Shutdown(shutdownCtx), diagServer.Shutdown(shutdownCtx))
	app.wg.Wait()

	if err := errors.Join(serveErr, shutdownErr); err != nil {
		return err
	}

	app.logger.Info("Server stopped")
	return nil
}
