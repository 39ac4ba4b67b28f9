package dashboard

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Serve listens on the configured address and serves until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Addr)
	if err != nil {
		return err
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is done, then shuts down gracefully.
// In debug mode it also watches the data directory.
func (a *App) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("serving dashboard",
			zap.String("addr", ln.Addr().String()),
			zap.Int("wells", a.project.Len()),
			zap.Bool("debug", a.cfg.Debug))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if a.cfg.Debug {
		w, err := NewWatcher(a.cfg.DataDir, a.cfg.Pattern, a.log)
		if err != nil {
			a.log.Warn("data watcher disabled", zap.Error(err))
		} else {
			w.OnChange = func(string) { a.MarkStale() }
			g.Go(func() error { return w.Run(ctx) })
		}
	}
	return g.Wait()
}
