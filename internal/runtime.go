package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

func newHTTPServer(h http.Handler) *http.Server {
	return &http.Server{
		Handler:           h,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}
}

// serve runs h on addr until the base context is cancelled or the process
// gets SIGINT or SIGTERM. Draining connections and the shutdown hooks share
// one timeout. The shutdown hooks also run when a startup hook, the
// listener or the server fails.
func serve(addr string, h http.Handler, cfg *runConfig) error {
	if addr == "" {
		addr = ":8080"
	}
	log := cfg.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	base := cfg.baseCtx
	if base == nil {
		base = context.Background()
	}

	ctx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
	defer stop()

	abort := func(err error) error {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.shutdownTimeout)
		defer cancel()
		return errors.Join(err, runShutdownHooks(sctx, log, cfg.shutdownHooks))
	}

	for _, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			return abort(fmt.Errorf("startup hook: %w", err))
		}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return abort(fmt.Errorf("listen %s: %w", addr, err))
	}

	srv := newHTTPServer(h)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.shutdownTimeout)
		defer cancel()

		return errors.Join(srv.Shutdown(sctx), runShutdownHooks(sctx, log, cfg.shutdownHooks))
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with errors", slog.Any("error", err))
		return err
	}
	log.Info("shutdown completed")
	return nil
}

// runShutdownHooks calls every hook in order, collecting failures.
func runShutdownHooks(ctx context.Context, log *slog.Logger, hooks []func(context.Context) error) error {
	var errs []error
	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			log.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
