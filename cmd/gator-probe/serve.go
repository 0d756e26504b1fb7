package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/joestump/gator-probe/internal/api"
	"github.com/joestump/gator-probe/internal/catalog"
	"github.com/joestump/gator-probe/internal/config"
	"github.com/joestump/gator-probe/internal/handler"
	"github.com/joestump/gator-probe/internal/llm"
	"github.com/joestump/gator-probe/internal/prompt"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = withLogger(ctx, cfg.Log.Level)

			cat := catalog.New(cfg.Catalog.Dir)
			settings, err := cat.LoadSettings(ctx)
			if err != nil {
				return err
			}

			client, err := llm.New(cfg, settings)
			if err != nil {
				return err
			}

			style, err := prompt.ParseStyle(cfg.Prompt.Style)
			if err != nil {
				return err
			}
			assembler := prompt.New(cat, prompt.WithStyle(style))

			router := handler.NewRouter(handler.Deps{
				API: api.Deps{
					Assembler:      assembler,
					Generator:      client,
					Catalog:        cat,
					MaxInputLength: cfg.HTTP.MaxInputLength,
				},
				Provider: client.Provider(),
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
				// In-flight requests keep running during graceful shutdown.
				BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
			}

			errCh := make(chan error, 1)
			go func() {
				clog.InfoContextf(ctx, "listening on %s (provider %s, style %s)", cfg.HTTP.Addr, client.Provider(), style)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			clog.InfoContextf(ctx, "shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

// withLogger installs a text logger at the given level as both the slog
// default and the context logger.
func withLogger(ctx context.Context, level string) context.Context {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
	return clog.WithLogger(ctx, clog.New(h))
}
