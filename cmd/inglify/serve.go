package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inglify/inglify"
	"github.com/inglify/inglify/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP translation gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			// The server always logs.
			a.setLogger(setupLogger(a.cfg.Env))

			g, err := a.gateway()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = a.cfg.Server.Addr()
			}
			srvCfg := server.Config{
				Addr:         addr,
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
			}
			if rl := a.cfg.Server.RateLimit; rl.Enabled() {
				srvCfg.Limiter = inglify.NewRateLimiter(inglify.RateLimitConfig{
					RequestsPerMinute: rl.RequestsPerMinute,
					BurstSize:         rl.Burst,
				})
			}
			srv := server.New(srvCfg, g, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				a.logger.Error("shutdown failed", zap.Error(err))
				return err
			}
			return <-errCh
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.host:server.port)")
	return cmd
}
