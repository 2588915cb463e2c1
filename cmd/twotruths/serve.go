package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/twotruths"
	httpAdapter "github.com/aretw0/twotruths/internal/adapters/http"
	"github.com/aretw0/twotruths/internal/presentation"
	"github.com/aretw0/twotruths/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve [files|dirs...]",
	Short: "Start the HTTP API",
	Long: `Serves the JSON API for the loaded generators.

POST /generate returns statements without truth flags and keeps the batch in
the configured store; GET /batches/{id} reveals it. Send SIGHUP to reload the
generator configs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(viper.GetViper())
		if err != nil {
			return err
		}
		paths, err := inputPaths(args, s)
		if err != nil {
			return err
		}
		logger := newLogger(s)

		store, closeStore, err := openStore(s.Store)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeStore(); err != nil {
				logger.Warn("failed to close batch store", "error", err)
			}
		}()

		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
		eng, err := twotruths.New(paths,
			twotruths.WithLogger(logger),
			twotruths.WithStore(store),
			twotruths.WithLifecycleHooks(observability.Chain(metrics.Hooks(), observability.LogHooks(logger))),
		)
		if err != nil {
			return err
		}

		handler := httpAdapter.NewHandler(eng,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithRateLimit(s.Serve.RateLimit, s.Serve.RateBurst),
		)
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", s.Serve.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
		}

		if s.LogFormat != "json" {
			presentation.PrintBanner(cmd.ErrOrStderr())
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("HTTP server listening", "address", srv.Addr, "inputs", paths, "store", s.Store.Backend)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				return srv.Close()
			}
			logger.Info("HTTP server stopped gracefully")
			return nil
		})
		g.Go(func() error {
			return reloadOnHangup(ctx, eng, logger)
		})
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := serveCmd.Flags()
	f.IntP("port", "p", 8080, "port to listen on")
	f.Float64("rate-limit", 10, "requests per second per client (0 disables)")
	f.Int("rate-burst", 20, "rate limiter burst size")
	f.String("store", "memory", "batch store: memory, file or redis")
	f.String("store-dir", ".twotruths/batches", "directory for the file store")
	f.String("redis-addr", "localhost:6379", "address of the redis store")
	f.Duration("batch-ttl", time.Hour, "how long batches stay revealable (memory and redis)")

	_ = viper.BindPFlag("serve.port", f.Lookup("port"))
	_ = viper.BindPFlag("serve.rate_limit", f.Lookup("rate-limit"))
	_ = viper.BindPFlag("serve.rate_burst", f.Lookup("rate-burst"))
	_ = viper.BindPFlag("store.backend", f.Lookup("store"))
	_ = viper.BindPFlag("store.dir", f.Lookup("store-dir"))
	_ = viper.BindPFlag("store.redis_addr", f.Lookup("redis-addr"))
	_ = viper.BindPFlag("store.ttl", f.Lookup("batch-ttl"))
}
