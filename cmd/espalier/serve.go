package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/fernwald/espalier"
	"github.com/fernwald/espalier/internal/adapters/httpd"
	"github.com/fernwald/espalier/internal/adapters/memory"
	redisstore "github.com/fernwald/espalier/internal/adapters/redis"
	"github.com/fernwald/espalier/pkg/observability"
	"github.com/fernwald/espalier/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve workflow sessions over HTTP",
	Long: `Exposes the workflow as a small HTTP API: create a session, submit
answers while it is suspended, and inspect its state. Sessions hold only
the seed and the answer queue; every request replays the workflow.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := loggerFromFlags(cmd)

		backend, err := backendFromFlags(cmd)
		if err != nil {
			return err
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
		metrics := observability.NewMetrics(registry)

		engine, err := espalier.New(backend,
			espalier.WithLogger(logger),
			espalier.WithLifecycleHooks(metrics.Hooks()),
		)
		if err != nil {
			return err
		}

		var store ports.SessionStore = memory.NewStore()
		if redisAddr, _ := cmd.Flags().GetString("redis"); redisAddr != "" {
			password, _ := cmd.Flags().GetString("redis-password")
			db, _ := cmd.Flags().GetInt("redis-db")
			ttl, _ := cmd.Flags().GetDuration("session-ttl")
			store = redisstore.New(redisAddr, password, db, redisstore.WithTTL(ttl))
		}

		mux := chi.NewRouter()
		mux.Mount("/", httpd.NewHandler(engine, store, logger))
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

		addr, _ := cmd.Flags().GetString("addr")
		server := &http.Server{Addr: addr, Handler: mux}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("http driver listening", "addr", addr)
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("redis", "", "Redis address for session storage (empty: in-memory)")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database")
	serveCmd.Flags().Duration("session-ttl", 24*time.Hour, "Session expiration when using Redis")
}
