package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/arloliu/greenlight"
	"github.com/arloliu/greenlight/service"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		natsURL     string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer allocation requests over NATS.",
		Long: "`serve` subscribes to the configured subject and replies to every " +
			"allocation request with a plan. It runs until SIGINT or SIGTERM.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			logger, err := flags.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			alloc, err := greenlight.NewAllocator(&cfg,
				greenlight.WithLogger(logger),
				greenlight.WithMetrics(greenlight.NewPrometheusMetrics(reg, cfg.Metrics.Namespace)),
			)
			if err != nil {
				return err
			}

			nc, err := nats.Connect(natsURL,
				nats.Name("greenlight"),
				nats.MaxReconnects(-1),
				nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
					logger.Warn("disconnected from NATS", "error", err)
				}),
				nats.ReconnectHandler(func(nc *nats.Conn) {
					logger.Info("reconnected to NATS", "url", nc.ConnectedUrl())
				}),
			)
			if err != nil {
				return err
			}
			defer nc.Close()

			responder, err := service.NewResponder(nc, alloc, cfg.Service)
			if err != nil {
				return err
			}
			if err := responder.Start(ctx); err != nil {
				return err
			}

			var srv *http.Server
			if metricsAddr != "" {
				srv = serveMetrics(metricsAddr, reg, logger)
			}

			<-ctx.Done()
			logger.Info("shutting down")

			if err := responder.Stop(); err != nil {
				logger.Warn("failed to stop responder", "error", err)
			}

			if srv != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Warn("failed to stop metrics server", "error", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", nats.DefaultURL, "NATS server URL")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address for the Prometheus /metrics endpoint (e.g. :9090, disabled if empty)")

	return cmd
}

// serveMetrics exposes reg on addr/metrics in the background.
func serveMetrics(addr string, reg *prometheus.Registry, logger greenlight.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return srv
}
