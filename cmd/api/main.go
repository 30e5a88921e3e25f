package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mining-cost-calculator/internal/config"
	"mining-cost-calculator/internal/observability"
	"mining-cost-calculator/internal/server"
	"mining-cost-calculator/internal/ui"
	"mining-cost-calculator/internal/upstream"

	"go.uber.org/zap"
)

func main() {

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	err := observability.InitLogger()
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	cfg, err := config.Load()
	if err != nil {
		observability.Logger.Fatal("load config", zap.Error(err))
	}

	// Telemetry
	if cfg.TelemetryEnabled {
		shutdown, err := initTelemetry(ctx)
		if err != nil {
			observability.Logger.Fatal("init telemetry", zap.Error(err))
		}
		defer shutdown(context.Background())
	}

	if err := initMetrics(); err != nil {
		observability.Logger.Fatal("init metrics", zap.Error(err))
	}

	// Calculator page
	client := upstream.NewClient(cfg.CalculatorEndpoint, cfg.UpstreamTimeout)
	sessions := ui.NewSessionStore(client, cfg.SessionTTL)
	go sessions.Run(ctx, time.Minute)

	page, err := ui.NewHandler(sessions, client)
	if err != nil {
		observability.Logger.Fatal("init ui", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.NewRouter(page),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.ListenAddr),
			zap.String("calculator_url", client.URL()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("listen", zap.Error(err))
		}
	}()

	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Warn("shutdown", zap.Error(err))
	}
}
