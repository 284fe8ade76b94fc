package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	config "github.com/NordCoder/Expirus/internal/config/notifier"
	"github.com/NordCoder/Expirus/internal/obs"
	"github.com/NordCoder/Expirus/internal/services/intake"
	"github.com/NordCoder/Expirus/internal/services/notifier"
	"go.uber.org/zap"
)

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

func main() {
	cfgPath := flag.String("config", "config/notifier.yaml", "path to the YAML config (optional)")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	l, err := obs.NewLogger(cfg.AsLoggerConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	l.Info("starting notifier",
		zap.String("http_addr", cfg.Server.HTTPAddr),
		zap.String("metrics_addr", cfg.Server.MetricsAddr),
		zap.String("mail_provider", cfg.Mail.Provider),
		zap.Int("window_days", cfg.Dispatch.WindowDays),
		zap.Duration("tick_interval", cfg.Dispatch.TickInterval),
	)

	// otel
	otelCloser, err := obs.SetupOTel(rootCtx, cfg.OTEL.AsOTELConfig())
	if err != nil {
		l.Warn("otel init", zap.Error(err))
		otelCloser = &obs.OTel{}
	}
	defer func() { _ = otelCloser.Shutdown(context.Background()) }()

	// delivery
	sender, err := buildSender(rootCtx, cfg, l)
	if err != nil {
		l.Fatal("build sender", zap.Error(err))
	}
	clock := systemClock{}
	dispatcher := notifier.NewDispatcher(cfg.Dispatch, sender, clock, notifier.NewLogSink(l), l)
	launcher := notifier.NewLauncher(dispatcher, l)

	// metrics
	ms := obs.BootstrapMetricsServer(cfg.Server.MetricsAddr, launcher.Health, l)

	// http
	h := intake.NewHandler(launcher, clock, cfg.Webhook.BaseURL, l)
	srv := buildHTTPServer(cfg, h)
	errCh := make(chan error, 1)
	go func() { errCh <- serveHTTP(srv, l) }()

	var runErr error
	select {
	case <-rootCtx.Done():
		l.Info("shutdown signal")
	case runErr = <-errCh:
		if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			l.Error("http serve", zap.Error(runErr))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()

	_ = srv.Shutdown(shCtx)
	if err := launcher.Shutdown(shCtx); err != nil {
		l.Warn("jobs still running at exit", zap.Int("jobs", launcher.Active()), zap.Error(err))
	}
	_ = ms.Shutdown(shCtx)
	l.Info("bye")
}
