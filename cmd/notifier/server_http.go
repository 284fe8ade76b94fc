package main

import (
	"net/http"
	"time"

	config "github.com/NordCoder/Expirus/internal/config/notifier"
	"github.com/NordCoder/Expirus/internal/obs"
	"github.com/NordCoder/Expirus/internal/services/intake"
	"go.uber.org/zap"
)

func buildHTTPServer(cfg *config.Config, h *intake.Handler) *http.Server {
	root := intake.Routes(h, cfg.Webhook.Username)
	handler := intake.CORS(cfg.Server.CORSOrigins)(root)

	return &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           obs.HTTPHandler(handler, "notifier.http"),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

func serveHTTP(srv *http.Server, l *zap.Logger) error {
	l.Info("http listening", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}
