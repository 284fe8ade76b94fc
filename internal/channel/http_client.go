package channel

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	config "github.com/NordCoder/Expirus/internal/config/notifier"
	"github.com/NordCoder/Expirus/internal/obs"
)

// NewHTTPClient builds the outbound client for webhooks. cfg.Timeout bounds the whole exchange.
func NewHTTPClient(cfg config.Webhook) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !cfg.VerifyTLS,
			MinVersion:         tls.VersionTLS12,
		},
	}

	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: obs.HTTPTransport(transport),
	}
}
