package notifier_config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads an optional YAML file, then the .env file (if any), then the process env.
// Env keys use "_" for nesting: SMTP_ADDR, DISPATCH_WINDOW_DAYS, ...
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		_ = v.ReadInConfig()
	}

	v.SetDefault("app.name", "expirus")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.version", "")

	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.metrics_addr", ":8081")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.graceful_timeout", "15s")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("otel.enable", false)
	v.SetDefault("otel.service_name", "expirus")
	v.SetDefault("otel.sample_ratio", 1.0)
	v.SetDefault("otel.otlp_endpoint", "localhost:4317")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("dispatch.window_days", 7)
	v.SetDefault("dispatch.tick_interval", "24h")
	v.SetDefault("dispatch.send_timeout", "15s")
	v.SetDefault("dispatch.timezone", "UTC")

	v.SetDefault("webhook.base_url", "")
	v.SetDefault("webhook.timeout", "10s")
	v.SetDefault("webhook.user_agent", "Expirus/1.0")
	v.SetDefault("webhook.verify_tls", true)
	v.SetDefault("webhook.event_name", "Subscription Expiry")
	v.SetDefault("webhook.username", "Subscription Monitor")

	v.SetDefault("mail.provider", MailProviderSMTP)
	v.SetDefault("mail.from", "noreply@expirus.dev")
	v.SetDefault("mail.subj_prefix", "[Expirus]")

	v.SetDefault("smtp.addr", "localhost:1025")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.use_tls", false)
	v.SetDefault("smtp.timeout", "10s")

	v.SetDefault("ses.region", "us-east-1")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
