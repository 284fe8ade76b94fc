package notifier_config

import (
	"fmt"
	"time"

	"github.com/NordCoder/Expirus/internal/obs"
)

type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type Server struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	MetricsAddr     string        `mapstructure:"metrics_addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	GracefulTimeout time.Duration `mapstructure:"graceful_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

type OTEL struct {
	Enable       bool    `mapstructure:"enable"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

func (oc *OTEL) AsOTELConfig() *obs.OTELConfig {
	return &obs.OTELConfig{
		Enable:      oc.Enable,
		Endpoint:    oc.OTLPEndpoint,
		ServiceName: oc.ServiceName,
		SampleRatio: oc.SampleRatio,
	}
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func (c *Config) AsLoggerConfig() obs.LogConfig {
	return obs.LogConfig{
		Level:  c.Log.Level,
		Pretty: c.Log.Pretty,
		App:    c.App.Name,
		Env:    c.App.Env,
		Ver:    c.App.Version,
	}
}

// Dispatch drives the reminder schedule of every job.
type Dispatch struct {
	WindowDays   int           `mapstructure:"window_days"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
	SendTimeout  time.Duration `mapstructure:"send_timeout"`
	Timezone     string        `mapstructure:"timezone"`
}

func (d Dispatch) Location() (*time.Location, error) {
	return time.LoadLocation(d.Timezone)
}

type Webhook struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	VerifyTLS bool          `mapstructure:"verify_tls"`
	EventName string        `mapstructure:"event_name"`
	Username  string        `mapstructure:"username"`
}

const (
	MailProviderSMTP = "smtp"
	MailProviderSES  = "ses"
)

type Mail struct {
	Provider   string `mapstructure:"provider"`
	From       string `mapstructure:"from"`
	SubjPrefix string `mapstructure:"subj_prefix"`
}

type SMTP struct {
	Addr     string        `mapstructure:"addr"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	UseTLS   bool          `mapstructure:"use_tls"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type SES struct {
	Region string `mapstructure:"region"`
}

type Config struct {
	App      App      `mapstructure:"app"`
	Server   Server   `mapstructure:"server"`
	OTEL     OTEL     `mapstructure:"otel"`
	Log      Log      `mapstructure:"log"`
	Dispatch Dispatch `mapstructure:"dispatch"`
	Webhook  Webhook  `mapstructure:"webhook"`
	Mail     Mail     `mapstructure:"mail"`
	SMTP     SMTP     `mapstructure:"smtp"`
	SES      SES      `mapstructure:"ses"`
}

type ErrConfig string

func (e ErrConfig) Error() string { return string(e) }

func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return ErrConfig("server.http_addr is required")
	}
	if c.Dispatch.WindowDays < 0 {
		return ErrConfig("dispatch.window_days must not be negative")
	}
	if c.Dispatch.TickInterval <= 0 {
		return ErrConfig("dispatch.tick_interval must be positive")
	}
	if c.Dispatch.SendTimeout <= 0 {
		return ErrConfig("dispatch.send_timeout must be positive")
	}
	if _, err := c.Dispatch.Location(); err != nil {
		return ErrConfig(fmt.Sprintf("dispatch.timezone: %v", err))
	}
	if c.Webhook.Timeout <= 0 {
		return ErrConfig("webhook.timeout must be positive")
	}
	if c.Mail.From == "" {
		return ErrConfig("mail.from is required")
	}
	switch c.Mail.Provider {
	case MailProviderSMTP:
		if c.SMTP.Addr == "" {
			return ErrConfig("smtp.addr is required")
		}
		if c.SMTP.Timeout <= 0 {
			return ErrConfig("smtp.timeout must be positive")
		}
	case MailProviderSES:
		if c.SES.Region == "" {
			return ErrConfig("ses.region is required")
		}
	default:
		return ErrConfig(fmt.Sprintf("mail.provider %q is not one of smtp, ses", c.Mail.Provider))
	}
	return nil
}
