package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Notifier transports.
const (
	TransportLog      = "log"
	TransportSMTP     = "smtp"
	TransportTelegram = "telegram"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, page fetching,
// the watch schedule, report delivery and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Fetcher controls how watched pages are downloaded
	Fetcher struct {
		// Timeout bounds a single page fetch
		Timeout time.Duration `env:"FETCHER_TIMEOUT" env-default:"20s" yaml:"timeout"`
		// UserAgent is sent with every request
		UserAgent string `env:"FETCHER_USER_AGENT" env-default:"urljournal/1.0" yaml:"userAgent"`
		// RatePerSecond limits outgoing requests; zero disables limiting
		RatePerSecond float64 `env:"FETCHER_RATE_PER_SECOND" env-default:"0" yaml:"ratePerSecond"`
		// Burst is the number of requests allowed at once when rate limiting
		Burst int `env:"FETCHER_BURST" env-default:"1" yaml:"burst"`
		// MaxRedirects is the number of redirects followed before giving up
		MaxRedirects int `env:"FETCHER_MAX_REDIRECTS" env-default:"10" yaml:"maxRedirects"`
		// Concurrency bounds parallel fetches while taking a snapshot
		Concurrency int `env:"FETCHER_CONCURRENCY" env-default:"8" yaml:"concurrency"`
	} `yaml:"fetcher"`

	// Journal controls how fetched content is stored
	Journal struct {
		// NormalizeHTML re-serializes fetched HTML so cosmetic differences are not reported
		NormalizeHTML bool `env:"JOURNAL_NORMALIZE_HTML" env-default:"false" yaml:"normalizeHTML"`
	} `yaml:"journal"`

	// Watch contains the periodic snapshot settings
	Watch struct {
		// Schedule is a cron expression or descriptor for snapshot runs
		Schedule string `env:"WATCH_SCHEDULE" env-default:"@daily" yaml:"schedule"`
		// URLs are the pages to watch
		URLs []string `env:"WATCH_URLS" env-separator:"," yaml:"urls"`
		// RunOnStart takes a snapshot as soon as the watcher starts
		RunOnStart bool `env:"WATCH_RUN_ON_START" yaml:"runOnStart"`
	} `yaml:"watch"`

	// Notifier contains report delivery settings
	Notifier struct {
		// Transport is one of log, smtp or telegram
		Transport string `env:"NOTIFIER_TRANSPORT" env-default:"log" yaml:"transport"`
		// Recipient is the address reports are sent to
		Recipient string `env:"NOTIFIER_RECIPIENT" yaml:"recipient"`
		// RecipientName is used in the report's greeting
		RecipientName string `env:"NOTIFIER_RECIPIENT_NAME" yaml:"recipientName"`
		// From is the sender address used by the smtp transport
		From string `env:"NOTIFIER_FROM" env-default:"notificationservice@localhost.localdomain" yaml:"from"`

		// SMTP configures the smtp transport
		SMTP struct {
			Host     string `env:"NOTIFIER_SMTP_HOST" env-default:"localhost" yaml:"host"`
			Port     int    `env:"NOTIFIER_SMTP_PORT" env-default:"25" yaml:"port"`
			Username string `env:"NOTIFIER_SMTP_USERNAME" yaml:"username"`
			Password string `env:"NOTIFIER_SMTP_PASSWORD" yaml:"password"`
		} `yaml:"smtp"`

		// Telegram configures the telegram transport
		Telegram struct {
			Token  string `env:"NOTIFIER_TELEGRAM_TOKEN" yaml:"token"`
			ChatID int64  `env:"NOTIFIER_TELEGRAM_CHAT_ID" yaml:"chatID"`
		} `yaml:"telegram"`
	} `yaml:"notifier"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// Environment variables override values from the file. A missing file is not
// an error; the configuration then comes from the environment and defaults.
func Load(configPath string) (*Config, error) {
	var cfg Config

	_, err := os.Stat(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = cleanenv.ReadEnv(&cfg)
	case err != nil:
		return nil, fmt.Errorf("could not stat config: %w", err)
	default:
		err = cleanenv.ReadConfig(configPath, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values cleanenv cannot express as tags.
func (c *Config) Validate() error {
	switch c.Notifier.Transport {
	case TransportLog, TransportSMTP, TransportTelegram:
	default:
		return fmt.Errorf("unknown notifier transport %q", c.Notifier.Transport)
	}
	if c.Fetcher.Concurrency < 1 {
		return fmt.Errorf("fetcher concurrency must be positive, got %d", c.Fetcher.Concurrency)
	}

	return nil
}
