package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"urljournal/internal/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "/metrics", cfg.HTTP.MetricsPath)
	require.Equal(t, 20*time.Second, cfg.Fetcher.Timeout)
	require.Equal(t, 8, cfg.Fetcher.Concurrency)
	require.Equal(t, "@daily", cfg.Watch.Schedule)
	require.False(t, cfg.Watch.RunOnStart)
	require.Equal(t, config.TransportLog, cfg.Notifier.Transport)
	require.Equal(t, 25, cfg.Notifier.SMTP.Port)
	require.Equal(t, 10*time.Second, cfg.GracefulShutdownTimeout)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
environment: production
logLevel: warn
http:
  addr: ":9090"
fetcher:
  timeout: 5s
  ratePerSecond: 2.5
journal:
  normalizeHTML: true
watch:
  schedule: "0 6 * * *"
  urls:
    - https://wiki.archlinux.org/
    - https://context.reverso.net/
notifier:
  transport: telegram
  recipient: someone@example.com
  recipientName: Anton
  telegram:
    token: "123:abc"
    chatID: -100123
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, ":9090", cfg.HTTP.Addr)
	require.Equal(t, 5*time.Second, cfg.Fetcher.Timeout)
	require.InDelta(t, 2.5, cfg.Fetcher.RatePerSecond, 0)
	require.True(t, cfg.Journal.NormalizeHTML)
	require.Equal(t, "0 6 * * *", cfg.Watch.Schedule)
	require.Equal(t, []string{"https://wiki.archlinux.org/", "https://context.reverso.net/"}, cfg.Watch.URLs)
	require.Equal(t, config.TransportTelegram, cfg.Notifier.Transport)
	require.Equal(t, "Anton", cfg.Notifier.RecipientName)
	require.Equal(t, int64(-100123), cfg.Notifier.Telegram.ChatID)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "watch:\n  schedule: \"@hourly\"\n")
	t.Setenv("WATCH_SCHEDULE", "@weekly")
	t.Setenv("WATCH_URLS", "https://a.example.com/,https://b.example.com/")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "@weekly", cfg.Watch.Schedule)
	require.Equal(t, []string{"https://a.example.com/", "https://b.example.com/"}, cfg.Watch.URLs)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := config.Load(writeConfig(t, "notifier:\n  transport: pigeon\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "pigeon")

	_, err = config.Load(writeConfig(t, "fetcher:\n  concurrency: -1\n"))
	require.Error(t, err)

	_, err = config.Load(writeConfig(t, "http: [not, a, map]\n"))
	require.Error(t, err)
}
