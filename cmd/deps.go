package main

import (
	"fmt"
	"net/http"
	"urljournal/internal/config"
	"urljournal/pkg/fetcher"
	"urljournal/pkg/htmldoc"
	"urljournal/pkg/journal"
	"urljournal/pkg/notifier"
	"urljournal/pkg/notifier/logsender"
	"urljournal/pkg/notifier/smtpsender"
	"urljournal/pkg/notifier/telegram"
)

// newFetcher creates the page fetcher from configuration.
func newFetcher(cfg *config.Config) *fetcher.Client {
	return fetcher.New(&http.Client{}, fetcher.Options{
		Timeout:       cfg.Fetcher.Timeout,
		UserAgent:     cfg.Fetcher.UserAgent,
		MaxRedirects:  cfg.Fetcher.MaxRedirects,
		RatePerSecond: cfg.Fetcher.RatePerSecond,
		Burst:         cfg.Fetcher.Burst,
	})
}

// journalOptions translates configuration into options for every journal.
func journalOptions(cfg *config.Config) []journal.Option {
	opts := []journal.Option{journal.WithConcurrency(cfg.Fetcher.Concurrency)}
	if cfg.Journal.NormalizeHTML {
		opts = append(opts, journal.WithNormalizer(htmldoc.Normalize))
	}

	return opts
}

// newSender creates the configured report transport.
func newSender(cfg *config.Config) (notifier.Sender, error) {
	switch cfg.Notifier.Transport {
	case config.TransportLog:
		return logsender.New(), nil
	case config.TransportSMTP:
		s, err := smtpsender.New(smtpsender.Options{
			Host:     cfg.Notifier.SMTP.Host,
			Port:     cfg.Notifier.SMTP.Port,
			Username: cfg.Notifier.SMTP.Username,
			Password: cfg.Notifier.SMTP.Password,
			From:     cfg.Notifier.From,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create smtp sender: %w", err)
		}

		return s, nil
	case config.TransportTelegram:
		s, err := telegram.New(telegram.Options{
			Token:  cfg.Notifier.Telegram.Token,
			ChatID: cfg.Notifier.Telegram.ChatID,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create telegram sender: %w", err)
		}

		return s, nil
	default:
		return nil, fmt.Errorf("unknown notifier transport %q", cfg.Notifier.Transport)
	}
}
