// Package telegram delivers reports to a Telegram chat through the Bot API.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"urljournal/pkg/notifier"
	"urljournal/pkg/serrors"

	tele "gopkg.in/telebot.v4"
)

// MaxMessageLength is the Bot API limit for a single text message, in runes.
const MaxMessageLength = 4096

// Options configure the Telegram transport.
type Options struct {
	// Token is the bot token issued by BotFather.
	Token string
	// ChatID is the chat every report goes to.
	ChatID int64
	// APIURL overrides the Bot API endpoint. Empty means the public one.
	APIURL string
	// HTTPClient is used for API calls. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Sender posts reports to a fixed chat. The recipient address of a message is
// only used in the greeting; routing is decided by ChatID.
type Sender struct {
	bot    *tele.Bot
	chatID tele.ChatID
}

var _ notifier.Sender = (*Sender)(nil)

// New creates an offline bot: no updates are polled and no getMe call is made.
func New(opts Options) (*Sender, error) {
	if strings.TrimSpace(opts.Token) == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "telegram token is empty")
	}
	if opts.ChatID == 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "telegram chat id is required")
	}

	bot, err := tele.NewBot(tele.Settings{
		URL:     opts.APIURL,
		Token:   opts.Token,
		Client:  opts.HTTPClient,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create telegram bot: %w", err)
	}

	return &Sender{bot: bot, chatID: tele.ChatID(opts.ChatID)}, nil
}

// Send posts the subject and body as one text message.
func (s *Sender) Send(ctx context.Context, msg notifier.Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("could not send telegram message: %w", err)
	}

	text := truncate(msg.Subject+"\n\n"+msg.Body, MaxMessageLength)
	if _, err := s.bot.Send(s.chatID, text, &tele.SendOptions{DisableWebPagePreview: true}); err != nil {
		return fmt.Errorf("could not send telegram message: %w", err)
	}

	return nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit-1]) + "…"
}
