// Package smtpsender delivers reports as plain-text e-mail over SMTP.
package smtpsender

import (
	"context"
	"fmt"
	"time"
	"urljournal/pkg/notifier"
	"urljournal/pkg/serrors"

	"github.com/wneessen/go-mail"
)

// Client sends composed messages. *mail.Client implements it.
type Client interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Options configure the SMTP transport.
type Options struct {
	// Host is the SMTP server host name.
	Host string
	// Port is the SMTP server port.
	Port int
	// Username enables PLAIN authentication when set.
	Username string
	// Password is used with Username.
	Password string
	// From is the envelope and header sender address.
	From string
}

// Sender sends reports through an SMTP relay.
type Sender struct {
	options Options
	client  Client
	now     func() time.Time
}

var _ notifier.Sender = (*Sender)(nil)

// New validates opts and creates a Sender with a go-mail client. STARTTLS is
// used when the server offers it. No connection is made until Send.
func New(opts Options) (*Sender, error) {
	opts, err := validate(opts)
	if err != nil {
		return nil, err
	}

	clientOpts := []mail.Option{
		mail.WithPort(opts.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(opts.Username),
			mail.WithPassword(opts.Password),
		)
	}

	client, err := mail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid smtp settings")
	}

	return &Sender{options: opts, client: client, now: time.Now}, nil
}

// NewWithClient creates a Sender delivering through client.
func NewWithClient(opts Options, client Client) (*Sender, error) {
	opts, err := validate(opts)
	if err != nil {
		return nil, err
	}

	return &Sender{options: opts, client: client, now: time.Now}, nil
}

func validate(opts Options) (Options, error) {
	if opts.Host == "" {
		return opts, serrors.With(serrors.ErrBadRequest, "smtp host is required")
	}
	if opts.Port <= 0 {
		opts.Port = 25
	}
	if !notifier.IsValidAddress(opts.From) {
		return opts, serrors.With(serrors.ErrBadRequest, "invalid from address %q", opts.From)
	}

	return opts, nil
}

// Send composes msg and delivers it in a single SMTP session.
func (s *Sender) Send(ctx context.Context, msg notifier.Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("could not send mail: %w", err)
	}

	m, err := s.compose(msg)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("could not send mail: %w", err)
	}

	return nil
}

// compose builds a text/plain message; the body is quoted-printable encoded,
// which keeps long report lines within SMTP's line length limit.
func (s *Sender) compose(msg notifier.Message) (*mail.Msg, error) {
	m := mail.NewMsg(mail.WithCharset(mail.CharsetUTF8), mail.WithEncoding(mail.EncodingQP))
	if err := m.FromFormat(notifier.FromName, s.options.From); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid from address %q", s.options.From)
	}
	if err := m.AddToFormat(msg.Name, msg.To); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid recipient address %q", msg.To)
	}
	m.Subject(msg.Subject)
	m.SetDateWithValue(s.now())
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	return m, nil
}
