// Package notifier renders a journal.Diff into a plain-text report addressed
// to a person and hands it to a Sender. Transports live in sub-packages.
package notifier

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"urljournal/pkg/journal"
	"urljournal/pkg/serrors"
)

// Semantic error kinds returned by Notify.
var (
	// ErrInvalidRecipient is returned when the address is not shaped like local@domain.tld.
	ErrInvalidRecipient = serrors.NewKind("INVALID_RECIPIENT")
	// ErrBlankName is returned when the recipient's display name is blank.
	ErrBlankName = serrors.NewKind("BLANK_NAME")
	// ErrMissingSender is returned when no Sender is given.
	ErrMissingSender = serrors.NewKind("MISSING_SENDER")
)

const (
	// Subject is the subject line of every report.
	Subject = "One more journal-comparison notifier's notification."
	// FromName is the display name transports use for the report's author.
	FromName = "Journal-comparison notifier"
)

var addressPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?)*\.[A-Za-z]{2,}$`) //nolint: lll

// Message is a rendered report ready to be delivered.
type Message struct {
	// To is the recipient's address.
	To string
	// Name is the recipient's display name.
	Name string
	// Subject is the message subject.
	Subject string
	// Body is the rendered plain-text report.
	Body string
}

// Sender delivers a rendered report.
//
//go:generate mockgen -package mocknotifier -source=notifier.go -destination=mock/mocknotifier.go
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// IsValidAddress reports whether address looks like local-part@domain.tld.
func IsValidAddress(address string) bool {
	return addressPattern.MatchString(address)
}

// Render formats the report for name.
func Render(d *journal.Diff, name string) string {
	return fmt.Sprintf("Dear %s\n\n"+
		"Here is Journal changes occurred in 24 hours :\n"+
		"%s"+
		"Best Wishes,\n"+
		"Automatic Monitoring System\n",
		name, d)
}

// Notify validates its arguments, renders the report and calls sender.Send
// exactly once. The sender's error is returned as is; Notify never retries.
func Notify(ctx context.Context, d *journal.Diff, address, name string, sender Sender) error {
	if !IsValidAddress(address) {
		return serrors.With(ErrInvalidRecipient, "invalid recipient address %q", address)
	}
	if sender == nil {
		return serrors.KindOnly(ErrMissingSender)
	}
	if strings.TrimSpace(name) == "" {
		return serrors.KindOnly(ErrBlankName)
	}
	if d == nil {
		return serrors.With(serrors.ErrBadRequest, "diff is required")
	}

	return sender.Send(ctx, Message{ //nolint: wrapcheck
		To:      address,
		Name:    name,
		Subject: Subject,
		Body:    Render(d, name),
	})
}
