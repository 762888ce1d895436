package main

import (
	"context"
	"fmt"
	"io"
	"urljournal/internal/config"
	"urljournal/pkg/journal"
	"urljournal/pkg/notifier"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type diffOptions struct {
	base      []string
	current   []string
	recipient string
	name      string
	send      bool
}

func diffCommand(cfg *config.Config) *cobra.Command {
	var opts diffOptions

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Fetches two sets of URLs and reports how the second differs from the first",
		Example: "  urljournal diff --base https://a.example.com/,https://b.example.com/ " +
			"--current https://b.example.com/,https://c.example.com/",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.recipient == "" {
				opts.recipient = cfg.Notifier.Recipient
			}
			if opts.name == "" {
				opts.name = cfg.Notifier.RecipientName
			}

			var sender notifier.Sender
			if opts.send {
				s, err := newSender(cfg)
				if err != nil {
					return err
				}
				sender = s
			}

			return runDiff(cmd.Context(), cmd.OutOrStdout(), newFetcher(cfg), journalOptions(cfg), sender, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.base, "base", nil, "URLs of the base journal")
	cmd.Flags().StringSliceVar(&opts.current, "current", nil, "URLs of the current journal")
	cmd.Flags().StringVar(&opts.recipient, "recipient", "", "Recipient address, defaults to notifier.recipient")
	cmd.Flags().StringVar(&opts.name, "name", "", "Recipient name, defaults to notifier.recipientName")
	cmd.Flags().BoolVar(&opts.send, "send", false, "Send the report with the configured transport instead of printing it")

	return cmd
}

// runDiff builds both journals concurrently and either prints or sends the
// report. Without a recipient name only the three category lines are printed.
func runDiff(
	ctx context.Context,
	out io.Writer,
	fetcher journal.Fetcher,
	jopts []journal.Option,
	sender notifier.Sender,
	opts diffOptions,
) error {
	var base, current *journal.Journal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		base, err = journal.NewFromURLs(gctx, fetcher, opts.base, jopts...)

		return err
	})
	g.Go(func() error {
		var err error
		current, err = journal.NewFromURLs(gctx, fetcher, opts.current, jopts...)

		return err
	})
	if err := g.Wait(); err != nil {
		return err //nolint: wrapcheck
	}

	d, err := journal.Compare(base, current)
	if err != nil {
		return fmt.Errorf("could not compare journals: %w", err)
	}

	if opts.send {
		if err := notifier.Notify(ctx, d, opts.recipient, opts.name, sender); err != nil {
			return fmt.Errorf("could not send report: %w", err)
		}
		_, _ = fmt.Fprintf(out, "report sent to %s\n", opts.recipient)

		return nil
	}

	if opts.name == "" {
		_, err = fmt.Fprint(out, d)
	} else {
		_, err = fmt.Fprint(out, notifier.Render(d, opts.name))
	}
	if err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}

	return nil
}
