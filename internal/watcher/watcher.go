// Package watcher periodically snapshots a set of URLs, compares each snapshot
// with the previous one and notifies a recipient about the differences.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"urljournal/pkg/domain"
	"urljournal/pkg/journal"
	"urljournal/pkg/logger"
	"urljournal/pkg/metrics"
	"urljournal/pkg/notifier"
	"urljournal/pkg/serrors"
	"urljournal/pkg/storage"
	"urljournal/pkg/urlvalidate"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSchedule runs the watcher once a day at midnight.
const DefaultSchedule = "@daily"

// ErrAlreadyStarted is returned by Start when the watcher is running.
var ErrAlreadyStarted = serrors.NewKind("WATCHER_ALREADY_STARTED")

// Deps are the collaborators of a Watcher.
type Deps struct {
	// Fetcher downloads pages.
	Fetcher journal.Fetcher
	// Sender delivers reports.
	Sender notifier.Sender
	// Storage keeps the previous snapshot and the latest report.
	Storage storage.Storage
}

// Options configure a Watcher.
type Options struct {
	// URLs are the pages to watch. Duplicates after normalization are dropped.
	URLs []string
	// Schedule is a 5-field cron expression or a descriptor such as @daily.
	Schedule string
	// Concurrency bounds parallel fetches within one run.
	Concurrency int
	// Location is the time zone of Schedule. Defaults to time.Local.
	Location *time.Location
	// Recipient is the address reports are sent to.
	Recipient string
	// RecipientName is used in the report's greeting.
	RecipientName string
	// JournalOptions are passed to every snapshot.
	JournalOptions []journal.Option
	// RunOnStart triggers a run as soon as Start is called.
	RunOnStart bool
}

// Watcher runs snapshot and comparison cycles, either on demand through
// RunOnce or on a cron schedule after Start.
type Watcher struct {
	deps    Deps
	options Options
	parser  cron.Parser
	now     func() time.Time

	// running guards against overlapping runs.
	running atomic.Bool
	// starts tracks runs triggered by RunOnStart.
	starts sync.WaitGroup

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc
}

// New creates a Watcher.
func New(deps Deps, opts Options) *Watcher {
	if opts.Schedule == "" {
		opts.Schedule = DefaultSchedule
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Concurrency > 0 {
		opts.JournalOptions = append(opts.JournalOptions, journal.WithConcurrency(opts.Concurrency))
	}

	return &Watcher{
		deps:    deps,
		options: opts,
		parser:  cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		now:     time.Now,
	}
}

// URLs returns the normalized, de-duplicated list of watched URLs in
// configuration order.
func (w *Watcher) URLs() ([]string, error) {
	seen := make(map[string]struct{}, len(w.options.URLs))
	out := make([]string, 0, len(w.options.URLs))
	for _, raw := range w.options.URLs {
		u, err := urlvalidate.NormalizeURL(raw)
		if err != nil {
			return nil, serrors.Wrap(journal.ErrInvalidURL, err, "invalid watched URL %q", raw)
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}

	return out, nil
}

// RunOnce takes a snapshot and, when a previous snapshot exists, compares the
// two, notifies the recipient and stores the report. The new snapshot always
// becomes the latest one. A nil report without error means there was nothing
// to compare against yet. A failed notification is logged and recorded on the
// report; it does not fail the run.
func (w *Watcher) RunOnce(ctx context.Context) (*domain.Report, error) {
	startedAt := w.now()
	ctx = logger.WithFields(ctx, zap.String("runID", uuid.NewString()))

	urls, err := w.URLs()
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "taking snapshot", zap.Int("URLs", len(urls)))

	current, err := journal.NewFromURLs(ctx, w.deps.Fetcher, urls, w.options.JournalOptions...)
	if err != nil {
		return nil, fmt.Errorf("could not take snapshot: %w", err)
	}
	// fetches cut short by cancellation look like missing pages
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("snapshot interrupted: %w", err)
	}
	metrics.JournalSize.Set(float64(current.Size()))

	previous, err := w.deps.Storage.LatestSnapshot(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("could not load previous snapshot: %w", err)
	}

	if err := w.deps.Storage.StoreSnapshot(ctx, current); err != nil {
		return nil, fmt.Errorf("could not store snapshot: %w", err)
	}

	if previous == nil {
		logger.Info(ctx, "first snapshot stored, nothing to compare", zap.Int("size", current.Size()))

		return nil, nil //nolint: nilnil
	}

	d, err := journal.Compare(previous, current)
	if err != nil {
		return nil, fmt.Errorf("could not compare snapshots: %w", err)
	}

	report := domain.NewReport(d, previous.Size(), current.Size(), startedAt)
	metrics.DiffURLs.WithLabelValues("disappeared").Set(float64(len(report.Disappeared)))
	metrics.DiffURLs.WithLabelValues("appeared").Set(float64(len(report.Appeared)))
	metrics.DiffURLs.WithLabelValues("modified").Set(float64(len(report.Modified)))

	ctx = logger.WithFields(ctx, zap.String("reportID", report.ID.String()))

	err = notifier.Notify(ctx, d, w.options.Recipient, w.options.RecipientName, w.deps.Sender)
	if err != nil {
		metrics.Notifications.WithLabelValues("failed").Inc()
		logger.Error(ctx, "could not notify recipient", zap.Error(err))
	} else {
		metrics.Notifications.WithLabelValues("sent").Inc()
		report.Notified = true
	}

	report.FinishedAt = w.now()
	if err := w.deps.Storage.StoreReport(ctx, report); err != nil {
		return nil, fmt.Errorf("could not store report: %w", err)
	}

	logger.Info(ctx, "snapshots compared",
		zap.Int("disappeared", len(report.Disappeared)),
		zap.Int("appeared", len(report.Appeared)),
		zap.Int("modified", len(report.Modified)),
		zap.Bool("notified", report.Notified))

	return &report, nil
}

// Start schedules RunOnce according to Options.Schedule. Runs that would
// overlap a still running one are skipped. No new runs are scheduled once ctx
// is done, but a run in progress keeps going until Stop gives up waiting.
func (w *Watcher) Start(ctx context.Context) error {
	schedule, err := w.parser.Parse(w.options.Schedule)
	if err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid schedule %q", w.options.Schedule)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cron != nil {
		return serrors.KindOnly(ErrAlreadyStarted)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c := cron.New(cron.WithParser(w.parser), cron.WithLocation(w.options.Location))
	c.Schedule(schedule, cron.FuncJob(func() { w.scheduledRun(runCtx) }))
	c.Start()

	w.cron = c
	w.cancel = cancel

	if w.options.RunOnStart {
		w.starts.Add(1)
		go func() {
			defer w.starts.Done()
			w.scheduledRun(runCtx)
		}()
	}

	logger.Info(ctx, "watcher started",
		zap.String("schedule", w.options.Schedule),
		zap.Time("next", schedule.Next(w.now().In(w.options.Location))))

	go func() {
		select {
		case <-ctx.Done():
			w.stopScheduling(ctx, c)
		case <-runCtx.Done():
		}
	}()

	return nil
}

// stopScheduling stops c from triggering further runs if it is still the
// watcher's current cron.
func (w *Watcher) stopScheduling(ctx context.Context, c *cron.Cron) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cron != c {
		return
	}
	c.Stop()

	logger.Info(ctx, "watcher context done, no further runs scheduled")
}

func (w *Watcher) scheduledRun(ctx context.Context) {
	if !w.running.CompareAndSwap(false, true) {
		logger.Warn(ctx, "previous run still in progress, skipping")

		return
	}
	defer w.running.Store(false)

	if _, err := w.RunOnce(ctx); err != nil {
		logger.Error(ctx, "watch run failed", zap.Error(err))
	}
}

// Stop prevents further runs and waits for a running one to finish or for
// ctx to be done, whichever comes first. In the latter case the running job's
// context is canceled. Stop is safe to call more than once.
func (w *Watcher) Stop(ctx context.Context) {
	w.mu.Lock()
	c, cancel := w.cron, w.cancel
	w.cron, w.cancel = nil, nil
	w.mu.Unlock()

	if c == nil {
		return
	}

	done := make(chan struct{})
	go func() {
		<-c.Stop().Done()
		w.starts.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(ctx, "watcher stop timed out, canceling running job")
	}
	cancel()

	logger.Info(ctx, "watcher stopped")
}
