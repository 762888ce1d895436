package watcher

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
	"urljournal/pkg/journal"
	"urljournal/pkg/storage/memory"

	"github.com/stretchr/testify/require"
)

func TestScheduledRun_SkipsWhileRunning(t *testing.T) {
	var calls atomic.Int32
	fetcher := journal.FetcherFunc(func(context.Context, string) (string, error) {
		calls.Add(1)

		return "<p>a</p>", nil
	})
	w := New(Deps{Fetcher: fetcher, Storage: memory.New()}, Options{URLs: []string{"https://a.example.com/"}})

	w.running.Store(true)
	w.scheduledRun(context.Background())
	require.Zero(t, calls.Load())

	w.running.Store(false)
	w.scheduledRun(context.Background())
	require.Equal(t, int32(1), calls.Load())
	require.False(t, w.running.Load())
}

func TestStopScheduling_IgnoresStaleCron(t *testing.T) {
	var calls atomic.Int32
	fetcher := journal.FetcherFunc(func(context.Context, string) (string, error) {
		calls.Add(1)

		return "<p>a</p>", nil
	})
	w := New(Deps{Fetcher: fetcher, Storage: memory.New()}, Options{
		URLs:     []string{"https://a.example.com/"},
		Schedule: "@every 1s",
	})

	require.NoError(t, w.Start(context.Background()))
	w.mu.Lock()
	stale := w.cron
	w.mu.Unlock()
	w.Stop(context.Background())

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop(context.Background())

	w.stopScheduling(context.Background(), stale)

	w.mu.Lock()
	require.NotNil(t, w.cron)
	require.NotSame(t, stale, w.cron)
	w.mu.Unlock()

	require.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 20*time.Millisecond)
}
