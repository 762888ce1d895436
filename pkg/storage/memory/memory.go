// Package memory implements storage.Storage in process memory. Only the
// latest snapshot and the latest report are kept.
package memory

import (
	"context"
	"slices"
	"sync"
	"urljournal/pkg/domain"
	"urljournal/pkg/journal"
	"urljournal/pkg/serrors"
	"urljournal/pkg/storage"
)

// Memory is a mutex-guarded storage.Storage.
type Memory struct {
	mu       sync.RWMutex
	snapshot *journal.Journal
	report   *domain.Report
	closed   bool
}

var _ storage.Storage = (*Memory)(nil)

// New creates an empty Memory storage.
func New() *Memory {
	return &Memory{}
}

// LatestSnapshot returns a copy of the stored snapshot.
func (m *Memory) LatestSnapshot(_ context.Context) (*journal.Journal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, serrors.KindOnly(storage.ErrClosed)
	}
	if m.snapshot == nil {
		return nil, serrors.With(storage.ErrNotFound, "no snapshot stored")
	}

	return m.snapshot.Clone(), nil
}

// StoreSnapshot stores a copy of snapshot, so later changes to it are not seen.
func (m *Memory) StoreSnapshot(_ context.Context, snapshot *journal.Journal) error {
	if snapshot == nil {
		return serrors.With(serrors.ErrBadRequest, "snapshot is required")
	}
	c := snapshot.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return serrors.KindOnly(storage.ErrClosed)
	}
	m.snapshot = c

	return nil
}

// LatestReport returns a copy of the stored report.
func (m *Memory) LatestReport(_ context.Context) (*domain.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, serrors.KindOnly(storage.ErrClosed)
	}
	if m.report == nil {
		return nil, serrors.With(storage.ErrNotFound, "no report stored")
	}

	r := cloneReport(*m.report)

	return &r, nil
}

// StoreReport replaces the stored report.
func (m *Memory) StoreReport(_ context.Context, report domain.Report) error {
	r := cloneReport(report)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return serrors.KindOnly(storage.ErrClosed)
	}
	m.report = &r

	return nil
}

// Close drops everything stored. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.snapshot = nil
	m.report = nil

	return nil
}

func cloneReport(r domain.Report) domain.Report {
	r.Disappeared = slices.Clone(r.Disappeared)
	r.Appeared = slices.Clone(r.Appeared)
	r.Modified = slices.Clone(r.Modified)

	return r
}
