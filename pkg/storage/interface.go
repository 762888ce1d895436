// Package storage defines the storage interfaces the watcher relies on. It
// abstracts where snapshots and reports are kept so that different backends
// can provide concrete implementations.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go
package storage

import (
	"context"
	"urljournal/pkg/domain"
	"urljournal/pkg/journal"
)

// SnapshotStorage keeps the most recent journal snapshot.
type SnapshotStorage interface {
	// LatestSnapshot returns the last stored snapshot or an ErrNotFound error
	// when nothing was stored yet.
	LatestSnapshot(ctx context.Context) (*journal.Journal, error)
	// StoreSnapshot replaces the latest snapshot.
	StoreSnapshot(ctx context.Context, snapshot *journal.Journal) error
}

// ReportStorage keeps the most recent comparison report.
type ReportStorage interface {
	// LatestReport returns the last stored report or an ErrNotFound error when
	// nothing was stored yet.
	LatestReport(ctx context.Context) (*domain.Report, error)
	// StoreReport replaces the latest report.
	StoreReport(ctx context.Context, report domain.Report) error
}

// Storage is a composite of all storage capabilities plus lifecycle
// management.
type Storage interface {
	SnapshotStorage
	ReportStorage

	// Close releases any resources held by the implementation. After Close the
	// instance should not be used.
	Close() error
}
