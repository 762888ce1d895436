package domain

import (
	"time"
	"urljournal/pkg/journal"

	"github.com/google/uuid"
)

// ReportID uniquely identifies a report.
// It wraps uuid.UUID to provide type safety at the domain layer.
type ReportID uuid.UUID

// String returns the canonical textual form of the id.
func (id ReportID) String() string {
	return uuid.UUID(id).String()
}

// NewReportID returns a random report id.
func NewReportID() ReportID {
	return ReportID(uuid.New())
}

// Report is the outcome of comparing two consecutive snapshots.
type Report struct {
	// ID is the unique identifier of the report.
	ID ReportID
	// StartedAt is when the run that produced the report began.
	StartedAt time.Time
	// FinishedAt is when the report was complete.
	FinishedAt time.Time

	// BaseSize is the number of URLs in the previous snapshot.
	BaseSize int
	// CurrentSize is the number of URLs in the new snapshot.
	CurrentSize int

	// Disappeared lists URLs present only in the previous snapshot, sorted.
	Disappeared []string
	// Appeared lists URLs present only in the new snapshot, sorted.
	Appeared []string
	// Modified lists URLs whose content changed, sorted.
	Modified []string

	// Notified is true when the report was delivered to its recipient.
	Notified bool
}

// NewReport fills a report from a diff between snapshots of the given sizes.
func NewReport(d *journal.Diff, baseSize, currentSize int, startedAt time.Time) Report {
	return Report{
		ID:          NewReportID(),
		StartedAt:   startedAt,
		BaseSize:    baseSize,
		CurrentSize: currentSize,
		Disappeared: d.Disappeared().Sorted(),
		Appeared:    d.Appeared().Sorted(),
		Modified:    d.Modified().Sorted(),
	}
}

// HasChanges reports whether any URL disappeared, appeared or changed.
func (r Report) HasChanges() bool {
	return len(r.Disappeared) > 0 || len(r.Appeared) > 0 || len(r.Modified) > 0
}
