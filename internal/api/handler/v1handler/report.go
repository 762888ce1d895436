package v1handler

import (
	"errors"
	"net/http"
	"time"
	"urljournal/pkg/domain"
	"urljournal/pkg/serrors"
	"urljournal/pkg/storage"

	"github.com/go-faster/jx"
)

// EncodeReport writes r as a JSON object.
func EncodeReport(e *jx.Encoder, r *domain.Report) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(r.ID.String())
	e.FieldStart("startedAt")
	e.Str(r.StartedAt.UTC().Format(time.RFC3339Nano))
	e.FieldStart("finishedAt")
	e.Str(r.FinishedAt.UTC().Format(time.RFC3339Nano))
	e.FieldStart("baseSize")
	e.Int(r.BaseSize)
	e.FieldStart("currentSize")
	e.Int(r.CurrentSize)
	encodeURLs(e, "disappeared", r.Disappeared)
	encodeURLs(e, "appeared", r.Appeared)
	encodeURLs(e, "modified", r.Modified)
	e.FieldStart("notified")
	e.Bool(r.Notified)
	e.ObjEnd()
}

func encodeURLs(e *jx.Encoder, field string, urls []string) {
	e.FieldStart(field)
	e.ArrStart()
	for _, u := range urls {
		e.Str(u)
	}
	e.ArrEnd()
}

// GetReport returns the latest comparison report.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	if h.deps.Reports == nil {
		h.writeError(w, r, serrors.With(serrors.ErrUnavailable, "reports are not available"))

		return
	}

	report, err := h.deps.Reports.LatestReport(r.Context())
	if errors.Is(err, storage.ErrNotFound) {
		h.writeError(w, r, serrors.With(serrors.ErrNotFound, "no report yet"))

		return
	}
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	var e jx.Encoder
	EncodeReport(&e, report)
	writeJSON(w, http.StatusOK, e.Bytes())
}
