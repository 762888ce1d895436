package v1handler

import (
	"context"
	"errors"
	"net/http"
	"urljournal/pkg/logger"
	"urljournal/pkg/serrors"
	"urljournal/pkg/storage"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// Deps are the collaborators of the v1 handlers.
type Deps struct {
	// Reports serves the latest comparison report.
	Reports storage.ReportStorage
}

// Handler serves the v1 HTTP API.
type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts the handler's routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/report", h.GetReport)
	mux.HandleFunc("GET /healthz", h.Healthz)
}

// Healthz reports that the process is serving requests.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// Encode writes the response as {"code": ..., "error": ...}.
func (r ErrorResponse) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("code")
	e.Str(r.Code)
	e.FieldStart("error")
	e.Str(r.Message)
	e.ObjEnd()
}

// errorStatuses maps semantic kinds to HTTP statuses and default messages.
var errorStatuses = []struct { //nolint: gochecknoglobals
	kind    serrors.Kind
	status  int
	message string
}{
	{serrors.ErrNotFound, http.StatusNotFound, "resource not found"},
	{serrors.ErrBadRequest, http.StatusBadRequest, "bad request"},
	{serrors.ErrTimeout, http.StatusGatewayTimeout, "timed out"},
	{serrors.ErrUnavailable, http.StatusServiceUnavailable, "service unavailable"},
	{serrors.ErrRateLimited, http.StatusTooManyRequests, "rate limited"},
}

// NewError maps err to an ErrorResponse. Semantic errors keep their message;
// anything else is logged and reported as an internal error.
func (h *Handler) NewError(ctx context.Context, err error) ErrorResponse {
	for _, s := range errorStatuses {
		if !errors.Is(err, s.kind) {
			continue
		}

		message := s.message
		var se *serrors.Error
		if errors.As(err, &se) && se.Message() != "" {
			message = se.Message()
		}

		return ErrorResponse{StatusCode: s.status, Code: s.kind.Error(), Message: message}
	}

	logger.Error(ctx, "request failed", zap.Error(err))

	return ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Code:       serrors.ErrInternal.Error(),
		Message:    "internal error",
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)

	var e jx.Encoder
	res.Encode(&e)
	writeJSON(w, res.StatusCode, e.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
