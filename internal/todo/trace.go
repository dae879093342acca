// ABOUTME: Operation tracing for the todo service.
// ABOUTME: Wraps each service call with start/end/error log lines and timing.

package todo

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// opTrace is a per-operation trace boundary. Business logic calls begin once,
// then exactly one of End or Fail. Keeping the hooks explicit means tracing
// can be changed or removed without touching the operations themselves.
type opTrace struct {
	logger *slog.Logger
	op     string
	id     string
	start  time.Time
}

// begin opens a trace for the named operation with a short correlation id.
func (s *Service) begin(op string, args ...any) *opTrace {
	t := &opTrace{
		logger: s.logger,
		op:     op,
		id:     uuid.New().String()[:8],
		start:  time.Now(),
	}
	attrs := append([]any{"op", op, "trace_id", t.id}, args...)
	t.logger.Debug("op start", attrs...)
	return t
}

// End records a successful completion with a summary of the outcome.
func (t *opTrace) End(args ...any) {
	attrs := append([]any{"op", t.op, "trace_id", t.id, "duration_ms", t.millis()}, args...)
	t.logger.Info("op done", attrs...)
}

// Fail records a failed completion with the error summary.
func (t *opTrace) Fail(err error) {
	t.logger.Error("op failed",
		"op", t.op, "trace_id", t.id, "duration_ms", t.millis(), "error", err)
}

func (t *opTrace) millis() int64 {
	return time.Since(t.start).Milliseconds()
}
