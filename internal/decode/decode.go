// Package decode turns the source subprocess's output stream into
// reports. Two stream formats are supported: the hex-dump framing gpsmon
// prints for the receiver, and a line-delimited JSON stream for decoders
// that run out of process.
package decode

import (
	"context"
	"fmt"
	"io"

	"dcragent/internal/report"
)

// maxLineBytes bounds a single source line. gpsmon lines are short; a
// line this long means the stream is garbage.
const maxLineBytes = 1 << 20

// ReportFunc receives each decoded report in stream order. An error
// aborts the stream and is fatal to the agent.
type ReportFunc func(ctx context.Context, r *report.Report) error

// Decoder consumes one source stream until EOF, a stream error or
// context cancellation.
type Decoder interface {
	Name() string
	DecodeStream(ctx context.Context, src io.Reader, emit ReportFunc) error
}

// StreamError wraps a read failure on the source stream. The stream is
// lost but the agent is fine; the supervisor restarts the source.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("source stream error: %v", e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// CallbackError wraps a failure raised by the report callback. This is
// the pipeline failing, not the source, and restarting the source would
// not help; the supervisor treats it as fatal.
type CallbackError struct {
	Err error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("report handling failed: %v", e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}
