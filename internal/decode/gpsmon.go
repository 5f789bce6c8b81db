package decode

import (
	"bufio"
	"context"
	"io"
	"regexp"

	"dcragent/internal/logger"
	"dcragent/internal/report"
	"dcragent/pkg/metrics"
)

// FrameDecoder turns one QZSS L1S frame payload into a report. The
// bit-level message decoding lives outside this agent and plugs in here.
// A nil report with a nil error means the frame carried nothing to
// deliver, such as an unfinished part of a multi-part message.
type FrameDecoder interface {
	DecodeFrame(frame string) (*report.Report, error)
}

// GpsmonDecoder reads the raw hex dump gpsmon prints. A candidate line
// is a parenthesized byte count followed by a hex sentence; only UBX
// RXM-SFRBX sentences from QZSS satellites are handed to the frame
// decoder, everything else on the stream is receiver chatter.
type GpsmonDecoder struct {
	log       logger.Logger
	frames    FrameDecoder
	reportRaw bool
}

var (
	hexLine   = regexp.MustCompile(`^\(([0-9]+)\) ([0-9a-f]+)$`)
	jsonLine  = regexp.MustCompile(`^\(([0-9]+)\) (\{.*\})$`)
	qzssFrame = regexp.MustCompile(`^b5620213(..)0005(..)`)
)

// NewGpsmonDecoder builds the gpsmon stream decoder. When reportRaw is
// set, every gated satellite sentence is logged before decoding, decoded
// or not.
func NewGpsmonDecoder(log logger.Logger, frames FrameDecoder, reportRaw bool) *GpsmonDecoder {
	return &GpsmonDecoder{log: log, frames: frames, reportRaw: reportRaw}
}

func (d *GpsmonDecoder) Name() string {
	return "gpsmon"
}

func (d *GpsmonDecoder) DecodeStream(ctx context.Context, src io.Reader, emit ReportFunc) error {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		if m := jsonLine.FindStringSubmatch(line); m != nil {
			// Parsed telemetry from the monitor; the hex dump carries
			// the same frames.
			d.log.Debugw("gpsmon info", "payload", m[2])
			continue
		}

		m := hexLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		sentence := m[2]
		if !qzssFrame.MatchString(sentence) {
			continue
		}
		if d.reportRaw {
			d.log.Infow("raw packet", "raw", sentence)
		}

		r, err := d.frames.DecodeFrame(sentence)
		if err != nil {
			metrics.IncDecodeError()
			d.log.Warnw("undecodable satellite frame",
				"decoder", d.Name(),
				"error", err,
			)
			continue
		}
		if r == nil {
			continue
		}
		r.Raw = sentence

		if err := emit(ctx, r); err != nil {
			return &CallbackError{Err: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return &StreamError{Err: err}
	}
	return nil
}
