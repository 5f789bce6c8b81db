package decode

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"dcragent/internal/logger"
	"dcragent/internal/report"
	"dcragent/pkg/metrics"
)

// jsonlRecord is one decoded report on the wire. Complete defaults to
// true when absent; only multi-part categories ever send false.
type jsonlRecord struct {
	Category       string     `json:"category"`
	IssuedAt       *time.Time `json:"issued_at"`
	Classification int        `json:"classification"`
	Training       bool       `json:"training"`
	Complete       *bool      `json:"complete"`
	Localities     []string   `json:"localities"`
	Header         string     `json:"header"`
	Body           string     `json:"body"`
}

// JSONLDecoder reads one JSON report per line, the format an
// out-of-process decoder emits. Undecodable lines are counted and
// skipped; a bad line must not cost the stream.
type JSONLDecoder struct {
	log logger.Logger
}

func NewJSONLDecoder(log logger.Logger) *JSONLDecoder {
	return &JSONLDecoder{log: log}
}

func (d *JSONLDecoder) Name() string {
	return "jsonl"
}

func (d *JSONLDecoder) DecodeStream(ctx context.Context, src io.Reader, emit ReportFunc) error {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		r, err := parseRecord(line)
		if err != nil {
			metrics.IncDecodeError()
			d.log.Warnw("undecodable source line",
				"decoder", d.Name(),
				"error", err,
			)
			continue
		}

		if err := emit(ctx, r); err != nil {
			return &CallbackError{Err: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return &StreamError{Err: err}
	}
	return nil
}

func parseRecord(line string) (*report.Report, error) {
	var rec jsonlRecord
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return nil, fmt.Errorf("parse report line: %w", err)
	}

	complete := true
	if rec.Complete != nil {
		complete = *rec.Complete
	}

	return &report.Report{
		Category:       report.ParseCategory(rec.Category),
		IssuedAt:       rec.IssuedAt,
		Classification: rec.Classification,
		Training:       rec.Training,
		Complete:       complete,
		Localities:     rec.Localities,
		Header:         rec.Header,
		Body:           rec.Body,
		Raw:            line,
	}, nil
}
