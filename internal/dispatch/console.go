package dispatch

import (
	"context"
	"io"
	"os"

	"dcragent/internal/config"
)

// ConsoleSink prints rendered notifications to standard output, for
// running the agent interactively. The rendering matches the report file
// so eyeballs and archives agree.
type ConsoleSink struct {
	cfg        config.ConsoleSinkConfig
	includeRaw bool
	out        io.Writer
}

func NewConsoleSink(cfg config.ConsoleSinkConfig, includeRaw bool) *ConsoleSink {
	return &ConsoleSink{cfg: cfg, includeRaw: includeRaw, out: os.Stdout}
}

func (s *ConsoleSink) Name() string {
	return "console"
}

func (s *ConsoleSink) Policy() config.ChannelConfig {
	return s.cfg.Channel
}

func (s *ConsoleSink) Deliver(ctx context.Context, n Notification) error {
	_, err := io.WriteString(s.out, renderText(n, s.includeRaw))
	return err
}
