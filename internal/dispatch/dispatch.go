// Package dispatch fans decoded messages out to the notification
// channels. Channels are independent: each one applies its own
// suppression switches, and a failing channel never blocks the others or
// the pipeline.
package dispatch

import (
	"context"
	"time"

	"dcragent/internal/config"
	"dcragent/internal/filter"
	"dcragent/internal/logger"
	"dcragent/internal/report"
	"dcragent/pkg/metrics"
)

// Notification is one message on its way out, with everything a channel
// needs to render it and to decide suppression.
type Notification struct {
	ID          string
	Report      *report.Report
	Disposition filter.Disposition
	ReceivedAt  time.Time
}

// Sink is one notification channel.
type Sink interface {
	Name() string
	Policy() config.ChannelConfig
	Deliver(ctx context.Context, n Notification) error
}

// Dispatcher delivers notifications to the registered sinks in
// registration order.
type Dispatcher struct {
	log   logger.Logger
	sinks []Sink
}

func NewDispatcher(log logger.Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{log: log, sinks: sinks}
}

// Dispatch hands n to every sink whose policy admits it. Delivery
// failures are logged and counted, never returned: losing one channel
// must not stop the agent or starve the other channels.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) {
	for _, s := range d.sinks {
		reason, suppressed := Suppress(s.Policy(), n.Disposition)
		if suppressed {
			metrics.IncSuppressed(s.Name(), reason)
			d.log.DebugwCtx(ctx, "notification withheld by channel policy",
				"channel", s.Name(),
				"reason", reason,
			)
			continue
		}

		start := time.Now()
		err := s.Deliver(ctx, n)
		metrics.ObserveDeliveryDuration(s.Name(), time.Since(start))
		if err != nil {
			metrics.IncDelivery(s.Name(), "failed")
			d.log.ErrorwCtx(ctx, "notification delivery failed",
				"channel", s.Name(),
				"error", err,
			)
			continue
		}
		metrics.IncDelivery(s.Name(), "delivered")
	}
}
