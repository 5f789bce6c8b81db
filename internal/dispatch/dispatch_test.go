package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dcragent/internal/config"
	"dcragent/internal/filter"
	"dcragent/internal/logger"
	"dcragent/internal/report"
)

type fakeSink struct {
	name      string
	policy    config.ChannelConfig
	err       error
	delivered []Notification
}

func (s *fakeSink) Name() string {
	return s.name
}

func (s *fakeSink) Policy() config.ChannelConfig {
	return s.policy
}

func (s *fakeSink) Deliver(ctx context.Context, n Notification) error {
	if s.err != nil {
		return s.err
	}
	s.delivered = append(s.delivered, n)
	return nil
}

func testNotification(d filter.Disposition) Notification {
	return Notification{
		ID: "msg-1",
		Report: &report.Report{
			Category: report.CategorySeismicIntensity,
			Complete: true,
			Header:   "Seismic Intensity Information",
			Body:     "Seismic Intensity Information\nMiyagi: 5+",
		},
		Disposition: d,
		ReceivedAt:  time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
	}
}

func TestDispatcher_FansOutToAllSinks(t *testing.T) {
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b"}
	d := NewDispatcher(logger.NopLogger(), a, b)

	d.Dispatch(context.Background(), testNotification(filter.Disposition{}))

	assert.Len(t, a.delivered, 1)
	assert.Len(t, b.delivered, 1)
}

func TestDispatcher_PolicyAppliedPerSink(t *testing.T) {
	strict := &fakeSink{name: "strict"}
	open := &fakeSink{name: "open", policy: config.ChannelConfig{IgnoreFilter: true}}
	d := NewDispatcher(logger.NopLogger(), strict, open)

	d.Dispatch(context.Background(), testNotification(filter.Disposition{Filtered: true}))

	assert.Empty(t, strict.delivered, "strict channel withholds filtered messages")
	assert.Len(t, open.delivered, 1, "open channel delivers them")
}

func TestDispatcher_FailureDoesNotStopOtherSinks(t *testing.T) {
	failing := &fakeSink{name: "failing", err: errors.New("relay down")}
	healthy := &fakeSink{name: "healthy"}
	d := NewDispatcher(logger.NopLogger(), failing, healthy)

	// Dispatch must swallow the failure; there is nothing to assert on
	// its return.
	d.Dispatch(context.Background(), testNotification(filter.Disposition{}))

	assert.Len(t, healthy.delivered, 1)
}

func TestDispatcher_NoSinks(t *testing.T) {
	d := NewDispatcher(logger.NopLogger())
	d.Dispatch(context.Background(), testNotification(filter.Disposition{}))
}
