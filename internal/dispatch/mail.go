package dispatch

import (
	"context"
	"fmt"
	"strings"

	"dcragent/internal/config"
	"dcragent/internal/constants"
	"dcragent/pkg/circuitbreaker"
)

// Message is one outbound notification mail.
type Message struct {
	Subject string
	Body    string
}

// MailSender delivers a composed message. Implementations own the
// transport; the sink owns composition and suppression policy.
type MailSender interface {
	Send(ctx context.Context, m Message) error
}

// MailSink composes and sends one mail per admitted message. A failed
// send is reported to the dispatcher and dropped there; a message is
// never queued for a second attempt. The optional circuit breaker stops
// the sink from hammering a dead relay.
type MailSink struct {
	cfg     config.MailSinkConfig
	sender  MailSender
	breaker *circuitbreaker.Wrapper
}

func NewMailSink(cfg config.MailSinkConfig, sender MailSender, breaker *circuitbreaker.Wrapper) *MailSink {
	return &MailSink{cfg: cfg, sender: sender, breaker: breaker}
}

func (s *MailSink) Name() string {
	return "mail"
}

func (s *MailSink) Policy() config.ChannelConfig {
	return s.cfg.Channel
}

func (s *MailSink) Deliver(ctx context.Context, n Notification) error {
	m := Compose(n, s.cfg.SuppressHeaderFromText)

	send := func() error { return s.sender.Send(ctx, m) }
	if s.breaker == nil {
		return send()
	}

	err := s.breaker.ExecuteWithContext(ctx, send)
	s.breaker.RecordRequest(err == nil)
	return err
}

// Compose builds the mail for n. The subject is the message headline for
// JMA categories and the fixed category label for the extended family,
// with the training marker prefixed for drills. The body ends with the
// event time (issue time when the message carries one, arrival time
// otherwise); the headline is stripped from the body when the operator
// asked for that and the body actually starts with it.
func Compose(n Notification, suppressHeader bool) Message {
	r := n.Report

	subject := r.Header
	if d := r.Category.Descriptor(); d.Extended {
		subject = d.Label
	}
	if n.Disposition.Training {
		subject = constants.TrainingMarker + subject
	}

	body := r.Body
	if suppressHeader && r.Header != "" {
		if rest, ok := strings.CutPrefix(body, r.Header); ok {
			body = strings.TrimLeft(rest, "\n")
		}
	}

	body = strings.TrimRight(body, "\n")
	body += fmt.Sprintf("\n\nReceived at: %s\n",
		r.EventTime(n.ReceivedAt).Format(constants.TimestampFormat))

	return Message{Subject: subject, Body: body}
}
