// Package filter decides what travels with a decoded message: whether the
// category rules mark it filtered, and the training and incomplete flags
// the notification channels suppress on. Filtering never drops a message
// by itself; each channel decides from its own switches.
package filter

import (
	"dcragent/internal/config"
	"dcragent/internal/match"
	"dcragent/internal/report"
)

// Reason says why a message was screened out or marked filtered.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonNull
	ReasonUnknownCategory
	ReasonDisabledCategory
	ReasonKeywordMismatch
)

func (r Reason) String() string {
	switch r {
	case ReasonNull:
		return "null"
	case ReasonUnknownCategory:
		return "unknown_category"
	case ReasonDisabledCategory:
		return "disabled_category"
	case ReasonKeywordMismatch:
		return "keyword_mismatch"
	default:
		return "none"
	}
}

// Disposition carries the per-message markers to the notification
// channels.
type Disposition struct {
	Filtered   bool
	Training   bool
	Incomplete bool
}

// Engine evaluates the category rules. It is built once from the
// configuration snapshot and holds no mutable state.
type Engine struct {
	cfg *config.Config
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Screen decides whether a message enters the pipeline at all. Null
// telemetry and unknown categories are dropped here, before
// deduplication, so they never occupy cache entries.
func (e *Engine) Screen(r *report.Report) (Reason, bool) {
	switch r.Category {
	case report.CategoryNull:
		return ReasonNull, true
	case report.CategoryUnknown:
		return ReasonUnknownCategory, true
	}
	return ReasonNone, false
}

// Evaluate computes the disposition for a message that passed screening
// and deduplication. Filtered is set for a disabled category or a keyword
// mismatch, in that order of precedence. The training override can clear
// Filtered but never touches Training or Incomplete.
func (e *Engine) Evaluate(r *report.Report) (Disposition, Reason) {
	d := Disposition{
		Training:   r.IsTraining(),
		Incomplete: r.Category.Descriptor().MultiPart && !r.Complete,
	}

	reason := ReasonNone
	cc := e.cfg.Category(r.Category)
	switch {
	case !cc.Use:
		d.Filtered = true
		reason = ReasonDisabledCategory
	case !match.Any(cc.Keywords, r.Localities):
		d.Filtered = true
		reason = ReasonKeywordMismatch
	}

	if d.Filtered && d.Training && e.cfg.General.IgnoreFilterWhenTraining {
		d.Filtered = false
		reason = ReasonNone
	}

	return d, reason
}
