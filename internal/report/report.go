package report

import (
	"slices"
	"time"
)

// ClassificationTraining is the JMA report classification number that marks
// drill and test transmissions.
const ClassificationTraining = 7

// Report is one decoded disaster/crisis message. Localities carries the
// category-specific place names (forecast regions, prefectures or local
// governments per the category descriptor) in transmission order. Header is
// the decoder's headline for the message and Body its full textual
// rendering. Complete is meaningful only for multi-part categories; decoders
// set it true everywhere else.
type Report struct {
	Category       Category
	IssuedAt       *time.Time
	Classification int
	Training       bool
	Complete       bool
	Localities     []string
	Header         string
	Body           string

	// Raw is the undecoded source line or frame the report was decoded
	// from, kept for diagnostics. It does not participate in Equal.
	Raw string
}

// Equal reports structural equality: same category and same field values.
// Deduplication identity is defined by this method, not by pointers or by
// any decoder-internal state.
func (r *Report) Equal(o *Report) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Category != o.Category ||
		r.Classification != o.Classification ||
		r.Training != o.Training ||
		r.Complete != o.Complete ||
		r.Header != o.Header ||
		r.Body != o.Body {
		return false
	}
	if !slices.Equal(r.Localities, o.Localities) {
		return false
	}
	return timesEqual(r.IssuedAt, o.IssuedAt)
}

// EventTime returns the issue time embedded in the message when present,
// falling back to the given arrival time.
func (r *Report) EventTime(fallback time.Time) time.Time {
	if r.IssuedAt != nil {
		return *r.IssuedAt
	}
	return fallback
}

// IsTraining reports whether the message is a drill, from either the
// normalized flag or the raw JMA classification number.
func (r *Report) IsTraining() bool {
	return r.Training || r.Classification == ClassificationTraining
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
