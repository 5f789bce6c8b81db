package dispatch

import (
	"dcragent/internal/config"
	"dcragent/internal/filter"
)

// Suppress decides whether a channel withholds a message, and why. The
// checks run in a fixed order (incomplete, training, filtered) so a
// message suppressed for several reasons at once is always counted under
// the same one.
func Suppress(ch config.ChannelConfig, d filter.Disposition) (string, bool) {
	switch {
	case d.Incomplete && !ch.ReportIncompleteInfo:
		return "incomplete", true
	case d.Training && !ch.ReportTraining:
		return "training", true
	case d.Filtered && !ch.IgnoreFilter:
		return "filtered", true
	}
	return "", false
}
