package dispatch

import (
	"strings"

	"dcragent/internal/constants"
)

// renderText renders a notification the way the report file and the
// console show it: a timestamped separator line, the message body, and
// the raw source line when the operator asked for it.
func renderText(n Notification, includeRaw bool) string {
	var b strings.Builder
	b.WriteString("---- ")
	b.WriteString(n.ReceivedAt.Format(constants.TimestampFormat))
	b.WriteString(" ----\n")
	b.WriteString(strings.TrimRight(n.Report.Body, "\n"))
	b.WriteString("\n")
	if includeRaw && n.Report.Raw != "" {
		b.WriteString("raw: ")
		b.WriteString(n.Report.Raw)
		b.WriteString("\n")
	}
	return b.String()
}
