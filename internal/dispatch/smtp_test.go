package dispatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWireMail(t *testing.T) {
	m := Message{
		Subject: "Seismic Intensity Information",
		Body:    "Miyagi: 5+\n\nReceived at: 2026/08/25 12:00:00\n",
	}

	wire := string(buildWireMail("ops@example.org", "ops@example.org", m))

	assert.Contains(t, wire, "From: ops@example.org\r\n")
	assert.Contains(t, wire, "To: ops@example.org\r\n")
	assert.Contains(t, wire, "Subject: Seismic Intensity Information\r\n")
	assert.Contains(t, wire, "Content-Type: text/plain; charset=\"utf-8\"\r\n")

	// Bare newlines must not reach the wire.
	headerEnd := strings.Index(wire, "\r\n\r\n")
	require.Greater(t, headerEnd, 0)
	body := wire[headerEnd+4:]
	assert.Equal(t, "Miyagi: 5+\r\n\r\nReceived at: 2026/08/25 12:00:00\r\n\r\n", body)
	assert.NotContains(t, strings.ReplaceAll(wire, "\r\n", ""), "\n")
}

func TestBuildWireMail_EncodesNonASCIISubject(t *testing.T) {
	m := Message{Subject: "Séisme", Body: "x"}

	wire := string(buildWireMail("a@example.org", "b@example.org", m))

	assert.Contains(t, wire, "Subject: =?utf-8?q?")
	assert.NotContains(t, wire, "Subject: Séisme")
}
