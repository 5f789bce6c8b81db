package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAny(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		values   []string
		want     bool
	}{
		{"nil keywords match everything", nil, []string{"Tokyo"}, true},
		{"single empty keyword matches everything", []string{""}, []string{"Tokyo"}, true},
		{"single empty keyword with no values", []string{""}, nil, true},
		{"substring of a value", []string{"Tokyo", "Osaka"}, []string{"Osaka Prefecture"}, true},
		{"partial keyword hits", []string{"kyo"}, []string{"Tokyo"}, true},
		{"first keyword misses second hits", []string{"Nagoya", "Iwate"}, []string{"Iwate"}, true},
		{"no keyword hits", []string{"Nagoya", "Sendai"}, []string{"Tokyo", "Osaka"}, false},
		{"keywords but no values", []string{"Tokyo"}, nil, false},
		{"whitespace keyword trims to match-all", []string{" "}, []string{"anything"}, true},
		{"trimmed keyword matches", []string{" Osaka "}, []string{"Osaka Prefecture"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Any(tt.keywords, tt.values))
		})
	}
}

func TestAll(t *testing.T) {
	legal := []string{"Tokyo", "Osaka", "Iwate", "Okinawa Main Island"}

	tests := []struct {
		name     string
		keywords []string
		want     bool
	}{
		{"nil keywords pass", nil, true},
		{"single empty keyword passes", []string{""}, true},
		{"every keyword legal", []string{"Tokyo", "Osaka"}, true},
		{"substring keywords are legal", []string{"Okinawa"}, true},
		{"one foreign keyword fails the list", []string{"Tokyo", "Atlantis"}, false},
		{"single foreign keyword", []string{"Atlantis"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, All(tt.keywords, legal))
		})
	}
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank(nil))
	assert.True(t, Blank([]string{}))
	assert.True(t, Blank([]string{""}))
	assert.False(t, Blank([]string{" "}))
	assert.False(t, Blank([]string{"Tokyo"}))
	assert.False(t, Blank([]string{"", ""}))
}
