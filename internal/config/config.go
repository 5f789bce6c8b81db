package config

import (
	"strings"
	"time"

	"dcragent/internal/report"
)

// Config is the fully-resolved configuration snapshot. It is built once at
// startup and never mutated afterwards; every component receives the
// sections it needs by value.
type Config struct {
	Source         SourceConfig
	General        GeneralConfig
	Cache          CacheConfig
	Categories     map[report.Category]CategoryConfig
	Report         FileSinkConfig
	Mail           MailSinkConfig
	Console        ConsoleSinkConfig
	Server         ServerConfig
	Logging        LoggingConfig
	CircuitBreaker CircuitBreakerConfig

	// LoadedFrom is the config file actually read, empty when the agent
	// runs on defaults because the file was absent.
	LoadedFrom string
}

type SourceConfig struct {
	Command string
	Format  string
}

// Argv splits the configured command line on whitespace. No shell is
// involved; quoting is not supported.
func (c SourceConfig) Argv() []string {
	return strings.Fields(c.Command)
}

type GeneralConfig struct {
	IgnoreFilterWhenTraining bool
	ReportRawPacket          bool
}

type CacheConfig struct {
	ValidPeriodHours int
	Path             string
}

func (c CacheConfig) ValidPeriod() time.Duration {
	return time.Duration(c.ValidPeriodHours) * time.Hour
}

// CategoryConfig is one category's filter rule: the enable flag and the
// keyword list for categories that have a locality vocabulary.
type CategoryConfig struct {
	Use      bool
	Keywords []string
}

// Category returns the rule for cat. Categories missing from the map are
// enabled with no keyword filter, matching the loader defaults.
func (c *Config) Category(cat report.Category) CategoryConfig {
	if cc, ok := c.Categories[cat]; ok {
		return cc
	}
	return CategoryConfig{Use: true}
}

// ChannelConfig carries the three per-channel suppression switches shared
// by every notification channel.
type ChannelConfig struct {
	ReportIncompleteInfo bool
	IgnoreFilter         bool
	ReportTraining       bool
}

type FileSinkConfig struct {
	Use        bool
	Path       string
	RotateDays int
	MaxBackups int
	Channel    ChannelConfig
}

func (c FileSinkConfig) RotateEvery() time.Duration {
	return time.Duration(c.RotateDays) * 24 * time.Hour
}

type MailSinkConfig struct {
	Use                    bool
	Host                   string
	Port                   int
	User                   string
	Password               string
	Address                string
	TLS                    bool
	SSL                    bool
	SuppressHeaderFromText bool
	TimeoutSeconds         int
	Channel                ChannelConfig
}

func (c MailSinkConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ConsoleSinkConfig struct {
	Use     bool
	Channel ChannelConfig
}

// ServerConfig controls the optional observability HTTP endpoint serving
// /metrics and /health.
type ServerConfig struct {
	Use  bool
	Port int
}

type LoggingConfig struct {
	Level string
}

type CircuitBreakerConfig struct {
	Enabled      bool
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}
