package constants

import "time"

const (
	AgentName = "dcragent"
)

// Process exit statuses. Each failure class has its own so a process
// supervisor can tell a config typo from a dead pipeline.
const (
	ExitSignal        = 1
	ExitConfigError   = 2
	ExitPipelineError = 3
	ExitSpawnError    = 4
)

const (
	// TimestampFormat is the wall-clock layout used in report separators
	// and mail trailers.
	TimestampFormat = "2006/01/02 15:04:05"
)

const (
	DefaultConfigPath = "/etc/dcragent.yaml"
)

const (
	DefaultRestartDelay = 5 * time.Second
	SourceWaitDelay     = 5 * time.Second
)

const (
	DefaultMailTimeout = 30 * time.Second
	DefaultSMTPPort    = 587
)

const (
	DefaultCacheValidPeriodHours = 24
)

const (
	DefaultRotateDays = 7
	DefaultMaxBackups = 5
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	SourceFormatGpsmon = "gpsmon"
	SourceFormatJSONL  = "jsonl"
)

const (
	TrainingMarker = "[Training] "
)
