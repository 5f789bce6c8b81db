package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessagesReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcragent_messages_received_total",
			Help: "Total number of decoded messages received from the source (count)",
		},
		[]string{"category"},
	)

	MessagesScreenedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcragent_messages_screened_total",
			Help: "Total number of messages dropped before deduplication (count)",
		},
		[]string{"reason"},
	)

	MessagesDuplicateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcragent_messages_duplicate_total",
			Help: "Total number of messages suppressed as duplicates (count)",
		},
		[]string{"category"},
	)

	ProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dcragent_processing_duration_ms",
			Help:    "End-to-end handling duration per message in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
		[]string{"status"},
	)

	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dcragent_dedup_cache_size",
			Help: "Current number of entries in the deduplication cache (count)",
		},
	)

	CacheEvictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dcragent_dedup_cache_evictions_total",
			Help: "Total number of cache entries aged out of the validity window (count)",
		},
	)

	DeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcragent_deliveries_total",
			Help: "Total number of notification deliveries per channel (count)",
		},
		[]string{"channel", "status"},
	)

	SuppressedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcragent_suppressed_total",
			Help: "Total number of notifications withheld by channel policy (count)",
		},
		[]string{"channel", "reason"},
	)

	DeliveryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dcragent_delivery_duration_ms",
			Help:    "Duration of notification deliveries in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"channel"},
	)

	SourceRestartsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcragent_source_restarts_total",
			Help: "Total number of source subprocess restarts (count)",
		},
		[]string{"reason"},
	)

	DecodeErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dcragent_decode_errors_total",
			Help: "Total number of undecodable source lines or frames (count)",
		},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open) (state code)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker (count)",
		},
		[]string{"name", "state"},
	)

	CircuitBreakerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of failures through circuit breaker (count)",
		},
		[]string{"name"},
	)
)

func RegisterPipelineMetrics() {
	prometheus.MustRegister(MessagesReceivedTotal)
	prometheus.MustRegister(MessagesScreenedTotal)
	prometheus.MustRegister(MessagesDuplicateTotal)
	prometheus.MustRegister(ProcessingDuration)
	prometheus.MustRegister(CacheSize)
	prometheus.MustRegister(CacheEvictionsTotal)
}

func RegisterDispatchMetrics() {
	prometheus.MustRegister(DeliveriesTotal)
	prometheus.MustRegister(SuppressedTotal)
	prometheus.MustRegister(DeliveryDuration)
}

func RegisterSourceMetrics() {
	prometheus.MustRegister(SourceRestartsTotal)
	prometheus.MustRegister(DecodeErrorsTotal)
}

func RegisterCircuitBreakerMetrics() {
	prometheus.MustRegister(CircuitBreakerState)
	prometheus.MustRegister(CircuitBreakerRequests)
	prometheus.MustRegister(CircuitBreakerFailures)
}

func ObserveProcessingDuration(duration time.Duration, status string) {
	ProcessingDuration.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}

func ObserveDeliveryDuration(channel string, duration time.Duration) {
	DeliveryDuration.WithLabelValues(channel).Observe(float64(duration.Milliseconds()))
}

func SetCacheSize(size int) {
	CacheSize.Set(float64(size))
}

func AddCacheEvictions(count int) {
	CacheEvictionsTotal.Add(float64(count))
}

func IncMessageReceived(category string) {
	MessagesReceivedTotal.WithLabelValues(category).Inc()
}

func IncMessageScreened(reason string) {
	MessagesScreenedTotal.WithLabelValues(reason).Inc()
}

func IncMessageDuplicate(category string) {
	MessagesDuplicateTotal.WithLabelValues(category).Inc()
}

func IncDelivery(channel, status string) {
	DeliveriesTotal.WithLabelValues(channel, status).Inc()
}

func IncSuppressed(channel, reason string) {
	SuppressedTotal.WithLabelValues(channel, reason).Inc()
}

func IncSourceRestart(reason string) {
	SourceRestartsTotal.WithLabelValues(reason).Inc()
}

func IncDecodeError() {
	DecodeErrorsTotal.Inc()
}
