package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success Outcome = "success"
	Error   Outcome = "error"
)

func (O Outcome) String() string {
	return string(O)
}

var defaultHistogramBucketsSeconds = []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 30}

// The collectors exist before Init so that recording is always safe, Init
// only registers and exposes them.
var (
	once          sync.Once
	metricsRouter *chi.Mux

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"endpoint", "status"},
	)
	ledgerOperationDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Histogram of ledger operation durations in seconds, persistence included.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "outcome"},
	)
	clientRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)
	queueOperationFailureCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_operation_failure_total",
			Help: "Total number of failed queue operations per queue name and operation.",
		},
		[]string{"queueName", "operation"},
	)
	ledgerEventsPublishedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_events_published_total",
			Help: "Total number of committed ledger events per event type.",
		},
		[]string{"event_type"},
	)
	ledgerSequenceGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_state_sequence",
			Help: "Sequence of the last persisted ledger state.",
		},
	)
)

// Init initializes the metrics package.
func Init(metricsAddr string) {
	once.Do(func() {
		initMetricsRouter(metricsAddr)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsAddr string) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	go func() {
		err := http.ListenAndServe(metricsAddr, metricsRouter)
		if err != nil {
			log.Fatal().Err(err).Msgf("error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics registers the Prometheus metrics.
func registerMetrics() {
	prometheus.MustRegister(
		httpRequestDurationHistogram,
		ledgerOperationDurationHistogram,
		clientRequestLatency,
		queueOperationFailureCounter,
		ledgerEventsPublishedCounter,
		ledgerSequenceGauge,
	)
}

// StartHttpRequestDurationTimer starts a timer to measure http request handling duration.
func StartHttpRequestDurationTimer(endpoint string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		httpRequestDurationHistogram.WithLabelValues(endpoint, fmt.Sprintf("%d", statusCode)).Observe(duration)
	}
}

// StartLedgerOperationTimer starts a timer for one ledger operation.
func StartLedgerOperationTimer(operation string) func(outcome Outcome) {
	startTime := time.Now()
	return func(outcome Outcome) {
		duration := time.Since(startTime).Seconds()
		ledgerOperationDurationHistogram.WithLabelValues(operation, outcome.String()).Observe(duration)
	}
}

// StartClientRequestDurationTimer starts a timer for an outgoing http call.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestLatency.WithLabelValues(
			baseUrl, method, path, fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}

func RecordQueueOperationFailure(queueName, operation string) {
	queueOperationFailureCounter.WithLabelValues(queueName, operation).Inc()
}

func RecordLedgerEventPublished(eventType string) {
	ledgerEventsPublishedCounter.WithLabelValues(eventType).Inc()
}

func SetLedgerSequence(sequence uint64) {
	ledgerSequenceGauge.Set(float64(sequence))
}
