package metric

import (
	"time"

	"github.com/omgnetwork/go-plasma/log"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespaceError     = "error"
	namespaceRootchain = "rootchain"
	namespaceWatcher   = "watcher"
)

var (
	// Errors errors count metric.
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespaceError,
			Name:      "errors",
			Help:      "",
		}, []string{"error"})

	// Submissions rootchain submission count, partitioned by operation
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespaceRootchain,
			Name:      "submissions_total",
			Help:      "",
		}, []string{"op"})

	// ExitTimeRetries retries waiting for the exit request block
	ExitTimeRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespaceRootchain,
			Name:      "exit_time_retries_total",
			Help:      "",
		})

	// WatcherRequests watcher call count, partitioned by endpoint
	WatcherRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespaceWatcher,
			Name:      "requests_total",
			Help:      "",
		}, []string{"endpoint"})

	// WatcherRequestDuration watcher call latency, partitioned by endpoint
	WatcherRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespaceWatcher,
			Name:      "request_duration_ms",
			Help:      "",
		}, []string{"endpoint"})
)

func init() {
	if err := registerCollectors(); err != nil {
		log.Error(err)
	}
}
func registerCollectors() error {
	if err := registerCollector(Errors); err != nil {
		return err
	}
	if err := registerCollector(Submissions); err != nil {
		return err
	}
	if err := registerCollector(ExitTimeRetries); err != nil {
		return err
	}
	if err := registerCollector(WatcherRequests); err != nil {
		return err
	}
	return registerCollector(WatcherRequestDuration)
}

func registerCollector(collector prometheus.Collector) error {
	err := prometheus.Register(collector)
	if err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			return err
		}
	}
	return nil
}

// MeasureDuration measure the method execution duration
// and save it into a histogram metric
func MeasureDuration(histogram *prometheus.HistogramVec, start time.Time, lvs ...string) {
	duration := time.Since(start)
	histogram.WithLabelValues(lvs...).Observe(float64(duration.Milliseconds()))
}

// CollectError collect the error message and increment
// the error count
func CollectError(err error) {
	Errors.With(map[string]string{"error": err.Error()}).Inc()
}
