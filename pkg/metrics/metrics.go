package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Job lifecycle metrics
	JobsSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batchutil_jobs_submitted_total",
			Help: "Total number of jobs submitted, by plugin",
		},
		[]string{"plugin"},
	)

	JobsFinishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batchutil_jobs_finished_total",
			Help: "Total number of jobs that reached the FINISHED state, by plugin",
		},
		[]string{"plugin"},
	)

	JobsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batchutil_jobs_failed_total",
			Help: "Total number of jobs that reached the FAILED state, by plugin",
		},
		[]string{"plugin"},
	)

	JobsCancelledTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batchutil_jobs_cancelled_total",
			Help: "Total number of jobs cancelled, by plugin",
		},
		[]string{"plugin"},
	)

	JobsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "batchutil_jobs_active",
			Help: "Number of jobs currently tracked in a non-terminal state, by plugin",
		},
		[]string{"plugin"},
	)

	// Operation latency metrics
	SubmitDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "batchutil_submit_duration_seconds",
			Help:    "Time taken for submit() to return, by plugin",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"plugin"},
	)

	WaitDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "batchutil_wait_duration_seconds",
			Help:    "Time spent blocked in wait(), by plugin",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900, 3600},
		},
		[]string{"plugin"},
	)

	StateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "batchutil_state_duration_seconds",
			Help:    "Time taken for state() to return, by plugin",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"plugin"},
	)

	// Transport metrics
	TransportCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "batchutil_transport_call_duration_seconds",
			Help:    "Duration of a transport operation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"transport", "op"},
	)

	TransportErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batchutil_transport_errors_total",
			Help: "Total number of transport operations that returned an error",
		},
		[]string{"transport", "op"},
	)

	// Daemonizer metrics (updated by the local plugin's in-process Wait)
	DaemonJobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batchutil_daemon_jobs_total",
			Help: "Total number of jobs started by the daemonizer",
		},
		[]string{"outcome"},
	)

	DaemonArrayTasksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "batchutil_daemon_array_tasks_total",
			Help: "Total number of array task indices executed by the daemonizer",
		},
	)
)

func init() {
	prometheus.MustRegister(JobsSubmittedTotal)
	prometheus.MustRegister(JobsFinishedTotal)
	prometheus.MustRegister(JobsFailedTotal)
	prometheus.MustRegister(JobsCancelledTotal)
	prometheus.MustRegister(JobsActive)

	prometheus.MustRegister(SubmitDuration)
	prometheus.MustRegister(WaitDuration)
	prometheus.MustRegister(StateDuration)

	prometheus.MustRegister(TransportCallDuration)
	prometheus.MustRegister(TransportErrorsTotal)

	prometheus.MustRegister(DaemonJobsTotal)
	prometheus.MustRegister(DaemonArrayTasksTotal)
}

// Handler returns the Prometheus HTTP handler for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	histogram.WithLabelValues(labels...).Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
