/*
Package metrics provides Prometheus metrics collection and exposition for
batchutil clients. cmd/pybatch-managerd does not link this package.

Metrics are registered once at package init and are safe for concurrent
update from any goroutine. Callers expose them with Handler, typically
mounted on a "/metrics" route scraped by a Prometheus server.

# Metrics Catalog

Job lifecycle:

batchutil_jobs_submitted_total{plugin}:
  - Type: Counter
  - Total jobs submitted, by plugin name (local, nobatch, slurm)

batchutil_jobs_finished_total{plugin}:
  - Type: Counter
  - Total jobs observed reaching the FINISHED state

batchutil_jobs_failed_total{plugin}:
  - Type: Counter
  - Total jobs observed reaching the FAILED state

batchutil_jobs_cancelled_total{plugin}:
  - Type: Counter
  - Total jobs cancelled via Cancel

batchutil_jobs_active{plugin}:
  - Type: Gauge
  - Jobs currently tracked in a non-terminal state

Operation latency:

batchutil_submit_duration_seconds{plugin}
batchutil_wait_duration_seconds{plugin}
batchutil_state_duration_seconds{plugin}
  - Type: Histogram
  - Time spent inside the corresponding Job method

Transport:

batchutil_transport_call_duration_seconds{transport, op}:
  - Type: Histogram
  - Duration of a single Run call (op="run"); Upload, Download, Create
    and Read are not timed

batchutil_transport_errors_total{transport, op}:
  - Type: Counter
  - Run calls (op="run") that returned a non-nil error

Daemonizer (updated by the local plugin's Wait, which runs the daemonizer
in-process; jobs driven through pybatch-managerd are not counted):

batchutil_daemon_jobs_total{outcome}:
  - Type: Counter
  - Daemonizer runs waited on, labeled finished/failed

batchutil_daemon_array_tasks_total:
  - Type: Counter
  - Array task indices executed across all jobs

# Usage

	timer := metrics.NewTimer()
	err := job.Submit(ctx)
	metrics.SubmitDuration.WithLabelValues(pluginName).Observe(timer.Duration().Seconds())
	if err != nil {
		metrics.TransportErrorsTotal.WithLabelValues("local", "run").Inc()
	}

# See Also

  - https://github.com/prometheus/client_golang
  - https://prometheus.io/docs/practices/histograms/
*/
package metrics
