package main

import (
	"net/http"

	"github.com/salome-platform/batchutil/pkg/log"
	"github.com/salome-platform/batchutil/pkg/metrics"
)

// initHealth starts the health/readiness/metrics server when --health-addr
// is set. batchctl's own submit/wait/cancel invocations are short-lived,
// but a caller driving it as a long-running poller (e.g. wait against a
// Slurm job) can point a liveness probe at this endpoint.
func initHealth() {
	addr, _ := rootCmd.PersistentFlags().GetString("health-addr")
	if addr == "" {
		return
	}

	metrics.SetVersion(Version)
	metrics.RegisterComponent("registry", true, "plugin registry initialized")

	mux := http.NewServeMux()
	mux.Handle("/health", metrics.HealthHandler())
	mux.Handle("/ready", metrics.ReadyHandler())
	mux.Handle("/live", metrics.LivenessHandler())
	mux.Handle("/metrics", metrics.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Errorf("health server exited", err)
		}
	}()
}
