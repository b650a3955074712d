/*
Package log provides structured logging for batchutil using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with component-specific child loggers, configurable levels, and helper
functions for common logging patterns. All logs carry timestamps and support
filtering by severity for production debugging.

# Architecture

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Global Logger                    │          │
	│  │  - zerolog instance                         │          │
	│  │  - Initialized via log.Init()               │          │
	│  │  - Thread-safe for concurrent use           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Configuration                     │          │
	│  │  - Level: debug/info/warn/error             │          │
	│  │  - Format: JSON or console (human)          │          │
	│  │  - Output: stdout, file, or custom writer   │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │         Component Loggers                   │          │
	│  │  - WithComponent("transport")                │          │
	│  │  - WithJobID("3f9c2e")                      │          │
	│  │  - WithPlugin("slurm")                      │          │
	│  │  - WithHost("cluster.example.org")          │          │
	│  └────────────────────────────────────────────┘          │
	└────────────────────────────────────────────────────────┘

# Usage

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})

	logger := log.WithComponent("transport").With().Str("job_id", jobID).Logger()
	logger.Info().Msg("job submitted")

	log.Info("daemon started")
	log.Errorf("submit failed", err)

# Daemonizer exception

cmd/pybatch-managerd does not import this package. It runs detached from any
terminal and under heavy process-lifecycle manipulation (fork, setsid), so it
logs through the standard library's log package to a local manager.log file
opened directly by the daemon — pulling zerolog's richer but heavier
dependency surface into a process whose only observability need is an
append-only text trail buys nothing there.

# See Also

  - https://github.com/rs/zerolog
*/
package log
