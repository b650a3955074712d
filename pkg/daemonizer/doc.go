/*
Package daemonizer implements the remote job daemonizer: a self-contained
program with four operations — submit, wait, state, cancel — that turns a
fire-and-forget command into a tracked, wall-time-bounded, optionally
arrayed background job, grounded on original_source's
plugins/nobatch/pybatch_manager.py.

It is imported directly by pkg/plugins/local (in-process) and compiled
into the standalone cmd/pybatch-managerd binary shipped to remote hosts
by pkg/plugins/nobatch.

# Detachment

The reference implementation double-forks: the first fork detaches the
parent, the second produces the daemon proper. The Go runtime does not
support a bare fork() once goroutines exist, so Submit gets the same
result — a process that survives the CLI exiting, immune to the
controlling terminal's SIGHUP — by re-executing this same binary with a
hidden "__run" subcommand under SysProcAttr{Setsid: true}: one ForkExec (via
os/exec's Start) into a new session plays the role of both forks, since
what the caller observes (a detached, session-leading supervisor process)
is identical either way.

# Process-wide state

The supervisor process tracks an "interrupted" flag as an atomic.Bool set
by its SIGTERM handler, checked between array task iterations — the Go
realization of the source's module-level flag (spec'd design note:
process-wide state owned by the daemon's top-level scope).
*/
package daemonizer
