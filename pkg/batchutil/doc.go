/*
Package batchutil collects the small, dependency-free helpers shared by
transports and plugins: cross-platform path joining, Slurm wall-time
parsing, and POSIX shell argument escaping. Its only dependency inside the
module is pkg/batcherr (for InvalidTimeError), so it must not be imported
from pkg/batcherr itself.
*/
package batchutil
