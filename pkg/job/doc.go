/*
Package job implements the portable job lifecycle shared by every backend:
submit, state, wait, cancel, get, and exit-code inspection, plus gob-based
serialization so a handle survives a process restart.

A Job is a thin wrapper around a Plugin (local, nobatch, or slurm — see
pkg/plugins/...) that adds the CREATED/empty-handle short-circuit common
to all three, structured logging via pkg/log, and Prometheus metrics via
pkg/metrics. Callers normally obtain a Job through pkg/registry rather
than constructing one directly.

# State machine

	CREATED ──submit──▶ IN_PROCESS / QUEUED / RUNNING ──▶ FINISHED
	                                                  └──▶ FAILED

Not every plugin visits every state: local and nobatch never report
QUEUED or PAUSED.

# Serialization

	data, err := j.Serialize()
	...
	j2, err := job.DeserializeJob(data)
	j2.Wait(ctx)

A plugin value is only decodable if its concrete type was registered with
gob.Register — each plugin package does this in its own init().
*/
package job
