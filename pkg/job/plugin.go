package job

import "context"

// Plugin is the capability set a backend (local, nobatch, slurm) must
// implement to back a Job. All three plugins in this module implement
// Plugin as a concrete struct value, registered with encoding/gob so a
// Job can be serialized and reconstructed with the correct concrete type
// behind the interface.
type Plugin interface {
	// Submit starts the job and records whatever handle (PID, Slurm job
	// ID) is needed to track it. JobID must return non-empty afterward.
	Submit(ctx context.Context) error

	// JobID returns the plugin's handle for the job, or "" if Submit has
	// not succeeded yet.
	JobID() string

	// State derives the current portable State from live process state,
	// queue-manager output, or filesystem artifacts.
	State(ctx context.Context) (State, error)

	// Wait blocks until the job reaches a terminal state.
	Wait(ctx context.Context) error

	// Cancel requests termination. It is a no-op if the job was never
	// submitted.
	Cancel(ctx context.Context) error

	// Get copies files or directories out of the job's working
	// directory. Entries in remotePaths are relative to WorkDirectory
	// unless absolute.
	Get(ctx context.Context, remotePaths []string, localPath string) error

	// ExitCode returns the terminal exit code, or nil if it cannot be
	// determined (job not finished, or the artifact is unreadable).
	ExitCode(ctx context.Context) (*int, error)

	// Stdout and Stderr return the captured output streams.
	Stdout(ctx context.Context) (string, error)
	Stderr(ctx context.Context) (string, error)
}
