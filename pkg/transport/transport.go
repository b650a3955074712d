// Package transport defines the uniform run/upload/download/create/read
// contract that every plugin drives its execution host through, and the
// scoped-acquisition pattern (Open/Close) that gives each implementation
// a chance to establish and release session resources.
package transport

import "context"

// Transport is a capability bundle for executing commands and moving
// files to and from an execution host. Implementations are local.Transport
// (in the current process), sshexec.Transport (shells out to ssh/scp per
// call), and sshpersist.Transport (one long-lived SSH session).
//
// A Transport is owned by exactly one Job; nothing here makes it safe for
// concurrent use by more than one caller at a time.
type Transport interface {
	// Open acquires any session resources the transport needs before its
	// first use. Implementations that have nothing to acquire (Local)
	// treat it as a no-op. Open is idempotent: calling it again on an
	// already-open transport is not an error.
	Open(ctx context.Context) error

	// Close releases session resources acquired by Open. It must be safe
	// to call even if Open was never called or already failed.
	Close() error

	// Run executes argv and returns its captured standard output. A
	// non-zero exit returns a *batcherr.TransportError carrying the exit
	// code, argv, and captured stderr.
	Run(ctx context.Context, argv []string) (string, error)

	// Upload copies localEntries (files or directories) into remoteDir.
	Upload(ctx context.Context, localEntries []string, remoteDir string) error

	// Download copies remoteEntries (files or directories) into
	// localDir.
	Download(ctx context.Context, remoteEntries []string, localDir string) error

	// Create writes content to remotePath, creating or truncating it.
	Create(ctx context.Context, remotePath string, content string) error

	// Read returns the full contents of remotePath.
	Read(ctx context.Context, remotePath string) (string, error)
}
