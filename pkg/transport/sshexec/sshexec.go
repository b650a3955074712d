// Package sshexec implements transport.Transport by shelling out to the
// ssh and scp binaries for every call, grounded on original_source's
// protocols/ssh.py (SshProtocol).
package sshexec

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os/exec"
	"strings"

	"github.com/salome-platform/batchutil/pkg/batchutil"
	"github.com/salome-platform/batchutil/pkg/batcherr"
	"github.com/salome-platform/batchutil/pkg/job"
	"github.com/salome-platform/batchutil/pkg/metrics"
)

const transportName = "sshexec"

func init() {
	gob.Register(&Transport{})
}

// Transport drives a remote host by invoking the local ssh/scp
// executables as subprocesses. It has no persistent state beyond the
// connection parameters, so Open/Close are no-ops.
type Transport struct {
	params job.ConnectionParameters
}

// New returns a Transport that connects to params.Host for every call.
func New(params job.ConnectionParameters) *Transport {
	return &Transport{params: params}
}

func (t *Transport) Open(ctx context.Context) error { return nil }
func (t *Transport) Close() error                   { return nil }

func (t *Transport) sshArgs() []string {
	args := []string{}
	if t.params.GSSAuth {
		args = append(args, "-K")
	}
	if t.params.User != "" {
		args = append(args, "-l", t.params.User)
	}
	args = append(args, t.params.Host)
	return args
}

// Run executes argv on the remote host via `ssh <host> <command>`, with
// every argument beyond argv[0] shell-escaped per batchutil.EscapeShellArg.
func (t *Transport) Run(ctx context.Context, argv []string) (out string, err error) {
	timer := metrics.NewTimer()
	defer func() {
		metrics.TransportCallDuration.WithLabelValues(transportName, "run").Observe(timer.Duration().Seconds())
		if err != nil {
			metrics.TransportErrorsTotal.WithLabelValues(transportName, "run").Inc()
		}
	}()

	if len(argv) == 0 {
		return "", fmt.Errorf("sshexec: empty command")
	}
	remoteCmd := argv[0]
	if len(argv) > 1 {
		remoteCmd += " " + batchutil.JoinShellArgs(argv[1:])
	}
	sshArgv := append(t.sshArgs(), remoteCmd)

	cmd := exec.CommandContext(ctx, "ssh", sshArgv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if runErr := cmd.Run(); runErr != nil {
		code := -1
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return "", &batcherr.TransportError{Code: code, Argv: append([]string{"ssh"}, sshArgv...), Stderr: stderr.String()}
	}
	return stdout.String(), nil
}

// Upload copies localEntries to remoteDir via `scp -r`.
func (t *Transport) Upload(ctx context.Context, localEntries []string, remoteDir string) error {
	dest := fmt.Sprintf("%s:%s", t.params.Host, remoteDir)
	return t.scp(ctx, append(append([]string{}, localEntries...), dest))
}

// Download copies remoteEntries to localDir via `scp -r`.
func (t *Transport) Download(ctx context.Context, remoteEntries []string, localDir string) error {
	args := make([]string, 0, len(remoteEntries)+1)
	for _, e := range remoteEntries {
		args = append(args, fmt.Sprintf("%s:%s", t.params.Host, e))
	}
	args = append(args, localDir)
	return t.scp(ctx, args)
}

func (t *Transport) scp(ctx context.Context, pathArgs []string) error {
	argv := append([]string{"-r"}, pathArgs...)
	cmd := exec.CommandContext(ctx, "scp", argv...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		code := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return &batcherr.TransportError{Code: code, Argv: append([]string{"scp"}, argv...), Stderr: stderr.String()}
	}
	return nil
}

// Create writes content to remotePath by piping it through a remote
// `cat > path` shell command.
func (t *Transport) Create(ctx context.Context, remotePath string, content string) error {
	remoteCmd := fmt.Sprintf("cat > %s", batchutil.EscapeShellArg(remotePath))
	sshArgv := append(t.sshArgs(), remoteCmd)

	cmd := exec.CommandContext(ctx, "ssh", sshArgv...)
	cmd.Stdin = strings.NewReader(content)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		code := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return &batcherr.TransportError{Code: code, Argv: append([]string{"ssh"}, sshArgv...), Stderr: stderr.String()}
	}
	return nil
}

// Read returns the contents of remotePath via `cat`.
func (t *Transport) Read(ctx context.Context, remotePath string) (string, error) {
	return t.Run(ctx, []string{"cat", remotePath})
}
