// Package local implements transport.Transport by executing commands and
// copying files on the local machine, grounded on original_source's
// protocols/local.py (subprocess.run + shutil.copy/copytree).
package local

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/salome-platform/batchutil/pkg/batcherr"
	"github.com/salome-platform/batchutil/pkg/metrics"
)

const transportName = "local"

func init() {
	gob.Register(&Transport{})
}

// Transport runs commands and copies files using the local OS directly.
// Upload/Download are plain filesystem copies; there is no remote host.
type Transport struct{}

// New returns a local Transport. Open/Close are no-ops since there is no
// session to acquire.
func New() *Transport { return &Transport{} }

func (t *Transport) Open(ctx context.Context) error { return nil }
func (t *Transport) Close() error                   { return nil }

// Run executes argv as a child process and returns its standard output.
func (t *Transport) Run(ctx context.Context, argv []string) (out string, err error) {
	timer := metrics.NewTimer()
	defer func() {
		metrics.TransportCallDuration.WithLabelValues(transportName, "run").Observe(timer.Duration().Seconds())
		if err != nil {
			metrics.TransportErrorsTotal.WithLabelValues(transportName, "run").Inc()
		}
	}()

	if len(argv) == 0 {
		return "", fmt.Errorf("local: empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if runErr := cmd.Run(); runErr != nil {
		code := -1
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return "", &batcherr.TransportError{Code: code, Argv: argv, Stderr: stderr.String()}
	}
	return stdout.String(), nil
}

// Upload copies each local path in localEntries into remoteDir, which on
// a local transport is just another directory on the same filesystem.
func (t *Transport) Upload(ctx context.Context, localEntries []string, remoteDir string) error {
	if err := os.MkdirAll(remoteDir, 0o755); err != nil {
		return err
	}
	for _, src := range localEntries {
		dest := filepath.Join(remoteDir, filepath.Base(src))
		if err := copyPath(src, dest); err != nil {
			return err
		}
	}
	return nil
}

// Download copies each path in remoteEntries into localDir.
func (t *Transport) Download(ctx context.Context, remoteEntries []string, localDir string) error {
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return err
	}
	for _, src := range remoteEntries {
		dest := filepath.Join(localDir, filepath.Base(src))
		if err := copyPath(src, dest); err != nil {
			return err
		}
	}
	return nil
}

// Create writes content to path, creating or truncating it.
func (t *Transport) Create(ctx context.Context, path string, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// Read returns the full contents of path.
func (t *Transport) Read(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// copyPath copies src to dest, recursing into directories. A src that is
// neither a regular file nor a directory fails with *batcherr.CopyError.
func copyPath(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	switch {
	case info.Mode().IsRegular():
		return copyFile(src, dest, info.Mode())
	case info.IsDir():
		return copyDir(src, dest)
	default:
		return &batcherr.CopyError{Path: src}
	}
}

func copyFile(src, dest string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func copyDir(src, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())
		if err := copyPath(srcPath, destPath); err != nil {
			return err
		}
	}
	return nil
}
