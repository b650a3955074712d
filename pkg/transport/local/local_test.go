package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportRun(t *testing.T) {
	tr := New()
	out, err := tr.Run(context.Background(), []string{"echo", "-n", "hello"})
	assert.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestTransportRunFailure(t *testing.T) {
	tr := New()
	_, err := tr.Run(context.Background(), []string{"false"})
	assert.Error(t, err)
}

func TestTransportCreateRead(t *testing.T) {
	tr := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "output.log")

	assert.NoError(t, tr.Create(context.Background(), path, "hello world\n"))

	content, err := tr.Read(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, "hello world\n", content)
}

func TestTransportUploadDownload(t *testing.T) {
	tr := New()
	srcDir := t.TempDir()
	remoteDir := t.TempDir()
	localDir := t.TempDir()

	srcFile := filepath.Join(srcDir, "input.txt")
	assert.NoError(t, os.WriteFile(srcFile, []byte("payload"), 0o644))

	assert.NoError(t, tr.Upload(context.Background(), []string{srcFile}, remoteDir))
	assert.NoError(t, tr.Download(context.Background(), []string{filepath.Join(remoteDir, "input.txt")}, localDir))

	data, err := os.ReadFile(filepath.Join(localDir, "input.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestCopyPathRejectsSpecialFile(t *testing.T) {
	tr := New()
	dir := t.TempDir()
	dest := t.TempDir()

	_, err := os.Stat("/dev/null")
	assert.NoError(t, err)

	err = tr.Upload(context.Background(), []string{"/dev/null"}, dest)
	assert.Error(t, err)

	_ = dir
}
