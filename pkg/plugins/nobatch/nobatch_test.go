package nobatch

import (
	"context"
	"testing"

	"github.com/salome-platform/batchutil/pkg/job"
	"github.com/stretchr/testify/assert"
)

// fakeTransport is an in-memory transport.Transport used to exercise the
// plugin's command construction without touching the network.
type fakeTransport struct {
	runs    [][]string
	nextOut string
	nextErr error
}

func (f *fakeTransport) Open(ctx context.Context) error  { return nil }
func (f *fakeTransport) Close() error                    { return nil }
func (f *fakeTransport) Run(ctx context.Context, argv []string) (string, error) {
	f.runs = append(f.runs, argv)
	return f.nextOut, f.nextErr
}
func (f *fakeTransport) Upload(ctx context.Context, localEntries []string, remoteDir string) error {
	return nil
}
func (f *fakeTransport) Download(ctx context.Context, remoteEntries []string, localDir string) error {
	return nil
}
func (f *fakeTransport) Create(ctx context.Context, remotePath, content string) error { return nil }
func (f *fakeTransport) Read(ctx context.Context, remotePath string) (string, error) {
	return f.nextOut, f.nextErr
}

func TestCreatedInvariant(t *testing.T) {
	p := New(job.LaunchParameters{}, &fakeTransport{}, "")
	assert.Equal(t, "", p.JobID())

	state, err := p.State(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, job.Created, state)

	assert.NoError(t, p.Wait(context.Background()))
	assert.NoError(t, p.Cancel(context.Background()))
}

func TestSubmitParsesPidAndBuildsFlags(t *testing.T) {
	ft := &fakeTransport{nextOut: "12345\n"}
	p := New(job.LaunchParameters{
		WorkDirectory: "/tmp/work",
		Command:       []string{"echo", "hi"},
		WallTime:      "10",
		IsPosix:       true,
		TotalJobs:     4,
	}, ft, "/local/pybatch-managerd")

	assert.NoError(t, p.Submit(context.Background()))
	assert.Equal(t, "12345", p.JobID())

	submitArgv := ft.runs[len(ft.runs)-1]
	assert.Contains(t, submitArgv, "--wall_time")
	assert.Contains(t, submitArgv, "600")
	assert.Contains(t, submitArgv, "--total_jobs")
	assert.Contains(t, submitArgv, "4")
	assert.Contains(t, submitArgv, "--")
}

func TestSubmitRejectsNonNumericPid(t *testing.T) {
	ft := &fakeTransport{nextOut: "not-a-pid"}
	p := New(job.LaunchParameters{WorkDirectory: "/tmp/work", Command: []string{"true"}}, ft, "")
	assert.Error(t, p.Submit(context.Background()))
}
