package slurm

import (
	"context"
	"strings"
	"testing"

	"github.com/salome-platform/batchutil/pkg/job"
	"github.com/stretchr/testify/assert"
)

type fakeTransport struct {
	runs     [][]string
	runOuts  []string
	creates  map[string]string
}

func newFakeTransport(outs ...string) *fakeTransport {
	return &fakeTransport{runOuts: outs, creates: map[string]string{}}
}

func (f *fakeTransport) Open(ctx context.Context) error { return nil }
func (f *fakeTransport) Close() error                   { return nil }

func (f *fakeTransport) Run(ctx context.Context, argv []string) (string, error) {
	f.runs = append(f.runs, argv)
	idx := len(f.runs) - 1
	if idx < len(f.runOuts) {
		return f.runOuts[idx], nil
	}
	return "", nil
}

func (f *fakeTransport) Upload(ctx context.Context, localEntries []string, remoteDir string) error {
	return nil
}
func (f *fakeTransport) Download(ctx context.Context, remoteEntries []string, localDir string) error {
	return nil
}
func (f *fakeTransport) Create(ctx context.Context, remotePath, content string) error {
	f.creates[remotePath] = content
	return nil
}
func (f *fakeTransport) Read(ctx context.Context, remotePath string) (string, error) {
	return "", nil
}

func TestCreatedInvariant(t *testing.T) {
	p := New(job.LaunchParameters{}, newFakeTransport())
	assert.Equal(t, "", p.JobID())

	state, err := p.State(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, job.Created, state)

	assert.NoError(t, p.Wait(context.Background()))
	assert.NoError(t, p.Cancel(context.Background()))
}

func TestSubmitParsesParsableJobid(t *testing.T) {
	ft := newFakeTransport("", "987;cluster")
	p := New(job.LaunchParameters{WorkDirectory: "/home/u/work", Command: []string{"true"}}, ft)

	assert.NoError(t, p.Submit(context.Background()))
	assert.Equal(t, "987", p.JobID())

	var batchContent string
	for path, content := range ft.creates {
		if strings.HasSuffix(path, "batch.cmd") {
			batchContent = content
		}
	}
	assert.Contains(t, batchContent, "#!/bin/bash -l")
}

func TestStateFallsBackToSacct(t *testing.T) {
	ft := newFakeTransport("", "COMPLETED")
	p := &Plugin{Params: job.LaunchParameters{}, Transport: ft, Jobid: "42"}

	state, err := p.State(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, job.Finished, state)
	assert.Equal(t, []string{"squeue", "-h", "-o", "%T", "-j", "42"}, ft.runs[0])
	assert.Equal(t, []string{"sacct", "-X", "-o", "State%-10", "-n", "-j", "42"}, ft.runs[1])
}

func TestCancelRunsScancel(t *testing.T) {
	ft := newFakeTransport()
	p := &Plugin{Params: job.LaunchParameters{}, Transport: ft, Jobid: "55"}
	assert.NoError(t, p.Cancel(context.Background()))
	assert.Equal(t, []string{"scancel", "55"}, ft.runs[0])
}
