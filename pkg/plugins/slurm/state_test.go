package slurm

import (
	"testing"

	"github.com/salome-platform/batchutil/pkg/job"
	"github.com/stretchr/testify/assert"
)

func TestMapStateTable(t *testing.T) {
	cases := map[string]job.State{
		"COMPLETED":  job.Finished,
		"CONFIGURING": job.Running,
		"RUNNING":    job.Running,
		"PENDING":    job.Queued,
		"RESV_DEL_HOLD": job.Paused,
		"SUSPENDED":  job.Paused,
		"CANCELLED by 0": job.Failed,
		"TIMEOUT":    job.Failed,
		"NODE_FAIL":  job.Failed,
	}
	for input, want := range cases {
		got, ok := mapState(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}
}

func TestMapStateUnknown(t *testing.T) {
	_, ok := mapState("SOMETHING_WEIRD")
	assert.False(t, ok)
}
