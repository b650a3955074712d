package slurm

import (
	"strings"

	"github.com/salome-platform/batchutil/pkg/job"
)

// statePrefixes is the longest-prefix, case-sensitive table mapping a
// squeue/sacct state string to one of the portable states, matching
// original_source's simplified_state() table exactly.
var statePrefixes = []struct {
	prefix string
	state  job.State
}{
	{"COMPLETED", job.Finished},
	{"CONFIGURI", job.Running},
	{"RUNNING", job.Running},
	{"PENDING", job.Queued},
	{"RESV_DEL_", job.Paused},
	{"REQUEUE", job.Paused},
	{"RESIZING", job.Paused},
	{"SUSPENDED", job.Paused},
	{"BOOT_FAIL", job.Failed},
	{"CANCELLED", job.Failed},
	{"DEADLINE", job.Failed},
	{"FAILED", job.Failed},
	{"NODE_FAIL", job.Failed},
	{"OUT_OF_ME", job.Failed},
	{"PREEMPTED", job.Failed},
	{"REVOKED", job.Failed},
	{"SIGNALING", job.Failed},
	{"SPECIAL_E", job.Failed},
	{"STAGE_OUT", job.Failed},
	{"STOPPED", job.Failed},
	{"TIMEOUT", job.Failed},
}

// mapState trims output and matches it against statePrefixes in order.
// Longer, more specific prefixes are listed before shorter ones that
// would otherwise shadow them (e.g. "CONFIGURI" before any generic
// "C..." entry), mirroring the source's sequential startswith checks.
func mapState(output string) (job.State, bool) {
	trimmed := strings.TrimSpace(output)
	for _, entry := range statePrefixes {
		if strings.HasPrefix(trimmed, entry.prefix) {
			return entry.state, true
		}
	}
	return "", false
}
