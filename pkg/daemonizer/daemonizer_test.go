//go:build unix

package daemonizer

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMain lets the compiled test binary double as the supervisor binary:
// Submit re-execs os.Executable() with RunSubcommand as its first argument,
// and the test binary here is that executable. Intercepting it ahead of
// testing's own flag parsing is the same helper-process trick os/exec's
// own tests use.
func TestMain(m *testing.M) {
	if len(os.Args) > 1 && os.Args[1] == RunSubcommand {
		runSupervisorArgs(os.Args[2:])
		return
	}
	os.Exit(m.Run())
}

func runSupervisorArgs(args []string) {
	wallTime, _ := strconv.Atoi(args[1])
	totalJobs, _ := strconv.Atoi(args[2])
	maxSimulJobs, _ := strconv.Atoi(args[3])
	rest := args[4:]
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}
	Supervise(SuperviseOptions{
		WorkDir:         args[0],
		WallTimeSeconds: wallTime,
		TotalJobs:       totalJobs,
		MaxSimulJobs:    maxSimulJobs,
		Command:         rest,
	})
}

func TestSubmitWaitFinished(t *testing.T) {
	dir := t.TempDir()
	pid, err := Submit(SubmitOptions{
		WorkDir: dir,
		Command: []string{"true"},
	})
	assert.NoError(t, err)
	assert.NoError(t, Wait(pid))

	state, err := State(pid, dir)
	assert.NoError(t, err)
	assert.Equal(t, "FINISHED", state)

	code, err := os.ReadFile(filepath.Join(dir, "logs", "exit_code.log"))
	assert.NoError(t, err)
	assert.Equal(t, "0", string(code))
}

func TestSubmitWaitFailed(t *testing.T) {
	dir := t.TempDir()
	pid, err := Submit(SubmitOptions{
		WorkDir: dir,
		Command: []string{"false"},
	})
	assert.NoError(t, err)
	assert.NoError(t, Wait(pid))

	state, err := State(pid, dir)
	assert.NoError(t, err)
	assert.Equal(t, "FAILED", state)
}

func TestCancelOnDeadPIDIsNoop(t *testing.T) {
	// A PID this high is vanishingly unlikely to be alive.
	assert.NoError(t, Cancel(1<<30))
}

func TestStateAbsentExitCodeIsFailed(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))

	state, err := State(1<<30, dir)
	assert.NoError(t, err)
	assert.Equal(t, "FAILED", state)
}
