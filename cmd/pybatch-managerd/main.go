// Command pybatch-managerd is the self-contained submit/wait/state/cancel
// daemonizer shipped to unmanaged remote hosts by the No-batch plugin. It
// deliberately avoids nonstandard libraries so it tolerates old
// interpreters on remote nodes: only the standard library and
// pkg/daemonizer (itself stdlib-only) are linked in.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/salome-platform/batchutil/pkg/daemonizer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case daemonizer.RunSubcommand:
		runSupervisor(os.Args[2:])
		return // Supervise calls os.Exit itself.
	case "submit":
		err = runSubmit(os.Args[2:])
	case "wait":
		err = runWait(os.Args[2:])
	case "state":
		err = runState(os.Args[2:])
	case "cancel":
		err = runCancel(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pybatch-managerd submit WORKDIR [--wall_time S] [--ntasks N] [--total_jobs K] [--max_simul_jobs M] -- CMD [ARGS...]")
	fmt.Fprintln(os.Stderr, "       pybatch-managerd wait PID")
	fmt.Fprintln(os.Stderr, "       pybatch-managerd state PID WORKDIR")
	fmt.Fprintln(os.Stderr, "       pybatch-managerd cancel PID")
}

func runSubmit(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("submit: missing WORKDIR")
	}
	workDir := args[0]
	rest := args[1:]

	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	wallTime := fs.Int("wall_time", 0, "wall time in seconds, 0 for unlimited")
	ntasks := fs.Int("ntasks", 0, "task count for the generated nodefile")
	totalJobs := fs.Int("total_jobs", 1, "job array size")
	maxSimulJobs := fs.Int("max_simul_jobs", 1, "advisory concurrency cap within the array")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	cmdArgs := fs.Args()
	if len(cmdArgs) > 0 && cmdArgs[0] == "--" {
		cmdArgs = cmdArgs[1:]
	}
	if len(cmdArgs) == 0 {
		return fmt.Errorf("submit: missing CMD")
	}

	pid, err := daemonizer.Submit(daemonizer.SubmitOptions{
		WorkDir:         workDir,
		Command:         cmdArgs,
		WallTimeSeconds: *wallTime,
		Ntasks:          *ntasks,
		CreateNodefile:  *ntasks > 0,
		TotalJobs:       *totalJobs,
		MaxSimulJobs:    *maxSimulJobs,
	})
	if err != nil {
		return err
	}
	fmt.Println(pid)
	return nil
}

func runWait(args []string) error {
	pid, err := parsePID(args)
	if err != nil {
		return fmt.Errorf("wait: %w", err)
	}
	return daemonizer.Wait(pid)
}

func runState(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("state: usage: state PID WORKDIR")
	}
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("state: invalid PID: %w", err)
	}
	state, err := daemonizer.State(pid, args[1])
	if err != nil {
		return err
	}
	fmt.Println(state)
	return nil
}

func runCancel(args []string) error {
	pid, err := parsePID(args)
	if err != nil {
		return fmt.Errorf("cancel: %w", err)
	}
	return daemonizer.Cancel(pid)
}

func parsePID(args []string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing PID")
	}
	return strconv.Atoi(args[0])
}

// runSupervisor dispatches the hidden __run subcommand Submit spawns:
// __run WORKDIR WALL_TIME_SECONDS TOTAL_JOBS MAX_SIMUL_JOBS -- CMD [ARGS...]
func runSupervisor(args []string) {
	if len(args) < 4 {
		log.Fatalf("__run: expected WORKDIR WALL_TIME TOTAL_JOBS MAX_SIMUL_JOBS -- CMD..., got %v", args)
	}

	workDir := args[0]
	wallTime, err := strconv.Atoi(args[1])
	if err != nil {
		log.Fatalf("__run: invalid wall_time %q: %v", args[1], err)
	}
	totalJobs, err := strconv.Atoi(args[2])
	if err != nil {
		log.Fatalf("__run: invalid total_jobs %q: %v", args[2], err)
	}
	maxSimulJobs, err := strconv.Atoi(args[3])
	if err != nil {
		log.Fatalf("__run: invalid max_simul_jobs %q: %v", args[3], err)
	}

	rest := args[4:]
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}

	daemonizer.Supervise(daemonizer.SuperviseOptions{
		WorkDir:         workDir,
		WallTimeSeconds: wallTime,
		TotalJobs:       totalJobs,
		MaxSimulJobs:    maxSimulJobs,
		Command:         rest,
	})
}
