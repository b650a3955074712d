// Command batchctl is a CLI front end over pkg/registry: it loads a
// LaunchParameters document, submits it through the named plugin, and
// offers state/wait/cancel/get as separate invocations against a
// serialized job handle on disk.
package main

import (
	"fmt"
	stdlog "log"
	"os"
	"strconv"

	"github.com/salome-platform/batchutil/pkg/daemonizer"
	"github.com/salome-platform/batchutil/pkg/log"
	"github.com/spf13/cobra"

	_ "github.com/salome-platform/batchutil/pkg/plugins/local"
	_ "github.com/salome-platform/batchutil/pkg/plugins/nobatch"
	_ "github.com/salome-platform/batchutil/pkg/plugins/slurm"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// The local plugin's Submit re-execs this same binary with the hidden
	// __run argv daemonizer.Submit builds; intercept it before Cobra ever
	// sees argv, the same way cmd/pybatch-managerd does.
	if len(os.Args) > 1 && os.Args[1] == daemonizer.RunSubcommand {
		runSupervisor(os.Args[2:])
		return // Supervise calls os.Exit itself.
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runSupervisor dispatches the hidden __run subcommand Submit spawns:
// __run WORKDIR WALL_TIME_SECONDS TOTAL_JOBS MAX_SIMUL_JOBS -- CMD [ARGS...]
func runSupervisor(args []string) {
	if len(args) < 4 {
		stdlog.Fatalf("__run: expected WORKDIR WALL_TIME TOTAL_JOBS MAX_SIMUL_JOBS -- CMD..., got %v", args)
	}

	workDir := args[0]
	wallTime, err := strconv.Atoi(args[1])
	if err != nil {
		stdlog.Fatalf("__run: invalid wall_time %q: %v", args[1], err)
	}
	totalJobs, err := strconv.Atoi(args[2])
	if err != nil {
		stdlog.Fatalf("__run: invalid total_jobs %q: %v", args[2], err)
	}
	maxSimulJobs, err := strconv.Atoi(args[3])
	if err != nil {
		stdlog.Fatalf("__run: invalid max_simul_jobs %q: %v", args[3], err)
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

var rootCmd = &cobra.Command{
	Use:   "batchctl",
	Short: "batchctl - portable job submission across local, no-batch, and Slurm backends",
	Long: `batchctl drives a single computational job through the
submit -> state|wait|cancel|get -> exit_code lifecycle, against a local
machine, an unmanaged remote host, or a Slurm cluster, using the same
LaunchParameters document and the same handle file regardless of backend.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("batchctl version %s\nCommit: %s\nBuilt: %s\n", Version, Commit, BuildTime))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("health-addr", "", "Address to serve /health, /ready, /live, /metrics on (empty disables)")
	cobra.OnInitialize(initLogging, initHealth)

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(waitCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(getCmd)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")
	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}
