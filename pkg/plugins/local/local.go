// Package local implements the Local plugin: in-process execution via
// pkg/daemonizer directly, with no subprocess shelling out to a separate
// manager binary. Grounded on original_source's plugins/local/job.py
// (subprocess.Popen + psutil.pid_exists), generalized with
// pybatch_manager.py's wall-time/array semantics.
package local

import (
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/salome-platform/batchutil/pkg/batcherr"
	"github.com/salome-platform/batchutil/pkg/batchutil"
	"github.com/salome-platform/batchutil/pkg/daemonizer"
	"github.com/salome-platform/batchutil/pkg/job"
	"github.com/salome-platform/batchutil/pkg/log"
	"github.com/salome-platform/batchutil/pkg/metrics"
	"github.com/salome-platform/batchutil/pkg/registry"
	"github.com/salome-platform/batchutil/pkg/transport"
)

const Name = "local"

func init() {
	gob.Register(&Plugin{})
	// The local plugin never touches its Transport: everything it does
	// runs on the caller's own machine via pkg/daemonizer in-process.
	registry.Register(Name, func(params job.LaunchParameters, _ transport.Transport) (job.Plugin, error) {
		return New(params), nil
	})
}

// Plugin runs LaunchParameters.Command directly on the machine the caller
// is running on. It never uses a Transport: InputFiles are copied with
// plain os file operations and the supervisor is the daemonizer package
// called in-process.
type Plugin struct {
	Params job.LaunchParameters
	Pid    int // 0 ⇔ not yet submitted
}

// New constructs a Local plugin bound to params.
func New(params job.LaunchParameters) *Plugin {
	return &Plugin{Params: params}
}

func (p *Plugin) JobID() string {
	if p.Pid == 0 {
		return ""
	}
	return strconv.Itoa(p.Pid)
}

func (p *Plugin) Submit(ctx context.Context) error {
	if err := os.MkdirAll(p.Params.WorkDirectory, 0o755); err != nil {
		return &batcherr.SubmitError{Cause: err}
	}
	for _, src := range p.Params.InputFiles {
		if err := copyInto(src, p.Params.WorkDirectory); err != nil {
			return &batcherr.SubmitError{Cause: err}
		}
	}

	wallTime := 0
	if p.Params.WallTime != "" {
		secStr, err := batchutil.SlurmTimeToSeconds(p.Params.WallTime)
		if err != nil {
			return &batcherr.SubmitError{Cause: err}
		}
		wallTime, _ = strconv.Atoi(secStr)
	}

	totalJobs := p.Params.TotalJobs
	if totalJobs < 1 {
		totalJobs = 1
	}

	pid, err := daemonizer.Submit(daemonizer.SubmitOptions{
		WorkDir:         p.Params.WorkDirectory,
		Command:         p.Params.Command,
		WallTimeSeconds: wallTime,
		Ntasks:          p.Params.Ntasks,
		CreateNodefile:  p.Params.CreateNodefile,
		TotalJobs:       totalJobs,
		MaxSimulJobs:    p.Params.MaxSimulJobs,
	})
	if err != nil {
		return &batcherr.SubmitError{Cause: err}
	}
	p.Pid = pid
	log.WithPlugin(Name).Info().Int("pid", pid).Msg("job submitted")
	return nil
}

func (p *Plugin) State(ctx context.Context) (job.State, error) {
	if p.Pid == 0 {
		return job.Created, nil
	}
	state, err := daemonizer.State(p.Pid, p.Params.WorkDirectory)
	if err != nil {
		return "", err
	}
	return job.State(state), nil
}

// Wait blocks until the daemonizer process exits, then records the
// array's task count and finished/failed outcome. These are in-process
// counters only: pkg/daemonizer itself stays stdlib-only so the same
// supervisor code can be linked into cmd/pybatch-managerd without
// pulling prometheus onto a remote host.
func (p *Plugin) Wait(ctx context.Context) error {
	if p.Pid == 0 {
		return nil
	}
	if err := daemonizer.Wait(p.Pid); err != nil {
		return err
	}
	totalJobs := p.Params.TotalJobs
	if totalJobs < 1 {
		totalJobs = 1
	}
	metrics.DaemonArrayTasksTotal.Add(float64(totalJobs))
	outcome := "finished"
	if code, err := p.ExitCode(ctx); err == nil && code != nil && *code != 0 {
		outcome = "failed"
	}
	metrics.DaemonJobsTotal.WithLabelValues(outcome).Inc()
	return nil
}

func (p *Plugin) Cancel(ctx context.Context) error {
	if p.Pid == 0 {
		return nil
	}
	return daemonizer.Cancel(p.Pid)
}

func (p *Plugin) Get(ctx context.Context, remotePaths []string, localPath string) error {
	for _, rp := range remotePaths {
		src := rp
		if !batchutil.IsAbsolute(rp, true) {
			src = filepath.Join(p.Params.WorkDirectory, rp)
		}
		if err := copyInto(src, localPath); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plugin) ExitCode(ctx context.Context) (*int, error) {
	data, err := os.ReadFile(filepath.Join(p.Params.WorkDirectory, "logs", "exit_code.log"))
	if err != nil {
		return nil, nil
	}
	code, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, nil
	}
	return &code, nil
}

func (p *Plugin) Stdout(ctx context.Context) (string, error) {
	return readLog(p.Params.WorkDirectory, "output.log")
}

func (p *Plugin) Stderr(ctx context.Context) (string, error) {
	return readLog(p.Params.WorkDirectory, "error.log")
}

func readLog(workDir, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(workDir, "logs", name))
	if err != nil {
		return "", fmt.Errorf("local: read %s: %w", name, err)
	}
	return string(data), nil
}

func copyInto(src, dstDir string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		dst := filepath.Join(dstDir, filepath.Base(src))
		entries, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return err
		}
		for _, entry := range entries {
			if err := copyInto(filepath.Join(src, entry.Name()), dst); err != nil {
				return err
			}
		}
		return nil
	}
	if !info.Mode().IsRegular() {
		return &batcherr.CopyError{Path: src}
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(dstDir, filepath.Base(src))
	return os.WriteFile(dst, data, info.Mode().Perm())
}
