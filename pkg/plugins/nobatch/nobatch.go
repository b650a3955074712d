// Package nobatch implements the No-batch plugin: it ships the compiled
// cmd/pybatch-managerd binary and any input files to a remote host over a
// Transport, then drives submit/state/wait/cancel by invoking that binary
// remotely. Grounded on original_source's plugins/nobatch/job.py, which
// does the same with pybatch_manager.py run through a remote python3.
package nobatch

import (
	"context"
	"encoding/gob"
	"fmt"
	"strconv"
	"strings"

	"github.com/salome-platform/batchutil/pkg/batcherr"
	"github.com/salome-platform/batchutil/pkg/batchutil"
	"github.com/salome-platform/batchutil/pkg/job"
	"github.com/salome-platform/batchutil/pkg/log"
	"github.com/salome-platform/batchutil/pkg/registry"
	"github.com/salome-platform/batchutil/pkg/transport"
)

const Name = "nobatch"

// DefaultManagerBinaryName is the file name pybatch-managerd is uploaded
// under when Plugin.ManagerBinaryPath is left empty by the caller — the
// caller is expected to have a copy of the compiled binary available
// locally at that relative path (e.g. produced by `go build
// ./cmd/pybatch-managerd`).
const DefaultManagerBinaryName = "pybatch-managerd"

func init() {
	gob.Register(&Plugin{})
	registry.Register(Name, func(params job.LaunchParameters, t transport.Transport) (job.Plugin, error) {
		return New(params, t, ""), nil
	})
}

// Plugin runs LaunchParameters.Command on a remote host with no batch
// manager present, via an uploaded pybatch-managerd binary.
type Plugin struct {
	Params            job.LaunchParameters
	Transport         transport.Transport
	ManagerBinaryPath string // local path to the pybatch-managerd binary to ship
	remoteManagerPath string
	Jobid             string
}

// New constructs a No-batch plugin. managerBinaryPath is the local path to
// the compiled pybatch-managerd binary; if empty, DefaultManagerBinaryName
// is uploaded from the current directory.
func New(params job.LaunchParameters, t transport.Transport, managerBinaryPath string) *Plugin {
	if managerBinaryPath == "" {
		managerBinaryPath = DefaultManagerBinaryName
	}
	return &Plugin{Params: params, Transport: t, ManagerBinaryPath: managerBinaryPath}
}

func (p *Plugin) JobID() string { return p.Jobid }

func (p *Plugin) Submit(ctx context.Context) error {
	if err := p.Transport.Open(ctx); err != nil {
		return &batcherr.SubmitError{Cause: err}
	}
	defer p.Transport.Close()

	workDir := p.Params.WorkDirectory
	isPosix := p.Params.IsPosix

	if isPosix {
		logDir := batchutil.PathJoin(workDir, true, "logs")
		if _, err := p.Transport.Run(ctx, []string{"mkdir", "-p", logDir}); err != nil {
			return &batcherr.SubmitError{Cause: err}
		}
	}

	inputs := append(append([]string{}, p.Params.InputFiles...), p.ManagerBinaryPath)
	if err := p.Transport.Upload(ctx, inputs, workDir); err != nil {
		return &batcherr.SubmitError{Cause: err}
	}

	p.remoteManagerPath = batchutil.PathJoin(workDir, isPosix, baseName(p.ManagerBinaryPath))

	argv := []string{p.remoteManagerPath, "submit", workDir}
	if p.Params.WallTime != "" {
		seconds, err := batchutil.SlurmTimeToSeconds(p.Params.WallTime)
		if err != nil {
			return &batcherr.SubmitError{Cause: err}
		}
		argv = append(argv, "--wall_time", seconds)
	}
	if p.Params.CreateNodefile && p.Params.Ntasks > 0 {
		argv = append(argv, "--ntasks", strconv.Itoa(p.Params.Ntasks))
	}
	if p.Params.TotalJobs > 1 {
		argv = append(argv, "--total_jobs", strconv.Itoa(p.Params.TotalJobs))
	}
	if p.Params.MaxSimulJobs > 1 {
		argv = append(argv, "--max_simul_jobs", strconv.Itoa(p.Params.MaxSimulJobs))
	}
	argv = append(argv, "--")
	argv = append(argv, p.Params.Command...)

	out, err := p.Transport.Run(ctx, argv)
	if err != nil {
		return &batcherr.SubmitError{Cause: err}
	}
	jobid := strings.TrimSpace(out)
	if _, err := strconv.Atoi(jobid); err != nil {
		return &batcherr.SubmitError{Cause: fmt.Errorf("manager returned non-numeric pid %q", jobid)}
	}
	p.Jobid = jobid
	log.WithPlugin(Name).Info().Str("job_id", jobid).Msg("job submitted")
	return nil
}

func (p *Plugin) State(ctx context.Context) (job.State, error) {
	if p.Jobid == "" {
		return job.Created, nil
	}
	if err := p.Transport.Open(ctx); err != nil {
		return "", err
	}
	defer p.Transport.Close()

	out, err := p.Transport.Run(ctx, []string{p.remoteManagerPath, "state", p.Jobid, p.Params.WorkDirectory})
	if err != nil {
		return "", err
	}
	return job.State(strings.TrimSpace(out)), nil
}

func (p *Plugin) Wait(ctx context.Context) error {
	if p.Jobid == "" {
		return nil
	}
	if err := p.Transport.Open(ctx); err != nil {
		return err
	}
	defer p.Transport.Close()

	_, err := p.Transport.Run(ctx, []string{p.remoteManagerPath, "wait", p.Jobid})
	return err
}

func (p *Plugin) Cancel(ctx context.Context) error {
	if p.Jobid == "" {
		return nil
	}
	if err := p.Transport.Open(ctx); err != nil {
		return err
	}
	defer p.Transport.Close()

	_, err := p.Transport.Run(ctx, []string{p.remoteManagerPath, "cancel", p.Jobid})
	return err
}

func (p *Plugin) Get(ctx context.Context, remotePaths []string, localPath string) error {
	if err := p.Transport.Open(ctx); err != nil {
		return err
	}
	defer p.Transport.Close()

	resolved := make([]string, len(remotePaths))
	for i, rp := range remotePaths {
		if batchutil.IsAbsolute(rp, p.Params.IsPosix) {
			resolved[i] = rp
		} else {
			resolved[i] = batchutil.PathJoin(p.Params.WorkDirectory, p.Params.IsPosix, rp)
		}
	}
	return p.Transport.Download(ctx, resolved, localPath)
}

func (p *Plugin) ExitCode(ctx context.Context) (*int, error) {
	if err := p.Transport.Open(ctx); err != nil {
		return nil, nil
	}
	defer p.Transport.Close()

	path := batchutil.PathJoin(p.Params.WorkDirectory, p.Params.IsPosix, "logs", "exit_code.log")
	content, err := p.Transport.Read(ctx, path)
	if err != nil {
		return nil, nil
	}
	code, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil {
		return nil, nil
	}
	return &code, nil
}

func (p *Plugin) Stdout(ctx context.Context) (string, error) {
	return p.readLog(ctx, "output.log")
}

func (p *Plugin) Stderr(ctx context.Context) (string, error) {
	return p.readLog(ctx, "error.log")
}

func (p *Plugin) readLog(ctx context.Context, name string) (string, error) {
	if err := p.Transport.Open(ctx); err != nil {
		return "", err
	}
	defer p.Transport.Close()

	path := batchutil.PathJoin(p.Params.WorkDirectory, p.Params.IsPosix, "logs", name)
	return p.Transport.Read(ctx, path)
}

func baseName(p string) string {
	idx := strings.LastIndexAny(p, `/\`)
	if idx < 0 {
		return p
	}
	return p[idx+1:]
}
