package job

import (
	"bytes"
	"context"
	"encoding/gob"

	"github.com/salome-platform/batchutil/pkg/log"
	"github.com/salome-platform/batchutil/pkg/metrics"
)

// Job is the caller-owned handle over one submission of a command. It
// delegates every lifecycle operation to its Plugin; Job itself only adds
// logging, metrics, and the CREATED/empty-jobid short-circuit shared by
// all three plugins (spec'd in §4.G of the lifecycle core).
type Job struct {
	Params     LaunchParameters
	PluginName string
	Plugin     Plugin
}

// New wraps an already-constructed Plugin (as returned by a plugin
// package's constructor or pkg/registry) into a Job.
func New(params LaunchParameters, pluginName string, plugin Plugin) *Job {
	return &Job{Params: params, PluginName: pluginName, Plugin: plugin}
}

// Submit starts the job. P1/P2: before Submit, State is always Created;
// after a successful Submit, State is never Created again.
func (j *Job) Submit(ctx context.Context) error {
	logger := log.WithPlugin(j.PluginName)
	timer := metrics.NewTimer()
	err := j.Plugin.Submit(ctx)
	metrics.SubmitDuration.WithLabelValues(j.PluginName).Observe(timer.Duration().Seconds())
	if err != nil {
		logger.Error().Err(err).Msg("submit failed")
		return err
	}
	metrics.JobsSubmittedTotal.WithLabelValues(j.PluginName).Inc()
	metrics.JobsActive.WithLabelValues(j.PluginName).Inc()
	logger.Info().Str("job_id", j.Plugin.JobID()).Msg("job submitted")
	return nil
}

// JobID returns the plugin's handle, or "" before Submit.
func (j *Job) JobID() string { return j.Plugin.JobID() }

// State returns Created for a never-submitted job without delegating,
// matching the shared short-circuit in spec'd lifecycle core.
func (j *Job) State(ctx context.Context) (State, error) {
	if j.Plugin.JobID() == "" {
		return Created, nil
	}
	timer := metrics.NewTimer()
	s, err := j.Plugin.State(ctx)
	metrics.StateDuration.WithLabelValues(j.PluginName).Observe(timer.Duration().Seconds())
	return s, err
}

// Wait is a no-op for a never-submitted job, otherwise blocks until the
// job reaches a terminal state.
func (j *Job) Wait(ctx context.Context) error {
	if j.Plugin.JobID() == "" {
		return nil
	}
	timer := metrics.NewTimer()
	err := j.Plugin.Wait(ctx)
	metrics.WaitDuration.WithLabelValues(j.PluginName).Observe(timer.Duration().Seconds())
	if err != nil {
		return err
	}
	state, _ := j.Plugin.State(ctx)
	metrics.JobsActive.WithLabelValues(j.PluginName).Dec()
	switch state {
	case Finished:
		metrics.JobsFinishedTotal.WithLabelValues(j.PluginName).Inc()
	case Failed:
		metrics.JobsFailedTotal.WithLabelValues(j.PluginName).Inc()
	}
	return nil
}

// Cancel is a no-op for a never-submitted job.
func (j *Job) Cancel(ctx context.Context) error {
	if j.Plugin.JobID() == "" {
		return nil
	}
	err := j.Plugin.Cancel(ctx)
	if err == nil {
		metrics.JobsCancelledTotal.WithLabelValues(j.PluginName).Inc()
	}
	return err
}

// Get copies files or directories out of the job's working directory.
func (j *Job) Get(ctx context.Context, remotePaths []string, localPath string) error {
	return j.Plugin.Get(ctx, remotePaths, localPath)
}

// ExitCode returns the terminal exit code, or nil if undetermined.
func (j *Job) ExitCode(ctx context.Context) (*int, error) {
	return j.Plugin.ExitCode(ctx)
}

func (j *Job) Stdout(ctx context.Context) (string, error) { return j.Plugin.Stdout(ctx) }
func (j *Job) Stderr(ctx context.Context) (string, error) { return j.Plugin.Stderr(ctx) }

// gobJob is the wire shape for serialization. Plugin is encoded through
// the gob interface mechanism; every concrete plugin type registers
// itself with gob.Register in its package init so the decoder can
// reconstruct the right type behind the Plugin interface.
type gobJob struct {
	Params     LaunchParameters
	PluginName string
	Plugin     Plugin
}

// Serialize encodes the job to an opaque byte string. P7: a deserialized
// handle must observe the same terminal state as the original.
func (j *Job) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(gobJob{Params: j.Params, PluginName: j.PluginName, Plugin: j.Plugin}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeJob reconstructs a Job from bytes produced by Serialize.
func DeserializeJob(data []byte) (*Job, error) {
	var gj gobJob
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&gj); err != nil {
		return nil, err
	}
	return &Job{Params: gj.Params, PluginName: gj.PluginName, Plugin: gj.Plugin}, nil
}
