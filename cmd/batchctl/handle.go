package main

import (
	"fmt"
	"os"

	"github.com/salome-platform/batchutil/pkg/job"
)

// defaultHandlePath is the default of every subcommand's --handle flag:
// the path a Job's serialized handle is written to by submit and read
// from by the others.
const defaultHandlePath = "batchctl.job"

func saveHandle(path string, j *job.Job) error {
	data, err := j.Serialize()
	if err != nil {
		return fmt.Errorf("serialize job handle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write job handle %s: %w", path, err)
	}
	return nil
}

func loadHandle(path string) (*job.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job handle %s: %w", path, err)
	}
	j, err := job.DeserializeJob(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize job handle %s: %w", path, err)
	}
	return j, nil
}
