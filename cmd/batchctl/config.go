package main

import (
	"fmt"
	"os"

	"github.com/salome-platform/batchutil/pkg/job"
	"github.com/salome-platform/batchutil/pkg/transport"
	"github.com/salome-platform/batchutil/pkg/transport/local"
	"github.com/salome-platform/batchutil/pkg/transport/sshexec"
	"github.com/salome-platform/batchutil/pkg/transport/sshpersist"
	"gopkg.in/yaml.v3"
)

// jobConfig is the YAML document a caller hands batchctl: which plugin
// backs the job, which transport carries its calls, and the
// LaunchParameters describing the command itself.
type jobConfig struct {
	Plugin     string                   `yaml:"plugin"`
	Transport  string                   `yaml:"transport,omitempty"`
	Connection job.ConnectionParameters `yaml:"connection,omitempty"`
	Params     job.LaunchParameters     `yaml:"params"`
}

func loadConfig(path string) (*jobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg jobConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Plugin == "" {
		return nil, fmt.Errorf("config %s: plugin is required", path)
	}
	return &cfg, nil
}

// buildTransport picks the Transport implementation named by cfg.Transport,
// defaulting by plugin: local plugin gets the local transport, nobatch and
// slurm default to the persistent SSH transport.
func buildTransport(cfg *jobConfig) (transport.Transport, error) {
	kind := cfg.Transport
	if kind == "" {
		if cfg.Plugin == "local" {
			kind = "local"
		} else {
			kind = "sshpersist"
		}
	}

	switch kind {
	case "local":
		return local.New(), nil
	case "sshexec":
		return sshexec.New(cfg.Connection), nil
	case "sshpersist":
		return sshpersist.New(cfg.Connection), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
}
