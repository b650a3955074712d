// Package registry is the minimal plugin-factory glue named as an
// external collaborator by the core lifecycle, realized here the Go way:
// explicit init()-time registration rather than dynamic discovery.
package registry

import (
	"fmt"
	"sync"

	"github.com/salome-platform/batchutil/pkg/batcherr"
	"github.com/salome-platform/batchutil/pkg/job"
	"github.com/salome-platform/batchutil/pkg/transport"
)

// Factory constructs a Plugin bound to the given parameters and
// transport. transport may be nil for plugins that don't need one (the
// local plugin ignores it).
type Factory func(params job.LaunchParameters, t transport.Transport) (job.Plugin, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register adds a plugin factory under name. Called from each plugin
// package's init(). Registering the same name twice panics, mirroring
// the teacher's init-time MustRegister discipline for metrics.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: plugin %q already registered", name))
	}
	factories[name] = factory
}

// Create resolves name to a registered Factory and builds a Job around
// the Plugin it returns. It is the Go realization of job_factory.py's
// create_job(plugin_name, params).
func Create(name string, params job.LaunchParameters, t transport.Transport) (*job.Job, error) {
	mu.RLock()
	factory, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", batcherr.ErrPluginNotFound, name)
	}
	plugin, err := factory(params, t)
	if err != nil {
		return nil, err
	}
	return job.New(params, name, plugin), nil
}
