package core

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Interface defines a common interface for all services
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

// HealthChecker is implemented by services that can report readiness.
type HealthChecker interface {
	Healthy() bool
}

type entry struct {
	name    string
	service Interface
}

// Registry starts services in registration order and stops them in reverse.
type Registry struct {
	mu       sync.Mutex
	services []entry
	started  int
}

// NewRegistry creates a new core registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a named service to the registry
func (r *Registry) Register(name string, service Interface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services = append(r.services, entry{name: name, service: service})
}

// StartAll starts every service. If one fails, the ones already started are stopped.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	for i := r.started; i < len(r.services); i++ {
		e := r.services[i]
		if err := e.service.Start(ctx); err != nil {
			started := r.takeStartedLocked()
			r.mu.Unlock()
			stopReverse(started)
			return fmt.Errorf("start %s: %w", e.name, err)
		}
		r.started = i + 1
		zap.L().Debug("service started", zap.String("service", e.name))
	}
	r.mu.Unlock()
	return nil
}

// StopAll stops started services in reverse order
func (r *Registry) StopAll() {
	r.mu.Lock()
	started := r.takeStartedLocked()
	r.mu.Unlock()
	stopReverse(started)
}

func (r *Registry) takeStartedLocked() []entry {
	started := make([]entry, r.started)
	copy(started, r.services[:r.started])
	r.started = 0
	return started
}

// stopReverse runs without the registry lock so Stop may call back into Health.
func stopReverse(entries []entry) {
	for i := len(entries) - 1; i >= 0; i-- {
		entries[i].service.Stop()
		zap.L().Debug("service stopped", zap.String("service", entries[i].name))
	}
}

// Health reports readiness for every service that implements HealthChecker.
func (r *Registry) Health() map[string]bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	health := make(map[string]bool)
	for _, e := range r.services {
		if hc, ok := e.service.(HealthChecker); ok {
			health[e.name] = hc.Healthy()
		}
	}
	return health
}

// Names returns registered service names in start order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.services))
	for i, e := range r.services {
		names[i] = e.name
	}
	return names
}
