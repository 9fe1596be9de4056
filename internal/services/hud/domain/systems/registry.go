package systems

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry routes adapters by system and version.
type Registry struct {
	adapters map[systemKey]Adapter
	defaults map[GameSystem]string
	mu       sync.RWMutex
}

// systemKey identifies a specific system version.
type systemKey struct {
	ID      GameSystem
	Version string
}

var (
	// ErrRegistryNil indicates registration was attempted on a nil registry.
	ErrRegistryNil = errors.New("adapter registry is nil")
	// ErrAdapterRequired indicates a nil adapter was provided for registration.
	ErrAdapterRequired = errors.New("adapter is required")
	// ErrAdapterVersionRequired indicates adapter registration omitted a version.
	ErrAdapterVersionRequired = errors.New("adapter version is required")
	// ErrAdapterAlreadyRegistered indicates adapter registration duplicated ID+version.
	ErrAdapterAlreadyRegistered = errors.New("adapter already registered")
	// ErrAdapterNotFound indicates no adapter serves the requested system version.
	ErrAdapterNotFound = errors.New("adapter not found")
)

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[systemKey]Adapter),
		defaults: make(map[GameSystem]string),
	}
}

// Register registers an adapter for a system + version. The first version
// registered for a system becomes its default.
func (r *Registry) Register(adapter Adapter) error {
	if r == nil {
		return ErrRegistryNil
	}
	if adapter == nil {
		return ErrAdapterRequired
	}
	version := strings.TrimSpace(adapter.Version())
	if version == "" {
		return fmt.Errorf("%w: system %s", ErrAdapterVersionRequired, adapter.ID())
	}
	key := systemKey{ID: adapter.ID(), Version: version}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[key]; exists {
		return fmt.Errorf("%w: system %s version %s", ErrAdapterAlreadyRegistered, adapter.ID(), version)
	}
	if _, exists := r.defaults[adapter.ID()]; !exists {
		r.defaults[adapter.ID()] = version
	}
	r.adapters[key] = adapter
	return nil
}

// Get returns the adapter for the system + version. An empty version
// selects the system default.
func (r *Registry) Get(id GameSystem, version string) (Adapter, error) {
	if r == nil {
		return nil, ErrRegistryNil
	}
	resolved := strings.TrimSpace(version)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if resolved == "" {
		resolved = r.defaults[id]
	}
	adapter, ok := r.adapters[systemKey{ID: id, Version: resolved}]
	if !ok {
		return nil, fmt.Errorf("%w: system %s version %q", ErrAdapterNotFound, id, version)
	}
	return adapter, nil
}

// List returns registered adapters ordered by system then version.
func (r *Registry) List() []Adapter {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Adapter, 0, len(r.adapters))
	for _, adapter := range r.adapters {
		out = append(out, adapter)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID() != out[j].ID() {
			return out[i].ID() < out[j].ID()
		}
		return strings.TrimSpace(out[i].Version()) < strings.TrimSpace(out[j].Version())
	})
	return out
}
