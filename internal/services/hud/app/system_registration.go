package server

import (
	"errors"
	"fmt"

	"github.com/louisbranch/actionhud/internal/services/hud/domain/systems"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/systems/demonlord"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/systems/pf1"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/systems/symbaroum"
)

var errSystemRegistrationMismatch = errors.New("system registration mismatch")

// registeredAdapters returns the game system adapters wired into runtime.
func registeredAdapters() []systems.Adapter {
	return []systems.Adapter{
		demonlord.NewAdapter(),
		symbaroum.NewAdapter(),
		pf1.NewAdapter(),
	}
}

// newAdapterRegistry registers every adapter and refuses startup when a
// known game system has no adapter.
func newAdapterRegistry(adapters []systems.Adapter) (*systems.Registry, error) {
	registry := systems.NewRegistry()
	for _, adapter := range adapters {
		if adapter == nil {
			return nil, fmt.Errorf("%w: adapter is nil", errSystemRegistrationMismatch)
		}
		if err := registry.Register(adapter); err != nil {
			return nil, fmt.Errorf("register %s adapter: %w", adapter.ID(), err)
		}
	}
	for _, system := range systems.GameSystems() {
		if _, err := registry.Get(system, ""); err != nil {
			return nil, fmt.Errorf("%w: %s has no adapter", errSystemRegistrationMismatch, system)
		}
	}
	return registry, nil
}
