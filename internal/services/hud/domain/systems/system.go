package systems

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/actionhud/internal/platform/errors"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/build"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
)

// GameSystem identifies a supported game system.
type GameSystem int

const (
	GameSystemUnspecified GameSystem = iota
	GameSystemDemonlord
	GameSystemSymbaroum
	GameSystemPF1
)

var gameSystemNames = map[GameSystem]string{
	GameSystemDemonlord: "demonlord",
	GameSystemSymbaroum: "symbaroum",
	GameSystemPF1:       "pf1",
}

// String returns the wire name of the system.
func (g GameSystem) String() string {
	if name, ok := gameSystemNames[g]; ok {
		return name
	}
	return "unspecified"
}

// ParseGameSystem resolves a wire name, ignoring case and surrounding space.
func ParseGameSystem(value string) (GameSystem, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for system, name := range gameSystemNames {
		if name == normalized {
			return system, nil
		}
	}
	return GameSystemUnspecified, apperrors.WithMetadata(
		apperrors.CodeUnknownGameSystem,
		"unknown game system: "+value,
		map[string]string{"System": value},
	)
}

// GameSystems lists the supported systems in a stable order.
func GameSystems() []GameSystem {
	return []GameSystem{GameSystemDemonlord, GameSystemSymbaroum, GameSystemPF1}
}

// Request is what an adapter builds from. Token is nil when nothing is
// selected. When Multiple is set the adapter reads the selection from the
// build context's scene instead of Token.
type Request struct {
	Token    *host.Token
	Multiple bool
}

// Adapter builds catalogs for one game system version.
type Adapter interface {
	ID() GameSystem
	Version() string
	// Kinds lists the actor kinds eligible for multi-selection.
	Kinds() []string
	BuildActionList(ctx context.Context, bc *build.Context, req Request) (*catalog.ActionList, error)
}
