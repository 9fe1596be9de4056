// Package selection decides what a HUD shows when several pieces are
// selected at once.
//
// Only generic groups (attributes, skills, saves, initiative, rest) are
// candidates, and each is shown only when its predicate holds for every
// eligible piece. There is no partial fallback: an action in a
// multi-selection list must be valid to replay against every selected
// piece.
package selection

import (
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/encoding"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
)

// Group is one candidate category for a multi-selection list.
type Group struct {
	Title string
	// Predicate must hold for every eligible actor. A nil predicate holds
	// for any actor, for groups built from world configuration alone.
	Predicate func(actor *host.Actor) bool
	// Build produces the category from one representative actor.
	Build       func(representative *host.Actor) *catalog.Category
	ForceAppend bool
}

// Eligible keeps tokens with an actor whose kind is in kinds.
func Eligible(tokens []host.Token, kinds []string) []host.Token {
	out := make([]host.Token, 0, len(tokens))
	for _, token := range tokens {
		if token.Actor == nil {
			continue
		}
		if host.HasKind(kinds, token.Actor.Kind) {
			out = append(out, token)
		}
	}
	return out
}

// Actors returns the actors of tokens.
func Actors(tokens []host.Token) []*host.Actor {
	out := make([]*host.Actor, 0, len(tokens))
	for _, token := range tokens {
		if token.Actor != nil {
			out = append(out, token.Actor)
		}
	}
	return out
}

// All reports whether pred holds for every actor. It is false for an empty
// selection.
func All(actors []*host.Actor, pred func(*host.Actor) bool) bool {
	if len(actors) == 0 {
		return false
	}
	for _, actor := range actors {
		if pred != nil && !pred(actor) {
			return false
		}
	}
	return true
}

// Aggregate marks list as a multi-selection list and combines every group
// whose predicate holds for all actors. It returns the titles it combined.
func Aggregate(list *catalog.ActionList, actors []*host.Actor, groups []Group) []string {
	list.TokenID = encoding.MultiTokenID
	list.ActorID = encoding.MultiTokenID
	if len(actors) == 0 {
		return nil
	}
	representative := actors[0]
	var built []string
	for _, group := range groups {
		if group.Build == nil || !All(actors, group.Predicate) {
			continue
		}
		if list.Combine(group.Title, group.Build(representative), group.ForceAppend) {
			built = append(built, group.Title)
		}
	}
	return built
}
