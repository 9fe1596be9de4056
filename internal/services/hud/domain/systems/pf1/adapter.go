// Package pf1 builds action catalogs for Pathfinder 1e actors.
//
// Besides item-bound actions (attacks, buffs, inventory, spells, feats) the
// catalog carries the world's skill, save and ability tables, which are
// also what a multi-selection HUD offers.
package pf1

import (
	"context"

	"github.com/louisbranch/actionhud/internal/services/hud/domain/build"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/encoding"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/selection"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/systems"
)

const (
	// SystemVersion is the ruleset version this adapter reads.
	SystemVersion = "1.0.0"

	kindCharacter = "character"
	kindNPC       = "npc"
)

// Adapter implements systems.Adapter for Pathfinder 1e.
type Adapter struct{}

// NewAdapter returns the PF1 adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// ID implements systems.Adapter.
func (a *Adapter) ID() systems.GameSystem {
	return systems.GameSystemPF1
}

// Version implements systems.Adapter.
func (a *Adapter) Version() string {
	return SystemVersion
}

// Kinds implements systems.Adapter.
func (a *Adapter) Kinds() []string {
	return []string{kindNPC, kindCharacter}
}

// BuildActionList implements systems.Adapter. Categories are folded in the
// sheet's order: attacks, buffs, conditions, inventory, one category per
// spellbook, features, skills, saves, checks, utility.
func (a *Adapter) BuildActionList(ctx context.Context, bc *build.Context, req systems.Request) (*catalog.ActionList, error) {
	list := catalog.NewActionList()
	if req.Multiple {
		a.buildMultiple(bc, list)
		return list, nil
	}
	if req.Token == nil || req.Token.Actor == nil {
		return list, nil
	}
	token, actor := req.Token, req.Token.Actor
	list.TokenID = token.ID
	list.ActorID = actor.ID

	b := builder{bc: bc, actor: actor, tokenID: token.ID}
	initiative, rolled := bc.Scene.Combat.Initiative(token.ID)

	steps := []step{
		{title: bc.T("hud.attack"), category: b.attacks()},
		{title: bc.T("hud.buffs"), category: b.buffs()},
		{title: bc.T("hud.conditions"), category: b.conditions()},
		{title: bc.T("hud.inventory"), category: b.inventory()},
	}
	for _, book := range b.spellbooks() {
		steps = append(steps, step{title: book.title, category: book.category})
	}
	steps = append(steps,
		step{title: bc.T("hud.features"), category: b.features()},
		step{title: bc.T("hud.skills"), category: b.skills()},
		step{title: bc.T("hud.saves"), category: b.saves(true)},
		step{title: bc.T("hud.checks"), category: b.checks(true)},
		step{title: bc.T("hud.utility"), category: b.utility(initiative, rolled && initiative != 0, actor.Kind == kindCharacter)},
	)

	for _, next := range steps {
		if err := bc.Fold(ctx, list, next.title, next.category); err != nil {
			return nil, err
		}
	}
	if bc.Settings.ShowHudTitle {
		list.HudTitle = token.Name
	}
	return list, nil
}

type step struct {
	title    string
	category *catalog.Category
}

// buildMultiple offers the world tables to every eligible selection, and
// rest only when every selected actor is a character.
func (a *Adapter) buildMultiple(bc *build.Context, list *catalog.ActionList) {
	tokens := selection.Eligible(bc.Scene.Controlled, a.Kinds())
	actors := selection.Actors(tokens)
	multi := func(rep *host.Actor) builder {
		return builder{bc: bc, actor: rep, tokenID: encoding.MultiTokenID}
	}
	isCharacter := func(actor *host.Actor) bool { return actor.Kind == kindCharacter }

	selection.Aggregate(list, actors, []selection.Group{
		{
			Title:       bc.T("hud.skills"),
			Build:       func(rep *host.Actor) *catalog.Category { return multi(rep).tableSkills() },
			ForceAppend: true,
		},
		{
			Title:       bc.T("hud.saves"),
			Build:       func(rep *host.Actor) *catalog.Category { return multi(rep).saves(false) },
			ForceAppend: true,
		},
		{
			Title:       bc.T("hud.checks"),
			Build:       func(rep *host.Actor) *catalog.Category { return multi(rep).checks(false) },
			ForceAppend: true,
		},
		{
			Title: bc.T("hud.utility"),
			Build: func(rep *host.Actor) *catalog.Category {
				rolled := everyInitiativeRolled(bc.Scene.Combat, tokens)
				return multi(rep).utility(0, rolled, selection.All(actors, isCharacter))
			},
		},
	})
}
