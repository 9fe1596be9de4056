// Package demonlord builds action catalogs for Shadow of the Demon Lord
// actors.
package demonlord

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
	kindCreature  = "creature"

	placeholderImage = "icons/svg/mystery-man.svg"
)

// Adapter implements systems.Adapter for Demon Lord.
type Adapter struct{}

// NewAdapter returns the Demon Lord adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// ID implements systems.Adapter.
func (a *Adapter) ID() systems.GameSystem {
	return systems.GameSystemDemonlord
}

// Version implements systems.Adapter.
func (a *Adapter) Version() string {
	return SystemVersion
}

// Kinds implements systems.Adapter.
func (a *Adapter) Kinds() []string {
	return []string{kindCreature, kindCharacter}
}

// BuildActionList implements systems.Adapter. Categories are folded in a
// fixed order: challenge rolls, weapons, talents, spells, utility.
// Creatures get attack options and special attacks in place of weapons and
// talents.
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

	weaponsTitle := bc.T("hud.weapons")
	talentsTitle := bc.T("hud.talents")
	if actor.Kind != kindCharacter {
		weaponsTitle = bc.T("demonlord.attackoptions")
		talentsTitle = bc.T("demonlord.specialattacks")
	}

	steps := []struct {
		title    string
		category *catalog.Category
	}{
		{title: bc.T("demonlord.challenge"), category: b.attributes()},
		{title: weaponsTitle, category: b.weapons()},
		{title: talentsTitle, category: b.talents()},
		{title: bc.T("hud.spells"), category: b.spells()},
		{title: bc.T("hud.utility"), category: b.utility(actor.Kind == kindCharacter, nil)},
	}
	for _, step := range steps {
		if err := bc.Fold(ctx, list, step.title, step.category); err != nil {
			return nil, err
		}
	}

	if bc.Settings.ShowHudTitle {
		list.HudTitle = token.Name
	}
	return list, nil
}

func (a *Adapter) buildMultiple(bc *build.Context, list *catalog.ActionList) {
	actors := selection.Actors(selection.Eligible(bc.Scene.Controlled, a.Kinds()))
	selection.Aggregate(list, actors, []selection.Group{
		{
			Title:     bc.T("demonlord.challenge"),
			Predicate: hasAttributes,
			Build: func(rep *host.Actor) *catalog.Category {
				b := builder{bc: bc, actor: rep, tokenID: encoding.MultiTokenID}
				return b.attributes()
			},
		},
		{
			Title:     bc.T("hud.utility"),
			Predicate: func(actor *host.Actor) bool { return actor.Kind == kindCharacter },
			Build: func(rep *host.Actor) *catalog.Category {
				b := builder{bc: bc, actor: rep, tokenID: encoding.MultiTokenID}
				return b.utility(true, []string{""})
			},
		},
	})
}

func hasAttributes(actor *host.Actor) bool {
	return len(host.Entries(actor.Get("attributes"))) > 0
}
