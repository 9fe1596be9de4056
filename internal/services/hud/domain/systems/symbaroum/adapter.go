// Package symbaroum builds action catalogs for Symbaroum actors.
//
// Powers, traits and abilities only appear when the system has a roll
// script for them, and armour rolls are hidden while the world automates
// combat.
package symbaroum

import (
	"context"

	"github.com/louisbranch/actionhud/internal/services/hud/domain/build"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/encoding"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/systems"
)

const (
	// SystemVersion is the ruleset version this adapter reads.
	SystemVersion = "1.0.0"

	placeholderImage = "systems/symbaroum/asset/image/trait.png"

	combatAutomationSetting = "combatAutomation"
)

// Adapter implements systems.Adapter for Symbaroum.
type Adapter struct{}

// NewAdapter returns the Symbaroum adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// ID implements systems.Adapter.
func (a *Adapter) ID() systems.GameSystem {
	return systems.GameSystemSymbaroum
}

// Version implements systems.Adapter.
func (a *Adapter) Version() string {
	return SystemVersion
}

// Kinds implements systems.Adapter. Symbaroum has no multi-selection
// groups, so no kind is eligible.
func (a *Adapter) Kinds() []string {
	return nil
}

// BuildActionList implements systems.Adapter.
func (a *Adapter) BuildActionList(ctx context.Context, bc *build.Context, req systems.Request) (*catalog.ActionList, error) {
	list := catalog.NewActionList()
	if req.Multiple {
		list.TokenID = encoding.MultiTokenID
		list.ActorID = encoding.MultiTokenID
		return list, nil
	}
	if req.Token == nil || req.Token.Actor == nil {
		return list, nil
	}
	token, actor := req.Token, req.Token.Actor
	list.TokenID = token.ID
	list.ActorID = actor.ID

	b := builder{bc: bc, actor: actor, tokenID: token.ID}
	steps := []step{
		{title: bc.T("symbaroum.mysticalPowers"), category: b.scripted("actorPowers", "mysticalPower")},
		{title: bc.T("hud.traits"), category: b.scripted("actorsTraits", "trait")},
	}
	if !bc.Scene.Setting(combatAutomationSetting).Bool() {
		steps = append(steps, step{title: bc.T("hud.armour"), category: b.armour()})
	}
	steps = append(steps,
		step{title: bc.T("hud.weapons"), category: b.weapons()},
		step{title: bc.T("symbaroum.abilities"), category: b.scripted("actorAbilities", "ability")},
		step{title: bc.T("hud.attributes"), category: b.attributes()},
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

type builder struct {
	bc      *build.Context
	actor   *host.Actor
	tokenID string
}

// scripted lists items of kind that carry a roll script.
func (b builder) scripted(categoryID, kind string) *catalog.Category {
	return b.rollCategory(categoryID, kind, func(item host.Item) bool {
		return item.Get("script").String() != ""
	})
}

// weapons lists only weapons in the active state.
func (b builder) weapons() *catalog.Category {
	return b.rollCategory("actorWeapons", "weapon", func(item host.Item) bool {
		return item.Get("state").String() == "active"
	})
}

func (b builder) rollCategory(categoryID, kind string, keep func(host.Item) bool) *catalog.Category {
	category := catalog.NewCategory(categoryID)
	sub := catalog.NewSubcategory("", "")
	for _, item := range b.actor.ItemsOfKind(kind) {
		if !keep(item) {
			continue
		}
		action, ok := b.bc.Action(kind, b.tokenID, item.ID, item.Name)
		if !ok {
			continue
		}
		action.Img = b.bc.Image(item.Img, placeholderImage)
		sub.Actions = append(sub.Actions, action)
	}
	category.Combine(b.bc.T("hud.roll"), sub)
	return category
}

// armour is the actor's combined armour roll.
func (b builder) armour() *catalog.Category {
	category := catalog.NewCategory("actorArmors")
	sub := catalog.NewSubcategory("", "")
	combat := b.actor.Get("combat")
	if id := combat.Get("id").String(); id != "" {
		if action, ok := b.bc.Action("armor", b.tokenID, id, combat.Get("armor").String()); ok {
			sub.Actions = append(sub.Actions, action)
		}
	}
	category.Combine(b.bc.T("hud.roll"), sub)
	return category
}

func (b builder) attributes() *catalog.Category {
	category := catalog.NewCategory("attributes")
	sub := catalog.NewSubcategory("", "")
	for _, entry := range host.Entries(b.actor.Get("attributes")) {
		if action, ok := b.bc.Action("attribute", b.tokenID, entry.Key, b.attributeName(entry)); ok {
			sub.Actions = append(sub.Actions, action)
		}
	}
	category.Combine(b.bc.T("hud.attributes"), sub)
	return category
}

// attributeName prefers the label the actor carries when it is a known
// message key, then the built-in attribute name.
func (b builder) attributeName(entry host.Entry) string {
	label := entry.Value.Get("label").String()
	if label != "" && b.bc.Translator.Has(label) {
		return b.bc.T(label)
	}
	fallback := label
	if fallback == "" {
		fallback = build.Capitalize(entry.Key)
	}
	return b.bc.Translator.TranslateOr("symbaroum.attribute."+entry.Key, fallback)
}
