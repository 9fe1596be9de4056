package pf1

import (
	"github.com/louisbranch/actionhud/internal/services/hud/domain/build"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
)

const cssActive = "active"

// attacks leads with the combat bonus rolls, then melee and ranged rolls
// and the actor's attack items.
func (b builder) attacks() *catalog.Category {
	category := catalog.NewCategory("attacks")

	bonuses := catalog.NewSubcategory("", "")
	for _, id := range []string{"cmb", "bab"} {
		if action, ok := b.bc.Action(id, b.tokenID, id, b.bc.T("hud."+id)); ok {
			bonuses.Actions = append(bonuses.Actions, action)
		}
	}
	category.Combine(b.bc.T("hud.bonuses"), bonuses)

	attacks := catalog.NewSubcategory("", "")
	for _, id := range []string{"melee", "ranged"} {
		if action, ok := b.bc.Action(id, b.tokenID, id, b.bc.T("hud."+id)); ok {
			attacks.Actions = append(attacks.Actions, action)
		}
	}
	attacks.Actions = append(attacks.Actions, b.items("attack", sortedByItemSort(b.actor.ItemsOfKind("attack")))...)
	category.Combine(b.bc.T("hud.attack"), attacks)
	return category
}

func (b builder) buffs() *catalog.Category {
	category := catalog.NewCategory("buffs")
	sub := catalog.NewSubcategory("", "")
	for _, item := range sortedByItemSort(b.actor.ItemsOfKind("buff")) {
		action, ok := b.item("buff", item)
		if !ok {
			continue
		}
		if item.Get("active").Bool() {
			action.CSSClass = cssActive
		}
		sub.Actions = append(sub.Actions, action)
	}
	category.Combine(b.bc.T("hud.buffs"), sub)
	return category
}

// conditions lists every condition the actor tracks, set ones marked
// active, sorted by name.
func (b builder) conditions() *catalog.Category {
	category := catalog.NewCategory("conditions")
	sub := catalog.NewSubcategory("", "")
	for _, entry := range host.Entries(b.actor.Get("attributes.conditions")) {
		name := b.bc.Translator.TranslateOr("pf1.condition."+entry.Key, build.Capitalize(entry.Key))
		action, ok := b.bc.Action("condition", b.tokenID, entry.Key, name)
		if !ok {
			continue
		}
		if b.bc.Settings.ShowIcons {
			action.Img = conditionTexture(entry.Key)
		}
		if entry.Value.Bool() {
			action.CSSClass = cssActive
		}
		sub.Actions = append(sub.Actions, action)
	}
	build.SortByName(b.bc, sub.Actions, func(a catalog.Action) string { return a.Name })
	category.Combine(b.bc.T("hud.conditions"), sub)
	return category
}
