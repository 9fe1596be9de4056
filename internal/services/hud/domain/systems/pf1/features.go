package pf1

import (
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/filter"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
)

const featsCategory = "feats"

// features splits feats into active, passive and disabled groups. Passive
// and disabled groups can be hidden by settings.
func (b builder) features() *catalog.Category {
	feats := sortedByItemSort(b.actor.ItemsOfKind("feat"))

	suggestions := make([]filter.Suggestion, 0, len(feats))
	for _, feat := range feats {
		suggestions = append(suggestions, filter.Suggestion{ID: feat.ID, Value: b.itemName(feat)})
	}
	b.bc.Suggest(featsCategory, suggestions)
	feats = filter.Apply(b.bc.Filter, featsCategory, feats, b.itemName)

	active := catalog.NewSubcategory("", "")
	passive := catalog.NewSubcategory("", "")
	disabled := catalog.NewSubcategory("", "")
	for _, feat := range feats {
		action, ok := b.item("feat", feat)
		if !ok {
			continue
		}
		switch {
		case isDisabled(feat):
			disabled.Actions = append(disabled.Actions, action)
		case isPassive(feat):
			passive.Actions = append(passive.Actions, action)
		default:
			active.Actions = append(active.Actions, action)
		}
	}

	category := catalog.NewCategory(featsCategory)
	category.Combine(b.bc.T("hud.active"), active)
	if !b.bc.Settings.IgnorePassiveFeats {
		category.Combine(b.bc.T("hud.passive"), passive)
	}
	if !b.bc.Settings.IgnoreDisabledFeats {
		category.Combine(b.bc.T("pf1.disabled"), disabled)
	}
	return category
}

func isDisabled(feat host.Item) bool {
	return feat.Flag("disabled") || feat.Get("disabled").Bool()
}

func isPassive(feat host.Item) bool {
	kind := activationType(feat)
	return kind == "" || kind == "passive"
}
