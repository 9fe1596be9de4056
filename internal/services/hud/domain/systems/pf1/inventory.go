package pf1

import (
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
)

// inventory splits owned items into equipped weapons, equipment and other
// gear, consumables with uses, consumables without them, and tools.
func (b builder) inventory() *catalog.Category {
	owned := filterItems(b.actor.Items, func(item host.Item) bool {
		return item.Get("quantity").Float() > 0
	})
	sorted := sortedByItemSort(owned)

	equipped := filterItems(sorted, func(item host.Item) bool {
		return item.Kind != "consumable" && item.Get("equipped").Bool()
	})
	weapons := filterItems(equipped, func(item host.Item) bool { return item.Kind == "weapon" })
	equipment := filterItems(equipped, func(item host.Item) bool { return item.Kind == "equipment" })
	other := filterItems(equipped, func(item host.Item) bool {
		return item.Kind != "weapon" && item.Kind != "equipment" && item.Kind != "tool"
	})

	consumables := filterItems(sorted, func(item host.Item) bool { return item.Kind == "consumable" })
	withUses := filterItems(b.withoutExpended(consumables), func(item host.Item) bool {
		return item.Get("uses.value").Float() > 0 || item.Get("uses.max").Float() > 0
	})
	withoutUses := filterItems(consumables, func(item host.Item) bool {
		return item.Get("uses.value").Float() == 0 && item.Get("uses.max").Float() == 0 &&
			item.Get("consumableType").String() != "ammo"
	})
	tools := filterItems(owned, func(item host.Item) bool { return item.Kind == "tool" })

	category := catalog.NewCategory("inventory")
	groups := []struct {
		title string
		items []host.Item
	}{
		{title: "hud.weapons", items: weapons},
		{title: "hud.equipment", items: equipment},
		{title: "hud.other", items: other},
		{title: "hud.consumables", items: withUses},
		{title: "hud.inconsumables", items: withoutUses},
		{title: "hud.tools", items: tools},
	}
	for _, group := range groups {
		sub := catalog.NewSubcategory("", "")
		sub.Actions = append(sub.Actions, b.items("item", group.items)...)
		category.Combine(b.bc.T(group.title), sub)
	}
	return category
}
