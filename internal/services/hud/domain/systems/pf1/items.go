package pf1

import (
	"sort"
	"strings"

	"github.com/louisbranch/actionhud/internal/services/hud/domain/build"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
)

const placeholderImage = "icons/svg/mystery-man.svg"

type builder struct {
	bc      *build.Context
	actor   *host.Actor
	tokenID string
}

// item builds the action for an owned item: display name, activation icon,
// quantity, uses and consumed resource.
func (b builder) item(kind string, item host.Item) (catalog.Action, bool) {
	action, ok := b.bc.Action(kind, b.tokenID, item.ID, b.itemName(item))
	if !ok {
		return catalog.Action{}, false
	}
	action.Img = b.bc.Image(item.Img, placeholderImage)
	action.Icon = activationIcons[activationType(item)]

	recharge := item.Get("recharge")
	if recharge.Get("value").Bool() && !recharge.Get("charged").Bool() {
		action.Name += " (" + b.bc.T("hud.recharge") + ")"
	}
	if quantity := item.Get("quantity").Float(); quantity > 1 {
		action.Info1 = build.Number(quantity)
	}
	action.Info2 = uses(item)
	action.Info3 = b.consumed(item)
	return action, true
}

func (b builder) items(kind string, items []host.Item) []catalog.Action {
	out := make([]catalog.Action, 0, len(items))
	for _, item := range items {
		if action, ok := b.item(kind, item); ok {
			out = append(out, action)
		}
	}
	return out
}

// itemName shows the identified name to the GM or once identified, and the
// unidentified name otherwise.
func (b builder) itemName(item host.Item) string {
	var name string
	if item.Get("identified").Bool() || b.bc.Scene.IsGM {
		name = item.Get("identifiedName").String()
	} else {
		name = item.Get("unidentified.name").String()
	}
	if name == "" {
		name = item.Name
	}
	return name
}

func activationType(item host.Item) string {
	if value := item.Get("activation.type").String(); value != "" {
		return value
	}
	return item.Get("actions.0.activation.type").String()
}

func uses(item host.Item) string {
	u := item.Get("uses")
	if !u.IsObject() {
		return ""
	}
	return build.Uses(u.Get("value").Float(), u.Get("max").Float())
}

// consumed describes what using the item spends: an actor attribute, the
// charges of another item, or the quantity of another item.
func (b builder) consumed(item host.Item) string {
	consume := item.Get("consume")
	consumeType := consume.Get("type").String()
	target := consume.Get("target").String()
	if consumeType == "" || target == "" {
		return ""
	}

	switch consumeType {
	case "attribute":
		value := b.actor.Get(target)
		if !truthy(value.Float(), value.String()) {
			return ""
		}
		out := value.String()
		if i := strings.LastIndex(target, "."); i > 0 {
			if max := b.actor.Get(target[:i] + ".max").Float(); max != 0 {
				out += "/" + build.Number(max)
			}
		}
		return out
	case "charges":
		other, ok := b.actor.Item(target)
		if !ok {
			return ""
		}
		value := other.Get("uses.value").Float()
		if value == 0 {
			return ""
		}
		out := build.Number(value)
		if max := other.Get("uses.max").Float(); max != 0 {
			out += "/" + build.Number(max)
		}
		return out
	default:
		other, ok := b.actor.Item(target)
		if !ok {
			return ""
		}
		if quantity := other.Get("quantity").Float(); quantity != 0 {
			return build.Number(quantity)
		}
		return ""
	}
}

func truthy(number float64, text string) bool {
	return number != 0 || (text != "" && text != "0" && text != "false")
}

// withoutExpended drops items that have a use limit and no uses left,
// unless empty items are shown.
func (b builder) withoutExpended(items []host.Item) []host.Item {
	if b.bc.Settings.ShowEmptyItems {
		return items
	}
	out := make([]host.Item, 0, len(items))
	for _, item := range items {
		if item.Get("uses.max").Float() > 0 && item.Get("uses.value").Float() == 0 {
			continue
		}
		out = append(out, item)
	}
	return out
}

func sortedByItemSort(items []host.Item) []host.Item {
	out := append([]host.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sort < out[j].Sort })
	return out
}

func filterItems(items []host.Item, keep func(host.Item) bool) []host.Item {
	var out []host.Item
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
