package demonlord

import (
	"sort"
	"strings"

	"github.com/louisbranch/actionhud/internal/services/hud/domain/build"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/filter"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
)

const talentsCategory = "talents"

type builder struct {
	bc      *build.Context
	actor   *host.Actor
	tokenID string
}

func (b builder) attributes() *catalog.Category {
	category := catalog.NewCategory("attributes")
	sub := catalog.NewSubcategory("", "")
	for _, entry := range host.Entries(b.actor.Get("attributes")) {
		name := b.bc.Translator.TranslateOr("demonlord.attribute."+entry.Key, build.Capitalize(entry.Key))
		if action, ok := b.bc.Action("challenge", b.tokenID, entry.Key, name); ok {
			sub.Actions = append(sub.Actions, action)
		}
	}
	category.Combine(b.bc.T("demonlord.challenge"), sub)
	return category
}

func (b builder) weapons() *catalog.Category {
	category := catalog.NewCategory("weapons")
	sub := catalog.NewSubcategory("", "")
	for _, item := range b.actor.ItemsOfKind("weapon") {
		action, ok := b.bc.Action(item.Kind, b.tokenID, item.ID, item.Name)
		if !ok {
			continue
		}
		action.Img = b.bc.Image(item.Img, placeholderImage)
		sub.Actions = append(sub.Actions, action)
	}
	category.Combine(b.bc.T("hud.weapons"), sub)
	return category
}

// talents groups talents by their group name, sorted. Talents without a
// group are not shown.
func (b builder) talents() *catalog.Category {
	category := catalog.NewCategory(talentsCategory)
	talents := b.actor.ItemsOfKind("talent")

	suggestions := make([]filter.Suggestion, 0, len(talents))
	for _, talent := range talents {
		suggestions = append(suggestions, filter.Suggestion{ID: talent.ID, Value: talent.Name})
	}
	b.bc.Suggest(talentsCategory, suggestions)
	talents = filter.Apply(b.bc.Filter, talentsCategory, talents, func(item host.Item) string { return item.Name })

	for _, group := range distinct(talents, "groupname") {
		groupSub := catalog.NewSubcategory("", group)
		talentSub := catalog.NewSubcategory("", "")
		for _, talent := range talents {
			if strings.TrimSpace(talent.Get("groupname").String()) != group {
				continue
			}
			action, ok := b.bc.Action("talent", b.tokenID, talent.ID, talent.Name)
			if !ok {
				continue
			}
			action.Img = b.bc.Image(talent.Img, placeholderImage)
			action.Info2 = usesOf(talent, "uses")
			talentSub.Actions = append(talentSub.Actions, action)
		}
		groupSub.Combine(group, talentSub)
		category.Combine(group, groupSub)
	}
	return category
}

// spells are ordered by rank, then name, and grouped by tradition.
func (b builder) spells() *catalog.Category {
	category := catalog.NewCategory("spells")
	spells := b.actor.ItemsOfKind("spell")

	collator := b.bc.Collator()
	sort.SliceStable(spells, func(i, j int) bool {
		ri, rj := spells[i].Get("rank").Float(), spells[j].Get("rank").Float()
		if ri != rj {
			return ri < rj
		}
		return collator.CompareString(spells[i].Name, spells[j].Name) < 0
	})

	traditions := catalog.NewSubcategory("", "")
	for _, tradition := range distinct(spells, "tradition") {
		traditionSub := catalog.NewSubcategory("", tradition)
		spellSub := catalog.NewSubcategory("", "")
		for _, spell := range spells {
			if strings.TrimSpace(spell.Get("tradition").String()) != tradition {
				continue
			}
			action, ok := b.bc.Action("spell", b.tokenID, spell.ID, spell.Name)
			if !ok {
				continue
			}
			action.Img = b.bc.Image(spell.Img, placeholderImage)
			action.Info2 = usesOf(spell, "castings")
			spellSub.Actions = append(spellSub.Actions, action)
		}
		traditionSub.Combine(tradition, spellSub)
		traditions.Combine(tradition, traditionSub)
	}
	category.Combine(b.bc.T("hud.spells"), traditions)
	return category
}

// utility offers rest when canRest holds. Multi-selection passes an empty
// trailing part so its tokens stay distinct from single-token ones.
func (b builder) utility(canRest bool, extra []string) *catalog.Category {
	category := catalog.NewCategory("utility")
	rests := catalog.NewSubcategory("", "")
	if canRest {
		if action, ok := b.bc.Action("utility", b.tokenID, "rest", b.bc.T("demonlord.rest"), extra...); ok {
			rests.Actions = append(rests.Actions, action)
		}
	}
	category.Combine(b.bc.T("demonlord.rest"), rests)
	return category
}

func usesOf(item host.Item, path string) string {
	uses := item.Get(path)
	if !uses.IsObject() {
		return ""
	}
	return build.Uses(uses.Get("value").Float(), uses.Get("max").Float())
}

// distinct returns the sorted non-empty values of a system field.
func distinct(items []host.Item, path string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, item := range items {
		value := strings.TrimSpace(item.Get(path).String())
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}
