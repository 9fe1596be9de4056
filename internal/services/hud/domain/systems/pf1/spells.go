package pf1

import (
	"sort"
	"strconv"
	"strings"

	"github.com/louisbranch/actionhud/internal/services/hud/domain/build"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
	"github.com/tidwall/gjson"
)

// spellbook is one top-level category of spells.
type spellbook struct {
	title    string
	category *catalog.Category
}

// spellbooks returns one category per spellbook the actor's spells belong
// to, ordered by spellbook id. Each starts with its concentration and
// caster level checks, followed by one group per spell level.
func (b builder) spellbooks() []spellbook {
	spells := b.withoutExpended(b.actor.ItemsOfKind("spell"))

	var ids []string
	seen := map[string]struct{}{}
	for _, spell := range spells {
		id := spell.Get("spellbook").String()
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]spellbook, 0, len(ids))
	for _, id := range ids {
		book := b.actor.Get("attributes.spells.spellbooks." + gjson.Escape(id))
		category := catalog.NewCategory("spells-" + id)

		bookSpells := filterItems(spells, func(spell host.Item) bool {
			return spell.Get("spellbook").String() == id
		})
		collator := b.bc.Collator()
		sort.SliceStable(bookSpells, func(i, j int) bool {
			li, lj := bookSpells[i].Get("level").Int(), bookSpells[j].Get("level").Int()
			if li != lj {
				return li < lj
			}
			return collator.CompareString(bookSpells[i].Name, bookSpells[j].Name) < 0
		})

		spontaneous := book.Get("spontaneous").Bool()
		for start := 0; start < len(bookSpells); {
			level := bookSpells[start].Get("level").Int()
			end := start
			for end < len(bookSpells) && bookSpells[end].Get("level").Int() == level {
				end++
			}
			category.Combine(b.levelName(level), b.spellLevel(book, level, spontaneous, bookSpells[start:end]))
			start = end
		}

		checks := catalog.NewSubcategory("concentration", b.bc.T("hud.checks"))
		ref := strings.ToLower(id)
		if action, ok := b.bc.Action("concentration", b.tokenID, ref, b.bc.T("hud.concentration")); ok {
			action.ID = "concentration"
			checks.Actions = append(checks.Actions, action)
		}
		if action, ok := b.bc.Action("casterLevel", b.tokenID, ref, b.bc.T("hud.casterlevel")); ok {
			action.ID = "casterLevel"
			checks.Actions = append(checks.Actions, action)
		}
		category.Prepend(checks)

		out = append(out, spellbook{title: spellbookName(book, id), category: category})
	}
	return out
}

func spellbookName(book gjson.Result, id string) string {
	if name := book.Get("altName").String(); name != "" {
		return name
	}
	if class := book.Get("class").String(); class != "" {
		return build.Capitalize(class)
	}
	return build.Capitalize(id)
}

func (b builder) levelName(level int64) string {
	if level > 0 {
		return b.bc.Format("hud.level", level)
	}
	return b.bc.T("hud.cantrips")
}

// spellLevel builds one level group. The group shows remaining slots when
// the spellbook has any for the level.
func (b builder) spellLevel(book gjson.Result, level int64, spontaneous bool, spells []host.Item) *catalog.Subcategory {
	sub := catalog.NewSubcategory("", "")
	slots := book.Get("spells.spell" + strconv.FormatInt(level, 10))
	if max := slots.Get("max").Float(); max > 0 {
		sub.Info1 = build.Number(slots.Get("value").Float()) + "/" + build.Number(max)
	}

	for _, spell := range spells {
		if !b.castable(spell, spontaneous) {
			continue
		}
		action, ok := b.bc.Action("spell", b.tokenID, spell.ID, build.Capitalize(spell.Name))
		if !ok {
			continue
		}
		action.Img = b.bc.Image(spell.Img, placeholderImage)
		b.addSpellInfo(spell, spontaneous, &action)
		sub.Actions = append(sub.Actions, action)
	}
	return sub
}

// castable hides spells a character has not prepared. Other actors cast
// everything they own.
func (b builder) castable(spell host.Item, spontaneous bool) bool {
	if b.actor.Kind != kindCharacter {
		return true
	}
	if spell.Get("atWill").Bool() {
		return true
	}
	preparation := spell.Get("preparation")
	if spontaneous && preparation.Get("spontaneousPrepared").Bool() {
		return true
	}
	prepared := preparation.Get("preparedAmount")
	return !(prepared.Exists() && prepared.Float() == 0)
}

func (b builder) addSpellInfo(spell host.Item, spontaneous bool, action *catalog.Action) {
	preparation := spell.Get("preparation")
	if !spontaneous && preparation.Exists() {
		if max := preparation.Get("maxAmount").Float(); max != 0 {
			action.Info1 = build.Number(preparation.Get("preparedAmount").Float()) + "/" + build.Number(max)
		}
	}

	components := spell.Get("components")
	for _, component := range []string{"verbal", "somatic", "material"} {
		if components.Get(component).Bool() {
			action.Info2 += b.componentLetter(component)
		}
	}
	if components.Get("focus").Bool() {
		action.Info3 = b.componentLetter("focus")
	}
}

func (b builder) componentLetter(component string) string {
	name := b.bc.T("pf1.component." + component)
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return ""
}
