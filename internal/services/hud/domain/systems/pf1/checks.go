package pf1

import (
	"strings"

	"github.com/louisbranch/actionhud/internal/services/hud/domain/build"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/filter"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
	"github.com/tidwall/gjson"
)

const skillsCategory = "skills"

type skill struct {
	id     string
	name   string
	rank   float64
	hidden bool
}

// skills lists the actor's skills in sheet order with their sub-skills.
// Skills that require training are hidden until ranked.
func (b builder) skills() *catalog.Category {
	var all []skill
	for _, entry := range host.Entries(b.actor.Get("skills")) {
		custom := strings.HasPrefix(entry.Key, "skill")
		all = append(all, b.skill(entry.Key, entry.Key, entry.Value, custom))
		for _, sub := range host.Entries(entry.Value.Get("subSkills")) {
			all = append(all, b.skill(entry.Key+".subSkills."+sub.Key, sub.Key, sub.Value, true))
		}
	}

	visible := make([]skill, 0, len(all))
	suggestions := make([]filter.Suggestion, 0, len(all))
	for _, s := range all {
		if s.hidden {
			continue
		}
		visible = append(visible, s)
		suggestions = append(suggestions, filter.Suggestion{ID: s.id, Value: s.name})
	}
	b.bc.Suggest(skillsCategory, suggestions)
	visible = filter.Apply(b.bc.Filter, skillsCategory, visible, func(s skill) string { return s.name })

	sub := catalog.NewSubcategory("", "")
	for _, s := range visible {
		action, ok := b.bc.Action("skill", b.tokenID, s.id, s.name)
		if !ok {
			continue
		}
		if s.rank > 0 {
			action.Info1 = "R" + build.Number(s.rank)
		}
		sub.Actions = append(sub.Actions, action)
	}
	category := catalog.NewCategory(skillsCategory)
	category.Combine(b.bc.T("hud.skills"), sub)
	return category
}

func (b builder) skill(id, key string, data gjson.Result, custom bool) skill {
	rank := data.Get("rank").Float()
	out := skill{id: id, rank: rank, hidden: data.Get("rt").Bool() && rank == 0}
	if !custom {
		out.name = b.tableName("pf1.skill.", key)
	}
	if out.name == "" {
		out.name = data.Get("name").String()
		if out.name == "" {
			out.name = "?"
		}
	}
	out.name = build.Capitalize(out.name)
	return out
}

// tableName resolves a world table entry, or the raw id when skills are
// abbreviated. It is empty for ids the table does not know.
func (b builder) tableName(prefix, id string) string {
	if b.bc.Settings.AbbreviateSkills {
		return build.Capitalize(id)
	}
	if !b.bc.Translator.Has(prefix + id) {
		return ""
	}
	return build.Capitalize(b.bc.T(prefix + id))
}

// tableSkills lists every world skill for multi-selection.
func (b builder) tableSkills() *catalog.Category {
	sub := catalog.NewSubcategory("", "")
	for _, id := range skillIDs {
		if action, ok := b.bc.Action("skill", b.tokenID, id, b.tableNameOr("pf1.skill.", id)); ok {
			sub.Actions = append(sub.Actions, action)
		}
	}
	category := catalog.NewCategory(skillsCategory)
	category.Combine(b.bc.T("hud.skills"), sub)
	return category
}

func (b builder) tableNameOr(prefix, id string) string {
	if name := b.tableName(prefix, id); name != "" {
		return name
	}
	return build.Capitalize(id)
}

// saves lists the saving throws. A single actor also gets proficiency
// icons and the defenses roll.
func (b builder) saves(single bool) *catalog.Category {
	category := catalog.NewCategory("saves")
	sub := catalog.NewSubcategory("", "")
	for _, id := range saveIDs {
		action, ok := b.bc.Action("abilitySave", b.tokenID, id, b.tableNameOr("pf1.save.", id))
		if !ok {
			continue
		}
		if single {
			action.Icon = proficiencyIcons[b.actor.Get("attributes.savingThrows."+id+".proficient").Float()]
		}
		sub.Actions = append(sub.Actions, action)
	}
	category.Combine(b.bc.T("hud.saves"), sub)

	if single {
		defenses := catalog.NewSubcategory("", "")
		if action, ok := b.bc.Action("defenses", b.tokenID, "defenses", b.bc.T("hud.defenses")); ok {
			defenses.Actions = append(defenses.Actions, action)
		}
		category.Combine(b.bc.T("hud.defenses"), defenses)
	}
	return category
}

// checks lists ability checks, skipping abilities with a zero score.
// Multi-selection lists every ability.
func (b builder) checks(skipZero bool) *catalog.Category {
	category := catalog.NewCategory("checks")
	sub := catalog.NewSubcategory("", "")
	for _, id := range abilityIDs {
		if skipZero {
			value := b.actor.Get("abilities." + id + ".value")
			if value.Exists() && value.Float() == 0 {
				continue
			}
		}
		if action, ok := b.bc.Action("abilityCheck", b.tokenID, id, b.tableNameOr("pf1.ability.", id)); ok {
			sub.Actions = append(sub.Actions, action)
		}
	}
	category.Combine(b.bc.T("hud.checks"), sub)
	return category
}
