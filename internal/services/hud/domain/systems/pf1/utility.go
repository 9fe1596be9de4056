package pf1

import (
	"github.com/louisbranch/actionhud/internal/services/hud/domain/build"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
)

// utility holds the initiative roll and, when canRest, the rest action.
// The initiative shows the current roll and is marked active once rolled.
func (b builder) utility(initiative float64, rolled, canRest bool) *catalog.Category {
	category := catalog.NewCategory("utility")

	initiativeSub := catalog.NewSubcategory("", "")
	if action, ok := b.bc.Action("utility", b.tokenID, "initiative", b.bc.T("hud.rollInitiative")); ok {
		action.ID = "rollInitiative"
		if rolled {
			action.CSSClass = cssActive
			if initiative != 0 {
				action.Info1 = build.Number(initiative)
			}
		}
		initiativeSub.Actions = append(initiativeSub.Actions, action)
	}
	category.Combine(b.bc.T("hud.initiative"), initiativeSub)

	rests := catalog.NewSubcategory("", "")
	if canRest {
		if action, ok := b.bc.Action("utility", b.tokenID, "rest", b.bc.T("hud.rest")); ok {
			rests.Actions = append(rests.Actions, action)
		}
	}
	category.Combine(b.bc.T("hud.rests"), rests)
	return category
}

// everyInitiativeRolled reports whether each token has rolled in the
// active combat.
func everyInitiativeRolled(combat *host.Combat, tokens []host.Token) bool {
	if combat == nil || len(tokens) == 0 {
		return false
	}
	for _, token := range tokens {
		if value, ok := combat.Initiative(token.ID); !ok || value == 0 {
			return false
		}
	}
	return true
}
