package pf1

import "github.com/louisbranch/actionhud/internal/platform/icons"

// World configuration tables. Order is the display order; names resolve
// through the pf1 translation namespace.
var (
	skillIDs = []string{
		"acr", "apr", "art", "blf", "clm", "crf", "dev", "dip", "dis", "esc",
		"fly", "han", "hea", "int", "kar", "kdu", "ken", "kge", "khi", "klo",
		"kna", "kno", "kpl", "kre", "lin", "lor", "per", "prf", "pro", "rid",
		"sen", "slt", "spl", "ste", "sur", "swm", "umd",
	}
	abilityIDs = []string{"str", "dex", "con", "int", "wis", "cha"}
	saveIDs    = []string{"fort", "ref", "will"}
)

const conditionTexturePath = "systems/pf1/icons/conditions/"

func conditionTexture(key string) string {
	return conditionTexturePath + key + ".png"
}

var activationIcons = map[string]string{
	"immediate": icons.Markup(icons.Bolt),
	"reaction":  icons.Markup(icons.Bolt),
	"free":      icons.Markup(icons.Plus),
	"swift":     icons.Markup(icons.Plus),
	"full":      icons.Markup(icons.Circle),
	"round":     icons.Markup(icons.HourglassStart),
	"minute":    icons.Markup(icons.HourglassHalf),
	"hour":      icons.Markup(icons.HourglassEnd),
	"special":   icons.Markup(icons.Star),
}

var proficiencyIcons = map[float64]string{
	0.5: icons.Markup(icons.Adjust),
	1:   icons.Markup(icons.Check),
	2:   icons.Markup(icons.CheckDouble),
}
