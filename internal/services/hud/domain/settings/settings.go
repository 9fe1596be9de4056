// Package settings provides the display flags read at the start of every
// build.
package settings

import (
	"context"

	"github.com/louisbranch/actionhud/internal/platform/config"
)

// Settings are the flags that shape a build.
type Settings struct {
	ShowIcons           bool `env:"ACTIONHUD_SHOW_ICONS" envDefault:"true" json:"showIcons"`
	ShowHudTitle        bool `env:"ACTIONHUD_SHOW_HUD_TITLE" envDefault:"false" json:"showHudTitle"`
	AbbreviateSkills    bool `env:"ACTIONHUD_ABBREVIATE_SKILLS" envDefault:"false" json:"abbreviateSkills"`
	ShowEmptyItems      bool `env:"ACTIONHUD_SHOW_EMPTY_ITEMS" envDefault:"false" json:"showEmptyItems"`
	IgnorePassiveFeats  bool `env:"ACTIONHUD_IGNORE_PASSIVE_FEATS" envDefault:"false" json:"ignorePassiveFeats"`
	IgnoreDisabledFeats bool `env:"ACTIONHUD_IGNORE_DISABLED_FEATS" envDefault:"false" json:"ignoreDisabledFeats"`
}

// Source yields current settings. Implementations are consulted once per
// build so edits take effect on the next refresh.
type Source interface {
	Load(ctx context.Context) (Settings, error)
}

// EnvSource parses the settings from the environment on every Load.
type EnvSource struct {
	// Environ overrides the process environment, mainly for tests.
	Environ func() map[string]string
}

// Load implements Source.
func (s EnvSource) Load(ctx context.Context) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	var environment map[string]string
	if s.Environ != nil {
		environment = s.Environ()
	}
	var out Settings
	if err := config.ParseEnvFrom(&out, environment); err != nil {
		return Settings{}, err
	}
	return out, nil
}

// Static always returns the same settings.
type Static Settings

// Load implements Source.
func (s Static) Load(context.Context) (Settings, error) {
	return Settings(s), nil
}

// Override replaces individual flags for one request. Nil fields keep the
// loaded value.
type Override struct {
	ShowIcons           *bool `json:"showIcons,omitempty"`
	ShowHudTitle        *bool `json:"showHudTitle,omitempty"`
	AbbreviateSkills    *bool `json:"abbreviateSkills,omitempty"`
	ShowEmptyItems      *bool `json:"showEmptyItems,omitempty"`
	IgnorePassiveFeats  *bool `json:"ignorePassiveFeats,omitempty"`
	IgnoreDisabledFeats *bool `json:"ignoreDisabledFeats,omitempty"`
}

// Apply returns base with the override's set fields applied.
func (o *Override) Apply(base Settings) Settings {
	if o == nil {
		return base
	}
	apply := func(target *bool, value *bool) {
		if value != nil {
			*target = *value
		}
	}
	apply(&base.ShowIcons, o.ShowIcons)
	apply(&base.ShowHudTitle, o.ShowHudTitle)
	apply(&base.AbbreviateSkills, o.AbbreviateSkills)
	apply(&base.ShowEmptyItems, o.ShowEmptyItems)
	apply(&base.IgnorePassiveFeats, o.IgnorePassiveFeats)
	apply(&base.IgnoreDisabledFeats, o.IgnoreDisabledFeats)
	return base
}
