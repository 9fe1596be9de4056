// Package build holds what every game-system adapter needs while it turns
// host data into a catalog: the translator, the settings read for this
// build, the consumer's filter view, and the token codec.
package build

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/louisbranch/actionhud/internal/platform/i18n/catalog"
	hudcatalog "github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/encoding"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/filter"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/settings"
)

// Context is the per-build state shared by the category builders of one
// adapter call. It is never reused across builds.
type Context struct {
	Translator *catalog.Translator
	Settings   settings.Settings
	Filter     *filter.Scope
	Scene      host.Scene
	Codec      encoding.Codec
	// Logf receives skipped-action diagnostics. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// T translates key.
func (c *Context) T(key string) string {
	return c.Translator.Translate(key)
}

// Format translates a printf-style message.
func (c *Context) Format(key string, args ...any) string {
	return c.Translator.Format(key, args...)
}

func (c *Context) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (c *Context) codec() encoding.Codec {
	if c.Codec.Delimiter == "" {
		return encoding.Default
	}
	return c.Codec
}

// Encode builds a dispatch token. Identifiers the codec rejects are logged
// and reported as not ok so the caller can skip the action.
func (c *Context) Encode(kind, tokenID, refID string, extra ...string) (string, bool) {
	value, err := c.codec().Encode(kind, tokenID, refID, extra...)
	if err != nil {
		c.logf("skip action kind=%s token=%s ref=%s err=%v", kind, tokenID, refID, err)
		return "", false
	}
	return value, true
}

// Action returns an action whose id is refID.
func (c *Context) Action(kind, tokenID, refID, name string, extra ...string) (hudcatalog.Action, bool) {
	value, ok := c.Encode(kind, tokenID, refID, extra...)
	if !ok {
		return hudcatalog.Action{}, false
	}
	return hudcatalog.Action{ID: refID, Name: name, EncodedValue: value}, true
}

// Image returns img unless icons are hidden or img contains one of the
// placeholder paths.
func (c *Context) Image(img string, placeholders ...string) string {
	if !c.Settings.ShowIcons || img == "" {
		return ""
	}
	for _, placeholder := range placeholders {
		if placeholder != "" && strings.Contains(img, placeholder) {
			return ""
		}
	}
	return img
}

// Suggest publishes filter suggestions for categoryID. Empty lists are
// ignored.
func (c *Context) Suggest(categoryID string, suggestions []filter.Suggestion) {
	if len(suggestions) == 0 {
		return
	}
	c.Filter.SetSuggestions(categoryID, suggestions)
}

// Fold combines category into list under title. It is the last point at
// which a build may stop: once folding starts the category goes in whole.
func (c *Context) Fold(ctx context.Context, list *hudcatalog.ActionList, title string, category *hudcatalog.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	list.Combine(title, category, false)
	return nil
}

// Uses formats remaining uses. It is empty when there are no uses at all,
// otherwise the value followed by "/max" when max is positive.
func Uses(value, max float64) string {
	if value == 0 && max == 0 {
		return ""
	}
	out := Number(value)
	if max > 0 {
		out += "/" + Number(max)
	}
	return out
}

// Number formats n without a trailing ".0".
func Number(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Signed formats n with an explicit sign.
func Signed(n float64) string {
	if n >= 0 {
		return "+" + Number(n)
	}
	return Number(n)
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Collator compares display names for the build locale, ignoring case and
// accents. A collator is not safe for concurrent use.
func (c *Context) Collator() *collate.Collator {
	tag, err := language.Parse(c.Translator.Locale())
	if err != nil {
		tag = language.Und
	}
	return collate.New(tag, collate.IgnoreCase, collate.IgnoreDiacritics)
}

// SortByName sorts items by display name, keeping the owned order of equal
// names.
func SortByName[T any](c *Context, items []T, name func(T) string) {
	collator := c.Collator()
	sort.SliceStable(items, func(i, j int) bool {
		return collator.CompareString(name(items[i]), name(items[j])) < 0
	})
}
