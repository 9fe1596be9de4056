// Package host models the tabletop data a build reads: the selected tokens,
// their actors and items, the active combat, and world settings.
//
// Game-system specific data stays as raw JSON in the System fields and is
// read with gjson paths, so the host model does not change when an adapter
// starts reading a new field.
package host

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Token is a placed piece on the scene.
type Token struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Actor *Actor `json:"actor,omitempty"`
}

// Actor is the character or creature a token represents.
type Actor struct {
	ID     string          `json:"id"`
	Kind   string          `json:"type"`
	Name   string          `json:"name"`
	Img    string          `json:"img,omitempty"`
	System json.RawMessage `json:"system,omitempty"`
	Items  []Item          `json:"items,omitempty"`
}

// Item is one owned item, feature, spell or effect.
type Item struct {
	ID     string          `json:"id"`
	Kind   string          `json:"type"`
	Name   string          `json:"name"`
	Img    string          `json:"img,omitempty"`
	Sort   float64         `json:"sort,omitempty"`
	Flags  map[string]bool `json:"flags,omitempty"`
	System json.RawMessage `json:"system,omitempty"`
}

// Combatant is one participant in the active combat.
type Combatant struct {
	TokenID    string   `json:"tokenId"`
	Initiative *float64 `json:"initiative,omitempty"`
}

// Combat is the active encounter.
type Combat struct {
	Combatants []Combatant `json:"combatants"`
}

// Scene is the host state surrounding a build.
type Scene struct {
	Controlled     []Token         `json:"controlled,omitempty"`
	Combat         *Combat         `json:"combat,omitempty"`
	IsGM           bool            `json:"isGM,omitempty"`
	SystemSettings json.RawMessage `json:"systemSettings,omitempty"`
}

// Get reads a gjson path from the actor's system data.
func (a *Actor) Get(path string) gjson.Result {
	if a == nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(a.System, path)
}

// ItemsOfKind returns the actor's items of one kind in owned order.
func (a *Actor) ItemsOfKind(kind string) []Item {
	if a == nil {
		return nil
	}
	var out []Item
	for _, item := range a.Items {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}

// Item finds an owned item by id.
func (a *Actor) Item(id string) (Item, bool) {
	if a == nil || id == "" {
		return Item{}, false
	}
	for _, item := range a.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Get reads a gjson path from the item's system data.
func (i Item) Get(path string) gjson.Result {
	return gjson.GetBytes(i.System, path)
}

// Flag reports a host-computed item state such as "active".
func (i Item) Flag(name string) bool {
	return i.Flags[name]
}

// Initiative returns the rolled initiative of a token in the combat.
func (c *Combat) Initiative(tokenID string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	for _, combatant := range c.Combatants {
		if combatant.TokenID == tokenID && combatant.Initiative != nil {
			return *combatant.Initiative, true
		}
	}
	return 0, false
}

// Setting reads a world setting by gjson path.
func (s Scene) Setting(path string) gjson.Result {
	return gjson.GetBytes(s.SystemSettings, path)
}

// HasKind reports whether kind is in kinds, ignoring case.
func HasKind(kinds []string, kind string) bool {
	for _, candidate := range kinds {
		if strings.EqualFold(candidate, kind) {
			return true
		}
	}
	return false
}

// Entries returns the members of a JSON object in document order.
func Entries(result gjson.Result) []Entry {
	if !result.IsObject() {
		return nil
	}
	var out []Entry
	result.ForEach(func(key, value gjson.Result) bool {
		out = append(out, Entry{Key: key.String(), Value: value})
		return true
	})
	return out
}

// Entry is one member of a JSON object.
type Entry struct {
	Key   string
	Value gjson.Result
}
