package catalog

import (
	"fmt"
	"strings"
)

// ViolationKind names the invariant a Violation breaks.
type ViolationKind string

const (
	// ViolationDuplicateEncodedValue means two actions share a dispatch token.
	ViolationDuplicateEncodedValue ViolationKind = "duplicate_encoded_value"
	// ViolationDuplicateActionID means two sibling actions share an id.
	ViolationDuplicateActionID ViolationKind = "duplicate_action_id"
)

// Violation records one broken uniqueness invariant.
type Violation struct {
	Kind  ViolationKind
	Title string
	Path  string
	Value string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s value=%q at %s/%s", v.Kind, v.Value, v.Title, v.Path)
}

// Check reports every action whose encoded value repeats anywhere in the
// list, and every action whose id repeats inside its subcategory. Actions
// without an id are not checked for id uniqueness.
func Check(list *ActionList) []Violation {
	var violations []Violation
	visitForDedupe(list, func(entry Entry, path []*Subcategory, action Action, dupValue, dupID bool) bool {
		if dupValue {
			violations = append(violations, Violation{Kind: ViolationDuplicateEncodedValue, Title: entry.Title, Path: pathString(path), Value: action.EncodedValue})
		}
		if dupID {
			violations = append(violations, Violation{Kind: ViolationDuplicateActionID, Title: entry.Title, Path: pathString(path), Value: action.ID})
		}
		return true
	})
	return violations
}

// Dedupe removes repeated actions in place, keeping the first occurrence in
// walk order. Subcategories and categories left empty are pruned. It
// returns the violations it resolved.
func Dedupe(list *ActionList) []Violation {
	violations := Check(list)
	if len(violations) == 0 {
		return nil
	}
	visitForDedupe(list, func(_ Entry, _ []*Subcategory, _ Action, dupValue, dupID bool) bool {
		return !dupValue && !dupID
	})
	prune(list)
	return violations
}

// visitForDedupe walks the list tracking seen values. keep decides whether
// each action stays in its subcategory.
func visitForDedupe(list *ActionList, keep func(entry Entry, path []*Subcategory, action Action, dupValue, dupID bool) bool) {
	if list == nil {
		return
	}
	seenValues := map[string]struct{}{}
	for _, entry := range list.Entries {
		if entry.Category == nil {
			continue
		}
		for _, sub := range entry.Category.Subcategories {
			dedupeSubcategory(entry, []*Subcategory{sub}, seenValues, keep)
		}
	}
}

func dedupeSubcategory(entry Entry, path []*Subcategory, seenValues map[string]struct{}, keep func(Entry, []*Subcategory, Action, bool, bool) bool) {
	current := path[len(path)-1]
	if current == nil {
		return
	}
	seenIDs := map[string]struct{}{}
	kept := current.Actions[:0]
	for _, action := range current.Actions {
		_, dupValue := seenValues[action.EncodedValue]
		dupID := false
		if action.ID != "" {
			_, dupID = seenIDs[action.ID]
		}
		if keep(entry, path, action, dupValue, dupID) {
			kept = append(kept, action)
			seenValues[action.EncodedValue] = struct{}{}
			if action.ID != "" {
				seenIDs[action.ID] = struct{}{}
			}
		}
	}
	current.Actions = kept
	for _, child := range current.Subcategories {
		next := make([]*Subcategory, len(path), len(path)+1)
		copy(next, path)
		dedupeSubcategory(entry, append(next, child), seenValues, keep)
	}
}

func prune(list *ActionList) {
	entries := list.Entries[:0]
	for _, entry := range list.Entries {
		if entry.Category == nil {
			continue
		}
		entry.Category.Subcategories = pruneSubcategories(entry.Category.Subcategories)
		if len(entry.Category.Subcategories) > 0 {
			entries = append(entries, entry)
		}
	}
	list.Entries = entries
}

func pruneSubcategories(subs []*Subcategory) []*Subcategory {
	kept := subs[:0]
	for _, sub := range subs {
		if sub == nil {
			continue
		}
		sub.Subcategories = pruneSubcategories(sub.Subcategories)
		if !sub.IsEmpty() {
			kept = append(kept, sub)
		}
	}
	return kept
}

func pathString(path []*Subcategory) string {
	names := make([]string, 0, len(path))
	for _, sub := range path {
		name := sub.Name
		if name == "" {
			name = sub.ID
		}
		names = append(names, name)
	}
	return strings.Join(names, "/")
}
