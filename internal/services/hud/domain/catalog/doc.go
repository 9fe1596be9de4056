// Package catalog defines the action list a HUD renders and the merge rules
// that let independent builders contribute to one list.
//
// An ActionList holds ordered entries, each a title and a Category. A
// Category holds Subcategories, which hold Actions and further nested
// Subcategories. Builders never mutate a list they did not create: each
// build allocates a fresh list, fills categories through Combine, and hands
// the list to the caller.
//
// Empty structures are dropped at merge time. A subcategory with no actions
// and no non-empty children contributes nothing, and neither does a
// category without a non-empty subcategory. Categories that share a title
// merge unless the caller forces a separate entry.
package catalog
