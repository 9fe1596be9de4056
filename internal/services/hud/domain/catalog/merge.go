package catalog

// Combine appends sub to the category when it is non-empty, naming it title
// when it has no name. It reports whether sub was appended.
func (c *Category) Combine(title string, sub *Subcategory) bool {
	if c == nil || sub.IsEmpty() {
		return false
	}
	if sub.Name == "" {
		sub.Name = title
	}
	c.Subcategories = append(c.Subcategories, sub)
	return true
}

// Prepend places sub before the existing subcategories when it is
// non-empty.
func (c *Category) Prepend(sub *Subcategory) bool {
	if c == nil || sub.IsEmpty() {
		return false
	}
	c.Subcategories = append([]*Subcategory{sub}, c.Subcategories...)
	return true
}

// Combine nests sub under s with the same rules as Category.Combine.
func (s *Subcategory) Combine(title string, sub *Subcategory) bool {
	if s == nil || sub.IsEmpty() {
		return false
	}
	if sub.Name == "" {
		sub.Name = title
	}
	s.Subcategories = append(s.Subcategories, sub)
	return true
}

// Combine folds category into the list under title. Empty categories are
// dropped. A category whose title is already present merges its
// subcategories into the existing entry unless forceAppend is set, in which
// case it gets its own entry. It reports whether the list changed.
func (l *ActionList) Combine(title string, category *Category, forceAppend bool) bool {
	if l == nil || category.IsEmpty() {
		return false
	}
	nonEmpty := make([]*Subcategory, 0, len(category.Subcategories))
	for _, sub := range category.Subcategories {
		if !sub.IsEmpty() {
			nonEmpty = append(nonEmpty, sub)
		}
	}
	category.Subcategories = nonEmpty

	if !forceAppend {
		if existing, ok := l.Category(title); ok && existing != category {
			existing.Subcategories = append(existing.Subcategories, category.Subcategories...)
			return true
		}
		if ok := l.contains(category); ok {
			return false
		}
	}
	l.Entries = append(l.Entries, Entry{Title: title, Category: category})
	return true
}

func (l *ActionList) contains(category *Category) bool {
	for _, entry := range l.Entries {
		if entry.Category == category {
			return true
		}
	}
	return false
}
