package catalog

// Action is one dispatchable entry.
type Action struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EncodedValue string `json:"encodedValue"`
	Icon         string `json:"icon,omitempty"`
	Img          string `json:"img,omitempty"`
	Info1        string `json:"info1,omitempty"`
	Info2        string `json:"info2,omitempty"`
	Info3        string `json:"info3,omitempty"`
	CSSClass     string `json:"cssClass,omitempty"`
}

// Subcategory groups actions and nested subcategories under a name.
type Subcategory struct {
	ID            string         `json:"id,omitempty"`
	Name          string         `json:"name"`
	Info1         string         `json:"info1,omitempty"`
	Actions       []Action       `json:"actions"`
	Subcategories []*Subcategory `json:"subcategories"`
}

// Category is a top-level HUD group.
type Category struct {
	ID            string         `json:"id"`
	Subcategories []*Subcategory `json:"subcategories"`
}

// Entry pairs a display title with its category. Entries keep the order in
// which they were first combined into the list.
type Entry struct {
	Title    string    `json:"title"`
	Category *Category `json:"category"`
}

// ActionList is the result of one build.
type ActionList struct {
	TokenID  string  `json:"tokenId"`
	ActorID  string  `json:"actorId"`
	HudTitle string  `json:"hudTitle,omitempty"`
	Entries  []Entry `json:"categories"`
	Sequence uint64  `json:"sequence,omitempty"`
	Stale    bool    `json:"stale,omitempty"`
}

// NewActionList returns an empty list.
func NewActionList() *ActionList {
	return &ActionList{Entries: []Entry{}}
}

// NewCategory returns an empty category.
func NewCategory(id string) *Category {
	return &Category{ID: id, Subcategories: []*Subcategory{}}
}

// NewSubcategory returns an empty subcategory.
func NewSubcategory(id, name string) *Subcategory {
	return &Subcategory{ID: id, Name: name, Actions: []Action{}, Subcategories: []*Subcategory{}}
}

// IsEmpty reports whether the subcategory would render nothing.
func (s *Subcategory) IsEmpty() bool {
	if s == nil {
		return true
	}
	if len(s.Actions) > 0 {
		return false
	}
	for _, child := range s.Subcategories {
		if !child.IsEmpty() {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the category has no non-empty subcategory.
func (c *Category) IsEmpty() bool {
	if c == nil {
		return true
	}
	for _, sub := range c.Subcategories {
		if !sub.IsEmpty() {
			return false
		}
	}
	return true
}

// Category returns the category stored under title.
func (l *ActionList) Category(title string) (*Category, bool) {
	if l == nil {
		return nil, false
	}
	for _, entry := range l.Entries {
		if entry.Title == title {
			return entry.Category, true
		}
	}
	return nil, false
}

// Titles returns entry titles in list order.
func (l *ActionList) Titles() []string {
	if l == nil {
		return nil
	}
	titles := make([]string, 0, len(l.Entries))
	for _, entry := range l.Entries {
		titles = append(titles, entry.Title)
	}
	return titles
}

// Walk visits every action in list order, passing the path of subcategory
// names that leads to it.
func (l *ActionList) Walk(visit func(entry Entry, path []*Subcategory, action Action)) {
	if l == nil {
		return
	}
	for _, entry := range l.Entries {
		if entry.Category == nil {
			continue
		}
		for _, sub := range entry.Category.Subcategories {
			walkSubcategory(entry, []*Subcategory{sub}, visit)
		}
	}
}

func walkSubcategory(entry Entry, path []*Subcategory, visit func(Entry, []*Subcategory, Action)) {
	current := path[len(path)-1]
	for _, action := range current.Actions {
		visit(entry, path, action)
	}
	for _, child := range current.Subcategories {
		next := make([]*Subcategory, len(path), len(path)+1)
		copy(next, path)
		walkSubcategory(entry, append(next, child), visit)
	}
}

// Actions flattens the list into actions in walk order.
func (l *ActionList) Actions() []Action {
	var out []Action
	l.Walk(func(_ Entry, _ []*Subcategory, action Action) {
		out = append(out, action)
	})
	return out
}
