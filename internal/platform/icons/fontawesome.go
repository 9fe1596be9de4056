package icons

const (
	styleSolid   = "fas"
	styleRegular = "far"
)

var fontAwesomeStyles = map[ID]string{
	Circle: styleRegular,
}

// FontAwesomeClass returns the class attribute for id, or "" when id is not
// cataloged.
func FontAwesomeClass(id ID) string {
	if _, ok := Lookup(id); !ok {
		return ""
	}
	style, ok := fontAwesomeStyles[id]
	if !ok {
		style = styleSolid
	}
	return style + " fa-" + string(id)
}

// Markup returns the inline element rendered for id. Unknown ids render
// nothing so actions without an icon stay unadorned.
func Markup(id ID) string {
	class := FontAwesomeClass(id)
	if class == "" {
		return ""
	}
	return `<i class="` + class + `"></i>`
}
