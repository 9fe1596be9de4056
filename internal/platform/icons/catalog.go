package icons

import "strings"

// ID identifies a HUD icon.
type ID string

const (
	Bolt           ID = "bolt"
	Plus           ID = "plus"
	Circle         ID = "circle"
	HourglassStart ID = "hourglass-start"
	HourglassHalf  ID = "hourglass-half"
	HourglassEnd   ID = "hourglass-end"
	Star           ID = "star"
	Adjust         ID = "adjust"
	Check          ID = "check"
	CheckDouble    ID = "check-double"
)

// Definition describes a catalog icon.
type Definition struct {
	ID          ID
	Name        string
	Description string
}

var catalog = []Definition{
	{ID: Bolt, Name: "Bolt", Description: "Immediate actions and reactions."},
	{ID: Plus, Name: "Plus", Description: "Free and swift actions."},
	{ID: Circle, Name: "Circle", Description: "Full-round actions."},
	{ID: HourglassStart, Name: "Hourglass start", Description: "Activation measured in rounds."},
	{ID: HourglassHalf, Name: "Hourglass half", Description: "Activation measured in minutes."},
	{ID: HourglassEnd, Name: "Hourglass end", Description: "Activation measured in hours."},
	{ID: Star, Name: "Star", Description: "Special activation."},
	{ID: Adjust, Name: "Adjust", Description: "Half proficiency."},
	{ID: Check, Name: "Check", Description: "Proficient."},
	{ID: CheckDouble, Name: "Check double", Description: "Expertise."},
}

// Catalog returns a copy of the icon catalog definitions.
func Catalog() []Definition {
	result := make([]Definition, len(catalog))
	copy(result, catalog)
	return result
}

// Lookup returns the definition for id.
func Lookup(id ID) (Definition, bool) {
	for _, def := range catalog {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// CatalogMarkdown renders the icon catalog as markdown.
func CatalogMarkdown() string {
	var builder strings.Builder
	builder.WriteString("# Icon Catalog\n\n")
	builder.WriteString("| Icon ID | Name | Description | Markup |\n")
	builder.WriteString("| --- | --- | --- | --- |\n")
	for _, def := range catalog {
		builder.WriteString("| ")
		builder.WriteString(string(def.ID))
		builder.WriteString(" | ")
		builder.WriteString(def.Name)
		builder.WriteString(" | ")
		builder.WriteString(def.Description)
		builder.WriteString(" | `")
		builder.WriteString(Markup(def.ID))
		builder.WriteString("` |\n")
	}
	return builder.String()
}
