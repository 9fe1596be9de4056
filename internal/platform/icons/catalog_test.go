package icons

import (
	"strings"
	"testing"
)

func TestCatalogEntriesAreUniqueAndNamed(t *testing.T) {
	defs := Catalog()
	if len(defs) == 0 {
		t.Fatal("expected catalog to include icon definitions")
	}

	seen := make(map[ID]struct{})
	for _, def := range defs {
		if def.ID == "" {
			t.Errorf("unexpected empty icon id in catalog")
		}
		if _, ok := seen[def.ID]; ok {
			t.Errorf("duplicate icon id in catalog: %s", def.ID)
		}
		seen[def.ID] = struct{}{}
		if strings.TrimSpace(def.Name) == "" {
			t.Errorf("icon %s missing name", def.ID)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	defs := Catalog()
	defs[0].Name = "changed"
	if Catalog()[0].Name == "changed" {
		t.Fatal("expected Catalog to return a copy")
	}
}

func TestCatalogMarkdownIncludesIconIDs(t *testing.T) {
	markdown := CatalogMarkdown()
	for _, def := range Catalog() {
		if !strings.Contains(markdown, "| "+string(def.ID)+" |") {
			t.Errorf("catalog markdown missing icon id %s", def.ID)
		}
	}
}

func TestMarkup(t *testing.T) {
	tests := map[ID]string{
		Bolt:        `<i class="fas fa-bolt"></i>`,
		Circle:      `<i class="far fa-circle"></i>`,
		CheckDouble: `<i class="fas fa-check-double"></i>`,
		"unknown":   "",
	}
	for id, want := range tests {
		if got := Markup(id); got != want {
			t.Errorf("Markup(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestEveryCatalogIconRenders(t *testing.T) {
	for _, def := range Catalog() {
		if Markup(def.ID) == "" {
			t.Errorf("catalog icon %s renders no markup", def.ID)
		}
	}
}
