// Package i18n renders user-facing error messages from the "errors"
// namespace of the locale bundle.
package i18n

import (
	"maps"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/actionhud/internal/platform/i18n/catalog"
)

// Code mirrors errors.Code. The errors package imports this one.
type Code = string

// Catalog holds the message templates of one locale.
type Catalog struct {
	locale    string
	templates map[Code]string
}

type registry struct {
	mu       sync.RWMutex
	byLocale map[string]*Catalog
}

var catalogs = &registry{byLocale: map[string]*Catalog{}}

func (r *registry) get(locale string) (*Catalog, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byLocale[locale]
	return c, ok
}

// put stores c unless replace is false and locale already has a catalog,
// and returns the catalog now registered.
func (r *registry) put(locale string, c *Catalog, replace bool) *Catalog {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byLocale[locale]; ok && !replace {
		return existing
	}
	r.byLocale[locale] = c
	return c
}

// GetCatalog returns the catalog for locale, building it from the bundle on
// first use. Unknown locales resolve to the base locale.
func GetCatalog(locale string) *Catalog {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = i18ncatalog.BaseLocale
	}
	if c, ok := catalogs.get(locale); ok {
		return c
	}
	resolved, messages := i18ncatalog.Default().NamespaceMessagesWithFallback(locale, "errors")
	if c, ok := catalogs.get(resolved); ok {
		return c
	}
	return catalogs.put(resolved, NewCatalog(resolved, messages), false)
}

// RegisterCatalog installs c for locale, replacing a built one.
func RegisterCatalog(locale string, c *Catalog) {
	catalogs.put(locale, c, true)
}

// NewCatalog copies messages into a catalog for locale.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	return &Catalog{locale: locale, templates: maps.Clone(messages)}
}

func (c *Catalog) Locale() string { return c.locale }

// Has reports whether code has a template.
func (c *Catalog) Has(code Code) bool {
	if c == nil {
		return false
	}
	_, ok := c.templates[code]
	return ok
}

// Format renders the template for code with metadata. A missing template
// yields the code; a broken one yields its raw text.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	text, ok := c.templates[code]
	if !ok {
		return code
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var out strings.Builder
	tmpl, err := template.New(code).Parse(text)
	if err == nil {
		err = tmpl.Execute(&out, metadata)
	}
	if err != nil {
		return text
	}
	return out.String()
}
