package catalog

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Translator resolves message keys for one negotiated locale.
type Translator struct {
	bundle  *Bundle
	locale  string
	printer *message.Printer
}

// Translator binds a translator to the closest locale for requested.
func (b *Bundle) Translator(requested string) *Translator {
	locale := b.Resolve(requested)
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(BaseLocale)
	}
	return &Translator{bundle: b, locale: locale, printer: message.NewPrinter(tag)}
}

// Locale returns the negotiated locale.
func (t *Translator) Locale() string {
	if t == nil {
		return BaseLocale
	}
	return t.locale
}

// Translate returns the message for key, or key itself when no catalog has it.
func (t *Translator) Translate(key string) string {
	if t == nil {
		return key
	}
	if value, ok := t.bundle.Message(t.locale, key); ok {
		return value
	}
	return key
}

// Has reports whether key exists in the negotiated or base locale.
func (t *Translator) Has(key string) bool {
	if t == nil {
		return false
	}
	_, ok := t.bundle.Message(t.locale, key)
	return ok
}

// Format renders a printf-style message registered under key.
func (t *Translator) Format(key string, args ...any) string {
	if t == nil {
		return key
	}
	template, ok := t.bundle.Message(t.locale, key)
	if !ok {
		return key
	}
	return t.printer.Sprintf(template, args...)
}

// TranslateOr returns the translated key, or fallback when the key is unknown.
func (t *Translator) TranslateOr(key, fallback string) string {
	if t.Has(key) {
		return t.Translate(key)
	}
	if strings.TrimSpace(fallback) == "" {
		return key
	}
	return fallback
}
