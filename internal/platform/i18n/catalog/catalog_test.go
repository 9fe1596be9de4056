package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if !bundle.HasLocale(BaseLocale) {
		t.Fatalf("expected base locale %s", BaseLocale)
	}
	if !bundle.HasLocale("pt-BR") {
		t.Fatalf("expected locale pt-BR")
	}

	if got := len(bundle.LocaleMessages("en-US")); got == 0 {
		t.Fatalf("expected en-US messages")
	}
	if got := len(bundle.NamespaceMessages("en-US", "core")); got == 0 {
		t.Fatalf("expected en-US core namespace messages")
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), `locale: "en-US"
namespace: "web"
messages:
  "core.bad": "nope"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "core.good": "ok"
`)

	_, err := LoadFromFS(os.DirFS(tempDir))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "a.key": "a"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), `locale: "en-US"
namespace: "web"
messages:
  "a.key": "b"
`)

	_, err := LoadFromFS(os.DirFS(tempDir))
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestNamespaceMessagesWithFallback(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	resolved, messages := bundle.NamespaceMessagesWithFallback("fr-FR", "errors")
	if resolved != "en-US" {
		t.Fatalf("resolved locale = %q, want en-US", resolved)
	}
	if len(messages) == 0 {
		t.Fatal("expected fallback errors namespace messages")
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestResolveNegotiatesClosestLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	tests := []struct {
		requested string
		want      string
	}{
		{requested: "", want: "en-US"},
		{requested: "pt-BR", want: "pt-BR"},
		{requested: "pt", want: "pt-BR"},
		{requested: "en-GB", want: "en-US"},
		{requested: "ja-JP", want: "en-US"},
		{requested: "not a tag", want: "en-US"},
	}
	for _, tc := range tests {
		if got := bundle.Resolve(tc.requested); got != tc.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tc.requested, got, tc.want)
		}
	}
}

func TestTranslatorFallsBackToBaseThenKey(t *testing.T) {
	translator := Default().Translator("pt-BR")
	if got := translator.Translate("hud.weapons"); got != "Armas" {
		t.Fatalf("Translate(hud.weapons) = %q, want Armas", got)
	}
	if got := translator.Translate("hud.cmb"); got != "CMB" {
		t.Fatalf("Translate(hud.cmb) = %q, want base fallback CMB", got)
	}
	if got := translator.Translate("hud.missing"); got != "hud.missing" {
		t.Fatalf("Translate(hud.missing) = %q, want key", got)
	}
	if got := translator.TranslateOr("hud.missing", "Fallback"); got != "Fallback" {
		t.Fatalf("TranslateOr = %q, want Fallback", got)
	}
}

func TestTranslatorFormat(t *testing.T) {
	translator := Default().Translator("en-US")
	if got := translator.Format("hud.level", 3); got != "Level 3" {
		t.Fatalf("Format(hud.level) = %q, want Level 3", got)
	}
	if got := translator.Format("hud.unknown", 3); got != "hud.unknown" {
		t.Fatalf("Format(hud.unknown) = %q, want key", got)
	}
}

func TestNilTranslatorReturnsKey(t *testing.T) {
	var translator *Translator
	if got := translator.Translate("hud.weapons"); got != "hud.weapons" {
		t.Fatalf("Translate = %q, want key", got)
	}
	if got := translator.Locale(); got != BaseLocale {
		t.Fatalf("Locale = %q, want %q", got, BaseLocale)
	}
}
