package i18n_test

import (
	"testing"

	"github.com/reoring/wirefmt/i18n"
)

func TestDefaultEnglishMessages(t *testing.T) {
	if got := i18n.T("duplicate_key", nil); got != "duplicate key" {
		t.Fatalf("duplicate_key = %q", got)
	}
	if got := i18n.T("security_rejected", nil); got == "security_rejected" {
		t.Fatalf("security_rejected has no dictionary entry")
	}
}

func TestSetLanguageJapanese(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")
	if got := i18n.T("syntax", nil); got != "構文エラー" {
		t.Fatalf("ja syntax = %q", got)
	}
}

func TestUnknownCodeFallsBackToCode(t *testing.T) {
	if got := i18n.T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("fallback = %q", got)
	}
}

type bracketTranslator struct{}

func (bracketTranslator) Message(code string, _ map[string]string) string { return "[" + code + "]" }

func TestSetTranslatorOverride(t *testing.T) {
	i18n.SetTranslator(bracketTranslator{})
	defer i18n.SetTranslator(nil)
	if got := i18n.T("io", nil); got != "[io]" {
		t.Fatalf("custom translator = %q", got)
	}
}

func TestSetTranslatorNilRestoresDefault(t *testing.T) {
	i18n.SetTranslator(nil)
	if got := i18n.T("io", nil); got != "input/output error" {
		t.Fatalf("default restore = %q", got)
	}
}
