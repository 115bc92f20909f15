package wirefmt_test

import (
	"strings"
	"testing"

	wirefmt "github.com/reoring/wirefmt"
	"github.com/reoring/wirefmt/i18n"
	drvgojson "github.com/reoring/wirefmt/source/gojson"
)

func TestReadDocument_JSONObject(t *testing.T) {
	doc, err := wirefmt.ReadDocumentString(
		`{"resourceType":"Patient","active":true,"multipleBirthInteger":2,"deceasedBoolean":null}`,
		wirefmt.FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := doc.Root
	if root.Kind != wirefmt.KindObject {
		t.Fatalf("root kind = %v", root.Kind)
	}
	if got := root.Child("resourceType"); got == nil || got.Kind != wirefmt.KindString || got.Value != "Patient" {
		t.Fatalf("resourceType = %+v", got)
	}
	if got := root.Child("active"); got == nil || got.Kind != wirefmt.KindBool || !got.Bool {
		t.Fatalf("active = %+v", got)
	}
	if got := root.Child("multipleBirthInteger"); got == nil || got.Kind != wirefmt.KindNumber || got.Value != "2" {
		t.Fatalf("multipleBirthInteger = %+v", got)
	}
	if got := root.Child("deceasedBoolean"); got == nil || got.Kind != wirefmt.KindNull {
		t.Fatalf("deceasedBoolean = %+v", got)
	}
}

func TestReadDocument_JSONDecimalTextPreserved(t *testing.T) {
	doc, err := wirefmt.ReadDocumentString(
		`{"low":1.10,"high":1.50,"exp":1e3,"zero":0.500}`, wirefmt.FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, want := range map[string]string{
		"low": "1.10", "high": "1.50", "exp": "1e3", "zero": "0.500",
	} {
		if got := doc.Root.Child(name).Value; got != want {
			t.Fatalf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestReadDocument_JSONDateStaysString(t *testing.T) {
	doc, err := wirefmt.ReadDocumentString(`{"birthDate":"1974-12-25"}`, wirefmt.FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Root.Child("birthDate"); got.Kind != wirefmt.KindString || got.Value != "1974-12-25" {
		t.Fatalf("birthDate = %+v", got)
	}
}

func TestReadDocument_JSONCommentsIgnored(t *testing.T) {
	in := "// leading note\n{\"a\": 1, /* inline */ \"b\": \"x /* not a comment */\"}"
	doc, err := wirefmt.ReadDocumentString(in, wirefmt.FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Root.Child("a").Value; got != "1" {
		t.Fatalf("a = %q", got)
	}
	if got := doc.Root.Child("b").Value; got != "x /* not a comment */" {
		t.Fatalf("comment-like string mangled: %q", got)
	}
}

func TestReadDocument_JSONDuplicateKeyRejected(t *testing.T) {
	_, err := wirefmt.ReadDocumentString(`{"a":1,"a":2}`, wirefmt.FormatJSON)
	if err == nil {
		t.Fatalf("expected duplicate key error")
	}
	iss, ok := wirefmt.AsIssues(err)
	if !ok || iss[0].Code != wirefmt.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key issue, got %v", err)
	}
	if iss[0].Path != "/a" {
		t.Fatalf("expected path=/a, got %s", iss[0].Path)
	}
}

func TestReadDocument_JSONDuplicateKeyAllowed(t *testing.T) {
	doc, err := wirefmt.ReadDocumentString(`{"a":1,"a":2}`, wirefmt.FormatJSON,
		wirefmt.ReadOpt{AllowDuplicateKeys: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Root.Children) != 2 {
		t.Fatalf("expected both members, got %+v", doc.Root.Children)
	}
}

func TestReadDocument_IssueMessagesLocalized(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")

	_, err := wirefmt.ReadDocumentString(`{"a":1,"a":2}`, wirefmt.FormatJSON)
	iss, ok := wirefmt.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	if !strings.Contains(iss[0].Message, "キーが重複しています") {
		t.Fatalf("expected localized message, got %q", iss[0].Message)
	}

	i18n.SetLanguage("en")
	_, err = wirefmt.ReadDocumentString(`{"a":1,"a":2}`, wirefmt.FormatJSON)
	iss, _ = wirefmt.AsIssues(err)
	if !strings.Contains(iss[0].Message, "duplicate key") {
		t.Fatalf("expected english message, got %q", iss[0].Message)
	}
}

func TestReadDocument_JSONMalformed(t *testing.T) {
	_, err := wirefmt.ReadDocumentString("{\n  \"a\": tru}", wirefmt.FormatJSON)
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	if !wirefmt.IsSyntax(err) {
		t.Fatalf("expected syntax issue, got %v", err)
	}
	iss, _ := wirefmt.AsIssues(err)
	if iss[0].Offset <= 0 {
		t.Fatalf("expected positional information, got %+v", iss[0])
	}
	if iss[0].Line != 2 {
		t.Fatalf("expected line 2, got %d", iss[0].Line)
	}
}

func TestReadDocument_JSONTruncatedInput(t *testing.T) {
	_, err := wirefmt.ReadDocumentString(`{"a": [1, 2`, wirefmt.FormatJSON)
	if err == nil {
		t.Fatalf("expected error for truncated input")
	}
	if !wirefmt.IsSyntax(err) {
		t.Fatalf("expected syntax issue, got %v", err)
	}
}

func TestReadDocument_JSONTrailingContent(t *testing.T) {
	_, err := wirefmt.ReadDocumentString(`{} {}`, wirefmt.FormatJSON)
	if err == nil {
		t.Fatalf("expected error for trailing content")
	}
}

func TestReadDocument_JSONMaxDepth(t *testing.T) {
	_, err := wirefmt.ReadDocumentString(`{"a":{"b":{"c":1}}}`, wirefmt.FormatJSON,
		wirefmt.ReadOpt{MaxDepth: 2})
	if err == nil {
		t.Fatalf("expected depth error")
	}
	iss, ok := wirefmt.AsIssues(err)
	if !ok || iss[0].Code != wirefmt.CodeDepthExceeded {
		t.Fatalf("expected depth_exceeded, got %v", err)
	}
}

func TestReadDocument_JSONMaxBytes(t *testing.T) {
	in := `{"a":"` + strings.Repeat("x", 1024) + `"}`
	_, err := wirefmt.ReadDocumentString(in, wirefmt.FormatJSON, wirefmt.ReadOpt{MaxBytes: 64})
	if err == nil {
		t.Fatalf("expected truncation error")
	}
	iss, ok := wirefmt.AsIssues(err)
	if !ok || iss[0].Code != wirefmt.CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestReadDocument_JSONFromStream(t *testing.T) {
	r, err := wirefmt.NewReader(strings.NewReader(`{"v": 1.50}`), wirefmt.FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := r.ReadDocument()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Root.Child("v").Value; got != "1.50" {
		t.Fatalf("v = %q", got)
	}
}

func TestReadDocument_GoJSONDriverMaxBytes(t *testing.T) {
	wirefmt.SetJSONDriver(drvgojson.Driver())
	defer wirefmt.UseDefaultJSONDriver()

	in := `{"a":"` + strings.Repeat("x", 1024) + `"}`
	_, err := wirefmt.ReadDocumentString(in, wirefmt.FormatJSON, wirefmt.ReadOpt{MaxBytes: 64})
	if err == nil {
		t.Fatalf("expected truncation error under the go-json driver")
	}
	iss, ok := wirefmt.AsIssues(err)
	if !ok || iss[0].Code != wirefmt.CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestReadDocument_GoJSONDriver(t *testing.T) {
	wirefmt.SetJSONDriver(drvgojson.Driver())
	defer wirefmt.UseDefaultJSONDriver()

	doc, err := wirefmt.ReadDocumentString(`{"v": 1.10, "list": [1, 2.50]}`, wirefmt.FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Root.Child("v").Value; got != "1.10" {
		t.Fatalf("v = %q", got)
	}
	list := doc.Root.Child("list")
	if len(list.Children) != 2 || list.Children[1].Value != "2.50" {
		t.Fatalf("list = %+v", list)
	}
}
