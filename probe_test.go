package wirefmt_test

import (
	"testing"

	wirefmt "github.com/reoring/wirefmt"
)

func TestLooksLikeXML(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"  <Patient><id/></Patient>", true},
		{"<a>", true},
		{"\n\t<root attr=\"1\">", true},
		{"  {\"resourceType\":\"Patient\"}", false},
		{"<>", false},
		{"<<a>", false},
		{"plain text", false},
		{"", false},
		{"   ", false},
	}
	for _, c := range cases {
		if got := wirefmt.LooksLikeXML(c.in); got != c.want {
			t.Fatalf("LooksLikeXML(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLooksLikeJSON(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"  {\"resourceType\":\"Patient\"}", true},
		{"{", true},
		{"\n\t{}", true},
		{"  <Patient/>", false},
		{"[1,2]", false},
		{"", false},
		{"   ", false},
	}
	for _, c := range cases {
		if got := wirefmt.LooksLikeJSON(c.in); got != c.want {
			t.Fatalf("LooksLikeJSON(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
