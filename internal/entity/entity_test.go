package entity_test

import (
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/reoring/wirefmt/internal/entity"
)

func TestLookup_CommonNames(t *testing.T) {
	cases := map[string]string{
		"nbsp":   "&#160;",
		"copy":   "&#169;",
		"eacute": "&#233;",
		"mdash":  "&#8212;",
		"euro":   "&#8364;",
	}
	for name, want := range cases {
		got, ok := entity.Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) missing", name)
		}
		if got != want {
			t.Fatalf("Lookup(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestLookup_ReservedFiveAbsent(t *testing.T) {
	// amp/lt/gt/quot/apos must never be rewritten; the table guarantees
	// that by omission rather than by scanner special cases.
	for _, name := range []string{"amp", "lt", "gt", "quot", "apos"} {
		if _, ok := entity.Lookup(name); ok {
			t.Fatalf("reserved entity %q must not be in the table", name)
		}
	}
}

func TestTable_AllValuesWellFormed(t *testing.T) {
	for _, name := range entity.Names() {
		ref, ok := entity.Lookup(name)
		if !ok {
			t.Fatalf("Names() listed %q but Lookup missed it", name)
		}
		if !strings.HasPrefix(ref, "&#") || !strings.HasSuffix(ref, ";") {
			t.Fatalf("entity %q has malformed reference %q", name, ref)
		}
		n, err := strconv.Atoi(ref[2 : len(ref)-1])
		if err != nil || n <= 0 {
			t.Fatalf("entity %q has non-numeric reference %q", name, ref)
		}
	}
}

func TestTable_Size(t *testing.T) {
	if entity.Len() < 200 {
		t.Fatalf("table suspiciously small: %d entries", entity.Len())
	}
	if entity.Len() != len(entity.Names()) {
		t.Fatalf("Len() = %d disagrees with Names() = %d", entity.Len(), len(entity.Names()))
	}
}

func TestNames_Sorted(t *testing.T) {
	names := entity.Names()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("Names() is not sorted")
	}
}
