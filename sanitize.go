package wirefmt

import (
	"strings"

	"github.com/reoring/wirefmt/internal/entity"
)

// SanitizeEntities rewrites recognized named character references (for
// example &copy;) to their numeric form (&#169;) so a strict markup parser
// can consume the text without a DTD. Everything else is copied through
// byte-for-byte: unrecognized names, bare ampersands, and the five
// predefined entities (quot, amp, lt, gt, apos), which must stay symbolic
// to survive re-parsing.
//
// The scan is a single left-to-right pass; when no reference is recognized
// the input string is returned without allocating.
func SanitizeEntities(s string) string {
	var b *strings.Builder
	flushed := 0
	i := 0
	for i < len(s) {
		amp := strings.IndexByte(s[i:], '&')
		if amp < 0 {
			break
		}
		start := i + amp
		j := start + 1
		for j < len(s) && isEntityChar(s[j]) {
			j++
		}
		if j == start+1 || j >= len(s) || s[j] != ';' {
			// not the &name; shape; resume after the ampersand
			i = start + 1
			continue
		}
		if ref, ok := entity.Lookup(s[start+1 : j]); ok {
			if b == nil {
				b = &strings.Builder{}
				b.Grow(len(s))
			}
			b.WriteString(s[flushed:start])
			b.WriteString(ref)
			flushed = j + 1
		}
		i = j + 1
	}
	if b == nil {
		return s
	}
	b.WriteString(s[flushed:])
	return b.String()
}

func isEntityChar(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
