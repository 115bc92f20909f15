package wirefmt

import (
	"strings"
	"unicode"
)

// LooksLikeXML reports whether the input plausibly starts a markup document:
// after leading whitespace, an angle bracket, one or more non-angle-bracket
// characters, and a closing angle bracket. This is a dispatch heuristic only;
// malformed input is rejected later by the reader.
func LooksLikeXML(s string) bool {
	t := strings.TrimLeftFunc(s, unicode.IsSpace)
	if len(t) < 3 || t[0] != '<' {
		return false
	}
	for i := 1; i < len(t); i++ {
		switch t[i] {
		case '>':
			return i > 1
		case '<':
			return false
		}
	}
	return false
}

// LooksLikeJSON reports whether the input plausibly starts an object-notation
// document: after leading whitespace, an opening curly brace.
func LooksLikeJSON(s string) bool {
	t := strings.TrimLeftFunc(s, unicode.IsSpace)
	return len(t) > 0 && t[0] == '{'
}
