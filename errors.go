package wirefmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/wirefmt/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeSyntax           = "syntax"            // malformed markup or object-notation input
	CodeSecurityRejected = "security_rejected" // DOCTYPE or markup declaration encountered
	CodeIO               = "io"                // underlying stream failure
	CodeDuplicateKey     = "duplicate_key"
	CodeDepthExceeded    = "depth_exceeded"
	CodeTruncated        = "truncated"
	CodeEncode           = "encode_error" // document tree cannot be serialized in the requested format
)

// Issue represents a single reader or writer failure entry.
type Issue struct {
	Code    string // One of the codes listed above.
	Path    string // JSON Pointer into the input (for example: /entry/2/resource).
	Message string
	Cause   error // Optional: underlying error.
	Offset  int64 // Byte offset in the input source (-1 when unknown).
	Line    int   // 1-based source line, 0 when unknown.
	Column  int   // 1-based source column, 0 when unknown.
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. syntax at /entry/2 (line 4)
		fmt.Fprintf(b, "%s at %s", it.Code, normalizePath(it.Path))
		if it.Line > 0 {
			fmt.Fprintf(b, " (line %d)", it.Line)
		}
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// composeMessage pairs the localized message for a code (see i18n.SetLanguage)
// with source-level detail. When the dictionary has no entry for the code the
// detail stands alone.
func composeMessage(code, detail string) string {
	msg := i18n.T(code, nil)
	if msg == code || msg == "" {
		return detail
	}
	if detail == "" {
		return msg
	}
	return msg + ": " + detail
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IsSecurityRejected reports whether the error contains a security_rejected
// issue (a DOCTYPE or other markup declaration was encountered).
func IsSecurityRejected(err error) bool { return hasCode(err, CodeSecurityRejected) }

// IsSyntax reports whether the error contains a syntax issue.
func IsSyntax(err error) bool { return hasCode(err, CodeSyntax) }

func hasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}
