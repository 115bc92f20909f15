// Package middleware hardens HTTP JSON/XML boundaries: it probes request
// bodies, parses them through the hardened reader, and rejects malicious or
// malformed payloads before application handlers run.
package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"

	gojson "github.com/goccy/go-json"

	wirefmt "github.com/reoring/wirefmt"
)

// ctxKeyDocument is a typed context key for storing the parsed tree.
type ctxKeyDocument struct{}

// ContextWithDocument attaches a parsed document to the context.
func ContextWithDocument(ctx context.Context, doc *wirefmt.Document) context.Context {
	return context.WithValue(ctx, ctxKeyDocument{}, doc)
}

// DocumentFromContext retrieves the parsed document from context.
func DocumentFromContext(ctx context.Context) (*wirefmt.Document, bool) {
	doc, ok := ctx.Value(ctxKeyDocument{}).(*wirefmt.Document)
	return doc, ok
}

// DetectFormat probes a body prefix for a known wire form.
func DetectFormat(body []byte) (wirefmt.Format, bool) {
	s := string(body)
	switch {
	case wirefmt.LooksLikeXML(s):
		return wirefmt.FormatXML, true
	case wirefmt.LooksLikeJSON(s):
		return wirefmt.FormatJSON, true
	default:
		return 0, false
	}
}

// DefaultReadOpt returns a recommended default for HTTP boundaries: hardened
// flags plus depth and size caps sized for API payloads.
func DefaultReadOpt() wirefmt.ReadOpt {
	return wirefmt.ReadOpt{MaxDepth: 64, MaxBytes: 1 << 20}
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []wirefmt.Issue) map[string]any {
	return map[string]any{"issues": issues}
}

// Harden wraps next so that request bodies are parsed through the hardened
// reader before the handler runs. The parsed tree is available via
// DocumentFromContext. Unrecognized bodies get 415; unparseable or rejected
// bodies get 400 with an issues payload.
func Harden(next http.Handler, opts ...wirefmt.ReadOpt) http.Handler {
	opt := DefaultReadOpt()
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		if req.Body == nil || req.ContentLength == 0 {
			next.ServeHTTP(rw, req)
			return
		}
		limit := opt.MaxBytes
		if limit <= 0 {
			limit = 1 << 20
		}
		body, err := io.ReadAll(io.LimitReader(req.Body, limit+1))
		if err != nil {
			writeIssues(rw, http.StatusBadRequest, wirefmt.Issues{{Code: wirefmt.CodeIO, Message: err.Error()}})
			return
		}
		if int64(len(body)) > limit {
			writeIssues(rw, http.StatusRequestEntityTooLarge, wirefmt.Issues{{Code: wirefmt.CodeTruncated, Message: "max bytes exceeded"}})
			return
		}
		f, ok := DetectFormat(body)
		if !ok {
			writeIssues(rw, http.StatusUnsupportedMediaType, wirefmt.Issues{{Code: wirefmt.CodeSyntax, Message: "unrecognized body format"}})
			return
		}
		doc, err := wirefmt.ReadDocumentString(string(body), f, opt)
		if err != nil {
			iss, _ := wirefmt.AsIssues(err)
			writeIssues(rw, http.StatusBadRequest, iss)
			return
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(rw, req.WithContext(ContextWithDocument(req.Context(), doc)))
	})
}

func writeIssues(rw http.ResponseWriter, status int, issues wirefmt.Issues) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	b, err := gojson.Marshal(ErrorPayload(issues))
	if err != nil {
		return
	}
	_, _ = rw.Write(b)
}
