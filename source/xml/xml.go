// Package xml adapts encoding/xml into a hardened engine.TokenSource. The
// token stream never includes processing instructions, and any document type
// declaration aborts the parse; no subset is ever expanded.
package xml

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	eng "github.com/reoring/wirefmt/internal/engine"
)

type xmlSource struct {
	dec        *xml.Decoder
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for markup input.
func NewReader(r io.Reader) eng.TokenSource {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	// No custom entity map: named references beyond the predefined five are
	// expected to be numeric already (see the sanitizer).
	return &xmlSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for markup input.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *xmlSource) NextToken() (eng.Token, error) {
	for {
		tok, err := s.dec.Token()
		if err != nil {
			if err == io.EOF {
				return eng.Token{}, io.EOF
			}
			return eng.Token{}, translateErr(err)
		}
		s.lastOffset = s.dec.InputOffset()
		line, col := s.dec.InputPos()

		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make([]eng.Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				attrs = append(attrs, eng.Attr{Name: attrName(a.Name), Value: a.Value})
			}
			return eng.Token{Kind: eng.KindBeginElement, Name: t.Name.Local, Attrs: attrs, Offset: s.lastOffset, Line: line, Column: col}, nil
		case xml.EndElement:
			return eng.Token{Kind: eng.KindEndElement, Name: t.Name.Local, Offset: s.lastOffset, Line: line, Column: col}, nil
		case xml.CharData:
			return eng.Token{Kind: eng.KindText, String: string(t), Offset: s.lastOffset, Line: line, Column: col}, nil
		case xml.Comment:
			return eng.Token{Kind: eng.KindComment, String: string(t), Offset: s.lastOffset, Line: line, Column: col}, nil
		case xml.ProcInst:
			// Processing instructions (including the XML declaration) carry
			// no document content and are dropped unconditionally.
			continue
		case xml.Directive:
			si := eng.SimpleIssue{
				Code:    "security_rejected",
				Path:    "/",
				Message: directiveMessage(t),
				Offset:  s.lastOffset,
				Line:    line,
				Column:  col,
			}
			return eng.Token{}, eng.IssueError{SimpleIssue: si}
		}
	}
}

func (s *xmlSource) Location() int64 { return s.lastOffset }

// attrName flattens namespaces: the decoder resolves a prefixed attribute's
// Space to its namespace URI and discards the prefix, so only the local name
// is kept. Literal xmlns and xmlns:* declarations survive as written.
func attrName(n xml.Name) string {
	if n.Space == "xmlns" {
		return "xmlns:" + n.Local
	}
	return n.Local
}

func directiveMessage(d xml.Directive) string {
	kw := strings.Fields(string(d))
	if len(kw) > 0 && strings.EqualFold(kw[0], "DOCTYPE") {
		return "document type declarations are not allowed"
	}
	return "markup declarations are not allowed"
}

func translateErr(err error) error {
	if se, ok := err.(*xml.SyntaxError); ok {
		return eng.IssueError{SimpleIssue: eng.SimpleIssue{
			Code: "syntax", Path: "/", Message: se.Msg, Offset: -1, Line: se.Line,
		}}
	}
	return err
}
