// Package json adapts encoding/json into an engine.TokenSource for
// object-notation input. Numbers are surfaced as exact text, comments are
// blanked out before decoding, and byte offsets are resolved to line/column
// positions for diagnostics.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	eng "github.com/reoring/wirefmt/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type jsonSource struct {
	r          io.Reader // pending source; drained on first NextToken
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
	pos        posTracker
}

// NewReader wraps an io.Reader into an engine.TokenSource. The reader is
// drained on the first token so comments can be stripped and offsets can be
// mapped back to line/column positions.
func NewReader(r io.Reader) eng.TokenSource {
	return &jsonSource{r: r, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource.
func NewBytes(b []byte) eng.TokenSource {
	s := &jsonSource{lastOffset: -1}
	s.init(b)
	return s
}

func (s *jsonSource) init(b []byte) {
	b = StripComments(b)
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	s.dec = dec
	s.pos = posTracker{buf: b, line: 1, col: 1}
}

func (s *jsonSource) NextToken() (eng.Token, error) {
	if s.dec == nil {
		data, err := io.ReadAll(s.r)
		if err != nil {
			return eng.Token{}, err
		}
		s.init(data)
		s.r = nil
	}

	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, s.translateErr(err)
	}
	s.lastOffset = s.dec.InputOffset()
	line, col := s.pos.at(s.lastOffset)

	base := eng.Token{Offset: s.lastOffset, Line: line, Column: col}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			base.Kind = eng.KindBeginObject
			return base, nil
		case '}':
			s.pop()
			base.Kind = eng.KindEndObject
			return base, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			base.Kind = eng.KindBeginArray
			return base, nil
		case ']':
			s.pop()
			base.Kind = eng.KindEndArray
			return base, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				base.Kind = eng.KindKey
				base.Name = v
				return base, nil
			}
		}
		s.valueDone()
		base.Kind = eng.KindString
		base.String = v
		return base, nil
	case json.Number:
		s.valueDone()
		base.Kind = eng.KindNumber
		base.Number = string(v)
		return base, nil
	case bool:
		s.valueDone()
		base.Kind = eng.KindBool
		base.Bool = v
		return base, nil
	case nil:
		s.valueDone()
		base.Kind = eng.KindNull
		return base, nil
	}
	s.valueDone()
	base.Kind = eng.KindNull
	return base, nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }

func (s *jsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *jsonSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *jsonSource) translateErr(err error) error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		line, col := s.pos.at(se.Offset)
		return eng.IssueError{SimpleIssue: eng.SimpleIssue{
			Code: "syntax", Path: "/", Message: se.Error(), Offset: se.Offset, Line: line, Column: col,
		}}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return eng.IssueError{SimpleIssue: eng.SimpleIssue{
			Code: "syntax", Path: "/", Message: "unexpected end of input", Offset: s.lastOffset,
		}}
	}
	return err
}

// posTracker resolves monotonically increasing byte offsets to 1-based
// line/column positions over a fixed buffer.
type posTracker struct {
	buf  []byte
	off  int64
	line int
	col  int
}

func (p *posTracker) at(off int64) (int, int) {
	if p.line == 0 {
		p.line, p.col = 1, 1
	}
	for p.off < off && p.off < int64(len(p.buf)) {
		if p.buf[p.off] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
		p.off++
	}
	return p.line, p.col
}

// StripComments blanks // and /* */ comments outside string literals with
// spaces, preserving byte offsets and line breaks so positions still map to
// the original input. The input is returned unchanged when no comment is
// present.
func StripComments(b []byte) []byte {
	var out []byte
	inStr := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		if inStr {
			switch c {
			case '\\':
				i++
			case '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '/':
			if i+1 >= len(b) {
				break
			}
			switch b[i+1] {
			case '/':
				if out == nil {
					out = append([]byte(nil), b...)
				}
				for i < len(b) && b[i] != '\n' {
					out[i] = ' '
					i++
				}
			case '*':
				if out == nil {
					out = append([]byte(nil), b...)
				}
				out[i], out[i+1] = ' ', ' '
				i += 2
				for i < len(b) {
					if b[i] == '*' && i+1 < len(b) && b[i+1] == '/' {
						out[i], out[i+1] = ' ', ' '
						i++
						break
					}
					if b[i] != '\n' {
						out[i] = ' '
					}
					i++
				}
			}
		}
	}
	if out == nil {
		return b
	}
	return out
}
