// Package gojson provides a goccy/go-json backed token source. It trades the
// byte-accurate positions of the default encoding/json source for decode
// throughput; diagnostics from this source carry no line/column data. Byte
// consumption is still tracked so reader byte caps apply under this driver.
package gojson

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"

	wirefmt "github.com/reoring/wirefmt"
	eng "github.com/reoring/wirefmt/internal/engine"
	jsonsrc "github.com/reoring/wirefmt/source/json"
)

// Driver returns a wirefmt.JSONDriver backed by goccy/go-json.
func Driver() wirefmt.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) eng.TokenSource { return NewReader(r) }
func (driverGoJSON) NewBytes(b []byte) eng.TokenSource     { return NewBytes(b) }
func (driverGoJSON) Name() string                          { return "go-json" }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	r     io.Reader
	dec   *j.Decoder
	cr    *countingReader
	stack []frame
}

// countingReader tracks bytes handed to the decoder. The decoder may read
// ahead, so the count can exceed the offset of the current token but never
// the input length; a byte cap judged against it cannot reject an input that
// fits under the cap in full.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// NewReader wraps an io.Reader into an engine.TokenSource using go-json.
func NewReader(r io.Reader) eng.TokenSource { return &source{r: r} }

// NewBytes wraps a byte slice into an engine.TokenSource using go-json.
func NewBytes(b []byte) eng.TokenSource {
	s := &source{}
	s.init(b)
	return s
}

func (s *source) init(b []byte) {
	s.cr = &countingReader{r: bytes.NewReader(jsonsrc.StripComments(b))}
	dec := j.NewDecoder(s.cr)
	dec.UseNumber()
	s.dec = dec
}

func (s *source) NextToken() (eng.Token, error) {
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
		if err == io.ErrUnexpectedEOF {
			return eng.Token{}, eng.IssueError{SimpleIssue: eng.SimpleIssue{
				Code: "syntax", Path: "/", Message: "unexpected end of input", Offset: -1,
			}}
		}
		return eng.Token{}, eng.IssueError{SimpleIssue: eng.SimpleIssue{
			Code: "syntax", Path: "/", Message: err.Error(), Offset: -1,
		}}
	}

	base := eng.Token{Offset: -1}
	switch v := tok.(type) {
	case j.Delim:
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
	case j.Number:
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

func (s *source) Location() int64 {
	if s.cr == nil {
		return -1
	}
	return s.cr.n
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
