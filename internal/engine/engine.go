package engine

import (
	"io"
)

// Kind represents token kinds from a generic source. One vocabulary covers
// both wire forms: object-notation sources emit the JSON-shaped kinds,
// markup sources emit the element-shaped kinds.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
	KindBeginElement
	KindEndElement
	KindText
	KindComment
)

// Token represents a streaming token with best-effort position data.
// Offset is a byte offset (-1 when unknown); Line/Column are 1-based and
// zero when the source cannot report them.
type Token struct {
	Kind   Kind
	Name   string // element name or object member key
	String string // text content or string value
	Number string // exact numeric text; interpretation is deferred to callers
	Bool   bool
	Attrs  []Attr
	Offset int64
	Line   int
	Column int
}

// TokenSource is the minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// BuildDocument consumes the source to completion and assembles a single
// document tree. Trailing non-comment content after the root value is an
// error; no partial tree is ever returned.
func BuildDocument(src TokenSource) (*Node, error) {
	root, err := buildRoot(src)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			return root, nil
		}
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindComment || (tok.Kind == KindText && isAllSpace(tok.String)) {
			continue
		}
		return nil, IssueError{SimpleIssue{
			Code: "syntax", Path: "/", Message: "content after document root",
			Offset: tok.Offset, Line: tok.Line, Column: tok.Column,
		}}
	}
}

func buildRoot(src TokenSource) (*Node, error) {
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			return nil, IssueError{SimpleIssue{Code: "syntax", Path: "/", Message: "empty document", Offset: -1}}
		}
		if err != nil {
			return nil, err
		}
		// leading comments and whitespace before the root are dropped
		if tok.Kind == KindComment || (tok.Kind == KindText && isAllSpace(tok.String)) {
			continue
		}
		return buildValue(src, tok)
	}
}

func buildValue(src TokenSource, tok Token) (*Node, error) {
	switch tok.Kind {
	case KindBeginObject:
		return buildObject(src, tok)
	case KindBeginArray:
		return buildArray(src, tok)
	case KindBeginElement:
		return buildElement(src, tok)
	case KindString:
		return &Node{Kind: KindNodeString, Value: tok.String, Line: tok.Line, Column: tok.Column}, nil
	case KindNumber:
		return &Node{Kind: KindNodeNumber, Value: tok.Number, Line: tok.Line, Column: tok.Column}, nil
	case KindBool:
		return &Node{Kind: KindNodeBool, Bool: tok.Bool, Line: tok.Line, Column: tok.Column}, nil
	case KindNull:
		return &Node{Kind: KindNodeNull, Line: tok.Line, Column: tok.Column}, nil
	case KindText:
		return &Node{Kind: KindNodeText, Value: tok.String, Line: tok.Line, Column: tok.Column}, nil
	case KindComment:
		return &Node{Kind: KindNodeComment, Value: tok.String, Line: tok.Line, Column: tok.Column}, nil
	default:
		return nil, IssueError{SimpleIssue{
			Code: "syntax", Path: "/", Message: "unexpected token",
			Offset: tok.Offset, Line: tok.Line, Column: tok.Column,
		}}
	}
}

func buildObject(src TokenSource, open Token) (*Node, error) {
	n := &Node{Kind: KindNodeObject, Line: open.Line, Column: open.Column}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEnd(err)
		}
		if tok.Kind == KindEndObject {
			return n, nil
		}
		if tok.Kind != KindKey {
			return nil, IssueError{SimpleIssue{
				Code: "syntax", Path: "/", Message: "expected object key",
				Offset: tok.Offset, Line: tok.Line, Column: tok.Column,
			}}
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEnd(err)
		}
		v, err := buildValue(src, vt)
		if err != nil {
			return nil, err
		}
		v.Name = tok.Name
		n.Children = append(n.Children, v)
	}
}

func buildArray(src TokenSource, open Token) (*Node, error) {
	n := &Node{Kind: KindNodeArray, Line: open.Line, Column: open.Column}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEnd(err)
		}
		if tok.Kind == KindEndArray {
			return n, nil
		}
		v, err := buildValue(src, tok)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, v)
	}
}

func buildElement(src TokenSource, open Token) (*Node, error) {
	n := &Node{Kind: KindNodeElement, Name: open.Name, Attrs: open.Attrs, Line: open.Line, Column: open.Column}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEnd(err)
		}
		switch tok.Kind {
		case KindEndElement:
			return n, nil
		case KindBeginElement:
			child, err := buildElement(src, tok)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case KindText:
			// whitespace between elements is insignificant
			if isAllSpace(tok.String) {
				continue
			}
			n.Children = append(n.Children, &Node{Kind: KindNodeText, Value: tok.String, Line: tok.Line, Column: tok.Column})
		case KindComment:
			n.Children = append(n.Children, &Node{Kind: KindNodeComment, Value: tok.String, Line: tok.Line, Column: tok.Column})
		default:
			return nil, IssueError{SimpleIssue{
				Code: "syntax", Path: "/", Message: "unexpected token inside element",
				Offset: tok.Offset, Line: tok.Line, Column: tok.Column,
			}}
		}
	}
}

func unexpectedEnd(err error) error {
	if err == io.EOF {
		return IssueError{SimpleIssue{Code: "syntax", Path: "/", Message: "unexpected end of input", Offset: -1}}
	}
	return err
}

func isAllSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
