package wirefmt

import (
	eng "github.com/reoring/wirefmt/internal/engine"
)

// Node aliases the engine node so readers, writers, and callers share one
// tree representation without an adapter layer.
// NOTE: the core never retains a reference to a returned tree.
type Node = eng.Node

// Attr is a markup attribute.
type Attr = eng.Attr

// NodeKind classifies document tree nodes.
type NodeKind = eng.NodeKind

const (
	KindElement NodeKind = eng.KindNodeElement
	KindText    NodeKind = eng.KindNodeText
	KindComment NodeKind = eng.KindNodeComment
	KindObject  NodeKind = eng.KindNodeObject
	KindArray   NodeKind = eng.KindNodeArray
	KindString  NodeKind = eng.KindNodeString
	KindNumber  NodeKind = eng.KindNodeNumber
	KindBool    NodeKind = eng.KindNodeBool
	KindNull    NodeKind = eng.KindNodeNull
)

// Document is a parsed document tree. Ownership passes to the caller on
// return from ReadDocument.
type Document struct {
	Root *Node
}

// ---- tree constructors for writer-side callers ----

// Element builds a markup element node.
func Element(name string, children ...*Node) *Node {
	return &Node{Kind: KindElement, Name: name, Children: children}
}

// ElementAttr builds a markup element node with attributes.
func ElementAttr(name string, attrs []Attr, children ...*Node) *Node {
	return &Node{Kind: KindElement, Name: name, Attrs: attrs, Children: children}
}

// Text builds a markup text node.
func Text(value string) *Node { return &Node{Kind: KindText, Value: value} }

// Object builds an object node from member nodes (see Member).
func Object(members ...*Node) *Node { return &Node{Kind: KindObject, Children: members} }

// Array builds an array node.
func Array(items ...*Node) *Node { return &Node{Kind: KindArray, Children: items} }

// Member names a node as an object member.
func Member(name string, v *Node) *Node {
	v.Name = name
	return v
}

// String builds a string scalar node.
func String(value string) *Node { return &Node{Kind: KindString, Value: value} }

// Number builds a numeric scalar node carrying exact decimal text. The text
// is emitted verbatim by the object-notation writer; an empty text serializes
// as null.
func Number(text string) *Node { return &Node{Kind: KindNumber, Value: text} }

// Bool builds a boolean scalar node.
func Bool(v bool) *Node { return &Node{Kind: KindBool, Bool: v} }

// Null builds a null scalar node.
func Null() *Node { return &Node{Kind: KindNull} }
