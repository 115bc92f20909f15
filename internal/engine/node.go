package engine

// NodeKind classifies document tree nodes across both wire forms.
type NodeKind int

const (
	KindNodeElement NodeKind = iota
	KindNodeText
	KindNodeComment
	KindNodeObject
	KindNodeArray
	KindNodeString
	KindNodeNumber
	KindNodeBool
	KindNodeNull
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case KindNodeElement:
		return "element"
	case KindNodeText:
		return "text"
	case KindNodeComment:
		return "comment"
	case KindNodeObject:
		return "object"
	case KindNodeArray:
		return "array"
	case KindNodeString:
		return "string"
	case KindNodeNumber:
		return "number"
	case KindNodeBool:
		return "bool"
	case KindNodeNull:
		return "null"
	default:
		return "unknown"
	}
}

// Attr is a markup attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is one vertex of a parsed document tree. For elements, Name is the
// element name and Attrs carries attributes in document order. For object
// members, Name is the member key. Number nodes store the exact source text
// in Value; interpretation is left to the consuming data model.
//
// Line and Column are 1-based source positions when the token source can
// report them, zero otherwise.
type Node struct {
	Kind     NodeKind
	Name     string
	Value    string
	Bool     bool
	Attrs    []Attr
	Children []*Node
	Line     int
	Column   int
}

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text concatenates the immediate text children of an element, or returns
// Value for scalar nodes.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindNodeElement:
		var out string
		for _, c := range n.Children {
			if c.Kind == KindNodeText {
				out += c.Value
			}
		}
		return out
	default:
		return n.Value
	}
}
