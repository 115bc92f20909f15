package main

import (
	"strconv"

	wirefmt "github.com/reoring/wirefmt"
)

// Cross-format conversion uses a generic structural convention: attributes
// become "@name" members, element text becomes "#text", and repeated child
// elements collapse into arrays. Same-format conversion passes the tree
// through untouched.

func transform(doc *wirefmt.Document, in, out wirefmt.Format) *wirefmt.Document {
	if in == out {
		return doc
	}
	if in == wirefmt.FormatXML {
		return &wirefmt.Document{Root: wirefmt.Object(
			wirefmt.Member(doc.Root.Name, elementToValue(doc.Root)),
		)}
	}
	return &wirefmt.Document{Root: valueToElement("root", doc.Root)}
}

func elementToValue(n *wirefmt.Node) *wirefmt.Node {
	text := ""
	var elems []*wirefmt.Node
	for _, c := range n.Children {
		switch c.Kind {
		case wirefmt.KindText:
			text += c.Value
		case wirefmt.KindElement:
			elems = append(elems, c)
		}
	}
	if len(n.Attrs) == 0 && len(elems) == 0 {
		return wirefmt.String(text)
	}

	var members []*wirefmt.Node
	for _, a := range n.Attrs {
		members = append(members, wirefmt.Member("@"+a.Name, wirefmt.String(a.Value)))
	}
	if text != "" {
		members = append(members, wirefmt.Member("#text", wirefmt.String(text)))
	}

	counts := map[string]int{}
	for _, e := range elems {
		counts[e.Name]++
	}
	done := map[string]bool{}
	for _, e := range elems {
		if done[e.Name] {
			continue
		}
		done[e.Name] = true
		if counts[e.Name] == 1 {
			members = append(members, wirefmt.Member(e.Name, elementToValue(e)))
			continue
		}
		var items []*wirefmt.Node
		for _, e2 := range elems {
			if e2.Name == e.Name {
				items = append(items, elementToValue(e2))
			}
		}
		members = append(members, wirefmt.Member(e.Name, wirefmt.Array(items...)))
	}
	return wirefmt.Object(members...)
}

func valueToElement(name string, n *wirefmt.Node) *wirefmt.Node {
	switch n.Kind {
	case wirefmt.KindObject:
		// a single-member wrapper object names the element
		if name == "root" && len(n.Children) == 1 && n.Children[0].Kind == wirefmt.KindObject {
			return valueToElement(n.Children[0].Name, n.Children[0])
		}
		var attrs []wirefmt.Attr
		var children []*wirefmt.Node
		for _, m := range n.Children {
			switch {
			case len(m.Name) > 1 && m.Name[0] == '@' && m.Kind == wirefmt.KindString:
				attrs = append(attrs, wirefmt.Attr{Name: m.Name[1:], Value: m.Value})
			case m.Name == "#text" && m.Kind == wirefmt.KindString:
				children = append(children, wirefmt.Text(m.Value))
			case m.Kind == wirefmt.KindArray:
				for _, item := range m.Children {
					children = append(children, valueToElement(m.Name, item))
				}
			default:
				children = append(children, valueToElement(m.Name, m))
			}
		}
		return wirefmt.ElementAttr(name, attrs, children...)
	case wirefmt.KindArray:
		var children []*wirefmt.Node
		for _, item := range n.Children {
			children = append(children, valueToElement("item", item))
		}
		return wirefmt.Element(name, children...)
	case wirefmt.KindString:
		return wirefmt.Element(name, wirefmt.Text(n.Value))
	case wirefmt.KindNumber:
		return wirefmt.Element(name, wirefmt.Text(n.Value))
	case wirefmt.KindBool:
		return wirefmt.Element(name, wirefmt.Text(strconv.FormatBool(n.Bool)))
	case wirefmt.KindNull:
		return wirefmt.Element(name)
	default:
		return wirefmt.Element(name)
	}
}
