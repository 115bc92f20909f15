package wirefmt

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// Writer emits a document tree in a fixed fidelity-preserving configuration:
// markup output is UTF-8 without a byte-order mark or XML declaration, with
// line breaks inside content escaped numerically; object-notation output
// emits numeric nodes' exact stored text, never a binary-float rendering.
//
// A Writer owns its sink and must not be shared across concurrent logical
// operations. Writes are buffered; Flush surfaces the first sink error.
type Writer struct {
	bw     *bufio.Writer
	format Format
}

// NewWriter binds a writer to a sink.
func NewWriter(w io.Writer, f Format) *Writer {
	return &Writer{bw: bufio.NewWriter(w), format: f}
}

// Format reports the wire form this writer was built for.
func (w *Writer) Format() Format { return w.format }

// Flush drains the buffer to the sink.
func (w *Writer) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return Issues{{Code: CodeIO, Message: composeMessage(CodeIO, err.Error()), Cause: err, Offset: -1}}
	}
	return nil
}

// WriteDocument emits the tree. Node kinds that have no representation in
// the writer's format produce an encode error; sink failures surface on
// Flush.
func (w *Writer) WriteDocument(doc *Document) error {
	if doc == nil || doc.Root == nil {
		return Issues{{Code: CodeEncode, Message: composeMessage(CodeEncode, "nil document"), Offset: -1}}
	}
	return w.WriteNode(doc.Root)
}

// WriteNode emits a single subtree.
func (w *Writer) WriteNode(n *Node) error {
	switch w.format {
	case FormatXML:
		return w.writeXMLNode(n)
	case FormatJSON:
		return w.writeJSONValue(n)
	default:
		return Issues{{Code: CodeEncode, Message: "unknown format", Offset: -1}}
	}
}

// WriteScoped runs fn against a writer bound to sink and guarantees a flush
// on every exit path, including a panic escaping fn. fn's error wins over a
// flush error.
func WriteScoped(sink io.Writer, f Format, fn func(*Writer) error) (err error) {
	w := NewWriter(sink, f)
	defer func() {
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
	}()
	return fn(w)
}

// EncodeDocument serializes a tree to bytes; the bytes are returned only
// after a clean flush.
func EncodeDocument(f Format, doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	err := WriteScoped(&buf, f, func(w *Writer) error { return w.WriteDocument(doc) })
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ---- markup emission ----

func (w *Writer) writeXMLNode(n *Node) error {
	switch n.Kind {
	case KindElement:
		w.bw.WriteByte('<')
		w.bw.WriteString(n.Name)
		for _, a := range n.Attrs {
			w.bw.WriteByte(' ')
			w.bw.WriteString(a.Name)
			w.bw.WriteString(`="`)
			w.escapeXML(a.Value, true)
			w.bw.WriteByte('"')
		}
		if len(n.Children) == 0 {
			w.bw.WriteString("/>")
			return nil
		}
		w.bw.WriteByte('>')
		for _, c := range n.Children {
			if err := w.writeXMLNode(c); err != nil {
				return err
			}
		}
		w.bw.WriteString("</")
		w.bw.WriteString(n.Name)
		w.bw.WriteByte('>')
		return nil
	case KindText:
		w.escapeXML(n.Value, false)
		return nil
	case KindComment:
		w.bw.WriteString("<!--")
		w.bw.WriteString(n.Value)
		w.bw.WriteString("-->")
		return nil
	default:
		return Issues{{Code: CodeEncode, Message: composeMessage(CodeEncode, "node kind "+n.Kind.String()+" has no markup form"), Offset: -1}}
	}
}

// escapeXML writes s with markup-significant characters escaped. Line breaks
// and tabs become numeric references so transports cannot normalize them
// away; remaining C0 controls are escaped numerically as well. Multi-byte
// UTF-8 sequences pass through untouched.
func (w *Writer) escapeXML(s string, attr bool) {
	flushed := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		var ref string
		switch c {
		case '&':
			ref = "&amp;"
		case '<':
			ref = "&lt;"
		case '>':
			ref = "&gt;"
		case '"':
			if attr {
				ref = "&quot;"
			}
		case '\n':
			ref = "&#10;"
		case '\r':
			ref = "&#13;"
		case '\t':
			ref = "&#9;"
		default:
			if c < 0x20 {
				ref = "&#" + strconv.Itoa(int(c)) + ";"
			}
		}
		if ref == "" {
			continue
		}
		w.bw.WriteString(s[flushed:i])
		w.bw.WriteString(ref)
		flushed = i + 1
	}
	w.bw.WriteString(s[flushed:])
}

// ---- object-notation emission ----

func (w *Writer) writeJSONValue(n *Node) error {
	switch n.Kind {
	case KindObject:
		w.bw.WriteByte('{')
		for i, c := range n.Children {
			if i > 0 {
				w.bw.WriteByte(',')
			}
			w.writeJSONString(c.Name)
			w.bw.WriteByte(':')
			if err := w.writeJSONValue(c); err != nil {
				return err
			}
		}
		w.bw.WriteByte('}')
		return nil
	case KindArray:
		w.bw.WriteByte('[')
		for i, c := range n.Children {
			if i > 0 {
				w.bw.WriteByte(',')
			}
			if err := w.writeJSONValue(c); err != nil {
				return err
			}
		}
		w.bw.WriteByte(']')
		return nil
	case KindString:
		w.writeJSONString(n.Value)
		return nil
	case KindNumber:
		// exact decimal text; an empty number is the null decimal
		if n.Value == "" {
			w.bw.WriteString("null")
			return nil
		}
		w.bw.WriteString(n.Value)
		return nil
	case KindBool:
		w.bw.WriteString(strconv.FormatBool(n.Bool))
		return nil
	case KindNull:
		w.bw.WriteString("null")
		return nil
	default:
		return Issues{{Code: CodeEncode, Message: composeMessage(CodeEncode, "node kind "+n.Kind.String()+" has no object-notation form"), Offset: -1}}
	}
}

func (w *Writer) writeJSONString(s string) {
	b, err := gojson.Marshal(s)
	if err != nil {
		// Marshal of a string cannot fail; fall back to a quoted literal.
		b = []byte(strconv.Quote(s))
	}
	w.bw.Write(b)
}
