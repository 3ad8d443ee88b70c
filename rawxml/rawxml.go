// Package rawxml models schema-opaque XML fragments as a minimal element
// tree.
//
// Result documents carry tool-defined payloads inside DomainSpecificInfo
// elements. The content of those elements follows no schema, so it is kept
// as a generic tree of Node values that round-trips through load and write
// without interpretation. Attribute and child order is preserved.
//
// The tree is deliberately small: a node has a tag, ordered attributes,
// ordered children and optional character data. Namespace prefixes are not
// resolved; prefixed names are flattened to their local part.
package rawxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// ErrNoTag reports a node that cannot be serialized because its tag is
// empty.
var ErrNoTag = errors.New("rawxml: node has no tag")

// Attr is a single attribute on a Node.
type Attr struct {
	Name  string
	Value string
}

// Node is one XML element. The zero value is not serializable; use New or
// fill in Tag before encoding.
type Node struct {
	// Tag is the element name.
	Tag string
	// Attrs holds the attributes in document order.
	Attrs []Attr
	// Children holds the child elements in document order.
	Children []*Node
	// Text is the character data directly inside the element, with
	// surrounding whitespace trimmed.
	Text string
}

// New returns a node with the given tag.
func New(tag string) *Node {
	return &Node{Tag: tag}
}

// SetAttr appends or replaces the named attribute and returns the node for
// chaining.
func (n *Node) SetAttr(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// SetText sets the character data of the node and returns it for chaining.
func (n *Node) SetText(text string) *Node {
	n.Text = text
	return n
}

// AddChild appends child elements and returns the parent for chaining.
func (n *Node) AddChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Tag: n.Tag, Text: n.Text}
	if len(n.Attrs) > 0 {
		out.Attrs = make([]Attr, len(n.Attrs))
		copy(out.Attrs, n.Attrs)
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, child.Clone())
	}
	return out
}

// Parse reads a single-rooted XML fragment into a tree.
func Parse(data []byte) (*Node, error) {
	n := new(Node)
	if err := xml.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("rawxml: parse fragment: %w", err)
	}
	return n, nil
}

// String renders the tree as a compact XML fragment. An unserializable tree
// renders as an empty string.
func (n *Node) String() string {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(n); err != nil {
		return ""
	}
	return buf.String()
}

// MarshalXML implements xml.Marshaler. The node's own tag wins over the
// element name suggested by the enclosing document.
func (n *Node) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	if n.Tag == "" {
		return ErrNoTag
	}
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if n.Text != "" {
		if err := e.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if err := child.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// UnmarshalXML implements xml.Unmarshaler.
func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.Tag = flatten(start.Name)
	n.Attrs = nil
	n.Children = nil
	for _, a := range start.Attr {
		n.Attrs = append(n.Attrs, Attr{Name: attrName(a.Name), Value: a.Value})
	}
	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := new(Node)
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.Text = strings.TrimSpace(text.String())
			return nil
		}
	}
}

func flatten(name xml.Name) string {
	return name.Local
}

// attrName keeps namespace declarations readable; other prefixed attribute
// names are flattened like tags.
func attrName(name xml.Name) string {
	if name.Space == "xmlns" {
		return "xmlns:" + name.Local
	}
	return name.Local
}
