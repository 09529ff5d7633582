// Package xmlnode decodes arbitrary XML into a generic element tree. The
// Drop.io response schemas are only loosely typed (role and location nodes
// carry whatever children the server chose for that asset type), so the
// mapper walks a tree instead of unmarshalling into fixed structs.
package xmlnode

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// Node is one XML element: its name, collected character data and child
// elements in document order.
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// Parse decodes a full XML document and returns its root element.
func Parse(data []byte) (*Node, error) {
	var n Node
	if err := xml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// UnmarshalXML builds the subtree rooted at start.
func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.Name = start.Name.Local
	var text bytes.Buffer
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := &Node{}
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

// First returns the first direct child named name, or nil.
func (n *Node) First(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// All returns every direct child named name.
func (n *Node) All(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the text of the first direct child named name, or ""
// when no such child exists.
func (n *Node) ChildText(name string) string {
	if c := n.First(name); c != nil {
		return c.Text
	}
	return ""
}
