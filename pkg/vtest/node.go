package vtest

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Node is an element or text node of the in-memory tree.
type Node struct {
	id int

	// Tag is the element tag; empty for text nodes.
	Tag string

	// Text is the content of a text node, or the text content set on an
	// element with SetElementText.
	Text string

	// Props holds element properties set through SetProperty.
	Props map[string]any

	Parent   *Node
	Children []*Node

	root bool
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// ID returns the creation sequence number of n.
func (n *Node) ID() int {
	return n.id
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	b.WriteString(n.Text)
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Describe returns a short label used in the operation log: the tag and,
// when present, the id property and the text content, e.g. li#x(hello).
func (n *Node) Describe() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsText() {
		return fmt.Sprintf("%q", n.Text)
	}
	label := n.label()
	if text := n.TextContent(); text != "" {
		label += "(" + text + ")"
	}
	return label
}

// label returns the tag and id of an element without its content.
func (n *Node) label() string {
	if n.IsText() {
		return "#text"
	}
	if id, ok := n.Props["id"]; ok {
		return fmt.Sprintf("%s#%v", n.Tag, id)
	}
	return n.Tag
}

// HTML serializes the children of a root, or n itself for other nodes.
// Function-valued properties are omitted; other properties are sorted.
func (n *Node) HTML() string {
	var b strings.Builder
	if n.root {
		for _, c := range n.Children {
			c.writeHTML(&b)
		}
		return b.String()
	}
	n.writeHTML(&b)
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder) {
	if n.IsText() {
		b.WriteString(n.Text)
		return
	}

	b.WriteString("<")
	b.WriteString(n.Tag)

	keys := make([]string, 0, len(n.Props))
	for k, v := range n.Props {
		if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%q", k, fmt.Sprint(n.Props[k]))
	}
	b.WriteString(">")

	b.WriteString(n.Text)
	for _, c := range n.Children {
		c.writeHTML(b)
	}

	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteString(">")
}

// indexOf returns the position of child in n.Children, or -1.
func (n *Node) indexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// detach removes n from its parent.
func (n *Node) detach() {
	if n.Parent == nil {
		return
	}
	if i := n.Parent.indexOf(n); i >= 0 {
		n.Parent.Children = append(n.Parent.Children[:i], n.Parent.Children[i+1:]...)
	}
	n.Parent = nil
}

// walk visits n and its descendants depth-first until fn returns false.
func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}
