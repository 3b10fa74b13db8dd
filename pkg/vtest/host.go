package vtest

import (
	"fmt"
	"strings"
)

// OpKind identifies a recorded host operation.
type OpKind string

const (
	OpCreate         OpKind = "create"
	OpCreateText     OpKind = "createText"
	OpInsert         OpKind = "insert"
	OpMove           OpKind = "move"
	OpRemove         OpKind = "remove"
	OpSetText        OpKind = "setText"
	OpSetElementText OpKind = "setElementText"
	OpSetProp        OpKind = "setProp"
)

// Op is one recorded host operation.
type Op struct {
	Kind OpKind

	// Target describes the node the operation applied to.
	Target string

	// Detail holds the property key, the new text, or for insert/move the
	// parent and anchor ("ul before li(b)").
	Detail string
}

// String formats the op as "kind target detail".
func (o Op) String() string {
	if o.Detail == "" {
		return fmt.Sprintf("%s %s", o.Kind, o.Target)
	}
	return fmt.Sprintf("%s %s %s", o.Kind, o.Target, o.Detail)
}

// Host is an in-memory host tree that records every mutation.
type Host struct {
	nextID int
	roots  []*Node
	ops    []Op
}

// NewHost creates an empty host.
func NewHost() *Host {
	return &Host{}
}

// NewRoot creates a detached container node. Root creation is not logged.
func (h *Host) NewRoot(tag string) *Node {
	n := h.newNode(tag)
	n.root = true
	h.roots = append(h.roots, n)
	return n
}

func (h *Host) newNode(tag string) *Node {
	h.nextID++
	return &Node{id: h.nextID, Tag: tag}
}

func (h *Host) record(kind OpKind, n *Node, detail string) {
	h.ops = append(h.ops, Op{Kind: kind, Target: n.Describe(), Detail: detail})
}

// node converts a handle back to a *Node.
func node(handle any) *Node {
	if handle == nil {
		return nil
	}
	n, ok := handle.(*Node)
	if !ok {
		panic(fmt.Sprintf("vtest: foreign handle %T", handle))
	}
	return n
}

// CreateElement creates a detached element.
func (h *Host) CreateElement(tag string) any {
	n := h.newNode(tag)
	h.record(OpCreate, n, "")
	return n
}

// CreateText creates a detached text node.
func (h *Host) CreateText(content string) any {
	n := h.newNode("")
	n.Text = content
	h.record(OpCreateText, n, "")
	return n
}

// SetText replaces the content of a text node.
func (h *Host) SetText(handle any, content string) {
	n := node(handle)
	n.Text = content
	h.record(OpSetText, n, fmt.Sprintf("%q", content))
}

// SetElementText replaces all children of an element with text content.
func (h *Host) SetElementText(handle any, content string) {
	n := node(handle)
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	n.Text = content
	h.record(OpSetElementText, n, fmt.Sprintf("%q", content))
}

// Insert places child in parent before anchor, or last when anchor is nil
// or not a child of parent. A child that is already attached is moved.
func (h *Host) Insert(child, parent, anchor any) {
	c, p, a := node(child), node(parent), node(anchor)

	kind := OpInsert
	if c.Parent != nil {
		kind = OpMove
		c.detach()
	}

	idx := len(p.Children)
	if a != nil {
		if i := p.indexOf(a); i >= 0 {
			idx = i
		}
	}
	p.Children = append(p.Children, nil)
	copy(p.Children[idx+1:], p.Children[idx:])
	p.Children[idx] = c
	c.Parent = p

	detail := "into " + p.label()
	if a != nil {
		detail += " before " + a.Describe()
	}
	h.record(kind, c, detail)
}

// Remove detaches a node from its parent.
func (h *Host) Remove(handle any) {
	n := node(handle)
	h.record(OpRemove, n, "")
	n.detach()
}

// SetProperty sets or, when next is nil, deletes a property.
func (h *Host) SetProperty(handle any, key string, prev, next any) {
	n := node(handle)
	if next == nil {
		delete(n.Props, key)
	} else {
		if n.Props == nil {
			n.Props = make(map[string]any)
		}
		n.Props[key] = next
	}
	h.record(OpSetProp, n, key)
}

// ParentNode returns the parent of a node, or nil.
func (h *Host) ParentNode(handle any) any {
	n := node(handle)
	if n == nil || n.Parent == nil {
		return nil
	}
	return n.Parent
}

// NextSibling returns the node after handle in its parent, or nil.
func (h *Host) NextSibling(handle any) any {
	n := node(handle)
	if n == nil || n.Parent == nil {
		return nil
	}
	i := n.Parent.indexOf(n)
	if i < 0 || i+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[i+1]
}

// Query resolves "#id" against the id property, or a bare tag name, by
// walking every root depth-first. It returns nil when nothing matches.
func (h *Host) Query(selector string) any {
	match := func(n *Node) bool { return !n.IsText() && n.Tag == selector }
	if id, ok := strings.CutPrefix(selector, "#"); ok {
		match = func(n *Node) bool {
			v, ok := n.Props["id"]
			return ok && fmt.Sprint(v) == id
		}
	}

	var found *Node
	for _, root := range h.roots {
		root.walk(func(n *Node) bool {
			if !n.root && match(n) {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// Ops returns a copy of the operation log.
func (h *Host) Ops() []Op {
	return append([]Op(nil), h.ops...)
}

// OpStrings returns the operation log formatted with Op.String.
func (h *Host) OpStrings() []string {
	out := make([]string, len(h.ops))
	for i, op := range h.ops {
		out[i] = op.String()
	}
	return out
}

// Count returns how many operations of the given kinds were recorded.
func (h *Host) Count(kinds ...OpKind) int {
	n := 0
	for _, op := range h.ops {
		for _, k := range kinds {
			if op.Kind == k {
				n++
				break
			}
		}
	}
	return n
}

// Filter returns the recorded operations of the given kind.
func (h *Host) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range h.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset clears the operation log.
func (h *Host) Reset() {
	h.ops = nil
}
