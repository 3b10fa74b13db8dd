package vdom

import "fmt"

// El creates an element. Arguments may be Props, Attr, []Attr, *VNode,
// []*VNode, or a string (which becomes a text child). A "key" attribute
// becomes the node's Key rather than a property.
func El(tag string, args ...any) *VNode {
	node := &VNode{Kind: KindElement, Tag: tag}
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		case Props:
			for k, val := range v {
				node.setAttr(Attr{Key: k, Value: val})
			}
		default:
			node.Children = appendChildren(node.Children, v)
		}
	}
	return node
}

// TextEl creates an element whose children are plain text content.
func TextEl(tag, content string, args ...any) *VNode {
	node := El(tag, args...)
	node.Children = nil
	node.Text = content
	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		v.Key = a.Value
		return
	}
	if v.Props == nil {
		v.Props = make(Props)
	}
	v.Props[a.Key] = a.Value
}

func appendChildren(list []*VNode, child any) []*VNode {
	switch v := child.(type) {
	case *VNode:
		if v != nil {
			list = append(list, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				list = append(list, c)
			}
		}
	case string:
		list = append(list, Text(v))
	}
	return list
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment}
	for _, child := range children {
		node.Children = appendChildren(node.Children, child)
	}
	return node
}

// Portal renders children into target, which is either a host Handle or a
// selector string resolved through a Querier host.
func Portal(target any, children ...any) *VNode {
	node := Fragment(children...)
	node.Kind = KindPortal
	node.Target = target
	return node
}

// Comp creates a component node. A "key" entry in props becomes the node's
// Key; slots are passed to the instance as slot content.
func Comp(def *Definition, props Props, slots ...*VNode) *VNode {
	node := &VNode{Kind: KindComponent, Comp: def}
	for k, v := range props {
		node.setAttr(Attr{Key: k, Value: v})
	}
	node.Children = appendChildren(nil, slots)
	return node
}

// Keyed sets the reconciliation key of node and returns it.
func Keyed(key any, node *VNode) *VNode {
	node.Key = key
	return node
}

// Key creates a key attribute for reconciliation.
func Key(key any) Attr {
	return attr("key", key)
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to VNodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}
