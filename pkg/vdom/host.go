package vdom

import "github.com/vango-dev/reconcile/pkg/telemetry"

// Host is the platform adapter: every mutation of the real tree goes through it.
type Host interface {
	CreateElement(tag string) Handle
	CreateText(content string) Handle
	SetText(h Handle, content string)

	// SetElementText replaces all children of h with plain text.
	SetElementText(h Handle, content string)

	// Insert places h under parent before anchor (appends when anchor is
	// nil). A node that is already attached is moved.
	Insert(h, parent, anchor Handle)
	Remove(h Handle)

	// SetProperty applies a property change; next == nil removes it.
	SetProperty(h Handle, key string, prev, next any)

	ParentNode(h Handle) Handle
	NextSibling(h Handle) Handle
}

// Querier is implemented by hosts that can resolve selector strings, which
// Portal uses for string targets.
type Querier interface {
	Query(selector string) Handle
}

// Host operations are funnelled through these so each one is counted.

func (r *Renderer) createElement(tag string) Handle {
	r.metrics.HostOp(telemetry.OpCreate)
	return r.host.CreateElement(tag)
}

func (r *Renderer) createText(content string) Handle {
	r.metrics.HostOp(telemetry.OpCreate)
	return r.host.CreateText(content)
}

func (r *Renderer) setText(h Handle, content string) {
	r.metrics.HostOp(telemetry.OpSetText)
	r.host.SetText(h, content)
}

func (r *Renderer) setElementText(h Handle, content string) {
	r.metrics.HostOp(telemetry.OpSetText)
	r.host.SetElementText(h, content)
}

func (r *Renderer) insert(h, parent, anchor Handle) {
	r.metrics.HostOp(telemetry.OpInsert)
	r.host.Insert(h, parent, anchor)
}

func (r *Renderer) moveHandle(h, parent, anchor Handle) {
	r.metrics.HostOp(telemetry.OpMove)
	r.host.Insert(h, parent, anchor)
}

func (r *Renderer) remove(h Handle) {
	r.metrics.HostOp(telemetry.OpRemove)
	r.host.Remove(h)
}

func (r *Renderer) setProperty(h Handle, key string, prev, next any) {
	r.metrics.HostOp(telemetry.OpSetProperty)
	r.host.SetProperty(h, key, prev, next)
}

// nextSibling returns the host node following v's last host node.
func (r *Renderer) nextSibling(v *VNode) Handle {
	if h := lastHandle(v); h != nil {
		return r.host.NextSibling(h)
	}
	return nil
}

// firstHandle returns the first host node v occupies in its container,
// looking through fragments and components. Portals occupy none.
func firstHandle(v *VNode) Handle {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindElement, KindText:
		return v.Handle
	case KindComponent:
		if v.instance != nil {
			return firstHandle(v.instance.subTree)
		}
	case KindFragment:
		for _, c := range v.Children {
			if h := firstHandle(c); h != nil {
				return h
			}
		}
	}
	return nil
}

// lastHandle is the mirror of firstHandle.
func lastHandle(v *VNode) Handle {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindElement, KindText:
		return v.Handle
	case KindComponent:
		if v.instance != nil {
			return lastHandle(v.instance.subTree)
		}
	case KindFragment:
		for i := len(v.Children) - 1; i >= 0; i-- {
			if h := lastHandle(v.Children[i]); h != nil {
				return h
			}
		}
	}
	return nil
}

// anchorFrom returns the first host node of list[start:], or fallback.
func anchorFrom(list []*VNode, start int, fallback Handle) Handle {
	for i := start; i < len(list); i++ {
		if h := firstHandle(list[i]); h != nil {
			return h
		}
	}
	return fallback
}
