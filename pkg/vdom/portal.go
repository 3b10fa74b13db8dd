package vdom

import (
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/reactive"
)

// internals is the slice of the renderer that portal and keep-alive code
// works through.
type internals struct {
	host          Host
	report        func(*errors.Error)
	mountChildren func(children []*VNode, container, anchor Handle, parent *Instance)
	patchChildren func(old, next *VNode, container, anchor Handle, parent *Instance)
	unmount       func(v *VNode, doRemove bool)
	move          func(v *VNode, container, anchor Handle)
}

func (r *Renderer) internals() internals {
	return internals{
		host:          r.host,
		report:        r.report,
		mountChildren: r.mountChildren,
		patchChildren: r.patchChildren,
		unmount:       r.unmount,
		move:          r.move,
	}
}

// resolveTarget turns a portal target into a host container. Strings are
// selectors and need a Querier host.
func resolveTarget(host Host, target any) Handle {
	switch t := target.(type) {
	case nil:
		return nil
	case string:
		q, ok := host.(Querier)
		if !ok {
			return nil
		}
		return q.Query(t)
	default:
		return t
	}
}

func portalMount(v *VNode, container, anchor Handle, parent *Instance, in internals) {
	target := resolveTarget(in.host, v.Target)
	if target == nil {
		in.report(errors.New("R007").WithDetailf("%v", v.Target))
		v.portalTarget = container
		in.mountChildren(v.Children, container, anchor, parent)
		return
	}
	v.portalTarget = target
	in.mountChildren(v.Children, target, nil, parent)
}

func portalUpdate(old, next *VNode, container, anchor Handle, parent *Instance, in internals) {
	current := old.portalTarget
	next.portalTarget = current

	var childAnchor Handle
	if reactive.Same(current, container) {
		childAnchor = anchor
	}
	in.patchChildren(old, next, current, childAnchor, parent)

	if reactive.Same(old.Target, next.Target) {
		return
	}
	target := resolveTarget(in.host, next.Target)
	if target == nil {
		in.report(errors.New("R007").WithDetailf("%v", next.Target))
		return
	}
	if reactive.Same(target, current) {
		return
	}
	for _, c := range next.Children {
		in.move(c, target, nil)
	}
	next.portalTarget = target
}

func portalUnmount(v *VNode, in internals) {
	for _, c := range v.Children {
		in.unmount(c, true)
	}
}
