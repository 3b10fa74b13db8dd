package vdom

import (
	"sort"

	"github.com/vango-dev/reconcile/pkg/reactive"
)

// patch brings the host tree from old to next. old == nil mounts next before
// anchor in container. Nodes of different type are replaced in place.
func (r *Renderer) patch(old, next *VNode, container, anchor Handle, parent *Instance) {
	if old == next {
		return
	}
	if next == nil {
		r.unmount(old, true)
		return
	}
	if old != nil && !sameType(old, next) {
		if lastHandle(old) != nil {
			anchor = r.nextSibling(old)
		}
		r.unmount(old, true)
		old = nil
	}

	switch next.Kind {
	case KindText:
		r.processText(old, next, container, anchor)
	case KindElement:
		r.processElement(old, next, container, anchor, parent)
	case KindFragment:
		r.processFragment(old, next, container, anchor, parent)
	case KindPortal:
		if old == nil {
			portalMount(next, container, anchor, parent, r.internals())
		} else {
			portalUpdate(old, next, container, anchor, parent, r.internals())
		}
	case KindComponent:
		r.processComponent(old, next, container, anchor, parent)
	}
}

func (r *Renderer) processText(old, next *VNode, container, anchor Handle) {
	if old == nil {
		next.Handle = r.createText(next.Text)
		r.insert(next.Handle, container, anchor)
		return
	}
	next.Handle = old.Handle
	if old.Text != next.Text {
		r.setText(next.Handle, next.Text)
	}
}

func (r *Renderer) processElement(old, next *VNode, container, anchor Handle, parent *Instance) {
	if old == nil {
		r.mountElement(next, container, anchor, parent)
		return
	}
	next.Handle = old.Handle
	r.patchProps(next.Handle, old.Props, next.Props)
	r.patchChildren(old, next, next.Handle, nil, parent)
}

func (r *Renderer) mountElement(v *VNode, container, anchor Handle, parent *Instance) {
	el := r.createElement(v.Tag)
	v.Handle = el

	switch v.childShape() {
	case shapeText:
		r.setElementText(el, v.Text)
	case shapeList:
		r.mountChildren(v.Children, el, nil, parent)
	}
	for _, k := range sortedKeys(v.Props) {
		if k == "key" {
			continue
		}
		r.setProperty(el, k, nil, v.Props[k])
	}
	r.insert(el, container, anchor)
}

// patchProps applies the property difference between prev and next.
// Values are compared by identity, so function props are always reapplied.
func (r *Renderer) patchProps(el Handle, prev, next Props) {
	for _, k := range sortedKeys(next) {
		if k == "key" {
			continue
		}
		old, ok := prev[k]
		nv := next[k]
		if !ok || !reactive.Same(old, nv) {
			r.setProperty(el, k, old, nv)
		}
	}
	for _, k := range sortedKeys(prev) {
		if k == "key" {
			continue
		}
		if _, ok := next[k]; !ok {
			r.setProperty(el, k, prev[k], nil)
		}
	}
}

func (r *Renderer) processFragment(old, next *VNode, container, anchor Handle, parent *Instance) {
	if old == nil {
		r.mountChildren(next.Children, container, anchor, parent)
		return
	}
	// Children appended to the fragment go right after its current content.
	if lastHandle(old) != nil {
		anchor = r.nextSibling(old)
	}
	r.patchChildren(old, next, container, anchor, parent)
}

// patchChildren reconciles the children of old and next inside container.
func (r *Renderer) patchChildren(old, next *VNode, container, anchor Handle, parent *Instance) {
	prevShape := old.childShape()
	switch next.childShape() {
	case shapeText:
		if prevShape == shapeList {
			r.unmountChildren(old.Children)
		}
		if prevShape != shapeText || old.Text != next.Text {
			r.setElementText(container, next.Text)
		}

	case shapeList:
		switch prevShape {
		case shapeList:
			if hasKeys(old.Children) || hasKeys(next.Children) {
				r.patchKeyedChildren(old.Children, next.Children, container, anchor, parent)
			} else {
				r.patchUnkeyedChildren(old.Children, next.Children, container, anchor, parent)
			}
		case shapeText:
			r.setElementText(container, "")
			r.mountChildren(next.Children, container, anchor, parent)
		default:
			r.mountChildren(next.Children, container, anchor, parent)
		}

	default:
		switch prevShape {
		case shapeList:
			r.unmountChildren(old.Children)
		case shapeText:
			r.setElementText(container, "")
		}
	}
}

func (r *Renderer) mountChildren(children []*VNode, container, anchor Handle, parent *Instance) {
	for _, c := range children {
		r.patch(nil, c, container, anchor, parent)
	}
}

func (r *Renderer) unmountChildren(children []*VNode) {
	for _, c := range children {
		r.unmount(c, true)
	}
}

// unmount tears v down. doRemove is false inside a subtree whose root host
// node is being removed anyway: nested instances still get torn down, but no
// further host removals are issued.
func (r *Renderer) unmount(v *VNode, doRemove bool) {
	if v == nil {
		return
	}
	switch v.Kind {
	case KindComponent:
		if v.persistent && v.keepAlive != nil {
			v.keepAlive.deactivate(v)
			return
		}
		if v.instance != nil {
			r.unmountComponent(v.instance, doRemove)
		}
	case KindFragment:
		for _, c := range v.Children {
			r.unmount(c, doRemove)
		}
	case KindPortal:
		portalUnmount(v, r.internals())
	case KindElement:
		for _, c := range v.Children {
			r.unmount(c, false)
		}
		if doRemove && v.Handle != nil {
			r.remove(v.Handle)
		}
	case KindText:
		if doRemove && v.Handle != nil {
			r.remove(v.Handle)
		}
	}
}

// move relocates every host node of v before anchor in container.
func (r *Renderer) move(v *VNode, container, anchor Handle) {
	switch v.Kind {
	case KindComponent:
		if v.instance != nil && v.instance.subTree != nil {
			r.move(v.instance.subTree, container, anchor)
		}
	case KindFragment:
		for _, c := range v.Children {
			r.move(c, container, anchor)
		}
	case KindPortal:
		// Portal content lives in its target.
	default:
		if v.Handle != nil {
			r.moveHandle(v.Handle, container, anchor)
		}
	}
}

func sortedKeys(p Props) []string {
	if len(p) == 0 {
		return nil
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
