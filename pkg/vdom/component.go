package vdom

import (
	"slices"

	"github.com/vango-dev/reconcile/pkg/reactive"
)

// RenderFunc produces a component's subtree. Values read through ctx are
// tracked: changing any of them re-renders the component.
type RenderFunc func(ctx *RenderContext) *VNode

// Hook is a lifecycle callback.
type Hook func(inst *Instance)

// SetupFunc runs once per instance, before the first render.
type SetupFunc func(props PropsView, ctx *SetupContext) SetupResult

// SetupResult is what Setup hands back: an optional render function that
// takes precedence over Definition.Render, and state exposed to the render
// context after local state and props.
type SetupResult struct {
	Render RenderFunc
	State  map[string]any
}

// Definition describes a component. Its identity is its pointer: two
// component nodes are the same type only if they share a *Definition.
type Definition struct {
	Name string

	// Props lists the declared prop names. Attributes outside this list
	// (other than event handlers) are attrs and fall through to the root
	// element.
	Props []string

	// State returns fresh local state for each instance.
	State func() map[string]any

	Setup  SetupFunc
	Render RenderFunc

	// DisableAttrFallthrough keeps attrs off the root element.
	DisableAttrFallthrough bool

	BeforeCreate  Hook
	Created       Hook
	BeforeMount   Hook
	Mounted       Hook
	BeforeUpdate  Hook
	Updated       Hook
	BeforeUnmount Hook
	Unmounted     Hook
	Activated     Hook
	Deactivated   Hook

	functional bool
	keepAlive  bool
}

// Functional defines a stateless component from a render function. Without
// declared props every attribute is a prop.
func Functional(name string, render RenderFunc) *Definition {
	return &Definition{Name: name, Render: render, functional: true}
}

// IsFunctional reports whether the definition was created with Functional.
func (d *Definition) IsFunctional() bool {
	return d.functional
}

func (d *Definition) declares(name string) bool {
	return slices.Contains(d.Props, name)
}

// splitAttrs divides raw component attributes into props and attrs. Every
// declared prop is present in the result, nil when absent from raw.
func (d *Definition) splitAttrs(raw Props) (map[string]any, Props) {
	props := make(map[string]any, len(d.Props))
	attrs := make(Props)
	allProps := d.functional && d.Props == nil
	for k, v := range raw {
		if k == "key" {
			continue
		}
		if allProps || d.declares(k) || isHandlerKey(k) {
			props[k] = v
		} else {
			attrs[k] = v
		}
	}
	for _, name := range d.Props {
		if _, ok := props[name]; !ok {
			props[name] = nil
		}
	}
	return props, attrs
}

// PropsView is a read-only view of an instance's props.
type PropsView struct {
	store *reactive.Store
}

// Get returns the prop value, tracked.
func (p PropsView) Get(name string) any {
	if p.store == nil {
		return nil
	}
	v, _ := p.store.Get(name)
	return v
}

// Lookup returns the prop value and whether it is set, tracked.
func (p PropsView) Lookup(name string) (any, bool) {
	if p.store == nil {
		return nil, false
	}
	return p.store.Get(name)
}

// Keys returns the sorted prop names.
func (p PropsView) Keys() []string {
	if p.store == nil {
		return nil
	}
	return p.store.Keys()
}

// SetupContext is passed to Setup.
type SetupContext struct {
	inst *Instance
}

// Instance returns the instance being set up.
func (c *SetupContext) Instance() *Instance { return c.inst }

// Attrs returns a copy of the instance's attrs.
func (c *SetupContext) Attrs() Props { return c.inst.Attrs() }

// Slots returns the slot content.
func (c *SetupContext) Slots() []*VNode { return c.inst.slots }

// Emit calls the parent's handler for event.
func (c *SetupContext) Emit(event string, args ...any) { c.inst.Emit(event, args...) }

// OnMounted registers fn to run after the instance is first mounted.
func (c *SetupContext) OnMounted(fn func()) {
	c.inst.mountedHooks = append(c.inst.mountedHooks, fn)
}

// OnUnmounted registers fn to run after the instance is torn down.
func (c *SetupContext) OnUnmounted(fn func()) {
	c.inst.unmountedHooks = append(c.inst.unmountedHooks, fn)
}
