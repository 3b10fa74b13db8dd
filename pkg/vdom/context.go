package vdom

import (
	"github.com/vango-dev/reconcile/internal/errors"
)

// Source says where a render-context name resolved.
type Source uint8

const (
	SourceNone Source = iota
	SourceState
	SourceProps
	SourceSetup
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceState:
		return "state"
	case SourceProps:
		return "props"
	case SourceSetup:
		return "setup"
	default:
		return "none"
	}
}

// RenderContext resolves names for a render function: local state first,
// then props, then setup state.
type RenderContext struct {
	inst *Instance
}

// Instance returns the instance being rendered.
func (c *RenderContext) Instance() *Instance { return c.inst }

// Lookup resolves name and reads it, tracked. It reports where the name was
// found; SourceNone means nowhere.
func (c *RenderContext) Lookup(name string) (any, Source) {
	inst := c.inst
	if inst.state != nil {
		if _, ok := inst.state.Peek(name); ok {
			v, _ := inst.state.Get(name)
			return v, SourceState
		}
	}
	if _, ok := inst.props.Peek(name); ok {
		v, _ := inst.props.Get(name)
		return v, SourceProps
	}
	if inst.setupState != nil {
		if _, ok := inst.setupState.Peek(name); ok {
			v, _ := inst.setupState.Get(name)
			return v, SourceSetup
		}
	}
	return nil, SourceNone
}

// Get returns the value bound to name, or nil with an R002 diagnostic.
func (c *RenderContext) Get(name string) any {
	v, src := c.Lookup(name)
	if src == SourceNone {
		c.inst.report(errors.New("R002").WithDetail(name))
	}
	return v
}

// Set writes name into local state or setup state, wherever it is bound.
// Props are read-only (R004); unknown names are rejected (R002).
func (c *RenderContext) Set(name string, value any) bool {
	inst := c.inst
	if inst.state != nil {
		if _, ok := inst.state.Peek(name); ok {
			inst.state.Set(name, value)
			return true
		}
	}
	if _, ok := inst.props.Peek(name); ok {
		inst.report(errors.New("R004").WithDetail(name))
		return false
	}
	if inst.setupState != nil {
		if _, ok := inst.setupState.Peek(name); ok {
			inst.setupState.Set(name, value)
			return true
		}
	}
	inst.report(errors.New("R002").WithDetail(name))
	return false
}

// Props returns a read-only view of the props.
func (c *RenderContext) Props() PropsView { return c.inst.Props() }

// Attrs returns a copy of the attrs.
func (c *RenderContext) Attrs() Props { return c.inst.Attrs() }

// Slots returns the slot content passed by the parent.
func (c *RenderContext) Slots() []*VNode { return c.inst.slots }

// Emit calls the parent's handler for event.
func (c *RenderContext) Emit(event string, args ...any) { c.inst.Emit(event, args...) }

// Value returns the value bound to name as T, or the zero value when the
// name is unbound or holds another type.
func Value[T any](c *RenderContext, name string) T {
	v, _ := c.Get(name).(T)
	return v
}
