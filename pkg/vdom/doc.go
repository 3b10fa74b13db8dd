// Package vdom reconciles trees of virtual nodes against a stateful host tree.
//
// A Renderer owns a Host (the platform adapter that creates, inserts and
// removes real nodes) and patches each new VNode tree against the previous
// one, issuing the smallest set of host mutations it can find.
//
// # Core Types
//
// VNode describes elements, text, fragments, portals and components. Props
// holds element properties and component attributes. Definition describes a
// component: its declared props, local state, setup function, render
// function and lifecycle hooks.
//
// # Building Trees
//
//	El("ul", Class("list"),
//	    Keyed("a", El("li", "A")),
//	    Keyed("b", El("li", "B")),
//	)
//
// # Keyed Reconciliation
//
// Children lists that carry keys are reconciled in five phases: common
// prefix, common suffix, pure append, pure removal, and a general case that
// moves only the nodes outside the longest increasing subsequence of
// surviving old positions.
//
// # Components
//
// Each mounted component has an Instance whose render runs inside a reactive
// effect. State writes schedule the instance job on the Renderer's
// scheduler; parent re-renders update props in place and only schedule the
// child when something it reads changed.
//
// # Structural Components
//
// Portal mounts its children into a different host container. KeepAlive
// caches component instances so that switching away and back restores them
// with their state instead of creating new ones.
package vdom
