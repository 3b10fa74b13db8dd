package vdom

import (
	"log/slog"
	"maps"
	"sync/atomic"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/reactive"
	"github.com/vango-dev/reconcile/pkg/scheduler"
)

var instanceID atomic.Uint64

// Instance is a mounted component.
type Instance struct {
	id     uint64
	def    *Definition
	r      *Renderer
	parent *Instance
	depth  int

	vnode   *VNode
	subTree *VNode
	slots   []*VNode

	state      *reactive.Store
	props      *reactive.Store
	attrs      Props
	setupState *reactive.Store

	render RenderFunc
	ctx    *RenderContext

	isMounted      bool
	isUnmounted    bool
	mountedHooks   []func()
	unmountedHooks []func()

	effect *reactive.Effect
	job    *scheduler.Job

	// container is where the instance was first mounted; re-renders fall
	// back to it when the subtree has no host node to navigate from.
	container Handle

	cache *cacheContext
}

// ID returns the instance identifier, unique within the process.
func (i *Instance) ID() uint64 { return i.id }

// Name returns the component name.
func (i *Instance) Name() string { return i.def.Name }

// Definition returns the component definition.
func (i *Instance) Definition() *Definition { return i.def }

// Parent returns the enclosing component instance, if any.
func (i *Instance) Parent() *Instance { return i.parent }

// IsMounted reports whether the first render has been patched in.
func (i *Instance) IsMounted() bool { return i.isMounted }

// State returns the instance's local state store. Functional components
// have none.
func (i *Instance) State() *reactive.Store { return i.state }

// Props returns a read-only view of the instance props.
func (i *Instance) Props() PropsView { return PropsView{store: i.props} }

// Attrs returns a copy of the attributes that are not props.
func (i *Instance) Attrs() Props { return maps.Clone(i.attrs) }

// SubTree returns the tree produced by the last render.
func (i *Instance) SubTree() *VNode { return i.subTree }

// Update schedules a re-render on the next flush.
func (i *Instance) Update() {
	if i.job != nil && !i.isUnmounted {
		i.r.sched.Enqueue(i.job)
	}
}

func (i *Instance) callHook(h Hook) {
	if h == nil {
		return
	}
	reactive.Untracked(func() { h(i) })
}

func (i *Instance) report(err *errors.Error) {
	i.r.report(err.WithComponent(i.def.Name))
}

// currentInstance is set only while a Setup function runs.
var currentInstance *Instance

// CurrentInstance returns the instance whose Setup is running, or nil.
func CurrentInstance() *Instance {
	return currentInstance
}

// OnMounted registers fn on the instance whose Setup is running.
func OnMounted(fn func()) {
	inst := currentInstance
	if inst == nil {
		warnOutsideSetup("OnMounted")
		return
	}
	inst.mountedHooks = append(inst.mountedHooks, fn)
}

// OnUnmounted registers fn on the instance whose Setup is running.
func OnUnmounted(fn func()) {
	inst := currentInstance
	if inst == nil {
		warnOutsideSetup("OnUnmounted")
		return
	}
	inst.unmountedHooks = append(inst.unmountedHooks, fn)
}

func warnOutsideSetup(hook string) {
	err := errors.New("R005").WithDetail(hook)
	slog.Default().Warn(err.Message, err.LogAttrs()...)
}

func (r *Renderer) processComponent(old, next *VNode, container, anchor Handle, parent *Instance) {
	if old != nil {
		r.updateComponent(old, next)
		return
	}
	if next.restorable && next.keepAlive != nil {
		next.keepAlive.activate(next, container, anchor)
		return
	}
	r.mountComponent(next, container, anchor, parent)
}

func (r *Renderer) mountComponent(v *VNode, container, anchor Handle, parent *Instance) {
	def := v.Comp
	if def == nil {
		def = Functional("", nil)
		v.Comp = def
	}

	inst := &Instance{
		id:        instanceID.Add(1),
		def:       def,
		r:         r,
		parent:    parent,
		vnode:     v,
		slots:     v.Children,
		container: container,
	}
	if parent != nil {
		inst.depth = parent.depth + 1
	}
	v.instance = inst

	inst.callHook(def.BeforeCreate)

	if def.State != nil && !def.functional {
		var initial map[string]any
		reactive.Untracked(func() { initial = def.State() })
		inst.state = reactive.NewStore(initial)
	}
	props, attrs := def.splitAttrs(v.Props)
	inst.props = reactive.NewStore(props)
	inst.attrs = attrs

	if def.keepAlive {
		inst.cache = newCacheContext(r, inst)
	}

	inst.render = def.Render
	r.setupComponent(inst)
	if inst.render == nil {
		inst.report(errors.New("R008"))
	}
	inst.ctx = &RenderContext{inst: inst}

	inst.callHook(def.Created)

	r.setupRenderEffect(inst, container, anchor)
}

// setupComponent runs Setup with inst installed as the current instance.
func (r *Renderer) setupComponent(inst *Instance) {
	def := inst.def
	if def.Setup == nil || def.functional {
		return
	}

	var result SetupResult
	func() {
		prev := currentInstance
		currentInstance = inst
		defer func() { currentInstance = prev }()
		reactive.Untracked(func() {
			result = def.Setup(inst.Props(), &SetupContext{inst: inst})
		})
	}()

	if result.Render != nil {
		if def.Render != nil {
			inst.report(errors.New("R001"))
		}
		inst.render = result.Render
	}
	if result.State != nil {
		inst.setupState = reactive.NewStore(result.State)
	}
}

func (r *Renderer) setupRenderEffect(inst *Instance, container, anchor Handle) {
	name := inst.def.Name
	if name == "" {
		name = "component"
	}
	inst.job = scheduler.NewJob(func() {
		if inst.effect.Active() {
			inst.effect.Run()
		}
	}).WithName(name).WithDepth(inst.depth)

	inst.effect = reactive.NewEffect(func() {
		r.renderComponent(inst, container, anchor)
	}, reactive.WithScheduler(func() {
		r.sched.Enqueue(inst.job)
	}), reactive.Lazy())
	inst.effect.Run()
}

// renderComponent is the render effect body. The render call is tracked,
// everything else runs untracked.
func (r *Renderer) renderComponent(inst *Instance, container, anchor Handle) {
	tree := r.renderRoot(inst)

	reactive.Untracked(func() {
		if !inst.isMounted {
			inst.callHook(inst.def.BeforeMount)
			r.patch(nil, tree, container, anchor, inst)
			inst.subTree = tree
			inst.vnode.Handle = firstHandle(tree)
			inst.isMounted = true
			r.metrics.InstanceMounted()

			inst.callHook(inst.def.Mounted)
			for _, fn := range inst.mountedHooks {
				fn()
			}
			return
		}

		inst.callHook(inst.def.BeforeUpdate)
		prev := inst.subTree
		r.patch(prev, tree, r.hostParent(inst), r.nextSibling(prev), inst)
		inst.subTree = tree
		inst.vnode.Handle = firstHandle(tree)
		inst.callHook(inst.def.Updated)
	})
}

// hostParent returns the container the instance's subtree currently lives in.
func (r *Renderer) hostParent(inst *Instance) Handle {
	if h := firstHandle(inst.subTree); h != nil {
		if p := r.host.ParentNode(h); p != nil {
			return p
		}
	}
	return inst.container
}

// renderRoot calls the render function and applies attribute fallthrough.
// An empty render becomes an empty text node so the instance always has a
// host position.
func (r *Renderer) renderRoot(inst *Instance) *VNode {
	var tree *VNode
	if inst.render != nil {
		tree = inst.render(inst.ctx)
	}
	if tree == nil {
		return Text("")
	}
	if len(inst.attrs) > 0 && !inst.def.DisableAttrFallthrough && tree.Kind == KindElement {
		tree = withAttrs(tree, inst.attrs)
	}
	return tree
}

// withAttrs returns a shallow copy of el with attrs merged over its props.
func withAttrs(el *VNode, attrs Props) *VNode {
	clone := *el
	clone.Props = make(Props, len(el.Props)+len(attrs))
	maps.Copy(clone.Props, el.Props)
	maps.Copy(clone.Props, attrs)
	return &clone
}

// updateComponent hands next to the instance mounted for old. Props are
// written into the existing store, so the child re-renders only if it read
// something that changed, or if its attrs or slots changed.
func (r *Renderer) updateComponent(old, next *VNode) {
	inst := old.instance
	next.instance = inst
	next.Handle = old.Handle
	if inst == nil {
		return
	}
	inst.vnode = next

	slotsDiffer := slotsChanged(inst.slots, next.Children)
	if !propsChanged(old.Props, next.Props) && !slotsDiffer {
		return
	}

	props, attrs := inst.def.splitAttrs(next.Props)
	reactive.Batch(func() {
		for k, v := range props {
			inst.props.Set(k, v)
		}
		for k := range inst.props.Snapshot() {
			if _, ok := props[k]; !ok {
				inst.props.Delete(k)
			}
		}
	})

	attrsChanged := propsChanged(inst.attrs, attrs)
	inst.attrs = attrs
	inst.slots = next.Children

	if attrsChanged || slotsDiffer {
		r.sched.Enqueue(inst.job)
	}
}

// slotsChanged compares slot lists by node identity. Freshly built slot
// nodes always count as a change.
func slotsChanged(prev, next []*VNode) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range next {
		if prev[i] != next[i] {
			return true
		}
	}
	return false
}

// propsChanged is a shallow comparison: key count, then identity per key.
func propsChanged(prev, next Props) bool {
	if len(prev) != len(next) {
		return true
	}
	for k, v := range next {
		pv, ok := prev[k]
		if !ok || !reactive.Same(pv, v) {
			return true
		}
	}
	return false
}

func (r *Renderer) unmountComponent(inst *Instance, doRemove bool) {
	if inst.isUnmounted {
		return
	}
	inst.callHook(inst.def.BeforeUnmount)

	if inst.cache != nil {
		inst.cache.teardown()
	}
	if inst.effect != nil {
		inst.effect.Stop()
	}
	r.unmount(inst.subTree, doRemove)

	wasMounted := inst.isMounted
	inst.isMounted = false
	inst.isUnmounted = true

	inst.callHook(inst.def.Unmounted)
	for _, fn := range inst.unmountedHooks {
		fn()
	}
	if wasMounted {
		r.metrics.InstanceUnmounted()
	}
}
