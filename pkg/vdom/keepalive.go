package vdom

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// KeepAlive renders its first slot child and keeps the instances of
// previously shown component children alive in a detached container, so
// switching back restores them with their state.
//
// Props:
//   - include, exclude: component names to cache or skip; a comma separated
//     string, a []string, a *regexp.Regexp or a func(string) bool
//   - max: cache at most this many instances, evicting the least recently
//     shown
//   - policy: a custom EvictionPolicy, overriding max
//
// max and policy are read on the first render. Unnamed components are never
// cached.
var KeepAlive = &Definition{
	Name:  "KeepAlive",
	Props: []string{"include", "exclude", "max", "policy"},
	Setup: func(_ PropsView, ctx *SetupContext) SetupResult {
		return SetupResult{Render: ctx.Instance().cache.render}
	},
	keepAlive: true,
}

// cacheContext is the state of one KeepAlive instance.
type cacheContext struct {
	r       *Renderer
	owner   *Instance
	storage Handle

	entries map[*Definition]*VNode
	order   []*Definition
	policy  EvictionPolicy

	// current is the child node from the last render.
	current *VNode
}

func newCacheContext(r *Renderer, owner *Instance) *cacheContext {
	return &cacheContext{
		r:       r,
		owner:   owner,
		storage: r.createElement("div"),
		entries: make(map[*Definition]*VNode),
	}
}

func (c *cacheContext) render(ctx *RenderContext) *VNode {
	props := ctx.Props()
	c.configure(props)
	include, exclude := props.Get("include"), props.Get("exclude")
	c.prune(include, exclude)

	slots := ctx.Slots()
	if len(slots) == 0 {
		c.current = nil
		return nil
	}
	child := slots[0]
	if child.Kind != KindComponent || child.Comp == nil || !accepts(child.Comp.Name, include, exclude) {
		child.persistent = false
		child.keepAlive = nil
		c.current = nil
		return child
	}

	def := child.Comp
	cached, ok := c.entries[def]
	switch {
	case ok && cached.instance != nil && !cached.instance.isUnmounted:
		child.instance = cached.instance
		child.restorable = true
		c.policy.Touched(def)
		c.r.metrics.Cache("hit")
	case ok:
		c.policy.Touched(def)
	default:
		c.order = append(c.order, def)
		c.policy.Added(def)
		c.r.metrics.Cache("miss")
	}
	c.entries[def] = child
	child.persistent = true
	child.keepAlive = c

	c.evict(child)
	c.current = child
	return child
}

func (c *cacheContext) configure(props PropsView) {
	if c.policy != nil {
		return
	}
	if p, ok := props.Get("policy").(EvictionPolicy); ok && p != nil {
		c.policy = p
		return
	}
	// Declared props are always present in the store, nil when not passed.
	n := c.r.cacheMax
	if m := props.Get("max"); m != nil {
		n = toInt(m)
	}
	if n > 0 {
		c.policy = OldestUntouched(n)
		return
	}
	c.policy = Unbounded()
}

// evict drops entries until the policy is satisfied. It runs before current
// is updated, so current still names the child on screen.
func (c *cacheContext) evict(incoming *VNode) {
	for {
		victim := c.policy.Victim(len(c.entries))
		if victim == nil || !c.drop(victim, incoming) {
			return
		}
	}
}

// prune drops entries whose names no longer pass include/exclude.
func (c *cacheContext) prune(include, exclude any) {
	for _, def := range slices.Clone(c.order) {
		if !accepts(def.Name, include, exclude) {
			c.drop(def, nil)
		}
	}
}

// drop removes def from the cache. The instance on screen stays mounted and
// is destroyed by its normal unmount; any other cached instance is torn down
// now.
func (c *cacheContext) drop(def *Definition, incoming *VNode) bool {
	v, ok := c.entries[def]
	if !ok {
		c.policy.Removed(def)
		return false
	}
	delete(c.entries, def)
	if i := slices.Index(c.order, def); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	c.policy.Removed(def)
	c.r.metrics.Cache("evict")

	v.persistent = false
	v.keepAlive = nil
	inst := v.instance

	if shown := c.current; shown != nil && inst != nil && shown.instance == inst {
		shown.persistent = false
		shown.keepAlive = nil
		return true
	}
	if v == incoming {
		if !v.restorable {
			return true
		}
		v.restorable = false
		v.instance = nil
	}
	if inst != nil {
		c.r.unmountComponent(inst, true)
	}
	return true
}

// deactivate parks v's host nodes in the storage container.
func (c *cacheContext) deactivate(v *VNode) {
	inst := v.instance
	if inst == nil {
		return
	}
	c.r.move(v, c.storage, nil)
	inst.callHook(inst.def.Deactivated)
}

// activate moves a cached instance back into container and hands it the
// props of v.
func (c *cacheContext) activate(v *VNode, container, anchor Handle) {
	inst := v.instance
	c.r.move(v, container, anchor)
	c.r.updateComponent(inst.vnode, v)
	v.restorable = false
	inst.callHook(inst.def.Activated)
}

// teardown destroys every cached instance except the one on screen, which
// the owner unmounts with its subtree.
func (c *cacheContext) teardown() {
	shown := c.current
	if shown != nil {
		shown.persistent = false
		shown.keepAlive = nil
	}
	for _, def := range c.order {
		v := c.entries[def]
		v.persistent = false
		v.keepAlive = nil
		if v.instance == nil || (shown != nil && v.instance == shown.instance) {
			continue
		}
		c.r.unmountComponent(v.instance, true)
	}
	c.entries = make(map[*Definition]*VNode)
	c.order = nil
}

func accepts(name string, include, exclude any) bool {
	if name == "" {
		return false
	}
	if !isEmptyPattern(include) && !matchName(include, name) {
		return false
	}
	if !isEmptyPattern(exclude) && matchName(exclude, name) {
		return false
	}
	return true
}

func isEmptyPattern(p any) bool {
	switch v := p.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case *regexp.Regexp:
		return v == nil
	}
	return false
}

func matchName(pattern any, name string) bool {
	switch p := pattern.(type) {
	case string:
		for _, part := range strings.Split(p, ",") {
			if strings.TrimSpace(part) == name {
				return true
			}
		}
	case []string:
		return slices.Contains(p, name)
	case []any:
		for _, v := range p {
			if s, ok := v.(string); ok && s == name {
				return true
			}
		}
	case *regexp.Regexp:
		return p.MatchString(name)
	case func(string) bool:
		return p(name)
	}
	return false
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}
