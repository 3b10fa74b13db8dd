package vdom

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func counterDef(renders *int) *Definition {
	return &Definition{
		Name:  "Counter",
		Props: []string{"label"},
		State: func() map[string]any { return map[string]any{"count": 0} },
		Render: func(ctx *RenderContext) *VNode {
			*renders++
			return TextEl("span", fmt.Sprintf("%v:%d", ctx.Get("label"), Value[int](ctx, "count")))
		},
	}
}

func TestComponentStateUpdateIsScheduled(t *testing.T) {
	renders := 0
	h := newHarness(t)
	v := Comp(counterDef(&renders), Props{"label": "n"})
	h.render(v)
	h.expectHTML("<span>n:0</span>")

	inst := v.Instance()
	if inst == nil || !inst.IsMounted() {
		t.Fatal("component instance not mounted")
	}
	inst.State().Set("count", 1)
	inst.State().Set("count", 2)
	h.expectHTML("<span>n:0</span>")

	h.flush()
	h.expectHTML("<span>n:2</span>")
	if renders != 2 {
		t.Errorf("renders = %d, want 2", renders)
	}
}

func TestPropsPassivity(t *testing.T) {
	childRenders := 0
	child := counterDef(&childRenders)

	parentRenders := 0
	parent := &Definition{
		Name:  "Parent",
		State: func() map[string]any { return map[string]any{"tick": 0, "label": "x"} },
		Render: func(ctx *RenderContext) *VNode {
			parentRenders++
			return El("div",
				TextEl("b", fmt.Sprint(ctx.Get("tick"))),
				Comp(child, Props{"label": ctx.Get("label")}),
			)
		},
	}

	h := newHarness(t)
	v := Comp(parent, nil)
	h.render(v)
	state := v.Instance().State()

	state.Set("tick", 1)
	h.flush()
	h.expectHTML("<div><b>1</b><span>x:0</span></div>")
	if parentRenders != 2 || childRenders != 1 {
		t.Errorf("renders parent=%d child=%d, want 2 and 1", parentRenders, childRenders)
	}

	state.Set("label", "y")
	h.flush()
	h.expectHTML("<div><b>1</b><span>y:0</span></div>")
	if parentRenders != 3 || childRenders != 2 {
		t.Errorf("renders parent=%d child=%d, want 3 and 2", parentRenders, childRenders)
	}
}

func TestLifecycleOrder(t *testing.T) {
	var log []string
	hooks := func(name string, d *Definition) *Definition {
		rec := func(event string) Hook {
			return func(*Instance) { log = append(log, name+":"+event) }
		}
		d.Name = name
		d.BeforeCreate = rec("beforeCreate")
		d.Created = rec("created")
		d.BeforeMount = rec("beforeMount")
		d.Mounted = rec("mounted")
		d.BeforeUpdate = rec("beforeUpdate")
		d.Updated = rec("updated")
		d.BeforeUnmount = rec("beforeUnmount")
		d.Unmounted = rec("unmounted")
		d.Setup = func(_ PropsView, ctx *SetupContext) SetupResult {
			log = append(log, name+":setup")
			OnMounted(func() { log = append(log, name+":onMounted") })
			ctx.OnUnmounted(func() { log = append(log, name+":onUnmounted") })
			return SetupResult{}
		}
		return d
	}

	child := hooks("child", &Definition{
		Render: func(*RenderContext) *VNode { return TextEl("i", "c") },
	})
	parent := hooks("parent", &Definition{
		State: func() map[string]any { return map[string]any{"n": 0} },
		Render: func(ctx *RenderContext) *VNode {
			return El("div", Textf("%d", ctx.Get("n")), Comp(child, nil))
		},
	})

	h := newHarness(t)
	v := Comp(parent, nil)
	h.render(v)
	want := []string{
		"parent:beforeCreate", "parent:setup", "parent:created",
		"parent:beforeMount",
		"child:beforeCreate", "child:setup", "child:created",
		"child:beforeMount", "child:mounted", "child:onMounted",
		"parent:mounted", "parent:onMounted",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("mount order (-want +got):\n%s", diff)
	}

	log = nil
	v.Instance().State().Set("n", 1)
	h.flush()
	if diff := cmp.Diff([]string{"parent:beforeUpdate", "parent:updated"}, log); diff != "" {
		t.Errorf("update order (-want +got):\n%s", diff)
	}

	log = nil
	h.r.Unmount(h.root)
	want = []string{
		"parent:beforeUnmount",
		"child:beforeUnmount", "child:unmounted", "child:onUnmounted",
		"parent:unmounted", "parent:onUnmounted",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("unmount order (-want +got):\n%s", diff)
	}
	if CurrentInstance() != nil {
		t.Error("current instance leaked past setup")
	}
}

func TestUnmountedComponentIgnoresState(t *testing.T) {
	renders := 0
	h := newHarness(t)
	v := Comp(counterDef(&renders), Props{"label": "n"})
	h.render(v)
	inst := v.Instance()

	h.r.Unmount(h.root)
	inst.State().Set("count", 9)
	h.flush()

	if renders != 1 {
		t.Errorf("renders = %d after unmount, want 1", renders)
	}
}

func TestHookOutsideSetupWarns(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	called := false
	OnMounted(func() { called = true })

	if !strings.Contains(buf.String(), "R005") {
		t.Errorf("log = %q, want R005", buf.String())
	}
	if called {
		t.Error("hook registered outside setup ran")
	}
}

func TestSetupPanicClearsCurrentInstance(t *testing.T) {
	var during *Instance
	def := &Definition{
		Name: "Faulty",
		Setup: func(_ PropsView, _ *SetupContext) SetupResult {
			during = CurrentInstance()
			panic("setup failed")
		},
	}

	h := newHarness(t)
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Render did not panic")
			}
		}()
		h.render(Comp(def, nil))
	}()

	if during == nil || during.Name() != "Faulty" {
		t.Errorf("CurrentInstance() during Setup = %v, want the Faulty instance", during)
	}
	if got := CurrentInstance(); got != nil {
		t.Errorf("CurrentInstance() after panic = %v, want nil", got)
	}
}

func TestRenderContextResolution(t *testing.T) {
	var ctx *RenderContext
	def := &Definition{
		Name:  "Resolver",
		Props: []string{"shared", "title"},
		State: func() map[string]any { return map[string]any{"shared": "state"} },
		Setup: func(PropsView, *SetupContext) SetupResult {
			return SetupResult{State: map[string]any{"title": "setup", "extra": "setup"}}
		},
		Render: func(c *RenderContext) *VNode {
			ctx = c
			return Text("x")
		},
	}

	h := newHarness(t)
	h.render(Comp(def, Props{"shared": "prop", "title": "prop"}))

	tests := []struct {
		name  string
		value any
		src   Source
	}{
		{"shared", "state", SourceState},
		{"title", "prop", SourceProps},
		{"extra", "setup", SourceSetup},
		{"missing", nil, SourceNone},
	}
	for _, tt := range tests {
		v, src := ctx.Lookup(tt.name)
		if v != tt.value || src != tt.src {
			t.Errorf("Lookup(%q) = %v, %v; want %v, %v", tt.name, v, src, tt.value, tt.src)
		}
	}

	if ctx.Get("missing") != nil {
		t.Error("Get(missing) returned a value")
	}
	if ctx.Set("title", "changed") {
		t.Error("Set on a prop succeeded")
	}
	if !ctx.Set("shared", "new") || !ctx.Set("extra", "new") {
		t.Error("Set on state failed")
	}
	if ctx.Set("nowhere", 1) {
		t.Error("Set on unknown name succeeded")
	}
	if diff := cmp.Diff([]string{"R002", "R004", "R002"}, h.codes()); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
}

func TestSetupRenderWinsOverStaticRender(t *testing.T) {
	def := &Definition{
		Name:   "Both",
		Render: func(*RenderContext) *VNode { return Text("static") },
		Setup: func(PropsView, *SetupContext) SetupResult {
			return SetupResult{Render: func(*RenderContext) *VNode { return Text("setup") }}
		},
	}

	h := newHarness(t)
	h.render(Comp(def, nil))

	h.expectHTML("setup")
	if diff := cmp.Diff([]string{"R001"}, h.codes()); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
}

func TestComponentWithoutRender(t *testing.T) {
	h := newHarness(t)
	h.render(El("div", Comp(&Definition{Name: "Empty"}, nil), TextEl("b", "after")))

	h.expectHTML("<div><b>after</b></div>")
	if diff := cmp.Diff([]string{"R008"}, h.codes()); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
}

func TestEmit(t *testing.T) {
	var got []any
	child := &Definition{
		Name:   "Input",
		Props:  []string{"value"},
		Render: func(ctx *RenderContext) *VNode { return El("input", A("value", ctx.Get("value"))) },
	}

	h := newHarness(t)
	v := Comp(child, Props{
		"value":    "a",
		"onChange": func(s string) { got = append(got, s) },
		"onSubmit": func() { got = append(got, "submit") },
		"onPair":   func(a string, b int) { got = append(got, a, b) },
	})
	h.render(v)
	inst := v.Instance()

	inst.Emit("change", "b")
	inst.Emit("submit")
	inst.Emit("pair", "p", 2)
	inst.Emit("pair", "only one")
	inst.Emit("missing")

	if diff := cmp.Diff([]any{"b", "submit", "p", 2}, got); diff != "" {
		t.Errorf("handler calls (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"R009", "R003"}, h.codes()); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
	if _, ok := inst.Attrs()["onChange"]; ok {
		t.Error("event handler landed in attrs")
	}
}

func TestAttrsFallthrough(t *testing.T) {
	button := &Definition{
		Name:   "Button",
		Props:  []string{"label"},
		Render: func(ctx *RenderContext) *VNode { return TextEl("button", Value[string](ctx, "label")) },
	}

	h := newHarness(t)
	h.render(Comp(button, Props{"label": "ok", "class": "primary", "id": "b1"}))
	h.expectHTML(`<button class="primary" id="b1">ok</button>`)

	h.render(Comp(button, Props{"label": "ok", "class": "secondary", "id": "b1"}))
	h.expectHTML(`<button class="primary" id="b1">ok</button>`)
	h.flush()
	h.expectHTML(`<button class="secondary" id="b1">ok</button>`)

	closed := &Definition{
		Name:                   "Closed",
		DisableAttrFallthrough: true,
		Render:                 func(*RenderContext) *VNode { return El("span") },
	}
	h2 := newHarness(t)
	h2.render(Comp(closed, Props{"class": "x"}))
	h2.expectHTML("<span></span>")
}

func TestFunctionalComponentTakesAllProps(t *testing.T) {
	greet := Functional("Greet", func(ctx *RenderContext) *VNode {
		return TextEl("p", fmt.Sprintf("%v %v", ctx.Get("greeting"), ctx.Get("name")))
	})

	h := newHarness(t)
	v := Comp(greet, Props{"greeting": "hi", "name": "ada"})
	h.render(v)
	h.expectHTML("<p>hi ada</p>")

	if v.Instance().State() != nil {
		t.Error("functional component has state")
	}
	if len(v.Instance().Attrs()) != 0 {
		t.Errorf("Attrs() = %v, want none", v.Instance().Attrs())
	}

	h.render(Comp(greet, Props{"greeting": "bye", "name": "ada"}))
	h.flush()
	h.expectHTML("<p>bye ada</p>")
}

func TestRemovedPropsReset(t *testing.T) {
	def := &Definition{
		Name:  "Opt",
		Props: []string{"title"},
		Render: func(ctx *RenderContext) *VNode {
			_, hasHandler := ctx.Props().Lookup("onPick")
			return TextEl("p", fmt.Sprintf("%v/%v", ctx.Get("title"), hasHandler))
		},
	}

	h := newHarness(t)
	h.render(Comp(def, Props{"title": "t", "onPick": func() {}}))
	h.expectHTML("<p>t/true</p>")

	h.render(Comp(def, nil))
	h.flush()
	h.expectHTML("<p><nil>/false</p>")
}

func TestSlotsForceUpdate(t *testing.T) {
	wrapperRenders := 0
	wrapper := &Definition{
		Name: "Wrapper",
		Render: func(ctx *RenderContext) *VNode {
			wrapperRenders++
			return El("section", ctx.Slots())
		},
	}

	h := newHarness(t)
	h.render(Comp(wrapper, nil, TextEl("p", "one")))
	h.expectHTML("<section><p>one</p></section>")

	h.render(Comp(wrapper, nil, TextEl("p", "two")))
	h.flush()
	h.expectHTML("<section><p>two</p></section>")
	if wrapperRenders != 2 {
		t.Errorf("renders = %d, want 2", wrapperRenders)
	}
}

func TestIdenticalSlotsStayPassive(t *testing.T) {
	wrapperRenders := 0
	wrapper := &Definition{
		Name: "Wrapper",
		Render: func(ctx *RenderContext) *VNode {
			wrapperRenders++
			return El("section", ctx.Slots())
		},
	}
	slot := TextEl("p", "one")

	h := newHarness(t)
	h.render(Comp(wrapper, Props{"id": "w"}, slot))
	h.render(Comp(wrapper, Props{"id": "w"}, slot))
	h.flush()

	h.expectHTML(`<section id="w"><p>one</p></section>`)
	if wrapperRenders != 1 {
		t.Errorf("renders = %d after repeating the same slot, want 1", wrapperRenders)
	}

	h.render(Comp(wrapper, Props{"id": "w"}, slot, TextEl("p", "two")))
	h.flush()
	h.expectHTML(`<section id="w"><p>one</p><p>two</p></section>`)
	if wrapperRenders != 2 {
		t.Errorf("renders = %d after adding a slot, want 2", wrapperRenders)
	}
}

func TestComponentRootChangeKeepsPosition(t *testing.T) {
	sw := &Definition{
		Name:  "Switch",
		State: func() map[string]any { return map[string]any{"big": false} },
		Render: func(ctx *RenderContext) *VNode {
			if Value[bool](ctx, "big") {
				return TextEl("h1", "x")
			}
			return TextEl("p", "x")
		},
	}

	h := newHarness(t)
	v := Comp(sw, nil)
	h.render(El("div", TextEl("b", "before"), v, TextEl("b", "after")))

	v.Instance().State().Set("big", true)
	h.flush()

	h.expectHTML("<div><b>before</b><h1>x</h1><b>after</b></div>")
}

func TestKeyedComponentsMoveWithoutRemount(t *testing.T) {
	mounts := 0
	item := &Definition{
		Name:    "Item",
		Props:   []string{"text"},
		Mounted: func(*Instance) { mounts++ },
		Render:  func(ctx *RenderContext) *VNode { return TextEl("li", Value[string](ctx, "text")) },
	}
	items := func(keys ...string) *VNode {
		var children []*VNode
		for _, k := range keys {
			children = append(children, Comp(item, Props{"key": k, "text": k}))
		}
		return El("ul", children)
	}

	h := newHarness(t)
	h.render(items("a", "b", "c"))
	h.render(items("c", "a", "b"))
	h.flush()

	h.expectHTML("<ul><li>c</li><li>a</li><li>b</li></ul>")
	if mounts != 3 {
		t.Errorf("mounts = %d, want 3", mounts)
	}
}

func TestComponentTypeChange(t *testing.T) {
	var log []string
	mk := func(name string) *Definition {
		return &Definition{
			Name:      name,
			Render:    func(*RenderContext) *VNode { return TextEl("p", name) },
			Unmounted: func(*Instance) { log = append(log, name+":unmounted") },
			Mounted:   func(*Instance) { log = append(log, name+":mounted") },
		}
	}
	a, b := mk("A"), mk("B")

	h := newHarness(t)
	h.render(El("div", Comp(a, nil), TextEl("i", "tail")))
	h.render(El("div", Comp(b, nil), TextEl("i", "tail")))

	h.expectHTML("<div><p>B</p><i>tail</i></div>")
	if diff := cmp.Diff([]string{"A:mounted", "A:unmounted", "B:mounted"}, log); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDepthOrderedFlush(t *testing.T) {
	run := func(opts ...Option) []string {
		var order []string
		child := &Definition{
			Name:  "Child",
			State: func() map[string]any { return map[string]any{"n": 0} },
			Render: func(ctx *RenderContext) *VNode {
				order = append(order, "child")
				return Textf("%d", ctx.Get("n"))
			},
		}
		parent := &Definition{
			Name:  "Parent",
			State: func() map[string]any { return map[string]any{"n": 0} },
			Render: func(ctx *RenderContext) *VNode {
				order = append(order, "parent")
				return El("div", Textf("%d", ctx.Get("n")), Comp(child, nil))
			},
		}

		h := newHarness(t, opts...)
		v := Comp(parent, nil)
		h.render(v)
		order = nil

		childInst := v.Instance().SubTree().Children[1].Instance()
		childInst.State().Set("n", 1)
		v.Instance().State().Set("n", 1)
		h.flush()
		return order
	}

	if diff := cmp.Diff([]string{"child", "parent"}, run()); diff != "" {
		t.Errorf("insertion order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"parent", "child"}, run(WithDepthOrder())); diff != "" {
		t.Errorf("depth order (-want +got):\n%s", diff)
	}
}

func TestPanickingRenderIsReported(t *testing.T) {
	def := &Definition{
		Name:  "Boom",
		State: func() map[string]any { return map[string]any{"fail": false} },
		Render: func(ctx *RenderContext) *VNode {
			if Value[bool](ctx, "fail") {
				panic("boom")
			}
			return Text("ok")
		},
	}

	h := newHarness(t)
	v := Comp(def, nil)
	h.render(v)
	v.Instance().State().Set("fail", true)
	h.flush()

	if diff := cmp.Diff([]string{"R006"}, h.codes()); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
	h.expectHTML("ok")
}
