package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/reconcile/pkg/vtest"
)

func TestPortalMountsIntoTarget(t *testing.T) {
	h := newHarness(t)
	overlay := h.host.NewRoot("overlay")
	h.r.Render(El("div", ID("modal")), overlay)

	h.render(El("main", Portal("#modal", TextEl("p", "hi")), TextEl("b", "body")))

	h.expectHTML("<main><b>body</b></main>")
	if got := overlay.HTML(); got != `<div id="modal"><p>hi</p></div>` {
		t.Errorf("overlay HTML = %q", got)
	}

	h.render(El("main", Portal("#modal", TextEl("p", "bye")), TextEl("b", "body")))
	if got := overlay.HTML(); got != `<div id="modal"><p>bye</p></div>` {
		t.Errorf("overlay HTML after update = %q", got)
	}

	h.r.Unmount(h.root)
	if got := overlay.HTML(); got != `<div id="modal"></div>` {
		t.Errorf("overlay HTML after unmount = %q", got)
	}
}

func TestPortalMissingTargetMountsInPlace(t *testing.T) {
	h := newHarness(t)
	h.render(El("main", Portal("#nowhere", TextEl("p", "x"))))

	h.expectHTML("<main><p>x</p></main>")
	if diff := cmp.Diff([]string{"R007"}, h.codes()); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
}

func TestPortalTargetChangeMovesChildren(t *testing.T) {
	h := newHarness(t)
	first := h.host.NewRoot("first")
	second := h.host.NewRoot("second")

	h.render(El("main", Portal(first, TextEl("p", "a"), TextEl("p", "b"))))
	h.host.Reset()

	h.render(El("main", Portal(second, TextEl("p", "a"), TextEl("p", "b"))))

	if first.HTML() != "" || second.HTML() != "<p>a</p><p>b</p>" {
		t.Errorf("first = %q, second = %q", first.HTML(), second.HTML())
	}
	if got := h.host.Count(vtest.OpMove); got != 2 {
		t.Errorf("moves = %d, want 2: %v", got, h.host.OpStrings())
	}
	if got := h.host.Count(vtest.OpCreate, vtest.OpRemove); got != 0 {
		t.Errorf("portal children were recreated: %v", h.host.OpStrings())
	}
}

func TestPortalIsNotMovedWithSiblings(t *testing.T) {
	h := newHarness(t)
	target := h.host.NewRoot("target")

	h.render(El("ul",
		Keyed("p", Portal(target, TextEl("p", "out"))),
		Keyed("a", TextEl("li", "a")),
	))
	h.host.Reset()

	h.render(El("ul",
		Keyed("a", TextEl("li", "a")),
		Keyed("p", Portal(target, TextEl("p", "out"))),
	))

	h.expectHTML("<ul><li>a</li></ul>")
	if got := target.HTML(); got != "<p>out</p>" {
		t.Errorf("target HTML = %q", got)
	}
	for _, op := range h.host.Filter(vtest.OpMove) {
		if op.Target == "p(out)" {
			t.Errorf("portal content moved: %v", op)
		}
	}
}
