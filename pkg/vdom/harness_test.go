package vdom

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/scheduler"
	"github.com/vango-dev/reconcile/pkg/vtest"
)

// harness wires a renderer to an in-memory host.
type harness struct {
	t     *testing.T
	host  *vtest.Host
	root  *vtest.Node
	loop  *scheduler.Loop
	r     *Renderer
	diags []error
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		t:    t,
		host: vtest.NewHost(),
		loop: scheduler.NewLoop(),
	}
	h.root = h.host.NewRoot("root")
	base := []Option{
		WithLoop(h.loop),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithDiagnostics(func(err error) { h.diags = append(h.diags, err) }),
	}
	h.r = NewRenderer(h.host, append(base, opts...)...)
	return h
}

func (h *harness) render(v *VNode) {
	h.r.Render(v, h.root)
}

func (h *harness) flush() {
	h.loop.Drain()
}

func (h *harness) html() string {
	return h.root.HTML()
}

// codes returns the diagnostic codes reported so far.
func (h *harness) codes() []string {
	out := make([]string, 0, len(h.diags))
	for _, err := range h.diags {
		out = append(out, errors.Code(err))
	}
	return out
}

func (h *harness) expectHTML(want string) {
	h.t.Helper()
	if got := h.html(); got != want {
		h.t.Errorf("HTML = %q, want %q", got, want)
	}
}

// list builds a keyed <ul> whose items show their key.
func list(keys ...string) *VNode {
	items := make([]*VNode, 0, len(keys))
	for _, k := range keys {
		items = append(items, Keyed(k, TextEl("li", k)))
	}
	return El("ul", items)
}
