package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/vdom"
	"github.com/vango-dev/reconcile/pkg/vtest"
)

func renderHTML(t *testing.T, trees ...*vdom.VNode) (string, *vtest.Host) {
	t.Helper()
	host := vtest.NewHost()
	root := host.NewRoot("root")
	r := vdom.NewRenderer(host)
	for _, tree := range trees {
		r.Render(tree, root)
	}
	return root.HTML(), host
}

func TestDecode(t *testing.T) {
	src := `
tag: ul
props: {class: menu}
children:
  - {tag: li, key: a, text: A}
  - {tag: li, key: 2, children: [plain, {tag: b, text: bold}]}
  - fragment: true
    children: [x, y]
`
	v, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if v.Kind != vdom.KindElement || v.Tag != "ul" {
		t.Fatalf("root = %v %q, want element ul", v.Kind, v.Tag)
	}
	keys := []any{v.Children[0].Key, v.Children[1].Key, v.Children[2].Key}
	if diff := cmp.Diff([]any{"a", 2, nil}, keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}

	html, _ := renderHTML(t, v)
	want := `<ul class="menu"><li>A</li><li>plain<b>bold</b></li>xy</ul>`
	if html != want {
		t.Errorf("HTML = %q, want %q", html, want)
	}
}

func TestDecodeAllReplaysRenders(t *testing.T) {
	src := `
tag: ul
children:
  - {tag: li, key: a, text: a}
  - {tag: li, key: b, text: b}
---
tag: ul
children:
  - {tag: li, key: b, text: b}
  - {tag: li, key: a, text: a}
`
	trees, err := DecodeAll([]byte(src))
	if err != nil {
		t.Fatalf("DecodeAll() error = %v", err)
	}
	if len(trees) != 2 {
		t.Fatalf("len(trees) = %d, want 2", len(trees))
	}

	html, host := renderHTML(t, trees...)
	if html != "<ul><li>b</li><li>a</li></ul>" {
		t.Errorf("HTML = %q", html)
	}
	if got := host.Count(vtest.OpMove); got != 1 {
		t.Errorf("moves = %d, want 1", got)
	}
}

func TestDecodePortal(t *testing.T) {
	v, err := Decode([]byte(`{portal: "#overlay", children: [{tag: p, text: hi}]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if v.Kind != vdom.KindPortal || v.Target != "#overlay" {
		t.Errorf("got kind %v target %v", v.Kind, v.Target)
	}
	if len(v.Children) != 1 || v.Children[0].Tag != "p" {
		t.Fatalf("portal children = %v, want one <p>", v.Children)
	}

	host := vtest.NewHost()
	root := host.NewRoot("root")
	overlay := host.NewRoot("overlay")
	r := vdom.NewRenderer(host)
	r.Render(vdom.El("div", vdom.ID("overlay")), overlay)
	r.Render(v, root)
	if got := overlay.HTML(); got != `<div id="overlay"><p>hi</p></div>` {
		t.Errorf("overlay HTML = %q", got)
	}
}

func TestDecodeFragmentRoot(t *testing.T) {
	v, err := Decode([]byte(`{fragment: true, children: [{tag: i, text: a}, b]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if v.Kind != vdom.KindFragment || len(v.Children) != 2 {
		t.Fatalf("got kind %v with %d children, want fragment with 2", v.Kind, len(v.Children))
	}

	html, _ := renderHTML(t, v)
	if html != "<i>a</i>b" {
		t.Errorf("HTML = %q", html)
	}
}

func TestDecodeScalarRoot(t *testing.T) {
	v, err := Decode([]byte(`hello`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if v.Kind != vdom.KindText || v.Text != "hello" {
		t.Errorf("got %v %q, want text hello", v.Kind, v.Text)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "tag: [ul"},
		{"tag and fragment", "{tag: ul, fragment: true}"},
		{"fragment and portal", "{fragment: true, portal: '#x'}"},
		{"children without container", "{children: [a]}"},
		{"text with props", "{text: a, props: {id: x}}"},
		{"list key", "{tag: li, key: [1, 2]}"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.src))
			if !errors.Is(err, "F001") {
				t.Errorf("Decode(%q) error = %v, want F001", tt.src, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, "F001") {
		t.Errorf("Load(missing) error = %v, want F001", err)
	}

	path := filepath.Join(dir, "tree.yaml")
	if err := os.WriteFile(path, []byte("{tag: p, text: x}\n---\n"), 0644); err != nil {
		t.Fatal(err)
	}
	trees, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(trees) == 0 || trees[0].Tag != "p" {
		t.Errorf("Load() = %v", trees)
	}
}
