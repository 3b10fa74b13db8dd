// Package vtest provides an in-memory host tree for exercising the renderer.
//
// Host implements every primitive the renderer needs (create, insert, move,
// remove, text and property updates, navigation and selector queries) on
// plain Go structs and records each mutation in an operation log, so tests
// can assert not only on the final tree but on how it was reached:
//
//	host := vtest.NewHost()
//	root := host.NewRoot("app")
//	r := vdom.NewRenderer(host)
//	r.Render(list("a", "b", "c"), root)
//	host.Reset()
//	r.Render(list("a", "c", "b"), root)
//	host.Count(vtest.OpMove) // 1
//	root.HTML()              // <ul><li>a</li><li>c</li><li>b</li></ul>
//
// The package has no dependency on the renderer; handles are *Node values
// passed as any.
package vtest
