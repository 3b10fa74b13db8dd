// Package errors provides coded diagnostics for the reconciler.
//
// Every diagnostic the renderer, scheduler or configuration layer can report
// has a registered code with a short message and a longer explanation.
// Diagnostics are reported, not returned: the renderer logs them and keeps
// going, because one bad binding must not take down a live tree.
//
// # Categories
//
//   - runtime: render-time misuse (missing bindings, prop writes, hook misuse)
//   - scheduler: failures while flushing queued jobs
//   - config: invalid or unreadable configuration
//   - fixture: tree fixtures that cannot be decoded
//
// # Usage
//
//	err := errors.New("R002").
//	    WithDetail(`name "count" is not defined`).
//	    WithSuggestion("Declare it in State, Props or return it from Setup")
//
//	fmt.Println(err.Format())
package errors
