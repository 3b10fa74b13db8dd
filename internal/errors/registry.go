package errors

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Runtime Errors (R001-R099)
	// ============================================

	"R001": {
		Category:   CategoryRuntime,
		Message:    "Render function declared twice",
		Suggestion: "Either set Definition.Render or return a render function from Setup, not both",
	},
	"R002": {
		Category:   CategoryRuntime,
		Message:    "Missing binding",
		Suggestion: "Declare the name in State, list it in Props, or return it from Setup",
	},
	"R003": {
		Category:   CategoryRuntime,
		Message:    "Emitted event has no handler",
		Suggestion: "Pass an on<Event> handler from the parent component",
	},
	"R004": {
		Category:   CategoryRuntime,
		Message:    "Props are read-only",
		Suggestion: "Emit an event and let the parent update the value",
	},
	"R005": {
		Category:   CategoryRuntime,
		Message:    "Lifecycle hook registered outside setup",
		Suggestion: "Call OnMounted synchronously inside Setup",
	},
	"R007": {
		Category:   CategoryRuntime,
		Message:    "Portal target not found",
		Suggestion: "Pass a mounted handle or a selector the host can resolve",
	},
	"R008": {
		Category:   CategoryRuntime,
		Message:    "Component has no render function",
		Suggestion: "Set Definition.Render or return a render function from Setup",
	},
	"R009": {
		Category:   CategoryRuntime,
		Message:    "Event handler cannot be called",
		Suggestion: "Use func(), func(...any) or a func whose parameters match the emitted arguments",
	},

	"R006": {
		Category:   CategoryScheduler,
		Message:    "Scheduled job panicked",
		Suggestion: "Check the component render function named in the log entry",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
	"C002": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create reconcile.json or run without --config to use defaults",
	},
	"C003": {
		Category:   CategoryConfig,
		Message:    "Failed to parse configuration",
		Suggestion: "Check that reconcile.json is valid JSON",
	},

	// ============================================
	// Fixture Errors (F001-F099)
	// ============================================

	"F001": {
		Category:   CategoryFixture,
		Message:    "Invalid tree fixture",
		Suggestion: "Each node needs either tag, text, fragment or children",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
