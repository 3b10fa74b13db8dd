package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <li>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindPortal                 // Children rendered into another container
	KindComponent              // Nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindPortal:
		return "Portal"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Handle is an opaque reference to a node owned by the Host.
type Handle = any

// Props holds element properties, or the raw attributes passed to a component.
type Props map[string]any

// VNode is the virtual node.
type VNode struct {
	Kind     VKind       // Node type
	Tag      string      // Element tag name
	Props    Props       // Properties, or component attributes
	Children []*VNode    // Child nodes; component slot content
	Text     string      // Text node content, or element text children
	Key      any         // Reconciliation key; must be comparable, nil means unkeyed
	Comp     *Definition // For KindComponent
	Target   any         // Portal destination: a Handle or a selector string

	// Handle is the host node once mounted. For components it is the first
	// host node of the rendered subtree at the time of the last patch.
	Handle Handle

	instance     *Instance
	portalTarget Handle

	// Keep-alive flags: a persistent node is deactivated instead of
	// destroyed, a restorable node is reactivated instead of mounted.
	persistent bool
	restorable bool
	keepAlive  *cacheContext
}

// Instance returns the component instance backing a mounted component node.
func (v *VNode) Instance() *Instance {
	if v == nil {
		return nil
	}
	return v.instance
}

// HasKey reports whether the node carries a reconciliation key.
func (v *VNode) HasKey() bool {
	return v != nil && v.Key != nil
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

type childShape uint8

const (
	shapeNone childShape = iota
	shapeText
	shapeList
)

func (v *VNode) childShape() childShape {
	switch {
	case len(v.Children) > 0:
		return shapeList
	case v.Kind == KindElement && v.Text != "":
		return shapeText
	default:
		return shapeNone
	}
}

// sameType reports whether old can be patched into next: same kind, same
// tag or component definition, same key.
func sameType(old, next *VNode) bool {
	if old.Kind != next.Kind || old.Key != next.Key {
		return false
	}
	switch old.Kind {
	case KindElement:
		return old.Tag == next.Tag
	case KindComponent:
		return old.Comp == next.Comp
	}
	return true
}

func hasKeys(list []*VNode) bool {
	for _, v := range list {
		if v.Key != nil {
			return true
		}
	}
	return false
}
