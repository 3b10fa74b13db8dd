package vdom

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// A creates an arbitrary attribute.
func A(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// On attaches a handler for event under the "on" + capitalized event key,
// which is also where components look up emitted events.
func On(event string, handler any) Attr { return attr(handlerKey(event), handler) }

// handlerKey maps "click" to "onClick".
func handlerKey(event string) string {
	if event == "" {
		return "on"
	}
	r, size := utf8.DecodeRuneInString(event)
	return "on" + string(unicode.ToUpper(r)) + event[size:]
}

// isHandlerKey reports whether key is "on" followed by an upper-case letter.
func isHandlerKey(key string) bool {
	if len(key) < 3 || !strings.HasPrefix(key, "on") {
		return false
	}
	r, _ := utf8.DecodeRuneInString(key[2:])
	return unicode.IsUpper(r)
}
