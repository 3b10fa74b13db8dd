package render

import "strings"

// tagFlags classifies an element for serialization.
type tagFlags uint8

const (
	// flagVoid elements have no children and no closing tag.
	flagVoid tagFlags = 1 << iota
	// flagInline elements keep their content on one line when pretty
	// printing.
	flagInline
)

var tagTable = buildTagTable(map[tagFlags]string{
	flagVoid:              "area base col embed hr img input link meta source track",
	flagVoid | flagInline: "br wbr",
	flagInline: "a abbr b bdi bdo cite code data dfn em i kbd mark q " +
		"s samp small span strong sub sup time u var",
})

func buildTagTable(groups map[tagFlags]string) map[string]tagFlags {
	table := make(map[string]tagFlags)
	for flags, tags := range groups {
		for _, tag := range strings.Fields(tags) {
			table[tag] |= flags
		}
	}
	return table
}

func isVoidElement(tag string) bool {
	return tagTable[tag]&flagVoid != 0
}

func isInlineElement(tag string) bool {
	return tagTable[tag]&flagInline != 0
}

// booleanAttrs render as a bare name when true and are dropped when false.
var booleanAttrs = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, name := range strings.Fields(
		"async autofocus autoplay checked controls defer disabled hidden " +
			"loop multiple muted open readonly required selected") {
		set[name] = struct{}{}
	}
	return set
}()

func isBooleanAttr(name string) bool {
	_, ok := booleanAttrs[name]
	return ok
}
