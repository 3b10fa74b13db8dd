// Package fixture decodes YAML tree fixtures into vdom trees.
//
// A fixture node is either a scalar, which becomes a text node, or a
// mapping:
//
//	tag: ul              # element tag
//	key: a               # optional reconciliation key
//	props: {class: menu} # element properties
//	text: hello          # element text, or a text node when tag is absent
//	fragment: true       # a fragment of children
//	portal: "#overlay"   # a portal into the node matching the selector
//	children:
//	  - {tag: li, key: a, text: A}
//	  - plain text
//
// A file may hold several YAML documents; DecodeAll returns one tree per
// document so a sequence of renders can be replayed.
package fixture

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Node is the YAML shape of one tree node.
type Node struct {
	Tag      string         `yaml:"tag,omitempty"`
	Key      any            `yaml:"key,omitempty"`
	Props    map[string]any `yaml:"props,omitempty"`
	Text     string         `yaml:"text,omitempty"`
	Fragment bool           `yaml:"fragment,omitempty"`
	Portal   string         `yaml:"portal,omitempty"`
	Children []Node         `yaml:"children,omitempty"`

	line int
}

// UnmarshalYAML accepts a bare scalar as shorthand for a text node.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		n.Text = value.Value
		n.line = value.Line
		return nil
	}
	type plain Node
	p := (*plain)(n)
	if err := value.Decode(p); err != nil {
		return err
	}
	n.line = value.Line
	return nil
}

// VNode converts n into a vdom tree.
func (n Node) VNode() (*vdom.VNode, error) {
	children := make([]*vdom.VNode, 0, len(n.Children))
	for _, c := range n.Children {
		child, err := c.VNode()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	var v *vdom.VNode
	switch {
	case n.Tag != "" && (n.Fragment || n.Portal != ""):
		return nil, n.invalid("tag cannot be combined with fragment or portal")
	case n.Fragment && n.Portal != "":
		return nil, n.invalid("fragment and portal are mutually exclusive")
	case n.Tag != "":
		v = vdom.El(n.Tag, n.props(), children)
		if len(children) == 0 && n.Text != "" {
			v.Text = n.Text
		}
	case n.Portal != "":
		v = vdom.Portal(n.Portal, children)
	case n.Fragment:
		v = vdom.Fragment(children)
	case len(children) > 0:
		return nil, n.invalid("children need a tag, fragment or portal")
	default:
		if len(n.Props) > 0 {
			return nil, n.invalid("text nodes cannot carry props")
		}
		v = vdom.Text(n.Text)
	}

	if n.Key != nil {
		if !isScalar(n.Key) {
			return nil, n.invalid(fmt.Sprintf("key %v is not a scalar", n.Key))
		}
		v.Key = n.Key
	}
	return v, nil
}

func (n Node) props() vdom.Props {
	if len(n.Props) == 0 {
		return nil
	}
	p := make(vdom.Props, len(n.Props))
	for k, v := range n.Props {
		p[k] = v
	}
	return p
}

func (n Node) invalid(detail string) *errors.Error {
	return errors.New("F001").WithDetailf("line %d: %s", n.line, detail)
}

func isScalar(v any) bool {
	switch v.(type) {
	case []any, map[string]any:
		return false
	}
	return true
}

// Decode parses the first YAML document in data into a tree.
func Decode(data []byte) (*vdom.VNode, error) {
	trees, err := DecodeAll(data)
	if err != nil {
		return nil, err
	}
	if len(trees) == 0 {
		return nil, errors.New("F001").WithDetail("empty fixture")
	}
	return trees[0], nil
}

// DecodeAll parses every YAML document in data, one tree per document.
// An empty document decodes to nil, which renders as an unmount.
func DecodeAll(data []byte) ([]*vdom.VNode, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var trees []*vdom.VNode
	for {
		var doc *Node
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				return trees, nil
			}
			return nil, errors.New("F001").Wrap(err).WithDetail(err.Error())
		}
		if doc == nil {
			trees = append(trees, nil)
			continue
		}
		v, err := doc.VNode()
		if err != nil {
			return nil, err
		}
		trees = append(trees, v)
	}
}

// Load reads every tree in the fixture file at path.
func Load(path string) ([]*vdom.VNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("F001").Wrap(err).WithDetail(err.Error())
	}
	return DecodeAll(data)
}
