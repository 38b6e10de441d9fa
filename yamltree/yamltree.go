// Package yamltree adapts YAML documents to the tree contract: a parsed
// document is wrapped as a read-only Tree[string, any] without rebuilding,
// so YAML-backed trees are consumed polymorphically wherever a tree is
// expected. Mapping order is preserved.
//
// YAML has no notion of a node carrying both a value and children; the
// reserved mapping key "=" holds the node's own value in that case, on
// both Load and Dump.
package yamltree

import (
	"fmt"
	"iter"

	"github.com/goccy/go-yaml"

	"github.com/keytree-io/keytree/tree"
)

// ValueKey is the reserved mapping key holding a branch node's own value.
const ValueKey = "="

// Load parses one YAML document and wraps it.
func Load(data []byte) (*Node, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return Wrap(doc), nil
}

// Wrap adapts a decoded YAML value (scalar, yaml.MapSlice, or nil) as a
// tree node. The document is not copied; mutating it while the wrapper is
// in use is the caller's hazard.
func Wrap(doc any) *Node {
	return &Node{doc: doc}
}

// Dump renders any tree as a YAML document.
func Dump(t tree.Tree[string, any]) ([]byte, error) {
	return yaml.Marshal(toAny(t))
}

func toAny(t tree.Tree[string, any]) any {
	if t.Len() == 0 {
		if v, ok := t.Value(); ok {
			return v
		}
		return nil
	}
	ms := yaml.MapSlice{}
	if v, ok := t.Value(); ok {
		ms = append(ms, yaml.MapItem{Key: ValueKey, Value: v})
	}
	for k, sub := range t.Children() {
		ms = append(ms, yaml.MapItem{Key: k, Value: toAny(sub)})
	}
	return ms
}

// Node is the YAML-backed tree variant. It is read-only and carries no
// default.
type Node struct {
	doc any
}

// Doc returns the underlying decoded YAML value.
func (n *Node) Doc() any {
	return n.doc
}

func (n *Node) Value() (any, bool) {
	switch doc := n.doc.(type) {
	case yaml.MapSlice:
		for _, item := range doc {
			if fmt.Sprint(item.Key) == ValueKey {
				return item.Value, true
			}
		}
		return nil, false
	case nil:
		return nil, false
	default:
		return doc, true
	}
}

func (n *Node) Get(key string) (tree.Tree[string, any], bool) {
	ms, ok := n.doc.(yaml.MapSlice)
	if !ok {
		return nil, false
	}
	for _, item := range ms {
		k := fmt.Sprint(item.Key)
		if k == ValueKey {
			continue
		}
		if k == key {
			return Wrap(item.Value), true
		}
	}
	return nil, false
}

func (n *Node) Apply(key string) (tree.Tree[string, any], error) {
	if sub, ok := n.Get(key); ok {
		return sub, nil
	}
	return nil, &tree.MissingKeyError[string]{Key: key}
}

func (n *Node) Len() int {
	ms, ok := n.doc.(yaml.MapSlice)
	if !ok {
		return 0
	}
	count := 0
	for _, item := range ms {
		if fmt.Sprint(item.Key) != ValueKey {
			count++
		}
	}
	return count
}

func (n *Node) Keys() []string {
	ms, ok := n.doc.(yaml.MapSlice)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(ms))
	for _, item := range ms {
		if k := fmt.Sprint(item.Key); k != ValueKey {
			keys = append(keys, k)
		}
	}
	return keys
}

func (n *Node) Children() iter.Seq2[string, tree.Tree[string, any]] {
	return func(yield func(string, tree.Tree[string, any]) bool) {
		ms, ok := n.doc.(yaml.MapSlice)
		if !ok {
			return
		}
		for _, item := range ms {
			k := fmt.Sprint(item.Key)
			if k == ValueKey {
				continue
			}
			if !yield(k, Wrap(item.Value)) {
				return
			}
		}
	}
}

func (n *Node) Default() tree.Default[string, any] {
	return tree.NoDefault[string, any]()
}
