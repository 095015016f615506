// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package confignode

import (
	"reflect"
	"sort"
)

// Node is an immutable snapshot of one configuration resource: a map of
// named attributes plus named children. An attribute whose value is nil
// is present but undefined. Every With* method returns a new Node and
// leaves the receiver untouched, so a Node may be shared freely between
// goroutines. Attribute values themselves must not be mutated once
// stored.
//
// The zero Node is an empty resource.
type Node struct {
	attrs    map[string]interface{}
	children map[PathElement]Node
}

// New returns a node holding a copy of attrs.
func New(attrs map[string]interface{}) Node {
	n := Node{}
	if len(attrs) > 0 {
		n.attrs = make(map[string]interface{}, len(attrs))
		for k, v := range attrs {
			n.attrs[k] = v
		}
	}
	return n
}

// Attribute returns the value of the named attribute and whether it is
// defined.
func (n Node) Attribute(name string) (interface{}, bool) {
	v, ok := n.attrs[name]
	return v, ok && v != nil
}

// IsDefined reports whether the named attribute has a value.
func (n Node) IsDefined(name string) bool {
	_, ok := n.Attribute(name)
	return ok
}

// AttributeNames returns the sorted names of every attribute, defined
// or not.
func (n Node) AttributeNames() []string {
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefinedAttributes returns a copy of the defined attributes only.
func (n Node) DefinedAttributes() map[string]interface{} {
	out := make(map[string]interface{}, len(n.attrs))
	for k, v := range n.attrs {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// Child returns the node at addr relative to n.
func (n Node) Child(addr Address) (Node, bool) {
	current := n
	for _, elem := range addr {
		next, ok := current.children[elem]
		if !ok {
			return Node{}, false
		}
		current = next
	}
	return current, true
}

// ChildNames returns the sorted values of the children of type key.
func (n Node) ChildNames(key string) []string {
	var names []string
	for elem := range n.children {
		if elem.Key == key {
			names = append(names, elem.Value)
		}
	}
	sort.Strings(names)
	return names
}

// WithAttribute returns a copy of n with the attribute set. A nil value
// leaves the attribute present but undefined.
func (n Node) WithAttribute(name string, value interface{}) Node {
	out := n.shallowCopy()
	if out.attrs == nil {
		out.attrs = make(map[string]interface{}, 1)
	}
	out.attrs[name] = value
	return out
}

// WithChild returns a copy of n with child stored under elem.
func (n Node) WithChild(elem PathElement, child Node) Node {
	out := n.shallowCopy()
	if out.children == nil {
		out.children = make(map[PathElement]Node, 1)
	}
	out.children[elem] = child
	return out
}

// WithoutChild returns a copy of n without the child under elem.
func (n Node) WithoutChild(elem PathElement) Node {
	out := n.shallowCopy()
	delete(out.children, elem)
	return out
}

// Equal reports whether both nodes define the same attribute values and
// have equal children. Undefined attributes are ignored.
func (n Node) Equal(other Node) bool {
	if !reflect.DeepEqual(n.DefinedAttributes(), other.DefinedAttributes()) {
		return false
	}
	if len(n.children) != len(other.children) {
		return false
	}
	for elem, child := range n.children {
		otherChild, ok := other.children[elem]
		if !ok || !child.Equal(otherChild) {
			return false
		}
	}
	return true
}

func (n Node) shallowCopy() Node {
	out := Node{}
	if n.attrs != nil {
		out.attrs = make(map[string]interface{}, len(n.attrs))
		for k, v := range n.attrs {
			out.attrs[k] = v
		}
	}
	if n.children != nil {
		out.children = make(map[PathElement]Node, len(n.children))
		for k, v := range n.children {
			out.children[k] = v
		}
	}
	return out
}

// update replaces the node at addr with the result of fn, rebuilding
// every ancestor on the way back up.
func (n Node) update(addr Address, fn func(Node) (Node, error)) (Node, error) {
	return n.updateFrom(addr, 0, fn)
}

func (n Node) updateFrom(addr Address, depth int, fn func(Node) (Node, error)) (Node, error) {
	if depth == len(addr) {
		return fn(n)
	}
	child, ok := n.children[addr[depth]]
	if !ok {
		return Node{}, notFound(addr[:depth+1])
	}
	updated, err := child.updateFrom(addr, depth+1, fn)
	if err != nil {
		return Node{}, err
	}
	return n.WithChild(addr[depth], updated), nil
}
