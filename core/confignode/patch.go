// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package confignode

import (
	"fmt"

	"github.com/juju/errors"
)

// ChangeType describes the kind of a Change.
type ChangeType int

const (
	AddNode ChangeType = iota + 1
	RemoveNode
	WriteAttribute
	UndefineAttribute
)

// Change is a single edit to a configuration tree. OldValue records the
// value seen in the snapshot the change was computed against.
type Change struct {
	Type       ChangeType
	Address    Address
	Name       string
	OldValue   interface{}
	NewValue   interface{}
	Attributes map[string]interface{}
}

// MakeAddNode returns a change that creates the node at addr with the
// given attributes.
func MakeAddNode(addr Address, attrs map[string]interface{}) Change {
	return Change{Type: AddNode, Address: addr, Attributes: attrs}
}

// MakeRemoveNode returns a change that deletes the node at addr and
// everything beneath it.
func MakeRemoveNode(addr Address) Change {
	return Change{Type: RemoveNode, Address: addr}
}

// MakeWrite returns a change that sets an attribute of the node at addr.
func MakeWrite(addr Address, name string, oldValue, newValue interface{}) Change {
	return Change{Type: WriteAttribute, Address: addr, Name: name, OldValue: oldValue, NewValue: newValue}
}

// MakeUndefine returns a change that undefines an attribute of the node
// at addr.
func MakeUndefine(addr Address, name string, oldValue interface{}) Change {
	return Change{Type: UndefineAttribute, Address: addr, Name: name, OldValue: oldValue}
}

// String returns a description of the change.
func (c Change) String() string {
	switch c.Type {
	case AddNode:
		return fmt.Sprintf("node added: %s", c.Address)
	case RemoveNode:
		return fmt.Sprintf("node removed: %s", c.Address)
	case WriteAttribute:
		return fmt.Sprintf("attribute written: %s %s = %v (was %v)", c.Address, c.Name, c.NewValue, c.OldValue)
	case UndefineAttribute:
		return fmt.Sprintf("attribute undefined: %s %s (was %v)", c.Address, c.Name, c.OldValue)
	}
	return fmt.Sprintf("unknown change type %d: %s", c.Type, c.Address)
}

// Patch is an ordered list of changes.
type Patch []Change

// Apply returns the result of applying every change in p, in order, to
// root. root itself is never modified.
func Apply(root Node, p Patch) (Node, error) {
	current := root
	for _, change := range p {
		next, err := applyChange(current, change)
		if err != nil {
			return Node{}, errors.Annotate(err, change.String())
		}
		current = next
	}
	return current, nil
}

func applyChange(root Node, change Change) (Node, error) {
	switch change.Type {
	case AddNode:
		last, ok := change.Address.Last()
		if !ok {
			return Node{}, errors.NotValidf("adding the root node")
		}
		return root.update(change.Address.Parent(), func(parent Node) (Node, error) {
			if _, exists := parent.children[last]; exists {
				return Node{}, errors.AlreadyExistsf("node %s", change.Address)
			}
			return parent.WithChild(last, New(change.Attributes)), nil
		})
	case RemoveNode:
		last, ok := change.Address.Last()
		if !ok {
			return Node{}, errors.NotValidf("removing the root node")
		}
		return root.update(change.Address.Parent(), func(parent Node) (Node, error) {
			if _, exists := parent.children[last]; !exists {
				return Node{}, notFound(change.Address)
			}
			return parent.WithoutChild(last), nil
		})
	case WriteAttribute:
		return root.update(change.Address, func(n Node) (Node, error) {
			return n.WithAttribute(change.Name, change.NewValue), nil
		})
	case UndefineAttribute:
		return root.update(change.Address, func(n Node) (Node, error) {
			return n.WithAttribute(change.Name, nil), nil
		})
	}
	return Node{}, errors.NotValidf("change type %d", change.Type)
}

func notFound(addr Address) error {
	return errors.NotFoundf("node %s", addr)
}
