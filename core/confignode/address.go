// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package confignode

import (
	"strings"

	"github.com/juju/errors"
)

// PathElement is one step of an Address, naming a child of type Key
// called Value (for example deployment=app1).
type PathElement struct {
	Key   string
	Value string
}

// String returns the key=value form of the element.
func (e PathElement) String() string {
	return e.Key + "=" + e.Value
}

// Address locates a node in a configuration tree. The empty address
// is the root.
type Address []PathElement

// NewAddress builds an address from alternating keys and values.
func NewAddress(pairs ...string) (Address, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.NotValidf("odd number of address components %v", pairs)
	}
	addr := make(Address, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		elem := PathElement{Key: pairs[i], Value: pairs[i+1]}
		if err := elem.validate(); err != nil {
			return nil, errors.Trace(err)
		}
		addr = append(addr, elem)
	}
	return addr, nil
}

// MustNewAddress is like NewAddress but panics on error.
func MustNewAddress(pairs ...string) Address {
	addr, err := NewAddress(pairs...)
	if err != nil {
		panic(err)
	}
	return addr
}

// ParseAddress parses the "/key=value/key=value" form returned by
// Address.String.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(s, "/")
	if s == "" {
		return Address{}, nil
	}
	var pairs []string
	for _, part := range strings.Split(s, "/") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, errors.NotValidf("address element %q", part)
		}
		pairs = append(pairs, key, value)
	}
	return NewAddress(pairs...)
}

func (e PathElement) validate() error {
	if e.Key == "" || e.Value == "" {
		return errors.NotValidf("address element %q", e.String())
	}
	if strings.ContainsAny(e.Key, "=/") || strings.Contains(e.Value, "/") {
		return errors.NotValidf("address element %q", e.String())
	}
	return nil
}

// Append returns a new address with elem added. The receiver is not
// modified.
func (a Address) Append(key, value string) Address {
	out := make(Address, len(a), len(a)+1)
	copy(out, a)
	return append(out, PathElement{Key: key, Value: value})
}

// Parent returns the address without its last element.
func (a Address) Parent() Address {
	if len(a) == 0 {
		return Address{}
	}
	out := make(Address, len(a)-1)
	copy(out, a)
	return out
}

// Last returns the last element of the address. The second result is
// false for the root address.
func (a Address) Last() (PathElement, bool) {
	if len(a) == 0 {
		return PathElement{}, false
	}
	return a[len(a)-1], true
}

// Equal reports whether both addresses name the same node.
func (a Address) Equal(other Address) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if a[i] != other[i] {
			return false
		}
	}
	return true
}

// String returns the "/key=value/..." form of the address.
func (a Address) String() string {
	if len(a) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, elem := range a {
		b.WriteByte('/')
		b.WriteString(elem.String())
	}
	return b.String()
}
