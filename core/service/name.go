// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package service

import (
	"sort"
	"strings"

	"github.com/juju/errors"
)

const (
	separator = '.'
	escape    = '\\'
)

// Name identifies a service within a registry. It is a sequence of
// segments; two names are equal iff their segment sequences are equal.
// The string form joins the segments with "." and escapes any "." or "\"
// inside a segment, so Name values may be compared and used as map keys
// directly.
type Name string

// NewName returns the name made of the given segments. It panics if no
// segments are supplied or any segment is empty; use ValidateSegments
// first when the segments come from user input.
func NewName(segments ...string) Name {
	if err := ValidateSegments(segments); err != nil {
		panic(err)
	}
	var b strings.Builder
	for i, s := range segments {
		if i > 0 {
			b.WriteByte(separator)
		}
		writeEscaped(&b, s)
	}
	return Name(b.String())
}

// ValidateSegments reports whether the segments make a valid name.
func ValidateSegments(segments []string) error {
	if len(segments) == 0 {
		return errors.NotValidf("empty service name")
	}
	for i, s := range segments {
		if s == "" {
			return errors.NotValidf("empty segment %d in service name", i)
		}
	}
	return nil
}

func writeEscaped(b *strings.Builder, s string) {
	for _, r := range s {
		if r == separator || r == escape {
			b.WriteRune(escape)
		}
		b.WriteRune(r)
	}
}

// Append returns a new name with the given segments added.
func (n Name) Append(segments ...string) Name {
	return NewName(append(n.Segments(), segments...)...)
}

// Parent returns the name without its last segment. The second result
// is false if the name has a single segment.
func (n Name) Parent() (Name, bool) {
	segments := n.Segments()
	if len(segments) < 2 {
		return "", false
	}
	return NewName(segments[:len(segments)-1]...), true
}

// Segments returns the unescaped segments of the name.
func (n Name) Segments() []string {
	if n == "" {
		return nil
	}
	var (
		segments []string
		current  strings.Builder
		escaped  bool
	)
	for _, r := range string(n) {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == escape:
			escaped = true
		case r == separator:
			segments = append(segments, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(segments, current.String())
}

// Validate returns an error if the name is not well formed.
func (n Name) Validate() error {
	if n == "" {
		return errors.NotValidf("empty service name")
	}
	return errors.Annotatef(ValidateSegments(n.Segments()), "service name %q", string(n))
}

// String returns the canonical form of the name.
func (n Name) String() string {
	return string(n)
}

// Compare orders names segment by segment, a shorter name sorting before
// any longer name it prefixes.
func (n Name) Compare(other Name) int {
	a, b := n.Segments(), other.Segments()
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// SortNames sorts names in place using Compare.
func SortNames(names []Name) {
	sort.Slice(names, func(i, j int) bool {
		return names[i].Compare(names[j]) < 0
	})
}
