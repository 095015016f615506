// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package service

import (
	"fmt"
	"strings"

	"github.com/juju/collections/set"
)

// FailureInfo accumulates why a service, or a group of services
// collapsing together, failed. Start failures are errors raised by a
// service's own start work; failed dependencies name services whose
// failure or removal caused a bystander to be abandoned. Entries are
// only ever added, never overwritten.
//
// The zero value is empty and ready to use.
type FailureInfo struct {
	failedDependencies set.Strings
	startFailures      map[Name]error
}

// AddStartFailure records err as the start failure of name. An existing
// entry for name is kept.
func (f *FailureInfo) AddStartFailure(name Name, err error) {
	if err == nil {
		return
	}
	if f.startFailures == nil {
		f.startFailures = make(map[Name]error)
	}
	if _, ok := f.startFailures[name]; !ok {
		f.startFailures[name] = err
	}
}

// AddFailedDependency records name as a failed or removed dependency.
func (f *FailureInfo) AddFailedDependency(name Name) {
	if f.failedDependencies == nil {
		f.failedDependencies = set.NewStrings()
	}
	f.failedDependencies.Add(name.String())
}

// Merge adds every entry of other into f.
func (f *FailureInfo) Merge(other FailureInfo) {
	for _, name := range other.failedDependencies.Values() {
		f.AddFailedDependency(Name(name))
	}
	for name, err := range other.startFailures {
		f.AddStartFailure(name, err)
	}
}

// IsEmpty reports whether nothing has been recorded.
func (f FailureInfo) IsEmpty() bool {
	return f.failedDependencies.IsEmpty() && len(f.startFailures) == 0
}

// FailedDependencies returns the recorded failed dependencies in order.
func (f FailureInfo) FailedDependencies() []Name {
	names := make([]Name, 0, f.failedDependencies.Size())
	for _, name := range f.failedDependencies.Values() {
		names = append(names, Name(name))
	}
	SortNames(names)
	return names
}

// StartFailures returns a copy of the recorded start failures.
func (f FailureInfo) StartFailures() map[Name]error {
	out := make(map[Name]error, len(f.startFailures))
	for name, err := range f.startFailures {
		out[name] = err
	}
	return out
}

// Copy returns an independent copy of f.
func (f FailureInfo) Copy() FailureInfo {
	var out FailureInfo
	out.Merge(f)
	return out
}

// String summarises every entry in a single diagnostic line.
func (f FailureInfo) String() string {
	var parts []string
	if len(f.startFailures) > 0 {
		names := make([]Name, 0, len(f.startFailures))
		for name := range f.startFailures {
			names = append(names, name)
		}
		SortNames(names)
		failures := make([]string, len(names))
		for i, name := range names {
			failures[i] = fmt.Sprintf("%s: %v", name, f.startFailures[name])
		}
		parts = append(parts, fmt.Sprintf("service failures: [%s]", strings.Join(failures, ", ")))
	}
	if !f.failedDependencies.IsEmpty() {
		deps := f.FailedDependencies()
		names := make([]string, len(deps))
		for i, dep := range deps {
			names[i] = dep.String()
		}
		parts = append(parts, fmt.Sprintf("failed dependencies: [%s]", strings.Join(names, ", ")))
	}
	return strings.Join(parts, "; ")
}
