// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package services

import (
	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/juju/opcore/core/service"
)

// Descriptor describes a service to install. It is immutable once the
// service is installed.
type Descriptor struct {
	Name         service.Name
	Dependencies []service.Name
	InitialMode  service.Mode
}

// Validate returns an error if the descriptor cannot be installed.
func (d Descriptor) Validate() error {
	if err := d.Name.Validate(); err != nil {
		return errors.Trace(err)
	}
	if err := d.InitialMode.Validate(); err != nil {
		return errors.Annotatef(err, "service %q", d.Name)
	}
	for _, dep := range d.Dependencies {
		if err := dep.Validate(); err != nil {
			return errors.Annotatef(err, "service %q dependency", d.Name)
		}
		if dep == d.Name {
			return errors.NotValidf("service %q depending on itself", d.Name)
		}
	}
	return nil
}

// normalised returns a copy with duplicate dependencies dropped and the
// rest in order.
func (d Descriptor) normalised() Descriptor {
	seen := set.NewStrings()
	deps := make([]service.Name, 0, len(d.Dependencies))
	for _, dep := range d.Dependencies {
		if seen.Contains(dep.String()) {
			continue
		}
		seen.Add(dep.String())
		deps = append(deps, dep)
	}
	service.SortNames(deps)
	return Descriptor{
		Name:         d.Name,
		Dependencies: deps,
		InitialMode:  d.InitialMode,
	}
}

func (d Descriptor) clone() Descriptor {
	deps := make([]service.Name, len(d.Dependencies))
	copy(deps, d.Dependencies)
	d.Dependencies = deps
	return d
}
