// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package services

import (
	"github.com/juju/errors"

	"github.com/juju/opcore/core/service"
)

// Target accumulates the description of a new service and hands it to
// the registry in one step. A Target is not safe for concurrent use.
type Target struct {
	registry  *Registry
	desc      Descriptor
	service   Service
	listeners []Listener
}

// AddService sets the name and work of the service. The initial mode
// defaults to active.
func (t *Target) AddService(name service.Name, svc Service) *Target {
	t.desc.Name = name
	t.service = svc
	if t.desc.InitialMode == "" {
		t.desc.InitialMode = service.Active
	}
	return t
}

// AddDependencies adds names the service depends on.
func (t *Target) AddDependencies(names ...service.Name) *Target {
	t.desc.Dependencies = append(t.desc.Dependencies, names...)
	return t
}

// SetInitialMode sets the mode the service is installed with.
func (t *Target) SetInitialMode(mode service.Mode) *Target {
	t.desc.InitialMode = mode
	return t
}

// AddListener adds a listener to be registered at install.
func (t *Target) AddListener(l Listener) *Target {
	t.listeners = append(t.listeners, l)
	return t
}

// Install installs the described service. See Registry.Install.
func (t *Target) Install() (*Controller, error) {
	if t.service == nil {
		return nil, errors.NotValidf("target without a service")
	}
	ctrl, err := t.registry.Install(t.desc, t.service, t.listeners...)
	return ctrl, errors.Trace(err)
}
