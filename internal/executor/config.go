// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package executor

import (
	"github.com/juju/errors"

	"github.com/juju/opcore/core/confignode"
	"github.com/juju/opcore/core/service"
	"github.com/juju/opcore/internal/services"
)

var (
	// DefaultDeployerChainsName is the service every deployment unit
	// depends on to process its content.
	DefaultDeployerChainsName = service.NewName("deployment", "chains")

	// DefaultContentRepositoryName is the service every deployment unit
	// depends on to fetch its content.
	DefaultContentRepositoryName = service.NewName("deployment", "repository")
)

// Logger is the logging interface used by the executor.
type Logger interface {
	Errorf(string, ...interface{})
	Debugf(string, ...interface{})
	Tracef(string, ...interface{})
}

// ResourceDefinition describes how a configuration node with a given
// address key maps to a running service.
type ResourceDefinition struct {
	// ServiceName returns the name of the service backing the node at
	// addr.
	ServiceName func(addr confignode.Address) service.Name

	// NewService returns the service for a node at addr with the given
	// attributes. Errors are returned from Execute as-is.
	NewService func(addr confignode.Address, attrs map[string]interface{}) (services.Service, error)

	// Dependencies lists the services the new service depends on.
	Dependencies []service.Name
}

// Validate returns an error if the definition cannot be used.
func (d ResourceDefinition) Validate() error {
	if d.ServiceName == nil {
		return errors.NotValidf("nil ServiceName")
	}
	if d.NewService == nil {
		return errors.NotValidf("nil NewService")
	}
	for _, dep := range d.Dependencies {
		if err := dep.Validate(); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// Config holds the dependencies of an Executor.
type Config struct {
	Logger Logger

	// DeployerChainsName and ContentRepositoryName name the services
	// deployment units depend on. Empty names select the defaults.
	DeployerChainsName    service.Name
	ContentRepositoryName service.Name

	// NewDeploymentService returns the service run by a deployment unit.
	NewDeploymentService func(DeploymentUnit) services.Service

	// Resources maps a node address key, such as "thread-factory", to
	// the definition used by add and remove operations on such nodes.
	Resources map[string]ResourceDefinition
}

// Validate ensures that the configuration is
// correctly populated for executor operation.
func (config Config) Validate() error {
	if config.Logger == nil {
		return errors.NotValidf("nil Logger")
	}
	if config.NewDeploymentService == nil {
		return errors.NotValidf("nil NewDeploymentService")
	}
	for _, name := range []service.Name{config.DeployerChainsName, config.ContentRepositoryName} {
		if name == "" {
			continue
		}
		if err := name.Validate(); err != nil {
			return errors.Trace(err)
		}
	}
	for key, def := range config.Resources {
		if err := def.Validate(); err != nil {
			return errors.Annotatef(err, "resource %q", key)
		}
	}
	return nil
}

func (config Config) deployerChainsName() service.Name {
	if config.DeployerChainsName == "" {
		return DefaultDeployerChainsName
	}
	return config.DeployerChainsName
}

func (config Config) contentRepositoryName() service.Name {
	if config.ContentRepositoryName == "" {
		return DefaultContentRepositoryName
	}
	return config.ContentRepositoryName
}
