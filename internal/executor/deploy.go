// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package executor

import (
	"fmt"

	"github.com/juju/errors"

	"github.com/juju/opcore/core/operation"
	"github.com/juju/opcore/core/service"
)

// DeploymentUnit identifies the content run by one deployment.
type DeploymentUnit struct {
	Name        string
	RuntimeName string
	Hash        []byte
}

// ServiceName returns the name of the unit's service.
func (u DeploymentUnit) ServiceName() service.Name {
	return DeploymentUnitName(u.Name)
}

// DeploymentUnitName returns the service name of the named deployment.
func DeploymentUnitName(name string) service.Name {
	return service.NewName("deployment", "unit", name)
}

// deploymentUnit reads the identifying parameters of a deployment.
func deploymentUnit(op operation.Operation) (DeploymentUnit, error) {
	name, err := op.RequireString(operation.Name)
	if err != nil {
		return DeploymentUnit{}, errors.Trace(err)
	}
	runtimeName, err := op.RequireString(operation.RuntimeName)
	if err != nil {
		return DeploymentUnit{}, errors.Trace(err)
	}
	hash, err := op.RequireBytes(operation.Hash)
	if err != nil {
		return DeploymentUnit{}, errors.Trace(err)
	}
	return DeploymentUnit{
		Name:        name,
		RuntimeName: runtimeName,
		Hash:        hash,
	}, nil
}

// deploymentAttributes returns the attributes stored for a deployment
// taken from op, enabled.
func deploymentAttributes(op operation.Operation) map[string]interface{} {
	return map[string]interface{}{
		operation.Name:        op.Parameters[operation.Name],
		operation.RuntimeName: op.Parameters[operation.RuntimeName],
		operation.Hash:        op.Parameters[operation.Hash],
		operation.Enabled:     true,
	}
}

func (e *Executor) prepareDeploy(ctx Context, op operation.Operation) (step, error) {
	unit, err := deploymentUnit(op)
	if err != nil {
		return step{}, errors.Trace(err)
	}
	prior, existed := ctx.Model.Child(op.Address)
	return step{
		patch: writeNode(op.Address, prior, existed, deploymentAttributes(op)),
		run: func(reg ServiceRegistry, h operation.ResultHandler) error {
			return e.deploy(reg, unit, h)
		},
	}, nil
}

// deploy brings the unit's service up, installing it if needed, and
// settles h when it is up or has failed.
func (e *Executor) deploy(reg ServiceRegistry, unit DeploymentUnit, h operation.ResultHandler) error {
	name := unit.ServiceName()
	listener := newCompletionListener(fmt.Sprintf("deployment %q", unit.Name), h)
	if ctrl, ok := reg.Lookup(name); ok && ctrl.State() != service.Removed {
		return e.redeploy(reg, name, listener)
	}
	_, err := reg.Target().
		AddService(name, e.config.NewDeploymentService(unit)).
		AddDependencies(e.config.deployerChainsName(), e.config.contentRepositoryName()).
		SetInitialMode(service.Active).
		AddListener(listener).
		Install()
	if errors.Is(err, errors.AlreadyExists) {
		e.config.Logger.Debugf("deployment %q installed concurrently, redeploying", unit.Name)
		return e.redeploy(reg, name, listener)
	}
	return errors.Annotatef(err, "installing deployment %q", unit.Name)
}

// redeploy activates an installed unit. A failed unit is retried, and
// the listener is only attached once both requests are queued, so that
// it never sees the failure being retried.
func (e *Executor) redeploy(reg ServiceRegistry, name service.Name, listener *completionListener) error {
	if err := reg.SetMode(name, service.Active); err != nil {
		return errors.Trace(err)
	}
	if err := reg.Retry(name); err != nil {
		return errors.Trace(err)
	}
	ctrl, ok := reg.Lookup(name)
	if !ok {
		return errors.NotFoundf("service %q", name)
	}
	ctrl.AddListener(listener)
	return nil
}
