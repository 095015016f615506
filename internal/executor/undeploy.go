// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package executor

import (
	"github.com/juju/errors"

	"github.com/juju/opcore/core/confignode"
	"github.com/juju/opcore/core/operation"
	"github.com/juju/opcore/core/service"
)

// deploymentName returns the name of the deployment stored at addr: its
// name attribute, falling back to the last element of the address.
func deploymentName(addr confignode.Address, node confignode.Node) (string, error) {
	if value, ok := node.Attribute(operation.Name); ok {
		if name, ok := value.(string); ok && name != "" {
			return name, nil
		}
	}
	last, ok := addr.Last()
	if !ok {
		return "", errors.NotValidf("deployment at the root address")
	}
	return last.Value, nil
}

func (e *Executor) prepareUndeploy(ctx Context, op operation.Operation) (step, error) {
	prior, existed := ctx.Model.Child(op.Address)
	if !existed {
		return step{}, errors.NotFoundf("deployment %s", op.Address)
	}
	name, err := deploymentName(op.Address, prior)
	if err != nil {
		return step{}, errors.Trace(err)
	}
	old, _ := prior.Attribute(operation.Enabled)
	return step{
		patch: confignode.Patch{
			confignode.MakeWrite(op.Address, operation.Enabled, old, false),
		},
		run: func(reg ServiceRegistry, h operation.ResultHandler) error {
			return e.remove(reg, DeploymentUnitName(name), h)
		},
	}, nil
}

// remove requests the removal of the named service and completes h
// once it is removed. A service that is not installed is already
// removed.
func (e *Executor) remove(reg ServiceRegistry, name service.Name, h operation.ResultHandler) error {
	ctrl, ok := reg.Lookup(name)
	if !ok {
		h.Complete()
		return nil
	}
	ctrl.AddListener(&removalListener{handler: h})
	err := reg.SetMode(name, service.Remove)
	if errors.Is(err, errors.NotFound) {
		// Removed since the lookup; the listener sees it removed.
		return nil
	}
	return errors.Trace(err)
}
