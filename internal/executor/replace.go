// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package executor

import (
	"github.com/juju/errors"

	"github.com/juju/opcore/core/confignode"
	"github.com/juju/opcore/core/operation"
	"github.com/juju/opcore/core/service"
)

// prepareReplace swaps the deployment named to-replace for the one at
// the operation's address. The new deployment's model is its stored
// node, overridden by any parameters of the request.
func (e *Executor) prepareReplace(ctx Context, op operation.Operation) (step, error) {
	name, err := op.RequireString(operation.Name)
	if err != nil {
		return step{}, errors.Trace(err)
	}
	toReplace, err := op.RequireString(operation.ToReplace)
	if err != nil {
		return step{}, errors.Trace(err)
	}
	prior, existed := ctx.Model.Child(op.Address)
	model := operation.Operation{
		Name:       op.Name,
		Address:    op.Address,
		Parameters: prior.DefinedAttributes(),
	}
	for _, param := range []string{operation.Name, operation.RuntimeName, operation.Hash} {
		if value, ok := op.Get(param); ok {
			model.Parameters[param] = value
		}
	}
	unit, err := deploymentUnit(model)
	if err != nil {
		return step{}, errors.Trace(err)
	}

	patch := writeNode(op.Address, prior, existed, deploymentAttributes(model))
	if last, ok := op.Address.Last(); ok && toReplace != name {
		oldAddr := op.Address.Parent().Append(last.Key, toReplace)
		if oldNode, ok := ctx.Model.Child(oldAddr); ok {
			old, _ := oldNode.Attribute(operation.Enabled)
			patch = append(patch, confignode.MakeWrite(oldAddr, operation.Enabled, old, false))
		}
	}
	return step{
		patch: patch,
		run: func(reg ServiceRegistry, h operation.ResultHandler) error {
			return e.replace(reg, unit, DeploymentUnitName(toReplace), h)
		},
	}, nil
}

// replace removes the old unit and deploys the new one once the old
// unit is removed, so the two never run side by side. The old unit is
// not restored if the new one fails.
func (e *Executor) replace(reg ServiceRegistry, unit DeploymentUnit, old service.Name, h operation.ResultHandler) error {
	ctrl, ok := reg.Lookup(old)
	if !ok {
		return e.deploy(reg, unit, h)
	}
	ctrl.AddListener(&replaceListener{
		registry: reg,
		logger:   e.config.Logger,
		then: func() {
			if err := e.deploy(reg, unit, h); err != nil {
				e.config.Logger.Errorf("deploying %q after removing %q: %v", unit.Name, old, err)
				h.Fail(err.Error())
			}
		},
	})
	return nil
}
