// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package executor

import (
	"fmt"

	"github.com/juju/errors"

	"github.com/juju/opcore/core/confignode"
	"github.com/juju/opcore/core/operation"
)

func (e *Executor) resource(addr confignode.Address) (ResourceDefinition, error) {
	last, ok := addr.Last()
	if !ok {
		return ResourceDefinition{}, errors.NotSupportedf("resource at the root address")
	}
	def, ok := e.config.Resources[last.Key]
	if !ok {
		return ResourceDefinition{}, errors.NotSupportedf("resource type %q", last.Key)
	}
	return def, nil
}

// prepareAdd creates the node at the operation's address from the
// request's defined parameters, and installs the service backing it.
func (e *Executor) prepareAdd(ctx Context, op operation.Operation) (step, error) {
	def, err := e.resource(op.Address)
	if err != nil {
		return step{}, errors.Trace(err)
	}
	if _, exists := ctx.Model.Child(op.Address); exists {
		return step{}, errors.AlreadyExistsf("node %s", op.Address)
	}
	if _, exists := ctx.Model.Child(op.Address.Parent()); !exists {
		return step{}, errors.NotFoundf("node %s", op.Address.Parent())
	}
	attrs := confignode.New(op.Parameters).DefinedAttributes()
	svc, err := def.NewService(op.Address, attrs)
	if err != nil {
		return step{}, errors.Annotatef(err, "creating service for %s", op.Address)
	}
	return step{
		patch: confignode.Patch{confignode.MakeAddNode(op.Address, attrs)},
		run: func(reg ServiceRegistry, h operation.ResultHandler) error {
			name := def.ServiceName(op.Address)
			_, err := reg.Target().
				AddService(name, svc).
				AddDependencies(def.Dependencies...).
				AddListener(newCompletionListener(fmt.Sprintf("resource %s", op.Address), h)).
				Install()
			return errors.Annotatef(err, "installing %q", name)
		},
	}, nil
}

// prepareRemove deletes the node at the operation's address, and
// removes the service backing it.
func (e *Executor) prepareRemove(ctx Context, op operation.Operation) (step, error) {
	def, err := e.resource(op.Address)
	if err != nil {
		return step{}, errors.Trace(err)
	}
	if _, exists := ctx.Model.Child(op.Address); !exists {
		return step{}, errors.NotFoundf("node %s", op.Address)
	}
	return step{
		patch: confignode.Patch{confignode.MakeRemoveNode(op.Address)},
		run: func(reg ServiceRegistry, h operation.ResultHandler) error {
			return e.remove(reg, def.ServiceName(op.Address), h)
		},
	}, nil
}
