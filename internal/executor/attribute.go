// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package executor

import (
	"github.com/juju/errors"

	"github.com/juju/opcore/core/confignode"
	"github.com/juju/opcore/core/operation"
)

// Attribute edits only change configuration; running services pick up
// new values on their next start.

func (e *Executor) prepareWriteAttribute(ctx Context, op operation.Operation) (step, error) {
	node, name, err := attributeTarget(ctx, op)
	if err != nil {
		return step{}, errors.Trace(err)
	}
	value, err := op.Require(operation.Value)
	if err != nil {
		return step{}, errors.Trace(err)
	}
	old, _ := node.Attribute(name)
	return step{
		patch: confignode.Patch{confignode.MakeWrite(op.Address, name, old, value)},
	}, nil
}

func (e *Executor) prepareUndefineAttribute(ctx Context, op operation.Operation) (step, error) {
	node, name, err := attributeTarget(ctx, op)
	if err != nil {
		return step{}, errors.Trace(err)
	}
	old, _ := node.Attribute(name)
	return step{
		patch: confignode.Patch{confignode.MakeUndefine(op.Address, name, old)},
	}, nil
}

func attributeTarget(ctx Context, op operation.Operation) (confignode.Node, string, error) {
	name, err := op.RequireString(operation.Name)
	if err != nil {
		return confignode.Node{}, "", errors.Trace(err)
	}
	node, ok := ctx.Model.Child(op.Address)
	if !ok {
		return confignode.Node{}, "", errors.NotFoundf("node %s", op.Address)
	}
	return node, name, nil
}
