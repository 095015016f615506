// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package compensate builds the operation that undoes a forward
// management operation. It only ever reads the configuration snapshot
// taken before the forward operation, so the inverse is known before
// any of the forward operation's service work has run.
package compensate

import (
	"github.com/juju/errors"

	"github.com/juju/opcore/core/confignode"
	"github.com/juju/opcore/core/operation"
)

// builder derives a compensating operation from the forward operation
// and the node at the forward operation's address, if there was one.
type builder func(forward operation.Operation, prior confignode.Node, existed bool) (operation.Operation, error)

var builders = map[string]builder{
	operation.Add:               compensateAdd,
	operation.Remove:            compensateRemove,
	operation.Deploy:            compensateDeploy,
	operation.Undeploy:          compensateUndeploy,
	operation.ReplaceDeployment: compensateReplace,
	operation.WriteAttribute:    compensateAttribute,
	operation.UndefineAttribute: compensateAttribute,
}

// Build returns the operation that restores the configuration found in
// root, the snapshot taken before forward was applied. Operations with
// no known inverse are reported as errors.NotSupported.
func Build(forward operation.Operation, root confignode.Node) (operation.Operation, error) {
	build, ok := builders[forward.Name]
	if !ok {
		return operation.Operation{}, errors.NotSupportedf("compensating %q", forward.Name)
	}
	prior, existed := root.Child(forward.Address)
	inverse, err := build(forward, prior, existed)
	if err != nil {
		return operation.Operation{}, errors.Annotatef(err, "compensating %s", forward)
	}
	return inverse, nil
}

func compensateAdd(forward operation.Operation, _ confignode.Node, _ bool) (operation.Operation, error) {
	return operation.NewOperation(operation.Remove, forward.Address), nil
}

// compensateRemove re-adds the removed node. Only attributes defined in
// the prior node are carried, so replaying the inverse reconstructs
// exactly what was there.
func compensateRemove(forward operation.Operation, prior confignode.Node, existed bool) (operation.Operation, error) {
	if !existed {
		return operation.Operation{}, errors.NotFoundf("node %s", forward.Address)
	}
	inverse := operation.NewOperation(operation.Add, forward.Address)
	inverse.Parameters = prior.DefinedAttributes()
	return inverse, nil
}

func compensateDeploy(forward operation.Operation, _ confignode.Node, _ bool) (operation.Operation, error) {
	return operation.NewOperation(operation.Undeploy, forward.Address), nil
}

func compensateUndeploy(forward operation.Operation, prior confignode.Node, existed bool) (operation.Operation, error) {
	if !existed {
		return operation.Operation{}, errors.NotFoundf("deployment %s", forward.Address)
	}
	return copyDefined(operation.NewOperation(operation.Deploy, forward.Address), prior,
		operation.Name, operation.RuntimeName, operation.Hash), nil
}

// compensateReplace swaps the two deployments back, addressing the one
// that was replaced. When a deployment replaces itself with new content,
// the inverse carries the old content so that replaying it restores the
// previous hash.
func compensateReplace(forward operation.Operation, prior confignode.Node, _ bool) (operation.Operation, error) {
	name, err := forward.RequireString(operation.Name)
	if err != nil {
		return operation.Operation{}, errors.Trace(err)
	}
	toReplace, err := forward.RequireString(operation.ToReplace)
	if err != nil {
		return operation.Operation{}, errors.Trace(err)
	}
	addr := forward.Address
	if last, ok := addr.Last(); ok && name != toReplace {
		addr = addr.Parent().Append(last.Key, toReplace)
	}
	inverse := operation.NewOperation(operation.ReplaceDeployment, addr).
		With(operation.Name, toReplace).
		With(operation.ToReplace, name)
	if name == toReplace {
		inverse = copyDefined(inverse, prior, operation.RuntimeName, operation.Hash)
	}
	return inverse, nil
}

// compensateAttribute restores the prior value of the attribute named
// by forward, or undefines it if it had no value.
func compensateAttribute(forward operation.Operation, prior confignode.Node, existed bool) (operation.Operation, error) {
	if !existed {
		return operation.Operation{}, errors.NotFoundf("node %s", forward.Address)
	}
	name, err := forward.RequireString(operation.Name)
	if err != nil {
		return operation.Operation{}, errors.Trace(err)
	}
	if value, defined := prior.Attribute(name); defined {
		return operation.NewOperation(operation.WriteAttribute, forward.Address).
			With(operation.Name, name).
			With(operation.Value, value), nil
	}
	return operation.NewOperation(operation.UndefineAttribute, forward.Address).
		With(operation.Name, name), nil
}

func copyDefined(op operation.Operation, from confignode.Node, names ...string) operation.Operation {
	for _, name := range names {
		if value, defined := from.Attribute(name); defined {
			op = op.With(name, value)
		}
	}
	return op
}
