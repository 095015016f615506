// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package executor applies management operations: it computes the
// configuration patch and compensating operation for each request, and
// drives the service registry to the matching running state.
package executor

import (
	"sort"

	"github.com/juju/errors"

	"github.com/juju/opcore/core/confignode"
	"github.com/juju/opcore/core/operation"
	"github.com/juju/opcore/core/service"
	"github.com/juju/opcore/internal/compensate"
	"github.com/juju/opcore/internal/services"
)

// ServiceRegistry is the part of *services.Registry used by the
// executor.
type ServiceRegistry interface {
	Lookup(name service.Name) (*services.Controller, bool)
	Target() *services.Target
	SetMode(name service.Name, mode service.Mode) error
	Retry(name service.Name) error
}

// Context is what an operation executes against.
type Context struct {
	// Model is the configuration snapshot taken before the operation.
	Model confignode.Node

	// Runtime is the registry of the running process. It is nil, or a
	// nil *services.Registry, when the operation only edits
	// configuration.
	Runtime ServiceRegistry
}

// Result is returned by a successfully scheduled operation.
type Result struct {
	// Compensating undoes the operation's configuration change.
	Compensating operation.Operation

	// Patch turns Context.Model into the configuration after the
	// operation.
	Patch confignode.Patch
}

// step is a prepared operation: its configuration patch, and the
// runtime work to schedule once the compensating operation is known.
type step struct {
	patch confignode.Patch
	run   func(reg ServiceRegistry, h operation.ResultHandler) error
}

type prepareFunc func(ctx Context, op operation.Operation) (step, error)

// Executor executes management operations. It holds no state of its
// own between operations.
type Executor struct {
	config   Config
	prepares map[string]prepareFunc
}

// NewExecutor returns an Executor configured as supplied.
func NewExecutor(config Config) (*Executor, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	e := &Executor{config: config}
	e.prepares = map[string]prepareFunc{
		operation.Add:               e.prepareAdd,
		operation.Remove:            e.prepareRemove,
		operation.Deploy:            e.prepareDeploy,
		operation.Undeploy:          e.prepareUndeploy,
		operation.ReplaceDeployment: e.prepareReplace,
		operation.WriteAttribute:    e.prepareWriteAttribute,
		operation.UndefineAttribute: e.prepareUndefineAttribute,
	}
	return e, nil
}

// Execute validates op against ctx.Model, schedules any service work it
// needs and returns without waiting for that work. handler is called
// exactly once with the eventual outcome, immediately when there is no
// runtime or nothing to run.
//
// An error means the request was rejected: nothing was scheduled, no
// compensating operation exists and handler is never called. Missing or
// mistyped parameters are reported as operation.ErrRequestMalformed.
func (e *Executor) Execute(ctx Context, op operation.Operation, handler operation.ResultHandler) (Result, error) {
	prepare, ok := e.prepares[op.Name]
	if !ok {
		return Result{}, errors.NotSupportedf("operation %q", op.Name)
	}
	e.config.Logger.Debugf("executing %s", op)
	prepared, err := prepare(ctx, op)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	inverse, err := compensate.Build(op, ctx.Model)
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	result := Result{
		Compensating: inverse,
		Patch:        prepared.patch,
	}

	h := operation.Guard(handler, e.config.Logger)
	if isOffline(ctx.Runtime) || prepared.run == nil {
		h.Complete()
		return result, nil
	}
	if err := prepared.run(ctx.Runtime, h); err != nil {
		return Result{}, errors.Trace(err)
	}
	return result, nil
}

func isOffline(reg ServiceRegistry) bool {
	if reg == nil {
		return true
	}
	registry, ok := reg.(*services.Registry)
	return ok && registry == nil
}

// writeNode returns the changes that leave the node at addr holding
// attrs, adding the node if prior does not exist.
func writeNode(addr confignode.Address, prior confignode.Node, existed bool, attrs map[string]interface{}) confignode.Patch {
	if !existed {
		return confignode.Patch{confignode.MakeAddNode(addr, attrs)}
	}
	var patch confignode.Patch
	for _, name := range sortedKeys(attrs) {
		old, _ := prior.Attribute(name)
		patch = append(patch, confignode.MakeWrite(addr, name, old, attrs[name]))
	}
	return patch
}

func sortedKeys(attrs map[string]interface{}) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
