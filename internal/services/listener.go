// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package services

import (
	"time"

	"github.com/juju/opcore/core/service"
)

// Listener observes a controller. Both methods are called from the
// controller's own goroutine, in registration order, and never
// concurrently for the same controller. A listener may call back into
// the controller or the registry.
type Listener interface {
	// ListenerAdded is called once, with the controller's state at the
	// time of registration. A listener added to a removed controller
	// only ever receives this call.
	ListenerAdded(ctrl *Controller, state service.State)

	// Transition is called after every state change.
	Transition(ctrl *Controller, from, to service.State)
}

// BaseListener implements Listener with no-op methods, so listeners
// need only define the calls they care about.
type BaseListener struct{}

// ListenerAdded is part of the Listener interface.
func (BaseListener) ListenerAdded(*Controller, service.State) {}

// Transition is part of the Listener interface.
func (BaseListener) Transition(*Controller, service.State, service.State) {}

// Transition records one state change of a controller. Seq increases
// across every controller of a registry, so transitions of different
// controllers can be ordered.
type Transition struct {
	From service.State
	To   service.State
	Seq  uint64
	At   time.Time
}
