// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package executor

import (
	"fmt"

	"github.com/juju/opcore/core/operation"
	"github.com/juju/opcore/core/service"
	"github.com/juju/opcore/internal/services"
)

// completionListener settles its handler once the controller it
// watches comes up, fails or is removed.
type completionListener struct {
	services.BaseListener

	what    string
	handler operation.ResultHandler
	settled bool
}

func newCompletionListener(what string, handler operation.ResultHandler) *completionListener {
	return &completionListener{what: what, handler: handler}
}

// ListenerAdded is part of the services.Listener interface.
func (l *completionListener) ListenerAdded(ctrl *services.Controller, state service.State) {
	l.observe(ctrl, state)
}

// Transition is part of the services.Listener interface.
func (l *completionListener) Transition(ctrl *services.Controller, _, to service.State) {
	l.observe(ctrl, to)
}

func (l *completionListener) observe(ctrl *services.Controller, state service.State) {
	if l.settled {
		return
	}
	switch state {
	case service.Up:
		l.settle(ctrl)
		l.handler.Complete()
	case service.Failed:
		l.settle(ctrl)
		l.handler.Fail(fmt.Sprintf("%s failed: %s", l.what, ctrl.FailureInfo()))
	case service.Removed:
		l.settle(ctrl)
		l.handler.Fail(fmt.Sprintf("%s removed before starting", l.what))
	}
}

func (l *completionListener) settle(ctrl *services.Controller) {
	l.settled = true
	ctrl.RemoveListener(l)
}

// removalListener completes its handler once the controller it watches
// is removed.
type removalListener struct {
	services.BaseListener

	handler operation.ResultHandler
	settled bool
}

// ListenerAdded is part of the services.Listener interface.
func (l *removalListener) ListenerAdded(ctrl *services.Controller, state service.State) {
	l.observe(ctrl, state)
}

// Transition is part of the services.Listener interface.
func (l *removalListener) Transition(ctrl *services.Controller, _, to service.State) {
	l.observe(ctrl, to)
}

func (l *removalListener) observe(ctrl *services.Controller, state service.State) {
	if l.settled || state != service.Removed {
		return
	}
	l.settled = true
	ctrl.RemoveListener(l)
	l.handler.Complete()
}

// replaceListener removes the controller it is attached to, and runs
// then once that controller is removed.
type replaceListener struct {
	services.BaseListener

	registry ServiceRegistry
	logger   Logger
	then     func()
	fired    bool
}

// ListenerAdded is part of the services.Listener interface.
func (l *replaceListener) ListenerAdded(ctrl *services.Controller, state service.State) {
	if state == service.Removed {
		l.fire(ctrl)
		return
	}
	if err := l.registry.SetMode(ctrl.Name(), service.Remove); err != nil {
		// Nothing left under that name to wait for.
		l.logger.Debugf("requesting removal of %q: %v", ctrl.Name(), err)
		l.fire(ctrl)
	}
}

// Transition is part of the services.Listener interface.
func (l *replaceListener) Transition(ctrl *services.Controller, _, to service.State) {
	if to == service.Removed {
		l.fire(ctrl)
	}
}

func (l *replaceListener) fire(ctrl *services.Controller) {
	if l.fired {
		return
	}
	l.fired = true
	ctrl.RemoveListener(l)
	l.then()
}
