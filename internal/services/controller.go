// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package services

import (
	"sync"

	"github.com/juju/opcore/core/service"
)

// Controller owns the lifecycle of one installed service. Its state is
// only ever advanced by the single goroutine draining its task queue,
// so transitions of one controller are serialised while unrelated
// controllers move concurrently.
type Controller struct {
	registry *Registry
	desc     Descriptor
	service  Service

	mu        sync.Mutex
	queue     []func()
	draining  bool
	state     service.State
	mode      service.Mode
	failure   service.FailureInfo
	listeners []Listener
	history   []Transition

	// working and started are only touched by the draining goroutine.
	working bool
	started bool
}

func newController(r *Registry, desc Descriptor, svc Service, listeners []Listener) *Controller {
	return &Controller{
		registry:  r,
		desc:      desc,
		service:   svc,
		state:     service.Down,
		mode:      desc.InitialMode,
		listeners: append([]Listener(nil), listeners...),
	}
}

// Name returns the name of the controlled service.
func (c *Controller) Name() service.Name {
	return c.desc.Name
}

// Descriptor returns the descriptor the service was installed with.
func (c *Controller) Descriptor() Descriptor {
	return c.desc.clone()
}

// State returns the current state of the controller.
func (c *Controller) State() service.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns the most recently requested mode.
func (c *Controller) Mode() service.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// FailureInfo returns a copy of the failures recorded since the
// controller last started.
func (c *Controller) FailureInfo() service.FailureInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure.Copy()
}

// History returns every transition made so far, oldest first.
func (c *Controller) History() []Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Transition(nil), c.history...)
}

// AddListener registers l. It returns at once; l subsequently receives
// ListenerAdded with the state current at registration, followed by
// every later transition.
func (c *Controller) AddListener(l Listener) {
	c.enqueue(func() {
		c.mu.Lock()
		c.listeners = append(c.listeners, l)
		state := c.state
		c.mu.Unlock()
		l.ListenerAdded(c, state)
	})
}

// RemoveListener unregisters l. A transition already being delivered
// may still reach it.
func (c *Controller) RemoveListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.listeners {
		if existing == l {
			c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
			return
		}
	}
}

// Report returns a map describing the state of the controller.
func (c *Controller) Report() map[string]interface{} {
	c.mu.Lock()
	state, mode, failure := c.state, c.mode, c.failure.Copy()
	c.mu.Unlock()

	deps := make([]string, 0, len(c.desc.Dependencies))
	unresolved := make([]string, 0)
	for _, dep := range c.desc.Dependencies {
		deps = append(deps, dep.String())
		if _, ok := c.registry.Lookup(dep); !ok {
			unresolved = append(unresolved, dep.String())
		}
	}
	report := map[string]interface{}{
		KeyState:        state.String(),
		KeyMode:         mode.String(),
		KeyDependencies: deps,
		KeyUnresolved:   unresolved,
	}
	if !failure.IsEmpty() {
		report[KeyError] = failure.String()
	}
	return report
}

// enqueue schedules task on the controller's goroutine, starting one if
// none is running.
func (c *Controller) enqueue(task func()) {
	c.mu.Lock()
	c.queue = append(c.queue, task)
	if c.draining {
		c.mu.Unlock()
		return
	}
	c.draining = true
	c.mu.Unlock()
	go c.drain()
}

func (c *Controller) drain() {
	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.draining = false
			c.mu.Unlock()
			return
		}
		task := c.queue[0]
		c.queue[0] = nil
		c.queue = c.queue[1:]
		c.mu.Unlock()
		task()
	}
}

// announce delivers ListenerAdded to the listeners supplied at install
// and then starts driving the controller.
func (c *Controller) announce() {
	c.mu.Lock()
	listeners := append([]Listener(nil), c.listeners...)
	state := c.state
	c.mu.Unlock()
	for _, l := range listeners {
		l.ListenerAdded(c, state)
	}
	c.evaluate()
}

func (c *Controller) setMode(mode service.Mode) {
	c.mu.Lock()
	old := c.mode
	c.mode = mode
	c.mu.Unlock()
	if old != mode {
		c.registry.config.Logger.Debugf("service %q mode %s -> %s", c.desc.Name, old, mode)
	}
	c.evaluate()
}

func (c *Controller) retry() {
	c.mu.Lock()
	retry := c.state == service.Failed && c.mode != service.Remove
	if retry {
		c.failure = service.FailureInfo{}
	}
	c.mu.Unlock()
	if retry {
		c.transition(service.Down)
	}
	c.evaluate()
}

// evaluate advances the controller for as long as its mode and the
// states of its neighbours allow.
func (c *Controller) evaluate() {
	for c.step() {
	}
}

// step makes at most one transition, and reports whether it did.
func (c *Controller) step() bool {
	if c.working {
		return false
	}
	c.mu.Lock()
	state, mode := c.state, c.mode
	c.mu.Unlock()

	switch state {
	case service.Down:
		return c.stepDown(mode)
	case service.Up:
		if mode == service.Remove {
			c.transition(service.Stopping)
			return true
		}
		if mode == service.Active && !c.checkCollapse() {
			c.transition(service.Stopping)
			return true
		}
		if mode == service.Passive && !c.dependencies().ready {
			c.transition(service.Stopping)
			return true
		}
	case service.Failed:
		if mode == service.Remove {
			c.transition(service.Stopping)
			return true
		}
	case service.Stopping:
		return c.stepStopping()
	}
	return false
}

func (c *Controller) stepDown(mode service.Mode) bool {
	if mode == service.Remove {
		c.transition(service.Removed)
		return false
	}
	deps := c.dependencies()
	if mode == service.Active && len(deps.failed) > 0 {
		c.mu.Lock()
		for _, dep := range deps.failed {
			c.failure.AddFailedDependency(dep.Name())
			c.failure.Merge(dep.FailureInfo())
		}
		c.mu.Unlock()
		c.registry.config.Logger.Debugf("service %q cannot start: dependencies failed", c.desc.Name)
		c.transition(service.Failed)
		return true
	}
	if !deps.ready {
		return false
	}
	c.mu.Lock()
	c.failure = service.FailureInfo{}
	c.mu.Unlock()
	c.transition(service.Starting)
	c.beginStart()
	return false
}

// stepStopping waits for every installed dependent to settle before
// stopping the service.
func (c *Controller) stepStopping() bool {
	for _, dependent := range c.registry.dependentsOf(c.desc.Name) {
		if !dependent.State().IsQuiescent() {
			return false
		}
	}
	if !c.started {
		c.stopped()
		return true
	}
	c.working = true
	err := c.registry.pool.submit(c.service.Stop, func(err error) {
		c.enqueue(func() { c.stopDone(err) })
	})
	if err != nil {
		c.enqueue(func() { c.stopDone(err) })
	}
	return false
}

func (c *Controller) beginStart() {
	c.working = true
	err := c.registry.pool.submit(c.service.Start, func(err error) {
		c.enqueue(func() { c.startDone(err) })
	})
	if err != nil {
		c.enqueue(func() { c.startDone(err) })
	}
}

func (c *Controller) startDone(err error) {
	c.working = false
	if err != nil {
		c.registry.config.Logger.Warningf("service %q failed to start: %v", c.desc.Name, err)
		c.registry.collector.startFailed()
		c.mu.Lock()
		c.failure.AddStartFailure(c.desc.Name, err)
		c.mu.Unlock()
		c.transition(service.Failed)
		c.evaluate()
		return
	}
	c.started = true
	if c.Mode() == service.Remove || !c.checkCollapse() {
		c.transition(service.Stopping)
	} else {
		c.transition(service.Up)
	}
	c.evaluate()
}

func (c *Controller) stopDone(err error) {
	c.working = false
	if err != nil {
		c.registry.config.Logger.Errorf("service %q failed to stop cleanly: %v", c.desc.Name, err)
	}
	c.stopped()
	c.evaluate()
}

func (c *Controller) stopped() {
	c.started = false
	if c.Mode() == service.Remove {
		c.transition(service.Removed)
	} else {
		c.transition(service.Down)
	}
}

// dependencyView summarises the dependencies of a controller.
type dependencyView struct {
	// ready is true when every dependency is installed and up.
	ready bool

	// failed holds the dependencies in the failed state.
	failed []*Controller

	// gone holds the dependencies that are absent, removed or being
	// removed.
	gone []service.Name

	// notUp holds the installed dependencies that are neither up, failed
	// nor going away, such as one stopping during a cascade.
	notUp []service.Name
}

func (c *Controller) dependencies() dependencyView {
	view := dependencyView{ready: true}
	for _, dep := range c.desc.Dependencies {
		ctrl, ok := c.registry.Lookup(dep)
		if !ok {
			view.ready = false
			view.gone = append(view.gone, dep)
			continue
		}
		ctrl.mu.Lock()
		state, mode := ctrl.state, ctrl.mode
		ctrl.mu.Unlock()
		switch {
		case state == service.Up:
		case state == service.Failed:
			view.ready = false
			view.failed = append(view.failed, ctrl)
		case state == service.Removed || mode == service.Remove:
			view.ready = false
			view.gone = append(view.gone, dep)
		default:
			view.ready = false
			view.notUp = append(view.notUp, dep)
		}
	}
	return view
}

// checkCollapse returns true if every dependency is still up. Otherwise
// it records every dependency that is not up and returns false.
func (c *Controller) checkCollapse() bool {
	deps := c.dependencies()
	if deps.ready {
		return true
	}
	c.mu.Lock()
	for _, dep := range deps.failed {
		c.failure.AddFailedDependency(dep.Name())
		c.failure.Merge(dep.FailureInfo())
	}
	for _, name := range deps.gone {
		c.failure.AddFailedDependency(name)
	}
	for _, name := range deps.notUp {
		c.failure.AddFailedDependency(name)
	}
	c.mu.Unlock()
	c.registry.config.Logger.Debugf("service %q lost its dependencies: %v", c.desc.Name, c.FailureInfo())
	return false
}

// transition moves the controller to a new state, records it, and
// notifies the listeners and then the neighbouring controllers.
func (c *Controller) transition(to service.State) {
	r := c.registry
	c.mu.Lock()
	from := c.state
	c.state = to
	c.history = append(c.history, Transition{
		From: from,
		To:   to,
		Seq:  r.nextSeq(),
		At:   r.config.Clock.Now(),
	})
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	r.config.Logger.Tracef("service %q %s -> %s", c.desc.Name, from, to)
	r.collector.transition(from, to)
	if to == service.Removed {
		r.forget(c)
	}
	for _, l := range listeners {
		l.Transition(c, from, to)
	}
	r.notifyNeighbours(c)
}
