// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package services

import (
	"sync"
	"sync/atomic"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/worker/v4"
	"github.com/juju/worker/v4/catacomb"

	"github.com/juju/opcore/core/service"
)

// Registry is the directory of installed services. It owns every
// controller, resolves their dependency edges and runs their start and
// stop work on a bounded pool. Dependencies are resolved lazily: a
// service may be installed before the services it depends on, and
// simply stays down until they are up.
//
// Registry is a worker; killing it cancels in-flight work.
type Registry struct {
	catacomb catacomb.Catacomb

	config    Config
	pool      *workPool
	collector *Collector
	seq       atomic.Uint64

	mu          sync.RWMutex
	controllers map[service.Name]*Controller

	// dependents maps a service name, installed or not, to the names of
	// installed services depending on it.
	dependents map[service.Name]set.Strings
}

// NewRegistry starts a new registry configured as supplied. The caller
// takes responsibility for killing, and handling errors from, the
// returned worker.
func NewRegistry(config Config) (*Registry, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	r := &Registry{
		config:      config,
		pool:        newWorkPool(config.maxConcurrentWork()),
		collector:   NewMetricsCollector(),
		controllers: make(map[service.Name]*Controller),
		dependents:  make(map[service.Name]set.Strings),
	}
	if err := catacomb.Invoke(catacomb.Plan{
		Site: &r.catacomb,
		Work: r.loop,
		Init: []worker.Worker{r.pool},
	}); err != nil {
		return nil, errors.Trace(err)
	}
	return r, nil
}

func (r *Registry) loop() error {
	if r.config.PrometheusRegisterer != nil {
		_ = r.config.PrometheusRegisterer.Register(r.collector)
		defer r.config.PrometheusRegisterer.Unregister(r.collector)
	}
	<-r.catacomb.Dying()
	return r.catacomb.ErrDying()
}

// Kill is part of the worker.Worker interface.
func (r *Registry) Kill() {
	r.catacomb.Kill(nil)
}

// Wait is part of the worker.Worker interface.
func (r *Registry) Wait() error {
	return r.catacomb.Wait()
}

// Collector returns the registry's metrics collector.
func (r *Registry) Collector() *Collector {
	return r.collector
}

// Target returns a builder for installing a new service.
func (r *Registry) Target() *Target {
	return &Target{registry: r}
}

// Install adds a controller for the described service and starts
// driving it towards its initial mode. It fails with an
// errors.AlreadyExists error if the name is already installed and not
// removed; the check and the insertion are a single step. Missing
// dependencies are not an error.
//
// Each listener receives ListenerAdded before the controller's first
// transition.
func (r *Registry) Install(desc Descriptor, svc Service, listeners ...Listener) (*Controller, error) {
	if err := desc.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if svc == nil {
		return nil, errors.NotValidf("nil Service for %q", desc.Name)
	}
	desc = desc.normalised()
	ctrl := newController(r, desc, svc, listeners)

	r.mu.Lock()
	var orphaned []service.Name
	if existing, exists := r.controllers[desc.Name]; exists {
		if existing.State() != service.Removed {
			r.mu.Unlock()
			return nil, errors.AlreadyExistsf("service %q", desc.Name)
		}
		orphaned = r.dropEdgesLocked(existing)
	}
	r.controllers[desc.Name] = ctrl
	for _, dep := range desc.Dependencies {
		dependents, ok := r.dependents[dep]
		if !ok {
			dependents = set.NewStrings()
			r.dependents[dep] = dependents
		}
		dependents.Add(desc.Name.String())
	}
	for _, dep := range orphaned {
		if depCtrl, ok := r.controllers[dep]; ok && depCtrl.State() == service.Removed {
			r.forgetLocked(depCtrl)
		}
	}
	r.mu.Unlock()

	r.collector.installed()
	r.config.Logger.Debugf("installed service %q (mode %s, dependencies %v)", desc.Name, desc.InitialMode, desc.Dependencies)
	ctrl.enqueue(ctrl.announce)
	return ctrl, nil
}

// Lookup returns the controller installed under name. The second
// result is false if there is none; that is not an error.
func (r *Registry) Lookup(name service.Name) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctrl, ok := r.controllers[name]
	return ctrl, ok
}

// SetMode requests a new mode for the named service. It returns
// immediately; the controller acts on the request asynchronously.
func (r *Registry) SetMode(name service.Name, mode service.Mode) error {
	if err := mode.Validate(); err != nil {
		return errors.Trace(err)
	}
	ctrl, ok := r.Lookup(name)
	if !ok {
		return errors.NotFoundf("service %q", name)
	}
	ctrl.enqueue(func() { ctrl.setMode(mode) })
	return nil
}

// Retry asks a failed service to forget its failure and go down, from
// where it starts again if its mode and dependencies allow. It has no
// effect on a service that is not failed.
func (r *Registry) Retry(name service.Name) error {
	ctrl, ok := r.Lookup(name)
	if !ok {
		return errors.NotFoundf("service %q", name)
	}
	ctrl.enqueue(ctrl.retry)
	return nil
}

// Names returns the names of every installed service, in order.
func (r *Registry) Names() []service.Name {
	r.mu.RLock()
	names := make([]service.Name, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	service.SortNames(names)
	return names
}

// Report returns a map describing every installed controller.
func (r *Registry) Report() map[string]interface{} {
	reports := make(map[string]interface{})
	for _, name := range r.Names() {
		if ctrl, ok := r.Lookup(name); ok {
			reports[name.String()] = ctrl.Report()
		}
	}
	return map[string]interface{}{
		KeyServices: reports,
	}
}

// dependentsOf returns the installed controllers depending on name.
func (r *Registry) dependentsOf(name service.Name) []*Controller {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := r.dependents[name].SortedValues()
	ctrls := make([]*Controller, 0, len(names))
	for _, dependent := range names {
		if ctrl, ok := r.controllers[service.Name(dependent)]; ok {
			ctrls = append(ctrls, ctrl)
		}
	}
	return ctrls
}

// forget drops a removed controller once nothing depends on it. A
// removed controller with installed dependents stays listed until the
// last of them is forgotten, or a new service is installed in its place.
func (r *Registry) forget(ctrl *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forgetLocked(ctrl)
}

func (r *Registry) forgetLocked(ctrl *Controller) {
	name := ctrl.Name()
	if !r.dependents[name].IsEmpty() || r.controllers[name] != ctrl {
		return
	}
	delete(r.controllers, name)
	for _, dep := range r.dropEdgesLocked(ctrl) {
		if depCtrl, ok := r.controllers[dep]; ok && depCtrl.State() == service.Removed {
			r.forgetLocked(depCtrl)
		}
	}
}

// dropEdgesLocked removes ctrl from the dependents of its dependencies,
// and returns the dependencies left with no dependents at all.
func (r *Registry) dropEdgesLocked(ctrl *Controller) []service.Name {
	var orphaned []service.Name
	for _, dep := range ctrl.desc.Dependencies {
		dependents := r.dependents[dep]
		dependents.Remove(ctrl.Name().String())
		if dependents.IsEmpty() {
			delete(r.dependents, dep)
			orphaned = append(orphaned, dep)
		}
	}
	return orphaned
}

// notifyNeighbours asks every installed dependency and dependent of
// ctrl to re-evaluate its own state.
func (r *Registry) notifyNeighbours(ctrl *Controller) {
	for _, dependent := range r.dependentsOf(ctrl.Name()) {
		dependent.enqueue(dependent.evaluate)
	}
	for _, dep := range ctrl.desc.Dependencies {
		if depCtrl, ok := r.Lookup(dep); ok {
			depCtrl.enqueue(depCtrl.evaluate)
		}
	}
}

func (r *Registry) nextSeq() uint64 {
	return r.seq.Add(1)
}
