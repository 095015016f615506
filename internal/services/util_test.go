// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package services_test

import (
	"context"
	"sync"
	"time"

	gc "gopkg.in/check.v1"

	"github.com/juju/opcore/core/service"
	"github.com/juju/opcore/internal/services"
	"github.com/juju/opcore/internal/testhelpers"
)

// blockingService reports each Start and Stop call, and only returns
// from Start once told what to return.
type blockingService struct {
	starting chan struct{}
	release  chan error
	stopped  chan struct{}
}

func newBlockingService() *blockingService {
	return &blockingService{
		starting: make(chan struct{}, 10),
		release:  make(chan error, 10),
		stopped:  make(chan struct{}, 10),
	}
}

func (s *blockingService) Start(ctx context.Context) error {
	s.starting <- struct{}{}
	select {
	case err := <-s.release:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *blockingService) Stop(context.Context) error {
	s.stopped <- struct{}{}
	return nil
}

func (s *blockingService) waitStarting(c *gc.C) {
	testhelpers.WaitClosed(c, (<-chan struct{})(s.starting), "start")
}

func (s *blockingService) waitStopped(c *gc.C) {
	testhelpers.WaitClosed(c, (<-chan struct{})(s.stopped), "stop")
}

// failingService fails every start.
type failingService struct {
	err error
}

func (s failingService) Start(context.Context) error { return s.err }

func (s failingService) Stop(context.Context) error { return nil }

// stateWatcher is a listener recording every notification it receives.
type stateWatcher struct {
	mu      sync.Mutex
	added   []service.State
	changes []string
	states  chan service.State
}

func newStateWatcher() *stateWatcher {
	return &stateWatcher{states: make(chan service.State, 100)}
}

func (w *stateWatcher) ListenerAdded(_ *services.Controller, state service.State) {
	w.mu.Lock()
	w.added = append(w.added, state)
	w.mu.Unlock()
	w.states <- state
}

func (w *stateWatcher) Transition(_ *services.Controller, from, to service.State) {
	w.mu.Lock()
	w.changes = append(w.changes, from.String()+" -> "+to.String())
	w.mu.Unlock()
	w.states <- to
}

func (w *stateWatcher) Changes() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.changes...)
}

func (w *stateWatcher) Added() []service.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]service.State(nil), w.added...)
}

// waitFor consumes notifications until one reports the given state.
func (w *stateWatcher) waitFor(c *gc.C, state service.State) {
	timeout := time.After(testhelpers.LongWait)
	for {
		select {
		case got := <-w.states:
			if got == state {
				return
			}
		case <-timeout:
			c.Fatalf("timed out waiting for %s; saw %v", state, w.Changes())
		}
	}
}

// assertQuiet fails if any notification arrives within ShortWait.
func (w *stateWatcher) assertQuiet(c *gc.C) {
	select {
	case got := <-w.states:
		c.Fatalf("unexpected notification %s; saw %v", got, w.Changes())
	case <-time.After(testhelpers.ShortWait):
	}
}

// listenerLog records the order in which listeners are called.
type listenerLog struct {
	mu      sync.Mutex
	entries []int
}

func (l *listenerLog) add(index int) {
	l.mu.Lock()
	l.entries = append(l.entries, index)
	l.mu.Unlock()
}

func (l *listenerLog) Entries() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int(nil), l.entries...)
}

// orderedListener adds its index to a shared log on every transition.
type orderedListener struct {
	services.BaseListener
	index int
	log   *listenerLog
}

func (l orderedListener) Transition(*services.Controller, service.State, service.State) {
	l.log.add(l.index)
}
