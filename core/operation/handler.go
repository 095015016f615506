// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package operation

import (
	"sync"
)

// ResultHandler receives the eventual outcome of an operation. Exactly
// one of Complete or Fail is invoked per top-level operation, possibly
// from a goroutine other than the one that issued it.
type ResultHandler interface {
	// Complete reports that the operation succeeded.
	Complete()

	// Fail reports that the operation failed, with a message summarising
	// every failure gathered for it.
	Fail(message string)
}

// Logger is the logging interface used by this package.
type Logger interface {
	Errorf(string, ...interface{})
}

// Guard returns a ResultHandler that forwards the first outcome to h and
// drops, with an error log, every call after it.
func Guard(h ResultHandler, logger Logger) ResultHandler {
	if g, ok := h.(*guardedHandler); ok {
		return g
	}
	return &guardedHandler{handler: h, logger: logger}
}

type guardedHandler struct {
	handler ResultHandler
	logger  Logger

	mu      sync.Mutex
	settled string
}

func (g *guardedHandler) settle(outcome string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.settled != "" {
		g.logger.Errorf("result handler already settled with %s, dropping %s", g.settled, outcome)
		return false
	}
	g.settled = outcome
	return true
}

// Complete is part of the ResultHandler interface.
func (g *guardedHandler) Complete() {
	if g.settle("complete") {
		g.handler.Complete()
	}
}

// Fail is part of the ResultHandler interface.
func (g *guardedHandler) Fail(message string) {
	if g.settle("fail") {
		g.handler.Fail(message)
	}
}

// FailedError is the error reported by Outcome for a failed operation.
type FailedError struct {
	Message string
}

// Error implements error.
func (e *FailedError) Error() string {
	return e.Message
}

// Outcome is a ResultHandler that records the outcome so a caller can
// wait for it.
type Outcome struct {
	once sync.Once
	done chan struct{}
	err  error
}

// NewOutcome returns an unsettled Outcome.
func NewOutcome() *Outcome {
	return &Outcome{done: make(chan struct{})}
}

// Complete is part of the ResultHandler interface.
func (o *Outcome) Complete() {
	o.once.Do(func() {
		close(o.done)
	})
}

// Fail is part of the ResultHandler interface.
func (o *Outcome) Fail(message string) {
	o.once.Do(func() {
		o.err = &FailedError{Message: message}
		close(o.done)
	})
}

// Done is closed once an outcome has been recorded.
func (o *Outcome) Done() <-chan struct{} {
	return o.done
}

// Err blocks until an outcome is recorded, then returns nil if the
// operation completed or a *FailedError if it failed.
func (o *Outcome) Err() error {
	<-o.done
	return o.err
}
