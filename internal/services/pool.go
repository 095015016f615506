// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package services

import (
	"context"
	"sync"

	"github.com/juju/errors"
	"golang.org/x/sync/semaphore"
	"gopkg.in/tomb.v2"
)

// errPoolStopped is reported for work submitted after the pool started
// shutting down.
var errPoolStopped = errors.New("service registry stopped")

// workPool runs start and stop calls, at most size at a time. It is a
// worker: killing it cancels the context passed to running work, and
// Wait returns once every submitted job has reported back.
type workPool struct {
	tomb tomb.Tomb
	sem  *semaphore.Weighted

	mu    sync.Mutex
	dying bool
}

func newWorkPool(size int) *workPool {
	p := &workPool{sem: semaphore.NewWeighted(int64(size))}
	// Keep the tomb alive between jobs; it only dies once killed.
	p.tomb.Go(func() error {
		<-p.tomb.Dying()
		p.mu.Lock()
		p.dying = true
		p.mu.Unlock()
		return nil
	})
	return p
}

// submit schedules work and arranges for done to be called with its
// result. done is always called exactly once if submit returns nil.
func (p *workPool) submit(work func(context.Context) error, done func(error)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dying {
		return errPoolStopped
	}
	p.tomb.Go(func() error {
		ctx := p.tomb.Context(context.Background())
		if err := p.sem.Acquire(ctx, 1); err != nil {
			done(errors.Annotate(err, "waiting for a worker"))
			return nil
		}
		defer p.sem.Release(1)
		done(runWork(ctx, work))
		return nil
	})
	return nil
}

func runWork(ctx context.Context, work func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
	}()
	return work(ctx)
}

// Kill is part of the worker.Worker interface.
func (p *workPool) Kill() {
	p.tomb.Kill(nil)
}

// Wait is part of the worker.Worker interface.
func (p *workPool) Wait() error {
	return p.tomb.Wait()
}
