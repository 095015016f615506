// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package services

import (
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultMaxConcurrentWork is used when Config.MaxConcurrentWork is zero.
const DefaultMaxConcurrentWork = 16

// Logger is the logging interface used by the registry.
type Logger interface {
	Errorf(string, ...interface{})
	Warningf(string, ...interface{})
	Infof(string, ...interface{})
	Debugf(string, ...interface{})
	Tracef(string, ...interface{})
}

// Config holds the dependencies of a Registry.
type Config struct {
	// Clock stamps every recorded transition.
	Clock clock.Clock

	// Logger logs stuff.
	Logger Logger

	// MaxConcurrentWork bounds how many start or stop calls may run at
	// once. Zero means DefaultMaxConcurrentWork.
	MaxConcurrentWork int

	// PrometheusRegisterer, if set, has the registry's collector
	// registered for the registry's lifetime.
	PrometheusRegisterer prometheus.Registerer
}

// Validate ensures that the configuration is
// correctly populated for registry operation.
func (config Config) Validate() error {
	if config.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	if config.Logger == nil {
		return errors.NotValidf("nil Logger")
	}
	if config.MaxConcurrentWork < 0 {
		return errors.NotValidf("negative MaxConcurrentWork %d", config.MaxConcurrentWork)
	}
	return nil
}

func (config Config) maxConcurrentWork() int {
	if config.MaxConcurrentWork == 0 {
		return DefaultMaxConcurrentWork
	}
	return config.MaxConcurrentWork
}
