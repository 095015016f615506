// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"fmt"

	"github.com/juju/loggo/v2"
)

// NoopLogger satisfies the Logger interfaces used across this module
// and discards everything.
type NoopLogger struct{}

func (NoopLogger) Criticalf(string, ...interface{}) {}
func (NoopLogger) Errorf(string, ...interface{})    {}
func (NoopLogger) Warningf(string, ...interface{})  {}
func (NoopLogger) Infof(string, ...interface{})     {}
func (NoopLogger) Debugf(string, ...interface{})    {}
func (NoopLogger) Tracef(string, ...interface{})    {}

// CheckLog is an interface that can be used to log messages to a
// *testing.T or *check.C.
type CheckLog interface {
	Logf(string, ...interface{})
}

// CheckLogger writes every message to a *testing.T or *check.C, so
// test output carries the component logs of the failing test only.
type CheckLogger struct {
	Log CheckLog
}

// NewCheckLogger returns a CheckLogger that logs to the given CheckLog.
func NewCheckLogger(log CheckLog) CheckLogger {
	return CheckLogger{Log: log}
}

func (c CheckLogger) Criticalf(msg string, args ...interface{}) {
	c.Logf(loggo.CRITICAL, msg, args...)
}
func (c CheckLogger) Errorf(msg string, args ...interface{}) {
	c.Logf(loggo.ERROR, msg, args...)
}
func (c CheckLogger) Warningf(msg string, args ...interface{}) {
	c.Logf(loggo.WARNING, msg, args...)
}
func (c CheckLogger) Infof(msg string, args ...interface{}) {
	c.Logf(loggo.INFO, msg, args...)
}
func (c CheckLogger) Debugf(msg string, args ...interface{}) {
	c.Logf(loggo.DEBUG, msg, args...)
}
func (c CheckLogger) Tracef(msg string, args ...interface{}) {
	c.Logf(loggo.TRACE, msg, args...)
}

// Logf logs msg at the given level.
func (c CheckLogger) Logf(level loggo.Level, msg string, args ...interface{}) {
	c.Log.Logf(fmt.Sprintf("%s: %s", level.String(), msg), args...)
}
