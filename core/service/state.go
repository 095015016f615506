// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package service

// State is the observed lifecycle position of a service.
type State string

const (
	Down     State = "down"
	Starting State = "starting"
	Up       State = "up"
	Failed   State = "failed"
	Stopping State = "stopping"
	Removed  State = "removed"
)

func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition can leave s.
func (s State) IsTerminal() bool {
	return s == Removed
}

// IsQuiescent reports whether a service in state s holds nothing
// started that depends on its dependencies.
func (s State) IsQuiescent() bool {
	switch s {
	case Down, Failed, Removed:
		return true
	}
	return false
}
