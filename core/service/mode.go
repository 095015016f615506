// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package service

import "github.com/juju/errors"

// Mode is the lifecycle disposition requested for a service.
type Mode string

const (
	// Active services should be up.
	Active Mode = "active"

	// Passive services start opportunistically once every dependency is
	// up, and stop when a dependency goes away. A passive service never
	// fails because a dependency failed.
	Passive Mode = "passive"

	// Remove services should stop and be removed from the registry.
	Remove Mode = "remove"
)

// Validate returns an error if the mode is not known.
func (m Mode) Validate() error {
	switch m {
	case Active, Passive, Remove:
		return nil
	}
	return errors.NotValidf("mode %q", string(m))
}

func (m Mode) String() string {
	return string(m)
}
