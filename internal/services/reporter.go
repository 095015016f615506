// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package services

// The Key constants describe the features of registry and controller
// reports. Reports are for the humans that read them; no code should
// depend on particular Report formats.
const (
	// KeyState holds a controller's current state.
	KeyState = "state"

	// KeyMode holds a controller's requested mode.
	KeyMode = "mode"

	// KeyError holds the summary of a controller's failure info, and is
	// omitted while there is nothing to report.
	KeyError = "error"

	// KeyDependencies holds the names of the services a controller
	// depends on.
	KeyDependencies = "dependencies"

	// KeyUnresolved holds the dependencies not currently installed.
	KeyUnresolved = "unresolved"

	// KeyServices holds a map of service name to controller report.
	KeyServices = "services"
)
