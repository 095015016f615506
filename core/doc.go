// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

/*
Package core holds the concepts and pure logic shared by the service
runtime and the operation executor: configuration trees and patches,
operation requests and result handlers, service names and modes.

When adding to core:

  - it's fine to import from any subpackage of "github.com/juju/opcore/core"
  - but never import from any other subpackage of "github.com/juju/opcore"
  - nothing in here may start goroutines or hold mutable global state

Anything that runs, waits, or talks to a service belongs under internal.
*/
package core
