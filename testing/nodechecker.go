// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"fmt"

	gc "gopkg.in/check.v1"

	"github.com/juju/opcore/core/confignode"
)

type nodeEqualsChecker struct {
	*gc.CheckerInfo
}

// NodeEquals checks that two configuration nodes define the same
// attribute values and have equal children. Undefined attributes are
// ignored, as they are by confignode.Node.Equal.
var NodeEquals gc.Checker = &nodeEqualsChecker{
	&gc.CheckerInfo{Name: "NodeEquals", Params: []string{"obtained", "expected"}},
}

func (c *nodeEqualsChecker) Check(params []interface{}, names []string) (bool, string) {
	obtained, ok := params[0].(confignode.Node)
	if !ok {
		return false, fmt.Sprintf("%s is not a confignode.Node", names[0])
	}
	expected, ok := params[1].(confignode.Node)
	if !ok {
		return false, fmt.Sprintf("%s is not a confignode.Node", names[1])
	}
	if obtained.Equal(expected) {
		return true, ""
	}
	return false, ""
}
