// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package executor_test

import (
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/opcore/core/confignode"
	"github.com/juju/opcore/core/operation"
	"github.com/juju/opcore/internal/executor"
	"github.com/juju/opcore/internal/services"
	coretesting "github.com/juju/opcore/testing"
)

// RoundTripSuite checks that applying an operation and then its
// compensating operation restores every attribute defined beforehand.
type RoundTripSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&RoundTripSuite{})

func (s *RoundTripSuite) TestCompensationRestoresDefinedAttributes(c *gc.C) {
	root, err := confignode.ParseYAML([]byte(snapshotYAML))
	c.Assert(err, jc.ErrorIsNil)
	exec, err := executor.NewExecutor(executor.Config{
		Logger: coretesting.NoopLogger{},
		NewDeploymentService: func(executor.DeploymentUnit) services.Service {
			return services.NopService{}
		},
		Resources: map[string]executor.ResourceDefinition{
			"thread-factory": {
				ServiceName: threadFactoryName,
				NewService: func(confignode.Address, map[string]interface{}) (services.Service, error) {
					return services.NopService{}, nil
				},
			},
		},
	})
	c.Assert(err, jc.ErrorIsNil)

	for i, test := range []struct {
		about   string
		op      operation.Operation
		touched []confignode.Address
	}{{
		about:   "deploy new",
		op:      deployOp(app3Addr, "app3", "app3.war", "0e0f"),
		touched: []confignode.Address{app3Addr},
	}, {
		about:   "deploy disabled",
		op:      deployOp(app2Addr, "app2", "app2.war", "0c0d"),
		touched: []confignode.Address{app2Addr},
	}, {
		about:   "undeploy",
		op:      operation.NewOperation(operation.Undeploy, app1Addr),
		touched: []confignode.Address{app1Addr},
	}, {
		about: "replace other",
		op: operation.NewOperation(operation.ReplaceDeployment, app2Addr).
			With(operation.Name, "app2").
			With(operation.ToReplace, "app1"),
		touched: []confignode.Address{app1Addr, app2Addr},
	}, {
		about: "replace content",
		op: operation.NewOperation(operation.ReplaceDeployment, app1Addr).
			With(operation.Name, "app1").
			With(operation.ToReplace, "app1").
			With(operation.RuntimeName, "app1-v2.war").
			With(operation.Hash, "1a1b"),
		touched: []confignode.Address{app1Addr},
	}, {
		about:   "add",
		op:      operation.NewOperation(operation.Add, spareAddr).With("max-threads", 2),
		touched: []confignode.Address{spareAddr},
	}, {
		about:   "remove",
		op:      operation.NewOperation(operation.Remove, workersAddr),
		touched: []confignode.Address{workersAddr},
	}, {
		about: "write defined",
		op: operation.NewOperation(operation.WriteAttribute, workersAddr).
			With(operation.Name, "max-threads").
			With(operation.Value, 30),
		touched: []confignode.Address{workersAddr},
	}, {
		about: "write undefined",
		op: operation.NewOperation(operation.WriteAttribute, workersAddr).
			With(operation.Name, "priority").
			With(operation.Value, 3),
		touched: []confignode.Address{workersAddr},
	}, {
		about: "undefine",
		op: operation.NewOperation(operation.UndefineAttribute, workersAddr).
			With(operation.Name, "max-threads"),
		touched: []confignode.Address{workersAddr},
	}} {
		c.Logf("test %d: %s", i, test.about)

		forward, err := exec.Execute(executor.Context{Model: root}, test.op, operation.NewOutcome())
		c.Assert(err, jc.ErrorIsNil)
		applied, err := confignode.Apply(root, forward.Patch)
		c.Assert(err, jc.ErrorIsNil)

		backward, err := exec.Execute(executor.Context{Model: applied}, forward.Compensating, operation.NewOutcome())
		c.Assert(err, jc.ErrorIsNil)
		restored, err := confignode.Apply(applied, backward.Patch)
		c.Assert(err, jc.ErrorIsNil)

		for _, addr := range test.touched {
			before, existed := root.Child(addr)
			if !existed {
				continue
			}
			after, ok := restored.Child(addr)
			c.Assert(ok, jc.IsTrue, gc.Commentf("%s", addr))
			for name, value := range before.DefinedAttributes() {
				got, defined := after.Attribute(name)
				c.Check(defined, jc.IsTrue, gc.Commentf("%s %s", addr, name))
				c.Check(got, gc.DeepEquals, value, gc.Commentf("%s %s", addr, name))
			}
			c.Check(after, coretesting.NodeEquals, before, gc.Commentf("%s", addr))
		}
	}
}
