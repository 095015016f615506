// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package compensate_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/opcore/core/confignode"
	"github.com/juju/opcore/core/operation"
	"github.com/juju/opcore/internal/compensate"
)

type CompensateSuite struct {
	testing.IsolationSuite

	root confignode.Node
}

var _ = gc.Suite(&CompensateSuite{})

const snapshotYAML = `
deployment=app1:
  name: app1
  runtime-name: app1.war
  hash: "0a0b"
  enabled: true
deployment=app2:
  name: app2
  runtime-name: app2.war
  hash: "0c0d"
  enabled: false
subsystem=threads:
  thread-factory=workers:
    max-threads: 10
    priority: null
`

var (
	app1    = confignode.MustNewAddress("deployment", "app1")
	app2    = confignode.MustNewAddress("deployment", "app2")
	workers = confignode.MustNewAddress("subsystem", "threads", "thread-factory", "workers")
)

func (s *CompensateSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	root, err := confignode.ParseYAML([]byte(snapshotYAML))
	c.Assert(err, jc.ErrorIsNil)
	s.root = root
}

func (s *CompensateSuite) TestAdd(c *gc.C) {
	addr := confignode.MustNewAddress("subsystem", "threads", "thread-factory", "spare")
	forward := operation.NewOperation(operation.Add, addr).With("max-threads", 4)

	inverse, err := compensate.Build(forward, s.root)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(inverse, jc.DeepEquals, operation.NewOperation(operation.Remove, addr))
}

func (s *CompensateSuite) TestRemoveCopiesDefinedAttributesOnly(c *gc.C) {
	forward := operation.NewOperation(operation.Remove, workers)

	inverse, err := compensate.Build(forward, s.root)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(inverse.Name, gc.Equals, operation.Add)
	c.Check(inverse.Address, jc.DeepEquals, workers)
	c.Check(inverse.Parameters, jc.DeepEquals, map[string]interface{}{
		"max-threads": 10,
	})
}

func (s *CompensateSuite) TestRemoveMissing(c *gc.C) {
	addr := confignode.MustNewAddress("subsystem", "threads", "thread-factory", "ghost")
	_, err := compensate.Build(operation.NewOperation(operation.Remove, addr), s.root)
	c.Check(err, gc.ErrorMatches, `compensating remove .* \{\}: node /subsystem=threads/thread-factory=ghost not found`)
	c.Check(err, jc.ErrorIs, errors.NotFound)
}

func (s *CompensateSuite) TestDeploy(c *gc.C) {
	addr := confignode.MustNewAddress("deployment", "app3")
	forward := operation.NewOperation(operation.Deploy, addr).
		With(operation.Name, "app3").
		With(operation.RuntimeName, "app3.war").
		With(operation.Hash, "0e0f")

	inverse, err := compensate.Build(forward, s.root)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(inverse, jc.DeepEquals, operation.NewOperation(operation.Undeploy, addr))
}

func (s *CompensateSuite) TestUndeploy(c *gc.C) {
	inverse, err := compensate.Build(operation.NewOperation(operation.Undeploy, app1), s.root)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(inverse.Name, gc.Equals, operation.Deploy)
	c.Check(inverse.Address, jc.DeepEquals, app1)
	c.Check(inverse.Parameters, jc.DeepEquals, map[string]interface{}{
		operation.Name:        "app1",
		operation.RuntimeName: "app1.war",
		operation.Hash:        "0a0b",
	})
}

func (s *CompensateSuite) TestReplaceOther(c *gc.C) {
	forward := operation.NewOperation(operation.ReplaceDeployment, app2).
		With(operation.Name, "app2").
		With(operation.ToReplace, "app1")

	inverse, err := compensate.Build(forward, s.root)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(inverse.Name, gc.Equals, operation.ReplaceDeployment)
	c.Check(inverse.Address, jc.DeepEquals, app1)
	c.Check(inverse.Parameters, jc.DeepEquals, map[string]interface{}{
		operation.Name:      "app1",
		operation.ToReplace: "app2",
	})
}

func (s *CompensateSuite) TestReplaceSelfCarriesOldContent(c *gc.C) {
	forward := operation.NewOperation(operation.ReplaceDeployment, app1).
		With(operation.Name, "app1").
		With(operation.ToReplace, "app1").
		With(operation.Hash, "1a1b")

	inverse, err := compensate.Build(forward, s.root)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(inverse.Address, jc.DeepEquals, app1)
	c.Check(inverse.Parameters, jc.DeepEquals, map[string]interface{}{
		operation.Name:        "app1",
		operation.ToReplace:   "app1",
		operation.RuntimeName: "app1.war",
		operation.Hash:        "0a0b",
	})
}

func (s *CompensateSuite) TestReplaceMalformed(c *gc.C) {
	forward := operation.NewOperation(operation.ReplaceDeployment, app1).
		With(operation.Name, "app1")
	_, err := compensate.Build(forward, s.root)
	c.Check(err, gc.ErrorMatches, `.*replace-deployment request missing required parameter "to-replace".*`)
	c.Check(err, jc.ErrorIs, operation.ErrRequestMalformed)
}

func (s *CompensateSuite) TestWriteAttributeRestoresValue(c *gc.C) {
	forward := operation.NewOperation(operation.WriteAttribute, workers).
		With(operation.Name, "max-threads").
		With(operation.Value, 20)

	inverse, err := compensate.Build(forward, s.root)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(inverse, jc.DeepEquals, operation.NewOperation(operation.WriteAttribute, workers).
		With(operation.Name, "max-threads").
		With(operation.Value, 10))
}

func (s *CompensateSuite) TestWriteAttributeUndefinesNewValue(c *gc.C) {
	forward := operation.NewOperation(operation.WriteAttribute, workers).
		With(operation.Name, "priority").
		With(operation.Value, 5)

	inverse, err := compensate.Build(forward, s.root)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(inverse, jc.DeepEquals, operation.NewOperation(operation.UndefineAttribute, workers).
		With(operation.Name, "priority"))
}

func (s *CompensateSuite) TestUndefineAttribute(c *gc.C) {
	forward := operation.NewOperation(operation.UndefineAttribute, workers).
		With(operation.Name, "max-threads")

	inverse, err := compensate.Build(forward, s.root)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(inverse, jc.DeepEquals, operation.NewOperation(operation.WriteAttribute, workers).
		With(operation.Name, "max-threads").
		With(operation.Value, 10))
}

func (s *CompensateSuite) TestUnknownOperation(c *gc.C) {
	_, err := compensate.Build(operation.NewOperation("reload", app1), s.root)
	c.Check(err, gc.ErrorMatches, `compensating "reload" not supported`)
	c.Check(err, jc.ErrorIs, errors.NotSupported)
}
