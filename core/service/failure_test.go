// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package service_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/opcore/core/service"
)

type FailureInfoSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&FailureInfoSuite{})

var (
	chains = service.NewName("deployment", "chains")
	repo   = service.NewName("deployment", "repository")
)

func (*FailureInfoSuite) TestZeroValue(c *gc.C) {
	var info service.FailureInfo
	c.Check(info.IsEmpty(), jc.IsTrue)
	c.Check(info.FailedDependencies(), gc.HasLen, 0)
	c.Check(info.StartFailures(), gc.HasLen, 0)
	c.Check(info.String(), gc.Equals, "")
}

func (*FailureInfoSuite) TestAccumulatesWithoutOverwriting(c *gc.C) {
	var info service.FailureInfo
	info.AddStartFailure(chains, errors.New("first"))
	info.AddStartFailure(chains, errors.New("second"))
	info.AddStartFailure(repo, nil)
	info.AddFailedDependency(chains)
	info.AddFailedDependency(chains)

	failures := info.StartFailures()
	c.Assert(failures, gc.HasLen, 1)
	c.Check(failures[chains], gc.ErrorMatches, "first")
	c.Check(info.FailedDependencies(), jc.DeepEquals, []service.Name{chains})
}

func (*FailureInfoSuite) TestMergeAndString(c *gc.C) {
	var root service.FailureInfo
	root.AddStartFailure(chains, errors.New("no deployers"))

	var bystander service.FailureInfo
	bystander.AddFailedDependency(repo)
	bystander.AddFailedDependency(chains)
	bystander.Merge(root)

	c.Check(bystander.String(), gc.Equals,
		"service failures: [deployment.chains: no deployers]; "+
			"failed dependencies: [deployment.chains, deployment.repository]")
}

func (*FailureInfoSuite) TestCopyIsIndependent(c *gc.C) {
	var info service.FailureInfo
	info.AddFailedDependency(chains)
	copied := info.Copy()
	copied.AddFailedDependency(repo)
	c.Check(info.FailedDependencies(), gc.HasLen, 1)
	c.Check(copied.FailedDependencies(), gc.HasLen, 2)
}
