// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package services

import "context"

// Service is the work a controller runs. Start and Stop are called on
// the registry's work pool, never concurrently for one service, and
// Stop is only called after a successful Start. The context is
// cancelled when the registry is stopped.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// NopService starts and stops without doing anything.
type NopService struct{}

// Start is part of the Service interface.
func (NopService) Start(context.Context) error { return nil }

// Stop is part of the Service interface.
func (NopService) Stop(context.Context) error { return nil }
