// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import "context"

// PingerInterface is a dependency whose availability is reported by the status endpoint.
type PingerInterface interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to PingerInterface.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}
