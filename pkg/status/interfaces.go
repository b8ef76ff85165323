// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import "context"

// DependencyInterface is anything the service can ping to report readiness.
type DependencyInterface interface {
	Ping(ctx context.Context) error
}
