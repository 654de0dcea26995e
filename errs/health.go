// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package errs

import "context"

// HealthCheckable is the interface for a component that can report its
// own health. No type in this module implements it.
type HealthCheckable interface {
	HealthCheck(context.Context) (interface{}, error)
}

// HealthStatus is a coarse health signal.
type HealthStatus int

const (
	HealthUnknown HealthStatus = iota
	HealthHealthy
	HealthUnhealthy
)

func (h HealthStatus) String() string {
	switch h {
	case HealthHealthy:
		return "healthy"
	case HealthUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}
