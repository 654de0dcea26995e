// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quannealing

import (
	"context"

	"github.com/luxfi/log"
)

// contextKey is the type for context keys defined in this file.
type contextKey string

const (
	loggerKey contextKey = "quannealing.logger"
	epochKey  contextKey = "quannealing.epoch"
)

// WithLogger attaches a logger to ctx so deep call chains can log with the
// node's fields (NodeID, component) already bound without passing it down
// every function signature.
func WithLogger(ctx context.Context, l log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// Logger retrieves the logger installed by WithLogger, or a no-op logger
// if none is set.
func Logger(ctx context.Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return NoOpLogger()
}

// WithEpoch attaches the current epoch number to ctx. The leader schedule,
// forwarder and TPU all need to know which epoch's schedule to consult
// without re-deriving it from wall-clock time at every call site.
func WithEpoch(ctx context.Context, epoch uint64) context.Context {
	return context.WithValue(ctx, epochKey, epoch)
}

// Epoch retrieves the epoch installed by WithEpoch, or 0 if none is set.
func Epoch(ctx context.Context) uint64 {
	v, _ := ctx.Value(epochKey).(uint64)
	return v
}
