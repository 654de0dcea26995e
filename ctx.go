// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quannealing

import (
	"context"

	"github.com/luxfi/ids"
)

// Context is a type alias for standard context - use this for cleaner call sites.
type Context = context.Context

// Identity carries the small immutable set of identifiers every long-lived
// task (forwarder, TPU, PoH sequencer, broadcast tree) needs to know about
// this node, threaded through context rather than passed as extra
// parameters down every call chain.
type Identity struct {
	NetworkID uint32
	NodeID    ids.NodeID
}

type identityKey struct{}

// WithIdentity attaches this node's identity to ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// MustIdentity panics if no identity is present; every task is expected to
// have one installed at startup, so a missing identity is a wiring bug.
func MustIdentity(ctx context.Context) Identity {
	v, ok := ctx.Value(identityKey{}).(Identity)
	if !ok {
		panic("quannealing: node identity missing from context")
	}
	return v
}

// NodeID returns this node's ID from ctx.
func NodeID(ctx context.Context) ids.NodeID { return MustIdentity(ctx).NodeID }

// NetworkID returns the network ID from ctx.
func NetworkID(ctx context.Context) uint32 { return MustIdentity(ctx).NetworkID }

type validatorStateKey struct{}

// WithValidatorState attaches a ValidatorState to context so deep call
// chains (leader schedule, vote tracker) can resolve it without a global.
func WithValidatorState(ctx context.Context, vs ValidatorState) context.Context {
	return context.WithValue(ctx, validatorStateKey{}, vs)
}

// GetValidatorState retrieves the ValidatorState from context, or nil.
func GetValidatorState(ctx context.Context) ValidatorState {
	vs, _ := ctx.Value(validatorStateKey{}).(ValidatorState)
	return vs
}
