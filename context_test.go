// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quannealing

import (
	"context"
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestIdentityRoundTrip(t *testing.T) {
	ctx := context.Background()
	id := Identity{NetworkID: 7, NodeID: ids.GenerateTestNodeID()}
	ctx = WithIdentity(ctx, id)

	require.Equal(t, id, MustIdentity(ctx))
	require.Equal(t, id.NodeID, NodeID(ctx))
	require.Equal(t, id.NetworkID, NetworkID(ctx))
}

func TestMustIdentityPanicsWhenMissing(t *testing.T) {
	require.Panics(t, func() {
		MustIdentity(context.Background())
	})
}

func TestEpochRoundTrip(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, uint64(0), Epoch(ctx))

	ctx = WithEpoch(ctx, 42)
	require.Equal(t, uint64(42), Epoch(ctx))
}

func TestLoggerDefaultsToNoOp(t *testing.T) {
	ctx := context.Background()
	require.NotNil(t, Logger(ctx))
}
