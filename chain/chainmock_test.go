// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"testing"
	"time"

	"github.com/luxfi/crypto"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shubham4564/proofwithquantumannealing-sub001/chain/chainmock"
	"github.com/shubham4564/proofwithquantumannealing-sub001/config"
	"github.com/shubham4564/proofwithquantumannealing-sub001/executor"
	"github.com/shubham4564/proofwithquantumannealing-sub001/schedule"
	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
)

// TestManagerTickBroadcastsToEveryOtherValidator exercises the same
// leader-produces-a-block path as TestManagerTickProducesBlockWhenSelfLeads,
// but asserts on the broadcast fan-out with a gomock expectation instead of
// a hand-rolled fake, matching the teacher's mockgen-generated mock style.
func TestManagerTickBroadcastsToEveryOtherValidator(t *testing.T) {
	ctrl := gomock.NewController(t)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	self := ids.GenerateTestNodeID()
	peer := ids.GenerateTestNodeID()

	set := validators.NewSet()
	set.Add(validators.NewValidator(self, 100, 1_000_000))
	set.Add(validators.NewValidator(peer, 100, 1_000_000))

	genesisHash := ids.GenerateTestID()
	sched := schedule.NewManager(50*time.Millisecond, 4, 0, schedule.RoundRobinOracle{}, set)
	require.NoError(t, sched.Bootstrap(time.Now().Add(-time.Millisecond), genesisHash))

	store, err := NewStore(memdb.New())
	require.NoError(t, err)

	state := executor.NewState(map[ids.NodeID]uint64{self: 1000})
	slotBuf := &fakeSlotBuffer{}

	transport := chainmock.NewMockBroadcastTransport(ctrl)
	transport.EXPECT().
		Send(gomock.Any(), peer, gomock.Any()).
		Return(nil).
		MinTimes(1)

	mgr := New(self, key, config.DefaultClusterConfig(), genesisHash, sched, store, state, set,
		slotBuf, fakePendingDrainer{}, transport, nil, nil)

	require.NoError(t, mgr.tick(context.Background(), time.Now()))

	tip, has := store.Tip()
	require.True(t, has)
	require.Equal(t, uint64(1), tip)
}
