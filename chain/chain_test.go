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

	"github.com/shubham4564/proofwithquantumannealing-sub001/config"
	"github.com/shubham4564/proofwithquantumannealing-sub001/executor"
	"github.com/shubham4564/proofwithquantumannealing-sub001/schedule"
	"github.com/shubham4564/proofwithquantumannealing-sub001/shred"
	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
)

type fakeSlotBuffer struct {
	out [][]byte
}

func (f *fakeSlotBuffer) SlotStart()         {}
func (f *fakeSlotBuffer) SlotEnd() [][]byte  { return f.out }

type fakePendingDrainer struct{}

func (fakePendingDrainer) DrainPending() [][]byte { return nil }

type fakeTransport struct {
	sent []ids.NodeID
}

func (f *fakeTransport) Send(ctx context.Context, target ids.NodeID, shreds []shred.Shred) error {
	f.sent = append(f.sent, target)
	return nil
}

func TestManagerTickProducesBlockWhenSelfLeads(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	self := ids.GenerateTestNodeID()

	set := validators.NewSet()
	set.Add(validators.NewValidator(self, 100, 1_000_000))
	set.Add(validators.NewValidator(ids.GenerateTestNodeID(), 100, 1_000_000))

	genesisHash := ids.GenerateTestID()
	sched := schedule.NewManager(50*time.Millisecond, 4, 0, schedule.RoundRobinOracle{}, set)
	require.NoError(t, sched.Bootstrap(time.Now().Add(-time.Millisecond), genesisHash))

	store, err := NewStore(memdb.New())
	require.NoError(t, err)

	state := executor.NewState(map[ids.NodeID]uint64{self: 1000})
	transport := &fakeTransport{}
	slotBuf := &fakeSlotBuffer{}

	mgr := New(self, key, config.DefaultClusterConfig(), genesisHash, sched, store, state, set,
		slotBuf, fakePendingDrainer{}, transport, nil, nil)

	require.NoError(t, mgr.tick(context.Background(), time.Now()))

	tip, has := store.Tip()
	require.True(t, has)
	require.Equal(t, uint64(1), tip)
	require.NotEmpty(t, transport.sent)
}

// With three validators and nothing submitted, every slot this node leads
// across a full epoch produces an empty block whose state root never
// moves, since no transaction ever touches an account.
func TestManagerColdStartEmptyBlocksHaveStableStateRoot(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	self := ids.GenerateTestNodeID()

	set := validators.NewSet()
	set.Add(validators.NewValidator(self, 100, 1_000_000))
	set.Add(validators.NewValidator(ids.GenerateTestNodeID(), 100, 1_000_000))
	set.Add(validators.NewValidator(ids.GenerateTestNodeID(), 100, 1_000_000))

	genesisHash := ids.GenerateTestID()
	slotDuration := 10 * time.Millisecond
	sched := schedule.NewManager(slotDuration, 4, 0, schedule.RoundRobinOracle{}, set)
	start := time.Now().Add(-time.Millisecond)
	require.NoError(t, sched.Bootstrap(start, genesisHash))

	store, err := NewStore(memdb.New())
	require.NoError(t, err)

	state := executor.NewState(map[ids.NodeID]uint64{self: 1000})
	slotBuf := &fakeSlotBuffer{}

	mgr := New(self, key, config.DefaultClusterConfig(), genesisHash, sched, store, state, set,
		slotBuf, fakePendingDrainer{}, &fakeTransport{}, nil, nil)

	var roots []ids.ID
	var prevTip uint64
	for s := 0; s < 4; s++ {
		now := start.Add(time.Duration(s)*slotDuration + time.Millisecond)
		require.NoError(t, mgr.tick(context.Background(), now))

		tip, has := store.Tip()
		if !has || tip == prevTip {
			continue // this node wasn't the scheduled leader for slot s
		}
		prevTip = tip

		blk, err := store.GetByHeight(tip)
		require.NoError(t, err)
		require.Empty(t, blk.Transactions)
		roots = append(roots, blk.StateRootV)
	}

	require.NotEmpty(t, roots, "self must lead at least one of the four slots in a 3-validator epoch")
	for _, r := range roots {
		require.Equal(t, roots[0], r)
	}
}
