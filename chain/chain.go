// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"sync"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/shubham4564/proofwithquantumannealing-sub001/block"
	"github.com/shubham4564/proofwithquantumannealing-sub001/config"
	"github.com/shubham4564/proofwithquantumannealing-sub001/executor"
	qlog "github.com/shubham4564/proofwithquantumannealing-sub001/log"
	"github.com/shubham4564/proofwithquantumannealing-sub001/schedule"
	"github.com/shubham4564/proofwithquantumannealing-sub001/shred"
	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
	"github.com/shubham4564/proofwithquantumannealing-sub001/votetracker"
)

// PendingDrainer is satisfied by forwarder.Forwarder: the pool of
// locally-staged datagrams handed to the leader when its slot opens.
type PendingDrainer interface {
	DrainPending() [][]byte
}

// SlotBuffer is satisfied by tpu.Listener: the leader-side UDP ingress
// buffer, cleared at slot start and handed off at slot end.
type SlotBuffer interface {
	SlotStart()
	SlotEnd() [][]byte
}

// BroadcastTransport delivers a TransmissionTask's shreds to target; the
// chain task only computes *which* shreds go *where* (shred.Broadcast),
// the actual UDP send is this collaborator's concern.
type BroadcastTransport interface {
	Send(ctx context.Context, target ids.NodeID, shreds []shred.Shred) error
}

// Manager is the single-threaded "chain task" described in the
// concurrency model: leader schedule, PoH sequencing (via Assembler) and
// block assembly all live here, advanced strictly by slot-tick events.
// It owns the Store exclusively; every other component sees only the
// snapshots or cursors Manager hands out.
type Manager struct {
	self      ids.NodeID
	leaderKey *ecdsa.PrivateKey
	cfg       config.ClusterConfig
	genesis   ids.ID

	schedule  *schedule.Manager
	assembler *Assembler
	store     *Store
	state     *executor.State
	set       validators.Set
	slotBuf   SlotBuffer
	pending   PendingDrainer
	transport BroadcastTransport
	metrics   *Collectors
	log       log.Logger

	// acceptMu serializes every writer of store+state: tick's own
	// leader-path commit and AcceptRemote, which a validator's TVU
	// pipeline may call concurrently from a different goroutine.
	acceptMu sync.Mutex

	// trackMu guards trackers, the per-block-hash vote ledgers a KindVote
	// transaction arriving inside any committed block feeds into.
	trackMu  sync.Mutex
	trackers map[ids.ID]*votetracker.Tracker
}

// New builds a chain Manager. The caller is responsible for having
// already bootstrapped schedule's epoch 0 and seeded state from the
// genesis accounts.
func New(
	self ids.NodeID,
	leaderKey *ecdsa.PrivateKey,
	cfg config.ClusterConfig,
	genesis ids.ID,
	sched *schedule.Manager,
	store *Store,
	state *executor.State,
	set validators.Set,
	slotBuf SlotBuffer,
	pending PendingDrainer,
	transport BroadcastTransport,
	collectors *Collectors,
	logger log.Logger,
) *Manager {
	if logger == nil {
		logger = qlog.NewNoOpLogger()
	}
	return &Manager{
		self:      self,
		leaderKey: leaderKey,
		cfg:       cfg,
		genesis:   genesis,
		schedule:  sched,
		assembler: NewAssembler(cfg.HashesPerTick, 0, logger),
		store:     store,
		state:     state,
		set:       set,
		slotBuf:   slotBuf,
		pending:   pending,
		transport: transport,
		metrics:   collectors,
		log:       logger,
		trackers:  make(map[ids.ID]*votetracker.Tracker),
	}
}

// Run drives the chain task on a slot-duration ticker until ctx is
// cancelled, matching the concurrency model's "single chain task,
// strictly single-threaded, advanced by slot-tick events".
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.SlotDuration)
	defer ticker.Stop()

	m.slotBuf.SlotStart()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := m.tick(ctx, now); err != nil {
				m.log.Error("chain: slot tick failed", "err", err)
			}
		}
	}
}

func (m *Manager) tick(ctx context.Context, now time.Time) error {
	if m.schedule.TransitionNeeded(now) {
		if err := m.schedule.Rollover(); err != nil {
			m.log.Warn("chain: epoch rollover deferred, next schedule not ready", "err", err)
		}
	}

	// Rollover must never leave a gap: the following epoch's schedule is
	// computed as soon as the current one is published, giving it the
	// rest of the current epoch (>= leader_advance slots) to finish
	// before Rollover needs it.
	if !m.schedule.HasNext() {
		_, parentHash, _, err := m.parentCursor()
		if err == nil {
			if err := m.schedule.RegenerateNext(parentHash); err != nil {
				m.log.Debug("chain: next epoch schedule not ready yet", "err", err)
			}
		}
	}

	leader, ok := m.schedule.CurrentLeader(now)
	if !ok {
		return fmt.Errorf("chain: no leader scheduled for slot at %s", now)
	}

	tpuBuf := m.slotBuf.SlotEnd()
	m.slotBuf.SlotStart()

	if leader != m.self {
		return nil
	}

	pendingBuf := m.pending.DrainPending()
	candidates, decodeFailures := collectCandidates(tpuBuf, pendingBuf)
	if decodeFailures > 0 {
		m.log.Debug("chain: dropped undecodable candidates", "count", decodeFailures)
	}

	return m.produceBlock(ctx, now, candidates)
}

// produceBlock runs the rest of the block assembler's procedure (steps
// 2-8) for a slot this node leads: assemble, sign, commit, shred and
// hand off to the broadcast tree.
func (m *Manager) produceBlock(ctx context.Context, now time.Time, candidates []*tx.Transaction) error {
	height, parentHash, parentClosing, err := m.parentCursor()
	if err != nil {
		return err
	}

	in := Input{
		Height:        height,
		ParentHash:    parentHash,
		ParentClosing: parentClosing,
		Leader:        m.self,
		SlotDeadline:  now.Add(m.cfg.SlotDuration),
		State:         m.state,
		Candidates:    candidates,
	}

	b, _ := m.assembler.Assemble(in)
	if err := Sign(b, m.leaderKey); err != nil {
		return fmt.Errorf("chain: signing block %d: %w", height, err)
	}

	m.acceptMu.Lock()
	err = m.store.Add(b)
	m.acceptMu.Unlock()
	if err != nil {
		return fmt.Errorf("chain: committing block %d: %w", height, err)
	}
	m.recordVotes(b)
	if m.metrics != nil {
		m.metrics.BlocksProduced.Inc()
		m.metrics.CandidatesPerBlock.Set(float64(len(b.Transactions)))
	}

	shreds, err := shred.Split(b, shred.DefaultShredSize, m.cfg.ErasureRatio)
	if err != nil {
		return fmt.Errorf("chain: shredding block %d: %w", height, err)
	}

	// The broadcast tree is rooted at whoever leads the slot, so it is
	// rebuilt (a cheap sort, not a network round trip) fresh for this
	// node's own leader turn rather than cached against a stale root.
	tree := shred.NewTree(m.set, m.self, m.cfg.BroadcastFanout)
	tasks := shred.Broadcast(tree, m.self, shreds)
	for _, task := range tasks {
		if err := m.transport.Send(ctx, task.Target, task.Shreds); err != nil {
			m.log.Debug("chain: broadcast send failed", "target", task.Target, "err", err)
		}
	}
	return nil
}

// AcceptRemote commits a block produced by another leader and already
// passed through validate.Validate's six gates: it stores the block and,
// unless it is a re-delivery of an already-committed height, replays its
// transactions against the live account state so this node's own view
// stays consistent with what it just voted on. Re-executing rather than
// adopting Validate's verification-clone keeps Store and State the only
// two places that ever mutate from block acceptance, at the cost of one
// redundant execution pass per remote block.
func (m *Manager) AcceptRemote(b *block.Block) error {
	m.acceptMu.Lock()
	defer m.acceptMu.Unlock()

	tip, has := m.store.Tip()
	duplicate := has && b.HeightV <= tip
	if err := m.store.Add(b); err != nil {
		return fmt.Errorf("chain: accepting remote block %d: %w", b.HeightV, err)
	}
	if duplicate {
		return nil
	}
	executor.Execute(m.state, b.Transactions)
	m.recordVotes(b)
	return nil
}

// recordVotes feeds every KindVote transaction a freshly-committed block
// carries into the vote tracker for the block hash it attests to. A vote
// transaction is itself ordinary candidate traffic (forwarded, included
// by whichever leader is scheduled when it arrives), so this is the only
// place votes are ever extracted from the chain of committed blocks.
func (m *Manager) recordVotes(b *block.Block) {
	m.trackMu.Lock()
	defer m.trackMu.Unlock()
	for _, t := range b.Transactions {
		if t.Kind != tx.KindVote {
			continue
		}
		tracker, ok := m.trackers[t.VoteBlockHash]
		if !ok {
			tracker = votetracker.New(m.set)
			m.trackers[t.VoteBlockHash] = tracker
		}
		if tracker.RecordTransaction(t) {
			m.log.Debug("chain: block finalized", "block_hash", t.VoteBlockHash)
		}
	}
}

// FinalizedOutcome reports the finalized (block_hash, state_root) pair
// for blockHash's vote tracker, if quorum has been reached.
func (m *Manager) FinalizedOutcome(blockHash ids.ID) (votetracker.Outcome, bool) {
	m.trackMu.Lock()
	tracker, ok := m.trackers[blockHash]
	m.trackMu.Unlock()
	if !ok {
		return votetracker.Outcome{}, false
	}
	return tracker.FinalizedOutcome()
}

// Schedule exposes the leader schedule manager so collaborators built
// around a Manager (the TVU reconstruction handler, vote emission) can
// resolve a block's scheduled leader and current slot without Manager
// brokering every call.
func (m *Manager) Schedule() *schedule.Manager { return m.schedule }

// State exposes the live account-state snapshot transactions (and
// validate.Validate's re-execution clones) are checked against.
func (m *Manager) State() *executor.State { return m.state }

// Self returns this node's own identity.
func (m *Manager) Self() ids.NodeID { return m.self }

// ParentClosing resolves the current chain tip's closing PoH hash, the
// seed a freshly-reconstructed block's PoH sequence must replay from.
func (m *Manager) ParentClosing() (ids.ID, error) {
	_, _, closing, err := m.parentCursor()
	return closing, err
}

// parentCursor resolves the height, previous-hash and PoH seed the next
// block extends: genesis for the chain's first block, the chain tip
// otherwise.
func (m *Manager) parentCursor() (height uint64, parentHash, parentClosing ids.ID, err error) {
	tip, has := m.store.Tip()
	if !has {
		return 1, m.genesis, m.genesis, nil
	}
	parent, err := m.store.GetByHeight(tip)
	if err != nil {
		return 0, ids.ID{}, ids.ID{}, fmt.Errorf("chain: loading parent block %d: %w", tip, err)
	}
	closing := m.genesis
	if n := len(parent.PohEntries); n > 0 {
		closing = parent.PohEntries[n-1].OutHash
	}
	return tip + 1, parent.ID(), closing, nil
}
