// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"crypto/ecdsa"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/shubham4564/proofwithquantumannealing-sub001/block"
	"github.com/shubham4564/proofwithquantumannealing-sub001/executor"
	qlog "github.com/shubham4564/proofwithquantumannealing-sub001/log"
	"github.com/shubham4564/proofwithquantumannealing-sub001/poh"
	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
)

// defaultBroadcastBudget is the broadcast budget used when NewAssembler is
// given zero: time reserved before the slot deadline to bound how long
// Assemble may spend producing a block, leaving margin for shredding and
// the first hop of the broadcast tree.
const defaultBroadcastBudget = 50 * time.Millisecond

// Assembler turns a leader's candidate transaction set into a signed
// block with a complete PoH sequence and a state root, per the block
// assembler's eight-step procedure.
type Assembler struct {
	hashesPerTick    uint64
	broadcastBudget  time.Duration
	log              log.Logger
}

// NewAssembler builds an Assembler. hashesPerTick matches the cluster's
// PoH rate; broadcastBudget is subtracted by Assemble from the time left
// before Input.SlotDeadline (zero selects defaultBroadcastBudget).
func NewAssembler(hashesPerTick uint64, broadcastBudget time.Duration, logger log.Logger) *Assembler {
	if broadcastBudget <= 0 {
		broadcastBudget = defaultBroadcastBudget
	}
	if logger == nil {
		logger = qlog.NewNoOpLogger()
	}
	return &Assembler{hashesPerTick: hashesPerTick, broadcastBudget: broadcastBudget, log: logger}
}

// Input is everything Assemble needs to produce the next block.
type Input struct {
	Height        uint64
	ParentHash    ids.ID
	ParentClosing ids.ID // the parent block's closing PoH hash, the seed for this slot's chain
	Leader        ids.NodeID
	SlotDeadline  time.Time // wall-clock time by which Assemble must return
	State         *executor.State
	Candidates    []*tx.Transaction // from TPU buffer + pending pool + forwarder pool, already deduplicated by caller
}

// Assemble runs steps 2-6 of the block assembler procedure: reset PoH
// from the parent's closing hash, tick+ingest every candidate
// transaction in arrival order, execute them via the parallel executor,
// append a closing tick, and return the unsigned block plus the PoH
// sequencer's final hash. Signing (step 7) and handing off to the
// broadcast tree (step 8) are the caller's responsibility, since those
// need the leader's private key and the broadcast tree respectively,
// neither of which the assembler itself owns.
func (a *Assembler) Assemble(in Input) (*block.Block, []executor.Result) {
	seq := poh.NewSequencer(in.ParentClosing, a.hashesPerTick)

	txs := a.truncateToDeadline(in.Candidates, in.SlotDeadline)
	if len(txs) < len(in.Candidates) {
		a.log.Warn("assembler: truncating transaction set to fit slot budget",
			"included", len(txs), "candidates", len(in.Candidates))
	}

	for _, t := range txs {
		seq.Tick()
		seq.MixIn(t.Digest())
	}
	seq.Tick() // closing tick, step 5

	results, stateRoot := executor.Execute(in.State, txs)

	b := &block.Block{
		HeightV:       in.Height,
		PreviousHashV: in.ParentHash,
		Leader:        in.Leader,
		TimestampV:    time.Now().Unix(),
		Transactions:  txs,
		PohEntries:    seq.Entries(),
		StateRootV:    stateRoot,
	}
	return b, results
}

// truncateToDeadline drops trailing candidates once the slot's broadcast
// budget leaves no more room, per the timing note in the block
// assembler's responsibility: "if the budget is exceeded, the assembler
// truncates the transaction set". The cutoff is a fixed per-transaction
// allowance rather than re-checking wall-clock time after every tick, so
// Assemble's own runtime stays bounded and predictable under test.
func (a *Assembler) truncateToDeadline(candidates []*tx.Transaction, deadline time.Time) []*tx.Transaction {
	budget := time.Until(deadline) - a.broadcastBudget
	if budget <= 0 {
		return nil
	}
	maxTxs := estimateCapacity(budget)
	if maxTxs >= len(candidates) {
		return candidates
	}
	return candidates[:maxTxs]
}

// perTxAllowance is a conservative per-transaction processing-time
// allowance (tick + ingest + executor apply); estimateCapacity divides the
// remaining budget by it, used only to bound the truncation above when the
// slot is running out of room.
const perTxAllowance = 10 * time.Microsecond

func estimateCapacity(budget time.Duration) int {
	if budget <= 0 {
		return 0
	}
	n := int(budget / perTxAllowance)
	if n < 1 {
		return 1
	}
	return n
}

// Sign signs b with the leader's private key, step 7 of the assembler
// procedure.
func Sign(b *block.Block, leaderKey *ecdsa.PrivateKey) error {
	return b.Sign(leaderKey)
}
