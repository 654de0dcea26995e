// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package shred

import (
	"sort"

	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
)

// TransmissionTask is one obligation to send a batch of shreds to a peer.
type TransmissionTask struct {
	Target ids.NodeID
	Shreds []Shred
}

// Tree is the deterministic, stake-weighted fixed-fanout broadcast tree:
// the leader partitions its shred set across its first Fanout children,
// and every other node re-partitions whatever it receives across its own
// Fanout children, bounding any single node's fan-out regardless of
// cluster size.
type Tree struct {
	fanout int
	order  []ids.NodeID
}

// NewTree builds a broadcast tree over set's validators excluding leader,
// ordered by descending stake weight and then NodeID, so every node in
// the cluster derives the identical tree shape from the same validator
// set.
func NewTree(set validators.Set, leader ids.NodeID, fanout int) *Tree {
	if fanout < 1 {
		fanout = 1
	}
	outputs := set.ValidatorOutputs()
	order := make([]ids.NodeID, 0, len(outputs))
	weight := make(map[ids.NodeID]uint64, len(outputs))
	for id, out := range outputs {
		if id == leader {
			continue
		}
		order = append(order, id)
		weight[id] = out.Weight
	}
	sort.Slice(order, func(i, j int) bool {
		if weight[order[i]] != weight[order[j]] {
			return weight[order[i]] > weight[order[j]]
		}
		return order[i].String() < order[j].String()
	})
	return &Tree{fanout: fanout, order: order}
}

// children returns the node IDs directly below nodeID in the tree: the
// leader's root-level fan-out if nodeID isn't a tracked non-leader member
// (i.e. it is the leader), otherwise the fanout-sized block of the flat
// order immediately following nodeID's own breadth-first rank.
func (t *Tree) children(nodeID ids.NodeID) []ids.NodeID {
	idx := t.indexOf(nodeID)
	if idx < 0 {
		return t.slice(0, t.fanout)
	}
	return t.childrenByRank(idx)
}

func (t *Tree) indexOf(nodeID ids.NodeID) int {
	for i, id := range t.order {
		if id == nodeID {
			return i
		}
	}
	return -1
}

func (t *Tree) childrenByRank(rank int) []ids.NodeID {
	start := rank*t.fanout + t.fanout
	return t.slice(start, start+t.fanout)
}

func (t *Tree) slice(start, end int) []ids.NodeID {
	if start >= len(t.order) {
		return nil
	}
	if end > len(t.order) {
		end = len(t.order)
	}
	return append([]ids.NodeID(nil), t.order[start:end]...)
}

// Broadcast partitions shreds across the leader's root-level children: the
// leader's full shred set is split into up to t.fanout roughly equal
// slices, one per child, so no single downstream link carries the whole
// block.
func Broadcast(t *Tree, leader ids.NodeID, shreds []Shred) []TransmissionTask {
	children := t.children(leader)
	if len(children) == 0 || len(shreds) == 0 {
		return nil
	}
	return partition(children, shreds)
}

// OnReceive reports what a node receiving shred should do: whether it now
// holds enough of the block's shred set to attempt reconstruction, and
// which of its own children it must forward a partition of newly-seen
// shreds to.
type ReceiveResult struct {
	ReadyToReconstruct bool
	Forwards           []TransmissionTask
}

// OnReceive computes me's forwarding obligations for a freshly-received
// batch of shreds belonging to the same block, and whether held already
// covers at least DataShreds of the set (the caller is responsible for
// tracking "held" across calls and invoking Reconstruct once ready).
func OnReceive(t *Tree, me ids.NodeID, held []Shred, newShreds []Shred) ReceiveResult {
	children := t.children(me)

	var forwards []TransmissionTask
	if len(children) > 0 && len(newShreds) > 0 {
		forwards = partition(children, newShreds)
	}

	dataShreds := 0
	have := 0
	seen := make(map[int]struct{}, len(held)+len(newShreds))
	for _, s := range append(append([]Shred(nil), held...), newShreds...) {
		dataShreds = s.DataShreds
		if _, ok := seen[s.Index]; ok {
			continue
		}
		seen[s.Index] = struct{}{}
		have++
	}
	return ReceiveResult{
		ReadyToReconstruct: dataShreds > 0 && have >= dataShreds,
		Forwards:           forwards,
	}
}

// partition spreads shreds as evenly as possible across targets, giving
// every target a contiguous slice rather than round-robining individual
// shreds, so reconstruction on one link doesn't depend on interleaved
// deliveries from several peers.
func partition(targets []ids.NodeID, shreds []Shred) []TransmissionTask {
	if len(targets) == 0 {
		return nil
	}
	tasks := make([]TransmissionTask, 0, len(targets))
	base := len(shreds) / len(targets)
	rem := len(shreds) % len(targets)
	offset := 0
	for i, target := range targets {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		tasks = append(tasks, TransmissionTask{
			Target: target,
			Shreds: append([]Shred(nil), shreds[offset:offset+size]...),
		})
		offset += size
	}
	return tasks
}
