// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tvu implements the validator-side shred ingress: the receive
// half of the broadcast tree. It accumulates shreds per block hash,
// re-forwards freshly-seen batches down its own children, and attempts
// reconstruction once enough of the set has arrived.
package tvu

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/shubham4564/proofwithquantumannealing-sub001/block"
	qlog "github.com/shubham4564/proofwithquantumannealing-sub001/log"
	"github.com/shubham4564/proofwithquantumannealing-sub001/shred"
	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
	"github.com/shubham4564/proofwithquantumannealing-sub001/wire"
)

// RecvBufferSize is the UDP receive buffer per datagram, matching the
// TPU's 64 KiB ceiling; a single shred fits comfortably inside one.
const RecvBufferSize = 64 * 1024

// Handler is notified once a block's shred set has been reconstructed.
// A Receiver never decides whether to vote on it; that belongs to
// whatever wires validate.Validate to this Receiver.
type Handler interface {
	OnReconstructed(blk *block.Block)
}

// Transport delivers a forwarding obligation's shreds onward, the same
// collaborator the leader's own broadcast uses.
type Transport interface {
	Send(ctx context.Context, target ids.NodeID, shreds []shred.Shred) error
}

// LeaderResolver reports which validator led the slot active at t, the
// same lookup the chain task uses to decide whether it leads a slot.
// The broadcast tree a Receiver forwards against must be rooted at this
// leader, otherwise its rank-based forwarding computes a different tree
// shape than the one the actual sender built for itself.
type LeaderResolver interface {
	CurrentLeader(t time.Time) (ids.NodeID, bool)
}

type blockAccum struct {
	held []shred.Shred
}

// Receiver is the per-node "TVU": it owns the UDP socket shreds arrive
// on, re-forwards them per the broadcast tree, and reconstructs each
// block exactly once.
type Receiver struct {
	conn      *net.UDPConn
	me        ids.NodeID
	set       validators.Set
	fanout    int
	leaders   LeaderResolver
	transport Transport
	erasure   float64
	handler   Handler
	log       log.Logger

	mu        sync.Mutex
	accs      map[ids.ID]*blockAccum
	done      map[ids.ID]bool
	treeFor   ids.NodeID
	treeBuilt bool
	tree      *shred.Tree

	decodeFailures uint64
}

// NewReceiver wraps an already-bound UDP connection as a TVU. The
// broadcast tree it forwards shreds against is rebuilt, per block, from
// whichever validator leaders reports as leading that slot, so it
// always matches the tree the actual sender rooted its own broadcast
// at, even across epoch rollovers.
func NewReceiver(conn *net.UDPConn, me ids.NodeID, set validators.Set, fanout int, leaders LeaderResolver, transport Transport, erasureRatio float64, handler Handler, logger log.Logger) *Receiver {
	if logger == nil {
		logger = qlog.NewNoOpLogger()
	}
	return &Receiver{
		conn:      conn,
		me:        me,
		set:       set,
		fanout:    fanout,
		leaders:   leaders,
		transport: transport,
		erasure:   erasureRatio,
		handler:   handler,
		log:       logger,
		accs:      make(map[ids.ID]*blockAccum),
		done:      make(map[ids.ID]bool),
	}
}

// treeForLeader returns the broadcast tree rooted at leader, rebuilding
// it only when the leader changes from the last shred handled; slot
// tenures last many shreds, so this amortizes to one rebuild per slot.
func (r *Receiver) treeForLeader(leader ids.NodeID) *shred.Tree {
	if r.treeBuilt && r.treeFor == leader {
		return r.tree
	}
	r.tree = shred.NewTree(r.set, leader, r.fanout)
	r.treeFor = leader
	r.treeBuilt = true
	return r.tree
}

// Run reads shreds until ctx is done or the socket is closed.
func (r *Receiver) Run(ctx context.Context) error {
	buf := make([]byte, RecvBufferSize)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, _, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		r.handleShred(ctx, data)
	}
}

func (r *Receiver) handleShred(ctx context.Context, raw []byte) {
	s, err := shred.DecodeShred(raw)
	if err != nil {
		r.mu.Lock()
		r.decodeFailures++
		r.mu.Unlock()
		r.log.Debug("tvu: dropping undecodable shred")
		return
	}

	r.mu.Lock()
	if r.done[s.BlockHash] {
		r.mu.Unlock()
		return
	}
	acc, ok := r.accs[s.BlockHash]
	if !ok {
		acc = &blockAccum{}
		r.accs[s.BlockHash] = acc
	}
	for _, existing := range acc.held {
		if existing.Index == s.Index {
			r.mu.Unlock()
			return
		}
	}
	acc.held = append(acc.held, s)
	held := append([]shred.Shred(nil), acc.held...)

	leader, ok := r.leaders.CurrentLeader(time.Now())
	if !ok {
		r.mu.Unlock()
		r.log.Debug("tvu: no scheduled leader, cannot orient broadcast tree")
		return
	}
	tree := r.treeForLeader(leader)
	r.mu.Unlock()

	result := shred.OnReceive(tree, r.me, held[:len(held)-1], []shred.Shred{s})
	for _, task := range result.Forwards {
		if err := r.transport.Send(ctx, task.Target, task.Shreds); err != nil {
			r.log.Debug("tvu: forward failed", "target", task.Target, "err", err)
		}
	}

	if !result.ReadyToReconstruct {
		return
	}

	blk, err := shred.Reconstruct(held, r.erasure)
	if err != nil {
		// Not yet enough distinct shreds despite crossing the naive
		// count threshold (duplicate indices some peers re-sent);
		// wait for more to arrive rather than abstaining immediately.
		r.log.Debug("tvu: reconstruction deferred", "block_hash", s.BlockHash, "err", err)
		return
	}

	r.mu.Lock()
	r.done[s.BlockHash] = true
	delete(r.accs, s.BlockHash)
	r.mu.Unlock()

	if r.handler != nil {
		r.handler.OnReconstructed(blk)
	}
}

// Discard abandons any accumulated shred buffer for blockHash: the
// shred-reconstruction-timeout path. There is no retransmit request,
// only abstention, per the validator protocol's no-negative-vote design.
func (r *Receiver) Discard(blockHash ids.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accs, blockHash)
	r.done[blockHash] = true
}

// DecodeFailures returns the count of datagrams that failed to parse.
func (r *Receiver) DecodeFailures() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decodeFailures
}

// Close releases the underlying socket.
func (r *Receiver) Close() error {
	return r.conn.Close()
}

// Bind opens and binds the TVU's deterministic UDP port for pubKey,
// falling back to port+1, +2, ... on a bind conflict. conflicts is the
// number of fallback hops taken (0 for the common case).
func Bind(pubKey []byte) (conn *net.UDPConn, conflicts int, err error) {
	conn, _, conflicts, err = wire.BindUDP(wire.TVUPort(pubKey))
	return conn, conflicts, err
}
