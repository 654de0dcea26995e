// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package forwarder fast-forwards transactions to the current and next
// scheduled leader via targeted UDP datagrams, and stages incoming
// datagrams in a local pending pool for this node's own leader slot.
package forwarder

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	qlog "github.com/shubham4564/proofwithquantumannealing-sub001/log"
	"github.com/shubham4564/proofwithquantumannealing-sub001/networking/sender"
	"github.com/shubham4564/proofwithquantumannealing-sub001/networking/timeout"
	"github.com/shubham4564/proofwithquantumannealing-sub001/wire"
)

// MaxTxAge is the freshness bound a forwarded transaction must satisfy to
// be accepted into the pending pool.
const MaxTxAge = 90 * time.Second

// dedupWindow bounds how many recent transaction hashes are retained for
// duplicate suppression.
const dedupWindow = 4096

// LeaderResolver resolves the current and next scheduled leader's
// forwarding address; the forwarder never computes schedules itself.
type LeaderResolver interface {
	CurrentLeaderAddr() (*net.UDPAddr, ids.NodeID, bool)
	NextLeaderAddr() (*net.UDPAddr, ids.NodeID, bool)
}

// Result is what Forward returns to its caller.
type Result struct {
	SentToCurrent bool
	SentToNext    bool
	Elapsed       time.Duration
}

// pendingEntry tags a staged transaction with when and from where it
// arrived.
type pendingEntry struct {
	datagram  []byte
	receivedAt time.Time
	source    string
}

// Forwarder sends transactions to the current and next leader and stages
// incoming datagrams for this node's own slot.
type Forwarder struct {
	self     ids.NodeID
	sender   sender.Sender
	timeouts timeout.Manager
	resolver LeaderResolver
	log      log.Logger

	mu      sync.Mutex
	pending []pendingEntry
	seen    *slidingWindow

	decodeErrors   uint64
	sendFailures   uint64
}

// New builds a Forwarder. self identifies this node so local-leader sends
// can be short-circuited into a direct enqueue.
func New(self ids.NodeID, snd sender.Sender, timeouts timeout.Manager, resolver LeaderResolver, logger log.Logger) *Forwarder {
	if logger == nil {
		logger = qlog.NewNoOpLogger()
	}
	return &Forwarder{
		self:     self,
		sender:   snd,
		timeouts: timeouts,
		resolver: resolver,
		log:      logger,
		seen:     newSlidingWindow(dedupWindow),
	}
}

// Forward sends tx's encoded datagram to the current and next leader,
// skipping sends to this node itself (enqueued directly instead) and
// skipping a duplicate send when both slots share the same leader.
func (f *Forwarder) Forward(ctx context.Context, datagram *wire.TxDatagram, digest ids.ID) (Result, error) {
	start := time.Now()
	var res Result

	encoded, err := wire.Encode(datagram)
	if err != nil {
		return res, fmt.Errorf("forwarder: encode: %w", err)
	}

	curAddr, curLeader, haveCur := f.resolver.CurrentLeaderAddr()
	nextAddr, nextLeader, haveNext := f.resolver.NextLeaderAddr()

	if haveCur {
		if curLeader == f.self {
			f.enqueueLocal(encoded, "self")
			res.SentToCurrent = true
		} else if err := f.sendWithBudget(ctx, curAddr, encoded); err == nil {
			res.SentToCurrent = true
		} else {
			f.recordSendFailure(err)
		}
	}

	if haveNext && !(haveCur && nextLeader == curLeader) {
		if nextLeader == f.self {
			f.enqueueLocal(encoded, "self")
			res.SentToNext = true
		} else if err := f.sendWithBudget(ctx, nextAddr, encoded); err == nil {
			res.SentToNext = true
		} else {
			f.recordSendFailure(err)
		}
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

func (f *Forwarder) sendWithBudget(ctx context.Context, addr *net.UDPAddr, payload []byte) error {
	budgetCtx, cancel := f.timeouts.WithTimeout(ctx)
	defer cancel()
	err := f.sender.Send(budgetCtx, addr, payload)
	if budgetCtx.Err() != nil {
		f.timeouts.RecordTimeout()
	}
	return err
}

func (f *Forwarder) recordSendFailure(err error) {
	f.mu.Lock()
	f.sendFailures++
	f.mu.Unlock()
	f.log.Debug("forwarder send failed", "err", err)
}

func (f *Forwarder) enqueueLocal(datagram []byte, source string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, pendingEntry{datagram: datagram, receivedAt: time.Now(), source: source})
}

// OnReceive handles an inbound datagram from a peer: parses, validates
// structure/version/age, suppresses duplicates, and stages it in the
// pending pool.
func (f *Forwarder) OnReceive(raw []byte, digest ids.ID, now time.Time) error {
	d, err := wire.Decode(raw)
	if err != nil {
		f.mu.Lock()
		f.decodeErrors++
		f.mu.Unlock()
		return fmt.Errorf("forwarder: decode: %w", err)
	}
	if d.Version != wire.ProtocolVersion {
		return fmt.Errorf("forwarder: unsupported version %q", d.Version)
	}
	if d.Age(now) > MaxTxAge {
		return fmt.Errorf("forwarder: datagram too old: %s", d.Age(now))
	}

	if f.seen.seenOrAdd(digest) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, pendingEntry{datagram: raw, receivedAt: now, source: d.SourceNode})
	return nil
}

// DrainPending returns every staged datagram and clears the pool; called
// by the leader when its slot opens.
func (f *Forwarder) DrainPending() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.pending))
	for i, e := range f.pending {
		out[i] = e.datagram
	}
	f.pending = nil
	return out
}

// DecodeErrors returns the count of datagrams that failed to parse.
func (f *Forwarder) DecodeErrors() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.decodeErrors
}

// SendFailures returns the count of sends that failed or timed out.
func (f *Forwarder) SendFailures() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sendFailures
}
