// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tpu implements the leader-side UDP ingress: while this node is
// the current leader it absorbs transactions from every forwarder in the
// network into a slot-scoped buffer, handed to the block assembler at
// slot end.
package tpu

import (
	"context"
	"net"
	"sync"

	"github.com/luxfi/log"

	qlog "github.com/shubham4564/proofwithquantumannealing-sub001/log"
	"github.com/shubham4564/proofwithquantumannealing-sub001/wire"
)

// RecvBufferSize is the UDP receive buffer per datagram, matching the
// spec's 64 KiB ceiling.
const RecvBufferSize = 64 * 1024

// Listener absorbs forwarder datagrams on a bound UDP socket and stages
// them into the current slot's transaction buffer.
type Listener struct {
	conn *net.UDPConn
	log  log.Logger

	mu             sync.Mutex
	current        [][]byte
	decodeFailures uint64
}

// NewListener wraps an already-bound UDP connection as a TPU listener.
func NewListener(conn *net.UDPConn, logger log.Logger) *Listener {
	if logger == nil {
		logger = qlog.NewNoOpLogger()
	}
	return &Listener{conn: conn, log: logger}
}

// Run reads datagrams until ctx is done or the socket is closed,
// validating each one and appending it to the current slot's buffer.
// Decode failures are logged and counted, never reparsed.
func (l *Listener) Run(ctx context.Context) error {
	buf := make([]byte, RecvBufferSize)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, _, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		l.handleDatagram(buf[:n])
	}
}

func (l *Listener) handleDatagram(raw []byte) {
	d, err := wire.Decode(raw)
	if err != nil || d.Version != wire.ProtocolVersion {
		l.mu.Lock()
		l.decodeFailures++
		l.mu.Unlock()
		l.log.Debug("tpu: dropping undecodable datagram")
		return
	}
	data := make([]byte, len(raw))
	copy(data, raw)

	l.mu.Lock()
	l.current = append(l.current, data)
	l.mu.Unlock()
}

// SlotStart clears the current slot's buffer, ready to absorb the new
// slot's transactions.
func (l *Listener) SlotStart() {
	l.mu.Lock()
	l.current = nil
	l.mu.Unlock()
}

// SlotEnd hands the accumulated buffer to the block assembler and starts
// a fresh, empty one; datagrams arriving before the next SlotStart land in
// that fresh buffer, which SlotStart then clears.
func (l *Listener) SlotEnd() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.current
	l.current = nil
	return out
}

// DecodeFailures returns the count of datagrams that failed to parse.
func (l *Listener) DecodeFailures() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decodeFailures
}

// Close releases the underlying socket.
func (l *Listener) Close() error {
	return l.conn.Close()
}

// Bind opens and binds the TPU's deterministic UDP port for pubKey,
// falling back to port+1, +2, ... on a bind conflict. conflicts is the
// number of fallback hops taken (0 for the common case).
func Bind(pubKey []byte) (conn *net.UDPConn, conflicts int, err error) {
	conn, _, conflicts, err = wire.BindUDP(wire.TPUPort(pubKey))
	return conn, conflicts, err
}
