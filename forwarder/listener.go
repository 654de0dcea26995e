// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package forwarder

import (
	"context"
	"net"
	"time"

	"github.com/luxfi/log"

	qlog "github.com/shubham4564/proofwithquantumannealing-sub001/log"
	"github.com/shubham4564/proofwithquantumannealing-sub001/tx"
	"github.com/shubham4564/proofwithquantumannealing-sub001/wire"
)

// Listener owns the UDP socket transactions arrive on from other nodes'
// forwarders: the receiving half of Gulf-Stream-style fast-forwarding.
// It does no validation of its own beyond decoding, delegating freshness
// and dedup checks to Forwarder.OnReceive.
type Listener struct {
	conn *net.UDPConn
	fwd  *Forwarder
	log  log.Logger
}

// NewListener wraps an already-bound UDP connection as a forwarder
// ingress listener.
func NewListener(conn *net.UDPConn, fwd *Forwarder, logger log.Logger) *Listener {
	if logger == nil {
		logger = qlog.NewNoOpLogger()
	}
	return &Listener{conn: conn, fwd: fwd, log: logger}
}

// Run reads datagrams until ctx is done or the socket is closed.
func (l *Listener) Run(ctx context.Context) error {
	buf := make([]byte, wire.MaxDatagramSize)
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
		data := make([]byte, n)
		copy(data, buf[:n])
		l.handleDatagram(data)
	}
}

func (l *Listener) handleDatagram(raw []byte) {
	d, err := wire.Decode(raw)
	if err != nil {
		l.log.Debug("forwarder: dropping undecodable datagram")
		return
	}
	t, err := tx.Decode(d.Transaction)
	if err != nil {
		l.log.Debug("forwarder: dropping undecodable transaction")
		return
	}
	if err := l.fwd.OnReceive(raw, t.Digest(), time.Now()); err != nil {
		l.log.Debug("forwarder: rejected inbound datagram", "err", err)
	}
}

// Close releases the underlying socket.
func (l *Listener) Close() error {
	return l.conn.Close()
}

// Bind opens and binds this node's deterministic forwarder ingress port,
// falling back to port+1, +2, ... on a bind conflict. conflicts is the
// number of fallback hops taken (0 for the common case).
func Bind(pubKey []byte) (conn *net.UDPConn, conflicts int, err error) {
	conn, _, conflicts, err = wire.BindUDP(wire.ForwarderPort(pubKey))
	return conn, conflicts, err
}
