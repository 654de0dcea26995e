// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sender sends unreliable UDP datagrams to a single peer address,
// the transport the forwarder uses to fast-forward transactions to the
// current and next leader.
package sender

import (
	"context"
	"net"
	"time"
)

// Sender sends a single datagram to a peer, respecting ctx's deadline.
// Unlike the consensus layer's request/response gossip, this is a
// fire-and-forget send: failures are counted, never retried here.
type Sender interface {
	Send(ctx context.Context, addr *net.UDPAddr, payload []byte) error
}

type udpSender struct {
	conn *net.UDPConn
}

// NewUDPSender wraps an already-bound UDP connection for outbound sends.
func NewUDPSender(conn *net.UDPConn) Sender {
	return &udpSender{conn: conn}
}

func (s *udpSender) Send(ctx context.Context, addr *net.UDPAddr, payload []byte) error {
	deadline, ok := ctx.Deadline()
	if ok {
		if err := s.conn.SetWriteDeadline(deadline); err != nil {
			return err
		}
	} else {
		_ = s.conn.SetWriteDeadline(time.Time{})
	}
	_, err := s.conn.WriteToUDP(payload, addr)
	return err
}
