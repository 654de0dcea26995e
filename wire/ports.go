// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wire defines the JSON/binary datagram formats and deterministic
// port derivation shared by the forwarder, TPU and shred transport.
package wire

import (
	"crypto/sha256"
	"encoding/binary"
	"net"
)

const (
	p2pBasePort       = 10000
	forwarderBasePort = 15000
	tpuBasePort       = 13000
	tvuBasePort       = 14000
)

// portOffset derives the "off = first_8_hex(sha256(pubkey)) mod 100"
// offset shared by every port in this node's deployment.
func portOffset(pubKey []byte) int {
	sum := sha256.Sum256(pubKey)
	first4 := binary.BigEndian.Uint32(sum[:4])
	return int(first4 % 100)
}

// P2PPort is this node's gossip port.
func P2PPort(pubKey []byte) int { return p2pBasePort + portOffset(pubKey) }

// ForwarderPort is this node's forwarder UDP ingress port.
func ForwarderPort(pubKey []byte) int { return forwarderBasePort + portOffset(pubKey) }

// TPUPort is this node's leader-ingress UDP port.
func TPUPort(pubKey []byte) int { return tpuBasePort + portOffset(pubKey) }

// TVUPort is this node's shred-reception UDP port.
func TVUPort(pubKey []byte) int { return tvuBasePort + portOffset(pubKey) }

// maxPortConflictRetries bounds the +1 fallback walk so a persistently
// unbindable range fails fast instead of scanning forever.
const maxPortConflictRetries = 10

// BindUDP binds basePort, falling back to basePort+1, +2, ... on any
// bind error (an address already in use being the expected one), per the
// design note on hash-derived port
// collisions ("unlikely but must be handled"). conflicts reports how many
// fallback hops were needed, for the caller to surface as a metric.
func BindUDP(basePort int) (conn *net.UDPConn, boundPort int, conflicts int, err error) {
	for i := 0; i <= maxPortConflictRetries; i++ {
		port := basePort + i
		addr := &net.UDPAddr{IP: net.IPv4zero, Port: port}
		conn, err = net.ListenUDP("udp", addr)
		if err == nil {
			return conn, port, i, nil
		}
	}
	return nil, 0, maxPortConflictRetries, err
}
