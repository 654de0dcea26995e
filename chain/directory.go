// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"net"

	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/wire"
)

// Directory resolves a validator's node ID to the host it runs on. Every
// UDP port a peer listens on (forwarder ingress, TPU, shred reception) is
// then derived deterministically from the node ID's own bytes via the
// wire package's port offsets, so the directory only needs to track IPs.
type Directory struct {
	hosts map[ids.NodeID]net.IP
}

// NewDirectory builds a Directory from a static node-ID-to-host mapping,
// the form a genesis or peer-list file deserializes into.
func NewDirectory(hosts map[ids.NodeID]net.IP) *Directory {
	return &Directory{hosts: hosts}
}

func (d *Directory) addr(id ids.NodeID, port int) (*net.UDPAddr, bool) {
	ip, ok := d.hosts[id]
	if !ok {
		return nil, false
	}
	return &net.UDPAddr{IP: ip, Port: port}, true
}

// ForwarderAddr resolves id's forwarder ingress address.
func (d *Directory) ForwarderAddr(id ids.NodeID) (*net.UDPAddr, bool) {
	return d.addr(id, wire.ForwarderPort(id[:]))
}

// TPUAddr resolves id's leader-ingress address.
func (d *Directory) TPUAddr(id ids.NodeID) (*net.UDPAddr, bool) {
	return d.addr(id, wire.TPUPort(id[:]))
}

// TVUAddr resolves id's shred-reception address.
func (d *Directory) TVUAddr(id ids.NodeID) (*net.UDPAddr, bool) {
	return d.addr(id, wire.TVUPort(id[:]))
}
