// Copyright (C) 2020-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"

	"github.com/luxfi/ids"

	"github.com/shubham4564/proofwithquantumannealing-sub001/utils/formatting"
	"github.com/shubham4564/proofwithquantumannealing-sub001/validators"
)

// NetworkPeer is one member of the cluster's peer manifest: the address
// and public key a node needs to reach and authenticate another
// validator, plus the stake weight and initial quantum-annealing score
// the leader schedule seeds the validator set with. None of this is
// carried in the genesis file, which fixes the cluster's economic
// parameters, not its current network location or annealer readout.
type NetworkPeer struct {
	NodeID ids.NodeID `json:"node_id"`
	Host   net.IP     `json:"host"`
	PubKey string     `json:"pub_key"`
	Weight uint64     `json:"weight"`
	Light  uint64     `json:"light"`
}

// NetworkConfig is the NETWORK_CONFIG_FILE this node loads at startup: the
// manifest of every peer it needs a host and a public key for, to derive
// forwarder/TPU/TVU ports and verify signatures.
type NetworkConfig struct {
	Peers []NetworkPeer `json:"peers"`
}

// LoadNetworkConfig reads and parses a network manifest from path.
func LoadNetworkConfig(path string) (*NetworkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read network config file: %w", err)
	}
	var nc NetworkConfig
	if err := json.Unmarshal(data, &nc); err != nil {
		return nil, fmt.Errorf("config: parse network config file: %w", err)
	}
	if len(nc.Peers) == 0 {
		return nil, ErrEmptyValidatorSet
	}
	return &nc, nil
}

// Hosts returns the IP address every peer in the manifest is reachable
// at, keyed by node ID. Port numbers are derived separately, from each
// peer's public key.
func (nc *NetworkConfig) Hosts() map[ids.NodeID]net.IP {
	out := make(map[ids.NodeID]net.IP, len(nc.Peers))
	for _, p := range nc.Peers {
		out[p.NodeID] = p.Host
	}
	return out
}

// Validators builds the validator set every cluster component (leader
// schedule, broadcast tree, vote tracker) reads from this manifest.
func (nc *NetworkConfig) Validators() validators.Set {
	set := validators.NewSet()
	for _, p := range nc.Peers {
		set.Add(validators.NewValidator(p.NodeID, p.Weight, p.Light))
	}
	return set
}

// PubKeys decodes every peer's "0x"-prefixed hex public key, the form the
// leader-signature and per-transaction-signature gates verify against.
func (nc *NetworkConfig) PubKeys() (map[ids.NodeID][]byte, error) {
	out := make(map[ids.NodeID][]byte, len(nc.Peers))
	for _, p := range nc.Peers {
		raw, err := formatting.Decode(formatting.HexC, p.PubKey)
		if err != nil {
			return nil, fmt.Errorf("config: decoding pub key for %s: %w", p.NodeID, err)
		}
		out[p.NodeID] = raw
	}
	return out, nil
}
