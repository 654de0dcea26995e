// Copyright (C) 2020-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/luxfi/ids"
)

// Genesis is the versioned, JSON genesis file every node in a cluster
// loads at startup. Its hash is re-derived and checked against
// GenesisHash so that nodes started from mismatched files refuse to join
// the same cluster rather than silently diverging.
type Genesis struct {
	Version          int               `json:"version"`
	CreationTime     time.Time         `json:"creation_time"`
	NetworkID        uint32            `json:"network_id"`
	ClusterConfig    ClusterConfig     `json:"cluster_config"`
	Accounts         map[string]uint64 `json:"accounts"`
	BootstrapLeader  ids.NodeID        `json:"bootstrap_validator"`
	GenesisHash      string            `json:"genesis_hash"`
}

// LoadGenesis reads and parses a genesis file from path, verifying its
// embedded hash matches the file's content hashed with GenesisHash unset.
// A file with an empty genesis_hash is accepted and gets the computed hash.
func LoadGenesis(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read genesis file: %w", err)
	}
	var g Genesis
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("config: parse genesis file: %w", err)
	}
	if err := g.ClusterConfig.Validate(); err != nil {
		return nil, err
	}
	if len(g.Accounts) == 0 {
		return nil, ErrEmptyValidatorSet
	}
	want := g.computeHash()
	if g.GenesisHash != "" && g.GenesisHash != want {
		return nil, fmt.Errorf("config: genesis hash mismatch: file has %s, computed %s", g.GenesisHash, want)
	}
	g.GenesisHash = want
	return &g, nil
}

// VerifyNetworkID returns ErrNetworkIDMismatch if the genesis network ID
// does not match the node's configured network ID.
func (g *Genesis) VerifyNetworkID(localNetworkID uint32) error {
	if g.NetworkID != localNetworkID {
		return ErrNetworkIDMismatch
	}
	return nil
}

// computeHash derives the genesis hash from the file's canonical JSON
// encoding with GenesisHash cleared, so the embedded hash is reproducible.
func (g Genesis) computeHash() string {
	g.GenesisHash = ""
	data, err := json.Marshal(g)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
