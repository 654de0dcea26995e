// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shubham4564/proofwithquantumannealing-sub001/metrics"
)

// Collectors are the chain task's own prometheus collectors, registered
// once at node startup and updated on every produced block.
type Collectors struct {
	BlocksProduced     prometheus.Counter
	CandidatesPerBlock prometheus.Gauge
	PortConflicts      prometheus.Counter
}

// NewCollectors builds and registers a Manager's collectors against m.
func NewCollectors(m *metrics.Metrics) (*Collectors, error) {
	blocks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quannealing_blocks_produced_total",
		Help: "Blocks this node has assembled and committed as leader.",
	})
	if err := m.Register(blocks); err != nil {
		return nil, err
	}
	candidates := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "quannealing_block_candidates",
		Help: "Transaction count included in the most recently produced block.",
	})
	if err := m.Register(candidates); err != nil {
		return nil, err
	}
	portConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quannealing_port_bind_conflicts_total",
		Help: "Deterministic-port bind conflicts resolved by the +1 fallback at startup.",
	})
	if err := m.Register(portConflicts); err != nil {
		return nil, err
	}
	return &Collectors{BlocksProduced: blocks, CandidatesPerBlock: candidates, PortConflicts: portConflicts}, nil
}
