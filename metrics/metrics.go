// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
    "github.com/luxfi/metric"
    "github.com/prometheus/client_golang/prometheus"
)

// Metrics provides consensus metrics. Registry is the external metric
// package's own Registry (a Registerer+Gatherer pair), and Multi is an
// optional namespaced MultiGatherer a caller can fold several components'
// registries into, the same composition the teacher threads through its
// ChainContext.Metrics field.
type Metrics struct {
    Registry metric.Registry
    Multi    metric.MultiGatherer
}

// NewMetrics creates new metrics instance
func NewMetrics(reg metric.Registry) *Metrics {
    return &Metrics{
        Registry: reg,
    }
}

// Register registers a prometheus collector
func (m *Metrics) Register(collector prometheus.Collector) error {
    return m.Registry.Register(collector)
}
