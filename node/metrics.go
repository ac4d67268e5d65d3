// Copyright 2025 Midgard Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package node

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// nodeMetrics holds the node's prometheus collectors. Each node carries its
// own registry so multiple instances can coexist in one process.
type nodeMetrics struct {
	registry          *prometheus.Registry
	fragmentsReceived prometheus.Counter
	fragmentsApplied  prometheus.Counter
	fragmentsRejected prometheus.Counter
	activePools       prometheus.GaugeFunc
}

func newNodeMetrics(activePools func() float64) *nodeMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &nodeMetrics{
		registry: registry,
		fragmentsReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "midgard_fragments_received_total",
			Help: "Total transaction messages received",
		}),
		fragmentsApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "midgard_fragments_applied_total",
			Help: "Total transaction messages applied to the ledger",
		}),
		fragmentsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "midgard_fragments_rejected_total",
			Help: "Total transaction messages rejected",
		}),
		activePools: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "midgard_active_pools",
			Help: "Number of stake pools currently active",
		}, activePools),
	}
}
