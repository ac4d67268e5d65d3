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
	"encoding/json"
	"io"
	"net/http"

	"github.com/midgard-labs/midgard/ledger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxMessageSize bounds the request body on the message endpoint
const maxMessageSize = 1 << 20

// MessageResponse is returned from the message endpoint with the fragment
// id to poll for status
type MessageResponse struct {
	Id ledger.FragmentId `json:"id"`
}

// Handler returns the REST API handler
func (n *Node) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v0/settings", n.handleSettings)
	mux.HandleFunc("GET /api/v0/account/{address}", n.handleAccount)
	mux.HandleFunc("GET /api/v0/stake_pools", n.handleStakePools)
	mux.HandleFunc("POST /api/v0/message", n.handleMessage)
	mux.HandleFunc("GET /api/v0/fragment/{id}/status", n.handleFragmentStatus)
	mux.Handle(
		"GET /metrics",
		promhttp.HandlerFor(n.metrics.registry, promhttp.HandlerOpts{}),
	)
	return mux
}

func (n *Node) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		n.logger.Error("failed writing response", "error", err)
	}
}

func (n *Node) handleSettings(w http.ResponseWriter, r *http.Request) {
	n.writeJSON(w, n.ledger.Settings())
}

func (n *Node) handleAccount(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")
	state, err := n.ledger.AccountState(address)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	n.writeJSON(w, state)
}

func (n *Node) handleStakePools(w http.ResponseWriter, r *http.Request) {
	pools := n.ledger.ActivePools()
	n.writeJSON(w, pools)
}

func (n *Node) handleMessage(w http.ResponseWriter, r *http.Request) {
	n.metrics.fragmentsReceived.Inc()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxMessageSize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tx, err := ledger.DecodeTransaction(data)
	if err != nil {
		n.metrics.fragmentsRejected.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fragmentId, err := tx.Id()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Application is synchronous, so a submitted fragment goes straight to
	// its final state. The fragment id is returned either way; rejection
	// details are reported through the status endpoint.
	if err := n.ledger.ApplyTransaction(tx); err != nil {
		n.metrics.fragmentsRejected.Inc()
		n.fragments.record(FragmentStatus{
			FragmentId: fragmentId,
			Status:     FragmentStateRejected,
			Reason:     err.Error(),
		})
		n.logger.Warn(
			"rejected fragment",
			"fragment", fragmentId.String(),
			"reason", err.Error(),
		)
	} else {
		n.metrics.fragmentsApplied.Inc()
		n.fragments.record(FragmentStatus{
			FragmentId: fragmentId,
			Status:     FragmentStateInABlock,
		})
		n.logger.Info("applied fragment", "fragment", fragmentId.String())
	}
	n.writeJSON(w, MessageResponse{Id: fragmentId})
}

func (n *Node) handleFragmentStatus(w http.ResponseWriter, r *http.Request) {
	fragmentId, err := ledger.NewBlake2b256FromString(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status, ok := n.fragments.status(fragmentId)
	if !ok {
		http.Error(w, "unknown fragment", http.StatusNotFound)
		return
	}
	n.writeJSON(w, status)
}
