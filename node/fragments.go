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
	"sync"

	"github.com/midgard-labs/midgard/ledger"
)

// FragmentState is the submission outcome of a transaction message
type FragmentState string

const (
	FragmentStatePending  FragmentState = "Pending"
	FragmentStateInABlock FragmentState = "InABlock"
	FragmentStateRejected FragmentState = "Rejected"
)

// FragmentStatus is the tracked status of a submitted message
type FragmentStatus struct {
	FragmentId ledger.FragmentId `json:"fragment_id"`
	Status     FragmentState     `json:"status"`
	Reason     string            `json:"reason,omitempty"`
}

// fragmentLog records the outcome of every message the node has seen
type fragmentLog struct {
	mu      sync.RWMutex
	entries map[ledger.FragmentId]FragmentStatus
}

func newFragmentLog() *fragmentLog {
	return &fragmentLog{
		entries: make(map[ledger.FragmentId]FragmentStatus),
	}
}

func (f *fragmentLog) record(status FragmentStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[status.FragmentId] = status
}

func (f *fragmentLog) status(
	fragmentId ledger.FragmentId,
) (FragmentStatus, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	status, ok := f.entries[fragmentId]
	return status, ok
}
