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

package ledger

import (
	"fmt"

	"github.com/midgard-labs/midgard/cbor"
	"github.com/midgard-labs/midgard/keys"
)

// Fund is an initial account balance created at genesis
type Fund struct {
	Address string `json:"address" mapstructure:"address"`
	Value   uint64 `json:"value"   mapstructure:"value"`
}

// GenesisConfig describes the chain's initial state: the fee schedule,
// address discrimination, and initial account funds
type GenesisConfig struct {
	Discrimination keys.Discrimination `json:"discrimination" mapstructure:"discrimination"`
	Fees           LinearFees          `json:"fees"           mapstructure:"fees"`
	Funds          []Fund              `json:"funds"          mapstructure:"funds"`
}

// Block0Hash derives the genesis block hash from the genesis content. Two
// chains share a hash exactly when their genesis configuration is identical.
func (g *GenesisConfig) Block0Hash() Blake2b256 {
	data, err := cbor.Encode(g)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding genesis config: %s", err))
	}
	return Blake2b256Hash(data)
}
