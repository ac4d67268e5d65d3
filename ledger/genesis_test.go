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

package ledger_test

import (
	"testing"

	"github.com/midgard-labs/midgard/keys"
	"github.com/midgard-labs/midgard/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesisBlock0Hash(t *testing.T) {
	account := newTestAccount(t, 100)
	genesisA := ledger.GenesisConfig{
		Discrimination: keys.DiscriminationTest,
		Fees:           testFees,
		Funds: []ledger.Fund{
			{Address: account.Address(), Value: testInitialFunds},
		},
	}
	genesisB := genesisA
	assert.Equal(t, genesisA.Block0Hash(), genesisB.Block0Hash())

	genesisB.Fees.Constant++
	assert.NotEqual(t, genesisA.Block0Hash(), genesisB.Block0Hash())
}

func TestGenesisRejectsBadFundAddress(t *testing.T) {
	genesis := ledger.GenesisConfig{
		Discrimination: keys.DiscriminationTest,
		Fees:           testFees,
		Funds: []ledger.Fund{
			{Address: "not-an-address", Value: 1000},
		},
	}
	_, err := ledger.NewLedger(genesis)
	var keyErr keys.InvalidKeyEncodingError
	assert.ErrorAs(t, err, &keyErr)
}

func TestGenesisMergesDuplicateFunds(t *testing.T) {
	account := newTestAccount(t, 100)
	genesis := ledger.GenesisConfig{
		Discrimination: keys.DiscriminationTest,
		Fees:           testFees,
		Funds: []ledger.Fund{
			{Address: account.Address(), Value: 600},
			{Address: account.Address(), Value: 400},
		},
	}
	l, err := ledger.NewLedger(genesis)
	require.NoError(t, err)
	state, err := l.AccountState(account.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), state.Value)
}
