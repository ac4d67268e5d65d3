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

// testAccount is a minimal spending account handle for builder tests
type testAccount struct {
	keyPair        *keys.KeyPair
	discrimination keys.Discrimination
	counter        uint32
}

func newTestAccount(t *testing.T, n byte) *testAccount {
	t.Helper()
	keyPair, err := keys.NewKeyPairFromSeed(testSeed(n))
	require.NoError(t, err)
	return &testAccount{
		keyPair:        keyPair,
		discrimination: keys.DiscriminationTest,
	}
}

func (a *testAccount) Address() string {
	return a.keyPair.Address(a.discrimination)
}

func (a *testAccount) Counter() uint32 {
	return a.counter
}

func (a *testAccount) Sign(msg []byte) []byte {
	return a.keyPair.Sign(msg)
}

func (a *testAccount) Confirm() {
	a.counter++
}

var testFees = ledger.LinearFees{Constant: 10, Coefficient: 2, Certificate: 5}

func TestTxBuilderPlainTransaction(t *testing.T) {
	account := newTestAccount(t, 7)
	block0Hash := ledger.Blake2b256Hash([]byte("block0"))

	builder := ledger.NewTxBuilder(block0Hash, testFees)
	builder.AddAccount(account.Address(), testFees.Fee(false))
	require.NoError(t, builder.Finalize(account))
	require.NoError(t, builder.Seal())
	msg, err := builder.Message()
	require.NoError(t, err)

	tx, err := ledger.DecodeTransaction(msg)
	require.NoError(t, err)
	assert.Equal(t, block0Hash, tx.Body.Block0Hash)
	assert.Equal(t, account.Address(), tx.Body.Input.Address)
	assert.Equal(t, testFees.Fee(false), tx.Body.Fee)
	assert.False(t, tx.Body.HasCertificate())
	assert.Len(t, tx.Witness, 64)
	assert.Empty(t, tx.Auth)

	// Assembly advances the local counter exactly once
	assert.Equal(t, uint32(1), account.Counter())
}

func TestTxBuilderCertificateTransaction(t *testing.T) {
	account := newTestAccount(t, 7)
	cert := testRegistrationCert(t, 1)
	ownerKey, err := keys.NewKeyPairFromSeed(testSeed(3))
	require.NoError(t, err)
	block0Hash := ledger.Blake2b256Hash([]byte("block0"))

	builder := ledger.NewTxBuilder(block0Hash, testFees)
	builder.AddAccount(account.Address(), testFees.Fee(true))
	builder.AddCertificate(cert)
	require.NoError(t, builder.Finalize(account))
	require.NoError(t, builder.Seal())
	require.NoError(t, builder.AddAuth(ownerKey))
	msg, err := builder.Message()
	require.NoError(t, err)

	tx, err := ledger.DecodeTransaction(msg)
	require.NoError(t, err)
	require.True(t, tx.Body.HasCertificate())
	assert.Equal(t, testFees.Fee(true), tx.Body.Fee)
	decoded, ok := tx.Body.Certificate.Certificate.(*ledger.PoolRegistrationCertificate)
	require.True(t, ok)
	assert.Equal(t, cert.Owner, decoded.Owner)
	assert.Len(t, tx.Auth, 64)
}

func TestTxBuilderSealBeforeFinalize(t *testing.T) {
	builder := ledger.NewTxBuilder(ledger.Blake2b256{}, testFees)
	builder.AddAccount("ta1test", 100)
	err := builder.Seal()
	assert.ErrorIs(t, err, ledger.SignatureOrderError{})
}

func TestTxBuilderMessageWithoutWitness(t *testing.T) {
	account := newTestAccount(t, 7)
	builder := ledger.NewTxBuilder(ledger.Blake2b256{}, testFees)
	builder.AddAccount(account.Address(), testFees.Fee(false))
	require.NoError(t, builder.Finalize(account))
	_, err := builder.Message()
	assert.ErrorIs(t, err, ledger.MissingWitnessError{})
	// A failed assembly must not advance the counter
	assert.Equal(t, uint32(0), account.Counter())
}

func TestTxBuilderInsufficientInput(t *testing.T) {
	account := newTestAccount(t, 7)
	builder := ledger.NewTxBuilder(ledger.Blake2b256{}, testFees)
	builder.AddAccount(account.Address(), testFees.Fee(false)-1)
	err := builder.Finalize(account)
	var fundsErr ledger.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, testFees.Fee(false), fundsErr.Required)
}

func TestTransactionId(t *testing.T) {
	account := newTestAccount(t, 7)
	builder := ledger.NewTxBuilder(ledger.Blake2b256{}, testFees)
	builder.AddAccount(account.Address(), testFees.Fee(false))
	require.NoError(t, builder.Finalize(account))
	require.NoError(t, builder.Seal())
	msg, err := builder.Message()
	require.NoError(t, err)

	tx, err := ledger.DecodeTransaction(msg)
	require.NoError(t, err)
	fragmentId, err := tx.Id()
	require.NoError(t, err)
	assert.Equal(t, ledger.Blake2b256Hash(msg), fragmentId)
}
