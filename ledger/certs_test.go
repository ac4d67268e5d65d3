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

	"github.com/midgard-labs/midgard/cbor"
	"github.com/midgard-labs/midgard/keys"
	"github.com/midgard-labs/midgard/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeed(n byte) []byte {
	seed := make([]byte, 32)
	seed[0] = n
	return seed
}

func testRegistrationCert(
	t *testing.T,
	n byte,
) *ledger.PoolRegistrationCertificate {
	t.Helper()
	vrfKey, err := keys.NewVrfKeyPairFromSeed(testSeed(n))
	require.NoError(t, err)
	kesKey, err := keys.NewKesKeyPairFromSeed(testSeed(n + 1))
	require.NoError(t, err)
	ownerKey, err := keys.NewKeyPairFromSeed(testSeed(n + 2))
	require.NoError(t, err)
	cert, err := ledger.NewPoolRegistrationCertificate(
		vrfKey.PublicKeyBech32(),
		kesKey.PublicKeyBech32(),
		0,
		1,
		ownerKey.PublicKeyBech32(),
	)
	require.NoError(t, err)
	return cert
}

func TestPoolRegistrationCertificateRoundTrip(t *testing.T) {
	cert := testRegistrationCert(t, 1)
	poolId, err := cert.PoolId()
	require.NoError(t, err)

	cborData, err := cbor.Encode(cert)
	require.NoError(t, err)

	var wrapper ledger.CertificateWrapper
	_, err = cbor.Decode(cborData, &wrapper)
	require.NoError(t, err)
	assert.Equal(t, uint(ledger.CertificateTypePoolRegistration), wrapper.Type)

	decoded, ok := wrapper.Certificate.(*ledger.PoolRegistrationCertificate)
	require.True(t, ok)
	assert.Equal(t, cert.VrfPublicKey, decoded.VrfPublicKey)
	assert.Equal(t, cert.KesPublicKey, decoded.KesPublicKey)
	assert.Equal(t, cert.Owner, decoded.Owner)

	// The pool id must be stable across an encode/decode cycle
	decodedPoolId, err := decoded.PoolId()
	require.NoError(t, err)
	assert.Equal(t, poolId, decodedPoolId)
}

func TestPoolIdDistinctPerRegistration(t *testing.T) {
	certA := testRegistrationCert(t, 1)
	certB := testRegistrationCert(t, 10)
	poolIdA, err := certA.PoolId()
	require.NoError(t, err)
	poolIdB, err := certB.PoolId()
	require.NoError(t, err)
	assert.NotEqual(t, poolIdA, poolIdB)
}

func TestStakeDelegationCertificateRoundTrip(t *testing.T) {
	accountKey, err := keys.NewKeyPairFromSeed(testSeed(42))
	require.NoError(t, err)
	poolId := ledger.Blake2b256Hash([]byte("pool"))
	cert, err := ledger.NewStakeDelegationCertificate(
		poolId,
		accountKey.PublicKeyBech32(),
	)
	require.NoError(t, err)

	cborData, err := cbor.Encode(cert)
	require.NoError(t, err)

	var wrapper ledger.CertificateWrapper
	_, err = cbor.Decode(cborData, &wrapper)
	require.NoError(t, err)
	decoded, ok := wrapper.Certificate.(*ledger.StakeDelegationCertificate)
	require.True(t, ok)
	assert.Equal(t, poolId, decoded.PoolId)
	assert.Equal(t, []byte(accountKey.PublicKey()), decoded.Account)
}

func TestCertificateBadKeyEncoding(t *testing.T) {
	_, err := ledger.NewStakeDelegationCertificate(
		ledger.Blake2b256Hash([]byte("pool")),
		"not-a-bech32-key",
	)
	var keyErr keys.InvalidKeyEncodingError
	assert.ErrorAs(t, err, &keyErr)
}

func TestCertificateWrapperUnknownType(t *testing.T) {
	// [9] is not a known certificate type
	var wrapper ledger.CertificateWrapper
	_, err := cbor.Decode([]byte{0x81, 0x09}, &wrapper)
	assert.ErrorContains(t, err, "unknown ID")
}
