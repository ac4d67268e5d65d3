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

package keys

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPairRoundTrip(t *testing.T) {
	kp, err := NewKeyPair()
	require.NoError(t, err)

	secret := kp.SecretKeyBech32()
	assert.True(t, strings.HasPrefix(secret, PrefixEd25519Secret+"1"))

	restored, err := KeyPairFromBech32(secret)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), restored.PublicKey())
	assert.Equal(t, kp.PublicKeyBech32(), restored.PublicKeyBech32())
}

func TestPublicKeyFromBech32(t *testing.T) {
	kp, err := NewKeyPair()
	require.NoError(t, err)

	pub, err := PublicKeyFromBech32(kp.PublicKeyBech32())
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), pub)
}

func TestPublicKeyFromBech32Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		encoded string
	}{
		{name: "Garbage", encoded: "not bech32 at all"},
		{name: "WrongPrefix", encoded: EncodeBech32("vrf_pk", make([]byte, 32))},
		{name: "ShortKey", encoded: EncodeBech32(PrefixEd25519Public, make([]byte, 16))},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PublicKeyFromBech32(tc.encoded)
			require.Error(t, err)
			var keyErr InvalidKeyEncodingError
			assert.ErrorAs(t, err, &keyErr)
		})
	}
}

func TestAddressEmbedsPublicKey(t *testing.T) {
	kp, err := NewKeyPair()
	require.NoError(t, err)

	for _, d := range []Discrimination{DiscriminationProduction, DiscriminationTest} {
		addr := kp.Address(d)
		assert.True(t, strings.HasPrefix(addr, d.AddressPrefix()+"1"))
		pub, err := PublicKeyFromAddress(addr, d)
		require.NoError(t, err)
		assert.Equal(t, kp.PublicKey(), pub)
	}

	// Wrong discrimination must not decode
	addr := kp.Address(DiscriminationTest)
	_, err = PublicKeyFromAddress(addr, DiscriminationProduction)
	assert.Error(t, err)
}

func TestSignVerify(t *testing.T) {
	kp, err := NewKeyPair()
	require.NoError(t, err)

	msg := []byte("certificate body")
	sig := kp.Sign(msg)
	assert.Len(t, sig, 64)
}

func TestVrfKeyPair(t *testing.T) {
	seed := make([]byte, VrfSeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	kp, err := NewVrfKeyPairFromSeed(seed)
	require.NoError(t, err)

	// Deterministic derivation
	again, err := NewVrfKeyPairFromSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), again.PublicKey())

	encoded := kp.PublicKeyBech32()
	assert.True(t, strings.HasPrefix(encoded, PrefixVrfPublic+"1"))
	pub, err := VrfPublicKeyFromBech32(encoded)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), pub)
}

func TestVrfKeyPairBadSeed(t *testing.T) {
	_, err := NewVrfKeyPairFromSeed([]byte{0x01})
	assert.Error(t, err)
}

func TestKesKeyPair(t *testing.T) {
	seed := make([]byte, KesSeedSize)
	for i := range seed {
		seed[i] = byte(0xa0 + i)
	}
	kp, err := NewKesKeyPairFromSeed(seed)
	require.NoError(t, err)

	again, err := NewKesKeyPairFromSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), again.PublicKey())

	encoded := kp.PublicKeyBech32()
	assert.True(t, strings.HasPrefix(encoded, PrefixKesPublic+"1"))
	pub, err := KesPublicKeyFromBech32(encoded)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), pub)
}

func TestKesSignVerify(t *testing.T) {
	kp, err := NewKesKeyPair()
	require.NoError(t, err)

	msg := []byte("block header")
	for _, period := range []uint64{0, 1, 31, 63} {
		sig, err := kp.Sign(period, msg)
		require.NoError(t, err)
		assert.Len(t, sig, KesSignatureSize(KesDepth))
		assert.True(t, KesVerify(kp.PublicKey(), period, msg, sig),
			"signature for period %d should verify", period)
		assert.False(t, KesVerify(kp.PublicKey(), period+64, msg, sig))
		assert.False(t, KesVerify(kp.PublicKey(), period, []byte("other"), sig))
		if period > 0 {
			assert.False(t, KesVerify(kp.PublicKey(), period-1, msg, sig))
		}
	}
}

func TestKesSignPeriodOutOfRange(t *testing.T) {
	kp, err := NewKesKeyPair()
	require.NoError(t, err)
	_, err = kp.Sign(64, []byte("msg"))
	assert.Error(t, err)
}
